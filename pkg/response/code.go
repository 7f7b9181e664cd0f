package response

// 业务状态码
const (
	CodeSuccess = 0
	CodeError   = 1

	// 用户/关系链模块错误 100xx
	ErrUserExists   = 10001
	ErrUserNotFound = 10002
	ErrAuthFailed   = 10003
	ErrTokenInvalid = 10004
	ErrNoPermission = 10005
	ErrFollowSelf   = 10006
	ErrUserBanned   = 10007

	// 帖子/互动模块错误 200xx
	ErrPostNotFound     = 20001
	ErrReactionNotFound = 20002
	ErrAlreadyShared    = 20003
	ErrShareNotFound    = 20004
	ErrCommentNotFound  = 20005
	ErrTopicNotFound    = 20006

	// 积分商城模块错误 300xx
	ErrItemNotFound      = 30001
	ErrInsufficientPoint = 30002

	// 聊天/通知模块错误 400xx
	ErrChatBoxNotFound      = 40001
	ErrChatSelf             = 40002
	ErrNotChatMember        = 40003
	ErrMessageNotFound      = 40004
	ErrNotificationNotFound = 40005

	// 系统错误 500xx
	ErrServerInternal  = 50001
	ErrInvalidParam    = 50002
	ErrTooManyRequests = 50003
)
