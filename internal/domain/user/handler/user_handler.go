package handler

import (
	"errors"
	"net/http"
	"time"

	"trendz_backend/internal/domain/user/model"
	"trendz_backend/internal/domain/user/service"
	"trendz_backend/internal/pkg/middleware"
	"trendz_backend/internal/pkg/uploader"
	"trendz_backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

// RegisterInput 注册输入
type RegisterInput struct {
	Username    string `json:"username" binding:"required,min=3,max=32"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	DisplayName string `json:"displayName"`
}

// LoginInput 登录输入
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileInput 资料更新输入 (multipart 表单，avatar 为可选文件)
type UpdateProfileInput struct {
	DisplayName  string `form:"displayName"`
	Bio          string `form:"bio"`
	Hometown     string `form:"hometown"`
	School       string `form:"school"`
	Gender       string `form:"gender"`
	Relationship string `form:"relationship"`
	Birthday     string `form:"birthday"` // RFC3339 日期
}

// Register 注册
// @Summary 用户注册
// @Tags User
// @Accept json
// @Produce json
// @Param input body RegisterInput true "注册信息"
// @Success 200 {object} response.Response
// @Router /auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	user, err := h.service.Register(input.Username, input.Email, input.Password, input.DisplayName)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			response.Conflict(c, response.ErrUserExists, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, user)
}

// Login 登录
// @Summary 用户登录
// @Tags User
// @Accept json
// @Produce json
// @Param input body LoginInput true "登录信息"
// @Success 200 {object} response.Response
// @Router /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	token, user, err := h.service.Login(input.Username, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuthFailed):
			response.Error(c, http.StatusUnauthorized, response.ErrAuthFailed, err.Error())
		case errors.Is(err, service.ErrUserBanned):
			response.Error(c, http.StatusForbidden, response.ErrUserBanned, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}
	response.Success(c, gin.H{"token": token, "user": user})
}

// GetUsers 用户列表
// @Summary 获取全部用户
// @Tags User
// @Success 200 {object} response.Response
// @Router /users [get]
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.service.GetUsers()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, users)
}

// GetMe 当前登录用户
// @Summary 获取个人信息
// @Tags User
// @Success 200 {object} response.Response
// @Router /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	h.respondUser(c, middleware.GetUserID(c))
}

// GetUser 按ID获取用户
// @Summary 获取用户
// @Tags User
// @Param id path string true "用户ID"
// @Success 200 {object} response.Response
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	h.respondUser(c, c.Param("id"))
}

func (h *UserHandler) respondUser(c *gin.Context, id string) {
	user, err := h.service.GetUser(id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, response.ErrUserNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, user)
}

// SearchUsers 按关键字搜索用户（排除自己）
// @Summary 搜索用户
// @Tags User
// @Param keyword query string true "关键字"
// @Success 200 {object} response.Response
// @Router /users/search [get]
func (h *UserHandler) SearchUsers(c *gin.Context) {
	users, err := h.service.SearchUsers(middleware.GetUserID(c), c.Query("keyword"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, users)
}

// UpdateProfile 更新个人资料（支持头像上传）
// @Summary 更新个人资料
// @Tags User
// @Accept multipart/form-data
// @Success 200 {object} response.Response
// @Router /users/me [patch]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var input UpdateProfileInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	svcInput := service.UpdateProfileInput{
		DisplayName:  input.DisplayName,
		Bio:          input.Bio,
		Hometown:     input.Hometown,
		School:       input.School,
		Gender:       input.Gender,
		Relationship: input.Relationship,
	}
	if input.Birthday != "" {
		t, err := time.Parse(time.RFC3339, input.Birthday)
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "invalid birthday format")
			return
		}
		svcInput.Birthday = &t
	}

	// 头像文件可选
	if file, err := c.FormFile("avatar"); err == nil && uploader.GlobalUploader != nil {
		url, err := uploader.GlobalUploader.UploadFile("avatars", file)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Upload failed: "+err.Error())
			return
		}
		svcInput.Avatar = url
	}

	user, err := h.service.UpdateProfile(middleware.GetUserID(c), svcInput)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, response.ErrUserNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, user)
}

// BanUser 封禁用户 (管理员)
// @Summary 封禁用户
// @Tags User
// @Param id path string true "用户ID"
// @Success 200 {object} response.Response
// @Router /users/{id}/ban [patch]
func (h *UserHandler) BanUser(c *gin.Context) {
	if err := h.service.BanUser(c.Param("id")); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, response.ErrUserNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, "success")
}

// DeleteUser 删除用户 (管理员)
// @Summary 删除用户
// @Tags User
// @Param id path string true "用户ID"
// @Success 200 {object} response.Response
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.service.DeleteUser(c.Param("id")); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, response.ErrUserNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, "success")
}

// ToggleFollow 关注/取关开关
// @Summary 关注或取消关注用户
// @Tags User
// @Param id path string true "目标用户ID"
// @Success 200 {object} response.Response
// @Router /users/{id}/follow [post]
func (h *UserHandler) ToggleFollow(c *gin.Context) {
	followed, err := h.service.ToggleFollow(middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFollowSelf):
			response.Error(c, http.StatusBadRequest, response.ErrFollowSelf, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, response.ErrUserNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}

	msg := "Theo dõi thành công!!!"
	if !followed {
		msg = "Đã hủy theo dõi!!!"
	}
	response.Success(c, gin.H{"followed": followed, "message": msg})
}

// ListFollowing 我关注的人
// @Summary 关注列表
// @Tags User
// @Param id path string true "用户ID"
// @Success 200 {object} response.Response
// @Router /users/{id}/following [get]
func (h *UserHandler) ListFollowing(c *gin.Context) {
	h.respondUserList(c, h.service.ListFollowing)
}

// ListFollowers 关注我的人
// @Summary 粉丝列表
// @Tags User
// @Param id path string true "用户ID"
// @Success 200 {object} response.Response
// @Router /users/{id}/followers [get]
func (h *UserHandler) ListFollowers(c *gin.Context) {
	h.respondUserList(c, h.service.ListFollowers)
}

// ListFriends 好友 = 互相关注
// @Summary 好友列表
// @Tags User
// @Param id path string true "用户ID"
// @Success 200 {object} response.Response
// @Router /users/{id}/friends [get]
func (h *UserHandler) ListFriends(c *gin.Context) {
	h.respondUserList(c, h.service.ListFriends)
}

func (h *UserHandler) respondUserList(c *gin.Context, list func(string) ([]model.User, error)) {
	users, err := list(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, response.ErrUserNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, users)
}
