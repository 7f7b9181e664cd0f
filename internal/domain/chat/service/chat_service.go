package service

import (
	"errors"

	"trendz_backend/internal/domain/chat/model"
	"trendz_backend/internal/domain/chat/repository"
	userModel "trendz_backend/internal/domain/user/model"
	"trendz_backend/internal/pkg/live"

	"gorm.io/gorm"
)

var (
	ErrChatBoxNotFound = errors.New("chatbox not found")
	ErrChatSelf        = errors.New("cannot create chatbox with self")
	ErrUserNotFound    = errors.New("user not found")
	ErrNotChatMember   = errors.New("not a member of this chatbox")
	ErrMessageNotFound = errors.New("message not found")
)

// DefaultMessagePageSize 消息分页默认条数
const DefaultMessagePageSize = 50

// ChatBoxDetail 会话及成员
type ChatBoxDetail struct {
	model.ChatBox
	Members []userModel.User `json:"members"`
}

// ChatService 两人会话与消息服务
type ChatService interface {
	// CreateOrGet 幂等取会话：已有同成员会话直接返回，否则建新的
	CreateOrGet(userID, partnerID string) (*ChatBoxDetail, error)
	GetBox(boxID, userID string) (*ChatBoxDetail, error)
	ListBoxes(userID string) ([]ChatBoxDetail, error)
	DeleteBox(boxID, userID string) error

	PostMessage(boxID, senderID, content string) (*model.Message, error)
	ListMessages(boxID, userID string, skip, limit int) ([]model.Message, error)
	DeleteMessage(messageID, userID string) error

	// CheckMember 订阅实时流前的成员校验
	CheckMember(boxID, userID string) error
}

type chatService struct {
	repo   repository.ChatRepository
	broker *live.Broker
}

// NewChatService 创建会话服务，broker 可为 nil（测试场景，不做实时推送）
func NewChatService(repo repository.ChatRepository, broker *live.Broker) ChatService {
	return &chatService{repo: repo, broker: broker}
}

func (s *chatService) CreateOrGet(userID, partnerID string) (*ChatBoxDetail, error) {
	if userID == partnerID {
		return nil, ErrChatSelf
	}

	var box *model.ChatBox
	err := s.repo.Transaction(func(tx repository.ChatRepository) error {
		if _, err := tx.GetUser(partnerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		existing, err := tx.FindBoxByMembers(userID, partnerID)
		if err == nil {
			box = existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		box = &model.ChatBox{}
		if err := tx.CreateBox(box); err != nil {
			return err
		}
		for _, id := range []string{userID, partnerID} {
			if err := tx.CreateMember(&model.ChatBoxMember{ChatBoxID: box.ID, UserID: id}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.withMembers(box)
}

func (s *chatService) withMembers(box *model.ChatBox) (*ChatBoxDetail, error) {
	members, err := s.repo.ListMembers(box.ID)
	if err != nil {
		return nil, err
	}
	return &ChatBoxDetail{ChatBox: *box, Members: members}, nil
}

func (s *chatService) GetBox(boxID, userID string) (*ChatBoxDetail, error) {
	box, err := s.repo.GetBox(boxID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChatBoxNotFound
		}
		return nil, err
	}
	if err := s.CheckMember(boxID, userID); err != nil {
		return nil, err
	}
	return s.withMembers(box)
}

func (s *chatService) ListBoxes(userID string) ([]ChatBoxDetail, error) {
	boxes, err := s.repo.ListBoxesByUser(userID)
	if err != nil {
		return nil, err
	}
	result := make([]ChatBoxDetail, 0, len(boxes))
	for i := range boxes {
		detail, err := s.withMembers(&boxes[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *detail)
	}
	return result, nil
}

func (s *chatService) DeleteBox(boxID, userID string) error {
	box, err := s.repo.GetBox(boxID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChatBoxNotFound
		}
		return err
	}
	if err := s.CheckMember(boxID, userID); err != nil {
		return err
	}
	return s.repo.DeleteBox(box)
}

// PostMessage 落库后向会话频道广播，推送失败不影响已存储的消息
func (s *chatService) PostMessage(boxID, senderID, content string) (*model.Message, error) {
	if _, err := s.repo.GetBox(boxID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChatBoxNotFound
		}
		return nil, err
	}
	if err := s.CheckMember(boxID, senderID); err != nil {
		return nil, err
	}

	msg := &model.Message{
		ChatBoxID: boxID,
		UserID:    senderID,
		Content:   content,
		Status:    model.MessageStatusPublished,
	}
	if err := s.repo.CreateMessage(msg); err != nil {
		return nil, err
	}

	if s.broker != nil {
		s.broker.Publish(live.ChatChannel(boxID), msg)
	}
	return msg, nil
}

func (s *chatService) ListMessages(boxID, userID string, skip, limit int) ([]model.Message, error) {
	if _, err := s.repo.GetBox(boxID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChatBoxNotFound
		}
		return nil, err
	}
	if err := s.CheckMember(boxID, userID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultMessagePageSize
	}
	if skip < 0 {
		skip = 0
	}
	return s.repo.ListMessages(boxID, skip, limit)
}

func (s *chatService) DeleteMessage(messageID, userID string) error {
	msg, err := s.repo.GetMessage(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMessageNotFound
		}
		return err
	}
	if msg.UserID != userID {
		return ErrNotChatMember
	}
	return s.repo.DeleteMessage(msg)
}

func (s *chatService) CheckMember(boxID, userID string) error {
	ok, err := s.repo.IsMember(boxID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotChatMember
	}
	return nil
}
