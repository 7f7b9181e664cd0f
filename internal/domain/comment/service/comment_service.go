package service

import (
	"errors"

	"trendz_backend/internal/domain/comment/model"
	"trendz_backend/internal/domain/comment/repository"
	notifModel "trendz_backend/internal/domain/notification/model"
	"trendz_backend/internal/pkg/live"

	"gorm.io/gorm"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrPostNotFound    = errors.New("post not found")
	ErrNotCommentOwner = errors.New("not the comment owner")
)

// CommentService 评论服务
type CommentService interface {
	// Create 插入评论，评论者不是作者时在同一事务内给作者落一条通知
	Create(userID, postID, content string) (*model.Comment, error)
	Update(id, userID, content string) (*model.Comment, error)
	Get(id string) (*model.Comment, error)
	ListByPost(postID string) ([]repository.CommentWithUser, error)
	Delete(id, userID string, isAdmin bool) error
}

type commentService struct {
	repo   repository.CommentRepository
	broker *live.Broker
}

// NewCommentService 创建评论服务，broker 可为 nil（测试场景，不做实时推送）
func NewCommentService(repo repository.CommentRepository, broker *live.Broker) CommentService {
	return &commentService{repo: repo, broker: broker}
}

func (s *commentService) Create(userID, postID, content string) (*model.Comment, error) {
	var comment *model.Comment
	var notif *notifModel.Notification
	var authorID string

	err := s.repo.Transaction(func(tx repository.CommentRepository) error {
		post, err := tx.GetPost(postID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}
		authorID = post.UserID

		comment = &model.Comment{UserID: userID, PostID: postID, Content: content}
		if err := tx.Create(comment); err != nil {
			return err
		}

		if post.UserID == userID {
			return nil
		}

		commenter, err := tx.GetUser(userID)
		if err != nil {
			return err
		}
		notif = &notifModel.Notification{
			UserID:  post.UserID,
			ActorID: userID,
			Actor:   commenter.Username,
			Content: "đã bình luận về bài đăng của bạn",
			Status:  notifModel.StatusUnread,
		}
		return tx.CreateNotification(notif)
	})
	if err != nil {
		return nil, err
	}

	// 事务提交后才推实时通知
	if notif != nil && s.broker != nil {
		s.broker.Publish(live.NotifyChannel(authorID), notif)
	}
	return comment, nil
}

func (s *commentService) Update(id, userID, content string) (*model.Comment, error) {
	comment, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, ErrNotCommentOwner
	}

	comment.Content = content
	if err := s.repo.Update(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Get(id string) (*model.Comment, error) {
	comment, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}

func (s *commentService) ListByPost(postID string) ([]repository.CommentWithUser, error) {
	if _, err := s.repo.GetPost(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return s.repo.ListByPost(postID)
}

func (s *commentService) Delete(id, userID string, isAdmin bool) error {
	comment, err := s.Get(id)
	if err != nil {
		return err
	}
	if !isAdmin && comment.UserID != userID {
		return ErrNotCommentOwner
	}
	return s.repo.Delete(comment)
}
