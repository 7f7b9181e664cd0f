package service

import (
	"errors"
	"fmt"

	notifModel "trendz_backend/internal/domain/notification/model"
	"trendz_backend/internal/domain/reaction/model"
	"trendz_backend/internal/domain/reaction/repository"
	"trendz_backend/internal/pkg/live"

	"gorm.io/gorm"
)

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrReactionNotFound = errors.New("reaction not found")
	ErrInvalidType      = errors.New("invalid reaction type")
)

// PointMilestone 每累积这么多积分给作者发一条里程碑通知
const PointMilestone = 5

// ReactionService 反应与积分奖励服务
type ReactionService interface {
	// React 创建或改写 (userID, postID) 的唯一反应
	// 只有首次反应且反应者不是作者时才加积分并通知作者
	React(userID, postID, reactionType string) (*model.Reaction, error)
	Unreact(userID, postID string) error
	ListByPost(postID string) ([]repository.ReactionWithUser, error)
	GetOwn(userID, postID string) (*model.Reaction, error)
}

type reactionService struct {
	repo   repository.ReactionRepository
	broker *live.Broker
}

// NewReactionService 创建反应服务，broker 可为 nil（测试场景，不做实时推送）
func NewReactionService(repo repository.ReactionRepository, broker *live.Broker) ReactionService {
	return &reactionService{repo: repo, broker: broker}
}

func (s *reactionService) React(userID, postID, reactionType string) (*model.Reaction, error) {
	if reactionType == "" {
		reactionType = model.TypeLike
	}
	if !model.ValidType(reactionType) {
		return nil, ErrInvalidType
	}

	var reaction *model.Reaction
	var notifs []*notifModel.Notification
	var authorID string

	err := s.repo.Transaction(func(tx repository.ReactionRepository) error {
		post, err := tx.GetPost(postID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}
		authorID = post.UserID

		existing, err := tx.GetReaction(userID, postID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// 改类型不重复计分
		if existing != nil {
			if err := tx.UpdateReactionType(userID, postID, reactionType); err != nil {
				return err
			}
			existing.Type = reactionType
			reaction = existing
			return nil
		}

		reaction = &model.Reaction{UserID: userID, PostID: postID, Type: reactionType}
		if err := tx.CreateReaction(reaction); err != nil {
			return err
		}
		if err := tx.UpdatePostLikes(postID, 1); err != nil {
			return err
		}

		if post.UserID == userID {
			return nil
		}

		// 行锁住作者，积分读改写与通知同事务串行化
		author, err := tx.GetUserForUpdate(post.UserID)
		if err != nil {
			return err
		}
		reactor, err := tx.GetUser(userID)
		if err != nil {
			return err
		}

		n := &notifModel.Notification{
			UserID:  author.ID,
			ActorID: userID,
			Actor:   reactor.Username,
			Content: "đã bày tỏ cảm xúc bài đăng của bạn",
			Status:  notifModel.StatusUnread,
		}
		if err := tx.CreateNotification(n); err != nil {
			return err
		}
		notifs = append(notifs, n)

		author.Point++
		if err := tx.SaveUser(author); err != nil {
			return err
		}

		if author.Point > 0 && author.Point%PointMilestone == 0 {
			m := &notifModel.Notification{
				UserID:  author.ID,
				ActorID: author.ID,
				Actor:   author.Username,
				Content: fmt.Sprintf("Chúng ta đã đạt %d Trending Point 😀", author.Point),
				Status:  notifModel.StatusUnread,
			}
			if err := tx.CreateNotification(m); err != nil {
				return err
			}
			notifs = append(notifs, m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 事务提交后才推实时通知
	if s.broker != nil {
		for _, n := range notifs {
			s.broker.Publish(live.NotifyChannel(authorID), n)
		}
	}
	return reaction, nil
}

// Unreact 删除反应并对称回退积分，作者给自己点的反应不涉及积分
func (s *reactionService) Unreact(userID, postID string) error {
	return s.repo.Transaction(func(tx repository.ReactionRepository) error {
		if _, err := tx.GetReaction(userID, postID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReactionNotFound
			}
			return err
		}
		post, err := tx.GetPost(postID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}

		if err := tx.DeleteReaction(userID, postID); err != nil {
			return err
		}
		if err := tx.UpdatePostLikes(postID, -1); err != nil {
			return err
		}

		if post.UserID == userID {
			return nil
		}

		author, err := tx.GetUserForUpdate(post.UserID)
		if err != nil {
			return err
		}
		author.Point--
		return tx.SaveUser(author)
	})
}

func (s *reactionService) ListByPost(postID string) ([]repository.ReactionWithUser, error) {
	if _, err := s.repo.GetPost(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return s.repo.ListByPost(postID)
}

func (s *reactionService) GetOwn(userID, postID string) (*model.Reaction, error) {
	reaction, err := s.repo.GetReaction(userID, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReactionNotFound
		}
		return nil, err
	}
	return reaction, nil
}
