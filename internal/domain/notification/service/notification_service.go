package service

import (
	"errors"

	"trendz_backend/internal/domain/notification/model"
	"trendz_backend/internal/domain/notification/repository"
	"trendz_backend/internal/pkg/live"

	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService 通知服务：落库 + 实时推送
type NotificationService interface {
	Create(userID, actorID, actor, content string) (*model.Notification, error)
	ListByUser(userID string) ([]model.Notification, error)
	MarkRead(ids []string) error
	Delete(id string) error
}

type notificationService struct {
	repo   repository.NotificationRepository
	broker *live.Broker
}

func NewNotificationService(repo repository.NotificationRepository, broker *live.Broker) NotificationService {
	return &notificationService{repo: repo, broker: broker}
}

func (s *notificationService) Create(userID, actorID, actor, content string) (*model.Notification, error) {
	n := &model.Notification{
		UserID:  userID,
		ActorID: actorID,
		Actor:   actor,
		Content: content,
		Status:  model.StatusUnread,
	}
	if err := s.repo.Create(n); err != nil {
		return nil, err
	}

	if s.broker != nil {
		s.broker.Publish(live.NotifyChannel(userID), n)
	}
	return n, nil
}

func (s *notificationService) ListByUser(userID string) ([]model.Notification, error) {
	return s.repo.ListByUser(userID)
}

func (s *notificationService) MarkRead(ids []string) error {
	affected, err := s.repo.MarkRead(ids)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *notificationService) Delete(id string) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	return s.repo.Delete(id)
}
