package service

import (
	"testing"

	"trendz_backend/internal/domain/notification/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(n *model.Notification) error {
	args := m.Called(n)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetByID(id string) (*model.Notification, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *MockNotificationRepository) ListByUser(userID string) ([]model.Notification, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ids []string) (int64, error) {
	args := m.Called(ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestCreateNotification(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := NewNotificationService(repo, nil)

	repo.On("Create", mock.MatchedBy(func(n *model.Notification) bool {
		return n.UserID == "u1" && n.Actor == "alice" && n.Status == model.StatusUnread
	})).Return(nil)

	n, err := svc.Create("u1", "u2", "alice", "đã theo dõi bạn")

	assert.NoError(t, err)
	assert.Equal(t, model.StatusUnread, n.Status)
	repo.AssertExpectations(t)
}

func TestMarkRead(t *testing.T) {
	t.Run("命中行数为 0 视为通知不存在", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		svc := NewNotificationService(repo, nil)

		repo.On("MarkRead", []string{"n1"}).Return(int64(0), nil)

		err := svc.MarkRead([]string{"n1"})
		assert.ErrorIs(t, err, ErrNotificationNotFound)
	})

	t.Run("批量已读", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		svc := NewNotificationService(repo, nil)

		repo.On("MarkRead", []string{"n1", "n2"}).Return(int64(2), nil)

		assert.NoError(t, svc.MarkRead([]string{"n1", "n2"}))
		repo.AssertExpectations(t)
	})
}

func TestDeleteNotification(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := NewNotificationService(repo, nil)

	repo.On("GetByID", "missing").Return(nil, gorm.ErrRecordNotFound)

	err := svc.Delete("missing")
	assert.ErrorIs(t, err, ErrNotificationNotFound)
	repo.AssertNotCalled(t, "Delete", "missing")
}
