package repository

import (
	"trendz_backend/internal/domain/notification/model"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(n *model.Notification) error
	GetByID(id string) (*model.Notification, error)
	ListByUser(userID string) ([]model.Notification, error)
	MarkRead(ids []string) (int64, error)
	Delete(id string) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(n *model.Notification) error {
	return r.db.Create(n).Error
}

func (r *notificationRepository) GetByID(id string) (*model.Notification, error) {
	var n model.Notification
	if err := r.db.Where("id = ?", id).First(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// ListByUser 按创建时间倒序投递
func (r *notificationRepository) ListByUser(userID string) ([]model.Notification, error) {
	var list []model.Notification
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&list).Error
	return list, err
}

// MarkRead 批量已读，返回命中行数
func (r *notificationRepository) MarkRead(ids []string) (int64, error) {
	res := r.db.Model(&model.Notification{}).
		Where("id IN ?", ids).
		Update("status", model.StatusRead)
	return res.RowsAffected, res.Error
}

func (r *notificationRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.Notification{}).Error
}
