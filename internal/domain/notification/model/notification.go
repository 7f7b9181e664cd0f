package model

import (
	baseModel "trendz_backend/pkg/model"
)

// 通知状态
const (
	StatusUnread = "UNREAD"
	StatusRead   = "READ"
)

// Notification 通知，追加写入，按创建时间倒序投递
type Notification struct {
	baseModel.BaseModel
	UserID  string `gorm:"type:uuid;not null;index" json:"userId"` // 接收者
	ActorID string `gorm:"type:uuid" json:"actorId"`               // 触发者
	Actor   string `json:"actor"`                                  // 触发者展示名快照
	Content string `json:"content"`
	Status  string `gorm:"default:'UNREAD'" json:"status"`
}
