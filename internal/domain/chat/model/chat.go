package model

import (
	"time"

	"trendz_backend/pkg/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 消息状态
const (
	MessageStatusPublished = "Published"
	MessageStatusDeleted   = "Deleted"
)

// ChatBox 两人会话
type ChatBox struct {
	model.BaseModel
}

// ChatBoxMember 会话成员，显式连接表，一个会话恒有两行
// 物理删除：软删行会占住 (chat_box_id, user_id) 唯一键
type ChatBoxMember struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	ChatBoxID string    `gorm:"type:uuid;not null;uniqueIndex:idx_box_member" json:"chatBoxId"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_box_member" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (m *ChatBoxMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

// Message 会话消息
type Message struct {
	model.BaseModel
	ChatBoxID string `gorm:"type:uuid;not null;index" json:"chatBoxId"`
	UserID    string `gorm:"type:uuid;not null" json:"userId"`
	Content   string `gorm:"type:text;not null" json:"content"`
	Status    string `gorm:"default:'Published'" json:"status"`
}
