package model

import (
	"time"

	baseModel "trendz_backend/pkg/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 帖子状态
const (
	StatusPublished = "Published"
	StatusBanned    = "Banned"
	StatusDeleted   = "Deleted"
)

// Post 帖子，likes 为反应计数的持久化快照
// imageUrl 与 videoUrl 互斥：设置其一会清空另一个
type Post struct {
	baseModel.BaseModel
	UserID       string  `gorm:"type:uuid;not null;index" json:"userId"`
	TrendTopicID *string `gorm:"type:uuid;index" json:"trendTopicId"`
	Title        string  `json:"title"`
	Content      string  `json:"content"`
	Status       string  `gorm:"default:'Published'" json:"status"`
	ImageURL     string  `json:"imageUrl"`
	VideoURL     string  `json:"videoUrl"`
	Likes        int     `gorm:"default:0" json:"likes"`
}

// UserSharePost 分享记录，(user, post) 唯一
// 硬删除；帖子删除后分享记录保留，读取侧以墓碑占位
type UserSharePost struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index:idx_share_pair,unique" json:"userId"`
	PostID    string    `gorm:"type:uuid;not null;index:idx_share_pair,unique" json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (UserSharePost) TableName() string { return "user_share_posts" }

func (s *UserSharePost) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}
