package model

import "trendz_backend/pkg/model"

// Comment 帖子评论
type Comment struct {
	model.BaseModel
	UserID  string `gorm:"type:uuid;not null;index" json:"userId"`
	PostID  string `gorm:"type:uuid;not null;index" json:"postId"`
	Content string `gorm:"type:text;not null" json:"content"`
}
