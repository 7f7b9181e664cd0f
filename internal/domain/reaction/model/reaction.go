package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 反应类型
const (
	TypeLike  = "LIKE"
	TypeLove  = "LOVE"
	TypeHaha  = "HAHA"
	TypeWow   = "WOW"
	TypeSad   = "SAD"
	TypeAngry = "ANGRY"
)

// ValidType 判断反应类型是否合法
func ValidType(t string) bool {
	switch t {
	case TypeLike, TypeLove, TypeHaha, TypeWow, TypeSad, TypeAngry:
		return true
	}
	return false
}

// Reaction 用户对帖子的唯一反应，物理删除
// 软删除行会占住 (user_id, post_id) 唯一键，阻止再次反应，所以不继承 BaseModel
type Reaction struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_reaction_pair" json:"userId"`
	PostID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_reaction_pair" json:"postId"`
	Type      string    `gorm:"type:varchar(16);not null;default:'LIKE'" json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Reaction) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
