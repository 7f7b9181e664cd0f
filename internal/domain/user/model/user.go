package model

import (
	"time"

	baseModel "trendz_backend/pkg/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 用户角色
const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

// 用户状态
const (
	StatusActive = "Active"
	StatusBanned = "Banned"
)

// User 用户模型，point 为互动奖励积分余额
type User struct {
	baseModel.BaseModel
	Username     string     `gorm:"uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	Password     string     `json:"-"` // 密码哈希不返回给前端
	DisplayName  string     `json:"displayName"`
	Avatar       string     `json:"avatar"`
	Role         string     `gorm:"default:'User'" json:"role"`
	Status       string     `gorm:"default:'Active'" json:"status"`
	Point        int        `gorm:"default:0" json:"point"`
	Bio          string     `json:"bio"`
	Hometown     string     `json:"hometown"`
	School       string     `json:"school"`
	Gender       string     `json:"gender"`
	Relationship string     `json:"relationship"`
	Birthday     *time.Time `json:"birthday"`
}

// UserFollow 关注关系（follower 关注 following）
// 复合唯一键 idx_follow_pair 防止重复关注；“好友”是双向边的派生关系，不落表
// 硬删除：软删除残留会撞唯一键，导致无法重新关注
type UserFollow struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	FollowerID  string    `gorm:"type:uuid;not null;index:idx_follow_follower;index:idx_follow_pair,unique" json:"followerId"`
	FollowingID string    `gorm:"type:uuid;not null;index:idx_follow_following;index:idx_follow_pair,unique" json:"followingId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (UserFollow) TableName() string { return "user_follows" }

func (f *UserFollow) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return
}
