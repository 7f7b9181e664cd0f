package model

import (
	"time"

	"trendz_backend/pkg/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 商品类型
const (
	TypeFrame = "FRAME"
	TypeImage = "IMAGE"
)

// ValidItemType 判断商品类型是否合法
func ValidItemType(t string) bool {
	return t == TypeFrame || t == TypeImage
}

// ShopItem 积分商城商品
type ShopItem struct {
	model.BaseModel
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Price       int    `gorm:"not null" json:"price"`
	Type        string `gorm:"type:varchar(16);not null" json:"type"`
	ImageURL    string `json:"imageUrl"`
	Discount    int    `gorm:"default:0" json:"discount"`
}

// UserItem 购买成功后的持有记录，物理保存不软删
type UserItem struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"userId"`
	ItemID    string    `gorm:"type:uuid;not null" json:"itemId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (ui *UserItem) BeforeCreate(tx *gorm.DB) error {
	if ui.ID == "" {
		ui.ID = uuid.New().String()
	}
	return nil
}
