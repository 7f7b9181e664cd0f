package model

import (
	baseModel "trendz_backend/pkg/model"
)

// TrendTopic 趋势话题，帖子可选归属其一
type TrendTopic struct {
	baseModel.BaseModel
	Title       string `gorm:"not null;index" json:"title"`
	Description string `json:"description"`
}
