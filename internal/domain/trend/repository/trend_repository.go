package repository

import (
	"trendz_backend/internal/domain/trend/model"

	"gorm.io/gorm"
)

type TrendRepository interface {
	Create(topic *model.TrendTopic) error
	GetByID(id string) (*model.TrendTopic, error)
	GetList() ([]model.TrendTopic, error)
	Search(keyword string) ([]model.TrendTopic, error)
	Update(topic *model.TrendTopic) error
	Delete(id string) error
}

type trendRepository struct {
	db *gorm.DB
}

func NewTrendRepository(db *gorm.DB) TrendRepository {
	return &trendRepository{db: db}
}

func (r *trendRepository) Create(topic *model.TrendTopic) error {
	return r.db.Create(topic).Error
}

func (r *trendRepository) GetByID(id string) (*model.TrendTopic, error) {
	var topic model.TrendTopic
	if err := r.db.Where("id = ?", id).First(&topic).Error; err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *trendRepository) GetList() ([]model.TrendTopic, error) {
	var topics []model.TrendTopic
	err := r.db.Order("created_at desc").Find(&topics).Error
	return topics, err
}

func (r *trendRepository) Search(keyword string) ([]model.TrendTopic, error) {
	var topics []model.TrendTopic
	err := r.db.Where("title ILIKE ?", "%"+keyword+"%").Find(&topics).Error
	return topics, err
}

func (r *trendRepository) Update(topic *model.TrendTopic) error {
	return r.db.Save(topic).Error
}

func (r *trendRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.TrendTopic{}).Error
}
