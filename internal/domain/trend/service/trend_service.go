package service

import (
	"errors"

	"trendz_backend/internal/domain/trend/model"
	"trendz_backend/internal/domain/trend/repository"

	"gorm.io/gorm"
)

var ErrTopicNotFound = errors.New("trend topic not found")

type TrendService interface {
	Create(title, description string) (*model.TrendTopic, error)
	Update(id, title, description string) (*model.TrendTopic, error)
	Get(id string) (*model.TrendTopic, error)
	List() ([]model.TrendTopic, error)
	Search(keyword string) ([]model.TrendTopic, error)
	Delete(id string) error
}

type trendService struct {
	repo repository.TrendRepository
}

func NewTrendService(repo repository.TrendRepository) TrendService {
	return &trendService{repo: repo}
}

func (s *trendService) Create(title, description string) (*model.TrendTopic, error) {
	topic := &model.TrendTopic{Title: title, Description: description}
	if err := s.repo.Create(topic); err != nil {
		return nil, err
	}
	return topic, nil
}

func (s *trendService) Update(id, title, description string) (*model.TrendTopic, error) {
	topic, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if title != "" {
		topic.Title = title
	}
	topic.Description = description
	if err := s.repo.Update(topic); err != nil {
		return nil, err
	}
	return topic, nil
}

func (s *trendService) Get(id string) (*model.TrendTopic, error) {
	topic, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTopicNotFound
		}
		return nil, err
	}
	return topic, nil
}

func (s *trendService) List() ([]model.TrendTopic, error) {
	return s.repo.GetList()
}

// Search 空结果视为未找到，与列表接口区分
func (s *trendService) Search(keyword string) ([]model.TrendTopic, error) {
	topics, err := s.repo.Search(keyword)
	if err != nil {
		return nil, err
	}
	if len(topics) == 0 {
		return nil, ErrTopicNotFound
	}
	return topics, nil
}

func (s *trendService) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
