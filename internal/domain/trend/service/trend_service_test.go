package service

import (
	"testing"

	"trendz_backend/internal/domain/trend/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockTrendRepository struct {
	mock.Mock
}

func (m *MockTrendRepository) Create(topic *model.TrendTopic) error {
	args := m.Called(topic)
	return args.Error(0)
}

func (m *MockTrendRepository) GetByID(id string) (*model.TrendTopic, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TrendTopic), args.Error(1)
}

func (m *MockTrendRepository) GetList() ([]model.TrendTopic, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TrendTopic), args.Error(1)
}

func (m *MockTrendRepository) Search(keyword string) ([]model.TrendTopic, error) {
	args := m.Called(keyword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TrendTopic), args.Error(1)
}

func (m *MockTrendRepository) Update(topic *model.TrendTopic) error {
	args := m.Called(topic)
	return args.Error(0)
}

func (m *MockTrendRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestUpdateTopic(t *testing.T) {
	t.Run("不存在的话题", func(t *testing.T) {
		repo := new(MockTrendRepository)
		svc := NewTrendService(repo)

		repo.On("GetByID", "missing").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Update("missing", "new", "")
		assert.ErrorIs(t, err, ErrTopicNotFound)
	})

	t.Run("空标题保留原值", func(t *testing.T) {
		repo := new(MockTrendRepository)
		svc := NewTrendService(repo)

		repo.On("GetByID", "t1").Return(&model.TrendTopic{Title: "AI", Description: "old"}, nil)
		repo.On("Update", mock.MatchedBy(func(topic *model.TrendTopic) bool {
			return topic.Title == "AI" && topic.Description == "new desc"
		})).Return(nil)

		topic, err := svc.Update("t1", "", "new desc")
		assert.NoError(t, err)
		assert.Equal(t, "AI", topic.Title)
		repo.AssertExpectations(t)
	})
}

func TestSearchTopics(t *testing.T) {
	t.Run("空结果视为未找到", func(t *testing.T) {
		repo := new(MockTrendRepository)
		svc := NewTrendService(repo)

		repo.On("Search", "nothing").Return([]model.TrendTopic{}, nil)

		_, err := svc.Search("nothing")
		assert.ErrorIs(t, err, ErrTopicNotFound)
	})

	t.Run("命中结果", func(t *testing.T) {
		repo := new(MockTrendRepository)
		svc := NewTrendService(repo)

		repo.On("Search", "ai").Return([]model.TrendTopic{{Title: "AI"}}, nil)

		topics, err := svc.Search("ai")
		assert.NoError(t, err)
		assert.Len(t, topics, 1)
	})
}

func TestDeleteTopic(t *testing.T) {
	repo := new(MockTrendRepository)
	svc := NewTrendService(repo)

	repo.On("GetByID", "t1").Return(&model.TrendTopic{Title: "AI"}, nil)
	repo.On("Delete", "t1").Return(nil)

	assert.NoError(t, svc.Delete("t1"))
	repo.AssertExpectations(t)
}
