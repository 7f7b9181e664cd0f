package service

import (
	"testing"

	"trendz_backend/internal/domain/comment/model"
	"trendz_backend/internal/domain/comment/repository"
	notifModel "trendz_backend/internal/domain/notification/model"
	postModel "trendz_backend/internal/domain/post/model"
	userModel "trendz_backend/internal/domain/user/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockCommentRepository is a mock of CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Transaction(fn func(tx repository.CommentRepository) error) error {
	// 测试里直接用同一个 mock 执行事务体
	return fn(m)
}

func (m *MockCommentRepository) Create(comment *model.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(id string) (*model.Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentRepository) Update(comment *model.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(comment *model.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) ListByPost(postID string) ([]repository.CommentWithUser, error) {
	args := m.Called(postID)
	return args.Get(0).([]repository.CommentWithUser), args.Error(1)
}

func (m *MockCommentRepository) GetPost(id string) (*postModel.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*postModel.Post), args.Error(1)
}

func (m *MockCommentRepository) GetUser(id string) (*userModel.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userModel.User), args.Error(1)
}

func (m *MockCommentRepository) CreateNotification(n *notifModel.Notification) error {
	args := m.Called(n)
	return args.Error(0)
}

func testCommentPost(id, authorID string) *postModel.Post {
	p := &postModel.Post{UserID: authorID, Status: postModel.StatusPublished}
	p.ID = id
	return p
}

func TestCreateComment(t *testing.T) {
	t.Run("Missing post", func(t *testing.T) {
		mockRepo := new(MockCommentRepository)
		service := NewCommentService(mockRepo, nil)

		mockRepo.On("GetPost", "missing").Return(nil, gorm.ErrRecordNotFound)

		_, err := service.Create("u1", "missing", "hi")
		assert.ErrorIs(t, err, ErrPostNotFound)
	})

	t.Run("Foreign comment notifies author", func(t *testing.T) {
		mockRepo := new(MockCommentRepository)
		service := NewCommentService(mockRepo, nil)

		commenter := &userModel.User{Username: "alice"}
		commenter.ID = "u1"

		mockRepo.On("GetPost", "p1").Return(testCommentPost("p1", "author"), nil)
		mockRepo.On("Create", mock.AnythingOfType("*model.Comment")).Return(nil)
		mockRepo.On("GetUser", "u1").Return(commenter, nil)
		mockRepo.On("CreateNotification", mock.MatchedBy(func(n *notifModel.Notification) bool {
			return n.UserID == "author" && n.Actor == "alice" &&
				n.Content == "đã bình luận về bài đăng của bạn"
		})).Return(nil)

		comment, err := service.Create("u1", "p1", "nice post")

		assert.NoError(t, err)
		assert.Equal(t, "nice post", comment.Content)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Own comment stays silent", func(t *testing.T) {
		mockRepo := new(MockCommentRepository)
		service := NewCommentService(mockRepo, nil)

		mockRepo.On("GetPost", "p1").Return(testCommentPost("p1", "author"), nil)
		mockRepo.On("Create", mock.AnythingOfType("*model.Comment")).Return(nil)

		_, err := service.Create("author", "p1", "my own post")

		assert.NoError(t, err)
		mockRepo.AssertNotCalled(t, "CreateNotification", mock.Anything)
	})
}

func TestUpdateComment(t *testing.T) {
	t.Run("Only owner can update", func(t *testing.T) {
		mockRepo := new(MockCommentRepository)
		service := NewCommentService(mockRepo, nil)

		existing := &model.Comment{UserID: "owner", PostID: "p1", Content: "old"}
		existing.ID = "c1"
		mockRepo.On("GetByID", "c1").Return(existing, nil)

		_, err := service.Update("c1", "intruder", "hacked")
		assert.ErrorIs(t, err, ErrNotCommentOwner)
	})
}

func TestDeleteComment(t *testing.T) {
	t.Run("Admin can delete any comment", func(t *testing.T) {
		mockRepo := new(MockCommentRepository)
		service := NewCommentService(mockRepo, nil)

		existing := &model.Comment{UserID: "owner", PostID: "p1", Content: "old"}
		existing.ID = "c1"
		mockRepo.On("GetByID", "c1").Return(existing, nil)
		mockRepo.On("Delete", existing).Return(nil)

		err := service.Delete("c1", "admin-user", true)
		assert.NoError(t, err)
	})

	t.Run("Stranger cannot delete", func(t *testing.T) {
		mockRepo := new(MockCommentRepository)
		service := NewCommentService(mockRepo, nil)

		existing := &model.Comment{UserID: "owner", PostID: "p1", Content: "old"}
		existing.ID = "c1"
		mockRepo.On("GetByID", "c1").Return(existing, nil)

		err := service.Delete("c1", "intruder", false)
		assert.ErrorIs(t, err, ErrNotCommentOwner)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything)
	})
}
