package service

import (
	"testing"

	notifModel "trendz_backend/internal/domain/notification/model"
	"trendz_backend/internal/domain/user/model"
	"trendz_backend/internal/domain/user/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MockUserRepository is a mock of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Transaction(fn func(tx repository.UserRepository) error) error {
	// 测试里直接用同一个 mock 执行事务体
	return fn(m)
}

func (m *MockUserRepository) Create(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id string) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*model.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetList() ([]model.User, error) {
	args := m.Called()
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Search(excludeID, keyword string) ([]model.User, error) {
	args := m.Called(excludeID, keyword)
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FollowExists(followerID, followingID string) (bool, error) {
	args := m.Called(followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) CreateFollow(follow *model.UserFollow) error {
	args := m.Called(follow)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteFollow(followerID, followingID string) error {
	args := m.Called(followerID, followingID)
	return args.Error(0)
}

func (m *MockUserRepository) ListFollowing(userID string) ([]model.User, error) {
	args := m.Called(userID)
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) ListFollowers(userID string) ([]model.User, error) {
	args := m.Called(userID)
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) ListFriends(userID string) ([]model.User, error) {
	args := m.Called(userID)
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) CreateNotification(n *notifModel.Notification) error {
	args := m.Called(n)
	return args.Error(0)
}

func createTestUser(id, username string) *model.User {
	u := &model.User{
		Username:    username,
		Email:       username + "@example.com",
		DisplayName: username,
		Role:        model.RoleUser,
		Status:      model.StatusActive,
	}
	u.ID = id
	return u
}

func TestRegister(t *testing.T) {
	t.Run("Register success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo, nil)

		mockRepo.On("GetByUsername", "alice").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("GetByEmail", "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("Create", mock.AnythingOfType("*model.User")).Return(nil)

		user, err := service.Register("alice", "alice@example.com", "secret123", "")

		assert.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		// 显示名缺省回落到用户名
		assert.Equal(t, "alice", user.DisplayName)
		// 密码必须以哈希落库
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Duplicate username rejected", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo, nil)

		mockRepo.On("GetByUsername", "alice").Return(createTestUser("u1", "alice"), nil)

		_, err := service.Register("alice", "other@example.com", "secret123", "")

		assert.ErrorIs(t, err, ErrUserExists)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)

	t.Run("Banned user cannot login", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo, nil)

		banned := createTestUser("u1", "alice")
		banned.Password = string(hash)
		banned.Status = model.StatusBanned
		mockRepo.On("GetByUsername", "alice").Return(banned, nil)

		_, _, err := service.Login("alice", "secret123")
		assert.ErrorIs(t, err, ErrUserBanned)
	})

	t.Run("Wrong password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo, nil)

		user := createTestUser("u1", "alice")
		user.Password = string(hash)
		mockRepo.On("GetByUsername", "alice").Return(user, nil)

		_, _, err := service.Login("alice", "wrong")
		assert.ErrorIs(t, err, ErrAuthFailed)
	})
}

func TestToggleFollow(t *testing.T) {
	t.Run("Self follow rejected", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo, nil)

		_, err := service.ToggleFollow("u1", "u1")

		assert.ErrorIs(t, err, ErrFollowSelf)
		mockRepo.AssertNotCalled(t, "CreateFollow", mock.Anything)
	})

	t.Run("First toggle creates edge and notification", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo, nil)

		mockRepo.On("GetByID", "u1").Return(createTestUser("u1", "alice"), nil)
		mockRepo.On("GetByID", "u2").Return(createTestUser("u2", "bob"), nil)
		mockRepo.On("FollowExists", "u1", "u2").Return(false, nil)
		mockRepo.On("CreateFollow", mock.AnythingOfType("*model.UserFollow")).Return(nil)
		mockRepo.On("CreateNotification", mock.MatchedBy(func(n *notifModel.Notification) bool {
			return n.UserID == "u2" && n.ActorID == "u1" && n.Content == "đã theo dõi bạn"
		})).Return(nil)

		followed, err := service.ToggleFollow("u1", "u2")

		assert.NoError(t, err)
		assert.True(t, followed)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Second toggle removes edge without notification", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo, nil)

		mockRepo.On("GetByID", "u1").Return(createTestUser("u1", "alice"), nil)
		mockRepo.On("GetByID", "u2").Return(createTestUser("u2", "bob"), nil)
		mockRepo.On("FollowExists", "u1", "u2").Return(true, nil)
		mockRepo.On("DeleteFollow", "u1", "u2").Return(nil)

		followed, err := service.ToggleFollow("u1", "u2")

		assert.NoError(t, err)
		assert.False(t, followed)
		mockRepo.AssertNotCalled(t, "CreateNotification", mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown following target", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo, nil)

		mockRepo.On("GetByID", "u1").Return(createTestUser("u1", "alice"), nil)
		mockRepo.On("GetByID", "missing").Return(nil, gorm.ErrRecordNotFound)

		_, err := service.ToggleFollow("u1", "missing")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestListFriends(t *testing.T) {
	t.Run("Friends for unknown user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo, nil)

		mockRepo.On("GetByID", "missing").Return(nil, gorm.ErrRecordNotFound)

		_, err := service.ListFriends("missing")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("Friends returned from intersection query", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo, nil)

		friends := []model.User{*createTestUser("u2", "bob")}
		mockRepo.On("GetByID", "u1").Return(createTestUser("u1", "alice"), nil)
		mockRepo.On("ListFriends", "u1").Return(friends, nil)

		result, err := service.ListFriends("u1")

		assert.NoError(t, err)
		assert.Len(t, result, 1)
		assert.Equal(t, "u2", result[0].ID)
	})
}
