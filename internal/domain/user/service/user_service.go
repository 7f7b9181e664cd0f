package service

import (
	"errors"
	"time"

	notifModel "trendz_backend/internal/domain/notification/model"
	"trendz_backend/internal/domain/user/model"
	"trendz_backend/internal/domain/user/repository"
	"trendz_backend/internal/pkg/live"
	"trendz_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("username or email already taken")
	ErrAuthFailed   = errors.New("invalid username or password")
	ErrUserBanned   = errors.New("account is banned")
	ErrFollowSelf   = errors.New("cannot follow self")
)

// UpdateProfileInput 个人资料更新字段
type UpdateProfileInput struct {
	DisplayName  string
	Avatar       string
	Bio          string
	Hometown     string
	School       string
	Gender       string
	Relationship string
	Birthday     *time.Time
}

// UserService 用户与关系链服务
type UserService interface {
	Register(username, email, password, displayName string) (*model.User, error)
	Login(username, password string) (string, *model.User, error)
	GetUsers() ([]model.User, error)
	GetUser(id string) (*model.User, error)
	SearchUsers(callerID, keyword string) ([]model.User, error)
	UpdateProfile(id string, input UpdateProfileInput) (*model.User, error)
	BanUser(id string) error
	DeleteUser(id string) error

	// ToggleFollow 关注/取关开关，返回操作后是否处于关注状态
	ToggleFollow(followerID, followingID string) (bool, error)
	ListFollowing(userID string) ([]model.User, error)
	ListFollowers(userID string) ([]model.User, error)
	ListFriends(userID string) ([]model.User, error)
}

type userService struct {
	repo   repository.UserRepository
	broker *live.Broker
}

// NewUserService 创建用户服务，broker 可为 nil（测试场景，不做实时推送）
func NewUserService(repo repository.UserRepository, broker *live.Broker) UserService {
	return &userService{repo: repo, broker: broker}
}

func (s *userService) Register(username, email, password, displayName string) (*model.User, error) {
	if _, err := s.repo.GetByUsername(username); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.repo.GetByEmail(email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if displayName == "" {
		displayName = username
	}
	user := &model.User{
		Username:    username,
		Email:       email,
		Password:    string(hash),
		DisplayName: displayName,
		Role:        model.RoleUser,
		Status:      model.StatusActive,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Login(username, password string) (string, *model.User, error) {
	user, err := s.repo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrAuthFailed
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrAuthFailed
	}
	if user.Status == model.StatusBanned {
		return "", nil, ErrUserBanned
	}

	token, _, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *userService) GetUsers() ([]model.User, error) {
	return s.repo.GetList()
}

func (s *userService) GetUser(id string) (*model.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) SearchUsers(callerID, keyword string) ([]model.User, error) {
	return s.repo.Search(callerID, keyword)
}

func (s *userService) UpdateProfile(id string, input UpdateProfileInput) (*model.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != "" {
		user.DisplayName = input.DisplayName
	}
	if input.Avatar != "" {
		user.Avatar = input.Avatar
	}
	user.Bio = input.Bio
	user.Hometown = input.Hometown
	user.School = input.School
	user.Gender = input.Gender
	user.Relationship = input.Relationship
	if input.Birthday != nil {
		user.Birthday = input.Birthday
	}

	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) BanUser(id string) error {
	user, err := s.GetUser(id)
	if err != nil {
		return err
	}
	user.Status = model.StatusBanned
	return s.repo.Update(user)
}

func (s *userService) DeleteUser(id string) error {
	user, err := s.GetUser(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(user)
}

// ToggleFollow 同一操作完成关注与取关：有边删边，无边建边并通知被关注者
// 整个读改写在一个事务里，并发双击最终串行化在唯一键上，后写者胜
func (s *userService) ToggleFollow(followerID, followingID string) (bool, error) {
	if followerID == followingID {
		return false, ErrFollowSelf
	}

	var followed bool
	var notif *notifModel.Notification

	err := s.repo.Transaction(func(tx repository.UserRepository) error {
		follower, err := tx.GetByID(followerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if _, err := tx.GetByID(followingID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		exists, err := tx.FollowExists(followerID, followingID)
		if err != nil {
			return err
		}
		if exists {
			followed = false
			return tx.DeleteFollow(followerID, followingID)
		}

		if err := tx.CreateFollow(&model.UserFollow{FollowerID: followerID, FollowingID: followingID}); err != nil {
			return err
		}
		followed = true

		notif = &notifModel.Notification{
			UserID:  followingID,
			ActorID: followerID,
			Actor:   follower.Username,
			Content: "đã theo dõi bạn",
			Status:  notifModel.StatusUnread,
		}
		return tx.CreateNotification(notif)
	})
	if err != nil {
		return false, err
	}

	// 事务提交后才推实时通知
	if followed && s.broker != nil && notif != nil {
		s.broker.Publish(live.NotifyChannel(followingID), notif)
	}
	return followed, nil
}

func (s *userService) ListFollowing(userID string) ([]model.User, error) {
	if _, err := s.GetUser(userID); err != nil {
		return nil, err
	}
	return s.repo.ListFollowing(userID)
}

func (s *userService) ListFollowers(userID string) ([]model.User, error) {
	if _, err := s.GetUser(userID); err != nil {
		return nil, err
	}
	return s.repo.ListFollowers(userID)
}

func (s *userService) ListFriends(userID string) ([]model.User, error) {
	if _, err := s.GetUser(userID); err != nil {
		return nil, err
	}
	return s.repo.ListFriends(userID)
}
