package repository

import (
	"trendz_backend/internal/domain/user/model"
	notifModel "trendz_backend/internal/domain/notification/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	// Transaction 在单个数据库事务内执行 fn，fn 收到的是绑定事务的仓储
	Transaction(fn func(tx UserRepository) error) error

	Create(user *model.User) error
	GetByID(id string) (*model.User, error)
	GetByUsername(username string) (*model.User, error)
	GetByEmail(email string) (*model.User, error)
	GetList() ([]model.User, error)
	Search(excludeID, keyword string) ([]model.User, error)
	Update(user *model.User) error
	Delete(user *model.User) error

	FollowExists(followerID, followingID string) (bool, error)
	CreateFollow(follow *model.UserFollow) error
	DeleteFollow(followerID, followingID string) error
	ListFollowing(userID string) ([]model.User, error)
	ListFollowers(userID string) ([]model.User, error)
	ListFriends(userID string) ([]model.User, error)

	CreateNotification(n *notifModel.Notification) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Transaction(fn func(tx UserRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&userRepository{db: tx})
	})
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) GetByID(id string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetList() ([]model.User, error) {
	var users []model.User
	err := r.db.Order("created_at desc").Find(&users).Error
	return users, err
}

func (r *userRepository) Search(excludeID, keyword string) ([]model.User, error) {
	var users []model.User
	err := r.db.
		Where("id <> ?", excludeID).
		Where("username ILIKE ? OR display_name ILIKE ?", "%"+keyword+"%", "%"+keyword+"%").
		Find(&users).Error
	return users, err
}

func (r *userRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) Delete(user *model.User) error {
	return r.db.Delete(user).Error
}

// --- Follow ---

func (r *userRepository) FollowExists(followerID, followingID string) (bool, error) {
	var cnt int64
	err := r.db.Model(&model.UserFollow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *userRepository) CreateFollow(follow *model.UserFollow) error {
	// 幂等：并发重复关注落在唯一键上不报错
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(follow).Error
}

func (r *userRepository) DeleteFollow(followerID, followingID string) error {
	return r.db.
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&model.UserFollow{}).Error
}

func (r *userRepository) ListFollowing(userID string) ([]model.User, error) {
	var users []model.User
	err := r.db.
		Joins("JOIN user_follows f ON f.following_id = users.id").
		Where("f.follower_id = ?", userID).
		Find(&users).Error
	return users, err
}

func (r *userRepository) ListFollowers(userID string) ([]model.User, error) {
	var users []model.User
	err := r.db.
		Joins("JOIN user_follows f ON f.follower_id = users.id").
		Where("f.following_id = ?", userID).
		Find(&users).Error
	return users, err
}

// ListFriends 好友 = 双向关注，一条交集查询得出，不做逐边存在性探测
func (r *userRepository) ListFriends(userID string) ([]model.User, error) {
	var users []model.User
	err := r.db.Raw(`
		SELECT u.* FROM users u
		JOIN user_follows f1 ON f1.following_id = u.id AND f1.follower_id = ?
		JOIN user_follows f2 ON f2.follower_id = u.id AND f2.following_id = ?
		WHERE u.deleted_at IS NULL`,
		userID, userID).Scan(&users).Error
	return users, err
}

func (r *userRepository) CreateNotification(n *notifModel.Notification) error {
	return r.db.Create(n).Error
}
