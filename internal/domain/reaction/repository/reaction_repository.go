package repository

import (
	notifModel "trendz_backend/internal/domain/notification/model"
	postModel "trendz_backend/internal/domain/post/model"
	"trendz_backend/internal/domain/reaction/model"
	userModel "trendz_backend/internal/domain/user/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactionWithUser 反应及反应者的展示信息
type ReactionWithUser struct {
	model.Reaction
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar"`
}

type ReactionRepository interface {
	// Transaction 在单个数据库事务内执行 fn，fn 收到的是绑定事务的仓储
	Transaction(fn func(tx ReactionRepository) error) error

	GetPost(id string) (*postModel.Post, error)
	GetReaction(userID, postID string) (*model.Reaction, error)
	CreateReaction(reaction *model.Reaction) error
	UpdateReactionType(userID, postID, reactionType string) error
	DeleteReaction(userID, postID string) error
	ListByPost(postID string) ([]ReactionWithUser, error)
	UpdatePostLikes(postID string, delta int) error

	GetUser(id string) (*userModel.User, error)
	// GetUserForUpdate 行锁读用户，积分增减在同一事务内串行化
	GetUserForUpdate(id string) (*userModel.User, error)
	SaveUser(user *userModel.User) error
	CreateNotification(n *notifModel.Notification) error
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) Transaction(fn func(tx ReactionRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&reactionRepository{db: tx})
	})
}

func (r *reactionRepository) GetPost(id string) (*postModel.Post, error) {
	var post postModel.Post
	if err := r.db.Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *reactionRepository) GetReaction(userID, postID string) (*model.Reaction, error) {
	var reaction model.Reaction
	err := r.db.
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&reaction).Error
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

func (r *reactionRepository) CreateReaction(reaction *model.Reaction) error {
	return r.db.Create(reaction).Error
}

func (r *reactionRepository) UpdateReactionType(userID, postID, reactionType string) error {
	return r.db.Model(&model.Reaction{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Update("type", reactionType).Error
}

func (r *reactionRepository) DeleteReaction(userID, postID string) error {
	return r.db.
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.Reaction{}).Error
}

func (r *reactionRepository) ListByPost(postID string) ([]ReactionWithUser, error) {
	var reactions []ReactionWithUser
	err := r.db.Model(&model.Reaction{}).
		Select("reactions.*, u.display_name, u.avatar").
		Joins("JOIN users u ON u.id = reactions.user_id").
		Where("reactions.post_id = ?", postID).
		Order("reactions.created_at desc").
		Scan(&reactions).Error
	return reactions, err
}

func (r *reactionRepository) UpdatePostLikes(postID string, delta int) error {
	return r.db.Model(&postModel.Post{}).
		Where("id = ?", postID).
		Update("likes", gorm.Expr("likes + ?", delta)).Error
}

func (r *reactionRepository) GetUser(id string) (*userModel.User, error) {
	var user userModel.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *reactionRepository) GetUserForUpdate(id string) (*userModel.User, error) {
	var user userModel.User
	err := r.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *reactionRepository) SaveUser(user *userModel.User) error {
	return r.db.Save(user).Error
}

func (r *reactionRepository) CreateNotification(n *notifModel.Notification) error {
	return r.db.Create(n).Error
}
