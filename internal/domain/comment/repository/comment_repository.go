package repository

import (
	"trendz_backend/internal/domain/comment/model"
	notifModel "trendz_backend/internal/domain/notification/model"
	postModel "trendz_backend/internal/domain/post/model"
	userModel "trendz_backend/internal/domain/user/model"

	"gorm.io/gorm"
)

// CommentWithUser 评论及评论者的展示信息
type CommentWithUser struct {
	model.Comment
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar"`
}

type CommentRepository interface {
	// Transaction 在单个数据库事务内执行 fn，fn 收到的是绑定事务的仓储
	Transaction(fn func(tx CommentRepository) error) error

	Create(comment *model.Comment) error
	GetByID(id string) (*model.Comment, error)
	Update(comment *model.Comment) error
	Delete(comment *model.Comment) error
	ListByPost(postID string) ([]CommentWithUser, error)

	GetPost(id string) (*postModel.Post, error)
	GetUser(id string) (*userModel.User, error)
	CreateNotification(n *notifModel.Notification) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Transaction(fn func(tx CommentRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&commentRepository{db: tx})
	})
}

func (r *commentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) GetByID(id string) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Update(comment *model.Comment) error {
	return r.db.Save(comment).Error
}

func (r *commentRepository) Delete(comment *model.Comment) error {
	return r.db.Delete(comment).Error
}

func (r *commentRepository) ListByPost(postID string) ([]CommentWithUser, error) {
	var comments []CommentWithUser
	err := r.db.Model(&model.Comment{}).
		Select("comments.*, u.display_name, u.avatar").
		Joins("JOIN users u ON u.id = comments.user_id").
		Where("comments.post_id = ? AND comments.deleted_at IS NULL", postID).
		Order("comments.created_at asc").
		Scan(&comments).Error
	return comments, err
}

func (r *commentRepository) GetPost(id string) (*postModel.Post, error) {
	var post postModel.Post
	if err := r.db.Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *commentRepository) GetUser(id string) (*userModel.User, error) {
	var user userModel.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *commentRepository) CreateNotification(n *notifModel.Notification) error {
	return r.db.Create(n).Error
}
