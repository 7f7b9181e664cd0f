package repository

import (
	"trendz_backend/internal/domain/post/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepository interface {
	Create(post *model.Post) error
	GetByID(id string) (*model.Post, error)
	GetList(offset, limit int) ([]model.Post, error)
	Count() (int64, error)
	GetByUserID(userID string) ([]model.Post, error)
	GetByTrendTopicID(topicID string) ([]model.Post, error)
	GetByIDs(ids []string) ([]model.Post, error)
	Update(post *model.Post) error
	Delete(post *model.Post) error

	UserExists(id string) (bool, error)

	// CreateShare 返回是否真正落了一条新记录（false = (user, post) 已存在）
	CreateShare(share *model.UserSharePost) (bool, error)
	// DeleteShare 返回是否删到了记录
	DeleteShare(userID, postID string) (bool, error)
	ListSharesByUser(userID string) ([]model.UserSharePost, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *model.Post) error {
	return r.db.Create(post).Error
}

func (r *postRepository) GetByID(id string) (*model.Post, error) {
	var post model.Post
	if err := r.db.Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetList(offset, limit int) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.Order("created_at desc").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *postRepository) Count() (int64, error) {
	var cnt int64
	err := r.db.Model(&model.Post{}).Count(&cnt).Error
	return cnt, err
}

func (r *postRepository) GetByUserID(userID string) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&posts).Error
	return posts, err
}

func (r *postRepository) GetByTrendTopicID(topicID string) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.Where("trend_topic_id = ?", topicID).Order("created_at desc").Find(&posts).Error
	return posts, err
}

func (r *postRepository) GetByIDs(ids []string) ([]model.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var posts []model.Post
	err := r.db.Where("id IN ?", ids).Find(&posts).Error
	return posts, err
}

func (r *postRepository) Update(post *model.Post) error {
	return r.db.Save(post).Error
}

func (r *postRepository) Delete(post *model.Post) error {
	return r.db.Delete(post).Error
}

func (r *postRepository) UserExists(id string) (bool, error) {
	var cnt int64
	err := r.db.Table("users").Where("id = ? AND deleted_at IS NULL", id).Count(&cnt).Error
	return cnt > 0, err
}

// --- Share ---

func (r *postRepository) CreateShare(share *model.UserSharePost) (bool, error) {
	// 撞唯一键不报错，由 RowsAffected 区分重复分享
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(share)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *postRepository) DeleteShare(userID, postID string) (bool, error) {
	res := r.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&model.UserSharePost{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *postRepository) ListSharesByUser(userID string) ([]model.UserSharePost, error) {
	var shares []model.UserSharePost
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&shares).Error
	return shares, err
}
