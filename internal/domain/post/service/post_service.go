package service

import (
	"errors"
	"time"

	"trendz_backend/internal/domain/post/model"
	"trendz_backend/internal/domain/post/repository"
	"trendz_backend/pkg/utils"

	"gorm.io/gorm"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrAlreadyShared = errors.New("post already shared")
	ErrShareNotFound = errors.New("share not found")
)

// TombstoneReason 被删帖子的占位文案
const TombstoneReason = "bài viết đã bị xóa"

// CreatePostInput 发帖输入
type CreatePostInput struct {
	Title        string
	Content      string
	TrendTopicID *string
	ImageURL     string
	VideoURL     string
}

// UpdatePostInput 改帖输入
type UpdatePostInput struct {
	Title        string
	Content      string
	TrendTopicID *string
	ImageURL     string
	VideoURL     string
}

// SharedPost 分享列表条目：要么引用在世的帖子，要么是墓碑
// 墓碑不伪造原帖字段，只携带原帖ID与原因
type SharedPost struct {
	ShareID  string      `json:"shareId"`
	PostID   string      `json:"postId"`
	SharedAt time.Time   `json:"sharedAt"`
	Post     *model.Post `json:"post,omitempty"`
	Removed  bool        `json:"removed"`
	Reason   string      `json:"reason,omitempty"`
}

type PostService interface {
	Create(userID string, input CreatePostInput) (*model.Post, error)
	Update(id string, input UpdatePostInput) (*model.Post, error)
	Get(id string) (*model.Post, error)
	List(p *utils.Pagination) (*utils.PageResult, error)
	ListByUser(userID string) ([]model.Post, error)
	ListByTrendTopic(topicID string) ([]model.Post, error)
	Delete(id string) error
	Ban(id string) (*model.Post, error)

	Share(userID, postID string) error
	Unshare(userID, postID string) error
	ListSharedByUser(userID string) ([]SharedPost, error)
}

type postService struct {
	repo repository.PostRepository
}

func NewPostService(repo repository.PostRepository) PostService {
	return &postService{repo: repo}
}

func (s *postService) Create(userID string, input CreatePostInput) (*model.Post, error) {
	post := &model.Post{
		UserID:       userID,
		TrendTopicID: input.TrendTopicID,
		Title:        input.Title,
		Content:      input.Content,
		Status:       model.StatusPublished,
	}
	applyMedia(post, input.ImageURL, input.VideoURL)

	if err := s.repo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Update(id string, input UpdatePostInput) (*model.Post, error) {
	post, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		post.Title = input.Title
	}
	if input.Content != "" {
		post.Content = input.Content
	}
	if input.TrendTopicID != nil {
		post.TrendTopicID = input.TrendTopicID
	}
	applyMedia(post, input.ImageURL, input.VideoURL)

	if err := s.repo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

// applyMedia 图片与视频互斥：设置其一清空另一个
func applyMedia(post *model.Post, imageURL, videoURL string) {
	if imageURL != "" {
		post.ImageURL = imageURL
		post.VideoURL = ""
	} else if videoURL != "" {
		post.VideoURL = videoURL
		post.ImageURL = ""
	}
}

func (s *postService) Get(id string) (*model.Post, error) {
	post, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// List 首页流分页返回
func (s *postService) List(p *utils.Pagination) (*utils.PageResult, error) {
	offset, limit := p.GetPageOffset()

	total, err := s.repo.Count()
	if err != nil {
		return nil, err
	}
	posts, err := s.repo.GetList(offset, limit)
	if err != nil {
		return nil, err
	}

	return &utils.PageResult{
		List:  posts,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	}, nil
}

func (s *postService) ListByUser(userID string) ([]model.Post, error) {
	exists, err := s.repo.UserExists(userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}
	return s.repo.GetByUserID(userID)
}

func (s *postService) ListByTrendTopic(topicID string) ([]model.Post, error) {
	return s.repo.GetByTrendTopicID(topicID)
}

// Delete 标记 Deleted 后软删除；既有分享记录保留，由墓碑兜底
func (s *postService) Delete(id string) error {
	post, err := s.Get(id)
	if err != nil {
		return err
	}
	post.Status = model.StatusDeleted
	if err := s.repo.Update(post); err != nil {
		return err
	}
	return s.repo.Delete(post)
}

func (s *postService) Ban(id string) (*model.Post, error) {
	post, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	post.Status = model.StatusBanned
	if err := s.repo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

// --- Share ---

func (s *postService) Share(userID, postID string) error {
	if _, err := s.Get(postID); err != nil {
		return err
	}

	created, err := s.repo.CreateShare(&model.UserSharePost{UserID: userID, PostID: postID})
	if err != nil {
		return err
	}
	if !created {
		return ErrAlreadyShared
	}
	return nil
}

func (s *postService) Unshare(userID, postID string) error {
	deleted, err := s.repo.DeleteShare(userID, postID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrShareNotFound
	}
	return nil
}

// ListSharedByUser 拉取分享列表并回联原帖
// 原帖已删除时返回墓碑条目而不是报错
func (s *postService) ListSharedByUser(userID string) ([]SharedPost, error) {
	shares, err := s.repo.ListSharesByUser(userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(shares))
	for i, sh := range shares {
		ids[i] = sh.PostID
	}
	posts, err := s.repo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*model.Post, len(posts))
	for i := range posts {
		byID[posts[i].ID] = &posts[i]
	}

	result := make([]SharedPost, 0, len(shares))
	for _, sh := range shares {
		entry := SharedPost{
			ShareID:  sh.ID,
			PostID:   sh.PostID,
			SharedAt: sh.CreatedAt,
		}
		if post, ok := byID[sh.PostID]; ok && post.Status != model.StatusDeleted {
			entry.Post = post
		} else {
			entry.Removed = true
			entry.Reason = TombstoneReason
		}
		result = append(result, entry)
	}
	return result, nil
}
