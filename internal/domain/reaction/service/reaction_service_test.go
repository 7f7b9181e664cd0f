package service

import (
	"fmt"
	"strings"
	"testing"

	notifModel "trendz_backend/internal/domain/notification/model"
	postModel "trendz_backend/internal/domain/post/model"
	"trendz_backend/internal/domain/reaction/model"
	"trendz_backend/internal/domain/reaction/repository"
	userModel "trendz_backend/internal/domain/user/model"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// fakeReactionRepo 带状态的内存仓储，便于验证跨多次调用的积分/通知累积
type fakeReactionRepo struct {
	users     map[string]*userModel.User
	posts     map[string]*postModel.Post
	reactions map[string]*model.Reaction // key: userID|postID
	notifs    []*notifModel.Notification
}

func newFakeReactionRepo() *fakeReactionRepo {
	return &fakeReactionRepo{
		users:     make(map[string]*userModel.User),
		posts:     make(map[string]*postModel.Post),
		reactions: make(map[string]*model.Reaction),
	}
}

func (f *fakeReactionRepo) addUser(id, username string, point int) {
	u := &userModel.User{Username: username, Point: point}
	u.ID = id
	f.users[id] = u
}

func (f *fakeReactionRepo) addPost(id, authorID string) {
	p := &postModel.Post{UserID: authorID, Status: postModel.StatusPublished}
	p.ID = id
	f.posts[id] = p
}

func key(userID, postID string) string { return userID + "|" + postID }

func (f *fakeReactionRepo) Transaction(fn func(tx repository.ReactionRepository) error) error {
	return fn(f)
}

func (f *fakeReactionRepo) GetPost(id string) (*postModel.Post, error) {
	if p, ok := f.posts[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeReactionRepo) GetReaction(userID, postID string) (*model.Reaction, error) {
	if r, ok := f.reactions[key(userID, postID)]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeReactionRepo) CreateReaction(r *model.Reaction) error {
	f.reactions[key(r.UserID, r.PostID)] = r
	return nil
}

func (f *fakeReactionRepo) UpdateReactionType(userID, postID, reactionType string) error {
	if r, ok := f.reactions[key(userID, postID)]; ok {
		r.Type = reactionType
	}
	return nil
}

func (f *fakeReactionRepo) DeleteReaction(userID, postID string) error {
	delete(f.reactions, key(userID, postID))
	return nil
}

func (f *fakeReactionRepo) ListByPost(postID string) ([]repository.ReactionWithUser, error) {
	var result []repository.ReactionWithUser
	for _, r := range f.reactions {
		if r.PostID == postID {
			result = append(result, repository.ReactionWithUser{Reaction: *r})
		}
	}
	return result, nil
}

func (f *fakeReactionRepo) UpdatePostLikes(postID string, delta int) error {
	if p, ok := f.posts[postID]; ok {
		p.Likes += delta
	}
	return nil
}

func (f *fakeReactionRepo) GetUser(id string) (*userModel.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeReactionRepo) GetUserForUpdate(id string) (*userModel.User, error) {
	return f.GetUser(id)
}

func (f *fakeReactionRepo) SaveUser(u *userModel.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeReactionRepo) CreateNotification(n *notifModel.Notification) error {
	f.notifs = append(f.notifs, n)
	return nil
}

func (f *fakeReactionRepo) notifsFor(userID string) []*notifModel.Notification {
	var result []*notifModel.Notification
	for _, n := range f.notifs {
		if n.UserID == userID {
			result = append(result, n)
		}
	}
	return result
}

func TestReact(t *testing.T) {
	t.Run("Missing post", func(t *testing.T) {
		repo := newFakeReactionRepo()
		service := NewReactionService(repo, nil)

		_, err := service.React("u1", "missing", model.TypeLike)
		assert.ErrorIs(t, err, ErrPostNotFound)
	})

	t.Run("Invalid type", func(t *testing.T) {
		repo := newFakeReactionRepo()
		service := NewReactionService(repo, nil)

		_, err := service.React("u1", "p1", "NOPE")
		assert.ErrorIs(t, err, ErrInvalidType)
	})

	t.Run("First reaction awards one point and one notification", func(t *testing.T) {
		repo := newFakeReactionRepo()
		repo.addUser("author", "bob", 0)
		repo.addUser("reactor", "alice", 0)
		repo.addPost("p1", "author")
		service := NewReactionService(repo, nil)

		reaction, err := service.React("reactor", "p1", model.TypeLove)

		assert.NoError(t, err)
		assert.Equal(t, model.TypeLove, reaction.Type)
		assert.Equal(t, 1, repo.users["author"].Point)
		assert.Equal(t, 1, repo.posts["p1"].Likes)

		notifs := repo.notifsFor("author")
		assert.Len(t, notifs, 1)
		assert.Equal(t, "đã bày tỏ cảm xúc bài đăng của bạn", notifs[0].Content)
		assert.Equal(t, "alice", notifs[0].Actor)
	})

	t.Run("Type change awards nothing", func(t *testing.T) {
		repo := newFakeReactionRepo()
		repo.addUser("author", "bob", 0)
		repo.addUser("reactor", "alice", 0)
		repo.addPost("p1", "author")
		service := NewReactionService(repo, nil)

		_, err := service.React("reactor", "p1", model.TypeLike)
		assert.NoError(t, err)
		reaction, err := service.React("reactor", "p1", model.TypeHaha)
		assert.NoError(t, err)

		assert.Equal(t, model.TypeHaha, reaction.Type)
		assert.Equal(t, 1, repo.users["author"].Point)
		assert.Len(t, repo.notifsFor("author"), 1)
		assert.Equal(t, 1, repo.posts["p1"].Likes)
	})

	t.Run("Self reaction never awards", func(t *testing.T) {
		repo := newFakeReactionRepo()
		repo.addUser("author", "bob", 0)
		repo.addPost("p1", "author")
		service := NewReactionService(repo, nil)

		_, err := service.React("author", "p1", model.TypeLike)

		assert.NoError(t, err)
		assert.Equal(t, 0, repo.users["author"].Point)
		assert.Empty(t, repo.notifsFor("author"))
		assert.Equal(t, 1, repo.posts["p1"].Likes)
	})

	t.Run("Milestone notification on every 5th point", func(t *testing.T) {
		repo := newFakeReactionRepo()
		repo.addUser("author", "bob", 4)
		repo.addUser("reactor", "alice", 0)
		repo.addPost("p1", "author")
		service := NewReactionService(repo, nil)

		_, err := service.React("reactor", "p1", model.TypeLike)

		assert.NoError(t, err)
		assert.Equal(t, 5, repo.users["author"].Point)

		notifs := repo.notifsFor("author")
		assert.Len(t, notifs, 2)
		assert.Equal(t, "Chúng ta đã đạt 5 Trending Point 😀", notifs[1].Content)
	})
}

func TestUnreact(t *testing.T) {
	t.Run("Missing reaction", func(t *testing.T) {
		repo := newFakeReactionRepo()
		repo.addPost("p1", "author")
		service := NewReactionService(repo, nil)

		err := service.Unreact("u1", "p1")
		assert.ErrorIs(t, err, ErrReactionNotFound)
	})

	t.Run("Unreact restores pre-react balance", func(t *testing.T) {
		repo := newFakeReactionRepo()
		repo.addUser("author", "bob", 3)
		repo.addUser("reactor", "alice", 0)
		repo.addPost("p1", "author")
		service := NewReactionService(repo, nil)

		_, err := service.React("reactor", "p1", model.TypeLike)
		assert.NoError(t, err)
		assert.Equal(t, 4, repo.users["author"].Point)

		err = service.Unreact("reactor", "p1")
		assert.NoError(t, err)

		assert.Equal(t, 3, repo.users["author"].Point)
		assert.Equal(t, 0, repo.posts["p1"].Likes)
		_, err = repo.GetReaction("reactor", "p1")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("Self unreact leaves balance alone", func(t *testing.T) {
		repo := newFakeReactionRepo()
		repo.addUser("author", "bob", 2)
		repo.addPost("p1", "author")
		service := NewReactionService(repo, nil)

		_, err := service.React("author", "p1", model.TypeLike)
		assert.NoError(t, err)
		err = service.Unreact("author", "p1")
		assert.NoError(t, err)

		assert.Equal(t, 2, repo.users["author"].Point)
	})
}

// 一个用户给同一作者的 5 篇帖子各点一个反应：
// 作者积分 0→5，每个反应一条通知，第 5 分时额外一条里程碑通知
func TestReactScenarioFivePosts(t *testing.T) {
	repo := newFakeReactionRepo()
	repo.addUser("author", "bob", 0)
	repo.addUser("reactor", "alice", 0)
	service := NewReactionService(repo, nil)

	for i := 1; i <= 5; i++ {
		postID := fmt.Sprintf("p%d", i)
		repo.addPost(postID, "author")
		_, err := service.React("reactor", postID, model.TypeLike)
		assert.NoError(t, err)
	}

	assert.Equal(t, 5, repo.users["author"].Point)

	notifs := repo.notifsFor("author")
	assert.Len(t, notifs, 6)

	milestones := 0
	for _, n := range notifs {
		if strings.Contains(n.Content, "Trending Point") {
			milestones++
			assert.Equal(t, "Chúng ta đã đạt 5 Trending Point 😀", n.Content)
		}
	}
	assert.Equal(t, 1, milestones)
}
