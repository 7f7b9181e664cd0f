package repository

import (
	"trendz_backend/internal/domain/chat/model"
	userModel "trendz_backend/internal/domain/user/model"

	"gorm.io/gorm"
)

type ChatRepository interface {
	// Transaction 在单个数据库事务内执行 fn，fn 收到的是绑定事务的仓储
	Transaction(fn func(tx ChatRepository) error) error

	CreateBox(box *model.ChatBox) error
	CreateMember(member *model.ChatBoxMember) error
	// FindBoxByMembers 找同时包含两名成员的会话，实现幂等创建
	FindBoxByMembers(userA, userB string) (*model.ChatBox, error)
	GetBox(id string) (*model.ChatBox, error)
	ListBoxesByUser(userID string) ([]model.ChatBox, error)
	ListMembers(boxID string) ([]userModel.User, error)
	IsMember(boxID, userID string) (bool, error)
	DeleteBox(box *model.ChatBox) error

	CreateMessage(msg *model.Message) error
	GetMessage(id string) (*model.Message, error)
	UpdateMessage(msg *model.Message) error
	DeleteMessage(msg *model.Message) error
	ListMessages(boxID string, skip, limit int) ([]model.Message, error)

	GetUser(id string) (*userModel.User, error)
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Transaction(fn func(tx ChatRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&chatRepository{db: tx})
	})
}

func (r *chatRepository) CreateBox(box *model.ChatBox) error {
	return r.db.Create(box).Error
}

func (r *chatRepository) CreateMember(member *model.ChatBoxMember) error {
	return r.db.Create(member).Error
}

func (r *chatRepository) FindBoxByMembers(userA, userB string) (*model.ChatBox, error) {
	var box model.ChatBox
	err := r.db.Raw(`
		SELECT cb.* FROM chat_boxes cb
		JOIN chat_box_members m ON m.chat_box_id = cb.id
		WHERE m.user_id IN (?, ?) AND cb.deleted_at IS NULL
		GROUP BY cb.id
		HAVING COUNT(DISTINCT m.user_id) = 2
		LIMIT 1`,
		userA, userB).Scan(&box).Error
	if err != nil {
		return nil, err
	}
	if box.ID == "" {
		return nil, gorm.ErrRecordNotFound
	}
	return &box, nil
}

func (r *chatRepository) GetBox(id string) (*model.ChatBox, error) {
	var box model.ChatBox
	if err := r.db.Where("id = ?", id).First(&box).Error; err != nil {
		return nil, err
	}
	return &box, nil
}

func (r *chatRepository) ListBoxesByUser(userID string) ([]model.ChatBox, error) {
	var boxes []model.ChatBox
	err := r.db.
		Joins("JOIN chat_box_members m ON m.chat_box_id = chat_boxes.id").
		Where("m.user_id = ?", userID).
		Order("chat_boxes.updated_at desc").
		Find(&boxes).Error
	return boxes, err
}

func (r *chatRepository) ListMembers(boxID string) ([]userModel.User, error) {
	var users []userModel.User
	err := r.db.
		Joins("JOIN chat_box_members m ON m.user_id = users.id").
		Where("m.chat_box_id = ?", boxID).
		Find(&users).Error
	return users, err
}

func (r *chatRepository) IsMember(boxID, userID string) (bool, error) {
	var cnt int64
	err := r.db.Model(&model.ChatBoxMember{}).
		Where("chat_box_id = ? AND user_id = ?", boxID, userID).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *chatRepository) DeleteBox(box *model.ChatBox) error {
	return r.db.Delete(box).Error
}

func (r *chatRepository) CreateMessage(msg *model.Message) error {
	return r.db.Create(msg).Error
}

func (r *chatRepository) GetMessage(id string) (*model.Message, error) {
	var msg model.Message
	if err := r.db.Where("id = ?", id).First(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *chatRepository) UpdateMessage(msg *model.Message) error {
	return r.db.Save(msg).Error
}

func (r *chatRepository) DeleteMessage(msg *model.Message) error {
	return r.db.Delete(msg).Error
}

func (r *chatRepository) ListMessages(boxID string, skip, limit int) ([]model.Message, error) {
	var msgs []model.Message
	err := r.db.
		Where("chat_box_id = ?", boxID).
		Order("created_at desc").
		Offset(skip).
		Limit(limit).
		Find(&msgs).Error
	return msgs, err
}

func (r *chatRepository) GetUser(id string) (*userModel.User, error) {
	var user userModel.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
