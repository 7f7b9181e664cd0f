package repository

import (
	"trendz_backend/internal/domain/shop/model"
	userModel "trendz_backend/internal/domain/user/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserItemWithDetail 持有记录及商品详情
type UserItemWithDetail struct {
	model.UserItem
	Item model.ShopItem `gorm:"-" json:"item"`
}

type ShopRepository interface {
	// Transaction 在单个数据库事务内执行 fn，fn 收到的是绑定事务的仓储
	Transaction(fn func(tx ShopRepository) error) error

	CreateItem(item *model.ShopItem) error
	GetItem(id string) (*model.ShopItem, error)
	UpdateItem(item *model.ShopItem) error
	DeleteItem(item *model.ShopItem) error
	ListItems() ([]model.ShopItem, error)
	ListDiscounted() ([]model.ShopItem, error)

	CreateUserItem(ui *model.UserItem) error
	ListUserItems(userID string) ([]model.UserItem, error)
	GetItemsByIDs(ids []string) ([]model.ShopItem, error)

	// GetUserForUpdate 行锁读用户，扣分与发货同事务串行化
	GetUserForUpdate(id string) (*userModel.User, error)
	SaveUser(user *userModel.User) error
}

type shopRepository struct {
	db *gorm.DB
}

func NewShopRepository(db *gorm.DB) ShopRepository {
	return &shopRepository{db: db}
}

func (r *shopRepository) Transaction(fn func(tx ShopRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&shopRepository{db: tx})
	})
}

func (r *shopRepository) CreateItem(item *model.ShopItem) error {
	return r.db.Create(item).Error
}

func (r *shopRepository) GetItem(id string) (*model.ShopItem, error) {
	var item model.ShopItem
	if err := r.db.Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *shopRepository) UpdateItem(item *model.ShopItem) error {
	return r.db.Save(item).Error
}

func (r *shopRepository) DeleteItem(item *model.ShopItem) error {
	return r.db.Delete(item).Error
}

func (r *shopRepository) ListItems() ([]model.ShopItem, error) {
	var items []model.ShopItem
	err := r.db.Order("created_at desc").Find(&items).Error
	return items, err
}

func (r *shopRepository) ListDiscounted() ([]model.ShopItem, error) {
	var items []model.ShopItem
	err := r.db.Where("discount > 0").Order("created_at desc").Find(&items).Error
	return items, err
}

func (r *shopRepository) CreateUserItem(ui *model.UserItem) error {
	return r.db.Create(ui).Error
}

func (r *shopRepository) ListUserItems(userID string) ([]model.UserItem, error) {
	var items []model.UserItem
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&items).Error
	return items, err
}

func (r *shopRepository) GetItemsByIDs(ids []string) ([]model.ShopItem, error) {
	var items []model.ShopItem
	if len(ids) == 0 {
		return items, nil
	}
	err := r.db.Unscoped().Where("id IN ?", ids).Find(&items).Error
	return items, err
}

func (r *shopRepository) GetUserForUpdate(id string) (*userModel.User, error) {
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

func (r *shopRepository) SaveUser(user *userModel.User) error {
	return r.db.Save(user).Error
}
