package service

import (
	"errors"

	"trendz_backend/internal/domain/shop/model"
	"trendz_backend/internal/domain/shop/repository"

	"gorm.io/gorm"
)

var (
	ErrItemNotFound      = errors.New("shop item not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrInsufficientPoint = errors.New("insufficient point balance")
	ErrInvalidItemType   = errors.New("invalid shop item type")
)

// ShopItemInput 商品建改字段
type ShopItemInput struct {
	Name        string
	Description string
	Price       int
	Type        string
	ImageURL    string
	Discount    int
}

// ShopService 积分商城服务
type ShopService interface {
	CreateItem(input ShopItemInput) (*model.ShopItem, error)
	UpdateItem(id string, input ShopItemInput) (*model.ShopItem, error)
	GetItem(id string) (*model.ShopItem, error)
	DeleteItem(id string) error
	ListItems() ([]model.ShopItem, error)
	ListDiscounted() ([]model.ShopItem, error)

	// Purchase 扣分与发货在一个事务里，余额不足整单拒绝
	Purchase(userID, itemID string) (*model.UserItem, error)
	ListUserItems(userID string) ([]repository.UserItemWithDetail, error)
}

type shopService struct {
	repo repository.ShopRepository
}

func NewShopService(repo repository.ShopRepository) ShopService {
	return &shopService{repo: repo}
}

func (s *shopService) CreateItem(input ShopItemInput) (*model.ShopItem, error) {
	if !model.ValidItemType(input.Type) {
		return nil, ErrInvalidItemType
	}
	item := &model.ShopItem{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Type:        input.Type,
		ImageURL:    input.ImageURL,
		Discount:    input.Discount,
	}
	if err := s.repo.CreateItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *shopService) UpdateItem(id string, input ShopItemInput) (*model.ShopItem, error) {
	item, err := s.GetItem(id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		item.Name = input.Name
	}
	if input.Description != "" {
		item.Description = input.Description
	}
	if input.Price > 0 {
		item.Price = input.Price
	}
	if input.Type != "" {
		if !model.ValidItemType(input.Type) {
			return nil, ErrInvalidItemType
		}
		item.Type = input.Type
	}
	if input.ImageURL != "" {
		item.ImageURL = input.ImageURL
	}
	if input.Discount >= 0 {
		item.Discount = input.Discount
	}

	if err := s.repo.UpdateItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *shopService) GetItem(id string) (*model.ShopItem, error) {
	item, err := s.repo.GetItem(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *shopService) DeleteItem(id string) error {
	item, err := s.GetItem(id)
	if err != nil {
		return err
	}
	return s.repo.DeleteItem(item)
}

func (s *shopService) ListItems() ([]model.ShopItem, error) {
	return s.repo.ListItems()
}

func (s *shopService) ListDiscounted() ([]model.ShopItem, error) {
	return s.repo.ListDiscounted()
}

// Purchase 行锁住买家后校验余额，扣分与持有记录落在同一事务，
// 并发抢购串行化在行锁上，余额不会被扣成负数
func (s *shopService) Purchase(userID, itemID string) (*model.UserItem, error) {
	var owned *model.UserItem

	err := s.repo.Transaction(func(tx repository.ShopRepository) error {
		item, err := tx.GetItem(itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}

		user, err := tx.GetUserForUpdate(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if user.Point < item.Price {
			return ErrInsufficientPoint
		}

		user.Point -= item.Price
		if err := tx.SaveUser(user); err != nil {
			return err
		}

		owned = &model.UserItem{UserID: userID, ItemID: itemID}
		return tx.CreateUserItem(owned)
	})
	if err != nil {
		return nil, err
	}
	return owned, nil
}

func (s *shopService) ListUserItems(userID string) ([]repository.UserItemWithDetail, error) {
	userItems, err := s.repo.ListUserItems(userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(userItems))
	for _, ui := range userItems {
		ids = append(ids, ui.ItemID)
	}
	items, err := s.repo.GetItemsByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.ShopItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	result := make([]repository.UserItemWithDetail, 0, len(userItems))
	for _, ui := range userItems {
		result = append(result, repository.UserItemWithDetail{
			UserItem: ui,
			Item:     byID[ui.ItemID],
		})
	}
	return result, nil
}
