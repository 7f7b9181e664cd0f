package service

import (
	"testing"

	"trendz_backend/internal/domain/shop/model"
	"trendz_backend/internal/domain/shop/repository"
	userModel "trendz_backend/internal/domain/user/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockShopRepository is a mock of ShopRepository
type MockShopRepository struct {
	mock.Mock
}

func (m *MockShopRepository) Transaction(fn func(tx repository.ShopRepository) error) error {
	// 测试里直接用同一个 mock 执行事务体
	return fn(m)
}

func (m *MockShopRepository) CreateItem(item *model.ShopItem) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockShopRepository) GetItem(id string) (*model.ShopItem, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShopItem), args.Error(1)
}

func (m *MockShopRepository) UpdateItem(item *model.ShopItem) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockShopRepository) DeleteItem(item *model.ShopItem) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockShopRepository) ListItems() ([]model.ShopItem, error) {
	args := m.Called()
	return args.Get(0).([]model.ShopItem), args.Error(1)
}

func (m *MockShopRepository) ListDiscounted() ([]model.ShopItem, error) {
	args := m.Called()
	return args.Get(0).([]model.ShopItem), args.Error(1)
}

func (m *MockShopRepository) CreateUserItem(ui *model.UserItem) error {
	args := m.Called(ui)
	return args.Error(0)
}

func (m *MockShopRepository) ListUserItems(userID string) ([]model.UserItem, error) {
	args := m.Called(userID)
	return args.Get(0).([]model.UserItem), args.Error(1)
}

func (m *MockShopRepository) GetItemsByIDs(ids []string) ([]model.ShopItem, error) {
	args := m.Called(ids)
	return args.Get(0).([]model.ShopItem), args.Error(1)
}

func (m *MockShopRepository) GetUserForUpdate(id string) (*userModel.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userModel.User), args.Error(1)
}

func (m *MockShopRepository) SaveUser(user *userModel.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func testItem(id string, price int) *model.ShopItem {
	item := &model.ShopItem{Name: "frame", Price: price, Type: model.TypeFrame}
	item.ID = id
	return item
}

func testBuyer(id string, point int) *userModel.User {
	u := &userModel.User{Username: "buyer", Point: point}
	u.ID = id
	return u
}

func TestPurchase(t *testing.T) {
	t.Run("Missing item", func(t *testing.T) {
		mockRepo := new(MockShopRepository)
		service := NewShopService(mockRepo)

		mockRepo.On("GetItem", "missing").Return(nil, gorm.ErrRecordNotFound)

		_, err := service.Purchase("u1", "missing")
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("Insufficient balance leaves balance unchanged", func(t *testing.T) {
		mockRepo := new(MockShopRepository)
		service := NewShopService(mockRepo)

		buyer := testBuyer("u1", 3)
		mockRepo.On("GetItem", "i1").Return(testItem("i1", 10), nil)
		mockRepo.On("GetUserForUpdate", "u1").Return(buyer, nil)

		_, err := service.Purchase("u1", "i1")

		assert.ErrorIs(t, err, ErrInsufficientPoint)
		assert.Equal(t, 3, buyer.Point)
		mockRepo.AssertNotCalled(t, "SaveUser", mock.Anything)
		mockRepo.AssertNotCalled(t, "CreateUserItem", mock.Anything)
	})

	t.Run("Successful purchase decrements exactly the price", func(t *testing.T) {
		mockRepo := new(MockShopRepository)
		service := NewShopService(mockRepo)

		buyer := testBuyer("u1", 12)
		mockRepo.On("GetItem", "i1").Return(testItem("i1", 10), nil)
		mockRepo.On("GetUserForUpdate", "u1").Return(buyer, nil)
		mockRepo.On("SaveUser", buyer).Return(nil)
		mockRepo.On("CreateUserItem", mock.MatchedBy(func(ui *model.UserItem) bool {
			return ui.UserID == "u1" && ui.ItemID == "i1"
		})).Return(nil)

		owned, err := service.Purchase("u1", "i1")

		assert.NoError(t, err)
		assert.Equal(t, 2, buyer.Point)
		assert.Equal(t, "i1", owned.ItemID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Exact balance is enough", func(t *testing.T) {
		mockRepo := new(MockShopRepository)
		service := NewShopService(mockRepo)

		buyer := testBuyer("u1", 10)
		mockRepo.On("GetItem", "i1").Return(testItem("i1", 10), nil)
		mockRepo.On("GetUserForUpdate", "u1").Return(buyer, nil)
		mockRepo.On("SaveUser", buyer).Return(nil)
		mockRepo.On("CreateUserItem", mock.AnythingOfType("*model.UserItem")).Return(nil)

		_, err := service.Purchase("u1", "i1")

		assert.NoError(t, err)
		assert.Equal(t, 0, buyer.Point)
	})
}

func TestCreateItem(t *testing.T) {
	t.Run("Invalid type rejected", func(t *testing.T) {
		mockRepo := new(MockShopRepository)
		service := NewShopService(mockRepo)

		_, err := service.CreateItem(ShopItemInput{Name: "x", Price: 1, Type: "STICKER"})

		assert.ErrorIs(t, err, ErrInvalidItemType)
		mockRepo.AssertNotCalled(t, "CreateItem", mock.Anything)
	})
}

func TestListUserItems(t *testing.T) {
	t.Run("Items joined with catalog details", func(t *testing.T) {
		mockRepo := new(MockShopRepository)
		service := NewShopService(mockRepo)

		owned := []model.UserItem{{ID: "ui1", UserID: "u1", ItemID: "i1"}}
		mockRepo.On("ListUserItems", "u1").Return(owned, nil)
		mockRepo.On("GetItemsByIDs", []string{"i1"}).Return([]model.ShopItem{*testItem("i1", 10)}, nil)

		result, err := service.ListUserItems("u1")

		assert.NoError(t, err)
		assert.Len(t, result, 1)
		assert.Equal(t, "frame", result[0].Item.Name)
	})
}
