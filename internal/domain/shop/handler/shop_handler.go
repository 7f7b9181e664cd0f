package handler

import (
	"errors"
	"net/http"

	"trendz_backend/internal/domain/shop/service"
	"trendz_backend/internal/pkg/middleware"
	"trendz_backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ShopHandler struct {
	service service.ShopService
}

func NewShopHandler(s service.ShopService) *ShopHandler {
	return &ShopHandler{service: s}
}

// ShopItemInput 商品建改输入
type ShopItemInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Type        string `json:"type"`
	ImageURL    string `json:"imageUrl"`
	Discount    int    `json:"discount"`
}

func (in ShopItemInput) toService() service.ShopItemInput {
	return service.ShopItemInput{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Type:        in.Type,
		ImageURL:    in.ImageURL,
		Discount:    in.Discount,
	}
}

// CreateItem 上架商品 (管理员)
// @Summary 创建商品
// @Tags Shop
// @Param data body ShopItemInput true "商品"
// @Success 200 {object} response.Response
// @Router /shop/items [post]
func (h *ShopHandler) CreateItem(c *gin.Context) {
	var input ShopItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	item, err := h.service.CreateItem(input.toService())
	if err != nil {
		if errors.Is(err, service.ErrInvalidItemType) {
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, item)
}

// UpdateItem 改商品 (管理员)
// @Summary 更新商品
// @Tags Shop
// @Param id path string true "商品ID"
// @Success 200 {object} response.Response
// @Router /shop/items/{id} [patch]
func (h *ShopHandler) UpdateItem(c *gin.Context) {
	var input ShopItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	item, err := h.service.UpdateItem(c.Param("id"), input.toService())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			response.NotFound(c, response.ErrItemNotFound, "Shop item không tồn tại")
		case errors.Is(err, service.ErrInvalidItemType):
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}
	response.Success(c, item)
}

// GetItem 商品详情
// @Summary 获取商品
// @Tags Shop
// @Param id path string true "商品ID"
// @Success 200 {object} response.Response
// @Router /shop/items/{id} [get]
func (h *ShopHandler) GetItem(c *gin.Context) {
	item, err := h.service.GetItem(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			response.NotFound(c, response.ErrItemNotFound, "Shop item không tồn tại")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, item)
}

// DeleteItem 下架商品 (管理员)
// @Summary 删除商品
// @Tags Shop
// @Param id path string true "商品ID"
// @Success 200 {object} response.Response
// @Router /shop/items/{id} [delete]
func (h *ShopHandler) DeleteItem(c *gin.Context) {
	if err := h.service.DeleteItem(c.Param("id")); err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			response.NotFound(c, response.ErrItemNotFound, "Shop item không tồn tại")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, "success")
}

// ListItems 商品目录
// @Summary 商品列表
// @Tags Shop
// @Success 200 {object} response.Response
// @Router /shop/items [get]
func (h *ShopHandler) ListItems(c *gin.Context) {
	items, err := h.service.ListItems()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, items)
}

// ListDiscounted 折扣商品
// @Summary 折扣商品列表
// @Tags Shop
// @Success 200 {object} response.Response
// @Router /shop/items/discounted [get]
func (h *ShopHandler) ListDiscounted(c *gin.Context) {
	items, err := h.service.ListDiscounted()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, items)
}

// Purchase 用积分买商品
// @Summary 购买商品
// @Tags Shop
// @Param id path string true "商品ID"
// @Success 200 {object} response.Response
// @Router /shop/items/{id}/purchase [post]
func (h *ShopHandler) Purchase(c *gin.Context) {
	owned, err := h.service.Purchase(middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			response.NotFound(c, response.ErrItemNotFound, "Shop item không tồn tại")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, response.ErrUserNotFound, "User không tồn tại")
		case errors.Is(err, service.ErrInsufficientPoint):
			response.Error(c, http.StatusBadRequest, response.ErrInsufficientPoint, "User không đủ điểm để mua shop item này")
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}
	response.Success(c, owned)
}

// ListMine 当前用户已购商品
// @Summary 我的商品
// @Tags Shop
// @Success 200 {object} response.Response
// @Router /shop/my-items [get]
func (h *ShopHandler) ListMine(c *gin.Context) {
	items, err := h.service.ListUserItems(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, items)
}
