package shop

import (
	"trendz_backend/internal/domain/shop/handler"
	"trendz_backend/internal/domain/shop/repository"
	"trendz_backend/internal/domain/shop/service"
	"trendz_backend/internal/pkg/middleware"
	"trendz_backend/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// ShopModule 积分商城模块
type ShopModule struct{}

func init() {
	registry.Register(&ShopModule{})
}

func (m *ShopModule) Name() string {
	return "shop"
}

func (m *ShopModule) Priority() int {
	return 7
}

func (m *ShopModule) Init(ctx *registry.ModuleContext) error {
	sRepo := repository.NewShopRepository(ctx.DB)
	sService := service.NewShopService(sRepo)
	sHandler := handler.NewShopHandler(sService)

	setupRoutes(ctx.Router, sHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.ShopHandler) {
	g := r.Group("/shop")

	// Public reads
	g.GET("/items", h.ListItems)
	g.GET("/items/discounted", h.ListDiscounted)
	g.GET("/items/:id", h.GetItem)

	// Requires Login
	auth := g.Group("")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.POST("/items/:id/purchase", h.Purchase)
		auth.GET("/my-items", h.ListMine)
	}

	// Admin
	admin := g.Group("")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.POST("/items", h.CreateItem)
		admin.PATCH("/items/:id", h.UpdateItem)
		admin.DELETE("/items/:id", h.DeleteItem)
	}
}
