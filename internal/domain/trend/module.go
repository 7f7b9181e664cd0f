package trend

import (
	"trendz_backend/internal/domain/trend/handler"
	"trendz_backend/internal/domain/trend/repository"
	"trendz_backend/internal/domain/trend/service"
	"trendz_backend/internal/pkg/middleware"
	"trendz_backend/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// TrendModule 趋势话题模块
type TrendModule struct{}

func init() {
	registry.Register(&TrendModule{})
}

func (m *TrendModule) Name() string {
	return "trend"
}

func (m *TrendModule) Priority() int {
	return 3
}

func (m *TrendModule) Init(ctx *registry.ModuleContext) error {
	tRepo := repository.NewTrendRepository(ctx.DB)
	tService := service.NewTrendService(tRepo)
	tHandler := handler.NewTrendHandler(tService)

	setupRoutes(ctx.Router, tHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.TrendHandler) {
	g := r.Group("/trend-topics")

	g.GET("", h.List)
	g.GET("/search", h.Search)
	g.GET("/:id", h.Get)

	admin := g.Group("")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.POST("", h.Create)
		admin.PATCH("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
	}
}
