package post

import (
	"trendz_backend/internal/domain/post/handler"
	"trendz_backend/internal/domain/post/repository"
	"trendz_backend/internal/domain/post/service"
	"trendz_backend/internal/pkg/middleware"
	"trendz_backend/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// PostModule 帖子与分享模块
type PostModule struct{}

func init() {
	registry.Register(&PostModule{})
}

func (m *PostModule) Name() string {
	return "post"
}

func (m *PostModule) Priority() int {
	return 4
}

func (m *PostModule) Init(ctx *registry.ModuleContext) error {
	pRepo := repository.NewPostRepository(ctx.DB)
	pService := service.NewPostService(pRepo)
	pHandler := handler.NewPostHandler(pService)

	setupRoutes(ctx.Router, pHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.PostHandler) {
	g := r.Group("/posts")

	// Public reads
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.GET("/user/:userId", h.ListByUser)
	g.GET("/trend-topic/:topicId", h.ListByTrendTopic)
	g.GET("/shared/:userId", h.ListShared)

	// Requires Login
	auth := g.Group("")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.POST("", h.Create)
		auth.PATCH("/:id", h.Update)
		auth.DELETE("/:id", h.Delete)
		auth.POST("/:id/share", h.Share)
		auth.DELETE("/:id/share", h.Unshare)
	}

	// Admin
	admin := g.Group("")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.PATCH("/:id/ban", h.Ban)
	}
}
