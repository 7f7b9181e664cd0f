package comment

import (
	"trendz_backend/internal/domain/comment/handler"
	"trendz_backend/internal/domain/comment/repository"
	"trendz_backend/internal/domain/comment/service"
	"trendz_backend/internal/pkg/middleware"
	"trendz_backend/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// CommentModule 评论模块
type CommentModule struct{}

func init() {
	registry.Register(&CommentModule{})
}

func (m *CommentModule) Name() string {
	return "comment"
}

func (m *CommentModule) Priority() int {
	return 6
}

func (m *CommentModule) Init(ctx *registry.ModuleContext) error {
	cRepo := repository.NewCommentRepository(ctx.DB)
	cService := service.NewCommentService(cRepo, ctx.Live)
	cHandler := handler.NewCommentHandler(cService)

	setupRoutes(ctx.Router, cHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.CommentHandler) {
	// 按帖子维度的读写挂在 /posts 下，参数名与其它 /posts 路由保持一致
	posts := r.Group("/posts/:id/comments")
	posts.GET("", h.ListByPost)
	posts.POST("", middleware.AuthMiddleware(), h.Create)

	g := r.Group("/comments")
	g.GET("/:id", h.Get)

	auth := g.Group("")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.PATCH("/:id", h.Update)
		auth.DELETE("/:id", h.Delete)
	}
}
