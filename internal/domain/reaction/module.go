package reaction

import (
	"trendz_backend/internal/domain/reaction/handler"
	"trendz_backend/internal/domain/reaction/repository"
	"trendz_backend/internal/domain/reaction/service"
	"trendz_backend/internal/pkg/middleware"
	"trendz_backend/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// ReactionModule 反应与积分奖励模块
type ReactionModule struct{}

func init() {
	registry.Register(&ReactionModule{})
}

func (m *ReactionModule) Name() string {
	return "reaction"
}

func (m *ReactionModule) Priority() int {
	return 5
}

func (m *ReactionModule) Init(ctx *registry.ModuleContext) error {
	rRepo := repository.NewReactionRepository(ctx.DB)
	rService := service.NewReactionService(rRepo, ctx.Live)
	rHandler := handler.NewReactionHandler(rService)

	setupRoutes(ctx.Router, rHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.ReactionHandler) {
	g := r.Group("/posts/:id/reactions")

	g.GET("", h.ListByPost)

	auth := g.Group("")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/me", h.GetOwn)
		auth.PUT("", h.React)
		auth.DELETE("", h.Unreact)
	}
}
