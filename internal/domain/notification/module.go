package notification

import (
	"trendz_backend/internal/domain/notification/handler"
	"trendz_backend/internal/domain/notification/repository"
	"trendz_backend/internal/domain/notification/service"
	"trendz_backend/internal/pkg/middleware"
	"trendz_backend/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// NotificationModule 通知模块
type NotificationModule struct{}

func init() {
	registry.Register(&NotificationModule{})
}

func (m *NotificationModule) Name() string {
	return "notification"
}

func (m *NotificationModule) Priority() int {
	return 2
}

func (m *NotificationModule) Init(ctx *registry.ModuleContext) error {
	nRepo := repository.NewNotificationRepository(ctx.DB)
	nService := service.NewNotificationService(nRepo, ctx.Live)
	nHandler := handler.NewNotificationHandler(nService, ctx.Live)

	setupRoutes(ctx.Router, nHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.NotificationHandler) {
	g := r.Group("/notifications")
	g.Use(middleware.AuthMiddleware())
	{
		g.GET("", h.List)
		g.GET("/stream", h.Stream)
		g.PATCH("/read", h.MarkRead)
		g.DELETE("/:id", h.Delete)
	}
}
