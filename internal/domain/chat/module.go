package chat

import (
	"trendz_backend/internal/domain/chat/handler"
	"trendz_backend/internal/domain/chat/repository"
	"trendz_backend/internal/domain/chat/service"
	"trendz_backend/internal/pkg/middleware"
	"trendz_backend/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// ChatModule 两人会话与实时消息模块
type ChatModule struct{}

func init() {
	registry.Register(&ChatModule{})
}

func (m *ChatModule) Name() string {
	return "chat"
}

func (m *ChatModule) Priority() int {
	return 8
}

func (m *ChatModule) Init(ctx *registry.ModuleContext) error {
	cRepo := repository.NewChatRepository(ctx.DB)
	cService := service.NewChatService(cRepo, ctx.Live)
	cHandler := handler.NewChatHandler(cService, ctx.Live)

	setupRoutes(ctx.Router, cHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.ChatHandler) {
	g := r.Group("/chatboxes")
	g.Use(middleware.AuthMiddleware())
	{
		g.POST("", h.CreateOrGet)
		g.GET("", h.ListBoxes)
		g.GET("/:id", h.GetBox)
		g.DELETE("/:id", h.DeleteBox)
		g.POST("/:id/messages", h.PostMessage)
		g.GET("/:id/messages", h.ListMessages)
		g.GET("/:id/stream", h.Stream)
		g.DELETE("/messages/:messageId", h.DeleteMessage)
	}
}
