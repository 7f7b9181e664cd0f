package user

import (
	"trendz_backend/internal/domain/user/handler"
	"trendz_backend/internal/domain/user/repository"
	"trendz_backend/internal/domain/user/service"
	"trendz_backend/internal/pkg/middleware"
	"trendz_backend/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// UserModule 用户与关系链模块
type UserModule struct{}

func init() {
	registry.Register(&UserModule{})
}

func (m *UserModule) Name() string {
	return "user"
}

func (m *UserModule) Priority() int {
	return 1
}

func (m *UserModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	uRepo := repository.NewUserRepository(ctx.DB)
	uService := service.NewUserService(uRepo, ctx.Live)
	uHandler := handler.NewUserHandler(uService)

	// 2. 路由注册
	setupRoutes(ctx.Router, uHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.UserHandler) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}

	g := r.Group("/users")

	// Public reads
	g.GET("/:id", h.GetUser)
	g.GET("/:id/following", h.ListFollowing)
	g.GET("/:id/followers", h.ListFollowers)
	g.GET("/:id/friends", h.ListFriends)

	// Requires Login
	auth := g.Group("")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("", h.GetUsers)
		auth.GET("/me", h.GetMe)
		auth.GET("/search", h.SearchUsers)
		auth.PATCH("/me", h.UpdateProfile)
		auth.POST("/:id/follow", h.ToggleFollow)
	}

	// Admin
	admin := g.Group("")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.PATCH("/:id/ban", h.BanUser)
		admin.DELETE("/:id", h.DeleteUser)
	}
}
