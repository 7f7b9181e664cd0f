package common

import (
	commonHandler "trendz_backend/internal/pkg/common"
	"trendz_backend/internal/pkg/middleware"
	"trendz_backend/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// CommonModule 通用功能模块
type CommonModule struct{}

func init() {
	registry.Register(&CommonModule{})
}

func (m *CommonModule) Name() string {
	return "common"
}

func (m *CommonModule) Priority() int {
	return 100 // 最后初始化
}

func (m *CommonModule) Init(ctx *registry.ModuleContext) error {
	setupRoutes(ctx.Router)
	return nil
}

func setupRoutes(r *gin.Engine) {
	// 文件上传接口
	r.POST("/upload", middleware.AuthMiddleware(), commonHandler.UploadFile)
}
