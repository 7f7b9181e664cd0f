package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trendz_backend/internal/pkg/config"
	"trendz_backend/internal/pkg/live"
	"trendz_backend/internal/pkg/middleware"
	"trendz_backend/internal/pkg/registry"
	"trendz_backend/internal/pkg/uploader"
	"trendz_backend/internal/pkg/worker"
	"trendz_backend/pkg/database"
	"trendz_backend/pkg/logger"
	"trendz_backend/pkg/metrics"
	"trendz_backend/pkg/response"

	_ "trendz_backend/docs"
	_ "trendz_backend/internal/domain/chat"
	_ "trendz_backend/internal/domain/comment"
	_ "trendz_backend/internal/domain/common"
	_ "trendz_backend/internal/domain/notification"
	_ "trendz_backend/internal/domain/post"
	_ "trendz_backend/internal/domain/reaction"
	_ "trendz_backend/internal/domain/shop"
	_ "trendz_backend/internal/domain/trend"
	_ "trendz_backend/internal/domain/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title Trendz API
// @version 1.0
// @description 社交网络后端：用户关系链、帖子互动、积分商城、会话消息
// @BasePath /
func main() {
	config.LoadConfig()
	logger.InitLogger(config.GlobalConfig.App.Debug)
	defer logger.Sync()

	db := database.InitDatabase()
	rdb := database.InitRedis()

	// OSS 不可用时仅禁用媒体上传，不阻塞启动
	if err := uploader.InitUploader(); err != nil {
		logger.Log.Warn("OSS uploader disabled", zap.Error(err))
	}

	// 实时推送链路：worker 池负责发布，broker 负责订阅分发
	liveCfg := config.GlobalConfig.Live
	pool := worker.NewPushPool(rdb, liveCfg.Workers, liveCfg.BufferSize)
	pool.Start()

	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	broker := live.NewBroker(rdb, pool)
	broker.Start(rootCtx)

	gin.SetMode(config.GlobalConfig.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.TraceMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-Trace-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 按优先级初始化各业务模块
	moduleCtx := &registry.ModuleContext{
		DB:     db,
		Redis:  rdb,
		Router: router,
		Live:   broker,
	}
	if err := registry.InitModules(moduleCtx); err != nil {
		logger.Log.Fatal("Failed to init modules", zap.Error(err))
	}

	// 周期采集数据库连接池指标
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if sqlDB, err := db.DB(); err == nil {
					metrics.GetGlobalCollector().RecordDBStats(sqlDB.Stats())
				}
			case <-rootCtx.Done():
				return
			}
		}
	}()

	srv := &http.Server{
		Addr:              ":" + config.GlobalConfig.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("Server starting", zap.String("port", config.GlobalConfig.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// 优雅退出：先停收新请求，再关实时链路
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	cancel()
	logger.Log.Info("Server exited")
}
