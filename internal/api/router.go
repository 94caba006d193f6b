// internal/api/router.go
package api

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/Corphon/LifePlayModStudio/internal/config"
	"github.com/Corphon/LifePlayModStudio/internal/di"
	"github.com/Corphon/LifePlayModStudio/internal/services"
	"github.com/gin-gonic/gin"
)

// SetupRouter 配置HTTP路由
func SetupRouter() (*gin.Engine, error) {
	cfg := config.GetCurrentConfig()

	container := di.GetContainer()

	// 只从容器获取服务，不再创建新实例
	sessionService, ok := container.Get("session").(*services.SessionService)
	if !ok {
		return nil, fmt.Errorf("会话服务未正确初始化")
	}

	llmService, ok := container.Get("llm").(*services.LLMService)
	if !ok {
		return nil, fmt.Errorf("LLM服务未正确初始化")
	}

	statsService, ok := container.Get("stats").(*services.StatsService)
	if !ok {
		return nil, fmt.Errorf("统计服务未正确初始化")
	}

	exportService, ok := container.Get("export").(*services.ExportService)
	if !ok {
		return nil, fmt.Errorf("导出服务未正确初始化")
	}

	progressHub, ok := container.Get("progress_hub").(*ProgressHub)
	if !ok {
		return nil, fmt.Errorf("进度广播中心未正确初始化")
	}

	handler := NewHandler(
		sessionService,
		llmService,
		statsService,
		exportService,
		progressHub,
	)

	if !cfg.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// 启用CORS
	r.Use(corsMiddleware())

	// 静态文件服务
	r.Static("/static", cfg.StaticDir)

	// HTML模板
	r.LoadHTMLGlob(filepath.Join(cfg.TemplatesDir, "*.html"))

	// ===============================
	// 页面路由
	// ===============================
	r.GET("/", handler.IndexPage)

	// WebSocket 支持
	r.GET("/ws/progress", handler.ProgressWebSocket)

	// ===============================
	// API路由组
	// ===============================
	api := r.Group("/api")
	{
		// 记录编辑
		recordGroup := api.Group("/record")
		{
			recordGroup.GET("", handler.GetRecord)
			recordGroup.PUT("", handler.UpdateRecord)
			recordGroup.POST("/reset", handler.ResetRecord)
		}

		// 词表
		api.GET("/vocab", handler.GetVocab)

		// 校验与生成
		api.POST("/validate", handler.ValidateRecord)
		api.POST("/generate", handler.Generate)

		// 生成包
		packageGroup := api.Group("/package")
		{
			packageGroup.GET("/files", handler.GetPackageFiles)
			packageGroup.GET("/download", handler.DownloadPackage)
		}

		// LLM配置
		llmGroup := api.Group("/llm")
		{
			llmGroup.GET("/status", handler.GetLLMStatus)
			llmGroup.PUT("/config", handler.UpdateLLMConfig)
		}

		// 统计
		api.GET("/stats", handler.GetStats)
	}

	return r, nil
}

// corsMiddleware 实现跨域资源共享
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
