// internal/app/app.go
package app

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/Corphon/LifePlayModStudio/internal/api"
	"github.com/Corphon/LifePlayModStudio/internal/config"
	"github.com/Corphon/LifePlayModStudio/internal/di"
	"github.com/Corphon/LifePlayModStudio/internal/services"
	"github.com/Corphon/LifePlayModStudio/internal/utils"

	// 注册Gemini提供者
	_ "github.com/Corphon/LifePlayModStudio/internal/llm/providers/google"
)

// InitServices 按依赖顺序创建并注册所有服务
func InitServices() error {
	cfg := config.GetCurrentConfig()

	if err := initLogger(cfg.LogDir); err != nil {
		return fmt.Errorf("初始化日志系统失败: %w", err)
	}

	container := di.GetContainer()

	llmService := services.NewLLMService()
	container.Register("llm", llmService)

	statsService := services.NewStatsService()
	container.Register("stats", statsService)

	exportService := services.NewExportService(filepath.Join(cfg.DataDir, "exports"))
	container.Register("export", exportService)

	progressHub := api.NewProgressHub()
	container.Register("progress_hub", progressHub)

	generationService := services.NewGenerationService(llmService, statsService)
	generationService.Notifier = progressHub
	container.Register("generation", generationService)

	sessionService := services.NewSessionService(generationService, exportService)
	container.Register("session", sessionService)

	return nil
}

// initLogger 初始化日志文件（按日期命名）
func initLogger(logDir string) error {
	logFile := filepath.Join(logDir, fmt.Sprintf("modstudio_%s.log", time.Now().Format("2006-01-02")))
	return utils.InitLogger(logFile)
}
