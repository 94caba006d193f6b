// internal/services/generation_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	apperrors "github.com/Corphon/LifePlayModStudio/internal/errors"
	"github.com/Corphon/LifePlayModStudio/internal/models"
	"github.com/Corphon/LifePlayModStudio/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ProgressUpdate 一次运行中单个产物的进度事件
type ProgressUpdate struct {
	RunID    string              `json:"run_id"`
	Artifact models.ArtifactKind `json:"artifact"`
	Status   string              `json:"status"` // running, completed, failed
	Message  string              `json:"message,omitempty"`
}

// ProgressNotifier 接收运行进度事件（由WebSocket层实现）
type ProgressNotifier interface {
	NotifyProgress(update ProgressUpdate)
}

// GenerationService 生成运行的编排器：并发派发全部产物请求，
// 全部成功才产出完整包；任一失败整次运行报告为单个失败，
// 绝不对外暴露部分结果。单次尝试，无重试、无超时
type GenerationService struct {
	LLM      *LLMService
	Stats    *StatsService
	Notifier ProgressNotifier
}

// NewGenerationService 创建生成编排器
func NewGenerationService(llmService *LLMService, stats *StatsService) *GenerationService {
	return &GenerationService{
		LLM:   llmService,
		Stats: stats,
	}
}

// Run 对记录快照执行一次完整的生成运行
func (s *GenerationService) Run(ctx context.Context, rec *models.ModRecord) (*models.GeneratedPackage, error) {
	requests := BuildRequests(rec)
	runID := uuid.NewString()
	logger := utils.GetLogger()

	logger.Info("生成运行启动", map[string]interface{}{
		"run_id":    runID,
		"record_id": rec.ID,
		"category":  string(rec.Category),
		"artifacts": len(requests),
	})

	pkg := &models.GeneratedPackage{}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, req := range requests {
		req := req
		g.Go(func() error {
			s.notify(runID, req.Kind, "running", "")

			if err := s.executeRequest(gctx, req, pkg, &mu); err != nil {
				s.notify(runID, req.Kind, "failed", err.Error())
				return fmt.Errorf("%s 产物生成失败: %w", req.Kind, err)
			}

			s.notify(runID, req.Kind, "completed", "")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if s.Stats != nil {
			s.Stats.RecordRun(rec.Category, false)
		}
		logger.Error("生成运行失败", map[string]interface{}{
			"run_id": runID,
			"error":  err.Error(),
		})
		// 部分失败即整体失败，统一折叠成单个生成错误
		return nil, apperrors.NewGenerationError("模组包生成失败", err)
	}

	if s.Stats != nil {
		s.Stats.RecordRun(rec.Category, true)
	}
	logger.Info("生成运行完成", map[string]interface{}{
		"run_id":    runID,
		"record_id": rec.ID,
	})

	return pkg, nil
}

// executeRequest 执行单个产物请求并把结果写入包的对应字段
func (s *GenerationService) executeRequest(ctx context.Context, req models.GenerationRequest, pkg *models.GeneratedPackage, mu *sync.Mutex) error {
	if req.Kind == models.ArtifactImage {
		data, err := s.LLM.GenerateImage(ctx, req)
		if err != nil {
			return err
		}
		if len(data) == 0 {
			return fmt.Errorf("图像响应为空")
		}

		mu.Lock()
		pkg.ImageBytes = data
		mu.Unlock()
		return nil
	}

	text, err := s.LLM.CompleteText(ctx, req)
	if err != nil {
		return err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("文本响应为空")
	}

	mu.Lock()
	defer mu.Unlock()

	switch req.Kind {
	case models.ArtifactManifest:
		pkg.ManifestText = text
	case models.ArtifactScript:
		pkg.ScriptText = text
	case models.ArtifactRegistry:
		pkg.RegistryText = text
	case models.ArtifactScene:
		pkg.SceneText = text
	}
	return nil
}

func (s *GenerationService) notify(runID string, artifact models.ArtifactKind, status, message string) {
	if s.Notifier == nil {
		return
	}
	s.Notifier.NotifyProgress(ProgressUpdate{
		RunID:    runID,
		Artifact: artifact,
		Status:   status,
		Message:  message,
	})
}
