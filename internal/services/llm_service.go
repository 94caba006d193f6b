// internal/services/llm_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Corphon/LifePlayModStudio/internal/config"
	"github.com/Corphon/LifePlayModStudio/internal/llm"
	"github.com/Corphon/LifePlayModStudio/internal/models"
)

var ErrLLMNotReady = errors.New("llm service not ready")

// LLMService 提供统一的生成式AI调用入口，负责提供者的
// 创建、配置热更新与就绪状态管理
type LLMService struct {
	providerMutex sync.RWMutex
	provider      llm.Provider
	providerName  string
	isReady       bool
	readyState    string
}

// NewLLMService 根据当前配置创建服务。密钥缺失不报错，
// 只是保持未就绪，首次生成调用时才会失败
func NewLLMService() *LLMService {
	s := &LLMService{}

	cfg := config.GetCurrentConfig()
	if err := s.configure(cfg.LLMProvider, cfg.LLMConfig); err != nil {
		s.readyState = fmt.Sprintf("提供者未就绪: %v", err)
	}

	return s
}

// NewEmptyLLMService 创建未配置的服务实例（测试用）
func NewEmptyLLMService() *LLMService {
	return &LLMService{readyState: "未配置"}
}

// NewLLMServiceWithProvider 使用注入的提供者创建服务（测试用）
func NewLLMServiceWithProvider(name string, provider llm.Provider) *LLMService {
	return &LLMService{
		provider:     provider,
		providerName: name,
		isReady:      true,
		readyState:   "就绪",
	}
}

// configure 创建并初始化提供者
func (s *LLMService) configure(name string, providerConfig map[string]string) error {
	provider, err := llm.Create(name)
	if err != nil {
		return err
	}

	if err := provider.Initialize(providerConfig); err != nil {
		return err
	}

	s.providerMutex.Lock()
	defer s.providerMutex.Unlock()

	s.provider = provider
	s.providerName = name
	s.isReady = true
	s.readyState = "就绪"
	return nil
}

// UpdateProvider 热更新提供者配置
func (s *LLMService) UpdateProvider(name string, providerConfig map[string]string) error {
	if err := s.configure(name, providerConfig); err != nil {
		s.providerMutex.Lock()
		s.isReady = false
		s.readyState = fmt.Sprintf("提供者未就绪: %v", err)
		s.providerMutex.Unlock()
		return err
	}
	return nil
}

// IsReady 服务是否可以接受生成调用
func (s *LLMService) IsReady() bool {
	s.providerMutex.RLock()
	defer s.providerMutex.RUnlock()
	return s.isReady
}

// Status 返回当前状态快照
func (s *LLMService) Status() map[string]interface{} {
	s.providerMutex.RLock()
	defer s.providerMutex.RUnlock()

	status := map[string]interface{}{
		"ready":    s.isReady,
		"state":    s.readyState,
		"provider": s.providerName,
	}
	if s.provider != nil {
		status["models"] = s.provider.GetSupportedModels()
	}
	return status
}

// CompleteText 执行一条文本产物请求
func (s *LLMService) CompleteText(ctx context.Context, req models.GenerationRequest) (string, error) {
	provider, err := s.currentProvider()
	if err != nil {
		return "", err
	}

	resp, err := provider.CompleteText(ctx, llm.CompletionRequest{
		Prompt:       req.TaskPrompt,
		SystemPrompt: req.InstructionContext,
		Temperature:  req.Temperature,
	})
	if err != nil {
		return "", err
	}

	return resp.Text, nil
}

// GenerateImage 执行图像产物请求，返回原始图像字节
func (s *LLMService) GenerateImage(ctx context.Context, req models.GenerationRequest) ([]byte, error) {
	provider, err := s.currentProvider()
	if err != nil {
		return nil, err
	}

	resp, err := provider.GenerateImage(ctx, llm.ImageRequest{
		Prompt:      req.TaskPrompt,
		AspectRatio: req.AspectRatio,
	})
	if err != nil {
		return nil, err
	}

	return resp.Data, nil
}

func (s *LLMService) currentProvider() (llm.Provider, error) {
	s.providerMutex.RLock()
	defer s.providerMutex.RUnlock()

	if !s.isReady || s.provider == nil {
		return nil, ErrLLMNotReady
	}
	return s.provider, nil
}
