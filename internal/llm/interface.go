// internal/llm/interface.go
package llm

import (
	"context"
	"errors"
)

// 错误定义
var ErrUnknownProvider = errors.New("未知的AI提供者")

// CompletionRequest 文本生成请求参数标准化
type CompletionRequest struct {
	Prompt       string  `json:"prompt"`
	SystemPrompt string  `json:"system_prompt,omitempty"`
	Temperature  float32 `json:"temperature,omitempty"`
	MaxTokens    int     `json:"max_tokens,omitempty"`
	Model        string  `json:"model,omitempty"`
}

// CompletionResponse 文本生成响应结构标准化
type CompletionResponse struct {
	Text         string `json:"text"`
	FinishReason string `json:"finish_reason,omitempty"`
	TokensUsed   int    `json:"tokens_used,omitempty"`
	ModelName    string `json:"model_name,omitempty"`
	ProviderName string `json:"provider_name,omitempty"`
}

// ImageRequest 图像生成请求
type ImageRequest struct {
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspect_ratio,omitempty"`
	Model       string `json:"model,omitempty"`
}

// ImageResponse 图像生成响应，Data为解码后的原始图像字节
type ImageResponse struct {
	Data      []byte `json:"-"`
	MIMEType  string `json:"mime_type,omitempty"`
	ModelName string `json:"model_name,omitempty"`
}

// Provider 定义所有生成式AI提供者必须实现的接口
type Provider interface {
	// 初始化提供者，传入配置
	Initialize(config map[string]string) error

	// 获取提供者名称
	GetName() string

	// 获取支持的模型列表
	GetSupportedModels() []string

	// 文本生成
	CompleteText(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// 图像生成
	GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error)
}

// Registry 提供者注册表
type Registry struct {
	providers map[string]func() Provider
}

// 全局注册表
var DefaultRegistry = &Registry{
	providers: make(map[string]func() Provider),
}

// Register 注册一个新的AI提供者
func (r *Registry) Register(name string, factory func() Provider) {
	r.providers[name] = factory
}

// Create 按名称创建提供者实例
func (r *Registry) Create(name string) (Provider, error) {
	factory, exists := r.providers[name]
	if !exists {
		return nil, ErrUnknownProvider
	}
	return factory(), nil
}

// Names 返回所有已注册的提供者名称
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}

// Register 在默认注册表中注册提供者
func Register(name string, factory func() Provider) {
	DefaultRegistry.Register(name, factory)
}

// Create 从默认注册表创建提供者
func Create(name string) (Provider, error) {
	return DefaultRegistry.Create(name)
}
