// internal/api/handlers.go
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Corphon/LifePlayModStudio/internal/config"
	apperrors "github.com/Corphon/LifePlayModStudio/internal/errors"
	"github.com/Corphon/LifePlayModStudio/internal/models"
	"github.com/Corphon/LifePlayModStudio/internal/services"
	"github.com/gin-gonic/gin"
)

// Handler 处理API请求
type Handler struct {
	SessionService *services.SessionService // 会话服务
	LLMService     *services.LLMService     // LLM服务
	StatsService   *services.StatsService   // 统计服务
	ExportService  *services.ExportService  // 导出服务
	ProgressHub    *ProgressHub             // 进度广播中心
	Response       *ResponseHelper          // 响应助手
}

// NewHandler 创建API处理器
func NewHandler(
	sessionService *services.SessionService,
	llmService *services.LLMService,
	statsService *services.StatsService,
	exportService *services.ExportService,
	progressHub *ProgressHub,
) *Handler {
	return &Handler{
		SessionService: sessionService,
		LLMService:     llmService,
		StatsService:   statsService,
		ExportService:  exportService,
		ProgressHub:    progressHub,
		Response:       NewResponseHelper(),
	}
}

// UpdateLLMConfigRequest LLM配置更新请求
type UpdateLLMConfigRequest struct {
	Provider string            `json:"provider"`
	Config   map[string]string `json:"config"`
}

// fileInfo 文件清单条目（不含内容字节）
type fileInfo struct {
	Name        string `json:"name"`
	Size        int    `json:"size"`
	ContentType string `json:"content_type"`
}

// ========================================
// 页面
// ========================================

// IndexPage 模组工坊主页面
func (h *Handler) IndexPage(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title": "LifePlay Mod Studio",
	})
}

// ========================================
// 记录编辑
// ========================================

// GetRecord 获取当前记录
func (h *Handler) GetRecord(c *gin.Context) {
	h.Response.Success(c, h.SessionService.Record())
}

// UpdateRecord 整体更新记录，服务端重跑推断后返回最终记录
func (h *Handler) UpdateRecord(c *gin.Context) {
	var rec models.ModRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		h.Response.BadRequest(c, "请求体解析失败", err.Error())
		return
	}

	updated, err := h.SessionService.Update(&rec)
	if err != nil {
		if apperrors.IsConflictError(err) {
			h.Response.Conflict(c, err.Error())
			return
		}
		h.Response.InternalError(c, "更新记录失败", err.Error())
		return
	}

	h.Response.Success(c, updated)
}

// ResetRecord 重置会话到默认记录
func (h *Handler) ResetRecord(c *gin.Context) {
	rec, err := h.SessionService.Reset()
	if err != nil {
		h.Response.Conflict(c, err.Error())
		return
	}
	h.Response.Success(c, rec, "会话已重置")
}

// GetVocab 返回表单需要的全部枚举词表
func (h *Handler) GetVocab(c *gin.Context) {
	h.Response.Success(c, gin.H{
		"categories":        models.AllCategories(),
		"item_types":        models.AllItemTypes(),
		"clothing_slots":    models.AllClothingSlots(),
		"shop_locations":    models.AllShopLocations(),
		"outfit_categories": models.AllOutfitCategories(),
	})
}

// ========================================
// 校验与生成
// ========================================

// ValidateRecord 校验当前记录
func (h *Handler) ValidateRecord(c *gin.Context) {
	errs := h.SessionService.Validate()
	h.Response.Success(c, gin.H{
		"valid":  len(errs) == 0,
		"errors": errs,
	})
}

// Generate 执行一次生成运行并返回完整的包
func (h *Handler) Generate(c *gin.Context) {
	files, pkg, err := h.SessionService.Generate(c.Request.Context())
	if err != nil {
		var vErr *services.ValidationFailedError
		switch {
		case errors.As(err, &vErr):
			h.Response.UnprocessableEntity(c, vErr.Errors)
		case apperrors.IsConflictError(err):
			h.Response.Conflict(c, err.Error())
		default:
			h.Response.BadGateway(c, "生成失败，请稍后重试", err.Error())
		}
		return
	}

	h.Response.Success(c, gin.H{
		"files":         fileInfos(files),
		"manifest_text": pkg.ManifestText,
		"script_text":   pkg.ScriptText,
		"registry_text": pkg.RegistryText,
		"scene_text":    pkg.SceneText,
		"image_preview": services.ImageDataURI(pkg.ImageBytes),
	}, "模组包生成完成")
}

// GetPackageFiles 返回最近一次成功运行的文件清单
func (h *Handler) GetPackageFiles(c *gin.Context) {
	files, _, ok := h.SessionService.LastPackage()
	if !ok {
		h.Response.NotFound(c, "尚未生成任何模组包")
		return
	}

	h.Response.Success(c, gin.H{"files": fileInfos(files)})
}

// DownloadPackage 把最近一次成功运行的包打包成zip下载
func (h *Handler) DownloadPackage(c *gin.Context) {
	files, _, ok := h.SessionService.LastPackage()
	if !ok {
		h.Response.NotFound(c, "尚未生成任何模组包")
		return
	}

	archive, err := h.ExportService.BuildArchive(files)
	if err != nil {
		h.Response.InternalError(c, "打包失败", err.Error())
		return
	}

	record := h.SessionService.Record()
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_mod_package.zip"`, record.ID))
	c.Data(http.StatusOK, "application/zip", archive)
}

// ========================================
// LLM配置与状态
// ========================================

// GetLLMStatus 获取LLM服务状态
func (h *Handler) GetLLMStatus(c *gin.Context) {
	h.Response.Success(c, h.LLMService.Status())
}

// UpdateLLMConfig 更新LLM提供者配置
func (h *Handler) UpdateLLMConfig(c *gin.Context) {
	var req UpdateLLMConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "请求体解析失败", err.Error())
		return
	}

	if req.Provider == "" {
		h.Response.BadRequest(c, "缺少提供者名称")
		return
	}

	if err := config.UpdateLLMConfig(req.Provider, req.Config); err != nil {
		h.Response.InternalError(c, "保存配置失败", err.Error())
		return
	}

	if err := h.LLMService.UpdateProvider(req.Provider, req.Config); err != nil {
		h.Response.BadRequest(c, "提供者初始化失败", err.Error())
		return
	}

	h.Response.Success(c, h.LLMService.Status(), "LLM配置已更新")
}

// ========================================
// 统计与调试
// ========================================

// GetStats 获取生成运行统计
func (h *Handler) GetStats(c *gin.Context) {
	h.Response.Success(c, h.StatsService.Summary())
}

// ProgressWebSocket 订阅生成进度
func (h *Handler) ProgressWebSocket(c *gin.Context) {
	h.ProgressHub.HandleProgress(c)
}

func fileInfos(files []models.ModFile) []fileInfo {
	infos := make([]fileInfo, 0, len(files))
	for _, f := range files {
		infos = append(infos, fileInfo{
			Name:        f.Name,
			Size:        len(f.Content),
			ContentType: f.ContentType,
		})
	}
	return infos
}
