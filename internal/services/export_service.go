// internal/services/export_service.go
package services

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Corphon/LifePlayModStudio/internal/models"
)

// ExportService 把生成包投影为命名文件列表并提供打包下载。
// 文件名主干恒为记录的引擎ID
type ExportService struct {
	ExportDir string
}

// NewExportService 创建导出服务
func NewExportService(exportDir string) *ExportService {
	if exportDir != "" {
		if err := os.MkdirAll(exportDir, 0755); err != nil {
			fmt.Printf("警告: 创建导出目录失败: %v\n", err)
		}
	}

	return &ExportService{ExportDir: exportDir}
}

// ToFiles 纯投影：按固定文件名方案把包字段映射为有序文件列表，
// 不对内容做任何变换。可选产物缺失时对应文件不出现
func (s *ExportService) ToFiles(pkg *models.GeneratedPackage, rec *models.ModRecord) []models.ModFile {
	files := []models.ModFile{
		{
			Name:        rec.ID + "_mod.lpmod",
			Content:     []byte(pkg.ManifestText),
			ContentType: "text/plain; charset=utf-8",
		},
		{
			Name:        rec.ID + "." + primaryScriptExt(rec.Category),
			Content:     []byte(pkg.ScriptText),
			ContentType: "text/plain; charset=utf-8",
		},
	}

	if pkg.RegistryText != "" {
		files = append(files, models.ModFile{
			Name:        "MOD_INSTRUCTIONS.txt",
			Content:     []byte(pkg.RegistryText),
			ContentType: "text/plain; charset=utf-8",
		})
	}

	if pkg.SceneText != "" {
		files = append(files, models.ModFile{
			Name:        rec.ID + ".lpscene",
			Content:     []byte(pkg.SceneText),
			ContentType: "text/plain; charset=utf-8",
		})
	}

	if len(pkg.ImageBytes) > 0 {
		files = append(files, models.ModFile{
			Name:        rec.ID + ".png",
			Content:     pkg.ImageBytes,
			ContentType: "image/png",
		})
	}

	return files
}

// primaryScriptExt 主脚本扩展名按类别选择
func primaryScriptExt(c models.Category) string {
	switch c {
	case models.CategoryCharacter:
		return "lpcharacter"
	case models.CategoryScene:
		return "lpscene"
	default:
		return "lpaction"
	}
}

// BuildArchive 把文件列表打包成一个zip供一键下载
func (s *ExportService) BuildArchive(files []models.ModFile) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	for _, file := range files {
		entry, err := w.Create(file.Name)
		if err != nil {
			w.Close()
			return nil, fmt.Errorf("创建压缩条目失败 %s: %w", file.Name, err)
		}
		if _, err := entry.Write(file.Content); err != nil {
			w.Close()
			return nil, fmt.Errorf("写入压缩条目失败 %s: %w", file.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("关闭压缩包失败: %w", err)
	}

	return buf.Bytes(), nil
}

// SaveToDisk 把文件列表写入导出目录的 {id}/ 子目录（尽力而为）
func (s *ExportService) SaveToDisk(files []models.ModFile, recordID string) error {
	if s.ExportDir == "" {
		return nil
	}

	dir := filepath.Join(s.ExportDir, recordID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("创建导出目录失败: %w", err)
	}

	for _, file := range files {
		path := filepath.Join(dir, file.Name)
		if err := os.WriteFile(path, file.Content, 0644); err != nil {
			return fmt.Errorf("写入导出文件失败 %s: %w", file.Name, err)
		}
	}

	return nil
}

// ImageDataURI 把图像字节编码为data URI供页面预览
func ImageDataURI(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
}
