// internal/services/session_service.go
package services

import (
	"context"
	"sync"

	apperrors "github.com/Corphon/LifePlayModStudio/internal/errors"
	"github.com/Corphon/LifePlayModStudio/internal/models"
	"github.com/Corphon/LifePlayModStudio/internal/utils"
)

// SessionService 持有一次编辑会话的全部可变状态：当前记录、
// 最近的校验错误、最近一次成功运行的包与文件列表，以及
// 运行中标志。运行中的并发 Generate 调用被直接拒绝，
// 运行读取的是启动时的记录快照，期间的编辑互不影响
type SessionService struct {
	mutex     sync.Mutex
	record    *models.ModRecord
	lastErrs  []string
	lastPkg   *models.GeneratedPackage
	lastFiles []models.ModFile
	running   bool

	Generator *GenerationService
	Exporter  *ExportService
}

// NewSessionService 创建会话，初始记录为默认示例并先走一遍推断
func NewSessionService(generator *GenerationService, exporter *ExportService) *SessionService {
	rec := models.NewDefaultModRecord()
	Infer(rec)

	return &SessionService{
		record:    rec,
		Generator: generator,
		Exporter:  exporter,
	}
}

// Record 返回当前记录的副本
func (s *SessionService) Record() *models.ModRecord {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.record.Clone()
}

// Update 整体替换记录：规范化载荷、重跑推断并清除过期的
// 校验错误（错误绝不跨编辑存留）。运行期间拒绝编辑
func (s *SessionService) Update(rec *models.ModRecord) (*models.ModRecord, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.running {
		return nil, apperrors.NewConflictError("生成运行进行中，暂时无法编辑", nil)
	}

	rec.Normalize()
	Infer(rec)

	s.record = rec.Clone()
	s.lastErrs = nil

	return s.record.Clone(), nil
}

// Reset 丢弃当前会话状态，回到默认记录
func (s *SessionService) Reset() (*models.ModRecord, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.running {
		return nil, apperrors.NewConflictError("生成运行进行中，暂时无法重置", nil)
	}

	rec := models.NewDefaultModRecord()
	Infer(rec)

	s.record = rec
	s.lastErrs = nil
	s.lastPkg = nil
	s.lastFiles = nil

	return rec.Clone(), nil
}

// Validate 校验当前记录并记住错误列表
func (s *SessionService) Validate() []string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.lastErrs = Validate(s.record)
	return append([]string(nil), s.lastErrs...)
}

// LastValidationErrors 返回最近一次校验的错误列表
func (s *SessionService) LastValidationErrors() []string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return append([]string(nil), s.lastErrs...)
}

// Generate 执行一次完整的生成运行。校验失败返回校验错误；
// 已有运行在途时明确拒绝而不是排队
func (s *SessionService) Generate(ctx context.Context) ([]models.ModFile, *models.GeneratedPackage, error) {
	s.mutex.Lock()

	if s.running {
		s.mutex.Unlock()
		return nil, nil, apperrors.NewConflictError("已有生成运行在进行中", nil)
	}

	s.lastErrs = Validate(s.record)
	if len(s.lastErrs) > 0 {
		errs := append([]string(nil), s.lastErrs...)
		s.mutex.Unlock()
		return nil, nil, &ValidationFailedError{Errors: errs}
	}

	// 运行读取启动时的快照，期间记录保持只读
	snapshot := s.record.Clone()
	s.running = true
	s.mutex.Unlock()

	pkg, err := s.Generator.Run(ctx, snapshot)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.running = false

	if err != nil {
		return nil, nil, err
	}

	files := s.Exporter.ToFiles(pkg, snapshot)
	s.lastPkg = pkg
	s.lastFiles = files

	// 落盘副本失败不影响本次运行的结果
	if err := s.Exporter.SaveToDisk(files, snapshot.ID); err != nil {
		utils.GetLogger().Warn("导出包落盘失败", map[string]interface{}{
			"record_id": snapshot.ID,
			"error":     err.Error(),
		})
	}

	return files, pkg, nil
}

// LastPackage 返回最近一次成功运行的包与文件列表
func (s *SessionService) LastPackage() ([]models.ModFile, *models.GeneratedPackage, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.lastPkg == nil {
		return nil, nil, false
	}
	return s.lastFiles, s.lastPkg, true
}

// IsRunning 是否有生成运行在途
func (s *SessionService) IsRunning() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.running
}

// ValidationFailedError 带错误列表的校验失败
type ValidationFailedError struct {
	Errors []string
}

func (e *ValidationFailedError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	return e.Errors[0]
}
