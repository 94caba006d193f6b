// internal/services/stats_service.go
package services

import (
	"sync"
	"time"

	"github.com/Corphon/LifePlayModStudio/internal/models"
)

// StatsSummary 统计快照
type StatsSummary struct {
	TotalRuns  int                     `json:"total_runs"`
	Succeeded  int                     `json:"succeeded"`
	Failed     int                     `json:"failed"`
	ByCategory map[models.Category]int `json:"by_category"`
	LastRunAt  time.Time               `json:"last_run_at,omitempty"`
}

// StatsService 记录生成运行的计数统计（仅进程内，不落盘）
type StatsService struct {
	mutex      sync.RWMutex
	totalRuns  int
	succeeded  int
	failed     int
	byCategory map[models.Category]int
	lastRunAt  time.Time
}

// NewStatsService 创建统计服务
func NewStatsService() *StatsService {
	return &StatsService{
		byCategory: make(map[models.Category]int),
	}
}

// RecordRun 记录一次生成运行的结果
func (s *StatsService) RecordRun(category models.Category, success bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.totalRuns++
	if success {
		s.succeeded++
	} else {
		s.failed++
	}
	s.byCategory[category]++
	s.lastRunAt = time.Now()
}

// Summary 返回当前统计快照
func (s *StatsService) Summary() StatsSummary {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	byCategory := make(map[models.Category]int, len(s.byCategory))
	for k, v := range s.byCategory {
		byCategory[k] = v
	}

	return StatsSummary{
		TotalRuns:  s.totalRuns,
		Succeeded:  s.succeeded,
		Failed:     s.failed,
		ByCategory: byCategory,
		LastRunAt:  s.lastRunAt,
	}
}
