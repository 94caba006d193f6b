// internal/services/validation_service.go
package services

import (
	"regexp"

	"github.com/Corphon/LifePlayModStudio/internal/models"
)

// engineIDPattern 引擎ID同时充当文件名主干，只允许字母数字和下划线
var engineIDPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Validate 检查记录的必填字段与跨字段一致性，返回按规则顺序
// 排列的人类可读错误列表。纯函数，自身从不失败；
// 列表为空当且仅当全部规则通过
func Validate(rec *models.ModRecord) []string {
	var errs []string

	if rec.ID == "" {
		errs = append(errs, "Engine ID is missing.")
	} else if !engineIDPattern.MatchString(rec.ID) {
		// 空ID只报缺失，不重复报格式错误
		errs = append(errs, "Engine ID must be alphanumeric (no spaces).")
	}

	if rec.Name == "" {
		errs = append(errs, "Display Name is missing.")
	}

	if rec.Author == "" {
		errs = append(errs, "Author name is missing.")
	}

	if rec.NeedsScene() && rec.PlotPrompt() == "" {
		errs = append(errs, "Plot / Scenario prompt is required for scenes.")
	}

	return errs
}
