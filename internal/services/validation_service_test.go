// internal/services/validation_service_test.go
package services

import (
	"testing"

	"github.com/Corphon/LifePlayModStudio/internal/models"
	"github.com/stretchr/testify/assert"
)

func validRecord() *models.ModRecord {
	rec := models.NewDefaultModRecord()
	rec.Author = "TestAuthor"
	return rec
}

func TestValidateEmptyRecord(t *testing.T) {
	errs := Validate(&models.ModRecord{Category: models.CategoryItem})

	assert.Equal(t, []string{
		"Engine ID is missing.",
		"Display Name is missing.",
		"Author name is missing.",
	}, errs)
}

func TestValidatePassesCompleteRecord(t *testing.T) {
	assert.Empty(t, Validate(validRecord()))
}

func TestValidateRejectsBadEngineID(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"luxury_wine_01", true},
		{"Wine01", true},
		{"my id", false},
		{"my-id", false},
		{"id!", false},
		{"葡萄酒", false},
	}

	for _, tt := range tests {
		rec := validRecord()
		rec.ID = tt.id
		errs := Validate(rec)

		if tt.valid {
			assert.Empty(t, errs, "id %q", tt.id)
		} else {
			assert.Equal(t, []string{"Engine ID must be alphanumeric (no spaces)."}, errs, "id %q", tt.id)
		}
	}
}

func TestValidateEmptyIDReportsMissingOnly(t *testing.T) {
	rec := validRecord()
	rec.ID = ""

	errs := Validate(rec)

	// 空ID只报缺失，不叠加格式错误
	assert.Equal(t, []string{"Engine ID is missing."}, errs)
}

func TestValidateSceneRequiresPlot(t *testing.T) {
	rec := validRecord()
	rec.SetCategory(models.CategoryScene)

	errs := Validate(rec)
	assert.Equal(t, []string{"Plot / Scenario prompt is required for scenes."}, errs)

	rec.Scene.PlotPrompt = "a quiet dinner on the rooftop"
	assert.Empty(t, Validate(rec))
}

func TestValidateLinkedSceneRequiresPlot(t *testing.T) {
	rec := validRecord()
	rec.Item.LinkScene = true

	errs := Validate(rec)
	assert.Equal(t, []string{"Plot / Scenario prompt is required for scenes."}, errs)

	rec.Item.Scene.PlotPrompt = "sharing the bottle at sunset"
	assert.Empty(t, Validate(rec))
}

func TestValidateItemWithoutLinkSceneSkipsPlotRule(t *testing.T) {
	rec := validRecord()
	rec.Item.LinkScene = false
	rec.Item.Scene.PlotPrompt = ""

	assert.Empty(t, Validate(rec))
}

func TestValidateIsPureAndStable(t *testing.T) {
	rec := &models.ModRecord{Name: "Something"}

	first := Validate(rec)
	second := Validate(rec)

	assert.Equal(t, first, second)
}
