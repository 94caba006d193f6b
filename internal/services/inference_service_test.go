// internal/services/inference_service_test.go
package services

import (
	"testing"

	"github.com/Corphon/LifePlayModStudio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItemRecord(id, name string) *models.ModRecord {
	rec := models.NewDefaultModRecord()
	rec.ID = id
	rec.Name = name
	rec.Item = &models.ItemPayload{Type: models.ItemTypeObject}
	return rec
}

func newClothingRecord(id, name string) *models.ModRecord {
	rec := models.NewDefaultModRecord()
	rec.ID = id
	rec.Name = name
	rec.SetCategory(models.CategoryClothing)
	return rec
}

func TestInferAlcoholItem(t *testing.T) {
	rec := newItemRecord("luxury_wine_01", "Vintage Red Wine")
	Infer(rec)

	assert.Equal(t, models.ItemTypeConsumable, rec.Item.Type)
	assert.True(t, rec.Item.Rehydrate, "酒也解渴")
	assert.True(t, rec.Item.Intoxicate)
	assert.False(t, rec.Item.Satiate)
	assert.False(t, rec.Item.EnergyBoost)
	assert.Equal(t, "drink", rec.Animation)
}

func TestInferCoffeeItem(t *testing.T) {
	rec := newItemRecord("morning_coffee", "Morning Coffee")
	Infer(rec)

	assert.Equal(t, models.ItemTypeConsumable, rec.Item.Type)
	assert.True(t, rec.Item.Rehydrate)
	assert.True(t, rec.Item.EnergyBoost)
	assert.False(t, rec.Item.Satiate)
	assert.False(t, rec.Item.Intoxicate)
	assert.Equal(t, "drink", rec.Animation)
}

func TestInferFoodItemUsesEatAnimation(t *testing.T) {
	rec := newItemRecord("choc_cake", "Chocolate Cake")
	Infer(rec)

	assert.True(t, rec.Item.Satiate)
	assert.False(t, rec.Item.Rehydrate)
	assert.Equal(t, "eat", rec.Animation)
}

func TestInferOverwritesStaleFlags(t *testing.T) {
	rec := newItemRecord("luxury_wine_01", "Vintage Red Wine")
	Infer(rec)
	require.True(t, rec.Item.Intoxicate)

	// 改名后重新推断，旧标志不得残留
	rec.Name = "Chocolate Cake"
	rec.ID = "choc_cake"
	Infer(rec)

	assert.True(t, rec.Item.Satiate)
	assert.False(t, rec.Item.Intoxicate)
	assert.False(t, rec.Item.Rehydrate)
}

func TestInferItemTypeHints(t *testing.T) {
	tests := []struct {
		name     string
		itemType models.ItemType
	}{
		{"Leather Sofa", models.ItemTypeFurniture},
		{"Gaming Laptop", models.ItemTypeElectronic},
		{"Rose Bouquet", models.ItemTypeGift},
		{"Plain Rock", models.ItemTypeObject},
	}

	for _, tt := range tests {
		rec := newItemRecord("test_item", tt.name)
		Infer(rec)
		assert.Equal(t, tt.itemType, rec.Item.Type, "name %q", tt.name)
	}
}

func TestInferDoesNotTouchIdentityFields(t *testing.T) {
	rec := newItemRecord("luxury_wine_01", "Vintage Red Wine")
	rec.Price = 85
	rec.Author = "someone"
	Infer(rec)

	assert.Equal(t, "luxury_wine_01", rec.ID)
	assert.Equal(t, 85, rec.Price)
	assert.Equal(t, "someone", rec.Author)
}

func TestInferClothingSlots(t *testing.T) {
	tests := []struct {
		name string
		slot models.ClothingSlot
	}{
		{"Silk Crew Socks", models.SlotFootUnder},
		{"Red High Heels", models.SlotFoot},
		{"Lace Bra", models.SlotTopUnder},
		{"Gold Bracelet", models.SlotWrist},
		{"Diamond Earrings", models.SlotEar},
		{"Diamond Ring", models.SlotFinger},
		{"Denim Jeans", models.SlotBottom},
		{"Leather Jacket", models.SlotOuterwear},
		{"Cotton T-Shirt", models.SlotTop},
		{"Wool Beanie", models.SlotHead},
	}

	for _, tt := range tests {
		rec := newClothingRecord("test_cloth", tt.name)
		Infer(rec)
		assert.Equal(t, tt.slot, rec.Clothing.Slot, "name %q", tt.name)
		assert.Equal(t, "wear", rec.Animation)
	}
}

func TestInferClothingOutfitCategory(t *testing.T) {
	tests := []struct {
		name   string
		outfit models.OutfitCategory
	}{
		// swimsuit 同时命中 swim 和 suit，泳装规则在前
		{"Striped Swimsuit", models.OutfitSwim},
		{"Office Blazer", models.OutfitWork},
		{"Evening Gown", models.OutfitFormal},
		{"Yoga Pants", models.OutfitSports},
		{"Silk Pajamas", models.OutfitSleepwear},
		{"Plain Shirt", models.OutfitCasual},
	}

	for _, tt := range tests {
		rec := newClothingRecord("test_cloth", tt.name)
		Infer(rec)
		assert.Equal(t, tt.outfit, rec.Clothing.OutfitCategory, "name %q", tt.name)
	}
}

func TestInferActionAnimationAndDefaultPlot(t *testing.T) {
	rec := models.NewDefaultModRecord()
	rec.ID = "study_session"
	rec.Name = "Study Session"
	rec.SetCategory(models.CategoryAction)
	Infer(rec)

	assert.Equal(t, "type", rec.Animation)
	assert.NotEmpty(t, rec.Action.PlotPrompt)
}

func TestInferActionKeepsUserPlot(t *testing.T) {
	rec := models.NewDefaultModRecord()
	rec.ID = "study_session"
	rec.Name = "Study Session"
	rec.SetCategory(models.CategoryAction)
	rec.Action.PlotPrompt = "cramming for finals at 2am"
	Infer(rec)

	assert.Equal(t, "type", rec.Animation)
	assert.Equal(t, "cramming for finals at 2am", rec.Action.PlotPrompt)
}

func TestInferIsIdempotent(t *testing.T) {
	records := []*models.ModRecord{
		newItemRecord("luxury_wine_01", "Vintage Red Wine"),
		newClothingRecord("socks_01", "Silk Crew Socks"),
	}

	for _, rec := range records {
		Infer(rec)
		first := rec.Clone()
		Infer(rec)
		assert.Equal(t, first, rec)
	}
}

func TestInferIgnoresOtherCategories(t *testing.T) {
	rec := models.NewDefaultModRecord()
	rec.Name = "Wine Tasting Evening"
	rec.SetCategory(models.CategoryScene)
	Infer(rec)

	// 场景类别没有推断规则，记录原样保留
	assert.Empty(t, rec.Animation)
	assert.Empty(t, rec.Scene.PlotPrompt)
}
