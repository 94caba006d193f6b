// internal/models/mod_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultModRecord(t *testing.T) {
	rec := NewDefaultModRecord()

	assert.Equal(t, "luxury_wine_01", rec.ID)
	assert.Equal(t, CategoryItem, rec.Category)
	require.NotNil(t, rec.Item)
	assert.Equal(t, ItemTypeConsumable, rec.Item.Type)
	assert.Equal(t, "0 - 24", rec.Availability)
	assert.Nil(t, rec.Clothing)
	assert.Nil(t, rec.Scene)
}

func TestSetCategorySwapsPayload(t *testing.T) {
	rec := NewDefaultModRecord()

	rec.SetCategory(CategoryClothing)
	assert.Nil(t, rec.Item)
	require.NotNil(t, rec.Clothing)
	assert.Equal(t, SlotTop, rec.Clothing.Slot)
	assert.Equal(t, OutfitCasual, rec.Clothing.OutfitCategory)
	assert.Equal(t, LocationClothes, rec.Location)

	rec.SetCategory(CategoryItem)
	assert.Nil(t, rec.Clothing)
	require.NotNil(t, rec.Item)
	assert.Equal(t, ItemTypeObject, rec.Item.Type)
	assert.Equal(t, LocationSupermarket, rec.Location)
}

func TestSetCategoryAlwaysYieldsSinglePayload(t *testing.T) {
	rec := NewDefaultModRecord()

	for _, category := range AllCategories() {
		rec.SetCategory(category)

		count := 0
		for _, p := range []bool{
			rec.Item != nil, rec.Clothing != nil, rec.Scene != nil,
			rec.Action != nil, rec.Character != nil,
		} {
			if p {
				count++
			}
		}
		assert.Equal(t, 1, count, "category %s", category)
	}
}

func TestNormalizeClearsFlagsForNonConsumable(t *testing.T) {
	rec := NewDefaultModRecord()
	rec.Item.Rehydrate = true
	rec.Item.Intoxicate = true
	rec.Item.Type = ItemTypeFurniture

	rec.Normalize()

	assert.False(t, rec.Item.Rehydrate)
	assert.False(t, rec.Item.Satiate)
	assert.False(t, rec.Item.EnergyBoost)
	assert.False(t, rec.Item.Intoxicate)
}

func TestNormalizeRepairsMissingPayload(t *testing.T) {
	rec := &ModRecord{ID: "x", Category: CategoryScene}
	rec.Item = &ItemPayload{Type: ItemTypeGift}

	rec.Normalize()

	assert.Nil(t, rec.Item)
	require.NotNil(t, rec.Scene)
}

func TestNeedsScene(t *testing.T) {
	rec := NewDefaultModRecord()
	assert.False(t, rec.NeedsScene())

	rec.Item.LinkScene = true
	assert.True(t, rec.NeedsScene())

	rec.SetCategory(CategoryScene)
	assert.True(t, rec.NeedsScene())

	rec.SetCategory(CategoryCharacter)
	assert.False(t, rec.NeedsScene())
}

func TestPlotPromptFollowsActivePayload(t *testing.T) {
	rec := NewDefaultModRecord()
	rec.Item.LinkScene = true
	rec.Item.Scene.PlotPrompt = "a toast at midnight"
	assert.Equal(t, "a toast at midnight", rec.PlotPrompt())

	rec.SetCategory(CategoryAction)
	rec.Action.PlotPrompt = "an evening jog"
	assert.Equal(t, "an evening jog", rec.PlotPrompt())

	rec.SetCategory(CategoryClothing)
	assert.Equal(t, "", rec.PlotPrompt())
}

func TestCloneIsDeep(t *testing.T) {
	rec := NewDefaultModRecord()
	rec.Item.LinkScene = true
	rec.Item.Scene.PlotPrompt = "original"

	cp := rec.Clone()
	cp.Name = "changed"
	cp.Item.Scene.PlotPrompt = "changed"

	assert.Equal(t, "Vintage Red Wine", rec.Name)
	assert.Equal(t, "original", rec.Item.Scene.PlotPrompt)
}
