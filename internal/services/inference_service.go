// internal/services/inference_service.go
package services

import (
	"strings"

	"github.com/Corphon/LifePlayModStudio/internal/models"
)

// 基于关键词表的属性推断引擎。纯函数、确定性、幂等：
// 对同一 name/category 重复执行结果不变。规则按声明顺序
// 求值，同一字段组内首个命中的规则生效。

// slotRule 关键词到服装槽位的映射规则
type slotRule struct {
	keywords []string
	slot     models.ClothingSlot
}

// outfitRule 关键词到穿搭分组的映射规则
type outfitRule struct {
	keywords []string
	outfit   models.OutfitCategory
}

// actionRule 关键词到动画与默认剧情的映射规则
type actionRule struct {
	keywords  []string
	animation string
	plot      string
}

// typeHintRule 非消耗品的物品子类型提示规则
type typeHintRule struct {
	keywords []string
	itemType models.ItemType
}

var clothingSlotRules = []slotRule{
	{[]string{"sock", "stocking", "hosiery"}, models.SlotFootUnder},
	{[]string{"shoe", "heel", "boot", "sneaker", "sandal"}, models.SlotFoot},
	// bracelet/earring 必须先于 bra/ring，避免子串误命中
	{[]string{"bracelet", "watch", "wristband"}, models.SlotWrist},
	{[]string{"earring"}, models.SlotEar},
	{[]string{"bra", "brassiere"}, models.SlotTopUnder},
	{[]string{"panties", "thong", "briefs", "boxers"}, models.SlotBottomUnder},
	{[]string{"pant", "skirt", "short", "jean", "trouser", "legging"}, models.SlotBottom},
	{[]string{"jacket", "hoodie", "cardigan", "parka"}, models.SlotOuterwear},
	{[]string{"shirt", "top", "coat", "blouse", "sweater", "tee"}, models.SlotTop},
	{[]string{"hat", "cap", "beanie", "beret"}, models.SlotHead},
	{[]string{"glasses", "sunglass", "goggles"}, models.SlotEyewear},
	{[]string{"necklace", "scarf", "choker", "pendant"}, models.SlotNeck},
	{[]string{"ring"}, models.SlotFinger},
	{[]string{"belt"}, models.SlotWaist},
	{[]string{"glove", "mitten"}, models.SlotHands},
}

var clothingOutfitRules = []outfitRule{
	{[]string{"bikini", "swim", "trunks"}, models.OutfitSwim},
	{[]string{"suit", "office", "blazer"}, models.OutfitWork},
	{[]string{"gown", "dress", "tuxedo"}, models.OutfitFormal},
	{[]string{"gym", "sport", "jogger", "yoga", "track"}, models.OutfitSports},
	{[]string{"pajama", "nightgown", "robe", "nightie"}, models.OutfitSleepwear},
}

// 消耗品关键词集合。drink 隐含包括 alcohol（酒也解渴）
var (
	alcoholKeywords = []string{"wine", "beer", "vodka", "whiskey", "rum", "champagne", "cocktail", "sake"}
	foodKeywords    = []string{"food", "snack", "meal", "burger", "pizza", "sandwich", "cake", "chocolate", "noodle"}
	drinkKeywords   = []string{"drink", "water", "tea", "coffee", "juice", "soda", "milk"}
	energyKeywords  = []string{"coffee", "energy"}
)

// 非消耗品的子类型提示，仅在消耗品集合全部未命中时求值
var itemTypeHintRules = []typeHintRule{
	{[]string{"sofa", "chair", "table", "bed", "desk", "shelf", "lamp"}, models.ItemTypeFurniture},
	{[]string{"phone", "tv", "laptop", "radio", "computer", "console", "camera"}, models.ItemTypeElectronic},
	{[]string{"gift", "flower", "bouquet", "teddy", "perfume"}, models.ItemTypeGift},
}

var actionRules = []actionRule{
	{[]string{"sleep", "nap"}, "sleep", ""},
	{[]string{"sit", "rest"}, "sit", ""},
	{[]string{"smoke"}, "smoke", ""},
	{[]string{"study", "read", "book"}, "type", "The character spends focused time studying and taking notes."},
	{[]string{"gym", "workout", "lift", "run"}, "gym", "The character goes through an intense exercise session."},
	{[]string{"work", "office", "job"}, "type", "The character gets through a demanding stretch of work."},
	{[]string{"social", "party", "talk"}, "call", "The character spends time socializing and catching up with others."},
}

// Infer 根据 name/id 的关键词推断派生字段并回填记录。
// 只改写当前类别规则表列出的字段，绝不触碰
// id、price、description、author 等其他字段
func Infer(rec *models.ModRecord) {
	haystack := strings.ToLower(rec.Name + " " + rec.ID)

	switch rec.Category {
	case models.CategoryClothing:
		inferClothing(rec, haystack)
	case models.CategoryItem:
		inferItem(rec, haystack)
	case models.CategoryAction:
		inferAction(rec, haystack)
	}
}

func inferClothing(rec *models.ModRecord, haystack string) {
	if rec.Clothing == nil {
		return
	}

	for _, rule := range clothingSlotRules {
		if matchAny(haystack, rule.keywords) {
			rec.Clothing.Slot = rule.slot
			break
		}
	}

	for _, rule := range clothingOutfitRules {
		if matchAny(haystack, rule.keywords) {
			rec.Clothing.OutfitCategory = rule.outfit
			break
		}
	}

	rec.Animation = "wear"
}

func inferItem(rec *models.ModRecord, haystack string) {
	if rec.Item == nil {
		return
	}

	isAlcohol := matchAny(haystack, alcoholKeywords)
	isFood := matchAny(haystack, foodKeywords)
	isDrink := matchAny(haystack, drinkKeywords) || isAlcohol

	if isAlcohol || isFood || isDrink {
		// 标志位整体覆盖而不是合并，最后一次推断结果生效
		rec.Item.Type = models.ItemTypeConsumable
		rec.Item.Rehydrate = isDrink
		rec.Item.Satiate = isFood
		rec.Item.Intoxicate = isAlcohol
		rec.Item.EnergyBoost = matchAny(haystack, energyKeywords)
		if isFood {
			rec.Animation = "eat"
		} else {
			rec.Animation = "drink"
		}
		return
	}

	for _, rule := range itemTypeHintRules {
		if matchAny(haystack, rule.keywords) {
			rec.Item.Type = rule.itemType
			break
		}
	}
}

func inferAction(rec *models.ModRecord, haystack string) {
	if rec.Action == nil {
		return
	}

	for _, rule := range actionRules {
		if matchAny(haystack, rule.keywords) {
			rec.Animation = rule.animation
			// 默认剧情只填补空白，不覆盖用户已写的文本
			if rule.plot != "" && rec.Action.PlotPrompt == "" {
				rec.Action.PlotPrompt = rule.plot
			}
			break
		}
	}
}

// matchAny 判断haystack是否包含任一关键词（子串匹配）
func matchAny(haystack string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}
