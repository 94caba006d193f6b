// internal/models/mod.go
package models

// Category 模组类别，决定生成哪些产物以及哪个载荷生效
type Category string

const (
	CategoryItem      Category = "item"
	CategoryClothing  Category = "clothing"
	CategoryCharacter Category = "character"
	CategoryScene     Category = "scene"
	CategoryAction    Category = "action"
)

// AllCategories 返回界面可选的类别列表
func AllCategories() []Category {
	return []Category{CategoryItem, CategoryClothing, CategoryCharacter, CategoryScene, CategoryAction}
}

// ItemType 物品子类型（仅 Category=Item 有效）
type ItemType string

const (
	ItemTypeObject     ItemType = "Object"
	ItemTypeConsumable ItemType = "Consumable"
	ItemTypeFurniture  ItemType = "Furniture"
	ItemTypeElectronic ItemType = "Electronic"
	ItemTypeGift       ItemType = "Gift"
)

// AllItemTypes 返回物品子类型列表
func AllItemTypes() []ItemType {
	return []ItemType{ItemTypeObject, ItemTypeConsumable, ItemTypeFurniture, ItemTypeElectronic, ItemTypeGift}
}

// ClothingSlot 服装在游戏引擎装备模型中占用的身体槽位
type ClothingSlot string

const (
	SlotTop         ClothingSlot = "Top"
	SlotTopUnder    ClothingSlot = "Top_Under"
	SlotBottom      ClothingSlot = "Bottom"
	SlotBottomUnder ClothingSlot = "Bottom_Under"
	SlotFoot        ClothingSlot = "Foot"
	SlotFootUnder   ClothingSlot = "Foot_Under"
	SlotHead        ClothingSlot = "Head"
	SlotEyewear     ClothingSlot = "Eyewear"
	SlotNeck        ClothingSlot = "Neck"
	SlotWrist       ClothingSlot = "Wrist"
	SlotEar         ClothingSlot = "Ear"
	SlotFinger      ClothingSlot = "Finger"
	SlotWaist       ClothingSlot = "Waist"
	SlotHands       ClothingSlot = "Hands"
	SlotOuterwear   ClothingSlot = "Outerwear"
	SlotAccessory   ClothingSlot = "Accessory"
)

// AllClothingSlots 返回槽位列表
func AllClothingSlots() []ClothingSlot {
	return []ClothingSlot{
		SlotTop, SlotTopUnder, SlotBottom, SlotBottomUnder,
		SlotFoot, SlotFootUnder, SlotHead, SlotEyewear,
		SlotNeck, SlotWrist, SlotEar, SlotFinger,
		SlotWaist, SlotHands, SlotOuterwear, SlotAccessory,
	}
}

// ShopLocation 游戏内购买地点
type ShopLocation string

const (
	LocationSupermarket ShopLocation = "supermarket"
	LocationPharmacy    ShopLocation = "pharmacy"
	LocationClothes     ShopLocation = "clothes"
	LocationFurniture   ShopLocation = "furniture_shop"
	LocationElectronics ShopLocation = "electronics_shop"
	LocationSexShop     ShopLocation = "sex_shop"
	LocationMall        ShopLocation = "mall"
)

// AllShopLocations 返回商店地点列表
func AllShopLocations() []ShopLocation {
	return []ShopLocation{
		LocationSupermarket, LocationPharmacy, LocationClothes,
		LocationFurniture, LocationElectronics, LocationSexShop, LocationMall,
	}
}

// OutfitCategory 服装所属的穿搭分组（写入引擎的 outfit 注册表）
type OutfitCategory string

const (
	OutfitCasual    OutfitCategory = "casual"
	OutfitWork      OutfitCategory = "work"
	OutfitSports    OutfitCategory = "sports"
	OutfitSwim      OutfitCategory = "swim"
	OutfitFormal    OutfitCategory = "formal"
	OutfitSleepwear OutfitCategory = "sleepwear"
)

// AllOutfitCategories 返回穿搭分组列表
func AllOutfitCategories() []OutfitCategory {
	return []OutfitCategory{OutfitCasual, OutfitWork, OutfitSports, OutfitSwim, OutfitFormal, OutfitSleepwear}
}

// SceneDetails 场景叙事字段，被 Scene/Action 类别以及物品的联动场景共用
type SceneDetails struct {
	PlotPrompt  string `json:"plot_prompt"`
	SceneActors string `json:"scene_actors,omitempty"`
}

// ItemPayload 物品类别专属字段
type ItemPayload struct {
	Type        ItemType     `json:"type"`
	Rehydrate   bool         `json:"rehydrate"`
	Satiate     bool         `json:"satiate"`
	EnergyBoost bool         `json:"energy_boost"`
	Intoxicate  bool         `json:"intoxicate"`
	LinkScene   bool         `json:"link_scene"`
	Scene       SceneDetails `json:"scene"`
}

// ClothingPayload 服装类别专属字段
type ClothingPayload struct {
	Slot           ClothingSlot   `json:"slot"`
	OutfitCategory OutfitCategory `json:"outfit_category"`
	Tags           string         `json:"tags,omitempty"`
	Gender         string         `json:"gender,omitempty"`
}

// ScenePayload 场景类别专属字段
type ScenePayload struct {
	SceneDetails
}

// ActionPayload 动作类别专属字段
type ActionPayload struct {
	SceneDetails
}

// CharacterPayload 角色预设类别专属字段
type CharacterPayload struct {
	Gender  string `json:"gender,omitempty"`
	Persona string `json:"persona,omitempty"`
}

// ModRecord 一条待生成的模组记录：公共头部 + 与类别一一对应的载荷。
// 同一时刻只有与 Category 匹配的那个载荷非 nil，由 SetCategory/Normalize 保证。
type ModRecord struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Author       string       `json:"author"`
	Version      string       `json:"version"`
	ModName      string       `json:"mod_name"`
	Category     Category     `json:"category"`
	Price        int          `json:"price"`
	Location     ShopLocation `json:"location"`
	Availability string       `json:"availability"`
	Animation    string       `json:"animation,omitempty"`
	ImagePrompt  string       `json:"image_prompt"`

	Item      *ItemPayload      `json:"item,omitempty"`
	Clothing  *ClothingPayload  `json:"clothing,omitempty"`
	Scene     *ScenePayload     `json:"scene,omitempty"`
	Action    *ActionPayload    `json:"action,omitempty"`
	Character *CharacterPayload `json:"character,omitempty"`
}

// NewDefaultModRecord 创建会话初始记录（与最初的示例物品保持一致）
func NewDefaultModRecord() *ModRecord {
	return &ModRecord{
		ID:           "luxury_wine_01",
		Name:         "Vintage Red Wine",
		Description:  "A fine vintage from the local vineyards.",
		Author:       "ModStudio",
		Version:      "1.0",
		ModName:      "Vintage Red Wine",
		Category:     CategoryItem,
		Price:        85,
		Location:     LocationSupermarket,
		Availability: "0 - 24",
		ImagePrompt:  "elegant red wine bottle with detailed label, high-end game asset",
		Item: &ItemPayload{
			Type: ItemTypeConsumable,
		},
	}
}

// SetCategory 切换类别：分配匹配的载荷并清空其他载荷，
// 使非法的字段组合在构造上即不可能出现
func (r *ModRecord) SetCategory(c Category) {
	r.Category = c
	r.Item, r.Clothing, r.Scene, r.Action, r.Character = nil, nil, nil, nil, nil

	switch c {
	case CategoryItem:
		r.Item = &ItemPayload{Type: ItemTypeObject}
		r.Location = LocationSupermarket
	case CategoryClothing:
		r.Clothing = &ClothingPayload{Slot: SlotTop, OutfitCategory: OutfitCasual}
		r.Location = LocationClothes
	case CategoryScene:
		r.Scene = &ScenePayload{}
	case CategoryAction:
		r.Action = &ActionPayload{}
	case CategoryCharacter:
		r.Character = &CharacterPayload{}
	}
}

// Normalize 使记录满足类别不变式：补齐缺失的当前载荷、清空不属于
// 当前类别的载荷，并在物品不是消耗品时清除互动标志位
func (r *ModRecord) Normalize() {
	switch r.Category {
	case CategoryItem:
		if r.Item == nil {
			r.Item = &ItemPayload{Type: ItemTypeObject}
		}
		r.Clothing, r.Scene, r.Action, r.Character = nil, nil, nil, nil
		if r.Item.Type != ItemTypeConsumable {
			r.Item.Rehydrate = false
			r.Item.Satiate = false
			r.Item.EnergyBoost = false
			r.Item.Intoxicate = false
		}
	case CategoryClothing:
		if r.Clothing == nil {
			r.Clothing = &ClothingPayload{Slot: SlotTop, OutfitCategory: OutfitCasual}
		}
		r.Item, r.Scene, r.Action, r.Character = nil, nil, nil, nil
	case CategoryScene:
		if r.Scene == nil {
			r.Scene = &ScenePayload{}
		}
		r.Item, r.Clothing, r.Action, r.Character = nil, nil, nil, nil
	case CategoryAction:
		if r.Action == nil {
			r.Action = &ActionPayload{}
		}
		r.Item, r.Clothing, r.Scene, r.Character = nil, nil, nil, nil
	case CategoryCharacter:
		if r.Character == nil {
			r.Character = &CharacterPayload{}
		}
		r.Item, r.Clothing, r.Scene, r.Action = nil, nil, nil, nil
	}
}

// NeedsScene 是否需要生成场景脚本产物
func (r *ModRecord) NeedsScene() bool {
	if r.Category == CategoryScene {
		return true
	}
	return r.Category == CategoryItem && r.Item != nil && r.Item.LinkScene
}

// PlotPrompt 返回当前生效的剧情提示（场景、动作或物品联动场景）
func (r *ModRecord) PlotPrompt() string {
	switch {
	case r.Scene != nil:
		return r.Scene.PlotPrompt
	case r.Action != nil:
		return r.Action.PlotPrompt
	case r.Item != nil && r.Item.LinkScene:
		return r.Item.Scene.PlotPrompt
	}
	return ""
}

// SceneActors 返回当前生效的场景角色描述
func (r *ModRecord) SceneActors() string {
	switch {
	case r.Scene != nil:
		return r.Scene.SceneActors
	case r.Action != nil:
		return r.Action.SceneActors
	case r.Item != nil && r.Item.LinkScene:
		return r.Item.Scene.SceneActors
	}
	return ""
}

// Clone 深拷贝记录，用于生成运行开始时的快照
func (r *ModRecord) Clone() *ModRecord {
	cp := *r
	if r.Item != nil {
		item := *r.Item
		cp.Item = &item
	}
	if r.Clothing != nil {
		clothing := *r.Clothing
		cp.Clothing = &clothing
	}
	if r.Scene != nil {
		scene := *r.Scene
		cp.Scene = &scene
	}
	if r.Action != nil {
		action := *r.Action
		cp.Action = &action
	}
	if r.Character != nil {
		character := *r.Character
		cp.Character = &character
	}
	return &cp
}
