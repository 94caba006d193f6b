// internal/services/prompt_service.go
package services

import (
	"fmt"
	"strings"

	"github.com/Corphon/LifePlayModStudio/internal/models"
)

// 产物温度：结构化脚本用低温，叙事内容用高温
const (
	tempStructured float32 = 0.1
	tempAction     float32 = 0.4
	tempCharacter  float32 = 0.6
	tempScene      float32 = 0.7
)

// lifeplayInstructionContext 固定的目标脚本语法说明，与类别无关的
// 参考材料，随每个文本请求原样下发
const lifeplayInstructionContext = `You are a LifePlay (LP) Scripting expert for version 2023_04_Stable.
LifePlay scripts use a specific non-standard syntax.

Every script starts with these header fields:
WHAT: <item | clothing | scene | action | character>
WHERE: <shop or scene location id>
WHEN: <hour range, e.g. 0 - 24>
WHO:
OTHER:

Example of a correct ITEM script:
WHAT: item
WHERE: supermarket
WHEN: 0 - 24
WHO:
OTHER:

ITEM
  ID: example_id
  NAME: Example Item
  TYPE: Object
  COST: 50
  ICON: example_id.png
  DESCRIPTION: This is a description.
END_ITEM

Example of a correct CLOTHING script:
WHAT: clothing
WHERE: clothes
WHEN: 0 - 24
WHO:
OTHER:

CLOTHING
  ID: cool_shirt
  NAME: Cool Shirt
  TYPE: Top
  PRICE: 100
  TEXTURE: cool_shirt.png
END_CLOTHING

Note the asymmetry: ITEM blocks use COST and ICON, CLOTHING blocks use
PRICE and TEXTURE.

Enumerated vocabularies:
- Item TYPE values: Object, Consumable, Furniture, Electronic, Gift.
- Clothing TYPE values (body slots): Top, Top_Under, Bottom, Bottom_Under,
  Foot, Foot_Under, Head, Eyewear, Neck, Wrist, Ear, Finger, Waist, Hands,
  Outerwear, Accessory.
- Shop locations: supermarket, pharmacy, clothes, furniture_shop,
  electronics_shop, sex_shop, mall.
- Stat keys for consumable effects: thirst, hunger, energy, drunk
  (use "Actor.AdjustStat(<key>, <amount>)" lines, amounts between -100 and 100).
- Animation ids: wear, eat, drink, sleep, sit, smoke, type, gym, call.

Scene and action scripts place dialogue and stage directions after the
headers, one statement per line, using Actor/Target speaker prefixes.
Character presets list one "Key: Value" pair per line.
No JSON, no markdown fences. Return ONLY the script text.`

// BuildRequests 为记录的类别装配全部产物的生成请求。
// 纯函数，不做网络访问；每个请求自包含，可独立派发
func BuildRequests(rec *models.ModRecord) []models.GenerationRequest {
	requests := []models.GenerationRequest{
		{
			Kind:               models.ArtifactManifest,
			TaskPrompt:         buildManifestPrompt(rec),
			InstructionContext: lifeplayInstructionContext,
			Temperature:        tempStructured,
		},
		{
			Kind:               models.ArtifactScript,
			TaskPrompt:         buildScriptPrompt(rec),
			InstructionContext: lifeplayInstructionContext,
			Temperature:        scriptTemperature(rec.Category),
		},
	}

	if rec.Category == models.CategoryItem || rec.Category == models.CategoryClothing {
		requests = append(requests, models.GenerationRequest{
			Kind:               models.ArtifactRegistry,
			TaskPrompt:         buildRegistryPrompt(rec),
			InstructionContext: lifeplayInstructionContext,
			Temperature:        tempStructured,
		})
	}

	if rec.Category == models.CategoryItem && rec.Item != nil && rec.Item.LinkScene {
		requests = append(requests, models.GenerationRequest{
			Kind:               models.ArtifactScene,
			TaskPrompt:         buildLinkedScenePrompt(rec),
			InstructionContext: lifeplayInstructionContext,
			Temperature:        tempScene,
		})
	}

	requests = append(requests, models.GenerationRequest{
		Kind:        models.ArtifactImage,
		TaskPrompt:  buildImagePrompt(rec),
		Temperature: tempStructured,
		AspectRatio: "1:1",
	})

	return requests
}

// scriptTemperature 主脚本的温度按类别区分
func scriptTemperature(c models.Category) float32 {
	switch c {
	case models.CategoryScene:
		return tempScene
	case models.CategoryAction:
		return tempAction
	case models.CategoryCharacter:
		return tempCharacter
	default:
		return tempStructured
	}
}

func buildManifestPrompt(rec *models.ModRecord) string {
	modName := rec.ModName
	if modName == "" {
		modName = rec.Name
	}

	return fmt.Sprintf(`Generate the package manifest for a LifePlay mod (the %s_mod.lpmod file).
It must declare the following metadata, one "Key: Value" line per field:
  MOD_NAME: %s
  MOD_AUTHOR: %s
  MOD_VERSION: %s
  MOD_DESC: %s
Return ONLY the manifest lines.`, rec.ID, modName, rec.Author, orDefault(rec.Version, "1.0"), rec.Description)
}

func buildScriptPrompt(rec *models.ModRecord) string {
	switch rec.Category {
	case models.CategoryClothing:
		return buildClothingScriptPrompt(rec)
	case models.CategoryScene:
		return buildSceneScriptPrompt(rec, rec.PlotPrompt(), rec.SceneActors())
	case models.CategoryAction:
		return buildActionScriptPrompt(rec)
	case models.CategoryCharacter:
		return buildCharacterPresetPrompt(rec)
	default:
		return buildItemScriptPrompt(rec)
	}
}

func buildItemScriptPrompt(rec *models.ModRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, `Generate a valid LifePlay item script for the following:
Name: %s
ID: %s
Type: %s
Cost: %d
Description: %s
Shop Location: %s
Availability: %s

Rules:
1. Start with the WHAT, WHERE, WHEN, WHO, OTHER headers (WHEN: %s).
2. Use the ITEM...END_ITEM block.
3. Use ICON: %s.png
`, rec.Name, rec.ID, rec.Item.Type, rec.Price, rec.Description,
		rec.Location, orDefault(rec.Availability, "0 - 24"),
		orDefault(rec.Availability, "0 - 24"), rec.ID)

	if rec.Item.Type == models.ItemTypeConsumable {
		var effects []string
		if rec.Item.Rehydrate {
			effects = append(effects, "thirst")
		}
		if rec.Item.Satiate {
			effects = append(effects, "hunger")
		}
		if rec.Item.EnergyBoost {
			effects = append(effects, "energy")
		}
		if rec.Item.Intoxicate {
			effects = append(effects, "drunk")
		}
		if len(effects) > 0 {
			fmt.Fprintf(&b, "4. The item is consumable with animation %q; add AdjustStat effects for: %s.\n",
				orDefault(rec.Animation, "drink"), strings.Join(effects, ", "))
		}
	}

	return b.String()
}

func buildClothingScriptPrompt(rec *models.ModRecord) string {
	return fmt.Sprintf(`Generate a valid LifePlay clothing script for the following:
Name: %s
ID: %s
Body Slot (TYPE): %s
Price: %d
Outfit Category: %s
Tags: %s
Gender: %s
Description: %s

Rules:
1. Start with the WHAT, WHERE, WHEN, WHO, OTHER headers (WHERE: %s).
2. Use the CLOTHING...END_CLOTHING block.
3. Use TEXTURE: %s.png
`, rec.Name, rec.ID, rec.Clothing.Slot, rec.Price, rec.Clothing.OutfitCategory,
		orDefault(rec.Clothing.Tags, "none"), orDefault(rec.Clothing.Gender, "any"),
		rec.Description, rec.Location, rec.ID)
}

func buildSceneScriptPrompt(rec *models.ModRecord, plot, actors string) string {
	return fmt.Sprintf(`Write a LifePlay scene script (.lpscene) named %s.
Scenario: %s
Actors involved: %s
Setting / description: %s

Rules:
1. Start with the WHAT, WHERE, WHEN, WHO, OTHER headers (WHAT: scene).
2. Write natural dialogue and stage directions matching the scenario.
3. Keep every engine statement on its own line.`,
		rec.ID, plot, orDefault(actors, "the player character"), rec.Description)
}

func buildActionScriptPrompt(rec *models.ModRecord) string {
	return fmt.Sprintf(`Write a LifePlay action script (.lpaction) named %s.
Action name: %s
Animation: %s
What happens: %s
Description: %s

Rules:
1. Start with the WHAT, WHERE, WHEN, WHO, OTHER headers (WHAT: action).
2. Trigger the %q animation and apply sensible stat changes.
3. Keep every engine statement on its own line.`,
		rec.ID, rec.Name, orDefault(rec.Animation, "sit"),
		orDefault(rec.Action.PlotPrompt, rec.Name), rec.Description,
		orDefault(rec.Animation, "sit"))
}

func buildCharacterPresetPrompt(rec *models.ModRecord) string {
	return fmt.Sprintf(`Write a LifePlay character preset (.lpcharacter) named %s.
Character name: %s
Gender: %s
Persona: %s
Description: %s

Rules:
1. List one "Key: Value" pair per line (name, gender, appearance, personality stats).
2. Personality stat values range from -100 to 100.`,
		rec.ID, rec.Name, orDefault(rec.Character.Gender, "any"),
		orDefault(rec.Character.Persona, rec.Description), rec.Description)
}

func buildRegistryPrompt(rec *models.ModRecord) string {
	if rec.Category == models.CategoryClothing {
		return fmt.Sprintf(`Write plain-text install instructions (MOD_INSTRUCTIONS.txt) for the clothing mod %q (ID: %s).
Cover:
1. Creating the folder Modules/%s/ and placing %s.lpaction and %s.png inside it.
2. Registering the clothing in the %s shop inventory at price %d.
3. Adding the piece to the %q outfit list for slot %s (tags: %s).
Return ONLY the instruction text.`,
			rec.Name, rec.ID, rec.ID, rec.ID, rec.ID,
			rec.Location, rec.Price,
			rec.Clothing.OutfitCategory, rec.Clothing.Slot, orDefault(rec.Clothing.Tags, "none"))
	}

	return fmt.Sprintf(`Write plain-text install instructions (MOD_INSTRUCTIONS.txt) for the item mod %q (ID: %s).
Cover:
1. Creating the folder Modules/%s/ and placing %s.lpaction and %s.png inside it.
2. Registering the item in the %s shop inventory at cost %d.
3. Any extra wiring needed for a %s item.
Return ONLY the instruction text.`,
		rec.Name, rec.ID, rec.ID, rec.ID, rec.ID,
		rec.Location, rec.Price, rec.Item.Type)
}

func buildLinkedScenePrompt(rec *models.ModRecord) string {
	return buildSceneScriptPrompt(rec, rec.Item.Scene.PlotPrompt, rec.Item.Scene.SceneActors) +
		fmt.Sprintf("\n4. The scene is triggered by using the item %q.", rec.Name)
}

// buildImagePrompt 由imagePrompt加上类别风格限定词组成
func buildImagePrompt(rec *models.ModRecord) string {
	styleContext := "game item icon, 2D sprite style, isolated on clean background"
	extra := ""
	if rec.Category == models.CategoryClothing {
		styleContext = "clothing texture layout, clean fabric pattern or apparel item on flat background"
		extra = fmt.Sprintf(" Apparel context: %s %s outfit for %s wearer, tags: %s.",
			rec.Clothing.OutfitCategory, rec.Clothing.Slot,
			orDefault(rec.Clothing.Gender, "any"), orDefault(rec.Clothing.Tags, "none"))
	}

	return fmt.Sprintf("High-quality game asset: %s. Style: %s.%s Professional digital art, 512x512 resolution, suitable for LifePlay UI.",
		rec.ImagePrompt, styleContext, extra)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
