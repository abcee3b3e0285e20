package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// BuddyPromptConfig はbuddy_prompt.yamlの構造を定義
type BuddyPromptConfig struct {
	Persona struct {
		Name    string `yaml:"name"`
		Role    string `yaml:"role"`
		Version string `yaml:"version"`
	} `yaml:"persona"`

	Tone struct {
		Style       string `yaml:"style"`
		Personality string `yaml:"personality"`
	} `yaml:"tone"`

	Flyer struct {
		Instruction   string `yaml:"instruction"`
		SchemaExample string `yaml:"schema_example"`
	} `yaml:"flyer"`

	Constraints []string `yaml:"constraints"`

	FallbackReply string `yaml:"fallback_reply"`
	Greeting      string `yaml:"greeting"`

	Metadata struct {
		LastUpdated string `yaml:"last_updated"`
		Author      string `yaml:"author"`
	} `yaml:"metadata"`
}

var cachedBuddyPrompt *BuddyPromptConfig

// LoadBuddyPrompt はYAMLファイルからバディのプロンプト設定を読み込む
func LoadBuddyPrompt() (*BuddyPromptConfig, error) {
	if cachedBuddyPrompt != nil {
		return cachedBuddyPrompt, nil
	}

	data, err := os.ReadFile("configs/buddy_prompt.yaml")
	if err != nil {
		return nil, fmt.Errorf("バディプロンプト設定ファイルの読み込みに失敗: %w", err)
	}

	var config BuddyPromptConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("YAMLのパースに失敗: %w", err)
	}

	cachedBuddyPrompt = &config
	return cachedBuddyPrompt, nil
}

// DefaultBuddyPrompt はYAMLが読めない環境（Vercel等でのパス違い）向けの
// 組み込みデフォルト設定を返します。内容はbuddy_prompt.yamlと同一に保つこと。
func DefaultBuddyPrompt() *BuddyPromptConfig {
	c := &BuddyPromptConfig{}
	c.Persona.Name = "SalesMate Buddy"
	c.Persona.Role = "a highly tactical foodservice consultant and senior strategist"
	c.Persona.Version = "2.5"
	c.Tone.Style = "short, high-impact, profit-driven"
	c.Tone.Personality = "confident field veteran, never generic"
	c.Flyer.Instruction = "If the user asks for a promotional flyer, a menu (Happy Hour, Daily Specials), or a recipe card, you MUST include a JSON block at the end of your message wrapped specifically in [FLYER_JSON] and [/FLYER_JSON]."
	c.Flyer.SchemaExample = `{
  "title": "Promotion Title",
  "subtitle": "Short tagline",
  "items": [{"name": "Item Name", "description": "Compelling description", "price": "$12.00", "margin": "75%"}],
  "recipe": {"name": "Signature Dish", "ingredients": ["Item A", "Item B"], "method": "Steps...", "marginNote": "Labor savings note"},
  "callToAction": "Order from [Distributor] today!"
}`
	c.Constraints = []string{
		"Give short, high-impact advice.",
		"Talk Plate Cost and Contribution Margin, not case price.",
		"Never invent distributor pricing; keep numbers plausible.",
	}
	c.FallbackReply = "I'm analyzing the profit vectors. One moment."
	c.Greeting = "Hey Pro. Need a tactical edge? Ask me for a Happy Hour menu or a recipe flyer."
	return c
}

// BuildSystemPrompt は設定からバディのシステムプロンプトを構築
func (c *BuddyPromptConfig) BuildSystemPrompt() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("You are '%s', %s.\n\n", c.Persona.Name, c.Persona.Role))

	// トーン
	sb.WriteString("## Tone\n")
	sb.WriteString(fmt.Sprintf("- Style: %s\n", c.Tone.Style))
	sb.WriteString(fmt.Sprintf("- Personality: %s\n\n", c.Tone.Personality))

	// フライヤー生成の特別仕様
	sb.WriteString("## SPECIAL FEATURE: FLYER GENERATOR\n")
	sb.WriteString(c.Flyer.Instruction)
	sb.WriteString("\nUse this EXACT format:\n[FLYER_JSON]\n")
	sb.WriteString(c.Flyer.SchemaExample)
	sb.WriteString("\n[/FLYER_JSON]\n\n")

	// 制約
	sb.WriteString("## Constraints\n")
	for _, constraint := range c.Constraints {
		sb.WriteString(fmt.Sprintf("- %s\n", constraint))
	}

	return sb.String()
}
