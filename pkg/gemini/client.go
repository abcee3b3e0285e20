package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"salesmate-api/pkg/models"

	"google.golang.org/genai"
)

// Client はGemini APIへのリクエストを管理します。
// 監査生成・食材コスト解決・バディ応答の3つの呼び出し口を持ちます。
type Client struct {
	client *genai.Client
	model  string
}

// NewClient は新しいGeminiクライアントを作成します。
// modelが空の場合はフラッシュ系のデフォルトモデルを使用します。
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key が設定されていません")
	}
	if model == "" {
		model = "gemini-3-flash-preview"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("Geminiクライアントの作成に失敗: %w", err)
	}

	return &Client{
		client: client,
		model:  model,
	}, nil
}

// insightSchema は監査結果の構造化出力スキーマです。
func insightSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":        {Type: genai.TypeString},
			"title":     {Type: genai.TypeString},
			"insight_1": {Type: genai.TypeString},
			"insight_2": {Type: genai.TypeString},
			"tip":       {Type: genai.TypeString},
			"type":      {Type: genai.TypeString, Description: "Must be 'account' or 'category'"},
		},
		Required: []string{"id", "title", "insight_1", "insight_2", "tip", "type"},
	}
}

// ingredientsSchema は食材コスト解決の構造化出力スキーマです。
func ingredientsSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"ingredients": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":     {Type: genai.TypeString},
						"quantity": {Type: genai.TypeString},
						"cost":     {Type: genai.TypeNumber, Description: "Market wholesale cost in USD"},
					},
					Required: []string{"name", "quantity", "cost"},
				},
			},
		},
		Required: []string{"ingredients"},
	}
}

// GenerateAudit はフリーテキストのクエリから監査レコードを生成します。
// レスポンスはJSONスキーマで強制し、そのままパースします。
func (c *Client) GenerateAudit(ctx context.Context, query string) (*models.InsightRecord, error) {
	prompt := fmt.Sprintf(`Conduct an aggressive, professional foodservice business audit for: "%s".

CRITICAL: Do not give a generic "restaurant" answer. If the query is a specific cuisine, focus on:
1. CUISINE-SPECIFIC LABOR: Identify high-prep items and suggest "speed-scratch" swaps.
2. CUISINE-SPECIFIC PROFIT: Identify high-margin "stars" and optimize plate costs.
3. THE HOOK: A tactical sales opening.

Provide tactical, profit-driven insights for a sales consultant.`, query)

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   insightSchema(),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("Gemini API 呼び出しに失敗: %w", err)
	}

	text := resp.Text()
	if text == "" {
		text = "{}"
	}

	var record models.InsightRecord
	if err := json.Unmarshal([]byte(text), &record); err != nil {
		return nil, fmt.Errorf("監査レスポンスのJSON解析に失敗: %w", err)
	}

	return &record, nil
}

// ResolveIngredients はフリーテキストの食材リストを価格付きの行に分解します。
func (c *Client) ResolveIngredients(ctx context.Context, text string) ([]models.Ingredient, error) {
	prompt := fmt.Sprintf(`Analyze the following list of food ingredients for a single plate and provide standard market wholesale costs for each based on the quantity provided.

Ingredients: "%s"

Rules:
- If quantity is missing, assume a standard portion size for a single restaurant entree.
- Provide the cost as a decimal number (wholesale market average).
- Be realistic but conservative.`, text)

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   ingredientsSchema(),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("Gemini API 呼び出しに失敗: %w", err)
	}

	body := resp.Text()
	if body == "" {
		body = `{"ingredients": []}`
	}

	var data struct {
		Ingredients []models.Ingredient `json:"ingredients"`
	}
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return nil, fmt.Errorf("食材レスポンスのJSON解析に失敗: %w", err)
	}

	return data.Ingredients, nil
}

// BuddyReply はバディチャットの応答を生成します。
// フライヤーJSONの埋め込み指示はsystemPrompt側で行い、センチネル付きの
// 生テキストはこの境界で構造化してから返します。
func (c *Client) BuddyReply(ctx context.Context, systemPrompt, contextText, userMessage string) (*models.AssistantReply, error) {
	var sb strings.Builder
	if contextText != "" {
		sb.WriteString(contextText)
		sb.WriteString("\n\n")
	}
	sb.WriteString(fmt.Sprintf("Consultant Question: %q", userMessage))

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(sb.String()), config)
	if err != nil {
		return nil, fmt.Errorf("Gemini API 呼び出しに失敗: %w", err)
	}

	reply := extractFlyer(resp.Text())
	return &reply, nil
}
