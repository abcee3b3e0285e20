package models

// InsightKind はインサイトレコードの種別です。
// アカウント（業態）とカテゴリ（商品分類）の2種類のみを扱います。
type InsightKind string

const (
	KindAccount  InsightKind = "account"
	KindCategory InsightKind = "category"
)

// InsightRecord は営業戦略ノートの1レコードを表します。
// IDはスラグ形式（例: "food-truck"）で、リポジトリと監査ビューを結ぶ唯一のキーです。
type InsightRecord struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Insight1      string      `json:"insight_1"`
	Insight2      string      `json:"insight_2"`
	Tip           string      `json:"tip"`
	Kind          InsightKind `json:"type"`
	Phone         string      `json:"phone,omitempty"`
	AppendedNotes []string    `json:"appended_notes,omitempty"`
}

// Ingredient はAIが価格付けした食材1行を表します。
// Quantityは自由形式（例: "8oz"）、Costは米ドルの卸売市場価格です。
type Ingredient struct {
	Name     string  `json:"name"`
	Quantity string  `json:"quantity"`
	Cost     float64 `json:"cost"`
}

// CalculationResult はマージン計算の結果です。
// MarginPercentは常に導出値であり、独立して保存されることはありません。
type CalculationResult struct {
	SellPrice     float64 `json:"sell_price"`
	Cost          float64 `json:"cost"`
	Margin        float64 `json:"margin"`
	MarginPercent float64 `json:"margin_percent"`
}

// FlyerItem はフライヤーに掲載する商品1件です。
type FlyerItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price,omitempty"`
	Margin      string `json:"margin,omitempty"`
}

// FlyerRecipe はフライヤーに添えるレシピカードです。
type FlyerRecipe struct {
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
	Method      string   `json:"method"`
	MarginNote  string   `json:"marginNote"`
}

// FlyerData はアシスタントの応答テキストから抽出される販促フライヤーです。
type FlyerData struct {
	Title        string       `json:"title"`
	Subtitle     string       `json:"subtitle,omitempty"`
	Items        []FlyerItem  `json:"items"`
	Recipe       *FlyerRecipe `json:"recipe,omitempty"`
	CallToAction string       `json:"callToAction"`
}

// AssistantReply はAIコラボレーター境界が返す構造化済みの応答です。
// フライヤーが含まれる場合もセンチネル解析は境界側で完了しており、
// コアロジックは生テキストの分解を行いません。
type AssistantReply struct {
	Text  string     `json:"text"`
	Flyer *FlyerData `json:"flyer,omitempty"`
}

// ChatMessage はバディチャットの1メッセージです。
// セッションスコープのみで保持され、永続化はされません。
type ChatMessage struct {
	Role  string     `json:"role"` // "user" または "assistant"
	Text  string     `json:"text"`
	Flyer *FlyerData `json:"flyer,omitempty"`
}

// --- APIリクエスト/レスポンス構造体 ---

// LoginRequest ログインリクエスト
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuditSearchRequest 監査検索リクエスト
type AuditSearchRequest struct {
	Query string `json:"query" binding:"required"`
}

// AuditSearchResponse 監査検索レスポンス
type AuditSearchResponse struct {
	Record      InsightRecord `json:"record"`
	Source      string        `json:"source"` // "local" または "ai"
	Suggestions []string      `json:"suggestions"`
	Token       uint64        `json:"token"`
}

// AddEntryRequest 管理者によるレコード追加リクエスト
type AddEntryRequest struct {
	ID       string `json:"id" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Insight1 string `json:"insight_1" binding:"required"`
	Insight2 string `json:"insight_2" binding:"required"`
	Tip      string `json:"tip" binding:"required"`
	Kind     string `json:"type"`
	Phone    string `json:"phone"`
}

// ComputeRequest マージン計算リクエスト
type ComputeRequest struct {
	SellPrice   float64      `json:"sell_price"`
	ManualCost  float64      `json:"manual_cost"`
	Ingredients []Ingredient `json:"ingredients"`
}

// ResolveIngredientsRequest 食材コスト解決リクエスト
type ResolveIngredientsRequest struct {
	Text string `json:"text" binding:"required"`
}

// BuddyChatRequest バディチャットリクエスト
type BuddyChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
	ContextID string `json:"context_id"` // 監査中のレコードID（任意）
}

// BuddyChatResponse バディチャットレスポンス
type BuddyChatResponse struct {
	SessionID string     `json:"session_id"`
	Text      string     `json:"text"`
	Flyer     *FlyerData `json:"flyer,omitempty"`
}

// AppendSuggestionRequest バディ提案をレコードへ追記するリクエスト
type AppendSuggestionRequest struct {
	ID         string `json:"id" binding:"required"`
	Suggestion string `json:"suggestion" binding:"required"`
}

// ExportProfitPlanRequest 利益プラン書き出しリクエスト
type ExportProfitPlanRequest struct {
	RecordID    string            `json:"record_id" binding:"required"`
	Consultant  string            `json:"consultant"`
	Calculation CalculationResult `json:"calculation"`
	Ingredients []Ingredient      `json:"ingredients"`
}

// ExportFlyerRequest フライヤー書き出しリクエスト
type ExportFlyerRequest struct {
	Flyer FlyerData `json:"flyer" binding:"required"`
}
