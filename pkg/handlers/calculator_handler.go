package handlers

import (
	"log"
	"net/http"

	"salesmate-api/pkg/models"
	"salesmate-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// CalculatorHandler はマージン計算と食材コスト解決のハンドラです。
type CalculatorHandler struct {
	calc     *services.CalculatorService
	resolver services.IngredientResolver
}

// NewCalculatorHandler は新しいCalculatorHandlerを生成します。
func NewCalculatorHandler(calc *services.CalculatorService, resolver services.IngredientResolver) *CalculatorHandler {
	return &CalculatorHandler{
		calc:     calc,
		resolver: resolver,
	}
}

// Compute はマージンを計算して返します。
// 食材リストが空でなければその合計が手入力コストを上書きします。
func (h *CalculatorHandler) Compute(c *gin.Context) {
	var req models.ComputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "リクエストの形式が正しくありません: " + err.Error()})
		return
	}

	result := h.calc.Compute(req.SellPrice, req.ManualCost, req.Ingredients)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// ResolveIngredients はフリーテキストの食材リストをAIで価格付きの行へ変換します。
// 失敗時は502を返し、呼び出し側の計算状態には触れません。リトライはしません。
func (h *CalculatorHandler) ResolveIngredients(c *gin.Context) {
	if h.resolver == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   "AIサービスが利用できません。設定を確認してください。",
		})
		return
	}

	var req models.ResolveIngredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "リクエストの形式が正しくありません: " + err.Error()})
		return
	}

	ingredients, err := h.resolver.ResolveIngredients(c.Request.Context(), req.Text)
	if err != nil {
		log.Printf("食材コスト解決に失敗: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   "食材コストの解決に失敗しました",
		})
		return
	}

	// 解決直後の合計も返す（クライアント側の手入力コスト置き換え用）
	total := 0.0
	for _, ing := range ingredients {
		total += ing.Cost
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"ingredients": ingredients,
			"total_cost":  total,
		},
	})
}
