package handlers

import (
	"errors"
	"log"
	"net/http"

	"salesmate-api/pkg/models"
	"salesmate-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// AuditHandler は監査検索とインサイトリポジトリ操作のハンドラです。
type AuditHandler struct {
	audit    *services.AuditService
	insights *services.InsightService
}

// NewAuditHandler は新しいAuditHandlerを生成します。
func NewAuditHandler(audit *services.AuditService, insights *services.InsightService) *AuditHandler {
	return &AuditHandler{
		audit:    audit,
		insights: insights,
	}
}

// Search はフリーテキストのクエリを監査レコードへ解決します。
// リモート失敗時はログ1行を残して502を返し、表示中の状態には触れません。
func (h *AuditHandler) Search(c *gin.Context) {
	var req models.AuditSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "リクエストの形式が正しくありません: " + err.Error()})
		return
	}

	result, err := h.audit.Resolve(c.Request.Context(), req.Query)
	if err != nil {
		if errors.Is(err, services.ErrStaleSearch) {
			// 新しい検索に追い越された結果は破棄する（後勝ち上書きバグの対策）
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error":   "superseded by a newer search",
			})
			return
		}
		log.Printf("AI Search Failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   "監査の生成に失敗しました",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"response": result,
	})
}

// ListEntries は全インサイトレコードを返します（新しいものが先頭）。
func (h *AuditHandler) ListEntries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.insights.All(),
	})
}

// AddEntry は管理者フォームからレコードを追加します（マネージャー専用）。
// 追加されたレコードはそのままアクティブな検索結果として返されます。
func (h *AuditHandler) AddEntry(c *gin.Context) {
	var req models.AddEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "リクエストの形式が正しくありません: " + err.Error()})
		return
	}

	record, err := h.insights.AddEntry(req)
	if err != nil {
		// 永続化失敗はログに残すが、メモリ上の追加自体は成立している
		log.Printf("レコード追加の永続化に失敗: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"response": models.AuditSearchResponse{
			Record:      record,
			Source:      "local",
			Suggestions: []string{},
		},
	})
}

// AppendSuggestion はバディ提案をレコードの追記ノートに加えます。
func (h *AuditHandler) AppendSuggestion(c *gin.Context) {
	var req models.AppendSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "リクエストの形式が正しくありません: " + err.Error()})
		return
	}

	record, err := h.insights.AppendNote(req.ID, req.Suggestion)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    record,
	})
}

// Presets は検索フォームのクイック検索ラベルを返します。
func (h *AuditHandler) Presets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    models.FieldPresets,
	})
}
