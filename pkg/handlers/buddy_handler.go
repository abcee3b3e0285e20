package handlers

import (
	"log"
	"net/http"

	"salesmate-api/pkg/models"
	"salesmate-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// BuddyHandler はバディチャットのハンドラです。
type BuddyHandler struct {
	buddy    *services.BuddyService
	insights *services.InsightService
}

// NewBuddyHandler は新しいBuddyHandlerを生成します。
func NewBuddyHandler(buddy *services.BuddyService, insights *services.InsightService) *BuddyHandler {
	return &BuddyHandler{
		buddy:    buddy,
		insights: insights,
	}
}

// Chat はユーザーメッセージを処理してバディ応答を返します。
// context_idが指定されていれば、監査中レコードのタイトルを文脈として渡します。
// 存在しないIDは文脈なしとして扱います。
func (h *BuddyHandler) Chat(c *gin.Context) {
	var req models.BuddyChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "リクエストの形式が正しくありません: " + err.Error()})
		return
	}

	var auditContext *models.InsightRecord
	if req.ContextID != "" {
		if record, ok := h.insights.Get(req.ContextID); ok {
			auditContext = &record
		}
	}

	resp, err := h.buddy.Chat(c.Request.Context(), req.SessionID, req.Message, auditContext)
	if err != nil {
		log.Printf("バディチャットに失敗: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   "バディ応答の生成に失敗しました",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"response": resp,
	})
}

// History はセッションのメッセージ履歴を返します。
func (h *BuddyHandler) History(c *gin.Context) {
	sessionID := c.Param("session_id")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.buddy.History(sessionID),
	})
}

// Greeting は新規セッションの冒頭メッセージを返します。
func (h *BuddyHandler) Greeting(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.buddy.Greeting(),
	})
}
