package handlers

import (
	"fmt"
	"log"
	"net/http"

	"salesmate-api/pkg/models"
	"salesmate-api/pkg/services"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler は監査ビューの書き出しエンドポイントを提供します。
type ExportHandler struct {
	export   *services.ExportService
	insights *services.InsightService
}

// NewExportHandler は新しいExportHandlerを生成します。
func NewExportHandler(export *services.ExportService, insights *services.InsightService) *ExportHandler {
	return &ExportHandler{
		export:   export,
		insights: insights,
	}
}

// ProfitPlan は利益分析ワークブックを書き出します。
func (h *ExportHandler) ProfitPlan(c *gin.Context) {
	var req models.ExportProfitPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "リクエストの形式が正しくありません: " + err.Error()})
		return
	}

	record, ok := h.insights.Get(req.RecordID)
	if !ok {
		log.Printf("書き出し対象のレコードが見つかりません: %s", req.RecordID)
		c.JSON(http.StatusNotFound, gin.H{"error": "レコードが見つかりません: " + req.RecordID})
		return
	}

	buf, err := h.export.BuildProfitPlan(record, req.Calculation, req.Ingredients, req.Consultant)
	if err != nil {
		log.Printf("利益プランの書き出しに失敗: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "書き出しに失敗しました"})
		return
	}

	sendWorkbook(c, services.ProfitPlanFilename(record.ID), buf.Bytes())
}

// StrategicProposal は戦略提案ワークブックを書き出します。
func (h *ExportHandler) StrategicProposal(c *gin.Context) {
	recordID := c.Param("id")
	record, ok := h.insights.Get(recordID)
	if !ok {
		log.Printf("書き出し対象のレコードが見つかりません: %s", recordID)
		c.JSON(http.StatusNotFound, gin.H{"error": "レコードが見つかりません: " + recordID})
		return
	}

	consultant := c.Query("consultant")
	buf, err := h.export.BuildStrategicProposal(record, consultant)
	if err != nil {
		log.Printf("戦略提案の書き出しに失敗: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "書き出しに失敗しました"})
		return
	}

	sendWorkbook(c, services.StrategicProposalFilename(record.ID), buf.Bytes())
}

// Flyer はチャットから抽出されたフライヤーをワークブックとして書き出します。
func (h *ExportHandler) Flyer(c *gin.Context) {
	var req models.ExportFlyerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "リクエストの形式が正しくありません: " + err.Error()})
		return
	}

	buf, err := h.export.BuildFlyer(req.Flyer)
	if err != nil {
		log.Printf("フライヤーの書き出しに失敗: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "書き出しに失敗しました"})
		return
	}

	sendWorkbook(c, services.FlyerFilename(req.Flyer.Title), buf.Bytes())
}

func sendWorkbook(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
