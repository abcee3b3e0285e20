package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"salesmate-api/pkg/models"

	"github.com/xuri/excelize/v2"
)

// ExportService は監査ビューの書き出しアーティファクトを生成します。
// 実際のPDFレンダリングは外部コラボレーター（クライアント側）の責務であり、
// ここではデータ完結なワークブックとプロダクト規約のファイル名を提供します。
type ExportService struct{}

// NewExportService は新しいExportServiceを生成します。
func NewExportService() *ExportService {
	return &ExportService{}
}

// ProfitPlanFilename は利益分析エクスポートのファイル名規約です。
func ProfitPlanFilename(recordID string) string {
	if recordID == "" {
		recordID = "plate"
	}
	return fmt.Sprintf("%s_profit_analysis.xlsx", recordID)
}

// StrategicProposalFilename は戦略提案エクスポートのファイル名規約です。
func StrategicProposalFilename(recordID string) string {
	if recordID == "" {
		recordID = "audit"
	}
	return fmt.Sprintf("%s_strategic_proposal.xlsx", recordID)
}

// FlyerFilename はフライヤーエクスポートのファイル名規約です。
// タイトルの空白はアンダースコアに置き換えます。
func FlyerFilename(title string) string {
	return fmt.Sprintf("%s_flyer.xlsx", strings.ReplaceAll(title, " ", "_"))
}

// BuildProfitPlan は利益分析ワークブックを生成します。
// 監査レコード、マージン計算、食材行を1シートにまとめます。
func (s *ExportService) BuildProfitPlan(record models.InsightRecord, calc models.CalculationResult, ingredients []models.Ingredient, consultant string) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	f.SetCellValue(sheet, "A1", "LIVE COST ANALYSIS")
	f.SetCellValue(sheet, "A2", fmt.Sprintf("Account Intelligence: %s", record.Title))
	f.SetCellValue(sheet, "A3", fmt.Sprintf("Consultant: %s", consultant))
	f.SetCellValue(sheet, "A4", time.Now().Format("2006-01-02"))

	// エグゼクティブマージンサマリー
	f.SetCellValue(sheet, "A6", "EXECUTIVE MARGIN SUMMARY")
	f.SetCellValue(sheet, "A7", "Target Price ($)")
	f.SetCellValue(sheet, "B7", calc.SellPrice)
	f.SetCellValue(sheet, "A8", "Effective Plate Cost ($)")
	f.SetCellValue(sheet, "B8", calc.Cost)
	f.SetCellValue(sheet, "A9", "Plate Contribution ($)")
	f.SetCellValue(sheet, "B9", calc.Margin)
	f.SetCellValue(sheet, "A10", "Profit Yield (%)")
	f.SetCellValue(sheet, "B10", calc.MarginPercent)

	// 食材内訳（存在する場合のみ）
	if len(ingredients) > 0 {
		f.SetCellValue(sheet, "A12", "INGREDIENT BREAKDOWN")
		f.SetCellValue(sheet, "A13", "Name")
		f.SetCellValue(sheet, "B13", "Quantity")
		f.SetCellValue(sheet, "C13", "Cost ($)")
		for i, ing := range ingredients {
			row := 14 + i
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), ing.Name)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), ing.Quantity)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), ing.Cost)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("利益プランのワークブック生成に失敗: %w", err)
	}
	return buf, nil
}

// BuildStrategicProposal は監査カードの戦略提案ワークブックを生成します。
func (s *ExportService) BuildStrategicProposal(record models.InsightRecord, consultant string) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	f.SetCellValue(sheet, "A1", "STRATEGIC PROPOSAL")
	f.SetCellValue(sheet, "A2", record.Title)
	f.SetCellValue(sheet, "A3", fmt.Sprintf("Consultant: %s", consultant))
	f.SetCellValue(sheet, "A5", "Strategy 1")
	f.SetCellValue(sheet, "B5", record.Insight1)
	f.SetCellValue(sheet, "A6", "Strategy 2")
	f.SetCellValue(sheet, "B6", record.Insight2)
	f.SetCellValue(sheet, "A7", "Pro Tip")
	f.SetCellValue(sheet, "B7", record.Tip)
	if record.Phone != "" {
		f.SetCellValue(sheet, "A8", "Contact")
		f.SetCellValue(sheet, "B8", record.Phone)
	}
	for i, note := range record.AppendedNotes {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", 10+i), fmt.Sprintf("Buddy Note %d", i+1))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", 10+i), note)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("戦略提案のワークブック生成に失敗: %w", err)
	}
	return buf, nil
}

// BuildFlyer はフライヤーのワークブックを生成します。
func (s *ExportService) BuildFlyer(flyer models.FlyerData) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	f.SetCellValue(sheet, "A1", flyer.Title)
	if flyer.Subtitle != "" {
		f.SetCellValue(sheet, "A2", flyer.Subtitle)
	}

	row := 4
	for _, item := range flyer.Items {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.Name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.Description)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), item.Price)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), item.Margin)
		row++
	}

	if flyer.Recipe != nil {
		row++
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("Recipe: %s", flyer.Recipe.Name))
		row++
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), strings.Join(flyer.Recipe.Ingredients, ", "))
		row++
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), flyer.Recipe.Method)
		row++
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), flyer.Recipe.MarginNote)
		row++
	}

	row++
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), flyer.CallToAction)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("フライヤーのワークブック生成に失敗: %w", err)
	}
	return buf, nil
}
