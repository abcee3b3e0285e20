package services

import (
	"testing"

	"salesmate-api/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportFilenames(t *testing.T) {
	assert.Equal(t, "hotel_profit_analysis.xlsx", ProfitPlanFilename("hotel"))
	assert.Equal(t, "plate_profit_analysis.xlsx", ProfitPlanFilename(""))

	assert.Equal(t, "food-truck_strategic_proposal.xlsx", StrategicProposalFilename("food-truck"))
	assert.Equal(t, "audit_strategic_proposal.xlsx", StrategicProposalFilename(""))

	// タイトルの空白はアンダースコアに置き換わる
	assert.Equal(t, "Game_Day_Wings_flyer.xlsx", FlyerFilename("Game Day Wings"))
}

func TestBuildProfitPlan(t *testing.T) {
	svc := NewExportService()

	record := models.InsightRecord{ID: "hotel", Title: "Hotel", Kind: models.KindAccount}
	calc := models.CalculationResult{SellPrice: 15.00, Cost: 4.50, Margin: 10.50, MarginPercent: 70.0}
	ingredients := []models.Ingredient{
		{Name: "Chicken Breast", Quantity: "8oz", Cost: 2.50},
	}

	buf, err := svc.BuildProfitPlan(record, calc, ingredients, "sales_pro")
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "LIVE COST ANALYSIS", title)

	price, err := f.GetCellValue("Sheet1", "B7")
	require.NoError(t, err)
	assert.Equal(t, "15", price)

	name, err := f.GetCellValue("Sheet1", "A14")
	require.NoError(t, err)
	assert.Equal(t, "Chicken Breast", name)
}

func TestBuildStrategicProposal(t *testing.T) {
	svc := NewExportService()

	record := models.InsightRecord{
		ID:            "hotel",
		Title:         "Hotel",
		Insight1:      "Banquet kitchens burn labor",
		Insight2:      "Minibar snacks are high margin",
		Tip:           "Lead with pre-portioned proteins",
		Phone:         "555-0100",
		AppendedNotes: []string{"Buddy says: push frozen appetizers"},
	}

	buf, err := svc.BuildStrategicProposal(record, "manager")
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	s1, err := f.GetCellValue("Sheet1", "B5")
	require.NoError(t, err)
	assert.Equal(t, "Banquet kitchens burn labor", s1)

	phone, err := f.GetCellValue("Sheet1", "B8")
	require.NoError(t, err)
	assert.Equal(t, "555-0100", phone)

	note, err := f.GetCellValue("Sheet1", "B10")
	require.NoError(t, err)
	assert.Equal(t, "Buddy says: push frozen appetizers", note)
}

func TestBuildFlyer(t *testing.T) {
	svc := NewExportService()

	flyer := models.FlyerData{
		Title:    "Game Day Wings",
		Subtitle: "Limited Time",
		Items: []models.FlyerItem{
			{Name: "Buffalo Wings", Description: "Crispy and saucy", Price: "$12.99", Margin: "72%"},
		},
		CallToAction: "Order by Thursday",
	}

	buf, err := svc.BuildFlyer(flyer)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Game Day Wings", title)

	item, err := f.GetCellValue("Sheet1", "A4")
	require.NoError(t, err)
	assert.Equal(t, "Buffalo Wings", item)
}
