package services

import (
	"testing"

	"salesmate-api/pkg/models"

	"github.com/stretchr/testify/assert"
)

func TestCalculatorDefaults(t *testing.T) {
	svc := NewCalculatorService()

	// 初期状態は元プロダクトのデフォルト計算
	last := svc.Last()
	assert.Equal(t, 15.00, last.SellPrice)
	assert.Equal(t, 4.50, last.Cost)
	assert.Equal(t, 10.50, last.Margin)
	assert.Equal(t, 70.0, last.MarginPercent)
}

func TestComputeManualCost(t *testing.T) {
	svc := NewCalculatorService()

	result := svc.Compute(20.00, 5.00, nil)
	assert.Equal(t, 15.00, result.Margin)
	assert.Equal(t, 75.0, result.MarginPercent)
	assert.Equal(t, result, svc.Last())
}

func TestComputeIngredientsOverrideManualCost(t *testing.T) {
	svc := NewCalculatorService()

	ingredients := []models.Ingredient{
		{Name: "Chicken Breast", Quantity: "8oz", Cost: 2.50},
		{Name: "Brioche Bun", Quantity: "1", Cost: 0.75},
	}

	// 食材リストがあるときは手入力コストを無視して合計を使う
	result := svc.Compute(10.00, 99.99, ingredients)
	assert.Equal(t, 3.25, result.Cost)
	assert.InDelta(t, 6.75, result.Margin, 1e-9)

	// 食材リストを空に戻すと手入力コストに復帰する
	result = svc.Compute(10.00, 4.00, nil)
	assert.Equal(t, 4.00, result.Cost)
	assert.Equal(t, 6.00, result.Margin)
}

func TestComputeNegativeMargin(t *testing.T) {
	svc := NewCalculatorService()

	// コストが価格を上回ってもクランプしない
	result := svc.Compute(5.00, 8.00, nil)
	assert.Equal(t, -3.00, result.Margin)
	assert.Equal(t, -60.0, result.MarginPercent)
}

func TestComputeZeroPrice(t *testing.T) {
	svc := NewCalculatorService()

	// ゼロ除算のみガードし、パーセントは0になる
	result := svc.Compute(0, 4.50, nil)
	assert.Equal(t, -4.50, result.Margin)
	assert.Equal(t, 0.0, result.MarginPercent)
}

func TestComputeNotifiesSubscribers(t *testing.T) {
	svc := NewCalculatorService()

	var notified []models.CalculationResult
	svc.Subscribe(func(r models.CalculationResult) {
		notified = append(notified, r)
	})

	svc.Compute(12.00, 3.00, nil)
	svc.Compute(14.00, 3.00, nil)

	assert.Len(t, notified, 2)
	assert.Equal(t, 9.00, notified[0].Margin)
	assert.Equal(t, 11.00, notified[1].Margin)
}
