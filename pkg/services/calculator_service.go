package services

import (
	"context"
	"sync"

	"salesmate-api/pkg/models"
)

// IngredientResolver はフリーテキストの食材リストを価格付きの行へ
// 変換するAIコラボレーターのポートです。
type IngredientResolver interface {
	ResolveIngredients(ctx context.Context, text string) ([]models.Ingredient, error)
}

// CalculatorService はプレート単位のマージン計算を提供します。
// 計算は毎回やり直しで、キャッシュは持ちません。
// 再計算のたびに登録済みのサブスクライバへ結果を通知します
// （エグゼクティブサマリー等の表示更新に使われます）。
type CalculatorService struct {
	mu          sync.RWMutex
	subscribers []func(models.CalculationResult)
	last        models.CalculationResult
}

// NewCalculatorService は新しいCalculatorServiceを生成します。
// 初期状態は元プロダクトのデフォルト（価格$15.00 / コスト$4.50）です。
func NewCalculatorService() *CalculatorService {
	return &CalculatorService{
		last: models.CalculationResult{
			SellPrice:     15.00,
			Cost:          4.50,
			Margin:        10.50,
			MarginPercent: 70.0,
		},
	}
}

// Subscribe は再計算のたびに呼ばれるコールバックを登録します。
func (s *CalculatorService) Subscribe(fn func(models.CalculationResult)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Compute はマージンを計算します。
//   - 食材リストが空でなければ、実効コストは行コストの合計（手入力コストを上書き）
//   - margin = sellPrice - effectiveCost（負値も許容、クランプしない）
//   - marginPercent = sellPrice > 0 ? margin/sellPrice*100 : 0（ゼロ除算のみガード）
//
// 負の販売価格はバリデーションせず、そのまま計算に流れます。
func (s *CalculatorService) Compute(sellPrice, manualCost float64, ingredients []models.Ingredient) models.CalculationResult {
	effectiveCost := manualCost
	if len(ingredients) > 0 {
		effectiveCost = 0
		for _, ing := range ingredients {
			effectiveCost += ing.Cost
		}
	}

	margin := sellPrice - effectiveCost
	marginPercent := 0.0
	if sellPrice > 0 {
		marginPercent = margin / sellPrice * 100
	}

	result := models.CalculationResult{
		SellPrice:     sellPrice,
		Cost:          effectiveCost,
		Margin:        margin,
		MarginPercent: marginPercent,
	}

	s.mu.Lock()
	s.last = result
	subs := make([]func(models.CalculationResult), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(result)
	}

	return result
}

// Last は直近の計算結果を返します。
func (s *CalculatorService) Last() models.CalculationResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}
