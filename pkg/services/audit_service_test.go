package services

import (
	"context"
	"errors"
	"testing"

	"salesmate-api/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuditGenerator はテスト用のAIスタブです。
type fakeAuditGenerator struct {
	record *models.InsightRecord
	err    error
	calls  int

	// beforeReturn は応答を返す直前に呼ばれます（追い越しの再現用）。
	beforeReturn func()
}

func (f *fakeAuditGenerator) GenerateAudit(ctx context.Context, query string) (*models.InsightRecord, error) {
	f.calls++
	if f.beforeReturn != nil {
		f.beforeReturn()
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.record, nil
}

func newTestAuditService(t *testing.T, ai AuditGenerator) *AuditService {
	t.Helper()
	insights, err := NewInsightService(NewMemoryInsightStore(nil))
	require.NoError(t, err)
	return NewAuditService(insights, ai)
}

func TestResolveLocalMatch(t *testing.T) {
	ai := &fakeAuditGenerator{}
	svc := newTestAuditService(t, ai)

	// 大文字・前後空白は正規化されてローカル一致する
	resp, err := svc.Resolve(context.Background(), "  Hotel  ")
	require.NoError(t, err)
	assert.Equal(t, "hotel", resp.Record.ID)
	assert.Equal(t, "local", resp.Source)
	assert.Empty(t, resp.Suggestions)
	// ローカル一致ではAIを呼ばない
	assert.Equal(t, 0, ai.calls)

	localHits, aiFallbacks := svc.Stats()
	assert.Equal(t, uint64(1), localHits)
	assert.Equal(t, uint64(0), aiFallbacks)
}

func TestResolveAIFallback(t *testing.T) {
	ai := &fakeAuditGenerator{
		record: &models.InsightRecord{ID: "dive-bar", Title: "Dive Bar", Kind: models.KindAccount},
	}
	svc := newTestAuditService(t, ai)

	resp, err := svc.Resolve(context.Background(), "dive bar on 5th street")
	require.NoError(t, err)
	assert.Equal(t, "ai", resp.Source)
	assert.Equal(t, "dive-bar", resp.Record.ID)
	assert.Equal(t, 1, ai.calls)
}

func TestResolveBypassKeywordForcesAI(t *testing.T) {
	ai := &fakeAuditGenerator{
		record: &models.InsightRecord{ID: "healthcare-restaurant", Title: "Healthcare Restaurant"},
	}
	svc := newTestAuditService(t, ai)

	// "restaurant"を含むクエリはローカルにタイトル一致があってもAIへ委譲される
	resp, err := svc.Resolve(context.Background(), "Restaurant")
	require.NoError(t, err)
	assert.Equal(t, "ai", resp.Source)
	assert.Equal(t, 1, ai.calls)
}

func TestResolveAIFailure(t *testing.T) {
	ai := &fakeAuditGenerator{err: errors.New("quota exceeded")}
	svc := newTestAuditService(t, ai)

	_, err := svc.Resolve(context.Background(), "unknown sector")
	assert.Error(t, err)
	// リトライしない（1回呼んで終わり）
	assert.Equal(t, 1, ai.calls)
}

func TestResolveStaleSearchDiscarded(t *testing.T) {
	var svc *AuditService
	ai := &fakeAuditGenerator{
		record: &models.InsightRecord{ID: "slow-result", Title: "Slow Result"},
	}
	// 遅い検索の応答が返る前に、新しい検索が発行された状況を再現
	ai.beforeReturn = func() {
		ai.beforeReturn = nil
		_, err := svc.Resolve(context.Background(), "hotel")
		require.NoError(t, err)
	}
	svc = newTestAuditService(t, ai)

	_, err := svc.Resolve(context.Background(), "slow query")
	assert.ErrorIs(t, err, ErrStaleSearch)
}

func TestResolveWithoutAI(t *testing.T) {
	svc := newTestAuditService(t, nil)

	// ローカル一致はAIなしでも動く
	resp, err := svc.Resolve(context.Background(), "hotel")
	require.NoError(t, err)
	assert.Equal(t, "local", resp.Source)

	// AIが必要なクエリはエラーになる（パニックしない）
	_, err = svc.Resolve(context.Background(), "unknown sector")
	assert.Error(t, err)
}
