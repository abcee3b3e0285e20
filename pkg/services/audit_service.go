package services

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"salesmate-api/pkg/models"
)

// ErrStaleSearch は、解決の完了前により新しい検索が発行されたことを示します。
// 古い応答で表示を上書きしないよう、呼び出し側はこの結果を破棄します。
var ErrStaleSearch = errors.New("より新しい検索に追い越されました")

// AuditGenerator は監査レコードを生成するAIコラボレーターのポートです。
type AuditGenerator interface {
	GenerateAudit(ctx context.Context, query string) (*models.InsightRecord, error)
}

// bypassKeywords はローカル一致を意図的に無視してAIへ委譲するキーワードです。
// タイトルが一致してもフリーテキストをAIに流すための既存プロダクト挙動で、
// 拡張はしないこと。
var bypassKeywords = []string{"restaurant", "joint"}

// AuditService は監査解決ロジックを提供します。
// ローカルリポジトリの一致を優先し、ミス時（またはキーワード時）にAIへ委譲します。
type AuditService struct {
	insights *InsightService
	ai       AuditGenerator

	// seq は検索ごとの単調増加トークン。最後に発行されたものだけが有効。
	seq atomic.Uint64

	localHits   atomic.Uint64
	aiFallbacks atomic.Uint64
}

// NewAuditService は新しいAuditServiceを生成します。
func NewAuditService(insights *InsightService, ai AuditGenerator) *AuditService {
	return &AuditService{
		insights: insights,
		ai:       ai,
	}
}

// Resolve はフリーテキストのクエリを監査レコードへ解決します。
// リトライは行わず、ユーザー操作1回につきAI呼び出しは最大1回です。
func (s *AuditService) Resolve(ctx context.Context, query string) (*models.AuditSearchResponse, error) {
	token := s.seq.Add(1)

	normalized := strings.ToLower(strings.TrimSpace(query))

	if local, ok := s.insights.FindLocal(normalized); ok && !containsBypassKeyword(normalized) {
		s.localHits.Add(1)
		return s.finish(token, local, "local")
	}

	if s.ai == nil {
		return nil, errors.New("AIサービスが初期化されていません")
	}

	// AIへの委譲にはクエリの原文をそのまま渡す（正規化しない）
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	record, err := s.ai.GenerateAudit(ctx, query)
	if err != nil {
		return nil, err
	}
	s.aiFallbacks.Add(1)
	return s.finish(token, *record, "ai")
}

// finish は解決結果を組み立てます。解決中により新しい検索が発行されていた場合、
// 結果は破棄対象としてErrStaleSearchを返します。
func (s *AuditService) finish(token uint64, record models.InsightRecord, source string) (*models.AuditSearchResponse, error) {
	if s.seq.Load() != token {
		return nil, ErrStaleSearch
	}
	return &models.AuditSearchResponse{
		Record:      record,
		Source:      source,
		Suggestions: []string{}, // 解決直後は常に空。提案はバディ経由で追記される。
		Token:       token,
	}, nil
}

// Stats はローカル一致とAIフォールバックの累計を返します（モニタリング用）。
func (s *AuditService) Stats() (localHits, aiFallbacks uint64) {
	return s.localHits.Load(), s.aiFallbacks.Load()
}

func containsBypassKeyword(normalizedQuery string) bool {
	for _, kw := range bypassKeywords {
		if strings.Contains(normalizedQuery, kw) {
			return true
		}
	}
	return false
}
