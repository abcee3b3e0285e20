package services

import (
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync"

	"salesmate-api/pkg/models"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Slugify は識別子フィールドをスラグ形式へ変換します。
// 小文字化し、連続する空白を単一のハイフンにまとめます。
func Slugify(s string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
}

// InsightService はインサイトレコードのリポジトリです。
// 起動時にストアから読み込み（空ならシード）、変更のたびに書き戻します。
type InsightService struct {
	mu      sync.RWMutex
	records []models.InsightRecord
	store   InsightStore
}

// NewInsightService は新しいInsightServiceを生成します。
// ストアが空の場合は静的シードデータで初期化し、即座に永続化します。
func NewInsightService(store InsightStore) (*InsightService, error) {
	records, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("インサイトリポジトリの初期化に失敗: %w", err)
	}
	if records == nil {
		records = models.SeedInsights()
		if err := store.Save(records); err != nil {
			// シードの永続化失敗は致命傷ではない。メモリ上では動作を続ける。
			log.Printf("シードデータの永続化に失敗: %v", err)
		}
	}

	return &InsightService{
		records: records,
		store:   store,
	}, nil
}

// All は全レコードのコピーを登録順（新しいものが先頭）で返します。
func (s *InsightService) All() []models.InsightRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.InsightRecord, len(s.records))
	copy(out, s.records)
	return out
}

// FindLocal は正規化済みクエリに対するローカル一致を探します。
// 一致条件は、空白をハイフンにまとめたクエリとIDの完全一致、
// またはタイトルの大文字小文字を無視した完全一致です。
// リスト順で最初に一致したレコードを返すため、重複スラグは新しい方が優先されます。
func (s *InsightService) FindLocal(normalizedQuery string) (models.InsightRecord, bool) {
	slug := whitespaceRun.ReplaceAllString(normalizedQuery, "-")

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.records {
		if rec.ID == slug || strings.ToLower(rec.Title) == normalizedQuery {
			return rec, true
		}
	}
	return models.InsightRecord{}, false
}

// AddEntry は管理者フォームからのレコードを作成して先頭に追加します。
// IDはスラグ化され、種別は明示的に"category"でない限り"account"になります。
// 既存IDとの重複チェックは行いません（仕様どおり、新しい方が検索で勝つ）。
func (s *InsightService) AddEntry(req models.AddEntryRequest) (models.InsightRecord, error) {
	kind := models.KindAccount
	if req.Kind == string(models.KindCategory) {
		kind = models.KindCategory
	}

	record := models.InsightRecord{
		ID:       Slugify(req.ID),
		Title:    req.Title,
		Insight1: req.Insight1,
		Insight2: req.Insight2,
		Tip:      req.Tip,
		Kind:     kind,
		Phone:    req.Phone,
	}

	s.mu.Lock()
	s.records = append([]models.InsightRecord{record}, s.records...)
	snapshot := make([]models.InsightRecord, len(s.records))
	copy(snapshot, s.records)
	s.mu.Unlock()

	if err := s.store.Save(snapshot); err != nil {
		return record, fmt.Errorf("レコード追加後の永続化に失敗: %w", err)
	}
	return record, nil
}

// AppendNote は指定レコードにバディ提案を追記します。
// 追記順は保持され、レコードは削除されることがないため末尾追加のみです。
func (s *InsightService) AppendNote(id, note string) (models.InsightRecord, error) {
	s.mu.Lock()
	var updated *models.InsightRecord
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].AppendedNotes = append(s.records[i].AppendedNotes, note)
			updated = &s.records[i]
			break
		}
	}
	if updated == nil {
		s.mu.Unlock()
		return models.InsightRecord{}, fmt.Errorf("レコードが見つかりません: %s", id)
	}
	result := *updated
	snapshot := make([]models.InsightRecord, len(s.records))
	copy(snapshot, s.records)
	s.mu.Unlock()

	if err := s.store.Save(snapshot); err != nil {
		return result, fmt.Errorf("提案追記後の永続化に失敗: %w", err)
	}
	return result, nil
}

// Get はIDでレコードを1件取得します（リスト順で最初の一致）。
func (s *InsightService) Get(id string) (models.InsightRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return models.InsightRecord{}, false
}
