package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"salesmate-api/pkg/models"
)

// InsightStore はインサイトリポジトリの永続化ポートです。
// 起動時に一度読み込み、変更のたびに全件を書き戻します。
// トランザクション境界は持たず、後勝ち（last-write-wins）です。
type InsightStore interface {
	Load() ([]models.InsightRecord, error)
	Save(records []models.InsightRecord) error
}

// FileInsightStore はJSONスナップショットファイルによるストアです。
// 元プロダクトのローカルストレージキー（単一キーにJSON配列）に対応します。
// スキーマバージョニングは持ちません。壊れたスナップショットはLoadエラーになります。
type FileInsightStore struct {
	path string
	mu   sync.Mutex
}

// NewFileInsightStore は新しいFileInsightStoreを生成します。
func NewFileInsightStore(path string) *FileInsightStore {
	return &FileInsightStore{path: path}
}

// Load はスナップショットを読み込みます。
// ファイルが存在しない場合は (nil, nil) を返し、呼び出し側がシードします。
func (s *FileInsightStore) Load() ([]models.InsightRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("スナップショットの読み込みに失敗: %w", err)
	}

	var records []models.InsightRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("スナップショットのJSON解析に失敗: %w", err)
	}
	return records, nil
}

// Save はスナップショットを書き戻します。
func (s *FileInsightStore) Save(records []models.InsightRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("スナップショットのJSON化に失敗: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("スナップショットディレクトリの作成に失敗: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("スナップショットの書き込みに失敗: %w", err)
	}
	return nil
}

// MemoryInsightStore はテスト用のインメモリストアです。
type MemoryInsightStore struct {
	mu      sync.Mutex
	records []models.InsightRecord
	saves   int
}

// NewMemoryInsightStore は新しいMemoryInsightStoreを生成します。
func NewMemoryInsightStore(initial []models.InsightRecord) *MemoryInsightStore {
	return &MemoryInsightStore{records: initial}
}

// Load は保持中のレコードを返します。
func (s *MemoryInsightStore) Load() ([]models.InsightRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.records == nil {
		return nil, nil
	}
	out := make([]models.InsightRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

// Save はレコードを差し替えます。
func (s *MemoryInsightStore) Save(records []models.InsightRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make([]models.InsightRecord, len(records))
	copy(s.records, records)
	s.saves++
	return nil
}

// SaveCount はSaveが呼ばれた回数を返します（テスト検証用）。
func (s *MemoryInsightStore) SaveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
