//go:build ignore

package main

import (
	"log"
	"os"

	config "salesmate-api/configs"
	"salesmate-api/pkg/models"
	"salesmate-api/pkg/services"

	"github.com/joho/godotenv"
)

// インサイトスナップショットを初期シードで作り直すスクリプトです。
// 実行: go run scripts/seed_insights.go [--force]
func main() {
	log.Println("インサイトスナップショットのシードを開始します...")

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.LoadConfig()
	log.Printf("スナップショットパス: %s", cfg.InsightDBPath)

	force := len(os.Args) > 1 && os.Args[1] == "--force"
	if _, err := os.Stat(cfg.InsightDBPath); err == nil && !force {
		log.Fatalf("スナップショットが既に存在します。上書きするには --force を指定してください: %s", cfg.InsightDBPath)
	}

	store := services.NewFileInsightStore(cfg.InsightDBPath)
	seed := models.SeedInsights()
	if err := store.Save(seed); err != nil {
		log.Fatalf("シードの書き込みに失敗: %v", err)
	}

	log.Printf("✅ %d件のレコードを書き込みました", len(seed))
}
