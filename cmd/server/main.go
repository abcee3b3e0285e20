package main

import (
	"context"
	"log"
	"net/http"

	config "salesmate-api/configs"
	"salesmate-api/pkg/gemini"
	"salesmate-api/pkg/handlers"
	"salesmate-api/pkg/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .envファイルを読み込み
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	// 設定の読み込み
	cfg := config.LoadConfig()

	// Ginルーターの初期化
	r := gin.Default()

	// サービスの初期化
	monitoringService := services.NewMonitoringService()

	// Geminiクライアントは初期化失敗でもサーバー自体は起動する
	// （ローカル一致の検索・計算・ログインはAIなしで動作するため）
	var geminiClient *gemini.Client
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Printf("FATAL: Geminiクライアントの初期化に失敗: %v", err)
		} else {
			geminiClient = client
		}
	} else {
		log.Println("Warning: GEMINI_API_KEYが未設定です。AI機能は利用できません。")
	}

	var auditAI services.AuditGenerator
	var buddyAI services.BuddyResponder
	var resolver services.IngredientResolver
	if geminiClient != nil {
		auditAI = geminiClient
		buddyAI = geminiClient
		resolver = geminiClient
	}

	store := services.NewFileInsightStore(cfg.InsightDBPath)
	insightService, err := services.NewInsightService(store)
	if err != nil {
		log.Fatalf("インサイトリポジトリの初期化に失敗: %v", err)
	}

	auditService := services.NewAuditService(insightService, auditAI)
	monitoringService.SetAuditStatsProvider(auditService.Stats)

	buddyPrompt, err := config.LoadBuddyPrompt()
	if err != nil {
		log.Printf("Warning: バディプロンプト設定の読み込みに失敗、組み込みデフォルトを使用します: %v", err)
		buddyPrompt = config.DefaultBuddyPrompt()
	}
	buddyService := services.NewBuddyService(buddyAI, buddyPrompt)

	calculatorService := services.NewCalculatorService()
	verifier := services.NewStaticCredentialVerifier()
	authService := services.NewAuthService(verifier)
	exportService := services.NewExportService()

	// ハンドラーの初期化
	authHandler := handlers.NewAuthHandler(authService, verifier)
	auditHandler := handlers.NewAuditHandler(auditService, insightService)
	calculatorHandler := handlers.NewCalculatorHandler(calculatorService, resolver)
	buddyHandler := handlers.NewBuddyHandler(buddyService, insightService)
	exportHandler := handlers.NewExportHandler(exportService, insightService)
	adminHandler := handlers.NewAdminHandler(verifier)
	monitoringHandler := handlers.NewMonitoringHandler(monitoringService)

	// ミドルウェアの登録
	r.Use(monitoringService.LoggingMiddleware()) // ロギングミドルウェアをグローバルに適用
	r.Use(cors.Default())

	// 認証ミドルウェア
	authMiddleware := func(apiKey string) gin.HandlerFunc {
		return func(c *gin.Context) {
			if apiKey == "" || apiKey == "default_secret_key" {
				c.Next()
				return
			}
			providedKey := c.GetHeader("X-API-KEY")
			if providedKey != apiKey {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
				return
			}
			c.Next()
		}
	}

	// ヘルスチェックエンドポイント
	r.GET("/health", handlers.HealthCheck)

	// APIバージョン1のルートグループ
	v1 := r.Group("/api/v1")
	v1.Use(authMiddleware(cfg.APIKey))
	{
		// 認証API
		auth := v1.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.GET("/magic", authHandler.Magic)
			auth.POST("/logout", authHandler.Logout)
		}

		// セッション必須のAPI
		session := v1.Group("")
		session.Use(authHandler.SessionMiddleware())
		{
			// 監査検索・インサイトリポジトリAPI
			audit := session.Group("/audit")
			{
				audit.POST("/search", auditHandler.Search)
				audit.GET("/entries", auditHandler.ListEntries)
				audit.GET("/presets", auditHandler.Presets)
				audit.POST("/suggestions", auditHandler.AppendSuggestion)
			}

			// マージン計算API
			calculator := session.Group("/calculator")
			{
				calculator.POST("/compute", calculatorHandler.Compute)
				calculator.POST("/ingredients", calculatorHandler.ResolveIngredients)
			}

			// バディチャットAPI
			buddy := session.Group("/buddy")
			{
				buddy.POST("/chat", buddyHandler.Chat)
				buddy.GET("/greeting", buddyHandler.Greeting)
				buddy.GET("/history/:session_id", buddyHandler.History)
			}

			// 書き出しAPI
			export := session.Group("/export")
			{
				export.POST("/profit-plan", exportHandler.ProfitPlan)
				export.GET("/strategic-proposal/:id", exportHandler.StrategicProposal)
				export.POST("/flyer", exportHandler.Flyer)
			}

			// マネージャー専用API
			manager := session.Group("")
			manager.Use(handlers.RequireManager())
			{
				manager.POST("/audit/entries", auditHandler.AddEntry)
				manager.GET("/auth/magic-link", authHandler.GenerateMagicLink)
			}
		}

		// 管理者向けAPI
		admin := v1.Group("/admin")
		{
			admin.GET("/health-status", adminHandler.GetHealthStatus)
			admin.POST("/maintenance/start", adminHandler.StartMaintenance)
			admin.POST("/maintenance/stop", adminHandler.StopMaintenance)
		}

		// モニタリングAPI
		monitoring := v1.Group("/monitoring")
		{
			monitoring.GET("/logs", monitoringHandler.GetLogs)
		}
	}

	log.Printf("Starting SalesMate API server on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
