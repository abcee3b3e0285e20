package handler

import (
	"context"
	"log"
	"net/http"
	"sync"

	config "salesmate-api/configs"
	"salesmate-api/pkg/gemini"
	"salesmate-api/pkg/handlers"
	"salesmate-api/pkg/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	app  *gin.Engine
	once sync.Once
)

// setupApp はGinアプリケーションを初期化します。
// サーバーレス環境では、リクエストごとに初期化が走らないようsync.Onceで一度だけ実行します。
func setupApp() *gin.Engine {
	once.Do(func() {
		// .envファイルはVercelの環境変数設定から読み込まれるため、ここではgodotenvを呼び出しません。
		cfg := config.LoadConfig()

		r := gin.Default()

		// サービスの初期化
		monitoringService := services.NewMonitoringService()

		var geminiClient *gemini.Client
		if cfg.GeminiAPIKey != "" {
			client, err := gemini.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
			if err != nil {
				log.Printf("FATAL: Geminiクライアントの初期化に失敗: %v", err)
			} else {
				geminiClient = client
			}
		}

		var auditAI services.AuditGenerator
		var buddyAI services.BuddyResponder
		var resolver services.IngredientResolver
		if geminiClient != nil {
			auditAI = geminiClient
			buddyAI = geminiClient
			resolver = geminiClient
		}

		// サーバーレスではファイルシステムが揮発性のためインメモリストアを使用
		store := services.NewMemoryInsightStore(nil)
		insightService, err := services.NewInsightService(store)
		if err != nil {
			log.Printf("FATAL: インサイトリポジトリの初期化に失敗: %v", err)
		}

		auditService := services.NewAuditService(insightService, auditAI)
		monitoringService.SetAuditStatsProvider(auditService.Stats)

		buddyPrompt, err := config.LoadBuddyPrompt()
		if err != nil {
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
		r.Use(monitoringService.LoggingMiddleware())
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowAllOrigins = true
		r.Use(cors.New(corsConfig))

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

		r.GET("/health", handlers.HealthCheck)

		v1 := r.Group("/api/v1")
		v1.Use(authMiddleware(cfg.APIKey))
		{
			auth := v1.Group("/auth")
			{
				auth.POST("/login", authHandler.Login)
				auth.GET("/magic", authHandler.Magic)
				auth.POST("/logout", authHandler.Logout)
			}

			session := v1.Group("")
			session.Use(authHandler.SessionMiddleware())
			{
				audit := session.Group("/audit")
				{
					audit.POST("/search", auditHandler.Search)
					audit.GET("/entries", auditHandler.ListEntries)
					audit.GET("/presets", auditHandler.Presets)
					audit.POST("/suggestions", auditHandler.AppendSuggestion)
				}

				calculator := session.Group("/calculator")
				{
					calculator.POST("/compute", calculatorHandler.Compute)
					calculator.POST("/ingredients", calculatorHandler.ResolveIngredients)
				}

				buddy := session.Group("/buddy")
				{
					buddy.POST("/chat", buddyHandler.Chat)
					buddy.GET("/greeting", buddyHandler.Greeting)
					buddy.GET("/history/:session_id", buddyHandler.History)
				}

				export := session.Group("/export")
				{
					export.POST("/profit-plan", exportHandler.ProfitPlan)
					export.GET("/strategic-proposal/:id", exportHandler.StrategicProposal)
					export.POST("/flyer", exportHandler.Flyer)
				}

				manager := session.Group("")
				manager.Use(handlers.RequireManager())
				{
					manager.POST("/audit/entries", auditHandler.AddEntry)
					manager.GET("/auth/magic-link", authHandler.GenerateMagicLink)
				}
			}

			admin := v1.Group("/admin")
			{
				admin.GET("/health-status", adminHandler.GetHealthStatus)
				admin.POST("/maintenance/start", adminHandler.StartMaintenance)
				admin.POST("/maintenance/stop", adminHandler.StopMaintenance)
			}

			monitoring := v1.Group("/monitoring")
			{
				monitoring.GET("/logs", monitoringHandler.GetLogs)
			}
		}

		app = r
	})
	return app
}

// Handler はVercelのエントリーポイントです。
func Handler(w http.ResponseWriter, r *http.Request) {
	setupApp().ServeHTTP(w, r)
}
