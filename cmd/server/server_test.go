package main

import (
	"os"
	"testing"

	config "salesmate-api/configs"
	"salesmate-api/pkg/handlers"
	"salesmate-api/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// テスト環境の設定
	gin.SetMode(gin.TestMode)

	// .envファイルを読み込み（テスト環境では無視される可能性がある）
	godotenv.Load("../../.env")

	// テスト実行
	code := m.Run()

	// 終了
	os.Exit(code)
}

func TestApplicationSetup(t *testing.T) {
	// 設定の読み込みテスト
	cfg := config.LoadConfig()
	assert.NotNil(t, cfg, "Config should not be nil")

	// サービスの初期化テスト
	insightService, err := services.NewInsightService(services.NewMemoryInsightStore(nil))
	require.NoError(t, err)
	assert.NotNil(t, insightService, "InsightService should not be nil")

	auditService := services.NewAuditService(insightService, nil)
	assert.NotNil(t, auditService, "AuditService should not be nil")

	calculatorService := services.NewCalculatorService()
	assert.NotNil(t, calculatorService, "CalculatorService should not be nil")

	verifier := services.NewStaticCredentialVerifier()
	authService := services.NewAuthService(verifier)
	assert.NotNil(t, authService, "AuthService should not be nil")

	buddyService := services.NewBuddyService(nil, config.DefaultBuddyPrompt())
	assert.NotNil(t, buddyService, "BuddyService should not be nil")

	// ハンドラーの初期化テスト
	authHandler := handlers.NewAuthHandler(authService, verifier)
	assert.NotNil(t, authHandler, "AuthHandler should not be nil")

	auditHandler := handlers.NewAuditHandler(auditService, insightService)
	assert.NotNil(t, auditHandler, "AuditHandler should not be nil")

	buddyHandler := handlers.NewBuddyHandler(buddyService, insightService)
	assert.NotNil(t, buddyHandler, "BuddyHandler should not be nil")
}

func TestMonitoringWiring(t *testing.T) {
	monitoringService := services.NewMonitoringService()

	insightService, err := services.NewInsightService(services.NewMemoryInsightStore(nil))
	require.NoError(t, err)
	auditService := services.NewAuditService(insightService, nil)
	monitoringService.SetAuditStatsProvider(auditService.Stats)

	data := monitoringService.GetDashboardData(24)
	assert.Equal(t, 0, data.TotalRequests)
	assert.Equal(t, uint64(0), data.AuditLocalHits)
	assert.Equal(t, uint64(0), data.AuditFallbacks)
}
