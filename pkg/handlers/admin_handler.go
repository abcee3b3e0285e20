package handlers

import (
	"net/http"
	"sync/atomic"

	"salesmate-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// isMaintenanceMode はサーバーがメンテナンスモードかどうかを示します。
// atomic.Boolを使用して、スレッドセーフな読み書きを保証します。
var isMaintenanceMode atomic.Bool

// AdminHandler は管理者向け操作のハンドラです。
// メンテナンス操作はマネージャー資格情報で認証します。
type AdminHandler struct {
	verifier *services.StaticCredentialVerifier
}

// NewAdminHandler は新しいAdminHandlerを生成します。
func NewAdminHandler(verifier *services.StaticCredentialVerifier) *AdminHandler {
	return &AdminHandler{
		verifier: verifier,
	}
}

// AdminCredentials は管理者認証のためのリクエストボディです。
type AdminCredentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AdminHandler) verifyManager(c *gin.Context) bool {
	var input AdminCredentials
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return false
	}

	identity, ok := h.verifier.Authenticate(input.Username, input.Password)
	if !ok || identity != "manager" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return false
	}
	return true
}

// StartMaintenance はメンテナンスモードを開始します。
func (h *AdminHandler) StartMaintenance(c *gin.Context) {
	if !h.verifyManager(c) {
		return
	}
	isMaintenanceMode.Store(true)
	c.JSON(http.StatusOK, gin.H{"message": "Maintenance mode started"})
}

// StopMaintenance はメンテナンスモードを停止します。
func (h *AdminHandler) StopMaintenance(c *gin.Context) {
	if !h.verifyManager(c) {
		return
	}
	isMaintenanceMode.Store(false)
	c.JSON(http.StatusOK, gin.H{"message": "Maintenance mode stopped"})
}

// GetHealthStatus は現在のサーバーの状態を返します。
func (h *AdminHandler) GetHealthStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"isMaintenanceMode": isMaintenanceMode.Load()})
}

// HealthCheck は外部のヘルスチェッカー（例: ロードバランサー）からのリクエストに応答します。
func HealthCheck(c *gin.Context) {
	if isMaintenanceMode.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "message": "Server is in maintenance mode"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
