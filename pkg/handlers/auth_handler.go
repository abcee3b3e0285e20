package handlers

import (
	"net/http"
	"strings"

	"salesmate-api/pkg/models"
	"salesmate-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// AuthHandler は認証まわりのハンドラです。
type AuthHandler struct {
	auth     *services.AuthService
	verifier *services.StaticCredentialVerifier
}

// NewAuthHandler は新しいAuthHandlerを生成します。
func NewAuthHandler(auth *services.AuthService, verifier *services.StaticCredentialVerifier) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		verifier: verifier,
	}
}

// Login はユーザー名とパスワードでログインします。
// 失敗時のメッセージはログイン画面の固定文言に合わせています。
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "リクエストの形式が正しくありません: " + err.Error()})
		return
	}

	token, identity, ok := h.auth.Login(req.Username, req.Password)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Invalid Consultant ID or Password",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    identity,
	})
}

// Magic はマジックリンクのクエリパラメータ（u/p）でログインします。
// 各リンクは自分のアイデンティティのみを認証します。URLからのパラメータ除去は
// クライアント側の責務です。
func (h *AuthHandler) Magic(c *gin.Context) {
	u := c.Query("u")
	p := c.Query("p")
	if u == "" || p == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "u と p パラメータが必要です"})
		return
	}

	token, identity, ok := h.auth.Login(u, p)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Invalid Consultant ID or Password",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    identity,
	})
}

// GenerateMagicLink は指定ユーザーのマジックリンク用クエリ文字列を返します。
// 管理者パネルのリンク生成ボタンに対応します（マネージャー専用ルート配下）。
func (h *AuthHandler) GenerateMagicLink(c *gin.Context) {
	user := c.Query("user")
	secret, ok := h.verifier.MagicLinkSecret(user)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "不明なユーザーです: " + user})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"query":   "?u=" + user + "&p=" + secret,
	})
}

// Logout はセッショントークンを破棄します。
func (h *AuthHandler) Logout(c *gin.Context) {
	token := bearerToken(c)
	if token != "" {
		h.auth.Logout(token)
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SessionMiddleware はBearerトークンを検証し、アイデンティティをコンテキストに載せます。
func (h *AuthHandler) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		identity, ok := h.auth.Identity(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("identity", identity)
		c.Next()
	}
}

// RequireManager はマネージャーのみ許可するミドルウェアです。
// SessionMiddlewareの後段で使用してください。
func RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("identity") != "manager" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "マネージャー権限が必要です"})
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
