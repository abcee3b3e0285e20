package services

import (
	"sync"

	"github.com/google/uuid"
)

// CredentialVerifier は認証情報の検証ポートです。
// 実際のシークレット管理へ差し替えられるよう、呼び出し側は静的ペアを知りません。
type CredentialVerifier interface {
	// Authenticate は認証に成功した場合にアイデンティティ名を返します。
	Authenticate(username, secret string) (identity string, ok bool)
}

// StaticCredentialVerifier は2組の固定認証ペアによる検証器です。
type StaticCredentialVerifier struct {
	pairs map[string]string
}

// NewStaticCredentialVerifier はプロダクト既定の2ペアで検証器を生成します。
func NewStaticCredentialVerifier() *StaticCredentialVerifier {
	return &StaticCredentialVerifier{
		pairs: map[string]string{
			"sales_pro": "proven2025",
			"manager":   "mate123",
		},
	}
}

// Authenticate はユーザー名とシークレットを照合します。
func (v *StaticCredentialVerifier) Authenticate(username, secret string) (string, bool) {
	if expected, exists := v.pairs[username]; exists && expected == secret {
		return username, true
	}
	return "", false
}

// MagicLinkSecret はマジックリンク生成用に指定ユーザーのシークレットを返します。
// 管理者パネルのリンク生成ボタンに対応します。
func (v *StaticCredentialVerifier) MagicLinkSecret(username string) (string, bool) {
	secret, exists := v.pairs[username]
	return secret, exists
}

// AuthService はセッショントークンの発行と検証を行います。
// セッションはインメモリのみで、プロセス再起動で消えます。
type AuthService struct {
	verifier CredentialVerifier

	mu       sync.RWMutex
	sessions map[string]string // token -> identity
}

// NewAuthService は新しいAuthServiceを生成します。
func NewAuthService(verifier CredentialVerifier) *AuthService {
	return &AuthService{
		verifier: verifier,
		sessions: make(map[string]string),
	}
}

// Login は認証に成功するとセッショントークンを発行します。
// マジックリンクのパラメータ（u/p）も同じ経路で検証されます。
func (s *AuthService) Login(username, secret string) (token, identity string, ok bool) {
	identity, ok = s.verifier.Authenticate(username, secret)
	if !ok {
		return "", "", false
	}

	token = uuid.New().String()
	s.mu.Lock()
	s.sessions[token] = identity
	s.mu.Unlock()
	return token, identity, true
}

// Identity はトークンからアイデンティティを引きます。
func (s *AuthService) Identity(token string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	identity, ok := s.sessions[token]
	return identity, ok
}

// Logout はセッションを破棄します。存在しないトークンは黙って無視します。
func (s *AuthService) Logout(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}
