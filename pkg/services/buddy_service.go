package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	config "salesmate-api/configs"
	"salesmate-api/pkg/models"

	"github.com/google/uuid"
)

// BuddyResponder はバディ応答を生成するAIコラボレーターのポートです。
// フライヤーの抽出は境界側の責務で、ここには構造化済みの応答だけが届きます。
type BuddyResponder interface {
	BuddyReply(ctx context.Context, systemPrompt, contextText, userMessage string) (*models.AssistantReply, error)
}

// BuddyService はバディチャットのセッションを管理します。
// メッセージはセッションスコープのインメモリ保持のみで、永続化しません。
type BuddyService struct {
	ai     BuddyResponder
	prompt *config.BuddyPromptConfig

	mu       sync.RWMutex
	sessions map[string][]models.ChatMessage
}

// NewBuddyService は新しいBuddyServiceを生成します。
func NewBuddyService(ai BuddyResponder, prompt *config.BuddyPromptConfig) *BuddyService {
	if prompt == nil {
		prompt = config.DefaultBuddyPrompt()
	}
	return &BuddyService{
		ai:       ai,
		prompt:   prompt,
		sessions: make(map[string][]models.ChatMessage),
	}
}

// Greeting は新規セッションの冒頭メッセージを返します。
func (s *BuddyService) Greeting() string {
	return s.prompt.Greeting
}

// Chat はユーザーメッセージを処理してバディ応答を返します。
// sessionIDが空の場合は新しいセッションを開始します。
// 応答テキストはフライヤー抽出を通してから履歴に追記されます。
func (s *BuddyService) Chat(ctx context.Context, sessionID, message string, auditContext *models.InsightRecord) (*models.BuddyChatResponse, error) {
	if sessionID == "" {
		sessionID = uuid.New().String()
		s.appendMessage(sessionID, models.ChatMessage{Role: "assistant", Text: s.prompt.Greeting})
	}

	s.appendMessage(sessionID, models.ChatMessage{Role: "user", Text: message})

	contextText := "General sales consultation."
	if auditContext != nil {
		contextText = fmt.Sprintf("The consultant is auditing a %s.", auditContext.Title)
	}

	// AI未設定でもチャット自体は落とさず、固定のフォールバック文で応答する
	reply := models.AssistantReply{Text: s.prompt.FallbackReply}
	if s.ai != nil {
		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		r, err := s.ai.BuddyReply(ctx, s.prompt.BuildSystemPrompt(), contextText, message)
		if err != nil {
			return nil, fmt.Errorf("バディ応答の生成に失敗: %w", err)
		}
		if r != nil && (r.Text != "" || r.Flyer != nil) {
			reply = *r
		}
	}

	s.appendMessage(sessionID, models.ChatMessage{Role: "assistant", Text: reply.Text, Flyer: reply.Flyer})

	return &models.BuddyChatResponse{
		SessionID: sessionID,
		Text:      reply.Text,
		Flyer:     reply.Flyer,
	}, nil
}

// History はセッションのメッセージ列（追記順）を返します。
func (s *BuddyService) History(sessionID string) []models.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.sessions[sessionID]
	out := make([]models.ChatMessage, len(msgs))
	copy(out, msgs)
	return out
}

func (s *BuddyService) appendMessage(sessionID string, msg models.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], msg)
}
