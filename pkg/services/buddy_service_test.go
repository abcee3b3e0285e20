package services

import (
	"context"
	"testing"

	config "salesmate-api/configs"
	"salesmate-api/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBuddyResponder はテスト用のAIスタブです。
type fakeBuddyResponder struct {
	reply       models.AssistantReply
	err         error
	lastContext string
}

func (f *fakeBuddyResponder) BuddyReply(ctx context.Context, systemPrompt, contextText, userMessage string) (*models.AssistantReply, error) {
	f.lastContext = contextText
	if f.err != nil {
		return nil, f.err
	}
	reply := f.reply
	return &reply, nil
}

func TestChatStartsSessionWithGreeting(t *testing.T) {
	ai := &fakeBuddyResponder{reply: models.AssistantReply{Text: "Push the wings special."}}
	svc := NewBuddyService(ai, config.DefaultBuddyPrompt())

	resp, err := svc.Chat(context.Background(), "", "What should I pitch?", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, "Push the wings special.", resp.Text)

	// 履歴は 挨拶 → ユーザー → アシスタント の順
	history := svc.History(resp.SessionID)
	require.Len(t, history, 3)
	assert.Equal(t, "assistant", history[0].Role)
	assert.Equal(t, svc.Greeting(), history[0].Text)
	assert.Equal(t, "user", history[1].Role)
	assert.Equal(t, "assistant", history[2].Role)
}

func TestChatReusesSession(t *testing.T) {
	ai := &fakeBuddyResponder{reply: models.AssistantReply{Text: "Sure thing."}}
	svc := NewBuddyService(ai, config.DefaultBuddyPrompt())

	first, err := svc.Chat(context.Background(), "", "hello", nil)
	require.NoError(t, err)

	second, err := svc.Chat(context.Background(), first.SessionID, "another question", nil)
	require.NoError(t, err)
	assert.Equal(t, first.SessionID, second.SessionID)

	// 既存セッションには挨拶を追加しない
	history := svc.History(first.SessionID)
	assert.Len(t, history, 5)
}

func TestChatAuditContext(t *testing.T) {
	ai := &fakeBuddyResponder{reply: models.AssistantReply{Text: "ok"}}
	svc := NewBuddyService(ai, config.DefaultBuddyPrompt())

	record := &models.InsightRecord{ID: "hotel", Title: "Hotel"}
	_, err := svc.Chat(context.Background(), "", "help", record)
	require.NoError(t, err)
	assert.Equal(t, "The consultant is auditing a Hotel.", ai.lastContext)

	_, err = svc.Chat(context.Background(), "", "help", nil)
	require.NoError(t, err)
	assert.Equal(t, "General sales consultation.", ai.lastContext)
}

func TestChatEmptyReplyFallsBack(t *testing.T) {
	ai := &fakeBuddyResponder{}
	prompt := config.DefaultBuddyPrompt()
	svc := NewBuddyService(ai, prompt)

	resp, err := svc.Chat(context.Background(), "", "anything", nil)
	require.NoError(t, err)
	assert.Equal(t, prompt.FallbackReply, resp.Text)
}

func TestChatCarriesFlyerAttachment(t *testing.T) {
	ai := &fakeBuddyResponder{
		reply: models.AssistantReply{
			Text:  "Here you go. ",
			Flyer: &models.FlyerData{Title: "Weekend Special", Items: []models.FlyerItem{}, CallToAction: "Call now"},
		},
	}
	svc := NewBuddyService(ai, config.DefaultBuddyPrompt())

	resp, err := svc.Chat(context.Background(), "", "make a flyer", nil)
	require.NoError(t, err)
	assert.Equal(t, "Here you go. ", resp.Text)
	require.NotNil(t, resp.Flyer)
	assert.Equal(t, "Weekend Special", resp.Flyer.Title)

	// フライヤーは履歴のアシスタントメッセージにも残る
	history := svc.History(resp.SessionID)
	last := history[len(history)-1]
	require.NotNil(t, last.Flyer)
	assert.Equal(t, "Weekend Special", last.Flyer.Title)
}

func TestChatWithoutAIUsesFallback(t *testing.T) {
	prompt := config.DefaultBuddyPrompt()
	svc := NewBuddyService(nil, prompt)

	resp, err := svc.Chat(context.Background(), "", "anything", nil)
	require.NoError(t, err)
	assert.Equal(t, prompt.FallbackReply, resp.Text)
}
