package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"coloring-book-web/internal/domain"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"google.golang.org/genai"
)

// --- インターフェース定義 ---

// ConversationClient はチャットセッションの作成とメッセージ送信を行います。
// Send は失敗時もエラーを返さず、固定のフォールバック文を返します。
type ConversationClient interface {
	CreateSession(ctx context.Context) (string, error)
	Send(ctx context.Context, sessionID, message string) string
}

// ChatSession は genai.Chat が満たす会話セッションの最小インターフェースです。
type ChatSession interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// ChatStarter は新しい会話セッションを開始します。
type ChatStarter func(ctx context.Context) (ChatSession, error)

// NewGenaiChatStarter は固定ペルソナで genai のチャットを開始する ChatStarter を返します。
func NewGenaiChatStarter(client *genai.Client, model string) ChatStarter {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: domain.ChatPersona}},
		},
	}
	return func(ctx context.Context) (ChatSession, error) {
		chat, err := client.Chats.Create(ctx, model, config, nil)
		if err != nil {
			return nil, err
		}
		return chat, nil
	}
}

// --- 具象アダプター ---

// GeminiChatAdapter はセッションIDと会話状態の対応を go-cache で保持します。
// 最後に使われてから ttl を過ぎたセッションは破棄されます。
type GeminiChatAdapter struct {
	start    ChatStarter
	sessions *cache.Cache
	ttl      time.Duration
}

// NewGeminiChatAdapter は GeminiChatAdapter を生成します。
func NewGeminiChatAdapter(start ChatStarter, ttl time.Duration) *GeminiChatAdapter {
	return &GeminiChatAdapter{
		start:    start,
		sessions: cache.New(ttl, ttl*2),
		ttl:      ttl,
	}
}

// CreateSession は新しい会話を開始し、そのセッションIDを返します。
func (a *GeminiChatAdapter) CreateSession(ctx context.Context) (string, error) {
	session, err := a.start(ctx)
	if err != nil {
		return "", fmt.Errorf("チャットセッションの作成に失敗しました: %w", err)
	}

	id := uuid.NewString()
	a.sessions.Set(id, session, a.ttl)
	slog.InfoContext(ctx, "Chat session created", "session_id", id)
	return id, nil
}

// Send はメッセージを送信して返答テキストを返します。
// 未知のセッション、API エラー、空の返答はすべて domain.ChatFallbackReply になります。
func (a *GeminiChatAdapter) Send(ctx context.Context, sessionID, message string) string {
	cached, ok := a.sessions.Get(sessionID)
	if !ok {
		slog.WarnContext(ctx, "Chat session not found", "session_id", sessionID)
		return domain.ChatFallbackReply
	}
	session, ok := cached.(ChatSession)
	if !ok {
		slog.ErrorContext(ctx, "キャッシュデータが不正な型です", "session_id", sessionID, "type", fmt.Sprintf("%T", cached))
		return domain.ChatFallbackReply
	}
	// 利用のたびに有効期限を延長する
	a.sessions.Set(sessionID, session, a.ttl)

	resp, err := session.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		slog.ErrorContext(ctx, "Chat message failed", "session_id", sessionID, "error", err)
		return domain.ChatFallbackReply
	}
	if resp == nil {
		return domain.ChatFallbackReply
	}

	reply := strings.TrimSpace(resp.Text())
	if reply == "" {
		slog.WarnContext(ctx, "Chat reply was empty", "session_id", sessionID)
		return domain.ChatFallbackReply
	}
	return reply
}
