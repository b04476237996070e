package chat

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"coloring-book-web/internal/adapters"
	"coloring-book-web/internal/domain"
)

// Controller は 1 つのチャットウィジェットのトランスクリプトと送信状態を管理します。
// 返答待ちの間に届いたメッセージはキューに入れず破棄します。
type Controller struct {
	sessionID string
	client    adapters.ConversationClient

	mu         sync.Mutex
	transcript []domain.Turn
	awaiting   atomic.Bool
}

// NewController は挨拶 1 件で始まる Controller を生成します。
func NewController(sessionID string, client adapters.ConversationClient) *Controller {
	return &Controller{
		sessionID:  sessionID,
		client:     client,
		transcript: []domain.Turn{{Sender: domain.SenderBot, Text: domain.ChatGreeting}},
	}
}

// SessionID は会話クライアント側のセッションIDです。
func (c *Controller) SessionID() string {
	return c.sessionID
}

// Submit はユーザーのメッセージを送信し、返答をトランスクリプトに追加します。
// 空白のみのメッセージ、または返答待ちの間の送信は何もせず false を返します。
func (c *Controller) Submit(ctx context.Context, text string) (bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if !c.awaiting.CompareAndSwap(false, true) {
		slog.DebugContext(ctx, "Chat message dropped while awaiting reply", "session_id", c.sessionID)
		return false, nil
	}
	defer c.awaiting.Store(false)

	c.append(domain.Turn{Sender: domain.SenderUser, Text: text})

	reply := c.client.Send(ctx, c.sessionID, text)

	c.append(domain.Turn{Sender: domain.SenderBot, Text: reply})
	return true, nil
}

// Transcript はトランスクリプトのコピーを返します。
func (c *Controller) Transcript() []domain.Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Turn, len(c.transcript))
	copy(out, c.transcript)
	return out
}

// Awaiting は返答待ちかどうかを返します。
func (c *Controller) Awaiting() bool {
	return c.awaiting.Load()
}

func (c *Controller) append(turn domain.Turn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transcript = append(c.transcript, turn)
}
