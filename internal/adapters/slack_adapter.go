package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"coloring-book-web/internal/domain"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-notifier/pkg/factory"
)

// --- インターフェース定義 ---

type SlackNotifier interface {
	Notify(ctx context.Context, req domain.NotificationRequest) error
	NotifyError(ctx context.Context, errDetail error, req domain.NotificationRequest) error
}

// slackSender は go-notifier の Slack クライアントのうち、このアダプターが使う部分です。
type slackSender interface {
	SendTextWithHeader(ctx context.Context, header, message string) error
}

// --- 具象アダプター ---

type SlackAdapter struct {
	webhookURL  string
	slackClient slackSender
}

// NewSlackAdapter は Webhook URL が空なら通知を送らないアダプターを返します。
func NewSlackAdapter(httpClient httpkit.ClientInterface, webhookURL string) (*SlackAdapter, error) {
	if webhookURL == "" {
		return &SlackAdapter{}, nil
	}
	client, err := factory.GetSlackClient(httpClient)
	if err != nil {
		return nil, fmt.Errorf("Slackクライアントの初期化に失敗しました: %w", err)
	}

	return &SlackAdapter{
		webhookURL:  webhookURL,
		slackClient: client,
	}, nil
}

// Notify は塗り絵ブックの完成を通知します。
func (a *SlackAdapter) Notify(ctx context.Context, req domain.NotificationRequest) error {
	if a.slackClient == nil {
		slog.Info("Slackクライアントが初期化されていないため、通知をスキップします。", "title", req.BookTitle)
		return nil
	}

	title := "🖍️ 塗り絵ブックが完成しました！"
	content := a.buildSlackContent(req)

	if err := a.slackClient.SendTextWithHeader(ctx, title, content); err != nil {
		return fmt.Errorf("Slackへの投稿に失敗しました: %w", err)
	}

	slog.Info("Slack に完了通知を送信しました。", "title", req.BookTitle)
	return nil
}

// NotifyError はエラー詳細と実行メタデータを含むエラー通知を送信します。
func (a *SlackAdapter) NotifyError(ctx context.Context, errDetail error, req domain.NotificationRequest) error {
	if a.slackClient == nil {
		slog.Info("Slackクライアントが初期化されていないため、エラー通知をスキップします。", "error", errDetail)
		return nil
	}

	title := "❌ 塗り絵の生成中にエラーが発生しました"

	var sb strings.Builder
	sb.WriteString(a.buildSlackContent(req))
	sb.WriteString("\n*エラー内容:*\n")
	sb.WriteString(fmt.Sprintf("```\n%v\n```\n", errDetail))

	if err := a.slackClient.SendTextWithHeader(ctx, title, sb.String()); err != nil {
		return fmt.Errorf("Slackへのエラー通知に失敗しました: %w", err)
	}

	slog.Info("Slack にエラー通知を送信しました。", "error", errDetail)
	return nil
}

// buildSlackContent は通知リクエストから mrkdwn のメッセージ本文を生成します。
func (a *SlackAdapter) buildSlackContent(req domain.NotificationRequest) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*タイトル:* `%s`\n", req.BookTitle))
	sb.WriteString(fmt.Sprintf("*テーマ:* `%s`\n", req.Theme))
	sb.WriteString(fmt.Sprintf("*ページ数:* %d / %d\n", req.GeneratedPages, domain.PageCount))

	if req.OutputCategory != "" && req.OutputCategory != domain.CategoryNotAvailable {
		sb.WriteString(fmt.Sprintf("📍 *カテゴリ:* `%s`\n", req.OutputCategory))
	}
	return sb.String()
}
