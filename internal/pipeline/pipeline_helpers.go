package pipeline

import (
	"context"
	"log/slog"

	"coloring-book-web/internal/domain"
)

const (
	bookCategory        = "coloring-book"
	errorReportCategory = "error-report"
)

// notifySuccess は完成した塗り絵ブックを通知します。
// 通知処理自体の失敗は、実行の成否には影響させません。
func (p *BookPipeline) notifySuccess(ctx context.Context, s domain.RunState) {
	if p.notifier == nil {
		return
	}
	if err := p.notifier.Notify(ctx, domain.NewNotificationRequest(s, bookCategory)); err != nil {
		slog.ErrorContext(ctx, "Notification failed", "error", err)
	}
}

// notifyError はエラー発生時に SlackNotifier を通じて通知を行います。
func (p *BookPipeline) notifyError(ctx context.Context, s domain.RunState, opErr error) {
	if p.notifier == nil {
		return
	}
	if err := p.notifier.NotifyError(ctx, opErr, domain.NewNotificationRequest(s, errorReportCategory)); err != nil {
		slog.ErrorContext(ctx, "Failed to send error notification", "error", err)
	}
}
