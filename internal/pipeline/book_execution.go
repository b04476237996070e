package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"coloring-book-web/internal/domain"
)

// bookExecution は一回の生成実行に関する状態（リクエストや開始時刻）を保持します。
type bookExecution struct {
	pipeline  *BookPipeline
	request   domain.GenerationRequest
	startTime time.Time
}

// run は表紙、ページ 1..5 の順に画像を生成し、結果を通知します。
// 途中で失敗した場合はそれ以降の呼び出しを行いません。
func (e *bookExecution) run(ctx context.Context) (err error) {
	// 失敗時の状態遷移と通知を defer 文で一括管理します。
	defer func() {
		if err != nil {
			e.fail(ctx, err)
		}
	}()

	slog.InfoContext(ctx, "Coloring book run started", "theme", e.request.Theme, "child_name", e.request.ChildName)

	// --- Phase 1: Cover ---
	if err = e.pipeline.runCoverStep(ctx, e); err != nil {
		return fmt.Errorf("cover step failed: %w", err)
	}

	// --- Phase 2: Pages ---
	for ordinal := 1; ordinal <= domain.PageCount; ordinal++ {
		if err = e.pipeline.runPageStep(ctx, e, ordinal); err != nil {
			return fmt.Errorf("page %d step failed: %w", ordinal, err)
		}
	}

	final := e.pipeline.State()
	slog.InfoContext(ctx, "Coloring book run finished",
		"title", e.request.BookTitle(),
		"pages", len(final.Pages),
		"elapsed", time.Since(e.startTime).String(),
	)

	e.pipeline.notifySuccess(ctx, final)
	return nil
}

// fail は Failed イベントを適用し、エラー通知を送ります。
func (e *bookExecution) fail(ctx context.Context, runErr error) {
	state, err := e.pipeline.apply(domain.Failed{Message: domain.MsgGenerationFailed})
	if err != nil {
		slog.ErrorContext(ctx, "Failed to record run failure", "error", err)
	}
	slog.ErrorContext(ctx, "Coloring book run aborted",
		"error", runErr,
		"received_pages", len(state.Pages),
		"elapsed", time.Since(e.startTime).String(),
	)
	e.pipeline.notifyError(ctx, state, runErr)
}
