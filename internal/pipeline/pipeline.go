package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"coloring-book-web/internal/adapters"
	"coloring-book-web/internal/domain"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// BookPipeline は塗り絵ブック 1 冊分の生成実行を管理します。
// 同時に実行できるのは 1 件だけで、状態は domain.Transition を通してのみ更新されます。
type BookPipeline struct {
	images   adapters.ImageGenerator
	notifier adapters.SlackNotifier
	limiter  *rate.Limiter
	guard    *semaphore.Weighted

	mu          sync.Mutex
	state       domain.RunState
	subscribers map[int]chan domain.RunState
	nextSubID   int
}

// NewBookPipeline は BookPipeline を生成します。
// interval が 0 以下の場合、画像生成呼び出しの間隔は制限しません。
func NewBookPipeline(images adapters.ImageGenerator, notifier adapters.SlackNotifier, interval time.Duration) *BookPipeline {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if interval > 0 {
		limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
	return &BookPipeline{
		images:      images,
		notifier:    notifier,
		limiter:     limiter,
		guard:       semaphore.NewWeighted(1),
		subscribers: make(map[int]chan domain.RunState),
	}
}

// StartRun は入力を検証して実行を開始し、完了または失敗するまでブロックします。
func (p *BookPipeline) StartRun(ctx context.Context, theme, childName string) error {
	exec, err := p.begin(theme, childName)
	if err != nil {
		return err
	}
	defer p.guard.Release(1)

	return exec.run(ctx)
}

// Launch は StartRun と同じ検証を行ったうえで、実行をバックグラウンドで進めます。
// 実行はリクエストのキャンセルから切り離されます。
func (p *BookPipeline) Launch(ctx context.Context, theme, childName string) error {
	exec, err := p.begin(theme, childName)
	if err != nil {
		return err
	}

	runCtx := context.WithoutCancel(ctx)
	go func() {
		defer p.guard.Release(1)
		if err := exec.run(runCtx); err != nil {
			slog.ErrorContext(runCtx, "Coloring book run failed", "error", err)
		}
	}()
	return nil
}

// begin は検証と実行ガードの取得を行い、Submitted を適用します。
// 成功した場合、呼び出し側が guard を解放する責任を持ちます。
func (p *BookPipeline) begin(theme, childName string) (*bookExecution, error) {
	req := domain.GenerationRequest{
		Theme:     strings.TrimSpace(theme),
		ChildName: strings.TrimSpace(childName),
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if !p.guard.TryAcquire(1) {
		return nil, domain.ErrRunInProgress
	}

	if _, err := p.apply(domain.Submitted{Request: req}); err != nil {
		p.guard.Release(1)
		return nil, fmt.Errorf("%w: %v", domain.ErrRunInProgress, err)
	}

	return &bookExecution{
		pipeline:  p,
		request:   req,
		startTime: time.Now(),
	}, nil
}

// State は現在の状態のスナップショットを返します。
func (p *BookPipeline) State() domain.RunState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Reset は実行中でなければ待機状態に戻します。
func (p *BookPipeline) Reset() error {
	_, err := p.apply(domain.Reset{})
	return err
}

// Subscribe は状態が変わるたびにスナップショットを受け取るチャネルを返します。
// 現在の状態が最初に 1 回送られます。受信が追いつかない購読者には最新の状態だけが残ります。
func (p *BookPipeline) Subscribe(buffer int) (<-chan domain.RunState, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan domain.RunState, buffer)

	p.mu.Lock()
	id := p.nextSubID
	p.nextSubID++
	p.subscribers[id] = ch
	ch <- p.state
	p.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.subscribers, id)
			close(ch)
			p.mu.Unlock()
		})
	}
	return ch, cancel
}

// apply はイベントを適用して新しい状態を全購読者に配信します。
func (p *BookPipeline) apply(ev domain.Event) (domain.RunState, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	next, err := domain.Transition(p.state, ev)
	if err != nil {
		return p.state, err
	}
	p.state = next

	for _, ch := range p.subscribers {
		publish(ch, next)
	}
	return next, nil
}

// publish はブロックせずに送信します。バッファが満杯なら最も古い状態を捨てます。
func publish(ch chan domain.RunState, s domain.RunState) {
	select {
	case ch <- s:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- s:
	default:
	}
}
