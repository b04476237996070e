package domain

import (
	"fmt"
)

// PhaseKind は生成実行の状態機械における状態の種類です。
type PhaseKind int

const (
	PhaseIdle PhaseKind = iota
	PhaseGeneratingCover
	PhaseGeneratingPage
	PhaseDone
	PhaseFailed
)

// Phase は現在の状態です。PhaseGeneratingPage のときだけ Page (1..PageCount) が意味を持ちます。
type Phase struct {
	Kind PhaseKind
	Page int
}

func (p Phase) String() string {
	switch p.Kind {
	case PhaseIdle:
		return "idle"
	case PhaseGeneratingCover:
		return "generating_cover"
	case PhaseGeneratingPage:
		return fmt.Sprintf("generating_page_%d", p.Page)
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RunStatus は画面向けに集約した実行ステータスです。
type RunStatus string

const (
	StatusIdle    RunStatus = "idle"
	StatusRunning RunStatus = "running"
	StatusDone    RunStatus = "done"
	StatusFailed  RunStatus = "failed"
)

const (
	progressCover = "Crafting a magical cover page..."
	progressDone  = "Your coloring book is ready!"
)

// RunState は生成実行のイミュータブルなスナップショットです。
// Transition 以外で値を書き換えてはいけません。画像のバイト列は読み取り専用として共有されます。
type RunState struct {
	Request  GenerationRequest
	Phase    Phase
	Cover    *GeneratedImage
	Pages    []GeneratedImage
	Progress string
	Error    string
}

// Status は Phase から集約ステータスを導出します。
func (s RunState) Status() RunStatus {
	switch s.Phase.Kind {
	case PhaseGeneratingCover, PhaseGeneratingPage:
		return StatusRunning
	case PhaseDone:
		return StatusDone
	case PhaseFailed:
		return StatusFailed
	default:
		return StatusIdle
	}
}

// Running は実行中かどうかを返します。
func (s RunState) Running() bool {
	return s.Status() == StatusRunning
}

// Complete は表紙と全ページが揃っているかを返します。
func (s RunState) Complete() bool {
	return s.Cover != nil && len(s.Pages) == PageCount
}

// Event は状態遷移を引き起こす離散イベントです。
type Event interface {
	eventName() string
}

// Submitted は新しい実行の開始です。前回の画像とエラーは破棄されます。
type Submitted struct {
	Request GenerationRequest
}

// ImageReceived は 1 枚の画像の受信です。
type ImageReceived struct {
	Image GeneratedImage
}

// Failed は生成呼び出しの失敗です。Message はユーザー向けの文言です。
type Failed struct {
	Message string
}

// Reset は待機状態への復帰です。
type Reset struct{}

func (Submitted) eventName() string     { return "submitted" }
func (ImageReceived) eventName() string { return "image_received" }
func (Failed) eventName() string        { return "failed" }
func (Reset) eventName() string         { return "reset" }

// Transition は純粋関数として次の状態を計算します。
// 不正な遷移の場合は元の状態と ErrInvalidTransition を返します。
func Transition(s RunState, ev Event) (RunState, error) {
	switch e := ev.(type) {
	case Submitted:
		if s.Running() {
			return s, invalid(s, ev)
		}
		return RunState{
			Request:  e.Request,
			Phase:    Phase{Kind: PhaseGeneratingCover},
			Progress: progressCover,
		}, nil

	case ImageReceived:
		return receive(s, e.Image)

	case Failed:
		if !s.Running() {
			return s, invalid(s, ev)
		}
		next := s
		next.Phase = Phase{Kind: PhaseFailed}
		next.Progress = ""
		next.Error = e.Message
		return next, nil

	case Reset:
		if s.Running() {
			return s, invalid(s, ev)
		}
		return RunState{}, nil

	default:
		return s, fmt.Errorf("%w: unknown event %T", ErrInvalidTransition, ev)
	}
}

func receive(s RunState, img GeneratedImage) (RunState, error) {
	next := s
	switch s.Phase.Kind {
	case PhaseGeneratingCover:
		if img.Role != RoleCover {
			return s, invalid(s, ImageReceived{Image: img})
		}
		cover := img
		next.Cover = &cover
		next.Phase = Phase{Kind: PhaseGeneratingPage, Page: 1}
		next.Progress = pageProgress(1)
		return next, nil

	case PhaseGeneratingPage:
		if img.Role != RolePage || img.Ordinal != s.Phase.Page {
			return s, invalid(s, ImageReceived{Image: img})
		}
		pages := make([]GeneratedImage, len(s.Pages), len(s.Pages)+1)
		copy(pages, s.Pages)
		next.Pages = append(pages, img)

		if s.Phase.Page == PageCount {
			next.Phase = Phase{Kind: PhaseDone}
			next.Progress = progressDone
			return next, nil
		}
		next.Phase = Phase{Kind: PhaseGeneratingPage, Page: s.Phase.Page + 1}
		next.Progress = pageProgress(next.Phase.Page)
		return next, nil

	default:
		return s, invalid(s, ImageReceived{Image: img})
	}
}

func pageProgress(page int) string {
	return fmt.Sprintf("Drawing page %d of %d...", page, PageCount)
}

func invalid(s RunState, ev Event) error {
	return fmt.Errorf("%w: %s in phase %s", ErrInvalidTransition, ev.eventName(), s.Phase)
}
