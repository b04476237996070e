package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(data string) *ImageResponse {
	return &ImageResponse{Data: []byte(data), MIMEType: "image/jpeg"}
}

func mustTransition(t *testing.T, s RunState, ev Event) RunState {
	t.Helper()
	next, err := Transition(s, ev)
	require.NoError(t, err)
	return next
}

func TestTransition_FullRun(t *testing.T) {
	req := GenerationRequest{Theme: "Space Dinosaurs", ChildName: "Lily"}

	s := mustTransition(t, RunState{}, Submitted{Request: req})
	assert.Equal(t, StatusRunning, s.Status())
	assert.Equal(t, Phase{Kind: PhaseGeneratingCover}, s.Phase)
	assert.Equal(t, "Crafting a magical cover page...", s.Progress)

	s = mustTransition(t, s, ImageReceived{Image: NewCoverImage(testImage("cover"))})
	require.NotNil(t, s.Cover)
	assert.Equal(t, Phase{Kind: PhaseGeneratingPage, Page: 1}, s.Phase)
	assert.Equal(t, "Drawing page 1 of 5...", s.Progress)

	for i := 1; i <= PageCount; i++ {
		s = mustTransition(t, s, ImageReceived{Image: NewPageImage(i, testImage("page"))})
		assert.Len(t, s.Pages, i)
	}

	assert.Equal(t, StatusDone, s.Status())
	assert.True(t, s.Complete())
	assert.Equal(t, "Your coloring book is ready!", s.Progress)
	assert.Empty(t, s.Error)
}

func TestTransition_Failure(t *testing.T) {
	req := GenerationRequest{Theme: "Space Dinosaurs", ChildName: "Lily"}
	s := mustTransition(t, RunState{}, Submitted{Request: req})
	s = mustTransition(t, s, ImageReceived{Image: NewCoverImage(testImage("cover"))})
	s = mustTransition(t, s, ImageReceived{Image: NewPageImage(1, testImage("p1"))})

	t.Run("失敗しても受信済みの画像は残る", func(t *testing.T) {
		failed := mustTransition(t, s, Failed{Message: MsgGenerationFailed})
		assert.Equal(t, StatusFailed, failed.Status())
		assert.Equal(t, MsgGenerationFailed, failed.Error)
		assert.NotNil(t, failed.Cover)
		assert.Len(t, failed.Pages, 1)
		assert.False(t, failed.Complete())
	})

	t.Run("失敗後の画像受信は不正な遷移になる", func(t *testing.T) {
		failed := mustTransition(t, s, Failed{Message: MsgGenerationFailed})
		_, err := Transition(failed, ImageReceived{Image: NewPageImage(2, testImage("p2"))})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("新しい実行は前回の画像とエラーを破棄する", func(t *testing.T) {
		failed := mustTransition(t, s, Failed{Message: MsgGenerationFailed})
		restarted := mustTransition(t, failed, Submitted{Request: req})
		assert.Nil(t, restarted.Cover)
		assert.Empty(t, restarted.Pages)
		assert.Empty(t, restarted.Error)
		assert.Equal(t, StatusRunning, restarted.Status())
	})
}

func TestTransition_InvalidTransitions(t *testing.T) {
	req := GenerationRequest{Theme: "Ocean", ChildName: "Max"}
	running := mustTransition(t, RunState{}, Submitted{Request: req})

	tests := []struct {
		name  string
		state RunState
		event Event
	}{
		{"実行中の再投入", running, Submitted{Request: req}},
		{"実行中のリセット", running, Reset{}},
		{"表紙の前にページ", running, ImageReceived{Image: NewPageImage(1, testImage("p1"))}},
		{"待機中の画像受信", RunState{}, ImageReceived{Image: NewCoverImage(testImage("c"))}},
		{"待機中の失敗", RunState{}, Failed{Message: "x"}},
		{"順序違いのページ", mustTransition(t, running, ImageReceived{Image: NewCoverImage(testImage("c"))}), ImageReceived{Image: NewPageImage(2, testImage("p2"))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := Transition(tt.state, tt.event)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidTransition))
			assert.Equal(t, tt.state, next)
		})
	}
}

func TestTransition_DoesNotMutatePreviousState(t *testing.T) {
	req := GenerationRequest{Theme: "Farm", ChildName: "Ava"}
	s := mustTransition(t, RunState{}, Submitted{Request: req})
	s = mustTransition(t, s, ImageReceived{Image: NewCoverImage(testImage("c"))})
	one := mustTransition(t, s, ImageReceived{Image: NewPageImage(1, testImage("p1"))})
	two := mustTransition(t, one, ImageReceived{Image: NewPageImage(2, testImage("p2"))})

	assert.Len(t, one.Pages, 1)
	assert.Len(t, two.Pages, 2)
	assert.Empty(t, s.Pages)
}

func TestTransition_ResetFromDone(t *testing.T) {
	s := mustTransition(t, RunState{}, Submitted{Request: GenerationRequest{Theme: "a", ChildName: "b"}})
	s = mustTransition(t, s, Failed{Message: "boom"})
	s = mustTransition(t, s, Reset{})
	assert.Equal(t, StatusIdle, s.Status())
	assert.Equal(t, RunState{}, s)
}

func TestGenerationRequest_Validate(t *testing.T) {
	assert.NoError(t, GenerationRequest{Theme: "Space", ChildName: "Lily"}.Validate())
	assert.ErrorIs(t, GenerationRequest{Theme: "", ChildName: "Lily"}.Validate(), ErrValidation)
	assert.ErrorIs(t, GenerationRequest{Theme: "Space", ChildName: "   "}.Validate(), ErrValidation)
}
