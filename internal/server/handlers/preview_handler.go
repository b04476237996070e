package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const (
	eventBuffer       = 8
	keepAliveInterval = 20 * time.Second
)

// CurrentRun は現在の実行状態を JSON で返します。
func (h *Handler) CurrentRun(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newRunView(h.runs.State()))
}

// RunEvents は状態が変わるたびにスナップショットを Server-Sent Events で配信します。
// 接続直後に現在の状態を 1 回送ります。
func (h *Handler) RunEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rc := http.NewResponseController(w)

	states, cancel := h.runs.Subscribe(eventBuffer)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}

		case s, ok := <-states:
			if !ok {
				return
			}
			data, err := json.Marshal(newRunView(s))
			if err != nil {
				slog.ErrorContext(ctx, "状態のエンコードに失敗しました", "error", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: state\ndata: %s\n\n", data); err != nil {
				slog.DebugContext(ctx, "SSE client disconnected", "error", err)
				return
			}
			if err := rc.Flush(); err != nil {
				slog.WarnContext(ctx, "SSE flush failed", "error", err)
				return
			}
		}
	}
}
