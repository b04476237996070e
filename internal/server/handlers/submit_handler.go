package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"coloring-book-web/internal/domain"
)

type runRequest struct {
	Theme     string `json:"theme"`
	ChildName string `json:"child_name"`
}

// HandleSubmit は生成リクエストを受け付け、バックグラウンドで実行を開始します。
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	form, err := decodeInput(w, r, &req, "theme", "child_name")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, domain.MsgBadRequest, err)
		return
	}
	if form != nil {
		req = runRequest{Theme: form["theme"], ChildName: form["child_name"]}
	}

	err = h.runs.Launch(r.Context(), req.Theme, req.ChildName)
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, r, http.StatusBadRequest, domain.MsgValidation, err)
		return
	case errors.Is(err, domain.ErrRunInProgress):
		writeError(w, r, http.StatusConflict, domain.MsgRunInProgress, err)
		return
	case err != nil:
		writeError(w, r, http.StatusInternalServerError, domain.MsgGenerationFailed, err)
		return
	}

	slog.InfoContext(r.Context(), "Coloring book run accepted", "theme", req.Theme)
	writeJSON(w, http.StatusAccepted, newRunView(h.runs.State()))
}

// HandleReset は完了または失敗した実行を破棄して待機状態に戻します。
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if err := h.runs.Reset(); err != nil {
		writeError(w, r, http.StatusConflict, domain.MsgRunInProgress, err)
		return
	}
	writeJSON(w, http.StatusOK, newRunView(h.runs.State()))
}
