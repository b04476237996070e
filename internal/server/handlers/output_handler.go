package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"coloring-book-web/internal/domain"

	"github.com/go-chi/chi/v5"
)

// ServeCover は現在の実行の表紙画像を返します。
func (h *Handler) ServeCover(w http.ResponseWriter, r *http.Request) {
	s := h.runs.State()
	if s.Cover == nil {
		http.NotFound(w, r)
		return
	}
	writeImage(w, *s.Cover)
}

// ServePage は現在の実行の n ページ目 (1 始まり) の画像を返します。
func (h *Handler) ServePage(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	s := h.runs.State()
	if n < 1 || n > len(s.Pages) {
		http.NotFound(w, r)
		return
	}
	writeImage(w, s.Pages[n-1])
}

// DownloadBook は表紙と 5 ページを PDF にまとめ、添付ファイルとして返します。
func (h *Handler) DownloadBook(w http.ResponseWriter, r *http.Request) {
	s := h.runs.State()

	book, err := h.assembler.Build(s.Cover, s.Pages, s.Request.ChildName, s.Request.Theme)
	switch {
	case errors.Is(err, domain.ErrIncompleteRun):
		writeError(w, r, http.StatusConflict, domain.MsgIncompleteRun, err)
		return
	case errors.Is(err, domain.ErrAssemblerUnavailable):
		writeError(w, r, http.StatusServiceUnavailable, domain.MsgAssemblerMissing, err)
		return
	case err != nil:
		writeError(w, r, http.StatusInternalServerError, domain.MsgPDFFailed, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, book.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(book.Data)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(book.Data); err != nil {
		slog.ErrorContext(r.Context(), "PDFの書き込みに失敗しました", "filename", book.Filename, "error", err)
	}
}

func writeImage(w http.ResponseWriter, img domain.GeneratedImage) {
	mimeType := img.MIMEType
	if mimeType == "" {
		mimeType = http.DetectContentType(img.Data)
	}
	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Data)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(img.Data); err != nil {
		slog.Error("画像の書き込みに失敗しました", "label", img.Label(), "error", err)
	}
}
