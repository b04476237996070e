package handlers

import (
	"net/http"

	"coloring-book-web/internal/domain"
)

type indexData struct {
	PageCount int
	Run       runView
	Greeting  string
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "index.html", "Create", indexData{
		PageCount: domain.PageCount,
		Run:       newRunView(h.runs.State()),
		Greeting:  domain.ChatGreeting,
	})
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
