package server

import (
	"net/http"

	"coloring-book-web/internal/builder"
	"coloring-book-web/internal/server/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter は、ミドルウェアとルーティングを統合した http.Handler を構築します。
func NewRouter(h *builder.AppHandlers) http.Handler {
	r := chi.NewRouter()

	setupCommonMiddleware(r)
	setupRoutes(r, h.Web)

	return r
}

func setupCommonMiddleware(r *chi.Mux) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.CleanPath)
}

func setupRoutes(r chi.Router, webHandler *handlers.Handler) {
	r.Get("/", webHandler.Index)
	r.Get("/healthz", webHandler.Healthz)

	// --- 塗り絵ブックの生成 ---
	r.Route("/runs", func(r chi.Router) {
		r.Post("/", webHandler.HandleSubmit)

		r.Route("/current", func(r chi.Router) {
			r.Get("/", webHandler.CurrentRun)
			r.Get("/events", webHandler.RunEvents)
			r.Post("/reset", webHandler.HandleReset)
			r.Get("/images/cover", webHandler.ServeCover)
			r.Get("/images/pages/{n}", webHandler.ServePage)
			r.Get("/book.pdf", webHandler.DownloadBook)
		})
	})

	// --- チャットウィジェット ---
	r.Route("/chat/sessions", func(r chi.Router) {
		r.Post("/", webHandler.OpenChat)
		r.Get("/{id}", webHandler.ChatTranscript)
		r.Post("/{id}/messages", webHandler.PostChatMessage)
	})
}
