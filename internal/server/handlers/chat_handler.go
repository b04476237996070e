package handlers

import (
	"context"
	"errors"
	"net/http"

	"coloring-book-web/internal/chat"
	"coloring-book-web/internal/domain"

	"github.com/go-chi/chi/v5"
)

type chatView struct {
	ID         string        `json:"id"`
	Awaiting   bool          `json:"awaiting"`
	Transcript []domain.Turn `json:"transcript"`
}

type chatMessageRequest struct {
	Text string `json:"text"`
}

type chatMessageResponse struct {
	Accepted bool `json:"accepted"`
	chatView
}

func newChatView(c *chat.Controller) chatView {
	return chatView{
		ID:         c.SessionID(),
		Awaiting:   c.Awaiting(),
		Transcript: c.Transcript(),
	}
}

// OpenChat はウィジェットが初めて開かれたときに会話セッションを作成します。
func (h *Handler) OpenChat(w http.ResponseWriter, r *http.Request) {
	c, err := h.chats.Open(r.Context())
	if err != nil {
		writeError(w, r, http.StatusServiceUnavailable, domain.ChatFallbackReply, err)
		return
	}
	writeJSON(w, http.StatusCreated, newChatView(c))
}

// ChatTranscript はセッションのトランスクリプトを返します。
func (h *Handler) ChatTranscript(w http.ResponseWriter, r *http.Request) {
	c, ok := h.lookupChat(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newChatView(c))
}

// PostChatMessage はユーザーのメッセージを送信し、返答を含むトランスクリプトを返します。
// 空のメッセージや返答待ち中の送信は accepted=false になります。
func (h *Handler) PostChatMessage(w http.ResponseWriter, r *http.Request) {
	c, ok := h.lookupChat(w, r)
	if !ok {
		return
	}

	var req chatMessageRequest
	form, err := decodeInput(w, r, &req, "text")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, domain.MsgBadRequest, err)
		return
	}
	if form != nil {
		req.Text = form["text"]
	}

	// 返答はクライアントが切断してもトランスクリプトに残す
	accepted, err := c.Submit(context.WithoutCancel(r.Context()), req.Text)
	if err != nil {
		writeError(w, r, http.StatusServiceUnavailable, domain.ChatFallbackReply, err)
		return
	}
	writeJSON(w, http.StatusOK, chatMessageResponse{Accepted: accepted, chatView: newChatView(c)})
}

func (h *Handler) lookupChat(w http.ResponseWriter, r *http.Request) (*chat.Controller, bool) {
	id := chi.URLParam(r, "id")
	c, err := h.chats.Get(id)
	if errors.Is(err, domain.ErrSessionNotFound) {
		writeError(w, r, http.StatusNotFound, "Chat session not found. Please reopen the chat.", err)
		return nil, false
	}
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, domain.ChatFallbackReply, err)
		return nil, false
	}
	return c, true
}
