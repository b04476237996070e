package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime"
	"net/http"

	"coloring-book-web/internal/domain"
)

// render は HTML テンプレートをレンダリングし、レスポンスを書き込みます。
func (h *Handler) render(w http.ResponseWriter, status int, pageName string, title string, data any) {
	tmpl, ok := h.templateCache[pageName]
	if !ok {
		slog.Error("キャッシュ内にテンプレートが見つかりません", "page", pageName)
		http.Error(w, "システムエラーが発生しました（テンプレート未定義）", http.StatusInternalServerError)
		return
	}

	renderData := struct {
		Title string
		Data  any
	}{
		Title: title + titleSuffix,
		Data:  data,
	}

	var buf bytes.Buffer
	// レイアウトファイルをベースに実行します
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", renderData); err != nil {
		slog.Error("テンプレートのレンダリングに失敗しました", "page", pageName, "error", err)
		http.Error(w, "画面の表示中にエラーが発生しました", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("レスポンスの書き込みに失敗しました", "error", err)
	}
}

// writeJSON は値を JSON としてレスポンスに書き込みます。
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		slog.Error("JSONのエンコードに失敗しました", "error", err)
		http.Error(w, "システムエラーが発生しました", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("レスポンスの書き込みに失敗しました", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError はユーザー向けの固定メッセージを返し、詳細はログにのみ残します。
func writeError(w http.ResponseWriter, r *http.Request, status int, userMessage string, err error) {
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), userMessage, "status", status, "error", err)
	} else {
		slog.WarnContext(r.Context(), userMessage, "status", status, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: userMessage})
}

const maxBodyBytes = 1 << 20

// decodeInput は JSON ボディまたはフォームのどちらかから入力を読み取ります。
// JSON の場合は dst にデコードし、フォームの場合は fields の各キーの値を返します。
func decodeInput(w http.ResponseWriter, r *http.Request, dst any, fields ...string) (map[string]string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
			return nil, fmt.Errorf("JSONの解析に失敗しました: %w", err)
		}
		return nil, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("フォームの解析に失敗しました: %w", err)
	}
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		values[f] = r.FormValue(f)
	}
	return values, nil
}

// --- 表示用モデル ---

type imageView struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// runView は RunState を画面とJSON APIの両方で使う形に変換したものです。
type runView struct {
	Status      domain.RunStatus `json:"status"`
	Phase       string           `json:"phase"`
	Theme       string           `json:"theme"`
	ChildName   string           `json:"child_name"`
	Progress    string           `json:"progress,omitempty"`
	Error       string           `json:"error,omitempty"`
	Cover       *imageView       `json:"cover,omitempty"`
	Pages       []imageView      `json:"pages"`
	Complete    bool             `json:"complete"`
	DownloadURL string           `json:"download_url,omitempty"`
}

func newRunView(s domain.RunState) runView {
	v := runView{
		Status:    s.Status(),
		Phase:     s.Phase.String(),
		Theme:     s.Request.Theme,
		ChildName: s.Request.ChildName,
		Progress:  s.Progress,
		Error:     s.Error,
		Pages:     make([]imageView, 0, len(s.Pages)),
		Complete:  s.Complete(),
	}
	if s.Cover != nil {
		v.Cover = &imageView{Label: s.Cover.Label(), URL: "/runs/current/images/cover"}
	}
	for _, p := range s.Pages {
		v.Pages = append(v.Pages, imageView{
			Label: p.Label(),
			URL:   fmt.Sprintf("/runs/current/images/pages/%d", p.Ordinal),
		})
	}
	if v.Complete {
		v.DownloadURL = "/runs/current/book.pdf"
	}
	return v
}
