package handlers

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"coloring-book-web/internal/chat"
	"coloring-book-web/internal/config"
	"coloring-book-web/internal/domain"
	"coloring-book-web/internal/publisher"
)

const titleSuffix = " - Coloring Book Creator"

// RunService は塗り絵ブックの生成実行を操作します。
type RunService interface {
	Launch(ctx context.Context, theme, childName string) error
	State() domain.RunState
	Subscribe(buffer int) (<-chan domain.RunState, func())
	Reset() error
}

// BookAssembler は完成した実行から PDF を組み立てます。
type BookAssembler interface {
	Build(cover *domain.GeneratedImage, pages []domain.GeneratedImage, childName, theme string) (*publisher.Book, error)
}

// ChatSessions はチャットウィジェットごとの Controller を管理します。
type ChatSessions interface {
	Open(ctx context.Context) (*chat.Controller, error)
	Get(id string) (*chat.Controller, error)
}

type Handler struct {
	cfg           *config.Config
	templateCache map[string]*template.Template
	runs          RunService
	assembler     BookAssembler
	chats         ChatSessions
}

// NewHandler は指定された構成に基づいて新しいハンドラーを初期化します。
// テンプレートをコンパイルし、レイアウトファイルが存在することを確認します。
func NewHandler(
	cfg *config.Config,
	runs RunService,
	assembler BookAssembler,
	chats ChatSessions,
) (*Handler, error) {
	cache := make(map[string]*template.Template)
	layoutPath := filepath.Join(cfg.TemplateDir, "layout.html")
	if _, err := os.Stat(layoutPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("レイアウトテンプレートが見つかりません: %s", layoutPath)
	}

	pagePaths, err := filepath.Glob(filepath.Join(cfg.TemplateDir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("ページテンプレートの検索に失敗しました: %w", err)
	}

	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
	}

	for _, pagePath := range pagePaths {
		pageName := filepath.Base(pagePath)
		if pageName == "layout.html" {
			continue
		}

		tmpl := template.New(pageName).Funcs(funcMap)
		tmpl, err = tmpl.ParseFiles(layoutPath, pagePath)
		if err != nil {
			return nil, fmt.Errorf("テンプレート %s の解析に失敗しました: %w", pageName, err)
		}
		cache[pageName] = tmpl
	}

	return &Handler{
		cfg:           cfg,
		templateCache: cache,
		runs:          runs,
		assembler:     assembler,
		chats:         chats,
	}, nil
}
