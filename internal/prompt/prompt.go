package prompt

import (
	"fmt"

	"coloring-book-web/internal/domain"
)

// 塗り絵の画風を固定するテンプレート定数
const (
	// CoverTemplate は表紙用です。タイトルとして子どもの名前を入れます。
	CoverTemplate = "A delightful coloring book cover page with the title 'Coloring Fun for %s'. The theme is '%s'. The style should be simple, with thick black lines, no color, perfect for a child to color."

	// PageTemplate は中身のページ用です。名前は入れません。
	PageTemplate = "A simple coloring book page for a child. The theme is '%s'. The style is clean with very thick black outlines, no color, and lots of space to color in. Page %d."
)

// BuildCoverPrompt は表紙のプロンプトを生成します。
func BuildCoverPrompt(req domain.GenerationRequest) string {
	return fmt.Sprintf(CoverTemplate, req.ChildName, req.Theme)
}

// BuildPagePrompt は ordinal ページ目 (1 始まり) のプロンプトを生成します。
func BuildPagePrompt(req domain.GenerationRequest, ordinal int) string {
	return fmt.Sprintf(PageTemplate, req.Theme, ordinal)
}
