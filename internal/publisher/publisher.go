package publisher

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"coloring-book-web/internal/domain"

	"github.com/go-pdf/fpdf"
)

// DocumentFactory は指定した用紙サイズの空の PDF ドキュメントを生成します。
type DocumentFactory func(pageSize string) *fpdf.Fpdf

// NewFpdfDocument は余白なし・自動改ページなしの縦向きドキュメントを生成します。
func NewFpdfDocument(pageSize string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", pageSize, "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	return pdf
}

// Book はレンダリング済みの塗り絵ブックです。
type Book struct {
	Filename  string
	Data      []byte
	PageCount int
}

// Assembler は表紙と 5 ページを 1 つの PDF にまとめます。
type Assembler struct {
	newDocument DocumentFactory
	pageSize    string
}

// NewAssembler は Assembler を生成します。newDocument が nil の場合、Build は常に
// domain.ErrAssemblerUnavailable を返します。
func NewAssembler(newDocument DocumentFactory, pageSize string) *Assembler {
	return &Assembler{
		newDocument: newDocument,
		pageSize:    pageSize,
	}
}

// Build は表紙を 1 ページ目、続けて各ページ画像を 1 枚ずつ用紙いっぱいに配置した PDF を生成します。
// 表紙とちょうど 5 ページが揃っていない場合は何も生成しません。
func (a *Assembler) Build(cover *domain.GeneratedImage, pages []domain.GeneratedImage, childName, theme string) (*Book, error) {
	if cover == nil || len(pages) != domain.PageCount {
		return nil, fmt.Errorf("%w: cover=%t pages=%d", domain.ErrIncompleteRun, cover != nil, len(pages))
	}
	if a.newDocument == nil {
		return nil, domain.ErrAssemblerUnavailable
	}

	pdf := a.newDocument(a.pageSize)
	if pdf == nil {
		return nil, domain.ErrAssemblerUnavailable
	}
	pdf.SetTitle("Coloring Fun for "+childName, true)
	pdf.SetSubject(theme, true)
	pdf.SetCreator("coloring-book-web", true)

	if err := addFullPageImage(pdf, "cover", *cover); err != nil {
		return nil, err
	}
	for _, page := range pages {
		if err := addFullPageImage(pdf, fmt.Sprintf("page_%d", page.Ordinal), page); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDFの出力に失敗しました: %w", err)
	}

	book := &Book{
		Filename:  BookFilename(childName, theme),
		Data:      buf.Bytes(),
		PageCount: pdf.PageCount(),
	}
	slog.Info("Coloring book assembled", "filename", book.Filename, "pages", book.PageCount, "bytes", len(book.Data))
	return book, nil
}

// addFullPageImage は新しいページを追加し、画像をページ全体に引き伸ばして配置します。
func addFullPageImage(pdf *fpdf.Fpdf, name string, img domain.GeneratedImage) error {
	imageType, err := imageTypeFor(img.MIMEType)
	if err != nil {
		return fmt.Errorf("%s: %w", img.Label(), err)
	}

	opts := fpdf.ImageOptions{ImageType: imageType}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.Data))
	if pdf.Err() {
		return fmt.Errorf("%s の画像登録に失敗しました: %w", img.Label(), pdf.Error())
	}

	pdf.AddPage()
	w, h := pdf.GetPageSize()
	pdf.ImageOptions(name, 0, 0, w, h, false, opts, 0, "")
	if pdf.Err() {
		return fmt.Errorf("%s の配置に失敗しました: %w", img.Label(), pdf.Error())
	}
	return nil
}

func imageTypeFor(mimeType string) (string, error) {
	switch strings.ToLower(mimeType) {
	case "image/jpeg", "image/jpg", "":
		return "JPG", nil
	case "image/png":
		return "PNG", nil
	case "image/gif":
		return "GIF", nil
	default:
		return "", fmt.Errorf("unsupported image type %q", mimeType)
	}
}

// BookFilename は "<名前>_<テーマ>_coloring_book.pdf" を返します。
// 英数字以外の文字は 1 文字ごとに "_" に置き換えます。
func BookFilename(childName, theme string) string {
	return sanitize(childName) + "_" + sanitize(theme) + "_coloring_book.pdf"
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, s)
}
