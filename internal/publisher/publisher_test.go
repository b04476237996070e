package publisher

import (
	"bytes"
	"image"
	"image/jpeg"
	"regexp"
	"strconv"
	"testing"

	"coloring-book-web/internal/domain"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 40, 30))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

// imagePlacement は非圧縮コンテンツストリーム中の画像描画命令 "q w 0 0 h x y cm /I.. Do Q" に一致します。
var imagePlacement = regexp.MustCompile(`q (-?[0-9.]+) 0 0 (-?[0-9.]+) (-?[0-9.]+) (-?[0-9.]+) cm /I`)

func parseFloat(t *testing.T, b []byte) float64 {
	t.Helper()
	v, err := strconv.ParseFloat(string(b), 64)
	require.NoError(t, err)
	return v
}

func completeRun(t *testing.T) (*domain.GeneratedImage, []domain.GeneratedImage) {
	t.Helper()
	data := testJPEG(t)
	resp := &domain.ImageResponse{Data: data, MIMEType: "image/jpeg"}
	cover := domain.NewCoverImage(resp)
	pages := make([]domain.GeneratedImage, 0, domain.PageCount)
	for i := 1; i <= domain.PageCount; i++ {
		pages = append(pages, domain.NewPageImage(i, resp))
	}
	return &cover, pages
}

func TestAssembler_Build(t *testing.T) {
	cover, pages := completeRun(t)

	t.Run("表紙と5ページで6ページのPDFを生成する", func(t *testing.T) {
		a := NewAssembler(NewFpdfDocument, "A4")
		book, err := a.Build(cover, pages, "Lily", "Space Dinosaurs")

		require.NoError(t, err)
		assert.Equal(t, 6, book.PageCount)
		assert.Equal(t, 6, bytes.Count(book.Data, []byte("/Type /Page\n")))
		assert.True(t, bytes.HasPrefix(book.Data, []byte("%PDF")))
		assert.Equal(t, "Lily_Space_Dinosaurs_coloring_book.pdf", book.Filename)
	})

	t.Run("各画像はページ全体に配置される", func(t *testing.T) {
		var doc *fpdf.Fpdf
		factory := func(pageSize string) *fpdf.Fpdf {
			doc = NewFpdfDocument(pageSize)
			doc.SetCompression(false)
			return doc
		}

		book, err := NewAssembler(factory, "A4").Build(cover, pages, "Lily", "Space Dinosaurs")
		require.NoError(t, err)
		require.NotNil(t, doc)

		w, h := doc.GetPageSize()
		k := doc.GetConversionRatio()
		placements := imagePlacement.FindAllSubmatch(book.Data, -1)
		require.Len(t, placements, 6)
		for i, m := range placements {
			assert.InDelta(t, w*k, parseFloat(t, m[1]), 0.01, "placement %d width", i)
			assert.InDelta(t, h*k, parseFloat(t, m[2]), 0.01, "placement %d height", i)
			assert.InDelta(t, 0, parseFloat(t, m[3]), 0.01, "placement %d x", i)
			assert.InDelta(t, 0, parseFloat(t, m[4]), 0.01, "placement %d y", i)
		}
	})

	t.Run("ページが足りなければ何も生成しない", func(t *testing.T) {
		a := NewAssembler(NewFpdfDocument, "A4")
		book, err := a.Build(cover, pages[:4], "Lily", "Space")

		assert.Nil(t, book)
		assert.ErrorIs(t, err, domain.ErrIncompleteRun)
	})

	t.Run("表紙がなければ何も生成しない", func(t *testing.T) {
		a := NewAssembler(NewFpdfDocument, "A4")
		book, err := a.Build(nil, pages, "Lily", "Space")

		assert.Nil(t, book)
		assert.ErrorIs(t, err, domain.ErrIncompleteRun)
	})

	t.Run("レンダラーがなければ利用不可エラー", func(t *testing.T) {
		a := NewAssembler(nil, "A4")
		book, err := a.Build(cover, pages, "Lily", "Space")

		assert.Nil(t, book)
		assert.ErrorIs(t, err, domain.ErrAssemblerUnavailable)
	})

	t.Run("画像として読めないデータは失敗する", func(t *testing.T) {
		broken := make([]domain.GeneratedImage, len(pages))
		copy(broken, pages)
		broken[2].Data = []byte("not a jpeg")

		a := NewAssembler(NewFpdfDocument, "A4")
		book, err := a.Build(cover, broken, "Lily", "Space")

		assert.Nil(t, book)
		assert.Error(t, err)
	})

	t.Run("未対応のMIMEタイプは失敗する", func(t *testing.T) {
		broken := make([]domain.GeneratedImage, len(pages))
		copy(broken, pages)
		broken[0].MIMEType = "image/webp"

		_, err := NewAssembler(NewFpdfDocument, "A4").Build(cover, broken, "Lily", "Space")
		assert.Error(t, err)
	})
}

func TestBookFilename(t *testing.T) {
	tests := []struct {
		name, child, theme, want string
	}{
		{"英数字のみ", "Lily", "Dinosaurs", "Lily_Dinosaurs_coloring_book.pdf"},
		{"空白と記号", "Lily", "Space Dinos?", "Lily_Space_Dinos__coloring_book.pdf"},
		{"名前とテーマの両方に記号", "Lily!", "Space Dinos?", "Lily__Space_Dinos__coloring_book.pdf"},
		{"名前の記号も置き換える", "Mary-Jane", "Farm", "Mary_Jane_Farm_coloring_book.pdf"},
		{"非ASCIIは1文字ごとに置き換える", "Zoë", "海", "Zo____coloring_book.pdf"},
		{"絵文字も1文字として置き換える", "Al😀", "x", "Al__x_coloring_book.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BookFilename(tt.child, tt.theme))
		})
	}
}
