package domain

import (
	"fmt"
	"strings"
)

// PageCount は 1 冊に含まれる塗り絵ページ数（表紙を除く）です。
const PageCount = 5

// GenerationRequest はフォームから受け取った 1 回分の生成指示です。
// 実行開始後は変更されません。
type GenerationRequest struct {
	Theme     string `json:"theme"`
	ChildName string `json:"child_name"`
}

// Validate はテーマと名前の両方が空でないことを確認します。
func (r GenerationRequest) Validate() error {
	if strings.TrimSpace(r.Theme) == "" || strings.TrimSpace(r.ChildName) == "" {
		return fmt.Errorf("%w: theme and child name are required", ErrValidation)
	}
	return nil
}

// BookTitle は表紙に載せるタイトルです。
func (r GenerationRequest) BookTitle() string {
	return "Coloring Fun for " + r.ChildName
}

// ImageRole は画像が表紙かページかを表します。
type ImageRole string

const (
	RoleCover ImageRole = "cover"
	RolePage  ImageRole = "page"
)

// ImageResponse は画像生成クライアントが返す生の画像データです。
type ImageResponse struct {
	Data     []byte
	MIMEType string
}

// GeneratedImage は 1 回の実行で得られた画像と、その役割・位置です。
// Ordinal はページなら 1..PageCount、表紙なら 0 です。
type GeneratedImage struct {
	Role     ImageRole
	Ordinal  int
	Data     []byte
	MIMEType string
}

// NewCoverImage は表紙用の GeneratedImage を組み立てます。
func NewCoverImage(resp *ImageResponse) GeneratedImage {
	return GeneratedImage{Role: RoleCover, Data: resp.Data, MIMEType: resp.MIMEType}
}

// NewPageImage は ordinal ページ目の GeneratedImage を組み立てます。
func NewPageImage(ordinal int, resp *ImageResponse) GeneratedImage {
	return GeneratedImage{Role: RolePage, Ordinal: ordinal, Data: resp.Data, MIMEType: resp.MIMEType}
}

// Label は画面表示用のラベルを返します。
func (g GeneratedImage) Label() string {
	if g.Role == RoleCover {
		return "Cover Page"
	}
	return fmt.Sprintf("Page %d", g.Ordinal)
}
