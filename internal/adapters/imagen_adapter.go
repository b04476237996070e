package adapters

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"

	"coloring-book-web/internal/domain"

	"google.golang.org/genai"
)

// --- インターフェース定義 ---

// ImageGenerator は 1 つのプロンプトから 1 枚の塗り絵画像を生成します。
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (*domain.ImageResponse, error)
}

// ImagesAPI は genai の Models が満たす画像生成 API の最小インターフェースです。
type ImagesAPI interface {
	GenerateImages(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

// --- 具象アダプター ---

// ImagenAdapter は Imagen モデルを呼び出して画像を 1 枚ずつ取得します。
// リトライやキャッシュは行いません。
type ImagenAdapter struct {
	api         ImagesAPI
	model       string
	aspectRatio string
	mimeType    string
}

// NewImagenAdapter は ImagenAdapter を生成します。
func NewImagenAdapter(api ImagesAPI, model, aspectRatio, mimeType string) *ImagenAdapter {
	return &ImagenAdapter{
		api:         api,
		model:       model,
		aspectRatio: aspectRatio,
		mimeType:    mimeType,
	}
}

// GenerateImage は画像を 1 枚要求し、デコード可能な画像データを返します。
// API エラー、空の応答、安全フィルターによる除外はすべて domain.ErrGeneration として返します。
func (a *ImagenAdapter) GenerateImage(ctx context.Context, prompt string) (*domain.ImageResponse, error) {
	resp, err := a.api.GenerateImages(ctx, a.model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		OutputMIMEType: a.mimeType,
		AspectRatio:    a.aspectRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: imagen request failed: %v", domain.ErrGeneration, err)
	}
	if resp == nil || len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0] == nil {
		return nil, fmt.Errorf("%w: no images returned", domain.ErrGeneration)
	}

	generated := resp.GeneratedImages[0]
	if generated.RAIFilteredReason != "" {
		return nil, fmt.Errorf("%w: image filtered: %s", domain.ErrGeneration, generated.RAIFilteredReason)
	}
	if generated.Image == nil || len(generated.Image.ImageBytes) == 0 {
		return nil, fmt.Errorf("%w: empty image payload", domain.ErrGeneration)
	}

	data := generated.Image.ImageBytes
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: undecodable image data: %v", domain.ErrGeneration, err)
	}
	if !matchesAspect(cfg.Width, cfg.Height, a.aspectRatio) {
		slog.WarnContext(ctx, "生成画像の縦横比が想定と異なります",
			"width", cfg.Width, "height", cfg.Height, "expected", a.aspectRatio)
	}

	mimeType := generated.Image.MIMEType
	if mimeType == "" {
		mimeType = "image/" + format
	}

	slog.DebugContext(ctx, "Image generated", "model", a.model, "bytes", len(data), "mime_type", mimeType)
	return &domain.ImageResponse{Data: data, MIMEType: mimeType}, nil
}

// matchesAspect は "W:H" 形式の比率と実寸を 1% の誤差で比較します。
func matchesAspect(width, height int, ratio string) bool {
	var rw, rh int
	if _, err := fmt.Sscanf(ratio, "%d:%d", &rw, &rh); err != nil || rw <= 0 || rh <= 0 || height == 0 {
		return true
	}
	got := float64(width) / float64(height)
	want := float64(rw) / float64(rh)
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	return diff <= want*0.01
}
