package pipeline

import (
	"context"
	"errors"
	"fmt"

	"coloring-book-web/internal/domain"
	"coloring-book-web/internal/prompt"
)

// runCoverStep は表紙画像を 1 枚生成して状態に反映します。
func (p *BookPipeline) runCoverStep(ctx context.Context, exec *bookExecution) error {
	resp, err := p.generate(ctx, prompt.BuildCoverPrompt(exec.request))
	if err != nil {
		return err
	}
	_, err = p.apply(domain.ImageReceived{Image: domain.NewCoverImage(resp)})
	return err
}

// runPageStep は ordinal ページ目の画像を 1 枚生成して状態に反映します。
func (p *BookPipeline) runPageStep(ctx context.Context, exec *bookExecution, ordinal int) error {
	resp, err := p.generate(ctx, prompt.BuildPagePrompt(exec.request, ordinal))
	if err != nil {
		return err
	}
	_, err = p.apply(domain.ImageReceived{Image: domain.NewPageImage(ordinal, resp)})
	return err
}

// generate は間隔制限を守って画像生成クライアントを 1 回だけ呼び出します。
// 返すエラーは常に domain.ErrGeneration を含みます。
func (p *BookPipeline) generate(ctx context.Context, text string) (*domain.ImageResponse, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", domain.ErrGeneration, err)
	}

	resp, err := p.images.GenerateImage(ctx, text)
	if err != nil {
		if errors.Is(err, domain.ErrGeneration) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}
	if resp == nil || len(resp.Data) == 0 {
		return nil, fmt.Errorf("%w: empty image", domain.ErrGeneration)
	}
	return resp, nil
}
