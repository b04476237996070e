package builder

import (
	"context"
	"fmt"

	"coloring-book-web/internal/adapters"
	"coloring-book-web/internal/app"
	"coloring-book-web/internal/chat"
	"coloring-book-web/internal/config"
	"coloring-book-web/internal/pipeline"
	"coloring-book-web/internal/publisher"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"google.golang.org/genai"
)

// BuildContainer は外部サービスとの接続を確立し、依存関係を組み立てます。
func BuildContainer(ctx context.Context, cfg *config.Config) (*app.Container, error) {
	// 1. 基盤クライアントの初期化
	httpClient := httpkit.New(config.DefaultHTTPTimeout)

	aiClient, err := initializeAIClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, err
	}

	// 2. アダプターの初期化
	images := adapters.NewImagenAdapter(aiClient.Models, cfg.ImageModel, cfg.AspectRatio, cfg.ImageMIMEType)
	conversation := adapters.NewGeminiChatAdapter(
		adapters.NewGenaiChatStarter(aiClient, cfg.ChatModel),
		cfg.ChatSessionTTL,
	)

	slack, err := adapters.NewSlackAdapter(httpClient, cfg.SlackWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Slack adapter: %w", err)
	}

	// 3. ビジネスロジックの組み立て
	return &app.Container{
		Config:        cfg,
		Pipeline:      pipeline.NewBookPipeline(images, slack, cfg.RateInterval),
		Chats:         chat.NewRegistry(conversation, cfg.ChatSessionTTL),
		Assembler:     publisher.NewAssembler(publisher.NewFpdfDocument, cfg.PageSize),
		HTTPClient:    httpClient,
		Images:        images,
		Conversation:  conversation,
		SlackNotifier: slack,
	}, nil
}

// initializeAIClient は Gemini API 用の genai クライアントを初期化します。
func initializeAIClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return client, nil
}
