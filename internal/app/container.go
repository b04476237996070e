package app

import (
	"coloring-book-web/internal/adapters"
	"coloring-book-web/internal/chat"
	"coloring-book-web/internal/config"
	"coloring-book-web/internal/pipeline"
	"coloring-book-web/internal/publisher"

	"github.com/shouni/go-http-kit/pkg/httpkit"
)

// Container はアプリケーションの依存関係（DIコンテナ）を保持します。
type Container struct {
	Config *config.Config

	// Business Logic
	Pipeline  *pipeline.BookPipeline
	Chats     *chat.Registry
	Assembler *publisher.Assembler

	// External Adapters
	HTTPClient    httpkit.ClientInterface
	Images        adapters.ImageGenerator
	Conversation  adapters.ConversationClient
	SlackNotifier adapters.SlackNotifier
}
