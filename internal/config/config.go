package config

import (
	"log/slog"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/shouni/go-utils/envutil"
)

const (
	DefaultImageModel = "imagen-4.0-generate-001"
	DefaultChatModel  = "gemini-2.5-flash"
	// DefaultAspectRatio は塗り絵ページの縦横比です。
	DefaultAspectRatio = "4:3"
	DefaultImageMIME   = "image/jpeg"
	// DefaultRateInterval は連続する画像生成呼び出しの最小間隔です。0 なら待機しません。
	DefaultRateInterval = 0 * time.Second
	// DefaultHTTPTimeout は通知用 HTTP クライアントのタイムアウトです。
	DefaultHTTPTimeout = 30 * time.Second
	// DefaultChatSessionTTL は最後の発言からチャットセッションを保持する時間です。
	DefaultChatSessionTTL  = 2 * time.Hour
	DefaultShutdownTimeout = 15 * time.Second
	DefaultPageSize        = "A4"
)

// Config は環境変数から読み込まれたアプリケーションの全設定を保持します。
type Config struct {
	ServiceURL      string
	Port            string
	GeminiAPIKey    string
	ImageModel      string // 塗り絵画像の生成モデル (Imagen)
	ChatModel       string // チャットウィジェット用モデル
	AspectRatio     string
	ImageMIMEType   string
	RateInterval    time.Duration
	ChatSessionTTL  time.Duration
	PageSize        string // PDF の用紙サイズ
	SlackWebhookURL string
	TemplateDir     string // HTMLテンプレートの格納ディレクトリ
	ShutdownTimeout time.Duration
}

// LoadConfig は環境変数から設定を読み込み、Config 構造体を生成します。
func LoadConfig() *Config {
	// 実行環境（Cloud Run, ko）に応じたパスの解決
	baseDir := "."
	if os.Getenv("KO_DATA_PATH") != "" || os.Getenv("K_SERVICE") != "" {
		baseDir = "/app"
	}

	return &Config{
		ServiceURL:      envutil.GetEnv("SERVICE_URL", "http://localhost:8080"),
		Port:            envutil.GetEnv("PORT", "8080"),
		GeminiAPIKey:    envutil.GetEnv("GEMINI_API_KEY", ""),
		ImageModel:      envutil.GetEnv("IMAGE_MODEL", DefaultImageModel),
		ChatModel:       envutil.GetEnv("CHAT_MODEL", DefaultChatModel),
		AspectRatio:     DefaultAspectRatio,
		ImageMIMEType:   DefaultImageMIME,
		RateInterval:    getDuration("IMAGE_RATE_INTERVAL", DefaultRateInterval),
		ChatSessionTTL:  getDuration("CHAT_SESSION_TTL", DefaultChatSessionTTL),
		PageSize:        envutil.GetEnv("PDF_PAGE_SIZE", DefaultPageSize),
		SlackWebhookURL: envutil.GetEnv("SLACK_WEBHOOK_URL", ""),
		TemplateDir:     path.Join(baseDir, "templates"),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
	}
}

// getDuration は "30s" のような time.Duration 形式か、秒数の整数を受け付けます。
// 解析できない値はデフォルトに戻します。
func getDuration(key string, fallback time.Duration) time.Duration {
	raw := envutil.GetEnv(key, "")
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if sec, err := strconv.Atoi(raw); err == nil {
		return time.Duration(sec) * time.Second
	}
	slog.Warn("Invalid duration in environment, using default", "key", key, "value", raw, "default", fallback)
	return fallback
}
