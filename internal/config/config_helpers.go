package config

import (
	"fmt"
	"strings"

	"github.com/shouni/netarmor/securenet"
)

var supportedPageSizes = map[string]bool{
	"A3": true, "A4": true, "A5": true, "LETTER": true, "LEGAL": true,
}

// --- バリデーション ---

// ValidateEssentialConfig はアプリケーション実行に不可欠な設定を検証します。
// APIキーが無い場合、画像生成・会話クライアントは初期化できないため起動を中止します。
func ValidateEssentialConfig(cfg *Config) error {
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("configuration error: GEMINI_API_KEY is not set")
	}

	if !IsSecureURL(cfg.ServiceURL) {
		return fmt.Errorf("security error: SERVICE_URL ('%s') must be HTTPS in production", cfg.ServiceURL)
	}

	if !supportedPageSizes[strings.ToUpper(cfg.PageSize)] {
		return fmt.Errorf("configuration error: PDF_PAGE_SIZE '%s' はサポートされていません", cfg.PageSize)
	}

	if cfg.RateInterval < 0 {
		return fmt.Errorf("configuration error: IMAGE_RATE_INTERVAL must not be negative")
	}

	return nil
}

// IsSecureURL は指定された URL が HTTPS または localhost であるか判定します。
func IsSecureURL(rawURL string) bool {
	return securenet.IsSecureServiceURL(rawURL)
}
