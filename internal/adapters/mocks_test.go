package adapters

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"testing"

	"google.golang.org/genai"
)

// mockImagesAPI は ImagesAPI のテスト用モックです。
type mockImagesAPI struct {
	generateFunc func(model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
	calls        int
}

func (m *mockImagesAPI) GenerateImages(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
	m.calls++
	if m.generateFunc != nil {
		return m.generateFunc(model, prompt, config)
	}
	return nil, nil
}

// mockChatSession は ChatSession のテスト用モックです。
type mockChatSession struct {
	sendFunc func(parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

func (m *mockChatSession) SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	if m.sendFunc != nil {
		return m.sendFunc(parts...)
	}
	return nil, nil
}

// mockSlackSender は go-notifier の Slack クライアントの代わりです。
type mockSlackSender struct {
	err     error
	headers []string
	bodies  []string
}

func (m *mockSlackSender) SendTextWithHeader(ctx context.Context, header, message string) error {
	m.headers = append(m.headers, header)
	m.bodies = append(m.bodies, message)
	return m.err
}

// textResponse は 1 つのテキストパーツを持つ応答を組み立てます。
func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Role: "model", Parts: []*genai.Part{{Text: text}}}},
		},
	}
}

// testJPEG は指定サイズの白い JPEG を生成します。
func testJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode test jpeg: %v", err)
	}
	return buf.Bytes()
}
