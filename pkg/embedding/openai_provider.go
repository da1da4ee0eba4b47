package embedding

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
)

const DefaultOpenAIModel = "text-embedding-3-small"

// OpenAIProvider implements EmbeddingProvider with the OpenAI embeddings API.
type OpenAIProvider struct {
	client *openai.Client
	Model  string
}

func NewOpenAIProvider(apiKey, baseURL, model string, timeout time.Duration) EmbeddingProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: timeout}
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cfg),
		Model:  model,
	}
}

func (p *OpenAIProvider) Generate(ctx context.Context, text string) ([]float32, error) {
	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(p.Model),
	})
	if err != nil {
		return nil, fmt.Errorf("openai embedding failed: %w", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("openai returned no embedding")
	}
	return resp.Data[0].Embedding, nil
}
