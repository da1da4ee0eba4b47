package embedding

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

const DefaultCompatModel = "nomic-embed-text"

// CompatProvider embeds through any OpenAI-compatible server (e.g. Ollama's /v1).
type CompatProvider struct {
	embedder embeddings.Embedder
}

func NewCompatProvider(baseURL, model, token string) (EmbeddingProvider, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434/v1"
	}
	if model == "" {
		model = DefaultCompatModel
	}
	if token == "" {
		token = "none"
	}

	client, err := openai.New(
		openai.WithBaseURL(baseURL),
		openai.WithToken(token),
		openai.WithEmbeddingModel(model),
	)
	if err != nil {
		return nil, err
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}
	return &CompatProvider{embedder: embedder}, nil
}

func (p *CompatProvider) Generate(ctx context.Context, text string) ([]float32, error) {
	vec, err := p.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("compat embedding failed: %w", err)
	}
	if len(vec) == 0 {
		return nil, fmt.Errorf("compat provider returned no embedding")
	}
	return vec, nil
}
