package search

import (
	"context"
	"fmt"
	"time"

	"ai-contact-search-be/internal/pkg/logger"
	"ai-contact-search-be/pkg/embedding"
	"ai-contact-search-be/pkg/rag"
	"ai-contact-search-be/pkg/retrieval"
)

type CandidateRetriever interface {
	Retrieve(ctx context.Context, userId int64, query retrieval.Vector, topK int) ([]retrieval.Candidate, error)
}

type Judge interface {
	Judge(ctx context.Context, query string, candidates []retrieval.Candidate, maxSelected int) (rag.Judgments, error)
}

// Orchestrator runs the two-stage contact search: vector retrieval, then
// relevance filtering by the reasoning provider.
type Orchestrator struct {
	embeddingProvider embedding.EmbeddingProvider
	retriever         CandidateRetriever
	judge             Judge
	logger            logger.ILogger
}

func NewOrchestrator(
	embeddingProvider embedding.EmbeddingProvider,
	retriever CandidateRetriever,
	judge Judge,
	logger logger.ILogger,
) *Orchestrator {
	return &Orchestrator{
		embeddingProvider: embeddingProvider,
		retriever:         retriever,
		judge:             judge,
		logger:            logger,
	}
}

// Config encapsulates search parameters
type Config struct {
	TopK             int // candidates sent to the reasoning provider
	MaxSelected      int // hint passed to the provider
	TopN             int // results returned
	EmbeddingTimeout time.Duration
}

// DefaultConfig returns default search configuration
func DefaultConfig() Config {
	return Config{
		TopK:             retrieval.DefaultTopK,
		MaxSelected:      rag.DefaultTopN,
		TopN:             rag.DefaultTopN,
		EmbeddingTimeout: rag.DefaultProviderTimeout,
	}
}

// Execute returns at most cfg.TopN confirmed contacts for the query. Provider
// failures are returned as *rag.ProviderError.
func (o *Orchestrator) Execute(ctx context.Context, userId int64, query string, cfg Config) ([]rag.FinalResult, error) {
	start := time.Now()

	vec, err := o.embed(ctx, query, cfg.EmbeddingTimeout)
	if err != nil {
		return nil, err
	}

	candidates, err := o.retriever.Retrieve(ctx, userId, vec, cfg.TopK)
	if err != nil {
		return nil, fmt.Errorf("retrieve candidates: %w", err)
	}
	if len(candidates) == 0 {
		o.logger.Info("SEARCH", "No candidates for user", map[string]interface{}{"user_id": userId})
		return []rag.FinalResult{}, nil
	}

	judgments, err := o.judge.Judge(ctx, query, candidates, cfg.MaxSelected)
	if err != nil {
		return nil, err
	}

	results := rag.Compose(candidates, judgments, cfg.TopN)

	o.logger.Info("SEARCH", "Search completed", map[string]interface{}{
		"user_id":     userId,
		"candidates":  len(candidates),
		"judgments":   len(judgments),
		"results":     len(results),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return results, nil
}

func (o *Orchestrator) embed(ctx context.Context, query string, timeout time.Duration) (retrieval.Vector, error) {
	ctx, cancel := context.WithTimeout(ctx, rag.ProviderTimeout(timeout))
	defer cancel()

	vec, err := o.embeddingProvider.Generate(ctx, query)
	if err != nil {
		return nil, rag.NewProviderError(rag.StageEmbedding, err)
	}
	return retrieval.Vector(vec), nil
}
