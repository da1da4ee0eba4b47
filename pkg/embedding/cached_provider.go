package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"ai-contact-search-be/internal/pkg/logger"
)

// CachedProvider memoizes query vectors. Cache failures fall through to the
// wrapped provider.
type CachedProvider struct {
	next   EmbeddingProvider
	cache  VectorCache
	model  string
	logger logger.ILogger
}

func NewCachedProvider(next EmbeddingProvider, cache VectorCache, model string, logger logger.ILogger) *CachedProvider {
	return &CachedProvider{next: next, cache: cache, model: model, logger: logger}
}

// CacheKey is the hex SHA-256 of model and text, so switching models never
// returns vectors of the wrong space.
func CacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

func (p *CachedProvider) Generate(ctx context.Context, text string) ([]float32, error) {
	key := CacheKey(p.model, text)

	vec, ok, err := p.cache.Get(ctx, key)
	if err != nil {
		p.logger.Warn("EMBEDDING_CACHE", "Cache read failed, calling provider", map[string]interface{}{"error": err.Error()})
	} else if ok {
		return vec, nil
	}

	vec, err = p.next.Generate(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := p.cache.Set(ctx, key, vec); err != nil {
		p.logger.Warn("EMBEDDING_CACHE", "Cache write failed", map[string]interface{}{"error": err.Error()})
	}
	return vec, nil
}
