package embedding

import (
	"fmt"
	"time"

	"ai-contact-search-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

type Settings struct {
	Provider string // "openai" or "compat"
	Model    string
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
	Cache    string // "memory", "redis" or "none"
	CacheTTL time.Duration
}

// NewProvider builds the configured provider and wraps it with the query cache.
// rdb is only used when Cache is "redis".
func NewProvider(s Settings, rdb *redis.Client, log logger.ILogger) (EmbeddingProvider, error) {
	var provider EmbeddingProvider
	model := s.Model

	switch s.Provider {
	case "", "openai":
		if s.APIKey == "" && s.BaseURL == "" {
			return nil, fmt.Errorf("openai embedding provider requires OPENAI_API_KEY")
		}
		if model == "" {
			model = DefaultOpenAIModel
		}
		provider = NewOpenAIProvider(s.APIKey, s.BaseURL, model, s.Timeout)
	case "compat":
		if model == "" {
			model = DefaultCompatModel
		}
		p, err := NewCompatProvider(s.BaseURL, model, s.APIKey)
		if err != nil {
			return nil, err
		}
		provider = p
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", s.Provider)
	}

	ttl := s.CacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	switch s.Cache {
	case "", "none":
		return provider, nil
	case "memory":
		return NewCachedProvider(provider, NewMemoryCache(ttl), model, log), nil
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("redis embedding cache requires a redis client")
		}
		return NewCachedProvider(provider, NewRedisCache(rdb, ttl), model, log), nil
	default:
		return nil, fmt.Errorf("unsupported embedding cache: %s", s.Cache)
	}
}
