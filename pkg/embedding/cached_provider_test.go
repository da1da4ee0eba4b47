package embedding

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-contact-search-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProvider struct {
	calls int
	vec   []float32
	err   error
}

func (p *countingProvider) Generate(ctx context.Context, text string) ([]float32, error) {
	p.calls++
	return p.vec, p.err
}

type brokenCache struct{}

func (brokenCache) Get(ctx context.Context, key string) ([]float32, bool, error) {
	return nil, false, errors.New("cache down")
}

func (brokenCache) Set(ctx context.Context, key string, vec []float32) error {
	return errors.New("cache down")
}

func TestCachedProviderMemoizes(t *testing.T) {
	next := &countingProvider{vec: []float32{0.1, 0.2}}
	p := NewCachedProvider(next, NewMemoryCache(time.Minute), "m", logger.NewNopLogger())
	ctx := context.Background()

	first, err := p.Generate(ctx, "plumber")
	require.NoError(t, err)
	second, err := p.Generate(ctx, "plumber")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, next.calls)

	_, err = p.Generate(ctx, "baker")
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestCachedProviderBypassesBrokenCache(t *testing.T) {
	next := &countingProvider{vec: []float32{1}}
	p := NewCachedProvider(next, brokenCache{}, "m", logger.NewNopLogger())

	for i := 0; i < 2; i++ {
		vec, err := p.Generate(context.Background(), "q")
		require.NoError(t, err)
		assert.Equal(t, []float32{1}, vec)
	}
	assert.Equal(t, 2, next.calls)
}

func TestCachedProviderDoesNotCacheErrors(t *testing.T) {
	next := &countingProvider{err: errors.New("timeout")}
	p := NewCachedProvider(next, NewMemoryCache(time.Minute), "m", logger.NewNopLogger())

	_, err := p.Generate(context.Background(), "q")
	assert.Error(t, err)

	next.err = nil
	next.vec = []float32{0.5}
	vec, err := p.Generate(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5}, vec)
}

func TestRedisCacheUnreachableFallsThrough(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	next := &countingProvider{vec: []float32{0.3}}
	p := NewCachedProvider(next, NewRedisCache(rdb, time.Minute), "m", logger.NewNopLogger())

	vec, err := p.Generate(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.3}, vec)
}

func TestCacheKey(t *testing.T) {
	assert.Len(t, CacheKey("m", "q"), 64)
	assert.Equal(t, CacheKey("m", "q"), CacheKey("m", "q"))
	assert.NotEqual(t, CacheKey("m1", "q"), CacheKey("m2", "q"))
}

func TestNewProvider(t *testing.T) {
	log := logger.NewNopLogger()

	p, err := NewProvider(Settings{Provider: "openai", APIKey: "sk-test", Cache: "none"}, nil, log)
	require.NoError(t, err)
	assert.IsType(t, &OpenAIProvider{}, p)

	p, err = NewProvider(Settings{Provider: "openai", APIKey: "sk-test", Cache: "memory"}, nil, log)
	require.NoError(t, err)
	assert.IsType(t, &CachedProvider{}, p)

	p, err = NewProvider(Settings{Provider: "compat", Cache: "none"}, nil, log)
	require.NoError(t, err)
	assert.IsType(t, &CompatProvider{}, p)

	_, err = NewProvider(Settings{Provider: "openai", APIKey: "sk-test", Cache: "redis"}, nil, log)
	assert.Error(t, err)

	_, err = NewProvider(Settings{Provider: "gemini"}, nil, log)
	assert.ErrorContains(t, err, "unsupported")

	_, err = NewProvider(Settings{Provider: "openai"}, nil, log)
	assert.Error(t, err)
}

func TestNewProviderKeysCacheByResolvedModel(t *testing.T) {
	log := logger.NewNopLogger()

	p, err := NewProvider(Settings{Provider: "openai", APIKey: "sk-test", Cache: "memory"}, nil, log)
	require.NoError(t, err)
	cached := p.(*CachedProvider)
	assert.Equal(t, DefaultOpenAIModel, cached.model)
	assert.Equal(t, DefaultOpenAIModel, cached.next.(*OpenAIProvider).Model)

	p, err = NewProvider(Settings{Provider: "compat", Cache: "memory"}, nil, log)
	require.NoError(t, err)
	assert.Equal(t, DefaultCompatModel, p.(*CachedProvider).model)

	p, err = NewProvider(Settings{Provider: "openai", APIKey: "sk-test", Model: "text-embedding-3-large", Cache: "memory"}, nil, log)
	require.NoError(t, err)
	assert.Equal(t, "text-embedding-3-large", p.(*CachedProvider).model)
}
