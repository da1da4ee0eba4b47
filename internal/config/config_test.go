package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "text-embedding-3-small", cfg.Ai.EmbeddingModel)
	assert.Equal(t, "gpt-4.1-mini", cfg.Ai.LLMModel)
	assert.Equal(t, 20, cfg.Search.TopK)
	assert.Equal(t, 5, cfg.Search.MaxSelected)
	assert.Equal(t, 5, cfg.Search.TopN)
	assert.Equal(t, 800, cfg.Search.ProfileTextBudget)
	assert.Equal(t, "filter", cfg.Referral.Policy)
	assert.InDelta(t, 0.20, cfg.Referral.MinScore, 1e-9)
	assert.True(t, cfg.Ai.LLMBreakerEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("SEARCH_TOP_K", "50")
	t.Setenv("REFERRAL_MIN_SCORE", "0.35")
	t.Setenv("REFERRAL_POLICY", "threshold")
	t.Setenv("LLM_BREAKER_ENABLED", "false")
	t.Setenv("PROVIDER_TIMEOUT_SECONDS", "not-a-number")

	cfg := Load()

	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 50, cfg.Search.TopK)
	assert.InDelta(t, 0.35, cfg.Referral.MinScore, 1e-9)
	assert.Equal(t, "threshold", cfg.Referral.Policy)
	assert.False(t, cfg.Ai.LLMBreakerEnabled)
	assert.Equal(t, 30, cfg.Ai.ProviderTimeoutSecs, "unparseable values fall back to the default")
}

func TestLoadNonPositiveProviderTimeoutFallsBack(t *testing.T) {
	for _, v := range []string{"0", "-5"} {
		t.Setenv("PROVIDER_TIMEOUT_SECONDS", v)
		assert.Equal(t, 30, Load().Ai.ProviderTimeoutSecs, v)
	}
}
