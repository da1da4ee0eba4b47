package factory

import (
	"fmt"
	"time"

	"ai-contact-search-be/internal/pkg/logger"
	"ai-contact-search-be/pkg/llm"
	"ai-contact-search-be/pkg/llm/compat"
	"ai-contact-search-be/pkg/llm/openai"
)

type Settings struct {
	Provider       string // "openai" or "compat"
	Model          string
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	BreakerEnabled bool
}

func NewLLMProvider(s Settings, log logger.ILogger) (llm.LLMProvider, error) {
	var provider llm.LLMProvider

	switch s.Provider {
	case "", "openai":
		if s.APIKey == "" && s.BaseURL == "" {
			return nil, fmt.Errorf("openai LLM provider requires OPENAI_API_KEY")
		}
		provider = openai.NewOpenAIProvider(s.APIKey, s.BaseURL, s.Model, s.Timeout)
	case "compat":
		baseURL := s.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434/v1" // Ollama default
		}
		p, err := compat.NewCompatProvider(baseURL, s.Model, s.APIKey)
		if err != nil {
			return nil, err
		}
		provider = p
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", s.Provider)
	}

	if s.BreakerEnabled {
		provider = llm.NewBreakerProvider(provider, llm.DefaultBreakerSettings("llm-"+s.Provider), log)
	}
	return provider, nil
}
