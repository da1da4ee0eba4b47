package rag

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"ai-contact-search-be/internal/constant"
	"ai-contact-search-be/internal/pkg/logger"
	"ai-contact-search-be/pkg/llm"
	"ai-contact-search-be/pkg/retrieval"
)

const (
	DefaultProfileTextBudget = 800
	DefaultProviderTimeout   = 30 * time.Second
)

// ProviderTimeout returns d, or DefaultProviderTimeout when d is not positive.
// Provider calls always run under a deadline.
func ProviderTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultProviderTimeout
	}
	return d
}

type FilterConfig struct {
	ProfileTextBudget int           // max runes of profile text per candidate
	Timeout           time.Duration // per reasoning call, <= 0 means DefaultProviderTimeout
	Model             string        // overrides the provider default when set
}

func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		ProfileTextBudget: DefaultProfileTextBudget,
		Timeout:           DefaultProviderTimeout,
	}
}

// Filter asks the reasoning provider which candidates actually satisfy a query.
type Filter struct {
	provider llm.LLMProvider
	logger   logger.ILogger
	config   FilterConfig
}

func NewFilter(provider llm.LLMProvider, logger logger.ILogger, config FilterConfig) *Filter {
	if config.ProfileTextBudget <= 0 {
		config.ProfileTextBudget = DefaultProfileTextBudget
	}
	return &Filter{provider: provider, logger: logger, config: config}
}

type filterCandidate struct {
	Idx         int    `json:"idx"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	ProfileText string `json:"profile_text"`
}

type filterInstructions struct {
	ReturnFormat map[string]interface{} `json:"return_format"`
	MaxSelected  int                    `json:"max_selected"`
}

type filterPayload struct {
	Query        string             `json:"query"`
	Candidates   []filterCandidate  `json:"candidates"`
	Instructions filterInstructions `json:"instructions"`
}

// judgmentSchema is sent with every request so the reply shape is declared up front.
var judgmentSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"results": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"idx":        map[string]string{"type": "integer"},
					"match":      map[string]string{"type": "boolean"},
					"confidence": map[string]string{"type": "number"},
					"reason":     map[string]string{"type": "string"},
				},
				"required": []string{"idx", "match", "confidence", "reason"},
			},
		},
	},
	"required": []string{"results"},
}

// BuildPayload renders the user message for one reasoning call.
func (f *Filter) BuildPayload(query string, candidates []retrieval.Candidate, maxSelected int) (string, error) {
	packed := make([]filterCandidate, len(candidates))
	for i, c := range candidates {
		packed[i] = filterCandidate{
			Idx:         c.Index,
			Name:        c.Name,
			Phone:       c.Phone,
			ProfileText: trimProfileText(c.ProfileText, f.config.ProfileTextBudget),
		}
	}

	payload := filterPayload{
		Query:      query,
		Candidates: packed,
		Instructions: filterInstructions{
			ReturnFormat: judgmentSchema,
			MaxSelected:  maxSelected,
		},
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal filter payload: %w", err)
	}
	return string(b), nil
}

func trimProfileText(text string, budget int) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return constant.NoProfileText
	}
	runes := []rune(text)
	if len(runes) > budget {
		return string(runes[:budget])
	}
	return text
}

// Judge returns the provider's verdicts keyed by candidate index. A failed
// call is a *ProviderError; an unusable reply is logged and yields no verdicts.
func (f *Filter) Judge(ctx context.Context, query string, candidates []retrieval.Candidate, maxSelected int) (Judgments, error) {
	if len(candidates) == 0 {
		return Judgments{}, nil
	}

	payload, err := f.BuildPayload(query, candidates, maxSelected)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, ProviderTimeout(f.config.Timeout))
	defer cancel()

	opts := []llm.Option{llm.WithTemperature(0), llm.WithJSONMode()}
	if f.config.Model != "" {
		opts = append(opts, llm.WithModel(f.config.Model))
	}

	history := []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: constant.ContactFilterSystemPrompt},
		{Role: constant.ChatMessageRoleUser, Content: payload},
	}

	start := time.Now()
	reply, err := f.provider.Chat(ctx, history, opts...)
	if err != nil {
		return nil, NewProviderError(StageReasoning, err)
	}

	judgments, err := ParseJudgments(reply, len(candidates))
	if err != nil {
		if errors.Is(err, ErrSchemaViolation) {
			f.logger.Warn("RELEVANCE_FILTER", "Discarding unusable reasoning reply", map[string]interface{}{
				"error":      err.Error(),
				"candidates": len(candidates),
			})
			return Judgments{}, nil
		}
		return nil, err
	}

	f.logger.Debug("RELEVANCE_FILTER", "Candidates judged", map[string]interface{}{
		"candidates":  len(candidates),
		"judgments":   len(judgments),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return judgments, nil
}
