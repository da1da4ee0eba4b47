package compat

import (
	"context"
	"fmt"

	"ai-contact-search-be/pkg/llm"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// CompatProvider talks to local OpenAI-compatible servers (Ollama, LM Studio, vLLM)
// through langchaingo.
type CompatProvider struct {
	client    llms.Model
	ModelName string
}

var _ llm.LLMProvider = &CompatProvider{}

func NewCompatProvider(baseURL, modelName, token string) (*CompatProvider, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("compat provider requires a base URL")
	}
	// Local servers usually ignore the token but the client refuses an empty one.
	if token == "" {
		token = "none"
	}

	client, err := openai.New(
		openai.WithBaseURL(baseURL),
		openai.WithToken(token),
		openai.WithModel(modelName),
	)
	if err != nil {
		return nil, err
	}

	return &CompatProvider{client: client, ModelName: modelName}, nil
}

func toMessageType(role string) llms.ChatMessageType {
	switch role {
	case "system":
		return llms.ChatMessageTypeSystem
	case "assistant", "model":
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}

func (p *CompatProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.Apply(opts...)

	content := make([]llms.MessageContent, len(history))
	for i, msg := range history {
		content[i] = llms.MessageContent{
			Role:  toMessageType(msg.Role),
			Parts: []llms.ContentPart{llms.TextPart(msg.Content)},
		}
	}

	var callOpts []llms.CallOption
	if options.Temperature != nil {
		callOpts = append(callOpts, llms.WithTemperature(*options.Temperature))
	}
	if options.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(options.MaxTokens))
	}
	if options.Model != "" {
		callOpts = append(callOpts, llms.WithModel(options.Model))
	}
	if options.JSONMode {
		callOpts = append(callOpts, llms.WithJSONMode())
	}

	resp, err := p.client.GenerateContent(ctx, content, callOpts...)
	if err != nil {
		return "", fmt.Errorf("compat chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from compat provider")
	}

	return resp.Choices[0].Content, nil
}

func (p *CompatProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
