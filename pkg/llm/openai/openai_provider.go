package openai

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	"ai-contact-search-be/pkg/llm"

	goopenai "github.com/sashabaranov/go-openai"
)

const DefaultModel = "gpt-4.1-mini"

type OpenAIProvider struct {
	client    *goopenai.Client
	ModelName string
}

// Ensure OpenAIProvider implements LLMProvider
var _ llm.LLMProvider = &OpenAIProvider{}

// NewOpenAIProvider builds a chat client. baseURL may point at any
// OpenAI-compatible endpoint; empty means api.openai.com.
func NewOpenAIProvider(apiKey, baseURL, modelName string, timeout time.Duration) *OpenAIProvider {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: timeout}
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	return &OpenAIProvider{
		client:    goopenai.NewClientWithConfig(cfg),
		ModelName: modelName,
	}
}

func (p *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.Apply(opts...)

	messages := make([]goopenai.ChatCompletionMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = goopenai.ChatMessageRoleAssistant
		}
		messages[i] = goopenai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		}
	}

	model := p.ModelName
	if options.Model != "" {
		model = options.Model
	}

	req := goopenai.ChatCompletionRequest{
		Model:    model,
		Messages: messages,
	}
	if options.Temperature != nil {
		// A zero temperature is dropped by omitempty, so send the smallest float instead.
		temp := float32(*options.Temperature)
		if temp == 0 {
			temp = math.SmallestNonzeroFloat32
		}
		req.Temperature = temp
	}
	if options.MaxTokens > 0 {
		req.MaxTokens = options.MaxTokens
	}
	if options.JSONMode {
		req.ResponseFormat = &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from openai")
	}

	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	history := []llm.Message{
		{Role: goopenai.ChatMessageRoleUser, Content: prompt},
	}
	return p.Chat(ctx, history, opts...)
}
