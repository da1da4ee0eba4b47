package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ai-contact-search-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatSendsJSONModeAndZeroTemperature(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","model":"gpt-4.1-mini","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"{\"results\":[]}"}}]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-test", srv.URL, "", 5*time.Second)
	out, err := p.Chat(context.Background(), []llm.Message{
		{Role: "system", Content: "strict"},
		{Role: "user", Content: "{}"},
	}, llm.WithTemperature(0), llm.WithJSONMode())
	require.NoError(t, err)
	assert.Equal(t, `{"results":[]}`, out)

	assert.Equal(t, DefaultModel, body["model"])
	temp, ok := body["temperature"].(float64)
	require.True(t, ok, "temperature must be sent even when zero")
	assert.InDelta(t, 0, temp, 1e-6)
	format, _ := body["response_format"].(map[string]interface{})
	assert.Equal(t, "json_object", format["type"])

	messages, _ := body["messages"].([]interface{})
	assert.Len(t, messages, 2)
}

func TestChatNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-test", srv.URL, "m", 5*time.Second)
	_, err := p.Generate(context.Background(), "hi")
	assert.ErrorContains(t, err, "no choices")
}
