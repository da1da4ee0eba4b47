package serverutils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"ai-contact-search-be/internal/pkg/logger"
	"ai-contact-search-be/pkg/rag"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	UserID int64  `json:"user_id" validate:"required,gt=0"`
	Prompt string `json:"prompt" validate:"required,notblank"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sampleRequest{UserID: 1, Prompt: "plumber"}))

	err := ValidateRequest(sampleRequest{UserID: 0, Prompt: "   "})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "user_id")
	assert.Equal(t, "must not be blank", ve.Fields["prompt"])
}

func statusFor(t *testing.T, handlerErr error) (int, Response) {
	t.Helper()
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(logger.NewNopLogger()))
	app.Get("/", func(c *fiber.Ctx) error { return handlerErr })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)

	var r Response
	require.NoError(t, json.Unmarshal(body, &r))
	return resp.StatusCode, r
}

func TestErrorHandlerMapping(t *testing.T) {
	code, r := statusFor(t, &ValidationError{Fields: map[string]string{"prompt": "is required"}})
	assert.Equal(t, 400, code)
	assert.False(t, r.Success)

	code, r = statusFor(t, rag.NewProviderError(rag.StageReasoning, errors.New("timeout")))
	assert.Equal(t, 502, code)
	assert.Contains(t, r.Message, "reasoning")

	code, _ = statusFor(t, fiber.NewError(fiber.StatusBadRequest, "bad body"))
	assert.Equal(t, 400, code)

	code, r = statusFor(t, errors.New("pq: connection reset"))
	assert.Equal(t, 500, code)
	assert.NotContains(t, r.Message, "pq")
}

type logEntry struct {
	level   string
	module  string
	message string
	details map[string]interface{}
}

type recordingLogger struct {
	entries []logEntry
}

func (l *recordingLogger) record(level, module, message string, details map[string]interface{}) {
	l.entries = append(l.entries, logEntry{level, module, message, details})
}

func (l *recordingLogger) Debug(m, msg string, d map[string]interface{}) {
	l.record("debug", m, msg, d)
}

func (l *recordingLogger) Info(m, msg string, d map[string]interface{}) {
	l.record("info", m, msg, d)
}

func (l *recordingLogger) Warn(m, msg string, d map[string]interface{}) {
	l.record("warn", m, msg, d)
}

func (l *recordingLogger) Error(m, msg string, d map[string]interface{}) {
	l.record("error", m, msg, d)
}

func (l *recordingLogger) Sync() error {
	return nil
}

func TestErrorHandlerLogsServerSideFailures(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		logged bool
	}{
		{"storage failure", errors.New("pq: connection reset"), 500, true},
		{"provider failure", rag.NewProviderError(rag.StageEmbedding, errors.New("quota exceeded")), 502, true},
		{"fiber 503", fiber.NewError(fiber.StatusServiceUnavailable, "busy"), 503, true},
		{"validation", &ValidationError{Fields: map[string]string{"prompt": "is required"}}, 400, false},
		{"not found", fiber.NewError(fiber.StatusNotFound, "User not found"), 404, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			log := &recordingLogger{}
			app := fiber.New()
			app.Use(RequestIDMiddleware)
			app.Use(ErrorHandlerMiddleware(log))
			app.Post("/api/search", func(c *fiber.Ctx) error { return tc.err })

			req := httptest.NewRequest("POST", "/api/search", nil)
			req.Header.Set(RequestIDHeader, "6f1c1f0e-8f7a-4a53-9d3e-3f5d2a9b1c77")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			if !tc.logged {
				assert.Empty(t, log.entries)
				return
			}
			require.Len(t, log.entries, 1)
			entry := log.entries[0]
			assert.Equal(t, "error", entry.level)
			assert.Equal(t, "HTTP", entry.module)
			assert.Equal(t, "6f1c1f0e-8f7a-4a53-9d3e-3f5d2a9b1c77", entry.details["request_id"])
			assert.Equal(t, "/api/search", entry.details["path"])
			assert.Equal(t, tc.status, entry.details["status"])
			assert.ErrorIs(t, entry.details["error"].(error), tc.err)
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(RequestIDMiddleware)
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(RequestID(c)) })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Len(t, string(body), 36)
	assert.Equal(t, string(body), resp.Header.Get(RequestIDHeader))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "6f1c1f0e-8f7a-4a53-9d3e-3f5d2a9b1c77")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "6f1c1f0e-8f7a-4a53-9d3e-3f5d2a9b1c77", resp.Header.Get(RequestIDHeader))
}
