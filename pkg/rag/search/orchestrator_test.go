package search

import (
	"context"
	"errors"
	"testing"

	"ai-contact-search-be/internal/entity"
	"ai-contact-search-be/internal/pkg/logger"
	"ai-contact-search-be/pkg/llm"
	"ai-contact-search-be/pkg/rag"
	"ai-contact-search-be/pkg/retrieval"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockEmbedder struct {
	mock.Mock
}

func (m *mockEmbedder) Generate(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	vec, _ := args.Get(0).([]float32)
	return vec, args.Error(1)
}

type mockLLM struct {
	mock.Mock
}

func (m *mockLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	args := m.Called(ctx, history)
	return args.String(0), args.Error(1)
}

func (m *mockLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type rowsSource struct {
	rows []*entity.ContactEmbedding
	err  error
}

func (s rowsSource) FindEligibleByUser(ctx context.Context, userId int64) ([]*entity.ContactEmbedding, error) {
	return s.rows, s.err
}

func strPtr(s string) *string { return &s }

func newOrchestrator(emb *mockEmbedder, provider *mockLLM, src rowsSource) *Orchestrator {
	log := logger.NewNopLogger()
	return NewOrchestrator(
		emb,
		retrieval.NewRetriever(src, log),
		rag.NewFilter(provider, log, rag.DefaultFilterConfig()),
		log,
	)
}

func TestExecuteEndToEnd(t *testing.T) {
	emb := &mockEmbedder{}
	emb.On("Generate", mock.Anything, "who can fix my sink").Return([]float32{1, 0}, nil).Once()

	provider := &mockLLM{}
	// Index 0 is Ann (best score), 1 is Cid, 2 is Ben.
	provider.On("Chat", mock.Anything, mock.Anything).Return(`{"results":[
		{"idx":0,"match":true,"confidence":0.6,"reason":"plumber"},
		{"idx":1,"match":true,"confidence":0.95,"reason":"pipe fitter"},
		{"idx":2,"match":false,"confidence":0.1,"reason":"baker"}
	]}`, nil).Once()

	src := rowsSource{rows: []*entity.ContactEmbedding{
		{ContactId: 1, Name: strPtr("Ann"), Phone: "1", Embedding: "[1, 0]", ProfileText: "plumber"},
		{ContactId: 2, Name: strPtr("Ben"), Phone: "2", Embedding: "[0, 1]", ProfileText: "baker"},
		{ContactId: 3, Name: strPtr("Cid"), Phone: "3", Embedding: "[1, 1]", ProfileText: "pipe fitter"},
	}}

	o := newOrchestrator(emb, provider, src)
	results, err := o.Execute(context.Background(), 7, "who can fix my sink", DefaultConfig())
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "Cid", results[0].Name)
	assert.Equal(t, 0.95, results[0].Confidence)
	assert.Equal(t, "Ann", results[1].Name)
	assert.InDelta(t, 1.0, results[1].Score, 1e-6)

	emb.AssertExpectations(t)
	provider.AssertExpectations(t)
}

func TestExecuteEmptyCandidatesSkipsReasoning(t *testing.T) {
	emb := &mockEmbedder{}
	emb.On("Generate", mock.Anything, "q").Return([]float32{1, 0}, nil)
	provider := &mockLLM{}

	o := newOrchestrator(emb, provider, rowsSource{})
	results, err := o.Execute(context.Background(), 7, "q", DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, results)
	provider.AssertNotCalled(t, "Chat", mock.Anything, mock.Anything)
}

func TestExecuteEmbeddingAlwaysHasDeadline(t *testing.T) {
	emb := &mockEmbedder{}
	emb.On("Generate", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	}), "q").Return([]float32{1, 0}, nil)

	cfg := DefaultConfig()
	cfg.EmbeddingTimeout = 0
	_, err := newOrchestrator(emb, &mockLLM{}, rowsSource{}).Execute(context.Background(), 7, "q", cfg)
	require.NoError(t, err)
	emb.AssertExpectations(t)
}

func TestExecuteEmbeddingFailure(t *testing.T) {
	emb := &mockEmbedder{}
	emb.On("Generate", mock.Anything, "q").Return(nil, errors.New("401 invalid key"))

	o := newOrchestrator(emb, &mockLLM{}, rowsSource{})
	_, err := o.Execute(context.Background(), 7, "q", DefaultConfig())

	var pe *rag.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, rag.StageEmbedding, pe.Stage)
}

func TestExecuteReasoningFailureIsFatal(t *testing.T) {
	emb := &mockEmbedder{}
	emb.On("Generate", mock.Anything, "q").Return([]float32{1}, nil)
	provider := &mockLLM{}
	provider.On("Chat", mock.Anything, mock.Anything).Return("", errors.New("503"))

	src := rowsSource{rows: []*entity.ContactEmbedding{{ContactId: 1, Embedding: "[1]"}}}
	o := newOrchestrator(emb, provider, src)

	_, err := o.Execute(context.Background(), 7, "q", DefaultConfig())
	var pe *rag.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, rag.StageReasoning, pe.Stage)
}

func TestExecuteStorageFailure(t *testing.T) {
	emb := &mockEmbedder{}
	emb.On("Generate", mock.Anything, "q").Return([]float32{1}, nil)

	o := newOrchestrator(emb, &mockLLM{}, rowsSource{err: errors.New("too many connections")})
	_, err := o.Execute(context.Background(), 7, "q", DefaultConfig())
	require.Error(t, err)
	assert.False(t, rag.IsProviderError(err))
}
