package service

import (
	"context"
	"errors"
	"testing"

	"ai-contact-search-be/internal/dto"
	"ai-contact-search-be/internal/entity"
	"ai-contact-search-be/internal/repository/specification"
	"ai-contact-search-be/pkg/rag"
	"ai-contact-search-be/pkg/rag/search"
	"ai-contact-search-be/pkg/referral"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	gotQuery string
	gotCfg   search.Config
	results  []rag.FinalResult
	err      error
}

func (f *fakeSearcher) Execute(ctx context.Context, userId int64, query string, cfg search.Config) ([]rag.FinalResult, error) {
	f.gotQuery = query
	f.gotCfg = cfg
	return f.results, f.err
}

type fakeExpander struct {
	referrals []referral.Referral
	err       error
}

func (f *fakeExpander) Expand(ctx context.Context, userId int64, query string) ([]referral.Referral, error) {
	return f.referrals, f.err
}

// fakeUsers knows the users listed in ids.
type fakeUsers struct {
	ids   map[int64]bool
	err   error
	specs []specification.Specification
}

func knownUsers(ids ...int64) *fakeUsers {
	f := &fakeUsers{ids: map[int64]bool{}}
	for _, id := range ids {
		f.ids[id] = true
	}
	return f
}

func (f *fakeUsers) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	f.specs = specs
	if f.err != nil {
		return nil, f.err
	}
	if by, ok := specs[0].(specification.ByID); ok && f.ids[by.ID] {
		return &entity.User{Id: by.ID}, nil
	}
	return nil, nil
}

func TestSearchServiceMapsResults(t *testing.T) {
	f := &fakeSearcher{results: []rag.FinalResult{
		{Name: "Ann", Phone: "1", Score: 0.8, Confidence: 0.9, Reason: "plumber", ProfileText: "fixes pipes"},
	}}
	cfg := search.DefaultConfig()
	users := knownUsers(1)
	s := NewSearchService(f, users, cfg)

	res, err := s.Search(context.Background(), &dto.SearchRequest{UserId: 1, Prompt: "  plumber  "})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Ann", res[0].Name)
	assert.Equal(t, "fixes pipes", res[0].ProfileText)
	assert.Equal(t, "plumber", f.gotQuery)
	assert.Equal(t, cfg, f.gotCfg)
	assert.Equal(t, []specification.Specification{specification.ByID{ID: 1}}, users.specs)
}

func TestSearchServicePropagatesErrors(t *testing.T) {
	s := NewSearchService(&fakeSearcher{err: rag.NewProviderError(rag.StageEmbedding, errors.New("down"))}, knownUsers(1), search.DefaultConfig())
	_, err := s.Search(context.Background(), &dto.SearchRequest{UserId: 1, Prompt: "q"})
	assert.True(t, rag.IsProviderError(err))
}

func TestReferralServiceMapsResults(t *testing.T) {
	conf := 0.42
	s := NewReferralService(&fakeExpander{referrals: []referral.Referral{
		{Name: "Alice", Phone: "+1"},
		{Name: "Bob", Phone: "+2", Confidence: &conf},
	}}, knownUsers(1))

	res, err := s.Search(context.Background(), &dto.ReferralSearchRequest{UserId: 1, Prompt: "q"})
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Nil(t, res[0].Confidence)
	assert.Equal(t, 0.42, *res[1].Confidence)
}

func TestServicesRejectUnknownUsers(t *testing.T) {
	searcher := &fakeSearcher{}
	_, err := NewSearchService(searcher, knownUsers(1), search.DefaultConfig()).
		Search(context.Background(), &dto.SearchRequest{UserId: 99, Prompt: "q"})
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Empty(t, searcher.gotQuery, "search must not run for an unknown user")

	_, err = NewReferralService(&fakeExpander{}, knownUsers()).
		Search(context.Background(), &dto.ReferralSearchRequest{UserId: 99, Prompt: "q"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestServicesWrapUserLookupErrors(t *testing.T) {
	users := &fakeUsers{err: errors.New("connection refused")}
	_, err := NewSearchService(&fakeSearcher{}, users, search.DefaultConfig()).
		Search(context.Background(), &dto.SearchRequest{UserId: 1, Prompt: "q"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserNotFound)
	assert.Contains(t, err.Error(), "connection refused")
}
