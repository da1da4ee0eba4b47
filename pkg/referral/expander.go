package referral

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"ai-contact-search-be/internal/entity"
	"ai-contact-search-be/internal/pkg/logger"
	"ai-contact-search-be/pkg/embedding"
	"ai-contact-search-be/pkg/rag"
	"ai-contact-search-be/pkg/retrieval"

	"github.com/panjf2000/ants/v2"
)

const (
	DefaultMinScore    = 0.20
	DefaultConcurrency = 4
)

type ReferrerSource interface {
	FindReferrers(ctx context.Context, userId int64) ([]*entity.Referrer, error)
}

type CandidateRetriever interface {
	Retrieve(ctx context.Context, userId int64, query retrieval.Vector, topK int) ([]retrieval.Candidate, error)
}

type Judge interface {
	Judge(ctx context.Context, query string, candidates []retrieval.Candidate, maxSelected int) (rag.Judgments, error)
}

// Referral is a referrer able to help with the query. Confidence is only set
// under PolicyThreshold.
type Referral struct {
	Name       string
	Phone      string
	Confidence *float64
}

type Config struct {
	Policy           Policy
	MinScore         float64
	TopK             int
	Concurrency      int
	EmbeddingTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Policy:           PolicyFilter,
		MinScore:         DefaultMinScore,
		TopK:             retrieval.DefaultTopK,
		Concurrency:      DefaultConcurrency,
		EmbeddingTimeout: rag.DefaultProviderTimeout,
	}
}

type Expander struct {
	referrers ReferrerSource
	embedder  embedding.EmbeddingProvider
	retriever CandidateRetriever
	judge     Judge
	pool      *ants.Pool
	logger    logger.ILogger
	config    Config
}

func NewExpander(
	referrers ReferrerSource,
	embedder embedding.EmbeddingProvider,
	retriever CandidateRetriever,
	judge Judge,
	logger logger.ILogger,
	config Config,
) (*Expander, error) {
	if config.Concurrency <= 0 {
		config.Concurrency = DefaultConcurrency
	}
	if config.TopK <= 0 {
		config.TopK = retrieval.DefaultTopK
	}
	if config.Policy == "" {
		config.Policy = PolicyFilter
	}

	pool, err := ants.NewPool(config.Concurrency)
	if err != nil {
		return nil, fmt.Errorf("create referral worker pool: %w", err)
	}

	return &Expander{
		referrers: referrers,
		embedder:  embedder,
		retriever: retriever,
		judge:     judge,
		pool:      pool,
		logger:    logger,
		config:    config,
	}, nil
}

// Release stops the worker pool.
func (e *Expander) Release() {
	e.pool.Release()
}

// Expand finds the caller's referrers whose own contacts can satisfy query.
// A failure while evaluating one referrer drops only that referrer.
func (e *Expander) Expand(ctx context.Context, userId int64, query string) ([]Referral, error) {
	referrers, err := e.referrers.FindReferrers(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("find referrers for user %d: %w", userId, err)
	}
	if len(referrers) == 0 {
		return []Referral{}, nil
	}

	vec, err := e.embed(ctx, query)
	if err != nil {
		return nil, err
	}

	slots := make([]*Referral, len(referrers))
	var wg sync.WaitGroup
	for i, ref := range referrers {
		wg.Add(1)
		submitErr := e.pool.Submit(func() {
			defer wg.Done()
			slots[i] = e.evaluate(ctx, ref, query, vec)
		})
		if submitErr != nil {
			wg.Done()
			e.logger.Warn("REFERRAL", "Could not schedule referrer", map[string]interface{}{
				"referrer_user_id": ref.UserId,
				"error":            submitErr.Error(),
			})
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]Referral, 0, len(slots))
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}

	if e.config.Policy == PolicyThreshold {
		sort.SliceStable(results, func(a, b int) bool {
			return *results[a].Confidence > *results[b].Confidence
		})
	}

	e.logger.Info("REFERRAL", "Referral expansion finished", map[string]interface{}{
		"user_id":   userId,
		"policy":    string(e.config.Policy),
		"referrers": len(referrers),
		"accepted":  len(results),
	})
	return results, nil
}

func (e *Expander) embed(ctx context.Context, query string) (retrieval.Vector, error) {
	ctx, cancel := context.WithTimeout(ctx, rag.ProviderTimeout(e.config.EmbeddingTimeout))
	defer cancel()

	vec, err := e.embedder.Generate(ctx, query)
	if err != nil {
		return nil, rag.NewProviderError(rag.StageEmbedding, err)
	}
	return retrieval.Vector(vec), nil
}

// evaluate returns nil when the referrer is rejected or could not be evaluated.
func (e *Expander) evaluate(ctx context.Context, ref *entity.Referrer, query string, vec retrieval.Vector) *Referral {
	candidates, err := e.retriever.Retrieve(ctx, ref.UserId, vec, e.config.TopK)
	if err != nil {
		e.skip(ref, "retrieval failed", err)
		return nil
	}
	if len(candidates) == 0 {
		return nil
	}

	name := retrieval.NoName
	if ref.Name != nil && *ref.Name != "" {
		name = *ref.Name
	}

	switch e.config.Policy {
	case PolicyThreshold:
		best := 0.0
		for _, c := range candidates {
			best = math.Max(best, c.Score)
		}
		if best < e.config.MinScore {
			return nil
		}
		confidence := math.Round(best*100) / 100
		return &Referral{Name: name, Phone: ref.Phone, Confidence: &confidence}

	default:
		judgments, err := e.judge.Judge(ctx, query, candidates, 1)
		if err != nil {
			e.skip(ref, "relevance filter failed", err)
			return nil
		}
		if len(rag.Compose(candidates, judgments, 1)) == 0 {
			return nil
		}
		return &Referral{Name: name, Phone: ref.Phone}
	}
}

func (e *Expander) skip(ref *entity.Referrer, reason string, err error) {
	e.logger.Warn("REFERRAL", "Skipping referrer: "+reason, map[string]interface{}{
		"referrer_user_id": ref.UserId,
		"error":            err.Error(),
	})
}
