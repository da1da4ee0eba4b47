package llm

import (
	"context"
	"time"

	"ai-contact-search-be/internal/pkg/logger"

	"github.com/sony/gobreaker"
)

type BreakerSettings struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	MinRequests      uint32
	ReadyToTripRatio float64
}

func DefaultBreakerSettings(name string) BreakerSettings {
	return BreakerSettings{
		Name:             name,
		MaxRequests:      1,
		Interval:         60 * time.Second,
		Timeout:          30 * time.Second,
		MinRequests:      3,
		ReadyToTripRatio: 0.6,
	}
}

// BreakerProvider stops calling a failing backend for a while. Calls made
// while the circuit is open fail fast with gobreaker.ErrOpenState.
type BreakerProvider struct {
	next LLMProvider
	cb   *gobreaker.CircuitBreaker
}

var _ LLMProvider = &BreakerProvider{}

func NewBreakerProvider(next LLMProvider, s BreakerSettings, log logger.ILogger) *BreakerProvider {
	st := gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= s.MinRequests && failureRatio >= s.ReadyToTripRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("LLM_BREAKER", "Circuit breaker state changed", map[string]interface{}{
				"name": name,
				"from": from.String(),
				"to":   to.String(),
			})
		},
	}

	return &BreakerProvider{next: next, cb: gobreaker.NewCircuitBreaker(st)}
}

func (b *BreakerProvider) Chat(ctx context.Context, history []Message, opts ...Option) (string, error) {
	resp, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Chat(ctx, history, opts...)
	})
	if err != nil {
		return "", err
	}
	return resp.(string), nil
}

func (b *BreakerProvider) Generate(ctx context.Context, prompt string, opts ...Option) (string, error) {
	resp, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Generate(ctx, prompt, opts...)
	})
	if err != nil {
		return "", err
	}
	return resp.(string), nil
}

func (b *BreakerProvider) State() gobreaker.State {
	return b.cb.State()
}
