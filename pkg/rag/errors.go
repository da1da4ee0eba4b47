package rag

import (
	"errors"
	"fmt"
)

const (
	StageEmbedding = "embedding"
	StageReasoning = "reasoning"
)

// ErrSchemaViolation marks a reasoning reply that is not JSON or does not
// follow the declared results schema.
var ErrSchemaViolation = errors.New("reasoning reply violates schema")

// ProviderError is a failed or timed out call to the embedding or reasoning provider.
type ProviderError struct {
	Stage string
	Err   error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider: %v", e.Stage, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(stage string, err error) *ProviderError {
	return &ProviderError{Stage: stage, Err: err}
}

// IsProviderError reports whether err carries a *ProviderError.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}
