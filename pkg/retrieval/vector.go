package retrieval

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// Vector is a dense embedding. Values are never modified after creation.
type Vector []float32

var ErrEmptyVector = errors.New("empty vector")

// CosineSimilarity returns dot(a,b)/(|a||b|). Zero-magnitude inputs and
// dimension mismatches score 0.
func CosineSimilarity(a, b Vector) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// ParseVector decodes the JSON array text stored for an embedding row.
func ParseVector(raw string) (Vector, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrEmptyVector
	}

	var values []float64
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("decode vector: %w", err)
	}
	if len(values) == 0 {
		return nil, ErrEmptyVector
	}

	v := make(Vector, len(values))
	for i, f := range values {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("component %d is not finite", i)
		}
		v[i] = float32(f)
	}
	return v, nil
}
