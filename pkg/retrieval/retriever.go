package retrieval

import (
	"context"
	"fmt"
	"sort"

	"ai-contact-search-be/internal/entity"
	"ai-contact-search-be/internal/pkg/logger"
)

const (
	DefaultTopK = 20
	NoName      = "(no name)"
)

// Candidate is a scored contact. Index is its 0-based position in the ranked
// list and is only meaningful for the query that produced it.
type Candidate struct {
	Index       int
	ContactID   int64
	Name        string
	Phone       string
	ProfileText string
	Score       float64
}

// EmbeddingSource reads the stored contact embeddings of a user.
type EmbeddingSource interface {
	FindEligibleByUser(ctx context.Context, userId int64) ([]*entity.ContactEmbedding, error)
}

// Skipped describes a row that could not be scored.
type Skipped struct {
	ContactID int64
	Reason    string
}

// Rank scores rows against the query and keeps the topK best, highest first.
// Rows flagged for rebuild, rows whose vector cannot be decoded and rows of a
// different dimension are left out and reported in the second return value.
func Rank(query Vector, rows []*entity.ContactEmbedding, topK int) ([]Candidate, []Skipped) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	var skipped []Skipped
	scored := make([]Candidate, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		if row.NeedsRebuild {
			skipped = append(skipped, Skipped{ContactID: row.ContactId, Reason: "needs rebuild"})
			continue
		}

		vec, err := ParseVector(row.Embedding)
		if err != nil {
			skipped = append(skipped, Skipped{ContactID: row.ContactId, Reason: err.Error()})
			continue
		}
		if len(vec) != len(query) {
			skipped = append(skipped, Skipped{
				ContactID: row.ContactId,
				Reason:    fmt.Sprintf("dimension %d, query has %d", len(vec), len(query)),
			})
			continue
		}

		name := NoName
		if row.Name != nil && *row.Name != "" {
			name = *row.Name
		}

		scored = append(scored, Candidate{
			ContactID:   row.ContactId,
			Name:        name,
			Phone:       row.Phone,
			ProfileText: row.ProfileText,
			Score:       CosineSimilarity(query, vec),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}
	for i := range scored {
		scored[i].Index = i
	}
	return scored, skipped
}

// Retriever loads a user's embeddings and ranks them against a query vector.
type Retriever struct {
	source EmbeddingSource
	logger logger.ILogger
}

func NewRetriever(source EmbeddingSource, logger logger.ILogger) *Retriever {
	return &Retriever{source: source, logger: logger}
}

func (r *Retriever) Retrieve(ctx context.Context, userId int64, query Vector, topK int) ([]Candidate, error) {
	rows, err := r.source.FindEligibleByUser(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("load embeddings for user %d: %w", userId, err)
	}
	if len(rows) == 0 {
		return []Candidate{}, nil
	}

	candidates, skipped := Rank(query, rows, topK)
	for _, s := range skipped {
		r.logger.Warn("RETRIEVER", "Skipped contact embedding", map[string]interface{}{
			"user_id":    userId,
			"contact_id": s.ContactID,
			"reason":     s.Reason,
		})
	}

	r.logger.Debug("RETRIEVER", "Ranked candidates", map[string]interface{}{
		"user_id":    userId,
		"rows":       len(rows),
		"candidates": len(candidates),
	})
	return candidates, nil
}
