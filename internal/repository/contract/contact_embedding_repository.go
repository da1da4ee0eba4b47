package contract

import (
	"context"

	"ai-contact-search-be/internal/entity"
	"ai-contact-search-be/internal/repository/specification"
)

type ContactEmbeddingRepository interface {
	// FindEligibleByUser returns the user's ready embedding rows in id order.
	FindEligibleByUser(ctx context.Context, userId int64) ([]*entity.ContactEmbedding, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ContactEmbedding, error)
}
