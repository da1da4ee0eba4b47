package contract

import (
	"context"

	"ai-contact-search-be/internal/entity"
	"ai-contact-search-be/internal/repository/specification"
)

type UserRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
}
