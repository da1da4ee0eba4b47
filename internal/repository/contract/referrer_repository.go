package contract

import (
	"context"

	"ai-contact-search-be/internal/entity"
)

type ReferrerRepository interface {
	// FindReferrers lists the user's contacts that are platform users with referrals enabled.
	FindReferrers(ctx context.Context, userId int64) ([]*entity.Referrer, error)
}
