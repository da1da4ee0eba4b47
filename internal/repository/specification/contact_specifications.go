package specification

import (
	"ai-contact-search-be/internal/model"

	"gorm.io/gorm"
)

// Table aliases used by the contact search joins.
const (
	EmbeddingAlias   = "uce"
	UserContactAlias = "uc"
	ContactAlias     = "c"
	UserAlias        = "u"
)

// EmbeddingOwnedBy keeps the embedding rows built for one user's address book.
type EmbeddingOwnedBy struct {
	UserID int64
}

func (s EmbeddingOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(EmbeddingAlias+".user_id = ?", s.UserID)
}

// EmbeddingReady drops rows flagged for rebuild by the offline builder.
type EmbeddingReady struct{}

func (s EmbeddingReady) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(EmbeddingAlias+".needs_rebuild = ?", false)
}

// ContactOf keeps the user_contacts entries of one user.
type ContactOf struct {
	UserID int64
}

func (s ContactOf) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(UserContactAlias+".user_id = ?", s.UserID)
}

// ReferralEnabled keeps platform users that opted into referrals.
type ReferralEnabled struct{}

func (s ReferralEnabled) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(UserAlias+".refer = ?", model.ReferEnabled)
}
