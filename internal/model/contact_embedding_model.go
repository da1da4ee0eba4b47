package model

import (
	"time"

	"gorm.io/datatypes"
)

// UserContactEmbedding holds the vector of one contact as seen by one user.
// Embedding is a JSON array of floats written by the offline builder; ContextHash is
// the SHA-256 of ProfileText at the time the vector was computed.
type UserContactEmbedding struct {
	Id           int64          `gorm:"primaryKey;autoIncrement"`
	UserId       int64          `gorm:"not null;index"`
	ContactId    int64          `gorm:"not null;index"`
	Embedding    datatypes.JSON `gorm:"type:json"`
	ProfileText  string         `gorm:"type:text"`
	ContextHash  string         `gorm:"type:char(64)"`
	NeedsRebuild bool           `gorm:"not null;default:true;index"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
}

func (UserContactEmbedding) TableName() string {
	return "user_contact_embeddings"
}

// ContactEmbeddingRow is the projection read by the search core: the embedding row
// joined with the contact phone and the owner's display name.
type ContactEmbeddingRow struct {
	Id           int64
	UserId       int64
	ContactId    int64
	Embedding    string
	ProfileText  *string
	ContextHash  *string
	NeedsRebuild bool
	DisplayName  *string
	Phone        string
}

// ReferrerRow is a caller's contact that maps to a platform account.
type ReferrerRow struct {
	ReferrerUserId int64
	DisplayName    *string
	Phone          string
}
