package implementation

import (
	"context"

	"ai-contact-search-be/internal/entity"
	"ai-contact-search-be/internal/mapper"
	"ai-contact-search-be/internal/model"
	"ai-contact-search-be/internal/repository/contract"
	"ai-contact-search-be/internal/repository/specification"

	"gorm.io/gorm"
)

const contactEmbeddingColumns = "uce.id, uce.user_id, uce.contact_id, uce.embedding, uce.profile_text, " +
	"uce.context_hash, uce.needs_rebuild, uc.display_name, c.phone"

type ContactEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ContactEmbeddingMapper
}

func NewContactEmbeddingRepository(db *gorm.DB) contract.ContactEmbeddingRepository {
	return &ContactEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewContactEmbeddingMapper(),
	}
}

// joined starts from the embedding table, joins the contact for its phone and
// left-joins the owner's address book entry for the display name.
func (r *ContactEmbeddingRepositoryImpl) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table(model.UserContactEmbedding{}.TableName() + " AS uce").
		Joins("JOIN contacts AS c ON c.id = uce.contact_id").
		Joins("LEFT JOIN user_contacts AS uc ON uc.user_id = uce.user_id AND uc.contact_id = uce.contact_id")
}

func (r *ContactEmbeddingRepositoryImpl) FindEligibleByUser(ctx context.Context, userId int64) ([]*entity.ContactEmbedding, error) {
	return r.FindAll(ctx,
		specification.EmbeddingOwnedBy{UserID: userId},
		specification.EmbeddingReady{},
		specification.OrderBy{Field: "uce.id"},
	)
}

func (r *ContactEmbeddingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ContactEmbedding, error) {
	var rows []*model.ContactEmbeddingRow
	query := applySpecifications(r.joined(ctx).Select(contactEmbeddingColumns), specs...)
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(rows), nil
}
