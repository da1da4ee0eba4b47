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

type ReferrerRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ContactEmbeddingMapper
}

func NewReferrerRepository(db *gorm.DB) contract.ReferrerRepository {
	return &ReferrerRepositoryImpl{
		db:     db,
		mapper: mapper.NewContactEmbeddingMapper(),
	}
}

func (r *ReferrerRepositoryImpl) FindReferrers(ctx context.Context, userId int64) ([]*entity.Referrer, error) {
	var rows []*model.ReferrerRow

	// A contact is a referrer when its phone belongs to a registered user.
	query := r.db.WithContext(ctx).
		Table(model.UserContact{}.TableName()+" AS uc").
		Select("u.id AS referrer_user_id, uc.display_name, u.phone").
		Joins("JOIN contacts AS c ON c.id = uc.contact_id").
		Joins("JOIN users AS u ON u.phone = c.phone")
	query = applySpecifications(query,
		specification.ContactOf{UserID: userId},
		specification.ReferralEnabled{},
		specification.OrderBy{Field: "uc.id"},
	)

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	referrers := make([]*entity.Referrer, 0, len(rows))
	for _, row := range rows {
		referrers = append(referrers, r.mapper.ToReferrer(row))
	}
	return referrers, nil
}
