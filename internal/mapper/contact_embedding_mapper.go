package mapper

import (
	"ai-contact-search-be/internal/entity"
	"ai-contact-search-be/internal/model"
)

type ContactEmbeddingMapper struct{}

func NewContactEmbeddingMapper() *ContactEmbeddingMapper {
	return &ContactEmbeddingMapper{}
}

func (m *ContactEmbeddingMapper) ToEntity(r *model.ContactEmbeddingRow) *entity.ContactEmbedding {
	if r == nil {
		return nil
	}

	e := &entity.ContactEmbedding{
		Id:           r.Id,
		UserId:       r.UserId,
		ContactId:    r.ContactId,
		Name:         r.DisplayName,
		Phone:        r.Phone,
		Embedding:    r.Embedding,
		NeedsRebuild: r.NeedsRebuild,
	}
	if r.ProfileText != nil {
		e.ProfileText = *r.ProfileText
	}
	if r.ContextHash != nil {
		e.ContextHash = *r.ContextHash
	}
	return e
}

func (m *ContactEmbeddingMapper) ToEntities(rows []*model.ContactEmbeddingRow) []*entity.ContactEmbedding {
	entities := make([]*entity.ContactEmbedding, 0, len(rows))
	for _, r := range rows {
		entities = append(entities, m.ToEntity(r))
	}
	return entities
}

func (m *ContactEmbeddingMapper) ToReferrer(r *model.ReferrerRow) *entity.Referrer {
	if r == nil {
		return nil
	}
	return &entity.Referrer{
		UserId: r.ReferrerUserId,
		Name:   r.DisplayName,
		Phone:  r.Phone,
	}
}
