package service

import (
	"context"
	"strings"

	"ai-contact-search-be/internal/dto"
	"ai-contact-search-be/pkg/referral"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type ReferralExpander interface {
	Expand(ctx context.Context, userId int64, query string) ([]referral.Referral, error)
}

type IReferralService interface {
	Search(ctx context.Context, req *dto.ReferralSearchRequest) ([]*dto.ReferralResponse, error)
}

type referralService struct {
	expander ReferralExpander
	users    UserFinder
}

func NewReferralService(expander ReferralExpander, users UserFinder) IReferralService {
	return &referralService{expander: expander, users: users}
}

func (s *referralService) Search(ctx context.Context, req *dto.ReferralSearchRequest) ([]*dto.ReferralResponse, error) {
	ctx, span := tracer.Start(ctx, "ReferralService.Search")
	defer span.End()
	span.SetAttributes(attribute.Int64("user_id", req.UserId))

	if err := ensureUser(ctx, s.users, req.UserId); err != nil {
		span.RecordError(err)
		return nil, err
	}

	referrals, err := s.expander.Expand(ctx, req.UserId, strings.TrimSpace(req.Prompt))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("referral_count", len(referrals)))

	res := make([]*dto.ReferralResponse, 0, len(referrals))
	for _, r := range referrals {
		res = append(res, &dto.ReferralResponse{
			Name:       r.Name,
			Phone:      r.Phone,
			Confidence: r.Confidence,
		})
	}
	return res, nil
}
