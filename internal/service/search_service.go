package service

import (
	"context"
	"strings"

	"ai-contact-search-be/internal/dto"
	"ai-contact-search-be/pkg/rag"
	"ai-contact-search-be/pkg/rag/search"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("ai-contact-search-be/internal/service")

type Searcher interface {
	Execute(ctx context.Context, userId int64, query string, cfg search.Config) ([]rag.FinalResult, error)
}

type ISearchService interface {
	Search(ctx context.Context, req *dto.SearchRequest) ([]*dto.SearchResultResponse, error)
}

type searchService struct {
	orchestrator Searcher
	users        UserFinder
	config       search.Config
}

func NewSearchService(orchestrator Searcher, users UserFinder, config search.Config) ISearchService {
	return &searchService{
		orchestrator: orchestrator,
		users:        users,
		config:       config,
	}
}

func (s *searchService) Search(ctx context.Context, req *dto.SearchRequest) ([]*dto.SearchResultResponse, error) {
	ctx, span := tracer.Start(ctx, "SearchService.Search")
	defer span.End()
	span.SetAttributes(attribute.Int64("user_id", req.UserId))

	if err := ensureUser(ctx, s.users, req.UserId); err != nil {
		span.RecordError(err)
		return nil, err
	}

	results, err := s.orchestrator.Execute(ctx, req.UserId, strings.TrimSpace(req.Prompt), s.config)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("result_count", len(results)))

	res := make([]*dto.SearchResultResponse, 0, len(results))
	for _, r := range results {
		res = append(res, &dto.SearchResultResponse{
			Name:        r.Name,
			Phone:       r.Phone,
			Score:       r.Score,
			Confidence:  r.Confidence,
			Reason:      r.Reason,
			ProfileText: r.ProfileText,
		})
	}
	return res, nil
}
