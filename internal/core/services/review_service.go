package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cleanit/cleanit_admin/internal/apperrors"
	"github.com/cleanit/cleanit_admin/internal/core/domain"
	"github.com/cleanit/cleanit_admin/internal/core/metrics"
	portsrepo "github.com/cleanit/cleanit_admin/internal/core/ports/repositories"
	portssvc "github.com/cleanit/cleanit_admin/internal/core/ports/services"
	"github.com/cleanit/cleanit_admin/internal/dto"
	"github.com/cleanit/cleanit_admin/internal/utils/pagination"
)

type reviewService struct {
	BaseService
	reviewRepo portsrepo.ReviewRepositoryFacade
	loc        *time.Location
}

// NewReviewService creates a review moderation service. Date filters are read as
// calendar days in the calculator's time zone.
func NewReviewService(reviewRepo portsrepo.ReviewRepositoryFacade, calc *metrics.Calculator) portssvc.ReviewSvcFacade {
	return &reviewService{reviewRepo: reviewRepo, loc: calc.Location()}
}

var _ portssvc.ReviewSvcFacade = (*reviewService)(nil)

func (s *reviewService) ListReviews(ctx context.Context, params dto.ListReviewsParams) (*dto.ListReviewsResponse, error) {
	if params.MinRating < 0 || params.MinRating > 5 {
		return nil, fmt.Errorf("%w: minRating must be between 0 and 5", apperrors.ErrValidation)
	}
	from, to, empty, err := dayBounds(params.From, params.To, s.loc)
	if err != nil {
		return nil, err
	}
	if empty {
		return &dto.ListReviewsResponse{Reviews: []dto.ReviewResponse{}}, nil
	}

	limit := pagination.ClampLimit(params.Limit)
	q := portsrepo.ReviewQuery{
		BuildingID: params.BuildingID,
		WorkerID:   params.WorkerID,
		ClientID:   params.ClientID,
		MinRating:  params.MinRating,
		From:       from,
		To:         to,
		Search:     params.Search,
		Limit:      limit + 1,
	}
	if params.NextToken != "" {
		at, id, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			s.LogWarn(ctx, "Rejected review list cursor", slog.String("error", err.Error()))
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrInvalidNextToken)
		}
		q.AfterCreatedAt = &at
		q.AfterID = id
	}

	reviews, err := s.reviewRepo.FindReviews(ctx, q)
	if err != nil {
		s.LogError(ctx, err, "Failed to list reviews")
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	resp := &dto.ListReviewsResponse{}
	if len(reviews) > limit {
		reviews = reviews[:limit]
		last := reviews[len(reviews)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.ReviewID)
		resp.NextToken = &token
	}
	resp.Reviews = dto.ToReviewResponses(reviews)
	return resp, nil
}

func (s *reviewService) SetReviewVisibility(ctx context.Context, reviewID string, visible bool, userID string) (*domain.Review, error) {
	review, err := s.reviewRepo.SetReviewVisibility(ctx, reviewID, visible)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Review not found for moderation", slog.String("review_id", reviewID))
		} else {
			s.LogError(ctx, err, "Failed to set review visibility", slog.String("review_id", reviewID))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Review visibility changed",
		slog.String("review_id", reviewID),
		slog.Bool("visible", visible),
		slog.String("user_id", userID))
	return review, nil
}
