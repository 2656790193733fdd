package services

import (
	"context"

	"github.com/cleanit/cleanit_admin/internal/core/domain"
	"github.com/cleanit/cleanit_admin/internal/dto"
)

// ReviewSvcFacade defines the review moderation operations.
type ReviewSvcFacade interface {
	ListReviews(ctx context.Context, params dto.ListReviewsParams) (*dto.ListReviewsResponse, error)
	SetReviewVisibility(ctx context.Context, reviewID string, visible bool, userID string) (*domain.Review, error)
}
