package repositories

import (
	"context"
	"time"

	"github.com/cleanit/cleanit_admin/internal/core/domain"
)

// ReviewQuery narrows a review listing. Results are ordered newest first.
type ReviewQuery struct {
	BuildingID string
	WorkerID   string
	ClientID   string
	MinRating  float64
	From       *time.Time // inclusive
	To         *time.Time // exclusive
	Search     string

	AfterCreatedAt *time.Time
	AfterID        string
	Limit          int
}

// ReviewReader defines read operations for review data
type ReviewReader interface {
	FindReviewByID(ctx context.Context, reviewID string) (*domain.Review, error)
	// FindReviews retrieves one page of reviews, including hidden ones.
	FindReviews(ctx context.Context, q ReviewQuery) ([]domain.Review, error)
	FindAllReviews(ctx context.Context) ([]domain.Review, error)
}

// ReviewWriter defines write operations for review data
type ReviewWriter interface {
	SetReviewVisibility(ctx context.Context, reviewID string, visible bool) (*domain.Review, error)
}

// ReviewRepositoryFacade combines all review-related repository interfaces
type ReviewRepositoryFacade interface {
	ReviewReader
	ReviewWriter
}
