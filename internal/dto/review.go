package dto

import (
	"time"

	"github.com/cleanit/cleanit_admin/internal/core/domain"
)

// ListReviewsParams are the query parameters of the review listing.
type ListReviewsParams struct {
	AnalyticsQuery
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=200"`
	NextToken string `form:"nextToken"`
}

// SetVisibilityRequest toggles whether a record counts in analytics.
type SetVisibilityRequest struct {
	IsVisible *bool `json:"isVisible" binding:"required"`
}

// ReviewResponse defines the data returned for a review.
type ReviewResponse struct {
	ReviewID        string                `json:"reviewID"`
	JobID           string                `json:"jobID"`
	BuildingID      string                `json:"buildingID"`
	WorkerID        string                `json:"workerID"`
	Rating          float64               `json:"rating"`
	Categories      domain.CategoryScores `json:"categories"`
	Comment         string                `json:"comment,omitempty"`
	ImprovementTags []string              `json:"improvementTags"`
	IsVisible       bool                  `json:"isVisible"`
	CreatedAt       time.Time             `json:"createdAt"`
}

// ListReviewsResponse is one page of reviews.
type ListReviewsResponse struct {
	Reviews   []ReviewResponse `json:"reviews"`
	NextToken *string          `json:"nextToken,omitempty"`
}

func ToReviewResponse(r domain.Review) ReviewResponse {
	tags := r.ImprovementTags
	if tags == nil {
		tags = []string{}
	}
	return ReviewResponse{
		ReviewID:        r.ReviewID,
		JobID:           r.JobID,
		BuildingID:      r.BuildingID,
		WorkerID:        r.WorkerID,
		Rating:          r.Rating,
		Categories:      r.Categories,
		Comment:         r.Comment,
		ImprovementTags: tags,
		IsVisible:       r.IsVisible,
		CreatedAt:       r.CreatedAt,
	}
}

func ToReviewResponses(rs []domain.Review) []ReviewResponse {
	out := make([]ReviewResponse, len(rs))
	for i, r := range rs {
		out[i] = ToReviewResponse(r)
	}
	return out
}
