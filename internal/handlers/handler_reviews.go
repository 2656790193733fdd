package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/cleanit/cleanit_admin/internal/core/ports/services"
	"github.com/cleanit/cleanit_admin/internal/dto"
	"github.com/gin-gonic/gin"
)

type reviewHandler struct {
	reviewService portssvc.ReviewSvcFacade
}

func registerReviewRoutes(rg *gin.RouterGroup, reviewService portssvc.ReviewSvcFacade) {
	h := &reviewHandler{reviewService: reviewService}

	reviews := rg.Group("/reviews")
	{
		reviews.GET("", h.listReviews)
		reviews.PATCH("/:reviewID/visibility", h.setVisibility)
	}
}

// listReviews godoc
// @Summary List reviews
// @Description Lists reviews newest first, hidden ones included.
// @Tags reviews
// @Produce json
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD), inclusive"
// @Param clientId query string false "Client user ID"
// @Param buildingId query string false "Building ID"
// @Param workerId query string false "Worker user ID"
// @Param minRating query number false "Minimum rating"
// @Param q query string false "Search over comment and tags"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListReviewsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reviews [get]
func (h *reviewHandler) listReviews(c *gin.Context) {
	var params dto.ListReviewsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.reviewService.ListReviews(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list reviews")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// setVisibility godoc
// @Summary Show or hide a review
// @Description Hidden reviews stay listed but no longer count in analytics.
// @Tags reviews
// @Accept json
// @Produce json
// @Param reviewID path string true "Review ID"
// @Param visibility body dto.SetVisibilityRequest true "Visibility"
// @Success 200 {object} dto.ReviewResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Review not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reviews/{reviewID}/visibility [patch]
func (h *reviewHandler) setVisibility(c *gin.Context) {
	reviewID := c.Param("reviewID")
	var req dto.SetVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	review, err := h.reviewService.SetReviewVisibility(c.Request.Context(), reviewID, *req.IsVisible, userID)
	if err != nil {
		respondError(c, err, "Failed to update review")
		return
	}

	loggerFor(c).Info("Review visibility changed", slog.String("review_id", reviewID), slog.Bool("visible", review.IsVisible))
	c.JSON(http.StatusOK, dto.ToReviewResponse(*review))
}
