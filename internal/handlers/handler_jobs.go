package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/cleanit/cleanit_admin/internal/core/ports/services"
	"github.com/cleanit/cleanit_admin/internal/dto"
	"github.com/gin-gonic/gin"
)

// jobHandler handles HTTP requests related to cleaning jobs.
type jobHandler struct {
	jobService portssvc.JobSvcFacade
}

func newJobHandler(js portssvc.JobSvcFacade) *jobHandler {
	return &jobHandler{jobService: js}
}

// registerJobRoutes registers routes related to jobs.
func registerJobRoutes(rg *gin.RouterGroup, jobService portssvc.JobSvcFacade) {
	h := newJobHandler(jobService)

	jobs := rg.Group("/jobs")
	{
		jobs.GET("", h.listJobs)
		jobs.GET("/:jobID", h.getJob)
		jobs.PATCH("/:jobID", h.updateJob)
	}
}

// listJobs godoc
// @Summary List jobs
// @Description Lists jobs newest first, hidden ones included, with token based pagination.
// @Tags jobs
// @Produce json
// @Param status query string false "scheduled, in_progress, completed or cancelled"
// @Param from query string false "First scheduled day (YYYY-MM-DD)"
// @Param to query string false "Last scheduled day (YYYY-MM-DD), inclusive"
// @Param clientId query string false "Client user ID"
// @Param buildingId query string false "Building ID"
// @Param workerId query string false "Worker user ID"
// @Param q query string false "Free-text search"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListJobsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /jobs [get]
func (h *jobHandler) listJobs(c *gin.Context) {
	var params dto.ListJobsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.jobService.ListJobs(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list jobs")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getJob godoc
// @Summary Get a job by ID
// @Tags jobs
// @Produce json
// @Param jobID path string true "Job ID"
// @Success 200 {object} dto.JobResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Job not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /jobs/{jobID} [get]
func (h *jobHandler) getJob(c *gin.Context) {
	job, err := h.jobService.GetJob(c.Request.Context(), c.Param("jobID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve job")
		return
	}
	c.JSON(http.StatusOK, dto.ToJobResponse(*job, h.jobService.JobRevenue(*job)))
}

// updateJob godoc
// @Summary Update a job
// @Description Partially updates a job. Status changes must follow scheduled -> in_progress -> completed, or move to cancelled before completion.
// @Tags jobs
// @Accept json
// @Produce json
// @Param jobID path string true "Job ID"
// @Param job body dto.UpdateJobRequest true "Fields to change"
// @Success 200 {object} dto.JobResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Job not found"
// @Failure 409 {object} ErrorResponse "Illegal status transition"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /jobs/{jobID} [patch]
func (h *jobHandler) updateJob(c *gin.Context) {
	jobID := c.Param("jobID")
	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	job, err := h.jobService.UpdateJob(c.Request.Context(), jobID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to update job")
		return
	}

	loggerFor(c).Info("Job updated", slog.String("job_id", jobID), slog.String("status", string(job.Status)))
	c.JSON(http.StatusOK, dto.ToJobResponse(*job, h.jobService.JobRevenue(*job)))
}
