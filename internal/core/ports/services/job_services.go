package services

import (
	"context"

	"github.com/cleanit/cleanit_admin/internal/core/domain"
	"github.com/cleanit/cleanit_admin/internal/dto"
)

// JobReaderSvc defines read operations for jobs
type JobReaderSvc interface {
	ListJobs(ctx context.Context, params dto.ListJobsParams) (*dto.ListJobsResponse, error)
	GetJob(ctx context.Context, jobID string) (*domain.Job, error)
	// JobRevenue formats the priced value of a job in whole won.
	JobRevenue(j domain.Job) string
}

// JobWriterSvc defines write operations for jobs
type JobWriterSvc interface {
	// UpdateJob applies a partial update. Illegal status changes fail with
	// apperrors.ErrInvalidTransition.
	UpdateJob(ctx context.Context, jobID string, req dto.UpdateJobRequest, userID string) (*domain.Job, error)
}

// JobSvcFacade combines all job-related service interfaces
type JobSvcFacade interface {
	JobReaderSvc
	JobWriterSvc
}
