package repositories

import (
	"context"
	"time"

	"github.com/cleanit/cleanit_admin/internal/core/domain"
)

// JobQuery narrows a job listing. Zero-valued fields are ignored. Results are ordered
// by scheduled time, newest first, then by id.
type JobQuery struct {
	Status     domain.JobStatus
	ClientID   string
	BuildingID string
	WorkerID   string
	From       *time.Time // inclusive
	To         *time.Time // exclusive
	Search     string

	// Keyset cursor: rows strictly after (AfterScheduledAt, AfterID) in listing order.
	AfterScheduledAt *time.Time
	AfterID          string
	Limit            int
}

// JobReader defines read operations for job data
type JobReader interface {
	// FindJobByID retrieves a job, or apperrors.ErrNotFound.
	FindJobByID(ctx context.Context, jobID string) (*domain.Job, error)

	// FindJobs retrieves one page of jobs, including hidden ones.
	FindJobs(ctx context.Context, q JobQuery) ([]domain.Job, error)

	// FindAllJobs retrieves every job for snapshot loading.
	FindAllJobs(ctx context.Context) ([]domain.Job, error)
}

// JobWriter defines write operations for job data
type JobWriter interface {
	// UpdateJob locks the job row, lets mutate change it, and persists the result in one
	// transaction. An error from mutate aborts the update and is returned unchanged.
	UpdateJob(ctx context.Context, jobID string, mutate func(job *domain.Job) error) (*domain.Job, error)
}

// JobRepositoryFacade combines all job-related repository interfaces
type JobRepositoryFacade interface {
	JobReader
	JobWriter
}
