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

var (
	ErrInvalidNextToken = errors.New("invalid nextToken")
	ErrEmptyJobUpdate   = errors.New("update must change at least one field")
)

// jobService implements the JobSvcFacade interface
type jobService struct {
	BaseService
	jobRepo portsrepo.JobRepositoryFacade
	calc    *metrics.Calculator
}

// JobServiceOption is a functional option for configuring the job service
type JobServiceOption func(*jobService)

// WithJobClock overrides the clock used to stamp status changes.
func WithJobClock(now func() time.Time) JobServiceOption {
	return func(s *jobService) {
		s.Now = now
	}
}

// NewJobService creates a new job service with the provided options
func NewJobService(jobRepo portsrepo.JobRepositoryFacade, calc *metrics.Calculator, options ...JobServiceOption) portssvc.JobSvcFacade {
	svc := &jobService{jobRepo: jobRepo, calc: calc}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.JobSvcFacade = (*jobService)(nil)

func (s *jobService) toResponse(j domain.Job) dto.JobResponse {
	return dto.ToJobResponse(j, s.calc.JobRevenue(j).StringFixed(0))
}

func (s *jobService) ListJobs(ctx context.Context, params dto.ListJobsParams) (*dto.ListJobsResponse, error) {
	status, err := parseStatus(params.Status)
	if err != nil {
		return nil, err
	}
	from, to, empty, err := dayBounds(params.From, params.To, s.calc.Location())
	if err != nil {
		return nil, err
	}
	if empty {
		return &dto.ListJobsResponse{Jobs: []dto.JobResponse{}}, nil
	}

	limit := pagination.ClampLimit(params.Limit)
	q := portsrepo.JobQuery{
		Status:     status,
		ClientID:   params.ClientID,
		BuildingID: params.BuildingID,
		WorkerID:   params.WorkerID,
		From:       from,
		To:         to,
		Search:     params.Search,
		Limit:      limit + 1,
	}
	if params.NextToken != "" {
		at, id, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			s.LogWarn(ctx, "Rejected job list cursor", slog.String("error", err.Error()))
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrInvalidNextToken)
		}
		q.AfterScheduledAt = &at
		q.AfterID = id
	}

	jobs, err := s.jobRepo.FindJobs(ctx, q)
	if err != nil {
		s.LogError(ctx, err, "Failed to list jobs")
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	resp := &dto.ListJobsResponse{Jobs: make([]dto.JobResponse, 0, min(len(jobs), limit))}
	if len(jobs) > limit {
		jobs = jobs[:limit]
		last := jobs[len(jobs)-1]
		token := pagination.EncodeToken(last.ScheduledAt, last.JobID)
		resp.NextToken = &token
	}
	for _, j := range jobs {
		resp.Jobs = append(resp.Jobs, s.toResponse(j))
	}
	return resp, nil
}

func (s *jobService) GetJob(ctx context.Context, jobID string) (*domain.Job, error) {
	job, err := s.jobRepo.FindJobByID(ctx, jobID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get job", slog.String("job_id", jobID))
		}
		return nil, err
	}
	return job, nil
}

func (s *jobService) JobRevenue(j domain.Job) string {
	return s.calc.JobRevenue(j).StringFixed(0)
}

func (s *jobService) UpdateJob(ctx context.Context, jobID string, req dto.UpdateJobRequest, userID string) (*domain.Job, error) {
	update, err := toJobUpdate(req)
	if err != nil {
		return nil, err
	}

	now := s.now()
	job, err := s.jobRepo.UpdateJob(ctx, jobID, func(job *domain.Job) error {
		return applyJobUpdate(job, update, userID, now)
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrInvalidTransition):
			s.LogWarn(ctx, "Job update rejected", slog.String("job_id", jobID), slog.String("error", err.Error()))
		default:
			s.LogError(ctx, err, "Failed to update job", slog.String("job_id", jobID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Job updated",
		slog.String("job_id", jobID),
		slog.String("status", string(job.Status)),
		slog.String("user_id", userID))
	return job, nil
}

func toJobUpdate(req dto.UpdateJobRequest) (domain.JobUpdate, error) {
	var update domain.JobUpdate
	if req.Status == nil && req.CompletionRate == nil && req.IsVisible == nil && req.Notes == nil {
		return update, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrEmptyJobUpdate)
	}
	if req.Status != nil {
		st, err := domain.ParseJobStatus(*req.Status)
		if err != nil {
			return update, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		update.Status = &st
	}
	if req.CompletionRate != nil && (*req.CompletionRate < 0 || *req.CompletionRate > 100) {
		return update, fmt.Errorf("%w: completionRate must be between 0 and 100", apperrors.ErrValidation)
	}
	update.CompletionRate = req.CompletionRate
	update.IsVisible = req.IsVisible
	update.Notes = req.Notes
	return update, nil
}

// applyJobUpdate mutates job in place. Status changes follow the job lifecycle and stamp
// the start and completion times; repeating the current status is a no-op.
func applyJobUpdate(job *domain.Job, u domain.JobUpdate, userID string, now time.Time) error {
	if u.Status != nil && *u.Status != job.Status {
		if !job.Status.CanTransitionTo(*u.Status) {
			return apperrors.NewAppError(409,
				fmt.Sprintf("cannot move job from %s to %s", job.Status, *u.Status),
				apperrors.ErrInvalidTransition)
		}
		job.Status = *u.Status
		switch job.Status {
		case domain.JobInProgress:
			if job.StartedAt == nil {
				t := now
				job.StartedAt = &t
			}
		case domain.JobCompleted:
			t := now
			job.CompletedAt = &t
		}
	}
	if u.CompletionRate != nil {
		job.CompletionRate = *u.CompletionRate
	}
	if u.IsVisible != nil {
		job.IsVisible = *u.IsVisible
	}
	if u.Notes != nil {
		job.Notes = *u.Notes
	}
	job.LastUpdatedAt = now
	job.LastUpdatedBy = userID
	return nil
}
