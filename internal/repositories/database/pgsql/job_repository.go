package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cleanit/cleanit_admin/internal/apperrors"
	"github.com/cleanit/cleanit_admin/internal/core/domain"
	portsrepo "github.com/cleanit/cleanit_admin/internal/core/ports/repositories"
	"github.com/cleanit/cleanit_admin/internal/models"
	"github.com/cleanit/cleanit_admin/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const jobColumns = `j.job_id, j.building_id, j.worker_id, j.status, j.scheduled_at, j.started_at,
	j.completed_at, j.areas, j.completion_rate, j.is_visible, j.notes,
	j.created_at, j.created_by, j.last_updated_at, j.last_updated_by`

type PgxJobRepository struct {
	BaseRepository
}

func newPgxJobRepository(pool *pgxpool.Pool) portsrepo.JobRepositoryFacade {
	return &PgxJobRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JobRepositoryFacade = (*PgxJobRepository)(nil)

func collectJobs(rows pgx.Rows) ([]domain.Job, error) {
	modelJobs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Job])
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainJobSlice(modelJobs), nil
}

func (r *PgxJobRepository) FindJobByID(ctx context.Context, jobID string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs j WHERE j.job_id = $1;`
	rows, err := r.Pool.Query(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to find job %s: %w", jobID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Job])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find job %s: %w", jobID, err)
	}
	job := mapping.ToDomainJob(m)
	return &job, nil
}

func (r *PgxJobRepository) FindJobs(ctx context.Context, q portsrepo.JobQuery) ([]domain.Job, error) {
	var w whereBuilder
	if q.Status != "" {
		w.add("j.status = " + w.arg(string(q.Status)))
	}
	if q.BuildingID != "" {
		w.add("j.building_id = " + w.arg(q.BuildingID))
	}
	if q.WorkerID != "" {
		w.add("j.worker_id = " + w.arg(q.WorkerID))
	}
	if q.ClientID != "" {
		w.add("j.building_id IN (SELECT building_id FROM buildings WHERE owner_id = " + w.arg(q.ClientID) + ")")
	}
	if q.From != nil {
		w.add("j.scheduled_at >= " + w.arg(*q.From))
	}
	if q.To != nil {
		w.add("j.scheduled_at < " + w.arg(*q.To))
	}
	if q.Search != "" {
		p := w.arg(likePattern(q.Search))
		w.add(`(j.notes ILIKE ` + p + ` OR array_to_string(j.areas, ' ') ILIKE ` + p + `
			OR EXISTS (SELECT 1 FROM buildings b WHERE b.building_id = j.building_id AND (b.name ILIKE ` + p + ` OR b.address ILIKE ` + p + `))
			OR EXISTS (SELECT 1 FROM users u WHERE u.user_id = j.worker_id AND u.name ILIKE ` + p + `))`)
	}
	if q.AfterScheduledAt != nil {
		w.add("(j.scheduled_at, j.job_id) < (" + w.arg(*q.AfterScheduledAt) + ", " + w.arg(q.AfterID) + ")")
	}

	query := `SELECT ` + jobColumns + ` FROM jobs j` + w.String() + ` ORDER BY j.scheduled_at DESC, j.job_id DESC`
	if q.Limit > 0 {
		query += " LIMIT " + w.arg(q.Limit)
	}

	rows, err := r.Pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query jobs", err)
	}
	jobs, err := collectJobs(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan jobs: %w", err)
	}
	return jobs, nil
}

func (r *PgxJobRepository) FindAllJobs(ctx context.Context) ([]domain.Job, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+jobColumns+` FROM jobs j ORDER BY j.scheduled_at, j.job_id;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query jobs", err)
	}
	jobs, err := collectJobs(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan jobs: %w", err)
	}
	return jobs, nil
}

// UpdateJob locks the row with SELECT ... FOR UPDATE so concurrent status changes are
// applied one after the other.
func (r *PgxJobRepository) UpdateJob(ctx context.Context, jobID string, mutate func(job *domain.Job) error) (_ *domain.Job, err error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = r.Rollback(ctx, tx)
		}
	}()

	rows, err := tx.Query(ctx, `SELECT `+jobColumns+` FROM jobs j WHERE j.job_id = $1 FOR UPDATE;`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock job %s: %w", jobID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Job])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock job %s: %w", jobID, err)
	}

	job := mapping.ToDomainJob(m)
	if err = mutate(&job); err != nil {
		return nil, err
	}

	updated := mapping.ToModelJob(job)
	_, err = tx.Exec(ctx, `
		UPDATE jobs SET
			status = $2,
			started_at = $3,
			completed_at = $4,
			completion_rate = $5,
			is_visible = $6,
			notes = $7,
			last_updated_at = $8,
			last_updated_by = $9
		WHERE job_id = $1;`,
		updated.JobID,
		updated.Status,
		updated.StartedAt,
		updated.CompletedAt,
		updated.CompletionRate,
		updated.IsVisible,
		updated.Notes,
		updated.LastUpdatedAt,
		updated.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update job %s: %w", jobID, err)
	}
	if err = r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &job, nil
}
