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

const reviewColumns = `rv.review_id, rv.job_id, rv.building_id, rv.worker_id, rv.rating,
	rv.cleanliness, rv.punctuality, rv.communication, rv.overall, rv.comment,
	rv.improvement_tags, rv.is_visible, rv.created_at`

type PgxReviewRepository struct {
	BaseRepository
}

func newPgxReviewRepository(pool *pgxpool.Pool) portsrepo.ReviewRepositoryFacade {
	return &PgxReviewRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReviewRepositoryFacade = (*PgxReviewRepository)(nil)

func collectReviews(rows pgx.Rows) ([]domain.Review, error) {
	modelReviews, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Review])
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainReviewSlice(modelReviews), nil
}

func (r *PgxReviewRepository) FindReviewByID(ctx context.Context, reviewID string) (*domain.Review, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+reviewColumns+` FROM reviews rv WHERE rv.review_id = $1;`, reviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to find review %s: %w", reviewID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Review])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find review %s: %w", reviewID, err)
	}
	review := mapping.ToDomainReview(m)
	return &review, nil
}

func (r *PgxReviewRepository) FindReviews(ctx context.Context, q portsrepo.ReviewQuery) ([]domain.Review, error) {
	var w whereBuilder
	if q.BuildingID != "" {
		w.add("rv.building_id = " + w.arg(q.BuildingID))
	}
	if q.WorkerID != "" {
		w.add("rv.worker_id = " + w.arg(q.WorkerID))
	}
	if q.ClientID != "" {
		w.add("rv.building_id IN (SELECT building_id FROM buildings WHERE owner_id = " + w.arg(q.ClientID) + ")")
	}
	if q.MinRating > 0 {
		w.add("rv.rating >= " + w.arg(q.MinRating))
	}
	if q.From != nil {
		w.add("rv.created_at >= " + w.arg(*q.From))
	}
	if q.To != nil {
		w.add("rv.created_at < " + w.arg(*q.To))
	}
	if q.Search != "" {
		p := w.arg(likePattern(q.Search))
		w.add(`(rv.comment ILIKE ` + p + ` OR array_to_string(rv.improvement_tags, ' ') ILIKE ` + p + `
			OR EXISTS (SELECT 1 FROM buildings b WHERE b.building_id = rv.building_id AND b.name ILIKE ` + p + `)
			OR EXISTS (SELECT 1 FROM users u WHERE u.user_id = rv.worker_id AND u.name ILIKE ` + p + `))`)
	}
	if q.AfterCreatedAt != nil {
		w.add("(rv.created_at, rv.review_id) < (" + w.arg(*q.AfterCreatedAt) + ", " + w.arg(q.AfterID) + ")")
	}

	query := `SELECT ` + reviewColumns + ` FROM reviews rv` + w.String() + ` ORDER BY rv.created_at DESC, rv.review_id DESC`
	if q.Limit > 0 {
		query += " LIMIT " + w.arg(q.Limit)
	}
	rows, err := r.Pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query reviews", err)
	}
	reviews, err := collectReviews(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan reviews: %w", err)
	}
	return reviews, nil
}

func (r *PgxReviewRepository) FindAllReviews(ctx context.Context) ([]domain.Review, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+reviewColumns+` FROM reviews rv ORDER BY rv.created_at, rv.review_id;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query reviews", err)
	}
	reviews, err := collectReviews(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan reviews: %w", err)
	}
	return reviews, nil
}

func (r *PgxReviewRepository) SetReviewVisibility(ctx context.Context, reviewID string, visible bool) (*domain.Review, error) {
	query := `UPDATE reviews rv SET is_visible = $2 WHERE rv.review_id = $1 RETURNING ` + reviewColumns + `;`
	rows, err := r.Pool.Query(ctx, query, reviewID, visible)
	if err != nil {
		return nil, fmt.Errorf("failed to update review %s: %w", reviewID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Review])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update review %s: %w", reviewID, err)
	}
	review := mapping.ToDomainReview(m)
	return &review, nil
}
