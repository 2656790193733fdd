package pgsql

import (
	"context"
	"fmt"

	"github.com/cleanit/cleanit_admin/internal/apperrors"
	"github.com/cleanit/cleanit_admin/internal/core/domain"
	portsrepo "github.com/cleanit/cleanit_admin/internal/core/ports/repositories"
	"github.com/cleanit/cleanit_admin/internal/models"
	"github.com/cleanit/cleanit_admin/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBuildingRepository struct {
	BaseRepository
}

func newPgxBuildingRepository(pool *pgxpool.Pool) portsrepo.BuildingReader {
	return &PgxBuildingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BuildingReader = (*PgxBuildingRepository)(nil)

func (r *PgxBuildingRepository) FindBuildings(ctx context.Context) ([]domain.Building, error) {
	query := `
		SELECT building_id, name, address, owner_id, floors, area_sqm, building_type, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM buildings
		ORDER BY name, building_id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query buildings", err)
	}
	modelBuildings, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Building])
	if err != nil {
		return nil, fmt.Errorf("failed to scan buildings: %w", err)
	}
	return mapping.ToDomainBuildingSlice(modelBuildings), nil
}
