package pgsql

import (
	"log/slog"

	portsrepo "github.com/cleanit/cleanit_admin/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool, logger *slog.Logger) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		JobRepo:          newPgxJobRepository(dbPool),
		BuildingRepo:     newPgxBuildingRepository(dbPool),
		UserRepo:         newPgxUserRepository(dbPool),
		ReviewRepo:       newPgxReviewRepository(dbPool),
		NotificationRepo: newPgxNotificationRepository(dbPool),
		ChangeFeed:       newPgxChangeFeed(dbPool, logger),
	}
}
