package services

import (
	"context"
	"fmt"
	"time"

	"github.com/cleanit/cleanit_admin/internal/core/domain"
	portsrepo "github.com/cleanit/cleanit_admin/internal/core/ports/repositories"
	portssvc "github.com/cleanit/cleanit_admin/internal/core/ports/services"
	"golang.org/x/sync/errgroup"
)

// snapshotLoader reads the four analytics collections concurrently.
type snapshotLoader struct {
	jobs      portsrepo.JobReader
	buildings portsrepo.BuildingReader
	users     portsrepo.UserReader
	reviews   portsrepo.ReviewReader
	now       func() time.Time
}

// NewSnapshotLoader creates a loader over the given repositories.
func NewSnapshotLoader(repos portsrepo.RepositoryProvider) portssvc.SnapshotLoader {
	return &snapshotLoader{
		jobs:      repos.JobRepo,
		buildings: repos.BuildingRepo,
		users:     repos.UserRepo,
		reviews:   repos.ReviewRepo,
		now:       time.Now,
	}
}

var _ portssvc.SnapshotLoader = (*snapshotLoader)(nil)

func (l *snapshotLoader) LoadSnapshot(ctx context.Context) (domain.Snapshot, error) {
	var snap domain.Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if snap.Jobs, err = l.jobs.FindAllJobs(gctx); err != nil {
			return fmt.Errorf("failed to load jobs: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if snap.Buildings, err = l.buildings.FindBuildings(gctx); err != nil {
			return fmt.Errorf("failed to load buildings: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if snap.Users, err = l.users.FindUsers(gctx, ""); err != nil {
			return fmt.Errorf("failed to load users: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if snap.Reviews, err = l.reviews.FindAllReviews(gctx); err != nil {
			return fmt.Errorf("failed to load reviews: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.Snapshot{}, err
	}
	snap.TakenAt = l.now()
	return snap, nil
}
