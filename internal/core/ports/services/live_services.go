package services

import (
	"context"

	"github.com/cleanit/cleanit_admin/internal/core/domain"
)

// LiveSvc pushes fresh snapshots to subscribers whenever the record store changes.
type LiveSvc interface {
	// Subscribe returns a channel that receives an initial snapshot and then one per
	// change to any of collections (all collections when empty). A slow reader only
	// sees the latest snapshot. The channel is closed when ctx is done or the service
	// is closed.
	Subscribe(ctx context.Context, collections []domain.Collection) (<-chan domain.Snapshot, error)
	// Run consumes the change feed until ctx is cancelled.
	Run(ctx context.Context) error
	Close()
}
