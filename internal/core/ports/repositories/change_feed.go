package repositories

import (
	"context"

	"github.com/cleanit/cleanit_admin/internal/core/domain"
)

// ChangeFeed streams record store change events.
type ChangeFeed interface {
	// Listen delivers events to handle until ctx is cancelled or the feed fails.
	// It returns nil on cancellation.
	Listen(ctx context.Context, handle func(domain.ChangeEvent)) error
}
