package repositories

import (
	"context"

	"github.com/cleanit/cleanit_admin/internal/core/domain"
)

// NotificationWriter persists outgoing notifications.
type NotificationWriter interface {
	SaveNotification(ctx context.Context, n domain.Notification) error
}
