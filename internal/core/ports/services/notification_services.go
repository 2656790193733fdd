package services

import (
	"context"

	"github.com/cleanit/cleanit_admin/internal/core/domain"
	"github.com/cleanit/cleanit_admin/internal/dto"
)

// NotificationSvc queues messages to marketplace users.
type NotificationSvc interface {
	// Send stores the notification, deferring it past the recipient's quiet hours.
	Send(ctx context.Context, req dto.SendNotificationRequest, senderID string) (*domain.Notification, error)
}
