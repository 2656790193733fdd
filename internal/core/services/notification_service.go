package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cleanit/cleanit_admin/internal/core/domain"
	"github.com/cleanit/cleanit_admin/internal/core/metrics"
	portsrepo "github.com/cleanit/cleanit_admin/internal/core/ports/repositories"
	portssvc "github.com/cleanit/cleanit_admin/internal/core/ports/services"
	"github.com/cleanit/cleanit_admin/internal/dto"
)

type notificationService struct {
	BaseService
	userRepo         portsrepo.UserReader
	notificationRepo portsrepo.NotificationWriter
	loc              *time.Location
}

// NotificationServiceOption is a functional option for configuring the notification service
type NotificationServiceOption func(*notificationService)

// WithNotificationClock overrides the clock used for quiet hour checks.
func WithNotificationClock(now func() time.Time) NotificationServiceOption {
	return func(s *notificationService) {
		s.Now = now
	}
}

// NewNotificationService creates a notification service. Quiet hours are evaluated in
// the calculator's time zone.
func NewNotificationService(userRepo portsrepo.UserReader, notificationRepo portsrepo.NotificationWriter, calc *metrics.Calculator, options ...NotificationServiceOption) portssvc.NotificationSvc {
	svc := &notificationService{
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		loc:              calc.Location(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.NotificationSvc = (*notificationService)(nil)

func (s *notificationService) Send(ctx context.Context, req dto.SendNotificationRequest, senderID string) (*domain.Notification, error) {
	recipient, err := s.userRepo.FindUserByID(ctx, req.RecipientID)
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	n := domain.Notification{
		NotificationID: uuid.NewString(),
		RecipientID:    recipient.UserID,
		Title:          req.Title,
		Body:           req.Body,
		Status:         domain.NotificationPending,
		DeliverAfter:   now,
		CreatedAt:      now,
		CreatedBy:      senderID,
	}
	if q := recipient.QuietHours; q != nil && q.Contains(now) {
		n.Status = domain.NotificationDeferred
		n.DeliverAfter = q.WindowEnd(now)
	}

	if err := s.notificationRepo.SaveNotification(ctx, n); err != nil {
		s.LogError(ctx, err, "Failed to save notification", slog.String("recipient_id", recipient.UserID))
		return nil, fmt.Errorf("failed to save notification: %w", err)
	}
	s.LogInfo(ctx, "Notification queued",
		slog.String("notification_id", n.NotificationID),
		slog.String("status", string(n.Status)),
		slog.Time("deliver_after", n.DeliverAfter))
	return &n, nil
}
