package mapping

import (
	"github.com/cleanit/cleanit_admin/internal/core/domain"
	"github.com/cleanit/cleanit_admin/internal/models"
)

func ToModelNotification(d domain.Notification) models.Notification {
	return models.Notification{
		NotificationID: d.NotificationID,
		RecipientID:    d.RecipientID,
		Title:          d.Title,
		Body:           d.Body,
		Status:         string(d.Status),
		DeliverAfter:   d.DeliverAfter,
		CreatedAt:      d.CreatedAt,
		CreatedBy:      d.CreatedBy,
	}
}
