package dto

import (
	"time"

	"github.com/cleanit/cleanit_admin/internal/core/domain"
)

// SendNotificationRequest is a message from a manager to one user.
type SendNotificationRequest struct {
	RecipientID string `json:"recipientID" binding:"required"`
	Title       string `json:"title" binding:"required,max=120"`
	Body        string `json:"body" binding:"required,max=2000"`
}

// NotificationResponse defines the data returned for a notification.
type NotificationResponse struct {
	NotificationID string    `json:"notificationID"`
	RecipientID    string    `json:"recipientID"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	Status         string    `json:"status"`
	DeliverAfter   time.Time `json:"deliverAfter"`
	CreatedAt      time.Time `json:"createdAt"`
}

func ToNotificationResponse(n domain.Notification) NotificationResponse {
	return NotificationResponse{
		NotificationID: n.NotificationID,
		RecipientID:    n.RecipientID,
		Title:          n.Title,
		Body:           n.Body,
		Status:         string(n.Status),
		DeliverAfter:   n.DeliverAfter,
		CreatedAt:      n.CreatedAt,
	}
}
