package domain

import "time"

// NotificationStatus tracks whether a message can go out now.
type NotificationStatus string

const (
	NotificationPending  NotificationStatus = "pending"
	NotificationDeferred NotificationStatus = "deferred"
)

// Notification is a message from a manager to a marketplace user.
type Notification struct {
	NotificationID string             `json:"notificationID"`
	RecipientID    string             `json:"recipientID"`
	Title          string             `json:"title"`
	Body           string             `json:"body"`
	Status         NotificationStatus `json:"status"`
	DeliverAfter   time.Time          `json:"deliverAfter"`
	CreatedAt      time.Time          `json:"createdAt"`
	CreatedBy      string             `json:"createdBy"`
}
