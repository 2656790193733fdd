package models

import "time"

// Notification is a row of the notifications table.
type Notification struct {
	NotificationID string    `db:"notification_id"`
	RecipientID    string    `db:"recipient_id"`
	Title          string    `db:"title"`
	Body           string    `db:"body"`
	Status         string    `db:"status"`
	DeliverAfter   time.Time `db:"deliver_after"`
	CreatedAt      time.Time `db:"created_at"`
	CreatedBy      string    `db:"created_by"`
}
