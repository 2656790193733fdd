package models

import "time"

// Job is a row of the jobs table.
type Job struct {
	JobID          string     `db:"job_id"`
	BuildingID     string     `db:"building_id"`
	WorkerID       string     `db:"worker_id"`
	Status         string     `db:"status"`
	ScheduledAt    time.Time  `db:"scheduled_at"`
	StartedAt      *time.Time `db:"started_at"`
	CompletedAt    *time.Time `db:"completed_at"`
	Areas          []string   `db:"areas"`
	CompletionRate float64    `db:"completion_rate"`
	IsVisible      bool       `db:"is_visible"`
	Notes          *string    `db:"notes"`
	AuditFields
}
