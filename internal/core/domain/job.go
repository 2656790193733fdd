package domain

import (
	"fmt"
	"time"
)

// JobStatus indicates where a cleaning job is in its lifecycle.
type JobStatus string

const (
	JobScheduled  JobStatus = "scheduled"
	JobInProgress JobStatus = "in_progress"
	JobCompleted  JobStatus = "completed"
	JobCancelled  JobStatus = "cancelled"
)

// JobStatuses lists every status in display order.
var JobStatuses = []JobStatus{JobScheduled, JobInProgress, JobCompleted, JobCancelled}

// ParseJobStatus validates a raw status string.
func ParseJobStatus(s string) (JobStatus, error) {
	for _, st := range JobStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown job status %q", s)
}

// CanTransitionTo reports whether a job in status s may move to next.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	switch s {
	case JobScheduled:
		return next == JobInProgress || next == JobCancelled
	case JobInProgress:
		return next == JobCompleted || next == JobCancelled
	default:
		return false
	}
}

// Job is a single cleaning assignment of a worker to a building.
type Job struct {
	JobID          string     `json:"jobID"`
	BuildingID     string     `json:"buildingID"`
	WorkerID       string     `json:"workerID"`
	Status         JobStatus  `json:"status"`
	ScheduledAt    time.Time  `json:"scheduledAt"`
	StartedAt      *time.Time `json:"startedAt,omitempty"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	Areas          []string   `json:"areas"`
	CompletionRate float64    `json:"completionRate"` // 0-100
	IsVisible      bool       `json:"isVisible"`
	Notes          string     `json:"notes"`
	AuditFields
}

// Duration returns the actual working time, and false when either timestamp is missing.
func (j Job) Duration() (time.Duration, bool) {
	if j.StartedAt == nil || j.CompletedAt == nil {
		return 0, false
	}
	d := j.CompletedAt.Sub(*j.StartedAt)
	if d < 0 {
		return 0, false
	}
	return d, true
}

// JobUpdate carries the partial fields a manager may change on a job.
// Nil fields are left untouched.
type JobUpdate struct {
	Status         *JobStatus
	CompletionRate *float64
	IsVisible      *bool
	Notes          *string
}
