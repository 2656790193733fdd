package dto

import (
	"time"

	"github.com/cleanit/cleanit_admin/internal/core/domain"
)

// ListJobsParams are the query parameters of the job listing.
type ListJobsParams struct {
	AnalyticsQuery
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=200"`
	NextToken string `form:"nextToken"`
}

// UpdateJobRequest is a partial update; omitted fields are left unchanged.
type UpdateJobRequest struct {
	Status         *string  `json:"status" binding:"omitempty,oneof=scheduled in_progress completed cancelled"`
	CompletionRate *float64 `json:"completionRate" binding:"omitempty,min=0,max=100"`
	IsVisible      *bool    `json:"isVisible"`
	Notes          *string  `json:"notes" binding:"omitempty,max=2000"`
}

// JobResponse defines the data returned for a job.
type JobResponse struct {
	JobID          string     `json:"jobID"`
	BuildingID     string     `json:"buildingID"`
	WorkerID       string     `json:"workerID"`
	Status         string     `json:"status"`
	ScheduledAt    time.Time  `json:"scheduledAt"`
	StartedAt      *time.Time `json:"startedAt,omitempty"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	Areas          []string   `json:"areas"`
	CompletionRate float64    `json:"completionRate"`
	IsVisible      bool       `json:"isVisible"`
	Notes          string     `json:"notes,omitempty"`
	Revenue        string     `json:"revenue"`
	LastUpdatedAt  time.Time  `json:"lastUpdatedAt"`
	LastUpdatedBy  string     `json:"lastUpdatedBy"`
}

// ListJobsResponse is one page of jobs.
type ListJobsResponse struct {
	Jobs      []JobResponse `json:"jobs"`
	NextToken *string       `json:"nextToken,omitempty"`
}

// ToJobResponse converts a domain.Job to JobResponse DTO. revenue is the priced value
// of the job, formatted by the caller.
func ToJobResponse(j domain.Job, revenue string) JobResponse {
	areas := j.Areas
	if areas == nil {
		areas = []string{}
	}
	return JobResponse{
		JobID:          j.JobID,
		BuildingID:     j.BuildingID,
		WorkerID:       j.WorkerID,
		Status:         string(j.Status),
		ScheduledAt:    j.ScheduledAt,
		StartedAt:      j.StartedAt,
		CompletedAt:    j.CompletedAt,
		Areas:          areas,
		CompletionRate: j.CompletionRate,
		IsVisible:      j.IsVisible,
		Notes:          j.Notes,
		Revenue:        revenue,
		LastUpdatedAt:  j.LastUpdatedAt,
		LastUpdatedBy:  j.LastUpdatedBy,
	}
}
