package mapping

import (
	"github.com/cleanit/cleanit_admin/internal/core/domain"
	"github.com/cleanit/cleanit_admin/internal/models"
)

// ToDomainJob converts a model Job to a domain Job
func ToDomainJob(m models.Job) domain.Job {
	areas := m.Areas
	if areas == nil {
		areas = []string{}
	}
	return domain.Job{
		JobID:          m.JobID,
		BuildingID:     m.BuildingID,
		WorkerID:       m.WorkerID,
		Status:         domain.JobStatus(m.Status),
		ScheduledAt:    m.ScheduledAt,
		StartedAt:      m.StartedAt,
		CompletedAt:    m.CompletedAt,
		Areas:          areas,
		CompletionRate: m.CompletionRate,
		IsVisible:      m.IsVisible,
		Notes:          derefString(m.Notes),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJob converts a domain Job to a model Job
func ToModelJob(d domain.Job) models.Job {
	return models.Job{
		JobID:          d.JobID,
		BuildingID:     d.BuildingID,
		WorkerID:       d.WorkerID,
		Status:         string(d.Status),
		ScheduledAt:    d.ScheduledAt,
		StartedAt:      d.StartedAt,
		CompletedAt:    d.CompletedAt,
		Areas:          d.Areas,
		CompletionRate: d.CompletionRate,
		IsVisible:      d.IsVisible,
		Notes:          stringPtr(d.Notes),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainJobSlice(ms []models.Job) []domain.Job {
	ds := make([]domain.Job, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJob(m)
	}
	return ds
}
