package metrics_test

import (
	"testing"
	"time"

	"github.com/cleanit/cleanit_admin/internal/core/domain"
	"github.com/cleanit/cleanit_admin/internal/core/metrics"
	"github.com/stretchr/testify/require"
)

func newCalculator(t *testing.T) *metrics.Calculator {
	t.Helper()
	calc, err := metrics.NewCalculator(metrics.DefaultConfig())
	require.NoError(t, err)
	return calc
}

func kst() *time.Location {
	return metrics.DefaultConfig().Location
}

func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, kst())
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func completedJob(id, workerID string, completedAt time.Time, areas ...string) domain.Job {
	return domain.Job{
		JobID:          id,
		BuildingID:     "b1",
		WorkerID:       workerID,
		Status:         domain.JobCompleted,
		ScheduledAt:    completedAt.Add(-3 * time.Hour),
		CompletedAt:    timePtr(completedAt),
		Areas:          areas,
		CompletionRate: 100,
		IsVisible:      true,
	}
}

func testDirectory() metrics.Directory {
	return metrics.NewDirectory(
		[]domain.Building{
			{BuildingID: "b1", Name: "Gangnam Tower", Address: "123 Teheran-ro", OwnerID: "c1", IsActive: true},
			{BuildingID: "b2", Name: "Mapo Office", Address: "45 Mapo-daero", OwnerID: "c2", IsActive: true},
		},
		[]domain.User{
			{UserID: "c1", Name: "Kim Client", Profile: domain.ClientProfile{CompanyName: "Kim Co"}},
			{UserID: "c2", Name: "Lee Client", Profile: domain.ClientProfile{CompanyName: "Lee Co"}},
			{UserID: "w1", Name: "Park Worker", Profile: domain.WorkerProfile{}},
			{UserID: "w2", Name: "Choi Worker", Profile: domain.WorkerProfile{}},
			{UserID: "m1", Name: "Jung Manager", Profile: domain.ManagerProfile{}},
		},
	)
}
