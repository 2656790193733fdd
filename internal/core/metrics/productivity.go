package metrics

import (
	"math"
	"sort"

	"github.com/cleanit/cleanit_admin/internal/core/domain"
)

// ProductivityReport is the composite productivity view of one worker.
type ProductivityReport struct {
	WorkerID          string  `json:"workerID"`
	WorkerName        string  `json:"workerName"`
	CompletedJobs     int     `json:"completedJobs"`
	TotalHours        float64 `json:"totalHours"`
	AvgDuration       float64 `json:"avgDuration"` // hours per timed job
	Efficiency        float64 `json:"efficiency"`  // timed jobs per worked hour
	EfficiencyScore   float64 `json:"efficiencyScore"`
	Consistency       float64 `json:"consistency"`
	Quality           float64 `json:"quality"`
	AverageRating     float64 `json:"averageRating"`
	OnTimeRate        float64 `json:"onTimeRate"`
	ProductivityScore float64 `json:"productivityScore"`
}

// Productivity scores one worker from their visible completed jobs and visible reviews.
// Jobs without both start and completion timestamps count as completed but are left out
// of worked time and efficiency. Jobs without a start timestamp do not count toward the
// on-time rate. A worker without ratings is judged on completion alone.
func (c *Calculator) Productivity(workerID string, jobs []domain.Job, reviews []domain.Review) ProductivityReport {
	report := ProductivityReport{WorkerID: workerID}

	var durations, completion []float64
	var started, onTime int
	for _, j := range jobs {
		if j.WorkerID != workerID || !j.IsVisible || j.Status != domain.JobCompleted {
			continue
		}
		report.CompletedJobs++
		completion = append(completion, clamp(j.CompletionRate, 0, 100))
		if d, ok := j.Duration(); ok {
			durations = append(durations, d.Hours())
		}
		if j.StartedAt != nil {
			started++
			if !j.StartedAt.After(j.ScheduledAt.Add(c.cfg.OnTimeTolerance)) {
				onTime++
			}
		}
	}

	var ratings []float64
	for _, r := range reviews {
		if r.WorkerID == workerID && r.IsVisible && validRating(r.Rating) {
			ratings = append(ratings, r.Rating)
		}
	}

	for _, h := range durations {
		report.TotalHours += h
	}
	report.AvgDuration = mean(durations)
	report.Efficiency = safeDiv(float64(len(durations)), report.TotalHours)
	report.EfficiencyScore = clamp(safeDiv(report.Efficiency, c.cfg.TargetJobsPerHour)*100, 0, 100)

	if len(durations) > 0 {
		cv := safeDiv(stddev(durations), report.AvgDuration)
		report.Consistency = clamp(100-cv*100, 0, 100)
	}

	report.AverageRating = mean(ratings)
	switch {
	case report.CompletedJobs == 0:
	case len(ratings) == 0:
		report.Quality = mean(completion)
	default:
		report.Quality = c.cfg.QualityCompletionWeight*mean(completion) +
			c.cfg.QualityRatingWeight*(report.AverageRating/5*100)
	}
	report.OnTimeRate = safeDiv(float64(onTime), float64(started)) * 100

	w := c.cfg.Weights
	report.ProductivityScore = finite(w.Efficiency*report.EfficiencyScore +
		w.Consistency*report.Consistency +
		w.Quality*report.Quality +
		w.OnTime*report.OnTimeRate)
	return report
}

// TeamProductivity scores every worker in the directory, best first.
func (c *Calculator) TeamProductivity(jobs []domain.Job, reviews []domain.Review, dir Directory) []ProductivityReport {
	out := make([]ProductivityReport, 0)
	for id, u := range dir.Users {
		if _, ok := u.Profile.(domain.WorkerProfile); !ok {
			continue
		}
		r := c.Productivity(id, jobs, reviews)
		r.WorkerName = dir.UserName(id)
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if math.Abs(out[i].ProductivityScore-out[j].ProductivityScore) > 1e-9 {
			return out[i].ProductivityScore > out[j].ProductivityScore
		}
		return out[i].WorkerID < out[j].WorkerID
	})
	return out
}
