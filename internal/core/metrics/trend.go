package metrics

import (
	"time"

	"github.com/cleanit/cleanit_admin/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Granularity selects the calendar unit of a trend.
type Granularity string

const (
	Monthly Granularity = "month"
	Daily   Granularity = "day"
)

const (
	monthLabel = "2006-01"
	dayLabel   = "2006-01-02"
)

// RevenueBucket is one calendar period of a revenue trend.
type RevenueBucket struct {
	Label      string          `json:"label"`
	Start      time.Time       `json:"start"`
	Jobs       int             `json:"jobs"`
	Revenue    decimal.Decimal `json:"revenue"`
	AvgRevenue decimal.Decimal `json:"avgRevenue"`
}

// RatingBucket is one calendar period of a rating trend.
type RatingBucket struct {
	Label         string    `json:"label"`
	Start         time.Time `json:"start"`
	Reviews       int       `json:"reviews"`
	AverageRating float64   `json:"averageRating"`
}

// periods returns the start of each of the trailing n periods ending with the one
// containing now, oldest first, and the label index used to place records.
func (c *Calculator) periods(g Granularity, now time.Time, n int) ([]time.Time, map[string]int) {
	if n <= 0 {
		return []time.Time{}, map[string]int{}
	}
	loc := c.cfg.Location
	t := now.In(loc)
	var current time.Time
	if g == Daily {
		current = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	} else {
		current = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	}

	starts := make([]time.Time, n)
	index := make(map[string]int, n)
	for i := 0; i < n; i++ {
		back := n - 1 - i
		var s time.Time
		if g == Daily {
			s = current.AddDate(0, 0, -back)
		} else {
			s = current.AddDate(0, -back, 0)
		}
		starts[i] = s
		index[c.label(g, s)] = i
	}
	return starts, index
}

func (c *Calculator) label(g Granularity, t time.Time) string {
	t = t.In(c.cfg.Location)
	if g == Daily {
		return t.Format(dayLabel)
	}
	return t.Format(monthLabel)
}

// RevenueTrend buckets completed, visible jobs by CompletedAt into the trailing n periods.
// Jobs without CompletedAt are left out. Empty periods are kept with zero values.
func (c *Calculator) RevenueTrend(jobs []domain.Job, g Granularity, now time.Time, n int) []RevenueBucket {
	starts, index := c.periods(g, now, n)
	buckets := make([]RevenueBucket, len(starts))
	for i, s := range starts {
		buckets[i] = RevenueBucket{
			Label:      c.label(g, s),
			Start:      s,
			Revenue:    decimal.Zero,
			AvgRevenue: decimal.Zero,
		}
	}

	for _, j := range jobs {
		if !j.IsVisible || j.Status != domain.JobCompleted || j.CompletedAt == nil {
			continue
		}
		i, ok := index[c.label(g, *j.CompletedAt)]
		if !ok {
			continue
		}
		buckets[i].Jobs++
		buckets[i].Revenue = buckets[i].Revenue.Add(c.JobRevenue(j))
	}

	for i := range buckets {
		if buckets[i].Jobs > 0 {
			buckets[i].AvgRevenue = buckets[i].Revenue.DivRound(decimal.NewFromInt(int64(buckets[i].Jobs)), 2)
		}
	}
	return buckets
}

// MonthlyRevenueTrend is RevenueTrend over the trailing months (12 or 6 on the console).
func (c *Calculator) MonthlyRevenueTrend(jobs []domain.Job, now time.Time, months int) []RevenueBucket {
	return c.RevenueTrend(jobs, Monthly, now, months)
}

// DailyRevenueTrend is RevenueTrend over the trailing days (30 on the console).
func (c *Calculator) DailyRevenueTrend(jobs []domain.Job, now time.Time, days int) []RevenueBucket {
	return c.RevenueTrend(jobs, Daily, now, days)
}

// RatingTrend buckets visible reviews by CreatedAt and averages their rating per period.
func (c *Calculator) RatingTrend(reviews []domain.Review, g Granularity, now time.Time, n int) []RatingBucket {
	starts, index := c.periods(g, now, n)
	sums := make([]float64, len(starts))
	buckets := make([]RatingBucket, len(starts))
	for i, s := range starts {
		buckets[i] = RatingBucket{Label: c.label(g, s), Start: s}
	}

	for _, r := range reviews {
		if !r.IsVisible || !validRating(r.Rating) || r.CreatedAt.IsZero() {
			continue
		}
		i, ok := index[c.label(g, r.CreatedAt)]
		if !ok {
			continue
		}
		buckets[i].Reviews++
		sums[i] += r.Rating
	}

	for i := range buckets {
		buckets[i].AverageRating = safeDiv(sums[i], float64(buckets[i].Reviews))
	}
	return buckets
}

// MonthlyRatingTrend is RatingTrend over the trailing months.
func (c *Calculator) MonthlyRatingTrend(reviews []domain.Review, now time.Time, months int) []RatingBucket {
	return c.RatingTrend(reviews, Monthly, now, months)
}
