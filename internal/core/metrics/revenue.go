package metrics

import (
	"time"

	"github.com/cleanit/cleanit_admin/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RevenueReport summarizes revenue and cost over completed jobs.
type RevenueReport struct {
	CompletedJobs        int             `json:"completedJobs"`
	TotalRevenue         decimal.Decimal `json:"totalRevenue"`
	TotalCost            decimal.Decimal `json:"totalCost"`
	MonthlyRevenue       decimal.Decimal `json:"monthlyRevenue"`
	PreviousMonthRevenue decimal.Decimal `json:"previousMonthRevenue"`
	AvgRevenuePerJob     decimal.Decimal `json:"avgRevenuePerJob"`
	GrowthRate           float64         `json:"growthRate"`   // percent, month over month
	ProfitMargin         float64         `json:"profitMargin"` // percent
}

// AreaMultiplier returns the price multiplier for an area tag, 1 for unknown tags.
func (c *Calculator) AreaMultiplier(area string) decimal.Decimal {
	if m, ok := c.cfg.AreaMultipliers[area]; ok {
		return m
	}
	return decimal.NewFromInt(1)
}

// JobRevenue prices a job from the fixed table: base price times every area multiplier.
func (c *Calculator) JobRevenue(job domain.Job) decimal.Decimal {
	price := c.cfg.BasePrice
	for _, area := range job.Areas {
		price = price.Mul(c.AreaMultiplier(area))
	}
	return price.Round(0)
}

// JobHours returns the hours worked on a job, using the default when timestamps are missing.
func (c *Calculator) JobHours(job domain.Job) float64 {
	if d, ok := job.Duration(); ok {
		return d.Hours()
	}
	return c.cfg.DefaultJobHours
}

// JobCost is labor for the job's hours plus the operating surcharge.
func (c *Calculator) JobCost(job domain.Job) decimal.Decimal {
	hours := decimal.NewFromFloat(c.JobHours(job))
	surcharge := decimal.NewFromFloat(1 + c.cfg.OperatingCostRate)
	return c.cfg.HourlyLaborRate.Mul(hours).Mul(surcharge).Round(0)
}

// GrowthRate is the percent change from prior to current, 0 when prior is 0.
func GrowthRate(current, prior float64) float64 {
	if prior == 0 {
		return 0
	}
	return finite((current - prior) / prior * 100)
}

// Revenue aggregates completed, visible jobs. Month figures are bucketed by CompletedAt
// relative to now; jobs without CompletedAt only count toward the all-time totals.
func (c *Calculator) Revenue(jobs []domain.Job, now time.Time) RevenueReport {
	loc := c.cfg.Location
	n := now.In(loc)
	thisMonth := time.Date(n.Year(), n.Month(), 1, 0, 0, 0, 0, loc)
	nextMonth := thisMonth.AddDate(0, 1, 0)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	report := RevenueReport{
		TotalRevenue:         decimal.Zero,
		TotalCost:            decimal.Zero,
		MonthlyRevenue:       decimal.Zero,
		PreviousMonthRevenue: decimal.Zero,
		AvgRevenuePerJob:     decimal.Zero,
	}

	for _, j := range jobs {
		if !j.IsVisible || j.Status != domain.JobCompleted {
			continue
		}
		rev := c.JobRevenue(j)
		report.CompletedJobs++
		report.TotalRevenue = report.TotalRevenue.Add(rev)
		report.TotalCost = report.TotalCost.Add(c.JobCost(j))

		if j.CompletedAt == nil {
			continue
		}
		at := j.CompletedAt.In(loc)
		switch {
		case !at.Before(thisMonth) && at.Before(nextMonth):
			report.MonthlyRevenue = report.MonthlyRevenue.Add(rev)
		case !at.Before(lastMonth) && at.Before(thisMonth):
			report.PreviousMonthRevenue = report.PreviousMonthRevenue.Add(rev)
		}
	}

	if report.CompletedJobs > 0 {
		report.AvgRevenuePerJob = report.TotalRevenue.DivRound(decimal.NewFromInt(int64(report.CompletedJobs)), 2)
	}
	report.GrowthRate = GrowthRate(report.MonthlyRevenue.InexactFloat64(), report.PreviousMonthRevenue.InexactFloat64())
	if !report.TotalRevenue.IsZero() {
		profit := report.TotalRevenue.Sub(report.TotalCost)
		report.ProfitMargin = safeDiv(profit.InexactFloat64(), report.TotalRevenue.InexactFloat64()) * 100
	}
	return report
}

// StatusCount is the number of visible jobs in one status.
type StatusCount struct {
	Status domain.JobStatus `json:"status"`
	Count  int              `json:"count"`
}

// StatusBreakdown counts visible jobs per status, in lifecycle order, including zero counts.
func StatusBreakdown(jobs []domain.Job) []StatusCount {
	counts := make(map[domain.JobStatus]int, len(domain.JobStatuses))
	for _, j := range jobs {
		if j.IsVisible {
			counts[j.Status]++
		}
	}
	out := make([]StatusCount, 0, len(domain.JobStatuses))
	for _, st := range domain.JobStatuses {
		out = append(out, StatusCount{Status: st, Count: counts[st]})
	}
	return out
}
