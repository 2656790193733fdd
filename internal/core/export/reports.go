package export

import (
	"github.com/cleanit/cleanit_admin/internal/core/domain"
	"github.com/cleanit/cleanit_admin/internal/core/metrics"
)

// Report names accepted by the export endpoint.
const (
	ReportRevenue      = "revenue"
	ReportRevenueTrend = "revenue-trend"
	ReportRatingTrend  = "rating-trend"
	ReportSatisfaction = "satisfaction"
	ReportWorkers      = "worker-leaderboard"
	ReportClients      = "client-leaderboard"
	ReportProductivity = "productivity"
)

// Reports lists every exportable report.
var Reports = []string{
	ReportRevenue, ReportRevenueTrend, ReportRatingTrend, ReportSatisfaction,
	ReportWorkers, ReportClients, ReportProductivity,
}

// RevenueTable is a two-column metric/value table.
func RevenueTable(r metrics.RevenueReport) Table {
	return Table{
		Columns: []Column{{Name: "metric"}, {Name: "value", Kind: Number, Precision: 2}},
		Rows: [][]any{
			{"completed_jobs", float64(r.CompletedJobs)},
			{"total_revenue", r.TotalRevenue},
			{"total_cost", r.TotalCost},
			{"monthly_revenue", r.MonthlyRevenue},
			{"previous_month_revenue", r.PreviousMonthRevenue},
			{"avg_revenue_per_job", r.AvgRevenuePerJob},
			{"growth_rate", r.GrowthRate},
			{"profit_margin", r.ProfitMargin},
		},
	}
}

func RevenueTrendTable(buckets []metrics.RevenueBucket) Table {
	t := Table{Columns: []Column{
		{Name: "period"},
		{Name: "jobs", Kind: Integer},
		{Name: "revenue", Kind: Money},
		{Name: "avg_revenue", Kind: Money},
	}}
	for _, b := range buckets {
		t.Rows = append(t.Rows, []any{b.Label, b.Jobs, b.Revenue, b.AvgRevenue})
	}
	return t
}

func RatingTrendTable(buckets []metrics.RatingBucket) Table {
	t := Table{Columns: []Column{
		{Name: "period"},
		{Name: "reviews", Kind: Integer},
		{Name: "average_rating", Kind: Number, Precision: 2},
	}}
	for _, b := range buckets {
		t.Rows = append(t.Rows, []any{b.Label, b.Reviews, b.AverageRating})
	}
	return t
}

// SatisfactionTable lists the overall average, each category and the star distribution.
func SatisfactionTable(r metrics.SatisfactionReport) Table {
	t := Table{Columns: []Column{
		{Name: "metric"},
		{Name: "value", Kind: Number, Precision: 2},
	}}
	t.Rows = append(t.Rows,
		[]any{"total_reviews", float64(r.TotalReviews)},
		[]any{"average_rating", r.AverageRating},
	)
	for _, cat := range domain.ReviewCategories {
		t.Rows = append(t.Rows, []any{"category_" + string(cat), r.CategoryAverages[cat]})
	}
	for i, n := range r.RatingDistribution {
		t.Rows = append(t.Rows, []any{"stars_" + string(rune('1'+i)), float64(n)})
	}
	return t
}

func LeaderboardTable(entries []metrics.LeaderboardEntry) Table {
	t := Table{Columns: []Column{
		{Name: "rank", Kind: Integer},
		{Name: "id"},
		{Name: "name"},
		{Name: "average_rating", Kind: Number, Precision: 2},
		{Name: "reviews", Kind: Integer},
	}}
	for i, e := range entries {
		t.Rows = append(t.Rows, []any{i + 1, e.ID, e.Name, e.AverageRating, e.Reviews})
	}
	return t
}

func ProductivityTable(reports []metrics.ProductivityReport) Table {
	t := Table{Columns: []Column{
		{Name: "worker_id"},
		{Name: "worker_name"},
		{Name: "completed_jobs", Kind: Integer},
		{Name: "total_hours", Kind: Number, Precision: 2},
		{Name: "avg_duration", Kind: Number, Precision: 2},
		{Name: "efficiency", Kind: Number, Precision: 3},
		{Name: "efficiency_score", Kind: Number, Precision: 1},
		{Name: "consistency", Kind: Number, Precision: 1},
		{Name: "quality", Kind: Number, Precision: 1},
		{Name: "average_rating", Kind: Number, Precision: 2},
		{Name: "on_time_rate", Kind: Number, Precision: 1},
		{Name: "productivity_score", Kind: Number, Precision: 1},
	}}
	for _, r := range reports {
		t.Rows = append(t.Rows, []any{
			r.WorkerID, r.WorkerName, r.CompletedJobs, r.TotalHours, r.AvgDuration,
			r.Efficiency, r.EfficiencyScore, r.Consistency, r.Quality, r.AverageRating, r.OnTimeRate,
			r.ProductivityScore,
		})
	}
	return t
}
