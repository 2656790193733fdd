package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cleanit/cleanit_admin/internal/apperrors"
	"github.com/cleanit/cleanit_admin/internal/core/charts"
	"github.com/cleanit/cleanit_admin/internal/core/domain"
	"github.com/cleanit/cleanit_admin/internal/core/export"
	"github.com/cleanit/cleanit_admin/internal/core/metrics"
	portssvc "github.com/cleanit/cleanit_admin/internal/core/ports/services"
	"github.com/cleanit/cleanit_admin/internal/dto"
)

const (
	defaultMonthlyPeriods = 12
	defaultDailyPeriods   = 30
	dashboardTrendMonths  = 6
	dashboardTopWorkers   = 5
)

// analyticsService implements the AnalyticsSvc interface
type analyticsService struct {
	BaseService
	loader portssvc.SnapshotLoader
	calc   *metrics.Calculator
}

// AnalyticsServiceOption is a functional option for configuring the analytics service
type AnalyticsServiceOption func(*analyticsService)

// WithAnalyticsClock overrides the clock used for month-to-date and trend windows.
func WithAnalyticsClock(now func() time.Time) AnalyticsServiceOption {
	return func(s *analyticsService) {
		s.Now = now
	}
}

// NewAnalyticsService creates a new analytics service with the provided options
func NewAnalyticsService(loader portssvc.SnapshotLoader, calc *metrics.Calculator, options ...AnalyticsServiceOption) portssvc.AnalyticsSvc {
	svc := &analyticsService{loader: loader, calc: calc}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AnalyticsSvc = (*analyticsService)(nil)

// view is one snapshot after the filter stage.
type view struct {
	dir     metrics.Directory
	jobs    []domain.Job
	reviews []domain.Review
	all     domain.Snapshot
}

func (s *analyticsService) filter(snap domain.Snapshot, q dto.AnalyticsQuery) (view, error) {
	jf, rf, err := analyticsFilters(q, s.calc.Location())
	if err != nil {
		return view{}, err
	}
	dir := metrics.NewDirectory(snap.Buildings, snap.Users)
	return view{
		dir:     dir,
		jobs:    s.calc.FilterJobs(snap.Jobs, jf, dir),
		reviews: s.calc.FilterReviews(snap.Reviews, rf, dir),
		all:     snap,
	}, nil
}

func (s *analyticsService) load(ctx context.Context, q dto.AnalyticsQuery) (view, error) {
	// Validate before touching the store.
	if _, _, err := analyticsFilters(q, s.calc.Location()); err != nil {
		return view{}, err
	}
	snap, err := s.loader.LoadSnapshot(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load analytics snapshot")
		return view{}, fmt.Errorf("failed to load analytics data: %w", err)
	}
	v, err := s.filter(snap, q)
	if err != nil {
		return view{}, err
	}
	s.LogDebug(ctx, "Analytics snapshot filtered",
		slog.Int("jobs", len(v.jobs)),
		slog.Int("reviews", len(v.reviews)))
	return v, nil
}

func trendParams(t dto.TrendQuery) (metrics.Granularity, int, error) {
	g := metrics.Monthly
	switch t.Granularity {
	case "", string(metrics.Monthly):
	case string(metrics.Daily):
		g = metrics.Daily
	default:
		return "", 0, fmt.Errorf("%w: granularity must be month or day", apperrors.ErrValidation)
	}
	n := t.Periods
	if n <= 0 {
		n = defaultMonthlyPeriods
		if g == metrics.Daily {
			n = defaultDailyPeriods
		}
	}
	return g, n, nil
}

func top(entries []metrics.LeaderboardEntry, limit int) []metrics.LeaderboardEntry {
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}

func (s *analyticsService) RevenueReport(ctx context.Context, q dto.AnalyticsQuery) (metrics.RevenueReport, error) {
	v, err := s.load(ctx, q)
	if err != nil {
		return metrics.RevenueReport{}, err
	}
	return s.calc.Revenue(v.jobs, s.now()), nil
}

func (s *analyticsService) RevenueTrend(ctx context.Context, q dto.AnalyticsQuery, t dto.TrendQuery) ([]metrics.RevenueBucket, error) {
	g, n, err := trendParams(t)
	if err != nil {
		return nil, err
	}
	v, err := s.load(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.calc.RevenueTrend(v.jobs, g, s.now(), n), nil
}

func (s *analyticsService) SatisfactionReport(ctx context.Context, q dto.AnalyticsQuery) (metrics.SatisfactionReport, error) {
	v, err := s.load(ctx, q)
	if err != nil {
		return metrics.SatisfactionReport{}, err
	}
	return metrics.Satisfaction(v.reviews), nil
}

func (s *analyticsService) RatingTrend(ctx context.Context, q dto.AnalyticsQuery, t dto.TrendQuery) ([]metrics.RatingBucket, error) {
	g, n, err := trendParams(t)
	if err != nil {
		return nil, err
	}
	v, err := s.load(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.calc.RatingTrend(v.reviews, g, s.now(), n), nil
}

func (s *analyticsService) WorkerLeaderboard(ctx context.Context, q dto.AnalyticsQuery, limit int) ([]metrics.LeaderboardEntry, error) {
	v, err := s.load(ctx, q)
	if err != nil {
		return nil, err
	}
	return top(metrics.WorkerLeaderboard(v.reviews, v.dir), limit), nil
}

func (s *analyticsService) ClientLeaderboard(ctx context.Context, q dto.AnalyticsQuery, limit int) ([]metrics.LeaderboardEntry, error) {
	v, err := s.load(ctx, q)
	if err != nil {
		return nil, err
	}
	return top(metrics.ClientLeaderboard(v.reviews, v.dir), limit), nil
}

func (s *analyticsService) WorkerProductivity(ctx context.Context, workerID string, q dto.AnalyticsQuery) (metrics.ProductivityReport, error) {
	v, err := s.load(ctx, q)
	if err != nil {
		return metrics.ProductivityReport{}, err
	}
	u, ok := v.dir.Users[workerID]
	if !ok || u.Role() != domain.RoleWorker {
		return metrics.ProductivityReport{}, fmt.Errorf("worker %s: %w", workerID, apperrors.ErrNotFound)
	}
	report := s.calc.Productivity(workerID, v.jobs, v.reviews)
	report.WorkerName = v.dir.UserName(workerID)
	return report, nil
}

func (s *analyticsService) TeamProductivity(ctx context.Context, q dto.AnalyticsQuery) ([]metrics.ProductivityReport, error) {
	v, err := s.load(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.calc.TeamProductivity(v.jobs, v.reviews, v.dir), nil
}

// Chart names accepted by Chart, with their default kind.
var chartDefaults = map[string]charts.Kind{
	"revenue-trend":       charts.Line,
	"rating-trend":        charts.Line,
	"worker-leaderboard":  charts.Bar,
	"client-leaderboard":  charts.Bar,
	"categories":          charts.Bar,
	"rating-distribution": charts.Pie,
	"status":              charts.Doughnut,
	"productivity":        charts.Bar,
}

func (s *analyticsService) Chart(ctx context.Context, name string, kind charts.Kind, q dto.AnalyticsQuery) (charts.Data, error) {
	def, ok := chartDefaults[name]
	if !ok {
		return charts.Data{}, fmt.Errorf("chart %q: %w", name, apperrors.ErrNotFound)
	}
	if kind == "" {
		kind = def
	}
	v, err := s.load(ctx, q)
	if err != nil {
		return charts.Data{}, err
	}
	now := s.now()

	switch name {
	case "revenue-trend":
		return charts.RevenueTrend(kind, s.calc.MonthlyRevenueTrend(v.jobs, now, defaultMonthlyPeriods)), nil
	case "rating-trend":
		return charts.RatingTrend(kind, s.calc.MonthlyRatingTrend(v.reviews, now, defaultMonthlyPeriods)), nil
	case "worker-leaderboard":
		return charts.Leaderboard(kind, top(metrics.WorkerLeaderboard(v.reviews, v.dir), 10)), nil
	case "client-leaderboard":
		return charts.Leaderboard(kind, top(metrics.ClientLeaderboard(v.reviews, v.dir), 10)), nil
	case "categories":
		return charts.Categories(kind, metrics.Satisfaction(v.reviews)), nil
	case "rating-distribution":
		return charts.RatingDistribution(kind, metrics.Satisfaction(v.reviews)), nil
	case "status":
		return charts.Statuses(kind, metrics.StatusBreakdown(v.jobs)), nil
	default:
		return charts.Productivity(kind, s.calc.TeamProductivity(v.jobs, v.reviews, v.dir)), nil
	}
}

func (s *analyticsService) Export(ctx context.Context, report string, q dto.AnalyticsQuery) (export.Table, error) {
	known := false
	for _, r := range export.Reports {
		if r == report {
			known = true
			break
		}
	}
	if !known {
		return export.Table{}, fmt.Errorf("report %q: %w", report, apperrors.ErrNotFound)
	}
	v, err := s.load(ctx, q)
	if err != nil {
		return export.Table{}, err
	}
	now := s.now()

	var table export.Table
	switch report {
	case export.ReportRevenue:
		table = export.RevenueTable(s.calc.Revenue(v.jobs, now))
	case export.ReportRevenueTrend:
		table = export.RevenueTrendTable(s.calc.MonthlyRevenueTrend(v.jobs, now, defaultMonthlyPeriods))
	case export.ReportRatingTrend:
		table = export.RatingTrendTable(s.calc.MonthlyRatingTrend(v.reviews, now, defaultMonthlyPeriods))
	case export.ReportSatisfaction:
		table = export.SatisfactionTable(metrics.Satisfaction(v.reviews))
	case export.ReportWorkers:
		table = export.LeaderboardTable(metrics.WorkerLeaderboard(v.reviews, v.dir))
	case export.ReportClients:
		table = export.LeaderboardTable(metrics.ClientLeaderboard(v.reviews, v.dir))
	case export.ReportProductivity:
		table = export.ProductivityTable(s.calc.TeamProductivity(v.jobs, v.reviews, v.dir))
	}
	s.LogInfo(ctx, "Report exported", slog.String("report", report), slog.Int("rows", len(table.Rows)))
	return table, nil
}

func (s *analyticsService) Dashboard(ctx context.Context, q dto.AnalyticsQuery) (dto.DashboardResponse, error) {
	v, err := s.load(ctx, q)
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	return s.dashboard(v), nil
}

func (s *analyticsService) DashboardFromSnapshot(snap domain.Snapshot, q dto.AnalyticsQuery) (dto.DashboardResponse, error) {
	v, err := s.filter(snap, q)
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	return s.dashboard(v), nil
}

func (s *analyticsService) dashboard(v view) dto.DashboardResponse {
	now := s.now()
	counts := dto.DashboardCounts{Jobs: len(v.jobs)}
	for _, b := range v.all.Buildings {
		if b.IsActive {
			counts.ActiveBuildings++
		}
	}
	for _, u := range v.all.Users {
		switch u.Profile.(type) {
		case domain.WorkerProfile:
			counts.Workers++
		case domain.ClientProfile:
			counts.Clients++
		}
	}
	return dto.DashboardResponse{
		Revenue:         s.calc.Revenue(v.jobs, now),
		Satisfaction:    metrics.Satisfaction(v.reviews),
		StatusBreakdown: metrics.StatusBreakdown(v.jobs),
		RevenueTrend:    s.calc.MonthlyRevenueTrend(v.jobs, now, dashboardTrendMonths),
		TopWorkers:      top(metrics.WorkerLeaderboard(v.reviews, v.dir), dashboardTopWorkers),
		Counts:          counts,
		GeneratedAt:     now,
	}
}
