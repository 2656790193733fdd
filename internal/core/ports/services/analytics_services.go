package services

import (
	"context"

	"github.com/cleanit/cleanit_admin/internal/core/charts"
	"github.com/cleanit/cleanit_admin/internal/core/domain"
	"github.com/cleanit/cleanit_admin/internal/core/export"
	"github.com/cleanit/cleanit_admin/internal/core/metrics"
	"github.com/cleanit/cleanit_admin/internal/dto"
)

// AnalyticsSvc computes console metrics over a fresh snapshot of the record store.
type AnalyticsSvc interface {
	RevenueReport(ctx context.Context, q dto.AnalyticsQuery) (metrics.RevenueReport, error)
	RevenueTrend(ctx context.Context, q dto.AnalyticsQuery, t dto.TrendQuery) ([]metrics.RevenueBucket, error)
	SatisfactionReport(ctx context.Context, q dto.AnalyticsQuery) (metrics.SatisfactionReport, error)
	RatingTrend(ctx context.Context, q dto.AnalyticsQuery, t dto.TrendQuery) ([]metrics.RatingBucket, error)
	WorkerLeaderboard(ctx context.Context, q dto.AnalyticsQuery, limit int) ([]metrics.LeaderboardEntry, error)
	ClientLeaderboard(ctx context.Context, q dto.AnalyticsQuery, limit int) ([]metrics.LeaderboardEntry, error)
	// WorkerProductivity returns apperrors.ErrNotFound when workerID is not a worker.
	WorkerProductivity(ctx context.Context, workerID string, q dto.AnalyticsQuery) (metrics.ProductivityReport, error)
	TeamProductivity(ctx context.Context, q dto.AnalyticsQuery) ([]metrics.ProductivityReport, error)

	// Chart renders a named chart; unknown names are apperrors.ErrNotFound.
	Chart(ctx context.Context, name string, kind charts.Kind, q dto.AnalyticsQuery) (charts.Data, error)
	// Export builds the table of a named report; unknown names are apperrors.ErrNotFound.
	Export(ctx context.Context, report string, q dto.AnalyticsQuery) (export.Table, error)

	Dashboard(ctx context.Context, q dto.AnalyticsQuery) (dto.DashboardResponse, error)
	// DashboardFromSnapshot computes the dashboard without touching the record store.
	DashboardFromSnapshot(snap domain.Snapshot, q dto.AnalyticsQuery) (dto.DashboardResponse, error)
}

// SnapshotLoader reads a consistent copy of the analytics collections.
type SnapshotLoader interface {
	LoadSnapshot(ctx context.Context) (domain.Snapshot, error)
}
