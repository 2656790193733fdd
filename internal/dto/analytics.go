package dto

import (
	"time"

	"github.com/cleanit/cleanit_admin/internal/core/metrics"
)

// AnalyticsQuery holds the filter query parameters shared by analytics, job and review
// listings. Dates are calendar days (YYYY-MM-DD) in the configured timezone.
type AnalyticsQuery struct {
	Status     string  `form:"status" binding:"omitempty,oneof=scheduled in_progress completed cancelled"`
	From       string  `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To         string  `form:"to" binding:"omitempty,datetime=2006-01-02"`
	ClientID   string  `form:"clientId"`
	BuildingID string  `form:"buildingId"`
	WorkerID   string  `form:"workerId"`
	Search     string  `form:"q" binding:"omitempty,max=100"`
	MinRating  float64 `form:"minRating" binding:"omitempty,min=0,max=5"`
}

// TrendQuery selects trend granularity and length.
type TrendQuery struct {
	Granularity string `form:"granularity" binding:"omitempty,oneof=month day"`
	Periods     int    `form:"periods" binding:"omitempty,min=1,max=366"`
}

// LeaderboardQuery limits leaderboard length.
type LeaderboardQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// DashboardResponse is the overview shown on the console's landing page and pushed
// over the live stream.
type DashboardResponse struct {
	Revenue         metrics.RevenueReport      `json:"revenue"`
	Satisfaction    metrics.SatisfactionReport `json:"satisfaction"`
	StatusBreakdown []metrics.StatusCount      `json:"statusBreakdown"`
	RevenueTrend    []metrics.RevenueBucket    `json:"revenueTrend"`
	TopWorkers      []metrics.LeaderboardEntry `json:"topWorkers"`
	Counts          DashboardCounts            `json:"counts"`
	GeneratedAt     time.Time                  `json:"generatedAt"`
}

// DashboardCounts are headline directory totals.
type DashboardCounts struct {
	Jobs            int `json:"jobs"`
	ActiveBuildings int `json:"activeBuildings"`
	Workers         int `json:"workers"`
	Clients         int `json:"clients"`
}
