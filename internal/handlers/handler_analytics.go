package handlers

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/cleanit/cleanit_admin/internal/core/charts"
	"github.com/cleanit/cleanit_admin/internal/core/export"
	"github.com/cleanit/cleanit_admin/internal/core/metrics"
	portssvc "github.com/cleanit/cleanit_admin/internal/core/ports/services"
	"github.com/cleanit/cleanit_admin/internal/dto"
	"github.com/gin-gonic/gin"
)

const (
	csvContentType  = "text/csv; charset=utf-8"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// analyticsHandler serves the console's metric endpoints.
type analyticsHandler struct {
	analyticsService portssvc.AnalyticsSvc
	now              func() time.Time
}

func newAnalyticsHandler(as portssvc.AnalyticsSvc) *analyticsHandler {
	return &analyticsHandler{analyticsService: as, now: time.Now}
}

// registerAnalyticsRoutes registers the metric routes.
func registerAnalyticsRoutes(rg *gin.RouterGroup, analyticsService portssvc.AnalyticsSvc) {
	h := newAnalyticsHandler(analyticsService)

	analytics := rg.Group("/analytics")
	{
		analytics.GET("/dashboard", h.dashboard)
		analytics.GET("/revenue", h.revenue)
		analytics.GET("/revenue/trend", h.revenueTrend)
		analytics.GET("/satisfaction", h.satisfaction)
		analytics.GET("/satisfaction/trend", h.ratingTrend)
		analytics.GET("/leaderboards/workers", h.workerLeaderboard)
		analytics.GET("/leaderboards/clients", h.clientLeaderboard)
		analytics.GET("/productivity", h.teamProductivity)
		analytics.GET("/productivity/:workerID", h.workerProductivity)
		analytics.GET("/charts/:chart", h.chart)
		analytics.GET("/export/:report", h.export)
	}
}

func bindAnalyticsQuery(c *gin.Context) (dto.AnalyticsQuery, bool) {
	var q dto.AnalyticsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return q, false
	}
	return q, true
}

// dashboard godoc
// @Summary Dashboard overview
// @Description Headline revenue, satisfaction, status and directory figures for the filters.
// @Tags analytics
// @Produce json
// @Param status query string false "Job status"
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD), inclusive"
// @Param clientId query string false "Client user ID"
// @Param buildingId query string false "Building ID"
// @Param workerId query string false "Worker user ID"
// @Param q query string false "Free-text search"
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /analytics/dashboard [get]
func (h *analyticsHandler) dashboard(c *gin.Context) {
	q, ok := bindAnalyticsQuery(c)
	if !ok {
		return
	}
	resp, err := h.analyticsService.Dashboard(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "Failed to compute dashboard")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// revenue godoc
// @Summary Revenue report
// @Description Revenue, cost, margin and month-over-month growth of completed jobs.
// @Tags analytics
// @Produce json
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD), inclusive"
// @Param clientId query string false "Client user ID"
// @Param buildingId query string false "Building ID"
// @Param workerId query string false "Worker user ID"
// @Success 200 {object} metrics.RevenueReport
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /analytics/revenue [get]
func (h *analyticsHandler) revenue(c *gin.Context) {
	q, ok := bindAnalyticsQuery(c)
	if !ok {
		return
	}
	report, err := h.analyticsService.RevenueReport(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "Failed to compute revenue")
		return
	}
	c.JSON(http.StatusOK, report)
}

// revenueTrend godoc
// @Summary Revenue trend
// @Description Revenue per calendar month or day, oldest first.
// @Tags analytics
// @Produce json
// @Param granularity query string false "month (default) or day"
// @Param periods query int false "Number of buckets (12 months or 30 days by default)"
// @Success 200 {array} metrics.RevenueBucket
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /analytics/revenue/trend [get]
func (h *analyticsHandler) revenueTrend(c *gin.Context) {
	q, ok := bindAnalyticsQuery(c)
	if !ok {
		return
	}
	var t dto.TrendQuery
	if err := c.ShouldBindQuery(&t); err != nil {
		respondBindError(c, err)
		return
	}
	buckets, err := h.analyticsService.RevenueTrend(c.Request.Context(), q, t)
	if err != nil {
		respondError(c, err, "Failed to compute revenue trend")
		return
	}
	c.JSON(http.StatusOK, buckets)
}

// satisfaction godoc
// @Summary Satisfaction report
// @Description Average rating, category averages and the rating distribution of visible reviews.
// @Tags analytics
// @Produce json
// @Param minRating query number false "Minimum rating"
// @Success 200 {object} metrics.SatisfactionReport
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /analytics/satisfaction [get]
func (h *analyticsHandler) satisfaction(c *gin.Context) {
	q, ok := bindAnalyticsQuery(c)
	if !ok {
		return
	}
	report, err := h.analyticsService.SatisfactionReport(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "Failed to compute satisfaction")
		return
	}
	c.JSON(http.StatusOK, report)
}

// ratingTrend godoc
// @Summary Rating trend
// @Tags analytics
// @Produce json
// @Param granularity query string false "month (default) or day"
// @Param periods query int false "Number of buckets"
// @Success 200 {array} metrics.RatingBucket
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /analytics/satisfaction/trend [get]
func (h *analyticsHandler) ratingTrend(c *gin.Context) {
	q, ok := bindAnalyticsQuery(c)
	if !ok {
		return
	}
	var t dto.TrendQuery
	if err := c.ShouldBindQuery(&t); err != nil {
		respondBindError(c, err)
		return
	}
	buckets, err := h.analyticsService.RatingTrend(c.Request.Context(), q, t)
	if err != nil {
		respondError(c, err, "Failed to compute rating trend")
		return
	}
	c.JSON(http.StatusOK, buckets)
}

// workerLeaderboard godoc
// @Summary Worker leaderboard
// @Description Workers ranked by mean review rating.
// @Tags analytics
// @Produce json
// @Param limit query int false "Maximum entries"
// @Success 200 {array} metrics.LeaderboardEntry
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /analytics/leaderboards/workers [get]
func (h *analyticsHandler) workerLeaderboard(c *gin.Context) {
	h.leaderboard(c, h.analyticsService.WorkerLeaderboard)
}

// clientLeaderboard godoc
// @Summary Client leaderboard
// @Description Clients ranked by the mean rating of reviews on their buildings.
// @Tags analytics
// @Produce json
// @Param limit query int false "Maximum entries"
// @Success 200 {array} metrics.LeaderboardEntry
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /analytics/leaderboards/clients [get]
func (h *analyticsHandler) clientLeaderboard(c *gin.Context) {
	h.leaderboard(c, h.analyticsService.ClientLeaderboard)
}

type leaderboardFunc func(ctx context.Context, q dto.AnalyticsQuery, limit int) ([]metrics.LeaderboardEntry, error)

func (h *analyticsHandler) leaderboard(c *gin.Context, fn leaderboardFunc) {
	q, ok := bindAnalyticsQuery(c)
	if !ok {
		return
	}
	var lq dto.LeaderboardQuery
	if err := c.ShouldBindQuery(&lq); err != nil {
		respondBindError(c, err)
		return
	}
	entries, err := fn(c.Request.Context(), q, lq.Limit)
	if err != nil {
		respondError(c, err, "Failed to compute leaderboard")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// teamProductivity godoc
// @Summary Team productivity
// @Description Productivity report of every worker, best score first.
// @Tags analytics
// @Produce json
// @Success 200 {array} metrics.ProductivityReport
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /analytics/productivity [get]
func (h *analyticsHandler) teamProductivity(c *gin.Context) {
	q, ok := bindAnalyticsQuery(c)
	if !ok {
		return
	}
	reports, err := h.analyticsService.TeamProductivity(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "Failed to compute productivity")
		return
	}
	c.JSON(http.StatusOK, reports)
}

// workerProductivity godoc
// @Summary Worker productivity
// @Description Efficiency, consistency, quality and on-time rate of one worker.
// @Tags analytics
// @Produce json
// @Param workerID path string true "Worker user ID"
// @Success 200 {object} metrics.ProductivityReport
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Worker not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /analytics/productivity/{workerID} [get]
func (h *analyticsHandler) workerProductivity(c *gin.Context) {
	q, ok := bindAnalyticsQuery(c)
	if !ok {
		return
	}
	workerID := c.Param("workerID")
	report, err := h.analyticsService.WorkerProductivity(c.Request.Context(), workerID, q)
	if err != nil {
		respondError(c, err, "Failed to compute productivity")
		return
	}
	c.JSON(http.StatusOK, report)
}

// chart godoc
// @Summary Chart data
// @Description Labels and datasets of a named chart, ready for the console's chart widgets.
// @Tags analytics
// @Produce json
// @Param chart path string true "revenue-trend, rating-trend, worker-leaderboard, client-leaderboard, categories, rating-distribution, status or productivity"
// @Param type query string false "line, bar, pie or doughnut"
// @Success 200 {object} charts.Data
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Unknown chart"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /analytics/charts/{chart} [get]
func (h *analyticsHandler) chart(c *gin.Context) {
	q, ok := bindAnalyticsQuery(c)
	if !ok {
		return
	}
	kind, err := charts.ParseKind(c.Query("type"), "")
	if err != nil {
		respondError(c, err, "Failed to build chart")
		return
	}
	data, err := h.analyticsService.Chart(c.Request.Context(), c.Param("chart"), kind, q)
	if err != nil {
		respondError(c, err, "Failed to build chart")
		return
	}
	c.JSON(http.StatusOK, data)
}

// export godoc
// @Summary Export a report
// @Description Downloads a report as CSV (default) or XLSX. The filename carries today's date.
// @Tags analytics
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param report path string true "revenue, revenue-trend, rating-trend, satisfaction, worker-leaderboard, client-leaderboard or productivity"
// @Param format query string false "csv or xlsx"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Unknown report"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /analytics/export/{report} [get]
func (h *analyticsHandler) export(c *gin.Context) {
	q, ok := bindAnalyticsQuery(c)
	if !ok {
		return
	}
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "format must be csv or xlsx"})
		return
	}

	report := c.Param("report")
	table, err := h.analyticsService.Export(c.Request.Context(), report, q)
	if err != nil {
		respondError(c, err, "Failed to export report")
		return
	}

	var buf bytes.Buffer
	contentType := csvContentType
	if format == "xlsx" {
		contentType = xlsxContentType
		err = export.WriteXLSX(&buf, report, table)
	} else {
		err = export.WriteCSV(&buf, table)
	}
	if err != nil {
		respondError(c, err, "Failed to export report")
		return
	}

	filename := export.Filename(report, format, h.now())
	loggerFor(c).Info("Report exported", slog.String("report", report), slog.String("format", format), slog.Int("rows", len(table.Rows)))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
