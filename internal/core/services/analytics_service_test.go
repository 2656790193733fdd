package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/cleanit/cleanit_admin/internal/apperrors"
	"github.com/cleanit/cleanit_admin/internal/core/charts"
	"github.com/cleanit/cleanit_admin/internal/core/domain"
	"github.com/cleanit/cleanit_admin/internal/core/export"
	portssvc "github.com/cleanit/cleanit_admin/internal/core/ports/services"
	"github.com/cleanit/cleanit_admin/internal/core/services"
	"github.com/cleanit/cleanit_admin/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type AnalyticsServiceTestSuite struct {
	suite.Suite
	loader  *fakeLoader
	service portssvc.AnalyticsSvc
}

func (suite *AnalyticsServiceTestSuite) SetupTest() {
	suite.loader = &fakeLoader{snap: testSnapshot()}
	suite.service = services.NewAnalyticsService(suite.loader, testCalculator(),
		services.WithAnalyticsClock(func() time.Time { return fixedNow }))
}

func (suite *AnalyticsServiceTestSuite) TestRevenueReport_OnlyVisibleCompletedJobs() {
	report, err := suite.service.RevenueReport(context.Background(), dto.AnalyticsQuery{})

	suite.Require().NoError(err)
	suite.Equal(1, report.CompletedJobs)
	suite.True(decimal.NewFromInt(75000).Equal(report.TotalRevenue), "got %s", report.TotalRevenue)
	suite.True(decimal.NewFromInt(75000).Equal(report.MonthlyRevenue))
}

func (suite *AnalyticsServiceTestSuite) TestInvalidDateIsRejectedBeforeLoading() {
	_, err := suite.service.RevenueReport(context.Background(), dto.AnalyticsQuery{From: "2026/10/01"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Equal(0, suite.loader.loadCount())
}

func (suite *AnalyticsServiceTestSuite) TestLoaderErrorIsWrapped() {
	suite.loader.err = assert.AnError

	_, err := suite.service.SatisfactionReport(context.Background(), dto.AnalyticsQuery{})

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *AnalyticsServiceTestSuite) TestSatisfactionReport_IgnoresHiddenReviews() {
	report, err := suite.service.SatisfactionReport(context.Background(), dto.AnalyticsQuery{})

	suite.Require().NoError(err)
	suite.Equal(1, report.TotalReviews)
	suite.InDelta(5.0, report.AverageRating, 1e-9)
	suite.Equal([5]int{0, 0, 0, 0, 1}, report.RatingDistribution)
}

func (suite *AnalyticsServiceTestSuite) TestTrendDefaults() {
	ctx := context.Background()

	monthly, err := suite.service.RevenueTrend(ctx, dto.AnalyticsQuery{}, dto.TrendQuery{})
	suite.Require().NoError(err)
	suite.Len(monthly, 12)

	daily, err := suite.service.RevenueTrend(ctx, dto.AnalyticsQuery{}, dto.TrendQuery{Granularity: "day"})
	suite.Require().NoError(err)
	suite.Len(daily, 30)

	ratings, err := suite.service.RatingTrend(ctx, dto.AnalyticsQuery{}, dto.TrendQuery{Periods: 3})
	suite.Require().NoError(err)
	suite.Len(ratings, 3)

	_, err = suite.service.RevenueTrend(ctx, dto.AnalyticsQuery{}, dto.TrendQuery{Granularity: "week"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AnalyticsServiceTestSuite) TestLeaderboards() {
	ctx := context.Background()

	workers, err := suite.service.WorkerLeaderboard(ctx, dto.AnalyticsQuery{}, 10)
	suite.Require().NoError(err)
	suite.Require().Len(workers, 1)
	suite.Equal("w1", workers[0].ID)
	suite.Equal("Park Worker", workers[0].Name)

	clients, err := suite.service.ClientLeaderboard(ctx, dto.AnalyticsQuery{}, 10)
	suite.Require().NoError(err)
	suite.Require().Len(clients, 1)
	suite.Equal("c1", clients[0].ID)
}

func (suite *AnalyticsServiceTestSuite) TestWorkerProductivity() {
	ctx := context.Background()

	report, err := suite.service.WorkerProductivity(ctx, "w1", dto.AnalyticsQuery{})
	suite.Require().NoError(err)
	suite.Equal("Park Worker", report.WorkerName)
	suite.Equal(1, report.CompletedJobs)

	_, err = suite.service.WorkerProductivity(ctx, "c1", dto.AnalyticsQuery{})
	suite.ErrorIs(err, apperrors.ErrNotFound)

	_, err = suite.service.WorkerProductivity(ctx, "nobody", dto.AnalyticsQuery{})
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AnalyticsServiceTestSuite) TestChart() {
	ctx := context.Background()

	status, err := suite.service.Chart(ctx, "status", "", dto.AnalyticsQuery{})
	suite.Require().NoError(err)
	suite.Equal(charts.Doughnut, status.Kind)
	suite.Equal([]string{"scheduled", "in_progress", "completed", "cancelled"}, status.Labels)
	suite.Equal([]float64{1, 0, 1, 0}, status.Datasets[0].Data)

	asBar, err := suite.service.Chart(ctx, "status", charts.Bar, dto.AnalyticsQuery{})
	suite.Require().NoError(err)
	suite.Equal(charts.Bar, asBar.Kind)

	_, err = suite.service.Chart(ctx, "weather", "", dto.AnalyticsQuery{})
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AnalyticsServiceTestSuite) TestExport() {
	ctx := context.Background()

	table, err := suite.service.Export(ctx, export.ReportRevenue, dto.AnalyticsQuery{})
	suite.Require().NoError(err)
	suite.Equal("metric", table.Columns[0].Name)
	suite.Len(table.Rows, 8)

	_, err = suite.service.Export(ctx, "payroll", dto.AnalyticsQuery{})
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Equal(1, suite.loader.loadCount())
}

func (suite *AnalyticsServiceTestSuite) TestDashboard() {
	resp, err := suite.service.Dashboard(context.Background(), dto.AnalyticsQuery{})

	suite.Require().NoError(err)
	suite.Equal(dto.DashboardCounts{Jobs: 2, ActiveBuildings: 1, Workers: 1, Clients: 2}, resp.Counts)
	suite.Len(resp.RevenueTrend, 6)
	suite.Len(resp.TopWorkers, 1)
	suite.Equal(fixedNow, resp.GeneratedAt)
}

func (suite *AnalyticsServiceTestSuite) TestDashboardFromSnapshot_AppliesFilters() {
	snap := testSnapshot()
	snap.Jobs = append(snap.Jobs, domain.Job{
		JobID: "j4", BuildingID: "b2", WorkerID: "w1", Status: domain.JobCancelled,
		ScheduledAt: fixedNow, IsVisible: true,
	})

	resp, err := suite.service.DashboardFromSnapshot(snap, dto.AnalyticsQuery{BuildingID: "b2"})

	suite.Require().NoError(err)
	suite.Equal(2, resp.Counts.Jobs)
	suite.Equal(0, resp.Revenue.CompletedJobs)
	suite.Equal(0, suite.loader.loadCount())
}

func TestAnalyticsService(t *testing.T) {
	suite.Run(t, new(AnalyticsServiceTestSuite))
}
