package handlers_test

import (
	"context"

	"github.com/cleanit/cleanit_admin/internal/core/charts"
	"github.com/cleanit/cleanit_admin/internal/core/domain"
	"github.com/cleanit/cleanit_admin/internal/core/export"
	"github.com/cleanit/cleanit_admin/internal/core/metrics"
	portssvc "github.com/cleanit/cleanit_admin/internal/core/ports/services"
	"github.com/cleanit/cleanit_admin/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AnalyticsService ---
type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) RevenueReport(ctx context.Context, q dto.AnalyticsQuery) (metrics.RevenueReport, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(metrics.RevenueReport), args.Error(1)
}
func (m *MockAnalyticsService) RevenueTrend(ctx context.Context, q dto.AnalyticsQuery, t dto.TrendQuery) ([]metrics.RevenueBucket, error) {
	args := m.Called(ctx, q, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]metrics.RevenueBucket), args.Error(1)
}
func (m *MockAnalyticsService) SatisfactionReport(ctx context.Context, q dto.AnalyticsQuery) (metrics.SatisfactionReport, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(metrics.SatisfactionReport), args.Error(1)
}
func (m *MockAnalyticsService) RatingTrend(ctx context.Context, q dto.AnalyticsQuery, t dto.TrendQuery) ([]metrics.RatingBucket, error) {
	args := m.Called(ctx, q, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]metrics.RatingBucket), args.Error(1)
}
func (m *MockAnalyticsService) WorkerLeaderboard(ctx context.Context, q dto.AnalyticsQuery, limit int) ([]metrics.LeaderboardEntry, error) {
	args := m.Called(ctx, q, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]metrics.LeaderboardEntry), args.Error(1)
}
func (m *MockAnalyticsService) ClientLeaderboard(ctx context.Context, q dto.AnalyticsQuery, limit int) ([]metrics.LeaderboardEntry, error) {
	args := m.Called(ctx, q, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]metrics.LeaderboardEntry), args.Error(1)
}
func (m *MockAnalyticsService) WorkerProductivity(ctx context.Context, workerID string, q dto.AnalyticsQuery) (metrics.ProductivityReport, error) {
	args := m.Called(ctx, workerID, q)
	return args.Get(0).(metrics.ProductivityReport), args.Error(1)
}
func (m *MockAnalyticsService) TeamProductivity(ctx context.Context, q dto.AnalyticsQuery) ([]metrics.ProductivityReport, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]metrics.ProductivityReport), args.Error(1)
}
func (m *MockAnalyticsService) Chart(ctx context.Context, name string, kind charts.Kind, q dto.AnalyticsQuery) (charts.Data, error) {
	args := m.Called(ctx, name, kind, q)
	return args.Get(0).(charts.Data), args.Error(1)
}
func (m *MockAnalyticsService) Export(ctx context.Context, report string, q dto.AnalyticsQuery) (export.Table, error) {
	args := m.Called(ctx, report, q)
	return args.Get(0).(export.Table), args.Error(1)
}
func (m *MockAnalyticsService) Dashboard(ctx context.Context, q dto.AnalyticsQuery) (dto.DashboardResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(dto.DashboardResponse), args.Error(1)
}
func (m *MockAnalyticsService) DashboardFromSnapshot(snap domain.Snapshot, q dto.AnalyticsQuery) (dto.DashboardResponse, error) {
	args := m.Called(snap, q)
	return args.Get(0).(dto.DashboardResponse), args.Error(1)
}

// --- Mock JobService ---
type MockJobService struct {
	mock.Mock
}

func (m *MockJobService) ListJobs(ctx context.Context, params dto.ListJobsParams) (*dto.ListJobsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJobsResponse), args.Error(1)
}
func (m *MockJobService) GetJob(ctx context.Context, jobID string) (*domain.Job, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobService) JobRevenue(j domain.Job) string {
	return "50000"
}
func (m *MockJobService) UpdateJob(ctx context.Context, jobID string, req dto.UpdateJobRequest, userID string) (*domain.Job, error) {
	args := m.Called(ctx, jobID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

// --- Mock ReviewService ---
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) ListReviews(ctx context.Context, params dto.ListReviewsParams) (*dto.ListReviewsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListReviewsResponse), args.Error(1)
}
func (m *MockReviewService) SetReviewVisibility(ctx context.Context, reviewID string, visible bool, userID string) (*domain.Review, error) {
	args := m.Called(ctx, reviewID, visible, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

// --- Mock DirectoryService ---
type MockDirectoryService struct {
	mock.Mock
}

func (m *MockDirectoryService) ListBuildings(ctx context.Context) ([]domain.Building, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Building), args.Error(1)
}
func (m *MockDirectoryService) ListUsers(ctx context.Context, role domain.Role) ([]domain.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}
func (m *MockAuthService) LoginWithIdentity(ctx context.Context, identity domain.ExternalIdentity) (*dto.LoginResponse, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}
func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest, creatorID string) (*domain.User, error) {
	args := m.Called(ctx, req, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAuthService) EnsureManager(ctx context.Context, name, email, password string) error {
	return m.Called(ctx, name, email, password).Error(0)
}

// --- Mock GoogleSignInService ---
type MockGoogleSignInService struct {
	mock.Mock
}

func (m *MockGoogleSignInService) Enabled() bool {
	return m.Called().Bool(0)
}
func (m *MockGoogleSignInService) LoginURL(state string) string {
	return m.Called(state).String(0)
}
func (m *MockGoogleSignInService) Exchange(ctx context.Context, code string) (domain.ExternalIdentity, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(domain.ExternalIdentity), args.Error(1)
}

// --- Mock NotificationService ---
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Send(ctx context.Context, req dto.SendNotificationRequest, senderID string) (*domain.Notification, error) {
	args := m.Called(ctx, req, senderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

// --- Mock LiveService ---
type MockLiveService struct {
	mock.Mock
}

func (m *MockLiveService) Subscribe(ctx context.Context, collections []domain.Collection) (<-chan domain.Snapshot, error) {
	args := m.Called(ctx, collections)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.Snapshot), args.Error(1)
}
func (m *MockLiveService) Run(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
func (m *MockLiveService) Close() {
	m.Called()
}

// Ensure mocks implement the interfaces
var (
	_ portssvc.AnalyticsSvc    = (*MockAnalyticsService)(nil)
	_ portssvc.JobSvcFacade    = (*MockJobService)(nil)
	_ portssvc.ReviewSvcFacade = (*MockReviewService)(nil)
	_ portssvc.DirectorySvc    = (*MockDirectoryService)(nil)
	_ portssvc.AuthSvc         = (*MockAuthService)(nil)
	_ portssvc.GoogleSignInSvc = (*MockGoogleSignInService)(nil)
	_ portssvc.NotificationSvc = (*MockNotificationService)(nil)
	_ portssvc.LiveSvc         = (*MockLiveService)(nil)
)
