package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cleanit/cleanit_admin/internal/apperrors"
	"github.com/cleanit/cleanit_admin/internal/core/charts"
	"github.com/cleanit/cleanit_admin/internal/core/domain"
	"github.com/cleanit/cleanit_admin/internal/core/export"
	"github.com/cleanit/cleanit_admin/internal/core/metrics"
	portssvc "github.com/cleanit/cleanit_admin/internal/core/ports/services"
	"github.com/cleanit/cleanit_admin/internal/dto"
	"github.com/cleanit/cleanit_admin/internal/handlers"
	"github.com/cleanit/cleanit_admin/internal/platform/config"
	"github.com/cleanit/cleanit_admin/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const managerID = "manager-1"

// --- Test Suite ---
type HandlersTestSuite struct {
	suite.Suite
	router    *gin.Engine
	jwtSecret string

	analytics    *MockAnalyticsService
	jobs         *MockJobService
	reviews      *MockReviewService
	directory    *MockDirectoryService
	auth         *MockAuthService
	google       *MockGoogleSignInService
	notification *MockNotificationService
	live         *MockLiveService
}

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.analytics = new(MockAnalyticsService)
	suite.jobs = new(MockJobService)
	suite.reviews = new(MockReviewService)
	suite.directory = new(MockDirectoryService)
	suite.auth = new(MockAuthService)
	suite.google = new(MockGoogleSignInService)
	suite.notification = new(MockNotificationService)
	suite.live = new(MockLiveService)

	cfg := &config.Config{
		JWTSecret:      suite.jwtSecret,
		LoginRateLimit: "100-M",
		IsProduction:   true,
	}
	services := &portssvc.ServiceContainer{
		Analytics:    suite.analytics,
		Job:          suite.jobs,
		Review:       suite.reviews,
		Directory:    suite.directory,
		Auth:         suite.auth,
		GoogleSignIn: suite.google,
		Notification: suite.notification,
		Live:         suite.live,
	}
	suite.Require().NoError(handlers.RegisterRoutes(suite.router, cfg, services, nil))
}

func (suite *HandlersTestSuite) TearDownTest() {
	suite.analytics.AssertExpectations(suite.T())
	suite.jobs.AssertExpectations(suite.T())
	suite.reviews.AssertExpectations(suite.T())
	suite.directory.AssertExpectations(suite.T())
	suite.auth.AssertExpectations(suite.T())
	suite.google.AssertExpectations(suite.T())
	suite.notification.AssertExpectations(suite.T())
	suite.live.AssertExpectations(suite.T())
}

// generateTestToken creates a manager JWT for testing.
func (suite *HandlersTestSuite) generateTestToken(userID, role string) string {
	token, _, err := utils.GenerateJWT(userID, role, suite.jwtSecret, time.Hour, "cleanit-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *HandlersTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	return suite.doAs(managerID, method, path, body)
}

func (suite *HandlersTestSuite) doAs(userID, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID, "manager"))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) errorBody(w *httptest.ResponseRecorder) string {
	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func (suite *HandlersTestSuite) TestHealth() {
	w := suite.doAs("", http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlersTestSuite) TestProtectedRoutesRequireToken() {
	w := suite.doAs("", http.MethodGet, "/api/v1/analytics/revenue", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("w1", "worker"))
	w = httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlersTestSuite) TestLogin() {
	req := dto.LoginRequest{Email: "admin@cleanit.kr", Password: "secret-pass"}
	resp := &dto.LoginResponse{Token: "tok", User: dto.UserResponse{UserID: managerID}}
	suite.auth.On("Login", mock.Anything, req).Return(resp, nil).Once()

	w := suite.doAs("", http.MethodPost, "/api/v1/auth/login", req)

	suite.Equal(http.StatusOK, w.Code)
	var got dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal("tok", got.Token)
}

func (suite *HandlersTestSuite) TestLogin_Errors() {
	bad := dto.LoginRequest{Email: "admin@cleanit.kr", Password: "wrong"}
	suite.auth.On("Login", mock.Anything, bad).Return(nil, apperrors.ErrUnauthorized).Once()

	w := suite.doAs("", http.MethodPost, "/api/v1/auth/login", bad)
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.doAs("", http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "not-an-email"})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestRegister() {
	req := dto.RegisterRequest{Name: "Kim", Email: "kim@cleanit.kr", Password: "Clean-Sweep-2026"}
	user := &domain.User{UserID: "m2", Name: "Kim", Profile: domain.ManagerProfile{}}
	suite.auth.On("Register", mock.Anything, req, managerID).Return(user, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/register", req)

	suite.Equal(http.StatusCreated, w.Code)
	var got dto.UserResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal("m2", got.UserID)
	suite.Equal("manager", got.Role)
}

func (suite *HandlersTestSuite) TestRegister_RequiresManagerToken() {
	req := dto.RegisterRequest{Name: "Kim", Email: "kim@cleanit.kr", Password: "Clean-Sweep-2026"}
	w := suite.doAs("", http.MethodPost, "/api/v1/auth/register", req)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlersTestSuite) TestRegister_WeakPassword() {
	req := dto.RegisterRequest{Name: "Kim", Email: "kim@cleanit.kr", Password: "password1"}
	suite.auth.On("Register", mock.Anything, req, managerID).
		Return(nil, fmt.Errorf("%w: password too weak", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/register", req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.errorBody(w), "password too weak")
}

func (suite *HandlersTestSuite) TestRevenue_PassesFilters() {
	q := dto.AnalyticsQuery{From: "2026-10-01", To: "2026-10-15", BuildingID: "b1", Search: "lobby"}
	report := metrics.RevenueReport{CompletedJobs: 4, TotalRevenue: decimal.NewFromInt(300000)}
	suite.analytics.On("RevenueReport", mock.Anything, q).Return(report, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/analytics/revenue?from=2026-10-01&to=2026-10-15&buildingId=b1&q=lobby", nil)

	suite.Equal(http.StatusOK, w.Code)
	var got metrics.RevenueReport
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(4, got.CompletedJobs)
	suite.True(decimal.NewFromInt(300000).Equal(got.TotalRevenue))
}

func (suite *HandlersTestSuite) TestRevenue_BadDate() {
	w := suite.do(http.MethodGet, "/api/v1/analytics/revenue?from=10/01/2026", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestRevenue_StoreFailureHidesDetails() {
	suite.analytics.On("RevenueReport", mock.Anything, dto.AnalyticsQuery{}).
		Return(metrics.RevenueReport{}, errors.New("connection refused")).Once()

	w := suite.do(http.MethodGet, "/api/v1/analytics/revenue", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("Failed to compute revenue", suite.errorBody(w))
}

func (suite *HandlersTestSuite) TestRevenueTrend() {
	t := dto.TrendQuery{Granularity: "day", Periods: 7}
	buckets := []metrics.RevenueBucket{{Label: "2026-10-16"}}
	suite.analytics.On("RevenueTrend", mock.Anything, dto.AnalyticsQuery{}, t).Return(buckets, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/analytics/revenue/trend?granularity=day&periods=7", nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/analytics/revenue/trend?granularity=week", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestLeaderboards() {
	entries := []metrics.LeaderboardEntry{{ID: "w1", Name: "Park", AverageRating: 4.5, Reviews: 2}}
	suite.analytics.On("WorkerLeaderboard", mock.Anything, dto.AnalyticsQuery{}, 5).Return(entries, nil).Once()
	suite.analytics.On("ClientLeaderboard", mock.Anything, dto.AnalyticsQuery{}, 0).Return([]metrics.LeaderboardEntry{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/analytics/leaderboards/workers?limit=5", nil)
	suite.Equal(http.StatusOK, w.Code)
	var got []metrics.LeaderboardEntry
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(entries, got)

	w = suite.do(http.MethodGet, "/api/v1/analytics/leaderboards/clients", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[]`, w.Body.String())
}

func (suite *HandlersTestSuite) TestWorkerProductivity_NotFound() {
	suite.analytics.On("WorkerProductivity", mock.Anything, "ghost", dto.AnalyticsQuery{}).
		Return(metrics.ProductivityReport{}, fmt.Errorf("worker ghost: %w", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/analytics/productivity/ghost", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestChart() {
	data := charts.Data{Kind: charts.Pie, Labels: []string{"1"}, Datasets: []charts.Dataset{{Label: "Reviews", Data: []float64{2}}}}
	suite.analytics.On("Chart", mock.Anything, "rating-distribution", charts.Pie, dto.AnalyticsQuery{}).Return(data, nil).Once()
	suite.analytics.On("Chart", mock.Anything, "weather", charts.Kind(""), dto.AnalyticsQuery{}).
		Return(charts.Data{}, fmt.Errorf("chart %q: %w", "weather", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/analytics/charts/rating-distribution?type=pie", nil)
	suite.Equal(http.StatusOK, w.Code)
	var got charts.Data
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(charts.Pie, got.Kind)

	w = suite.do(http.MethodGet, "/api/v1/analytics/charts/weather", nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/analytics/charts/status?type=radar", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func exportTable() export.Table {
	return export.Table{
		Columns: []export.Column{{Name: "metric"}, {Name: "value", Kind: export.Integer}},
		Rows:    [][]any{{"completedJobs", 4}},
	}
}

func (suite *HandlersTestSuite) TestExport_CSV() {
	suite.analytics.On("Export", mock.Anything, "revenue", dto.AnalyticsQuery{}).Return(exportTable(), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/analytics/export/revenue", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	disposition := w.Header().Get("Content-Disposition")
	suite.True(strings.HasPrefix(disposition, `attachment; filename="revenue-`), disposition)
	suite.True(strings.HasSuffix(disposition, `.csv"`), disposition)

	parsed, err := export.ParseCSV(w.Body)
	suite.Require().NoError(err)
	suite.Equal([]string{"metric", "value"}, parsed.Header())
	suite.Len(parsed.Rows, 1)
}

func (suite *HandlersTestSuite) TestExport_XLSX() {
	suite.analytics.On("Export", mock.Anything, "revenue", dto.AnalyticsQuery{}).Return(exportTable(), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/analytics/export/revenue?format=xlsx", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Header().Get("Content-Type"), "spreadsheetml")
	suite.True(strings.HasSuffix(w.Header().Get("Content-Disposition"), `.xlsx"`))
	// XLSX files are zip archives.
	suite.True(bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))
}

func (suite *HandlersTestSuite) TestExport_Errors() {
	suite.analytics.On("Export", mock.Anything, "nope", dto.AnalyticsQuery{}).
		Return(export.Table{}, fmt.Errorf("report %q: %w", "nope", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/analytics/export/nope", nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/analytics/export/revenue?format=pdf", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestDashboard() {
	q := dto.AnalyticsQuery{WorkerID: "w1"}
	resp := dto.DashboardResponse{Counts: dto.DashboardCounts{Jobs: 3, Workers: 1}}
	suite.analytics.On("Dashboard", mock.Anything, q).Return(resp, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/analytics/dashboard?workerId=w1", nil)

	suite.Equal(http.StatusOK, w.Code)
	var got dto.DashboardResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(3, got.Counts.Jobs)
}

func (suite *HandlersTestSuite) TestListJobs() {
	params := dto.ListJobsParams{AnalyticsQuery: dto.AnalyticsQuery{Status: "completed"}, Limit: 2, NextToken: "abc"}
	next := "def"
	resp := &dto.ListJobsResponse{Jobs: []dto.JobResponse{{JobID: "j1"}}, NextToken: &next}
	suite.jobs.On("ListJobs", mock.Anything, params).Return(resp, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/jobs?status=completed&limit=2&nextToken=abc", nil)

	suite.Equal(http.StatusOK, w.Code)
	var got dto.ListJobsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Require().Len(got.Jobs, 1)
	suite.Equal("def", *got.NextToken)

	w = suite.do(http.MethodGet, "/api/v1/jobs?status=lost", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestGetJob() {
	job := &domain.Job{JobID: "j1", Status: domain.JobScheduled, Areas: []string{"로비"}}
	suite.jobs.On("GetJob", mock.Anything, "j1").Return(job, nil).Once()
	suite.jobs.On("GetJob", mock.Anything, "j404").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/jobs/j1", nil)
	suite.Equal(http.StatusOK, w.Code)
	var got dto.JobResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal("50000", got.Revenue)

	w = suite.do(http.MethodGet, "/api/v1/jobs/j404", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestUpdateJob() {
	status := "in_progress"
	req := dto.UpdateJobRequest{Status: &status}
	updated := &domain.Job{JobID: "j1", Status: domain.JobInProgress}
	suite.jobs.On("UpdateJob", mock.Anything, "j1", req, managerID).Return(updated, nil).Once()

	w := suite.do(http.MethodPatch, "/api/v1/jobs/j1", req)

	suite.Equal(http.StatusOK, w.Code)
	var got dto.JobResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal("in_progress", got.Status)
}

func (suite *HandlersTestSuite) TestUpdateJob_IllegalTransition() {
	status := "scheduled"
	req := dto.UpdateJobRequest{Status: &status}
	err := apperrors.NewAppError(http.StatusConflict, "cannot move job from completed to scheduled", apperrors.ErrInvalidTransition)
	suite.jobs.On("UpdateJob", mock.Anything, "j1", req, managerID).Return(nil, err).Once()

	w := suite.do(http.MethodPatch, "/api/v1/jobs/j1", req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("cannot move job from completed to scheduled", suite.errorBody(w))
}

func (suite *HandlersTestSuite) TestUpdateJob_InvalidBody() {
	w := suite.do(http.MethodPatch, "/api/v1/jobs/j1", map[string]any{"completionRate": 140})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestReviews() {
	params := dto.ListReviewsParams{AnalyticsQuery: dto.AnalyticsQuery{MinRating: 4}}
	suite.reviews.On("ListReviews", mock.Anything, params).Return(&dto.ListReviewsResponse{Reviews: []dto.ReviewResponse{}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reviews?minRating=4", nil)
	suite.Equal(http.StatusOK, w.Code)

	review := &domain.Review{ReviewID: "r1", Rating: 2, IsVisible: false}
	suite.reviews.On("SetReviewVisibility", mock.Anything, "r1", false, managerID).Return(review, nil).Once()

	w = suite.do(http.MethodPatch, "/api/v1/reviews/r1/visibility", map[string]bool{"isVisible": false})
	suite.Equal(http.StatusOK, w.Code)
	var got dto.ReviewResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.False(got.IsVisible)

	w = suite.do(http.MethodPatch, "/api/v1/reviews/r1/visibility", map[string]any{})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestDirectory() {
	buildings := []domain.Building{{BuildingID: "b1", Name: "Gangnam Tower", IsActive: true}}
	users := []domain.User{{UserID: "w1", Name: "Park", Profile: domain.WorkerProfile{Skills: []string{"windows"}}}}
	suite.directory.On("ListBuildings", mock.Anything).Return(buildings, nil).Once()
	suite.directory.On("ListUsers", mock.Anything, domain.RoleWorker).Return(users, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/buildings", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "Gangnam Tower")

	w = suite.do(http.MethodGet, "/api/v1/users?role=worker", nil)
	suite.Equal(http.StatusOK, w.Code)
	var got []dto.UserResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Require().Len(got, 1)
	suite.Equal("worker", got[0].Role)

	w = suite.do(http.MethodGet, "/api/v1/users?role=admin", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestSendNotification() {
	req := dto.SendNotificationRequest{RecipientID: "c1", Title: "Inspection", Body: "Tomorrow 9am"}
	n := &domain.Notification{NotificationID: "n1", RecipientID: "c1", Status: domain.NotificationDeferred}
	suite.notification.On("Send", mock.Anything, req, managerID).Return(n, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/notifications", req)

	suite.Equal(http.StatusCreated, w.Code)
	var got dto.NotificationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal("deferred", got.Status)
}

func (suite *HandlersTestSuite) TestSendNotification_UnknownRecipient() {
	req := dto.SendNotificationRequest{RecipientID: "ghost", Title: "Hi", Body: "There"}
	suite.notification.On("Send", mock.Anything, req, managerID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodPost, "/api/v1/notifications", req)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestLiveDashboard_StreamsSnapshots() {
	ch := make(chan domain.Snapshot, 1)
	snap := domain.Snapshot{Jobs: []domain.Job{{JobID: "j1"}}}
	ch <- snap
	q := dto.AnalyticsQuery{BuildingID: "b1"}
	suite.live.On("Subscribe", mock.Anything, []domain.Collection(nil)).Return((<-chan domain.Snapshot)(ch), nil).Once()
	suite.analytics.On("DashboardFromSnapshot", snap, q).
		Return(dto.DashboardResponse{Counts: dto.DashboardCounts{Jobs: 1}}, nil).Once()

	srv := httptest.NewServer(suite.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/live/dashboard?buildingId=b1&access_token=" +
		suite.generateTestToken(managerID, "manager")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	suite.Require().NoError(err)
	defer conn.Close()
	suite.Equal(http.StatusSwitchingProtocols, resp.StatusCode)

	suite.Require().NoError(conn.SetReadDeadline(time.Now().Add(5 * time.Second)))
	var got dto.DashboardResponse
	suite.Require().NoError(conn.ReadJSON(&got))
	suite.Equal(1, got.Counts.Jobs)
}

func (suite *HandlersTestSuite) TestLiveDashboard_RejectsForeignOrigin() {
	ch := make(chan domain.Snapshot)
	suite.live.On("Subscribe", mock.Anything, []domain.Collection(nil)).Return((<-chan domain.Snapshot)(ch), nil).Once()

	// Rebuild the routes with an allow list; the suite router accepts every origin.
	r := gin.New()
	cfg := &config.Config{JWTSecret: suite.jwtSecret, LoginRateLimit: "100-M", IsProduction: true, CORSAllowedOrigins: []string{"https://admin.cleanit.kr"}}
	suite.Require().NoError(handlers.RegisterRoutes(r, cfg, &portssvc.ServiceContainer{
		Analytics: suite.analytics, Job: suite.jobs, Review: suite.reviews, Directory: suite.directory,
		Auth: suite.auth, Notification: suite.notification, Live: suite.live,
	}, nil))
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/live/dashboard?access_token=" +
		suite.generateTestToken(managerID, "manager")
	header := http.Header{"Origin": []string{"https://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	suite.Require().Error(err)
	suite.Require().NotNil(resp)
	suite.Equal(http.StatusForbidden, resp.StatusCode)
}

func (suite *HandlersTestSuite) TestLiveDashboard_SubscribeFailure() {
	suite.live.On("Subscribe", mock.Anything, []domain.Collection(nil)).Return(nil, errors.New("live service closed")).Once()

	w := suite.do(http.MethodGet, "/api/v1/live/dashboard", nil)
	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

// --- Run Test Suite ---
func (suite *HandlersTestSuite) TestGoogleLogin_NotConfigured() {
	suite.google.On("Enabled").Return(false)

	w := suite.doAs("", http.MethodGet, "/api/v1/auth/google/login", nil)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.Equal("Google sign-in is not configured", suite.errorBody(w))
}

func (suite *HandlersTestSuite) TestGoogleLogin_RedirectsWithState() {
	var state string
	suite.google.On("Enabled").Return(true)
	suite.google.On("LoginURL", mock.MatchedBy(func(s string) bool {
		state = s
		return len(s) == 32
	})).Return("https://accounts.google.com/o/oauth2/auth?state=abc").Once()

	w := suite.doAs("", http.MethodGet, "/api/v1/auth/google/login", nil)

	suite.Equal(http.StatusFound, w.Code)
	suite.Equal("https://accounts.google.com/o/oauth2/auth?state=abc", w.Header().Get("Location"))
	cookie := w.Header().Get("Set-Cookie")
	suite.Contains(cookie, "cleanit_oauth_state="+state)
	suite.Contains(cookie, "HttpOnly")
}

func (suite *HandlersTestSuite) googleCallback(query, cookieState string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?"+query, nil)
	if cookieState != "" {
		req.AddCookie(&http.Cookie{Name: "cleanit_oauth_state", Value: cookieState})
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) TestGoogleCallback_SignsInManager() {
	identity := domain.ExternalIdentity{Provider: domain.ProviderGoogle, Subject: "g-1", Email: "jung@cleanit.kr", EmailVerified: true}
	resp := &dto.LoginResponse{Token: "tok", User: dto.UserResponse{UserID: managerID}}
	suite.google.On("Enabled").Return(true)
	suite.google.On("Exchange", mock.Anything, "code-1").Return(identity, nil).Once()
	suite.auth.On("LoginWithIdentity", mock.Anything, identity).Return(resp, nil).Once()

	w := suite.googleCallback("code=code-1&state=s-1", "s-1")

	suite.Equal(http.StatusOK, w.Code)
	var got dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal("tok", got.Token)
	suite.Contains(w.Header().Get("Set-Cookie"), "Max-Age=0")
}

func (suite *HandlersTestSuite) TestGoogleCallback_StateMismatch() {
	suite.google.On("Enabled").Return(true)

	w := suite.googleCallback("code=code-1&state=forged", "s-1")
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("Invalid OAuth state", suite.errorBody(w))

	w = suite.googleCallback("code=code-1&state=s-1", "")
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.google.AssertNotCalled(suite.T(), "Exchange", mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestGoogleExchangeCode_Errors() {
	worker := domain.ExternalIdentity{Provider: domain.ProviderGoogle, Subject: "g-2", Email: "choi@cleanit.kr", EmailVerified: true}
	suite.google.On("Enabled").Return(true)
	suite.google.On("Exchange", mock.Anything, "expired").Return(domain.ExternalIdentity{},
		apperrors.NewAppError(http.StatusUnauthorized, "Invalid or expired authorization code", apperrors.ErrUnauthorized)).Once()
	suite.google.On("Exchange", mock.Anything, "worker-code").Return(worker, nil).Once()
	suite.auth.On("LoginWithIdentity", mock.Anything, worker).Return(nil, apperrors.ErrForbidden).Once()

	w := suite.doAs("", http.MethodPost, "/api/v1/auth/google/exchange-code", dto.ExchangeCodeRequest{Code: "expired"})
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("Invalid or expired authorization code", suite.errorBody(w))

	w = suite.doAs("", http.MethodPost, "/api/v1/auth/google/exchange-code", dto.ExchangeCodeRequest{Code: "worker-code"})
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.doAs("", http.MethodPost, "/api/v1/auth/google/exchange-code", map[string]string{})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
