package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/cleanit/cleanit_admin/internal/core/domain"
	"github.com/cleanit/cleanit_admin/internal/core/metrics"
	portsrepo "github.com/cleanit/cleanit_admin/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock JobRepository ---
type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) FindJobByID(ctx context.Context, jobID string) (*domain.Job, error) {
	args := m.Called(ctx, jobID)
	var job *domain.Job
	if args.Get(0) != nil {
		job = args.Get(0).(*domain.Job)
	}
	return job, args.Error(1)
}

func (m *MockJobRepository) FindJobs(ctx context.Context, q portsrepo.JobQuery) ([]domain.Job, error) {
	args := m.Called(ctx, q)
	var jobs []domain.Job
	if args.Get(0) != nil {
		jobs = args.Get(0).([]domain.Job)
	}
	return jobs, args.Error(1)
}

func (m *MockJobRepository) FindAllJobs(ctx context.Context) ([]domain.Job, error) {
	args := m.Called(ctx)
	var jobs []domain.Job
	if args.Get(0) != nil {
		jobs = args.Get(0).([]domain.Job)
	}
	return jobs, args.Error(1)
}

// UpdateJob runs mutate against a copy of the stored job returned by the expectation.
func (m *MockJobRepository) UpdateJob(ctx context.Context, jobID string, mutate func(job *domain.Job) error) (*domain.Job, error) {
	args := m.Called(ctx, jobID)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	stored := *args.Get(0).(*domain.Job)
	if err := mutate(&stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, role domain.Role) ([]domain.User, error) {
	args := m.Called(ctx, role)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Mock BuildingRepository ---
type MockBuildingRepository struct {
	mock.Mock
}

func (m *MockBuildingRepository) FindBuildings(ctx context.Context) ([]domain.Building, error) {
	args := m.Called(ctx)
	var buildings []domain.Building
	if args.Get(0) != nil {
		buildings = args.Get(0).([]domain.Building)
	}
	return buildings, args.Error(1)
}

// --- Mock ReviewRepository ---
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) FindReviewByID(ctx context.Context, reviewID string) (*domain.Review, error) {
	args := m.Called(ctx, reviewID)
	var review *domain.Review
	if args.Get(0) != nil {
		review = args.Get(0).(*domain.Review)
	}
	return review, args.Error(1)
}

func (m *MockReviewRepository) FindReviews(ctx context.Context, q portsrepo.ReviewQuery) ([]domain.Review, error) {
	args := m.Called(ctx, q)
	var reviews []domain.Review
	if args.Get(0) != nil {
		reviews = args.Get(0).([]domain.Review)
	}
	return reviews, args.Error(1)
}

func (m *MockReviewRepository) FindAllReviews(ctx context.Context) ([]domain.Review, error) {
	args := m.Called(ctx)
	var reviews []domain.Review
	if args.Get(0) != nil {
		reviews = args.Get(0).([]domain.Review)
	}
	return reviews, args.Error(1)
}

func (m *MockReviewRepository) SetReviewVisibility(ctx context.Context, reviewID string, visible bool) (*domain.Review, error) {
	args := m.Called(ctx, reviewID, visible)
	var review *domain.Review
	if args.Get(0) != nil {
		review = args.Get(0).(*domain.Review)
	}
	return review, args.Error(1)
}

// --- Mock NotificationRepository ---
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) SaveNotification(ctx context.Context, n domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// --- Fake snapshot loader ---
type fakeLoader struct {
	mu    sync.Mutex
	snap  domain.Snapshot
	err   error
	loads int
}

func (f *fakeLoader) LoadSnapshot(ctx context.Context) (domain.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	return f.snap, f.err
}

func (f *fakeLoader) set(snap domain.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap = snap
}

func (f *fakeLoader) loadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loads
}

// --- Fake change feed ---
type fakeFeed struct {
	events chan domain.ChangeEvent
}

func newFakeFeed() *fakeFeed {
	return &fakeFeed{events: make(chan domain.ChangeEvent, 16)}
}

func (f *fakeFeed) Listen(ctx context.Context, handle func(domain.ChangeEvent)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-f.events:
			handle(ev)
		}
	}
}

func (f *fakeFeed) emit(c domain.Collection) {
	f.events <- domain.ChangeEvent{Collection: c, DocumentID: "x", At: time.Now()}
}

// --- Fixtures ---

func testCalculator() *metrics.Calculator {
	calc, err := metrics.NewCalculator(metrics.DefaultConfig())
	if err != nil {
		panic(err)
	}
	return calc
}

func kst() *time.Location {
	return metrics.DefaultConfig().Location
}

func timePtr(t time.Time) *time.Time {
	return &t
}

// fixedNow is a Friday afternoon in Seoul.
var fixedNow = time.Date(2026, time.October, 16, 15, 0, 0, 0, kst())

func testSnapshot() domain.Snapshot {
	return domain.Snapshot{
		Buildings: []domain.Building{
			{BuildingID: "b1", Name: "Gangnam Tower", OwnerID: "c1", IsActive: true},
			{BuildingID: "b2", Name: "Mapo Office", OwnerID: "c2", IsActive: false},
		},
		Users: []domain.User{
			{UserID: "c1", Name: "Kim Client", Profile: domain.ClientProfile{}},
			{UserID: "c2", Name: "Lee Client", Profile: domain.ClientProfile{}},
			{UserID: "w1", Name: "Park Worker", Profile: domain.WorkerProfile{}},
			{UserID: "m1", Name: "Jung Manager", Profile: domain.ManagerProfile{}},
		},
		Jobs: []domain.Job{
			{
				JobID: "j1", BuildingID: "b1", WorkerID: "w1", Status: domain.JobCompleted,
				ScheduledAt:    time.Date(2026, time.October, 10, 9, 0, 0, 0, kst()),
				StartedAt:      timePtr(time.Date(2026, time.October, 10, 9, 5, 0, 0, kst())),
				CompletedAt:    timePtr(time.Date(2026, time.October, 10, 11, 5, 0, 0, kst())),
				Areas:          []string{"화장실"},
				CompletionRate: 100,
				IsVisible:      true,
			},
			{
				JobID: "j2", BuildingID: "b1", WorkerID: "w1", Status: domain.JobCompleted,
				ScheduledAt:    time.Date(2026, time.October, 11, 9, 0, 0, 0, kst()),
				CompletedAt:    timePtr(time.Date(2026, time.October, 11, 12, 0, 0, 0, kst())),
				CompletionRate: 100,
				IsVisible:      false,
			},
			{
				JobID: "j3", BuildingID: "b2", WorkerID: "w1", Status: domain.JobScheduled,
				ScheduledAt: time.Date(2026, time.October, 20, 9, 0, 0, 0, kst()),
				IsVisible:   true,
			},
		},
		Reviews: []domain.Review{
			{ReviewID: "r1", JobID: "j1", BuildingID: "b1", WorkerID: "w1", Rating: 5, IsVisible: true,
				CreatedAt: time.Date(2026, time.October, 10, 12, 0, 0, 0, kst())},
			{ReviewID: "r2", JobID: "j2", BuildingID: "b1", WorkerID: "w1", Rating: 1, IsVisible: false,
				CreatedAt: time.Date(2026, time.October, 11, 13, 0, 0, 0, kst())},
		},
		TakenAt: fixedNow,
	}
}
