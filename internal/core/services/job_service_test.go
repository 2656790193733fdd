package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/cleanit/cleanit_admin/internal/apperrors"
	"github.com/cleanit/cleanit_admin/internal/core/domain"
	portsrepo "github.com/cleanit/cleanit_admin/internal/core/ports/repositories"
	portssvc "github.com/cleanit/cleanit_admin/internal/core/ports/services"
	"github.com/cleanit/cleanit_admin/internal/core/services"
	"github.com/cleanit/cleanit_admin/internal/dto"
	"github.com/cleanit/cleanit_admin/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type JobServiceTestSuite struct {
	suite.Suite
	mockJobRepo *MockJobRepository
	service     portssvc.JobSvcFacade
}

func (suite *JobServiceTestSuite) SetupTest() {
	suite.mockJobRepo = new(MockJobRepository)
	suite.service = services.NewJobService(suite.mockJobRepo, testCalculator(),
		services.WithJobClock(func() time.Time { return fixedNow }))
}

func strPtr(s string) *string { return &s }

func (suite *JobServiceTestSuite) TestListJobs_PaginatesWithToken() {
	ctx := context.Background()
	jobs := testSnapshot().Jobs // three rows for a page size of two

	suite.mockJobRepo.On("FindJobs", ctx, mock.MatchedBy(func(q portsrepo.JobQuery) bool {
		return q.Limit == 3 && q.WorkerID == "w1" && q.AfterID == ""
	})).Return(jobs, nil).Once()

	resp, err := suite.service.ListJobs(ctx, dto.ListJobsParams{
		AnalyticsQuery: dto.AnalyticsQuery{WorkerID: "w1"},
		Limit:          2,
	})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Jobs, 2)
	suite.Equal("75000", resp.Jobs[0].Revenue)
	suite.False(resp.Jobs[1].IsVisible, "listing keeps hidden jobs")
	suite.Require().NotNil(resp.NextToken)

	at, id, err := pagination.DecodeToken(*resp.NextToken)
	suite.Require().NoError(err)
	suite.Equal("j2", id)
	suite.True(at.Equal(jobs[1].ScheduledAt))
	suite.mockJobRepo.AssertExpectations(suite.T())
}

func (suite *JobServiceTestSuite) TestListJobs_LastPageHasNoToken() {
	ctx := context.Background()
	token := pagination.EncodeToken(fixedNow, "j9")

	suite.mockJobRepo.On("FindJobs", ctx, mock.MatchedBy(func(q portsrepo.JobQuery) bool {
		return q.AfterID == "j9" && q.AfterScheduledAt != nil && q.AfterScheduledAt.Equal(fixedNow)
	})).Return([]domain.Job{testSnapshot().Jobs[0]}, nil).Once()

	resp, err := suite.service.ListJobs(ctx, dto.ListJobsParams{NextToken: token})

	suite.Require().NoError(err)
	suite.Len(resp.Jobs, 1)
	suite.Nil(resp.NextToken)
}

func (suite *JobServiceTestSuite) TestListJobs_DateRangeIsExclusiveNextDay() {
	ctx := context.Background()

	suite.mockJobRepo.On("FindJobs", ctx, mock.MatchedBy(func(q portsrepo.JobQuery) bool {
		return q.From != nil && q.To != nil &&
			q.From.Equal(time.Date(2026, time.October, 1, 0, 0, 0, 0, kst())) &&
			q.To.Equal(time.Date(2026, time.November, 1, 0, 0, 0, 0, kst()))
	})).Return([]domain.Job{}, nil).Once()

	resp, err := suite.service.ListJobs(ctx, dto.ListJobsParams{
		AnalyticsQuery: dto.AnalyticsQuery{From: "2026-10-01", To: "2026-10-31"},
	})

	suite.Require().NoError(err)
	suite.Empty(resp.Jobs)
	suite.mockJobRepo.AssertExpectations(suite.T())
}

func (suite *JobServiceTestSuite) TestListJobs_InvertedRangeSkipsStore() {
	resp, err := suite.service.ListJobs(context.Background(), dto.ListJobsParams{
		AnalyticsQuery: dto.AnalyticsQuery{From: "2026-10-10", To: "2026-10-01"},
	})

	suite.Require().NoError(err)
	suite.Empty(resp.Jobs)
	suite.mockJobRepo.AssertNotCalled(suite.T(), "FindJobs", mock.Anything, mock.Anything)
}

func (suite *JobServiceTestSuite) TestListJobs_ValidationErrors() {
	ctx := context.Background()

	_, err := suite.service.ListJobs(ctx, dto.ListJobsParams{NextToken: "%%%"})
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrInvalidNextToken)

	_, err = suite.service.ListJobs(ctx, dto.ListJobsParams{AnalyticsQuery: dto.AnalyticsQuery{Status: "lost"}})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JobServiceTestSuite) TestGetJob_NotFound() {
	ctx := context.Background()
	suite.mockJobRepo.On("FindJobByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	job, err := suite.service.GetJob(ctx, "missing")

	suite.Nil(job)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JobServiceTestSuite) TestUpdateJob_StartStampsStartedAt() {
	ctx := context.Background()
	stored := &domain.Job{JobID: "j1", Status: domain.JobScheduled, IsVisible: true}
	suite.mockJobRepo.On("UpdateJob", ctx, "j1").Return(stored, nil).Once()

	job, err := suite.service.UpdateJob(ctx, "j1", dto.UpdateJobRequest{Status: strPtr("in_progress")}, "m1")

	suite.Require().NoError(err)
	suite.Equal(domain.JobInProgress, job.Status)
	suite.Require().NotNil(job.StartedAt)
	suite.True(job.StartedAt.Equal(fixedNow))
	suite.Nil(job.CompletedAt)
	suite.Equal("m1", job.LastUpdatedBy)
}

func (suite *JobServiceTestSuite) TestUpdateJob_CompleteKeepsExistingStart() {
	ctx := context.Background()
	started := fixedNow.Add(-2 * time.Hour)
	stored := &domain.Job{JobID: "j1", Status: domain.JobInProgress, StartedAt: &started}
	suite.mockJobRepo.On("UpdateJob", ctx, "j1").Return(stored, nil).Once()

	job, err := suite.service.UpdateJob(ctx, "j1", dto.UpdateJobRequest{Status: strPtr("completed")}, "m1")

	suite.Require().NoError(err)
	suite.True(job.StartedAt.Equal(started))
	suite.Require().NotNil(job.CompletedAt)
	suite.True(job.CompletedAt.Equal(fixedNow))
}

func (suite *JobServiceTestSuite) TestUpdateJob_Transitions() {
	testCases := []struct {
		name    string
		from    domain.JobStatus
		to      string
		allowed bool
	}{
		{"scheduled to cancelled", domain.JobScheduled, "cancelled", true},
		{"scheduled to completed", domain.JobScheduled, "completed", false},
		{"completed to scheduled", domain.JobCompleted, "scheduled", false},
		{"cancelled to in progress", domain.JobCancelled, "in_progress", false},
		{"same status", domain.JobCompleted, "completed", true},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			ctx := context.Background()
			repo := new(MockJobRepository)
			svc := services.NewJobService(repo, testCalculator())
			repo.On("UpdateJob", ctx, "j1").Return(&domain.Job{JobID: "j1", Status: tc.from}, nil).Once()

			job, err := svc.UpdateJob(ctx, "j1", dto.UpdateJobRequest{Status: strPtr(tc.to)}, "m1")

			if tc.allowed {
				suite.Require().NoError(err)
				suite.Equal(domain.JobStatus(tc.to), job.Status)
				return
			}
			suite.Require().Error(err)
			suite.ErrorIs(err, apperrors.ErrInvalidTransition)
			var appErr *apperrors.AppError
			suite.Require().ErrorAs(err, &appErr)
			suite.Equal(409, appErr.Code)
		})
	}
}

func (suite *JobServiceTestSuite) TestUpdateJob_PartialFields() {
	ctx := context.Background()
	stored := &domain.Job{JobID: "j1", Status: domain.JobCompleted, IsVisible: true, CompletionRate: 80}
	suite.mockJobRepo.On("UpdateJob", ctx, "j1").Return(stored, nil).Once()
	hidden := false
	rate := 95.0

	job, err := suite.service.UpdateJob(ctx, "j1", dto.UpdateJobRequest{IsVisible: &hidden, CompletionRate: &rate, Notes: strPtr("re-done")}, "m1")

	suite.Require().NoError(err)
	suite.False(job.IsVisible)
	suite.Equal(95.0, job.CompletionRate)
	suite.Equal("re-done", job.Notes)
	suite.Equal(domain.JobCompleted, job.Status)
}

func (suite *JobServiceTestSuite) TestUpdateJob_EmptyRequest() {
	_, err := suite.service.UpdateJob(context.Background(), "j1", dto.UpdateJobRequest{}, "m1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJobRepo.AssertNotCalled(suite.T(), "UpdateJob", mock.Anything, mock.Anything)
}

func (suite *JobServiceTestSuite) TestUpdateJob_RepositoryError() {
	ctx := context.Background()
	suite.mockJobRepo.On("UpdateJob", ctx, "j1").Return(nil, assert.AnError).Once()

	_, err := suite.service.UpdateJob(ctx, "j1", dto.UpdateJobRequest{Notes: strPtr("x")}, "m1")

	suite.ErrorIs(err, assert.AnError)
}

func TestJobService(t *testing.T) {
	suite.Run(t, new(JobServiceTestSuite))
}
