package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selin/campushub/internal/app/models"
	"github.com/selin/campushub/internal/app/models/dto"
	"github.com/selin/campushub/internal/app/repositories"
	"github.com/selin/campushub/internal/pkg/apperrors"
)

type fakeJobStore struct {
	job     *repositories.JobDetails
	jobErr  error
	listErr error

	lastParams  repositories.GetAllJobsParams
	viewBumps   []int64
	viewBumpErr error
}

func (f *fakeJobStore) GetAllJobs(_ context.Context, params repositories.GetAllJobsParams) ([]*repositories.JobDetails, dto.PaginationInfo, error) {
	f.lastParams = params
	return []*repositories.JobDetails{}, dto.PaginationInfo{}, f.listErr
}

func (f *fakeJobStore) GetJobByID(_ context.Context, _ int64) (*repositories.JobDetails, error) {
	return f.job, f.jobErr
}

func (f *fakeJobStore) CreateJob(_ context.Context, _ *models.Job) (int64, error) {
	return f.job.ID, nil
}

func (f *fakeJobStore) UpdateJob(_ context.Context, _ int64, _ *dto.UpdateJobRequest) error {
	return nil
}

func (f *fakeJobStore) DeleteJob(_ context.Context, _ int64) error {
	return nil
}

func (f *fakeJobStore) IncrementJobViews(_ context.Context, id int64) error {
	if f.viewBumpErr != nil {
		return f.viewBumpErr
	}
	f.viewBumps = append(f.viewBumps, id)
	return nil
}

type fakeApplicationStore struct {
	createID  int64
	createErr error
	statusErr error

	created    []*models.Application
	lastStatus models.ApplicationStatus
}

func (f *fakeApplicationStore) CreateApplication(_ context.Context, app *models.Application) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.created = append(f.created, app)
	return f.createID, nil
}

func (f *fakeApplicationStore) GetApplicationsByUser(_ context.Context, _ int64) ([]*repositories.ApplicationWithJob, error) {
	return []*repositories.ApplicationWithJob{}, nil
}

func (f *fakeApplicationStore) GetApplicationsByJob(_ context.Context, _ int64) ([]*repositories.ApplicationWithUser, error) {
	return []*repositories.ApplicationWithUser{}, nil
}

func (f *fakeApplicationStore) UpdateApplicationStatus(_ context.Context, _ int64, status models.ApplicationStatus) error {
	if f.statusErr != nil {
		return f.statusErr
	}
	f.lastStatus = status
	return nil
}

func openPosting(now time.Time) *repositories.JobDetails {
	return &repositories.JobDetails{
		Job: models.Job{
			ID:                  4,
			Title:               "Backend Intern",
			Company:             "Acme",
			JobType:             models.JobTypeInternship,
			Status:              models.JobStatusActive,
			ApplicationDeadline: now.Add(48 * time.Hour),
		},
	}
}

func newTestJobService(jobs *fakeJobStore, apps *fakeApplicationStore, now time.Time) *jobServiceImpl {
	return &jobServiceImpl{
		jobRepo: jobs,
		appRepo: apps,
		now:     func() time.Time { return now },
	}
}

func TestApplyCreatesApplicationAndBumpsViews(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	jobs := &fakeJobStore{job: openPosting(now)}
	apps := &fakeApplicationStore{createID: 11}
	svc := newTestJobService(jobs, apps, now)

	resp, err := svc.Apply(context.Background(), 4, 7, &dto.ApplyRequest{})
	require.NoError(t, err)

	require.Len(t, apps.created, 1)
	assert.Equal(t, models.ApplicationStatusApplied, apps.created[0].Status)
	assert.Equal(t, int64(4), apps.created[0].JobID)
	assert.Equal(t, int64(7), apps.created[0].UserID)

	assert.Equal(t, []int64{4}, jobs.viewBumps)

	assert.Equal(t, int64(11), resp.ID)
	assert.Equal(t, "applied", resp.Status)
	assert.Equal(t, "Backend Intern", resp.Job.Title)
}

func TestApplyViewBumpFailureIsNotFatal(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	jobs := &fakeJobStore{job: openPosting(now), viewBumpErr: assert.AnError}
	apps := &fakeApplicationStore{createID: 11}
	svc := newTestJobService(jobs, apps, now)

	resp, err := svc.Apply(context.Background(), 4, 7, &dto.ApplyRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(11), resp.ID)
}

func TestApplyDeadlinePassedCreatesNothing(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	posting := openPosting(now)
	posting.ApplicationDeadline = now.Add(-time.Hour)
	jobs := &fakeJobStore{job: posting}
	apps := &fakeApplicationStore{createID: 11}
	svc := newTestJobService(jobs, apps, now)

	_, err := svc.Apply(context.Background(), 4, 7, &dto.ApplyRequest{})
	assert.ErrorIs(t, err, apperrors.ErrDeadlinePassed)

	assert.Empty(t, apps.created)
	assert.Empty(t, jobs.viewBumps)
}

func TestApplyDuplicateDoesNotBumpViews(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	jobs := &fakeJobStore{job: openPosting(now)}
	apps := &fakeApplicationStore{createErr: apperrors.ErrAlreadyApplied}
	svc := newTestJobService(jobs, apps, now)

	_, err := svc.Apply(context.Background(), 4, 7, &dto.ApplyRequest{})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)
	assert.Empty(t, jobs.viewBumps)
}

func TestGetAllJobsStudentParams(t *testing.T) {
	jobs := &fakeJobStore{}
	svc := newTestJobService(jobs, &fakeApplicationStore{}, time.Now())

	_, err := svc.GetAllJobs(context.Background(), &dto.JobFilterRequest{Status: "draft"}, false)
	require.NoError(t, err)

	assert.True(t, jobs.lastParams.OpenOnly)
	// A status filter from a non-admin caller is ignored.
	assert.Nil(t, jobs.lastParams.Status)
}

func TestGetAllJobsAdminParams(t *testing.T) {
	jobs := &fakeJobStore{}
	svc := newTestJobService(jobs, &fakeApplicationStore{}, time.Now())

	_, err := svc.GetAllJobs(context.Background(), &dto.JobFilterRequest{Status: "draft"}, true)
	require.NoError(t, err)

	assert.False(t, jobs.lastParams.OpenOnly)
	require.NotNil(t, jobs.lastParams.Status)
	assert.Equal(t, models.JobStatusDraft, *jobs.lastParams.Status)
}

func TestUpdateApplicationStatusDelegates(t *testing.T) {
	apps := &fakeApplicationStore{}
	svc := newTestJobService(&fakeJobStore{}, apps, time.Now())

	err := svc.UpdateApplicationStatus(context.Background(), 11, models.ApplicationStatusShortlisted)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusShortlisted, apps.lastStatus)

	apps.statusErr = apperrors.ErrResourceNotFound
	err = svc.UpdateApplicationStatus(context.Background(), 99, models.ApplicationStatusRejected)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}
