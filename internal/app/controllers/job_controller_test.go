package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selin/campushub/internal/app/models"
	"github.com/selin/campushub/internal/app/models/dto"
	"github.com/selin/campushub/internal/middleware"
	"github.com/selin/campushub/internal/pkg/apperrors"
)

type fakeJobService struct {
	listResp      *dto.JobListResponse
	listErr       error
	jobResp       *dto.JobResponse
	jobErr        error
	createResp    *dto.JobResponse
	createErr     error
	updateResp    *dto.JobResponse
	updateErr     error
	deleteErr     error
	applyResp     *dto.ApplicationResponse
	applyErr      error
	myApps        []dto.ApplicationResponse
	myAppsErr     error
	applicants    []dto.ApplicantResponse
	applicantsErr error
	statusErr     error

	lastIncludeAll bool
	lastStatus     models.ApplicationStatus
}

func (f *fakeJobService) GetAllJobs(_ context.Context, _ *dto.JobFilterRequest, includeAll bool) (*dto.JobListResponse, error) {
	f.lastIncludeAll = includeAll
	return f.listResp, f.listErr
}

func (f *fakeJobService) GetJobByID(_ context.Context, _ int64) (*dto.JobResponse, error) {
	return f.jobResp, f.jobErr
}

func (f *fakeJobService) CreateJob(_ context.Context, _ int64, _ *dto.CreateJobRequest) (*dto.JobResponse, error) {
	return f.createResp, f.createErr
}

func (f *fakeJobService) UpdateJob(_ context.Context, _ int64, _ *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	return f.updateResp, f.updateErr
}

func (f *fakeJobService) DeleteJob(_ context.Context, _ int64) error {
	return f.deleteErr
}

func (f *fakeJobService) Apply(_ context.Context, _, _ int64, _ *dto.ApplyRequest) (*dto.ApplicationResponse, error) {
	return f.applyResp, f.applyErr
}

func (f *fakeJobService) GetMyApplications(_ context.Context, _ int64) ([]dto.ApplicationResponse, error) {
	return f.myApps, f.myAppsErr
}

func (f *fakeJobService) GetJobApplicants(_ context.Context, _ int64) ([]dto.ApplicantResponse, error) {
	return f.applicants, f.applicantsErr
}

func (f *fakeJobService) UpdateApplicationStatus(_ context.Context, _ int64, status models.ApplicationStatus) error {
	f.lastStatus = status
	return f.statusErr
}

func withRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, int64(1))
		c.Set(middleware.ContextRole, role)
	}
}

func newJobRouter(svc *fakeJobService, role string) *gin.Engine {
	controller := NewJobController(svc)
	router := gin.New()
	router.GET("/jobs", withRole(role), controller.GetAllJobs)
	router.GET("/jobs/user/my-applications", withRole(role), controller.GetMyApplications)
	router.GET("/jobs/:id", withRole(role), controller.GetJobByID)
	router.POST("/jobs", withRole(role), controller.CreateJob)
	router.PUT("/jobs/:id", withRole(role), controller.UpdateJob)
	router.POST("/jobs/:id/apply", withRole(role), controller.Apply)
	router.GET("/jobs/:id/applications", withRole(role), controller.GetJobApplicants)
	router.PATCH("/jobs/applications/:applicationId", withRole(role), controller.UpdateApplicationStatus)
	return router
}

func emptyJobList() *dto.JobListResponse {
	return &dto.JobListResponse{Jobs: []dto.JobResponse{}}
}

func TestGetAllJobsStudentSeesOpenOnly(t *testing.T) {
	svc := &fakeJobService{listResp: emptyJobList()}
	router := newJobRouter(svc, "student")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jobs", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, svc.lastIncludeAll)
}

func TestGetAllJobsAdminSeesEverything(t *testing.T) {
	svc := &fakeJobService{listResp: emptyJobList()}
	router := newJobRouter(svc, "admin")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jobs?status=draft", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.lastIncludeAll)
}

func TestGetAllJobsBadFilter(t *testing.T) {
	router := newJobRouter(&fakeJobService{}, "student")

	for _, query := range []string{"?type=Freelance", "?locationType=moon", "?limit=500"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jobs"+query, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, "query %s", query)
	}
}

func TestCreateJobValidation(t *testing.T) {
	router := newJobRouter(&fakeJobService{}, "admin")

	tests := []struct {
		name string
		body string
	}{
		{"missing deadline", `{"title":"Backend Intern","company":"Acme","description":"d","jobType":"Internship","location":"Istanbul","locationType":"onsite"}`},
		{"bad job type", `{"title":"Backend Intern","company":"Acme","description":"d","jobType":"Gig","location":"Istanbul","locationType":"onsite","applicationDeadline":"2026-10-01T00:00:00Z"}`},
		{"bad apply link", `{"title":"Backend Intern","company":"Acme","description":"d","jobType":"Job","location":"Istanbul","locationType":"remote","applicationDeadline":"2026-10-01T00:00:00Z","applyLink":"not-a-url"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/jobs", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCreateJobCreated(t *testing.T) {
	deadline := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	svc := &fakeJobService{createResp: &dto.JobResponse{ID: 4, Title: "Backend Intern", ApplicationDeadline: deadline}}
	router := newJobRouter(svc, "admin")

	w := doJSON(router, http.MethodPost, "/jobs",
		`{"title":"Backend Intern","company":"Acme","description":"d","jobType":"Internship","location":"Istanbul","locationType":"hybrid","applicationDeadline":"2026-10-01T00:00:00Z"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":4`)
}

func TestApplySubmitted(t *testing.T) {
	svc := &fakeJobService{applyResp: &dto.ApplicationResponse{ID: 11, Status: "applied"}}
	router := newJobRouter(svc, "student")

	w := doJSON(router, http.MethodPost, "/jobs/4/apply", `{"coverLetter":"Merhaba"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"applied"`)
}

func TestApplyDuplicate(t *testing.T) {
	svc := &fakeJobService{applyErr: apperrors.ErrAlreadyApplied}
	router := newJobRouter(svc, "student")

	w := doJSON(router, http.MethodPost, "/jobs/4/apply", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApplyDeadlinePassed(t *testing.T) {
	svc := &fakeJobService{applyErr: apperrors.ErrDeadlinePassed}
	router := newJobRouter(svc, "student")

	w := doJSON(router, http.MethodPost, "/jobs/4/apply", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApplyJobNotFound(t *testing.T) {
	svc := &fakeJobService{applyErr: apperrors.ErrJobNotFound}
	router := newJobRouter(svc, "student")

	w := doJSON(router, http.MethodPost, "/jobs/99/apply", `{}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetMyApplications(t *testing.T) {
	svc := &fakeJobService{myApps: []dto.ApplicationResponse{
		{ID: 1, Status: "applied", Job: dto.JobSummary{ID: 4, Title: "Backend Intern"}},
	}}
	router := newJobRouter(svc, "student")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jobs/user/my-applications", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Backend Intern")
}

func TestGetJobApplicantsNotFound(t *testing.T) {
	svc := &fakeJobService{applicantsErr: apperrors.ErrJobNotFound}
	router := newJobRouter(svc, "admin")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jobs/99/applications", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateApplicationStatus(t *testing.T) {
	svc := &fakeJobService{}
	router := newJobRouter(svc, "admin")

	w := doJSON(router, http.MethodPatch, "/jobs/applications/11", `{"status":"shortlisted"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ApplicationStatusShortlisted, svc.lastStatus)
	assert.Contains(t, w.Body.String(), "Application status updated")
}

func TestUpdateApplicationStatusInvalid(t *testing.T) {
	router := newJobRouter(&fakeJobService{}, "admin")

	w := doJSON(router, http.MethodPatch, "/jobs/applications/11", `{"status":"hired"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateApplicationStatusNotFound(t *testing.T) {
	svc := &fakeJobService{statusErr: apperrors.ErrResourceNotFound}
	router := newJobRouter(svc, "admin")

	w := doJSON(router, http.MethodPatch, "/jobs/applications/99", `{"status":"rejected"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateJobStatusOnly(t *testing.T) {
	svc := &fakeJobService{updateResp: &dto.JobResponse{ID: 4, Status: "closed"}}
	router := newJobRouter(svc, "admin")

	w := doJSON(router, http.MethodPut, "/jobs/4", `{"status":"closed"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"closed"`)
}
