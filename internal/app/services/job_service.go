package services

import (
	"context"
	"fmt"
	"time"

	"github.com/selin/campushub/internal/app/models"
	"github.com/selin/campushub/internal/app/models/dto"
	"github.com/selin/campushub/internal/app/repositories"
	"github.com/selin/campushub/internal/pkg/apperrors"
	"github.com/selin/campushub/internal/pkg/logger"
)

// JobService defines the interface for job board operations
type JobService interface {
	GetAllJobs(ctx context.Context, filter *dto.JobFilterRequest, includeAll bool) (*dto.JobListResponse, error)
	GetJobByID(ctx context.Context, id int64) (*dto.JobResponse, error)
	CreateJob(ctx context.Context, userID int64, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	UpdateJob(ctx context.Context, id int64, req *dto.UpdateJobRequest) (*dto.JobResponse, error)
	DeleteJob(ctx context.Context, id int64) error
	Apply(ctx context.Context, jobID, userID int64, req *dto.ApplyRequest) (*dto.ApplicationResponse, error)
	GetMyApplications(ctx context.Context, userID int64) ([]dto.ApplicationResponse, error)
	GetJobApplicants(ctx context.Context, jobID int64) ([]dto.ApplicantResponse, error)
	UpdateApplicationStatus(ctx context.Context, applicationID int64, status models.ApplicationStatus) error
}

// jobStore is the slice of JobRepository the job service uses.
type jobStore interface {
	GetAllJobs(ctx context.Context, params repositories.GetAllJobsParams) ([]*repositories.JobDetails, dto.PaginationInfo, error)
	GetJobByID(ctx context.Context, id int64) (*repositories.JobDetails, error)
	CreateJob(ctx context.Context, job *models.Job) (int64, error)
	UpdateJob(ctx context.Context, id int64, patch *dto.UpdateJobRequest) error
	DeleteJob(ctx context.Context, id int64) error
	IncrementJobViews(ctx context.Context, id int64) error
}

// applicationStore is the slice of ApplicationRepository the job service uses.
type applicationStore interface {
	CreateApplication(ctx context.Context, app *models.Application) (int64, error)
	GetApplicationsByUser(ctx context.Context, userID int64) ([]*repositories.ApplicationWithJob, error)
	GetApplicationsByJob(ctx context.Context, jobID int64) ([]*repositories.ApplicationWithUser, error)
	UpdateApplicationStatus(ctx context.Context, id int64, status models.ApplicationStatus) error
}

// jobServiceImpl implements JobService
type jobServiceImpl struct {
	jobRepo jobStore
	appRepo applicationStore
	now     func() time.Time
}

// NewJobService creates a new JobService
func NewJobService(
	jobRepo *repositories.JobRepository,
	appRepo *repositories.ApplicationRepository,
) JobService {
	return &jobServiceImpl{
		jobRepo: jobRepo,
		appRepo: appRepo,
		now:     time.Now,
	}
}

// toJobResponse converts job details to the response DTO.
func toJobResponse(job *repositories.JobDetails) dto.JobResponse {
	skills := job.Skills
	if skills == nil {
		skills = []string{}
	}
	branches := job.EligibleBranches
	if branches == nil {
		branches = []string{}
	}
	years := job.GraduationYears
	if years == nil {
		years = []int32{}
	}
	return dto.JobResponse{
		ID:                  job.ID,
		Title:               job.Title,
		Company:             job.Company,
		Description:         job.Description,
		JobType:             string(job.JobType),
		Location:            job.Location,
		LocationType:        job.LocationType,
		SalaryMin:           job.SalaryMin,
		SalaryMax:           job.SalaryMax,
		Stipend:             job.Stipend,
		Duration:            job.Duration,
		Skills:              skills,
		EligibleBranches:    branches,
		MinCGPA:             job.MinCGPA,
		GraduationYears:     years,
		ApplicationDeadline: job.ApplicationDeadline,
		ApplyLink:           job.ApplyLink,
		PostedBy:            job.PostedBy,
		Status:              string(job.Status),
		Views:               job.Views,
		ApplicantCount:      job.ApplicantCount,
		CreatedAt:           job.CreatedAt,
		UpdatedAt:           job.UpdatedAt,
	}
}

// GetAllJobs lists jobs. The public view only shows active postings whose
// deadline has not passed; admins see everything, optionally filtered.
func (s *jobServiceImpl) GetAllJobs(ctx context.Context, filter *dto.JobFilterRequest, includeAll bool) (*dto.JobListResponse, error) {
	params := repositories.GetAllJobsParams{
		OpenOnly: !includeAll,
		Now:      s.now(),
		Page:     filter.Page,
		Size:     filter.Limit,
	}
	if filter.JobType != "" {
		jobType := models.JobType(filter.JobType)
		params.JobType = &jobType
	}
	if filter.Location != "" {
		params.Location = &filter.Location
	}
	if filter.LocationType != "" {
		params.LocationType = &filter.LocationType
	}
	if filter.Search != "" {
		params.Search = &filter.Search
	}
	if includeAll && filter.Status != "" {
		status := models.JobStatus(filter.Status)
		params.Status = &status
	}

	jobs, pagination, err := s.jobRepo.GetAllJobs(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("error getting jobs: %w", err)
	}

	responses := make([]dto.JobResponse, 0, len(jobs))
	for _, job := range jobs {
		responses = append(responses, toJobResponse(job))
	}

	return &dto.JobListResponse{
		Jobs:       responses,
		Pagination: pagination,
	}, nil
}

// GetJobByID retrieves a job and records the view.
func (s *jobServiceImpl) GetJobByID(ctx context.Context, id int64) (*dto.JobResponse, error) {
	job, err := s.jobRepo.GetJobByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.jobRepo.IncrementJobViews(ctx, id); err != nil {
		logger.Warn().Err(err).Int64("jobID", id).Msg("Failed to increment job views")
	} else {
		job.Views++
	}

	response := toJobResponse(job)
	return &response, nil
}

// CreateJob posts a new job on behalf of the admin caller.
func (s *jobServiceImpl) CreateJob(ctx context.Context, userID int64, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	status := models.JobStatusActive
	if req.Status != "" {
		status = models.JobStatus(req.Status)
	}

	job := &models.Job{
		Title:               req.Title,
		Company:             req.Company,
		Description:         req.Description,
		JobType:             models.JobType(req.JobType),
		Location:            req.Location,
		LocationType:        req.LocationType,
		SalaryMin:           req.SalaryMin,
		SalaryMax:           req.SalaryMax,
		Stipend:             req.Stipend,
		Duration:            req.Duration,
		Skills:              req.Skills,
		EligibleBranches:    req.EligibleBranches,
		MinCGPA:             req.MinCGPA,
		GraduationYears:     req.GraduationYears,
		ApplicationDeadline: req.ApplicationDeadline,
		ApplyLink:           req.ApplyLink,
		PostedBy:            userID,
		Status:              status,
	}
	if job.Skills == nil {
		job.Skills = []string{}
	}
	if job.EligibleBranches == nil {
		job.EligibleBranches = []string{}
	}
	if job.GraduationYears == nil {
		job.GraduationYears = []int32{}
	}

	id, err := s.jobRepo.CreateJob(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("error creating job: %w", err)
	}

	created, err := s.jobRepo.GetJobByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading created job: %w", err)
	}

	response := toJobResponse(created)
	return &response, nil
}

// UpdateJob applies a partial update.
func (s *jobServiceImpl) UpdateJob(ctx context.Context, id int64, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	if err := s.jobRepo.UpdateJob(ctx, id, req); err != nil {
		return nil, err
	}

	job, err := s.jobRepo.GetJobByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := toJobResponse(job)
	return &response, nil
}

// DeleteJob removes a posting with its applications.
func (s *jobServiceImpl) DeleteJob(ctx context.Context, id int64) error {
	return s.jobRepo.DeleteJob(ctx, id)
}

// Apply submits an application. A posting only accepts applications while it
// is active and before its deadline, and each user applies at most once.
func (s *jobServiceImpl) Apply(ctx context.Context, jobID, userID int64, req *dto.ApplyRequest) (*dto.ApplicationResponse, error) {
	job, err := s.jobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if !job.AcceptingApplications(s.now()) {
		return nil, apperrors.ErrDeadlinePassed
	}

	app := &models.Application{
		JobID:       jobID,
		UserID:      userID,
		Status:      models.ApplicationStatusApplied,
		ResumeURL:   req.ResumeURL,
		CoverLetter: req.CoverLetter,
	}

	id, err := s.appRepo.CreateApplication(ctx, app)
	if err != nil {
		return nil, err
	}

	// Applying counts as a view of the posting.
	if err := s.jobRepo.IncrementJobViews(ctx, jobID); err != nil {
		logger.Warn().Err(err).Int64("jobID", jobID).Msg("Failed to increment job views")
	}

	return &dto.ApplicationResponse{
		ID:          id,
		Status:      string(app.Status),
		CoverLetter: app.CoverLetter,
		ResumeURL:   app.ResumeURL,
		CreatedAt:   s.now(),
		Job: dto.JobSummary{
			ID:                  job.ID,
			Title:               job.Title,
			Company:             job.Company,
			JobType:             string(job.JobType),
			Location:            job.Location,
			Status:              string(job.Status),
			ApplicationDeadline: job.ApplicationDeadline,
		},
	}, nil
}

// UpdateApplicationStatus moves an application through the review pipeline.
func (s *jobServiceImpl) UpdateApplicationStatus(ctx context.Context, applicationID int64, status models.ApplicationStatus) error {
	return s.appRepo.UpdateApplicationStatus(ctx, applicationID, status)
}

// GetMyApplications lists the caller's applications with job summaries.
func (s *jobServiceImpl) GetMyApplications(ctx context.Context, userID int64) ([]dto.ApplicationResponse, error) {
	apps, err := s.appRepo.GetApplicationsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting applications: %w", err)
	}

	responses := make([]dto.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		responses = append(responses, dto.ApplicationResponse{
			ID:          app.ID,
			Status:      string(app.Status),
			CoverLetter: app.CoverLetter,
			ResumeURL:   app.ResumeURL,
			CreatedAt:   app.CreatedAt,
			Job: dto.JobSummary{
				ID:                  app.JobID,
				Title:               app.JobTitle,
				Company:             app.JobCompany,
				JobType:             string(app.JobType),
				Location:            app.JobLocation,
				Status:              string(app.JobStatus),
				ApplicationDeadline: app.ApplicationDeadline,
			},
		})
	}

	return responses, nil
}

// GetJobApplicants lists a job's applications with applicant profiles.
func (s *jobServiceImpl) GetJobApplicants(ctx context.Context, jobID int64) ([]dto.ApplicantResponse, error) {
	// Surface a not-found before listing an empty set for a missing job.
	if _, err := s.jobRepo.GetJobByID(ctx, jobID); err != nil {
		return nil, err
	}

	apps, err := s.appRepo.GetApplicationsByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("error getting applicants: %w", err)
	}

	responses := make([]dto.ApplicantResponse, 0, len(apps))
	for _, app := range apps {
		responses = append(responses, dto.ApplicantResponse{
			ID:          app.ID,
			Status:      string(app.Status),
			CoverLetter: app.CoverLetter,
			ResumeURL:   app.ResumeURL,
			CreatedAt:   app.CreatedAt,
			Applicant:   toUserProfile(&app.Applicant),
		})
	}

	return responses, nil
}
