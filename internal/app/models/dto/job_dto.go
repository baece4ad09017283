package dto

import "time"

// JobFilterRequest holds query parameters for listing jobs.
type JobFilterRequest struct {
	JobType      string `form:"type" binding:"omitempty,oneof=Job Internship"`
	Location     string `form:"location"`
	LocationType string `form:"locationType" binding:"omitempty,oneof=onsite remote hybrid"`
	Search       string `form:"search"`
	Status       string `form:"status" binding:"omitempty,oneof=active closed draft"`
	Page         int    `form:"page" binding:"omitempty,gte=1"`
	Limit        int    `form:"limit" binding:"omitempty,gte=1,lte=100"`
}

// CreateJobRequest is the payload for posting a job (admin only).
type CreateJobRequest struct {
	Title               string    `json:"title" binding:"required,min=3,max=200"`
	Company             string    `json:"company" binding:"required,max=200"`
	Description         string    `json:"description" binding:"required"`
	JobType             string    `json:"jobType" binding:"required,oneof=Job Internship"`
	Location            string    `json:"location" binding:"required,max=200"`
	LocationType        string    `json:"locationType" binding:"required,oneof=onsite remote hybrid"`
	SalaryMin           *int64    `json:"salaryMin,omitempty" binding:"omitempty,gte=0"`
	SalaryMax           *int64    `json:"salaryMax,omitempty" binding:"omitempty,gte=0"`
	Stipend             *int64    `json:"stipend,omitempty" binding:"omitempty,gte=0"`
	Duration            *string   `json:"duration,omitempty" binding:"omitempty,max=100"`
	Skills              []string  `json:"skills" binding:"omitempty,max=20"`
	EligibleBranches    []string  `json:"eligibleBranches" binding:"omitempty,max=20"`
	MinCGPA             *float64  `json:"minCgpa,omitempty" binding:"omitempty,gte=0,lte=10"`
	GraduationYears     []int32   `json:"graduationYears" binding:"omitempty,max=10"`
	ApplicationDeadline time.Time `json:"applicationDeadline" binding:"required"`
	ApplyLink           *string   `json:"applyLink,omitempty" binding:"omitempty,url"`
	Status              string    `json:"status" binding:"omitempty,oneof=active closed draft"`
}

// UpdateJobRequest is a partial job update. Nil fields are unchanged.
type UpdateJobRequest struct {
	Title               *string    `json:"title,omitempty" binding:"omitempty,min=3,max=200"`
	Company             *string    `json:"company,omitempty" binding:"omitempty,max=200"`
	Description         *string    `json:"description,omitempty"`
	JobType             *string    `json:"jobType,omitempty" binding:"omitempty,oneof=Job Internship"`
	Location            *string    `json:"location,omitempty" binding:"omitempty,max=200"`
	LocationType        *string    `json:"locationType,omitempty" binding:"omitempty,oneof=onsite remote hybrid"`
	SalaryMin           *int64     `json:"salaryMin,omitempty" binding:"omitempty,gte=0"`
	SalaryMax           *int64     `json:"salaryMax,omitempty" binding:"omitempty,gte=0"`
	Stipend             *int64     `json:"stipend,omitempty" binding:"omitempty,gte=0"`
	Duration            *string    `json:"duration,omitempty" binding:"omitempty,max=100"`
	Skills              *[]string  `json:"skills,omitempty"`
	EligibleBranches    *[]string  `json:"eligibleBranches,omitempty"`
	MinCGPA             *float64   `json:"minCgpa,omitempty" binding:"omitempty,gte=0,lte=10"`
	GraduationYears     *[]int32   `json:"graduationYears,omitempty"`
	ApplicationDeadline *time.Time `json:"applicationDeadline,omitempty"`
	ApplyLink           *string    `json:"applyLink,omitempty" binding:"omitempty,url"`
	Status              *string    `json:"status,omitempty" binding:"omitempty,oneof=active closed draft"`
}

// ApplyRequest is the payload for applying to a job.
type ApplyRequest struct {
	CoverLetter *string `json:"coverLetter,omitempty" binding:"omitempty,max=1000"`
	ResumeURL   *string `json:"resumeUrl,omitempty" binding:"omitempty,url"`
}

// UpdateApplicationStatusRequest moves an application to a new pipeline stage.
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=applied shortlisted accepted rejected"`
}

// JobResponse is a job posting with its applicant count.
type JobResponse struct {
	ID                  int64     `json:"id"`
	Title               string    `json:"title"`
	Company             string    `json:"company"`
	Description         string    `json:"description"`
	JobType             string    `json:"jobType"`
	Location            string    `json:"location"`
	LocationType        string    `json:"locationType"`
	SalaryMin           *int64    `json:"salaryMin,omitempty"`
	SalaryMax           *int64    `json:"salaryMax,omitempty"`
	Stipend             *int64    `json:"stipend,omitempty"`
	Duration            *string   `json:"duration,omitempty"`
	Skills              []string  `json:"skills"`
	EligibleBranches    []string  `json:"eligibleBranches"`
	MinCGPA             *float64  `json:"minCgpa,omitempty"`
	GraduationYears     []int32   `json:"graduationYears"`
	ApplicationDeadline time.Time `json:"applicationDeadline"`
	ApplyLink           *string   `json:"applyLink,omitempty"`
	PostedBy            int64     `json:"postedBy"`
	Status              string    `json:"status"`
	Views               int64     `json:"views"`
	ApplicantCount      int64     `json:"applicantCount"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// JobListResponse is a page of jobs.
type JobListResponse struct {
	Jobs       []JobResponse  `json:"jobs"`
	Pagination PaginationInfo `json:"pagination"`
}

// JobSummary is the compact job view joined onto an application.
type JobSummary struct {
	ID                  int64     `json:"id"`
	Title               string    `json:"title"`
	Company             string    `json:"company"`
	JobType             string    `json:"jobType"`
	Location            string    `json:"location"`
	Status              string    `json:"status"`
	ApplicationDeadline time.Time `json:"applicationDeadline"`
}

// ApplicationResponse is an application joined with its job summary.
type ApplicationResponse struct {
	ID          int64      `json:"id"`
	Status      string     `json:"status"`
	CoverLetter *string    `json:"coverLetter,omitempty"`
	ResumeURL   *string    `json:"resumeUrl,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	Job         JobSummary `json:"job"`
}

// ApplicantResponse is an application joined with the applicant profile,
// used by the admin per-job listing.
type ApplicantResponse struct {
	ID          int64       `json:"id"`
	Status      string      `json:"status"`
	CoverLetter *string     `json:"coverLetter,omitempty"`
	ResumeURL   *string     `json:"resumeUrl,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	Applicant   UserProfile `json:"applicant"`
}
