package models

import "time"

// Job represents a job or internship posting.
type Job struct {
	ID                  int64     `db:"id" json:"id"`
	Title               string    `db:"title" json:"title"`
	Company             string    `db:"company" json:"company"`
	Description         string    `db:"description" json:"description"`
	JobType             JobType   `db:"job_type" json:"jobType"`
	Location            string    `db:"location" json:"location"`
	LocationType        string    `db:"location_type" json:"locationType"` // onsite, remote, hybrid
	SalaryMin           *int64    `db:"salary_min" json:"salaryMin,omitempty"`
	SalaryMax           *int64    `db:"salary_max" json:"salaryMax,omitempty"`
	Stipend             *int64    `db:"stipend" json:"stipend,omitempty"`
	Duration            *string   `db:"duration" json:"duration,omitempty"`
	Skills              []string  `db:"skills" json:"skills"`
	EligibleBranches    []string  `db:"eligible_branches" json:"eligibleBranches"`
	MinCGPA             *float64  `db:"min_cgpa" json:"minCgpa,omitempty"`
	GraduationYears     []int32   `db:"graduation_years" json:"graduationYears"`
	ApplicationDeadline time.Time `db:"application_deadline" json:"applicationDeadline"`
	ApplyLink           *string   `db:"apply_link" json:"applyLink,omitempty"`
	PostedBy            int64     `db:"posted_by" json:"postedBy"`
	Status              JobStatus `db:"status" json:"status"`
	Views               int64     `db:"views" json:"views"`
	CreatedAt           time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt           time.Time `db:"updated_at" json:"updatedAt"`
}

// AcceptingApplications reports whether the posting can still be applied to.
// A posting accepts applications only while active and before its deadline.
func (j *Job) AcceptingApplications(now time.Time) bool {
	return j.Status == JobStatusActive && !j.ApplicationDeadline.Before(now)
}
