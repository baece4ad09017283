package models

import "time"

// Application links an applicant to a job posting.
// One application per (job, applicant) pair, enforced by a unique constraint.
type Application struct {
	ID          int64             `db:"id" json:"id"`
	JobID       int64             `db:"job_id" json:"jobId"`
	UserID      int64             `db:"user_id" json:"userId"`
	Status      ApplicationStatus `db:"status" json:"status"`
	ResumeURL   *string           `db:"resume_url" json:"resumeUrl,omitempty"`
	CoverLetter *string           `db:"cover_letter" json:"coverLetter,omitempty"`
	CreatedAt   time.Time         `db:"created_at" json:"createdAt"`
}
