package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "student"
	RoleAdmin   RoleType = "admin"
)

// NoteStatus represents the lifecycle status of a note
type NoteStatus string

const (
	NoteStatusPending  NoteStatus = "pending"
	NoteStatusApproved NoteStatus = "approved"
	NoteStatusRejected NoteStatus = "rejected"
)

// ResourceType is the media-store-side classification of a stored file.
// It controls how the object is keyed and later deleted.
type ResourceType string

const (
	ResourceTypeImage ResourceType = "image"
	ResourceTypeRaw   ResourceType = "raw"
)

// JobType distinguishes full positions from internships
type JobType string

const (
	JobTypeJob        JobType = "Job"
	JobTypeInternship JobType = "Internship"
)

// JobStatus represents the publication status of a job posting
type JobStatus string

const (
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"
	JobStatusDraft  JobStatus = "draft"
)

// ApplicationStatus tracks an application through review
type ApplicationStatus string

const (
	ApplicationStatusApplied     ApplicationStatus = "applied"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
	ApplicationStatusAccepted    ApplicationStatus = "accepted"
)
