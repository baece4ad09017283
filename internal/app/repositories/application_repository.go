package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/selin/campushub/internal/app/models"
	"github.com/selin/campushub/internal/pkg/apperrors"
	"github.com/selin/campushub/internal/pkg/dberrors"
	"github.com/selin/campushub/internal/pkg/logger"
)

// ApplicationWithJob is an application row joined with its job summary,
// for the caller's "my applications" view.
type ApplicationWithJob struct {
	models.Application
	JobTitle            string            `json:"jobTitle"`
	JobCompany          string            `json:"jobCompany"`
	JobType             models.JobType    `json:"jobType"`
	JobLocation         string            `json:"jobLocation"`
	JobStatus           models.JobStatus  `json:"jobStatus"`
	ApplicationDeadline time.Time         `json:"applicationDeadline"`
}

// ApplicationWithUser is an application row joined with the applicant,
// for the admin per-job view.
type ApplicationWithUser struct {
	models.Application
	Applicant models.User `json:"applicant"`
}

// ApplicationRepository handles database operations for Application.
type ApplicationRepository struct {
	DB *pgxpool.Pool
}

// NewApplicationRepository creates a new instance of ApplicationRepository.
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{DB: db}
}

// CreateApplication inserts an application. The unique (job, user) constraint
// turns a second attempt into ErrAlreadyApplied.
func (r *ApplicationRepository) CreateApplication(ctx context.Context, app *models.Application) (int64, error) {
	sql, args, err := squirrel.Insert("applications").
		Columns("job_id", "user_id", "status", "resume_url", "cover_letter").
		Values(app.JobID, app.UserID, app.Status, app.ResumeURL, app.CoverLetter).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create application SQL")
		return 0, err
	}

	var id int64
	err = r.DB.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "applications_job_user_key") {
			return 0, apperrors.ErrAlreadyApplied
		}
		logger.Error().Err(err).Msg("Error executing create application query")
		return 0, err
	}

	return id, nil
}

// GetApplicationsByUser lists the user's applications, newest first, with the
// job summary joined.
func (r *ApplicationRepository) GetApplicationsByUser(ctx context.Context, userID int64) ([]*ApplicationWithJob, error) {
	sqlStr, args, err := squirrel.Select(
		"a.id", "a.job_id", "a.user_id", "a.status", "a.resume_url", "a.cover_letter", "a.created_at",
		"j.title", "j.company", "j.job_type", "j.location", "j.status", "j.application_deadline",
	).From("applications a").
		Join("jobs j ON a.job_id = j.id").
		Where(squirrel.Eq{"a.user_id": userID}).
		OrderBy("a.created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get applications by user SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get applications by user query")
		return nil, err
	}
	defer rows.Close()

	apps := make([]*ApplicationWithJob, 0)
	for rows.Next() {
		var app ApplicationWithJob
		err := rows.Scan(
			&app.ID, &app.JobID, &app.UserID, &app.Status, &app.ResumeURL, &app.CoverLetter, &app.CreatedAt,
			&app.JobTitle, &app.JobCompany, &app.JobType, &app.JobLocation, &app.JobStatus, &app.ApplicationDeadline,
		)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning one application during get by user")
			continue
		}
		apps = append(apps, &app)
	}

	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating through application rows")
		return nil, err
	}

	return apps, nil
}

// GetApplicationsByJob lists a job's applications, newest first, with the
// applicant profile joined.
func (r *ApplicationRepository) GetApplicationsByJob(ctx context.Context, jobID int64) ([]*ApplicationWithUser, error) {
	sqlStr, args, err := squirrel.Select(
		"a.id", "a.job_id", "a.user_id", "a.status", "a.resume_url", "a.cover_letter", "a.created_at",
		"u.id", "u.name", "u.email", "u.role", "u.branch", "u.semester", "u.avatar_url", "u.is_active", "u.created_at", "u.updated_at",
	).From("applications a").
		Join("users u ON a.user_id = u.id").
		Where(squirrel.Eq{"a.job_id": jobID}).
		OrderBy("a.created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get applications by job SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get applications by job query")
		return nil, err
	}
	defer rows.Close()

	apps := make([]*ApplicationWithUser, 0)
	for rows.Next() {
		var app ApplicationWithUser
		err := rows.Scan(
			&app.ID, &app.JobID, &app.UserID, &app.Status, &app.ResumeURL, &app.CoverLetter, &app.CreatedAt,
			&app.Applicant.ID, &app.Applicant.Name, &app.Applicant.Email, &app.Applicant.Role,
			&app.Applicant.Branch, &app.Applicant.Semester, &app.Applicant.AvatarURL,
			&app.Applicant.IsActive, &app.Applicant.CreatedAt, &app.Applicant.UpdatedAt,
		)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning one application during get by job")
			continue
		}
		apps = append(apps, &app)
	}

	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating through application rows")
		return nil, err
	}

	return apps, nil
}

// UpdateApplicationStatus moves an application through the review pipeline.
func (r *ApplicationRepository) UpdateApplicationStatus(ctx context.Context, id int64, status models.ApplicationStatus) error {
	cmdTag, err := r.DB.Exec(ctx, `UPDATE applications SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		logger.Error().Err(err).Int64("applicationID", id).Msg("Error updating application status")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
