package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/selin/campushub/internal/app/models"
	"github.com/selin/campushub/internal/app/models/dto"
	"github.com/selin/campushub/internal/pkg/apperrors"
	"github.com/selin/campushub/internal/pkg/helpers"
	"github.com/selin/campushub/internal/pkg/logger"
)

// JobDetails includes a job row with its applicant count.
type JobDetails struct {
	models.Job
	ApplicantCount int64 `json:"applicantCount"`
}

// GetAllJobsParams holds parameters for filtering and pagination.
type GetAllJobsParams struct {
	JobType      *models.JobType
	Location     *string
	LocationType *string
	Status       *models.JobStatus
	Search       *string
	OpenOnly     bool // public view: active and deadline not passed
	Now          time.Time
	Page         int
	Size         int
}

// JobRepository handles database operations for Job.
type JobRepository struct {
	DB *pgxpool.Pool
}

// NewJobRepository creates a new instance of JobRepository.
func NewJobRepository(db *pgxpool.Pool) *JobRepository {
	return &JobRepository{DB: db}
}

func (r *JobRepository) selectJobQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"j.id", "j.title", "j.company", "j.description", "j.job_type",
		"j.location", "j.location_type", "j.salary_min", "j.salary_max",
		"j.stipend", "j.duration", "j.skills", "j.eligible_branches",
		"j.min_cgpa", "j.graduation_years", "j.application_deadline",
		"j.apply_link", "j.posted_by", "j.status", "j.views",
		"j.created_at", "j.updated_at",
		"(SELECT count(*) FROM applications a WHERE a.job_id = j.id) as applicant_count",
	).From("jobs j").
		PlaceholderFormat(squirrel.Dollar)
}

func scanJobDetails(row pgx.Row) (*JobDetails, error) {
	var job JobDetails
	err := row.Scan(
		&job.ID, &job.Title, &job.Company, &job.Description, &job.JobType,
		&job.Location, &job.LocationType, &job.SalaryMin, &job.SalaryMax,
		&job.Stipend, &job.Duration, &job.Skills, &job.EligibleBranches,
		&job.MinCGPA, &job.GraduationYears, &job.ApplicationDeadline,
		&job.ApplyLink, &job.PostedBy, &job.Status, &job.Views,
		&job.CreatedAt, &job.UpdatedAt,
		&job.ApplicantCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrJobNotFound
		}
		logger.Error().Err(err).Msg("Error scanning job details")
		return nil, err
	}
	return &job, nil
}

// CreateJob inserts a new job posting.
func (r *JobRepository) CreateJob(ctx context.Context, job *models.Job) (int64, error) {
	sql, args, err := squirrel.Insert("jobs").
		Columns("title", "company", "description", "job_type",
			"location", "location_type", "salary_min", "salary_max",
			"stipend", "duration", "skills", "eligible_branches",
			"min_cgpa", "graduation_years", "application_deadline",
			"apply_link", "posted_by", "status").
		Values(job.Title, job.Company, job.Description, job.JobType,
			job.Location, job.LocationType, job.SalaryMin, job.SalaryMax,
			job.Stipend, job.Duration, job.Skills, job.EligibleBranches,
			job.MinCGPA, job.GraduationYears, job.ApplicationDeadline,
			job.ApplyLink, job.PostedBy, job.Status).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create job SQL")
		return 0, err
	}

	var id int64
	err = r.DB.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create job query")
		return 0, err
	}

	return id, nil
}

// GetJobByID retrieves a single job by its ID.
func (r *JobRepository) GetJobByID(ctx context.Context, id int64) (*JobDetails, error) {
	sqlStr, args, err := r.selectJobQuery().Where(squirrel.Eq{"j.id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get job by ID SQL")
		return nil, err
	}

	return scanJobDetails(r.DB.QueryRow(ctx, sqlStr, args...))
}

func applyJobFilters(builder squirrel.SelectBuilder, params GetAllJobsParams) squirrel.SelectBuilder {
	if params.OpenOnly {
		builder = builder.
			Where(squirrel.Eq{"j.status": models.JobStatusActive}).
			Where(squirrel.GtOrEq{"j.application_deadline": params.Now})
	} else if params.Status != nil {
		builder = builder.Where(squirrel.Eq{"j.status": *params.Status})
	}

	if params.JobType != nil {
		builder = builder.Where(squirrel.Eq{"j.job_type": *params.JobType})
	}
	if params.Location != nil && *params.Location != "" {
		builder = builder.Where(squirrel.Like{"LOWER(j.location)": "%" + strings.ToLower(*params.Location) + "%"})
	}
	if params.LocationType != nil && *params.LocationType != "" {
		builder = builder.Where(squirrel.Eq{"j.location_type": *params.LocationType})
	}
	if params.Search != nil && *params.Search != "" {
		pattern := "%" + strings.ToLower(*params.Search) + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.Like{"LOWER(j.title)": pattern},
			squirrel.Like{"LOWER(j.company)": pattern},
			squirrel.Like{"LOWER(j.location)": pattern},
		})
	}

	return builder
}

// GetAllJobs retrieves a paginated and filtered list of jobs.
func (r *JobRepository) GetAllJobs(ctx context.Context, params GetAllJobsParams) ([]*JobDetails, dto.PaginationInfo, error) {
	sqlBuilder := applyJobFilters(r.selectJobQuery(), params)
	countBuilder := applyJobFilters(
		squirrel.Select("count(*)").From("jobs j").PlaceholderFormat(squirrel.Dollar), params)

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count jobs SQL")
		return nil, dto.PaginationInfo{}, err
	}

	var totalItems int64
	err = r.DB.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing count jobs query")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, params.Page, params.Size)

	if totalItems == 0 {
		return []*JobDetails{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(params.Page, params.Size)
	sqlBuilder = sqlBuilder.OrderBy("j.created_at DESC").Limit(uint64(limit)).Offset(offset)

	sqlStr, args, err := sqlBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all jobs SQL")
		return nil, dto.PaginationInfo{}, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all jobs query")
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	jobs := make([]*JobDetails, 0)
	for rows.Next() {
		job, err := scanJobDetails(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning one job during get all")
			continue
		}
		jobs = append(jobs, job)
	}

	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating through job rows")
		return nil, pagination, err
	}

	return jobs, pagination, nil
}

// UpdateJob applies a partial update. Nil patch fields are untouched.
func (r *JobRepository) UpdateJob(ctx context.Context, id int64, patch *dto.UpdateJobRequest) error {
	builder := squirrel.Update("jobs").PlaceholderFormat(squirrel.Dollar)

	updated := false
	if patch.Title != nil {
		builder = builder.Set("title", *patch.Title)
		updated = true
	}
	if patch.Company != nil {
		builder = builder.Set("company", *patch.Company)
		updated = true
	}
	if patch.Description != nil {
		builder = builder.Set("description", *patch.Description)
		updated = true
	}
	if patch.JobType != nil {
		builder = builder.Set("job_type", *patch.JobType)
		updated = true
	}
	if patch.Location != nil {
		builder = builder.Set("location", *patch.Location)
		updated = true
	}
	if patch.LocationType != nil {
		builder = builder.Set("location_type", *patch.LocationType)
		updated = true
	}
	if patch.SalaryMin != nil {
		builder = builder.Set("salary_min", *patch.SalaryMin)
		updated = true
	}
	if patch.SalaryMax != nil {
		builder = builder.Set("salary_max", *patch.SalaryMax)
		updated = true
	}
	if patch.Stipend != nil {
		builder = builder.Set("stipend", *patch.Stipend)
		updated = true
	}
	if patch.Duration != nil {
		builder = builder.Set("duration", *patch.Duration)
		updated = true
	}
	if patch.Skills != nil {
		builder = builder.Set("skills", *patch.Skills)
		updated = true
	}
	if patch.EligibleBranches != nil {
		builder = builder.Set("eligible_branches", *patch.EligibleBranches)
		updated = true
	}
	if patch.MinCGPA != nil {
		builder = builder.Set("min_cgpa", *patch.MinCGPA)
		updated = true
	}
	if patch.GraduationYears != nil {
		builder = builder.Set("graduation_years", *patch.GraduationYears)
		updated = true
	}
	if patch.ApplicationDeadline != nil {
		builder = builder.Set("application_deadline", *patch.ApplicationDeadline)
		updated = true
	}
	if patch.ApplyLink != nil {
		builder = builder.Set("apply_link", *patch.ApplyLink)
		updated = true
	}
	if patch.Status != nil {
		builder = builder.Set("status", *patch.Status)
		updated = true
	}

	if !updated {
		return nil
	}

	sql, args, err := builder.Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update job SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update job query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrJobNotFound
	}

	return nil
}

// DeleteJob deletes a job by its ID. Applications cascade at the schema level.
func (r *JobRepository) DeleteJob(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Delete("jobs").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete job SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete job query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrJobNotFound
	}

	return nil
}

// IncrementJobViews bumps the view counter.
func (r *JobRepository) IncrementJobViews(ctx context.Context, id int64) error {
	cmdTag, err := r.DB.Exec(ctx, `UPDATE jobs SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Int64("jobID", id).Msg("Error incrementing job views")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrJobNotFound
	}
	return nil
}
