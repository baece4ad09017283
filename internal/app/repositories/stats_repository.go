package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/selin/campushub/internal/app/models/dto"
	"github.com/selin/campushub/internal/pkg/logger"
)

// StatsRepository aggregates platform-wide numbers for the admin dashboard.
type StatsRepository struct {
	DB *pgxpool.Pool
}

// NewStatsRepository creates a new instance of StatsRepository.
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{DB: db}
}

// CountUsers returns the total number of registered users.
func (r *StatsRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&count)
	if err != nil {
		logger.Error().Err(err).Msg("Error counting users")
		return 0, err
	}
	return count, nil
}

// NoteTotals returns the note count with the summed view and download counters.
func (r *StatsRepository) NoteTotals(ctx context.Context) (notes, views, downloads int64, err error) {
	err = r.DB.QueryRow(ctx,
		`SELECT count(*), COALESCE(SUM(views), 0), COALESCE(SUM(downloads), 0) FROM notes`).
		Scan(&notes, &views, &downloads)
	if err != nil {
		logger.Error().Err(err).Msg("Error aggregating note totals")
		return 0, 0, 0, err
	}
	return notes, views, downloads, nil
}

// NotesByBranch groups note counts per branch, largest first.
func (r *StatsRepository) NotesByBranch(ctx context.Context) ([]dto.BranchCount, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT branch, count(*) FROM notes GROUP BY branch ORDER BY count(*) DESC`)
	if err != nil {
		logger.Error().Err(err).Msg("Error grouping notes by branch")
		return nil, err
	}
	defer rows.Close()

	counts := make([]dto.BranchCount, 0)
	for rows.Next() {
		var c dto.BranchCount
		if err := rows.Scan(&c.Branch, &c.Count); err != nil {
			logger.Error().Err(err).Msg("Error scanning branch count")
			continue
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// NotesBySemester groups note counts per semester, in semester order.
func (r *StatsRepository) NotesBySemester(ctx context.Context) ([]dto.SemesterCount, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT semester, count(*) FROM notes GROUP BY semester ORDER BY semester`)
	if err != nil {
		logger.Error().Err(err).Msg("Error grouping notes by semester")
		return nil, err
	}
	defer rows.Close()

	counts := make([]dto.SemesterCount, 0)
	for rows.Next() {
		var c dto.SemesterCount
		if err := rows.Scan(&c.Semester, &c.Count); err != nil {
			logger.Error().Err(err).Msg("Error scanning semester count")
			continue
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// TopContributors ranks users by owned note count, capped at limit.
func (r *StatsRepository) TopContributors(ctx context.Context, limit int) ([]dto.Contributor, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT u.id, u.name, u.email, count(n.id) AS note_count
		 FROM users u
		 JOIN notes n ON n.user_id = u.id
		 GROUP BY u.id, u.name, u.email
		 ORDER BY note_count DESC, u.id
		 LIMIT $1`, limit)
	if err != nil {
		logger.Error().Err(err).Msg("Error ranking top contributors")
		return nil, err
	}
	defer rows.Close()

	contributors := make([]dto.Contributor, 0)
	for rows.Next() {
		var c dto.Contributor
		if err := rows.Scan(&c.UserID, &c.Name, &c.Email, &c.NoteCount); err != nil {
			logger.Error().Err(err).Msg("Error scanning contributor")
			continue
		}
		contributors = append(contributors, c)
	}

	return contributors, rows.Err()
}
