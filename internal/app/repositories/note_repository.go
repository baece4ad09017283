package repositories

import (
	"context"
	"errors"
	"fmt"
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

// NoteDetails includes detailed information about a note, joining the owner.
type NoteDetails struct {
	ID             int64               `db:"id" json:"id"`
	Title          string              `db:"title" json:"title"`
	Description    string              `db:"description" json:"description"`
	Subject        string              `db:"subject" json:"subject"`
	Semester       int                 `db:"semester" json:"semester"`
	Branch         string              `db:"branch" json:"branch"`
	FileURL        string              `db:"file_url" json:"fileUrl"`
	FileType       string              `db:"file_type" json:"fileType"`
	FileSize       int64               `db:"file_size" json:"fileSize"`
	StorageKey     string              `db:"storage_key" json:"-"`
	ResourceType   models.ResourceType `db:"resource_type" json:"resourceType"`
	UserID         int64               `db:"user_id" json:"userId"`
	Status         models.NoteStatus   `db:"status" json:"status"`
	Views          int64               `db:"views" json:"views"`
	Downloads      int64               `db:"downloads" json:"downloads"`
	Tags           []string            `db:"tags" json:"tags"`
	Rating         float64             `db:"rating" json:"rating"`
	RatingCount    int                 `db:"rating_count" json:"ratingCount"`
	OwnerName      string              `db:"owner_name" json:"ownerName"`
	OwnerEmail     string              `db:"owner_email" json:"ownerEmail"`
	OwnerBranch    *string             `db:"owner_branch" json:"ownerBranch,omitempty"`
	OwnerAvatarURL *string             `db:"owner_avatar_url" json:"ownerAvatarUrl,omitempty"`
	CreatedAt      time.Time           `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time           `db:"updated_at" json:"updatedAt"`
}

// GetAllNotesParams holds parameters for filtering and pagination.
type GetAllNotesParams struct {
	Semester  *int
	Branch    *string
	Subject   *string
	Search    *string
	Status    *models.NoteStatus // nil means approved only (public view)
	AnyStatus bool               // admin view: no status restriction
	SortBy    string
	Page      int
	Size      int
}

// NoteRepository handles database operations for Note.
type NoteRepository struct {
	DB *pgxpool.Pool
}

// NewNoteRepository creates a new instance of NoteRepository.
func NewNoteRepository(db *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{DB: db}
}

// Common select query builder for notes with the owner joined
func (r *NoteRepository) selectNoteDetailsQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"n.id", "n.title", "n.description", "n.subject", "n.semester", "n.branch",
		"n.file_url", "n.file_type", "n.file_size", "n.storage_key", "n.resource_type",
		"n.user_id", "n.status", "n.views", "n.downloads", "n.tags", "n.rating", "n.rating_count",
		"u.name as owner_name", "u.email as owner_email", "u.branch as owner_branch", "u.avatar_url as owner_avatar_url",
		"n.created_at", "n.updated_at",
	).From("notes n").
		Join("users u ON n.user_id = u.id").
		PlaceholderFormat(squirrel.Dollar)
}

// ScanNoteDetails scans a row into a NoteDetails struct.
func ScanNoteDetails(row pgx.Row) (*NoteDetails, error) {
	var note NoteDetails
	err := row.Scan(
		&note.ID, &note.Title, &note.Description, &note.Subject, &note.Semester, &note.Branch,
		&note.FileURL, &note.FileType, &note.FileSize, &note.StorageKey, &note.ResourceType,
		&note.UserID, &note.Status, &note.Views, &note.Downloads, &note.Tags, &note.Rating, &note.RatingCount,
		&note.OwnerName, &note.OwnerEmail, &note.OwnerBranch, &note.OwnerAvatarURL,
		&note.CreatedAt, &note.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoteNotFound
		}
		logger.Error().Err(err).Msg("Error scanning note details")
		return nil, err
	}
	return &note, nil
}

// CreateNote inserts a new note into the database.
func (r *NoteRepository) CreateNote(ctx context.Context, note *models.Note) (int64, error) {
	sql, args, err := squirrel.Insert("notes").
		Columns("title", "description", "subject", "semester", "branch",
			"file_url", "file_type", "file_size", "storage_key", "resource_type",
			"user_id", "status", "tags").
		Values(note.Title, note.Description, note.Subject, note.Semester, note.Branch,
			note.FileURL, note.FileType, note.FileSize, note.StorageKey, note.ResourceType,
			note.UserID, note.Status, note.Tags).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create note SQL")
		return 0, err
	}

	var id int64
	err = r.DB.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create note query")
		return 0, err
	}

	return id, nil
}

// GetNoteByID retrieves a single note by its ID with owner details.
func (r *NoteRepository) GetNoteByID(ctx context.Context, id int64) (*NoteDetails, error) {
	sqlStr, args, err := r.selectNoteDetailsQuery().Where(squirrel.Eq{"n.id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get note by ID SQL")
		return nil, err
	}

	return ScanNoteDetails(r.DB.QueryRow(ctx, sqlStr, args...))
}

// applyNoteFilters adds the shared WHERE clauses to both the listing and count builders.
func applyNoteFilters(builder squirrel.SelectBuilder, params GetAllNotesParams) squirrel.SelectBuilder {
	if !params.AnyStatus {
		if params.Status != nil {
			builder = builder.Where(squirrel.Eq{"n.status": *params.Status})
		} else {
			builder = builder.Where(squirrel.Eq{"n.status": models.NoteStatusApproved})
		}
	} else if params.Status != nil {
		builder = builder.Where(squirrel.Eq{"n.status": *params.Status})
	}

	if params.Semester != nil {
		builder = builder.Where(squirrel.Eq{"n.semester": *params.Semester})
	}
	if params.Branch != nil && *params.Branch != "" {
		builder = builder.Where(squirrel.Like{"LOWER(n.branch)": "%" + strings.ToLower(*params.Branch) + "%"})
	}
	if params.Subject != nil && *params.Subject != "" {
		builder = builder.Where(squirrel.Like{"LOWER(n.subject)": "%" + strings.ToLower(*params.Subject) + "%"})
	}
	if params.Search != nil && *params.Search != "" {
		pattern := "%" + strings.ToLower(*params.Search) + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.Like{"LOWER(n.title)": pattern},
			squirrel.Like{"LOWER(n.description)": pattern},
			squirrel.Like{"LOWER(n.subject)": pattern},
		})
	}

	return builder
}

// GetAllNotes retrieves a paginated and filtered list of notes with owner details.
func (r *NoteRepository) GetAllNotes(ctx context.Context, params GetAllNotesParams) ([]*NoteDetails, dto.PaginationInfo, error) {
	sqlBuilder := applyNoteFilters(r.selectNoteDetailsQuery(), params)
	countBuilder := applyNoteFilters(
		squirrel.Select("count(*)").From("notes n").PlaceholderFormat(squirrel.Dollar), params)

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count notes SQL")
		return nil, dto.PaginationInfo{}, err
	}

	var totalItems int64
	err = r.DB.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing count notes query")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, params.Page, params.Size)

	if totalItems == 0 {
		return []*NoteDetails{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(params.Page, params.Size)

	// Apply sorting
	orderBy := "n.created_at DESC"
	switch params.SortBy {
	case "views":
		orderBy = "n.views DESC"
	case "downloads":
		orderBy = "n.downloads DESC"
	case "title":
		orderBy = "n.title ASC"
	}
	sqlBuilder = sqlBuilder.OrderBy(orderBy).Limit(uint64(limit)).Offset(offset)

	sqlStr, args, err := sqlBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all notes SQL")
		return nil, dto.PaginationInfo{}, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all notes query")
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	notes := make([]*NoteDetails, 0)
	for rows.Next() {
		note, err := ScanNoteDetails(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning one note during get all")
			continue
		}
		notes = append(notes, note)
	}

	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating through note rows")
		return nil, pagination, fmt.Errorf("database iteration error: %w", err)
	}

	return notes, pagination, nil
}

// GetNotesByOwnerID retrieves all notes owned by a user, any status.
func (r *NoteRepository) GetNotesByOwnerID(ctx context.Context, userID int64) ([]*NoteDetails, error) {
	sqlStr, args, err := r.selectNoteDetailsQuery().
		Where(squirrel.Eq{"n.user_id": userID}).
		OrderBy("n.created_at DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get notes by owner SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get notes by owner query")
		return nil, err
	}
	defer rows.Close()

	notes := make([]*NoteDetails, 0)
	for rows.Next() {
		note, err := ScanNoteDetails(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning one note during get by owner")
			continue
		}
		notes = append(notes, note)
	}

	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating through note rows for owner")
		return nil, err
	}

	return notes, nil
}

// UpdateNote applies a partial update. Nil patch fields are untouched.
func (r *NoteRepository) UpdateNote(ctx context.Context, id int64, patch *dto.UpdateNoteRequest) error {
	builder := squirrel.Update("notes").PlaceholderFormat(squirrel.Dollar)

	updated := false
	if patch.Title != nil {
		builder = builder.Set("title", *patch.Title)
		updated = true
	}
	if patch.Description != nil {
		builder = builder.Set("description", *patch.Description)
		updated = true
	}
	if patch.Subject != nil {
		builder = builder.Set("subject", *patch.Subject)
		updated = true
	}
	if patch.Semester != nil {
		builder = builder.Set("semester", *patch.Semester)
		updated = true
	}
	if patch.Branch != nil {
		builder = builder.Set("branch", *patch.Branch)
		updated = true
	}
	if patch.Status != nil {
		builder = builder.Set("status", *patch.Status)
		updated = true
	}
	if patch.Tags != nil {
		builder = builder.Set("tags", *patch.Tags)
		updated = true
	}

	if !updated {
		return nil
	}

	sql, args, err := builder.Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update note SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update note query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}

	return nil
}

// DeleteNote deletes a note by its ID. Bookmarks cascade at the schema level.
func (r *NoteRepository) DeleteNote(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Delete("notes").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete note SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete note query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}

	return nil
}

// DeleteNotesByOwner deletes every note owned by the user inside the caller's
// transaction. Bookmarks on those notes cascade at the schema level.
func (r *NoteRepository) DeleteNotesByOwner(ctx context.Context, tx pgx.Tx, ownerID int64) error {
	sql, args, err := squirrel.Delete("notes").
		Where(squirrel.Eq{"user_id": ownerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete notes by owner SQL")
		return err
	}

	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error executing delete notes by owner query")
		return err
	}

	return nil
}

// IncrementViews bumps the view counter. Atomic per statement; lost updates
// across replicas are accepted.
func (r *NoteRepository) IncrementViews(ctx context.Context, id int64) error {
	cmdTag, err := r.DB.Exec(ctx, `UPDATE notes SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Int64("noteID", id).Msg("Error incrementing note views")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}
	return nil
}

// IncrementDownloads bumps the download counter and returns the file URL
// with the new count.
func (r *NoteRepository) IncrementDownloads(ctx context.Context, id int64) (fileURL string, downloads int64, err error) {
	err = r.DB.QueryRow(ctx,
		`UPDATE notes SET downloads = downloads + 1 WHERE id = $1 RETURNING file_url, downloads`, id).
		Scan(&fileURL, &downloads)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", 0, apperrors.ErrNoteNotFound
		}
		logger.Error().Err(err).Int64("noteID", id).Msg("Error incrementing note downloads")
		return "", 0, err
	}
	return fileURL, downloads, nil
}
