package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/selin/campushub/internal/pkg/apperrors"
	"github.com/selin/campushub/internal/pkg/dberrors"
	"github.com/selin/campushub/internal/pkg/logger"
)

// BookmarkedNoteDetails is a bookmark joined with the note it targets.
type BookmarkedNoteDetails struct {
	BookmarkID   int64       `json:"bookmarkId"`
	BookmarkedAt time.Time   `json:"bookmarkedAt"`
	Note         NoteDetails `json:"note"`
}

// BookmarkRepository handles database operations for Bookmark.
type BookmarkRepository struct {
	DB *pgxpool.Pool
}

// NewBookmarkRepository creates a new instance of BookmarkRepository.
func NewBookmarkRepository(db *pgxpool.Pool) *BookmarkRepository {
	return &BookmarkRepository{DB: db}
}

// CreateBookmark inserts a bookmark. The unique (user, note) constraint turns
// a second attempt into ErrAlreadyBookmarked.
func (r *BookmarkRepository) CreateBookmark(ctx context.Context, userID, noteID int64) (int64, error) {
	sql, args, err := squirrel.Insert("bookmarks").
		Columns("user_id", "note_id").
		Values(userID, noteID).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create bookmark SQL")
		return 0, err
	}

	var id int64
	err = r.DB.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "bookmarks_user_note_key") {
			return 0, apperrors.ErrAlreadyBookmarked
		}
		logger.Error().Err(err).Msg("Error executing create bookmark query")
		return 0, err
	}

	return id, nil
}

// DeleteBookmark removes the (user, note) bookmark if present.
func (r *BookmarkRepository) DeleteBookmark(ctx context.Context, userID, noteID int64) error {
	sql, args, err := squirrel.Delete("bookmarks").
		Where(squirrel.Eq{"user_id": userID, "note_id": noteID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete bookmark SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete bookmark query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBookmarkNotFound
	}

	return nil
}

// BookmarkExists reports whether the user has bookmarked the note.
func (r *BookmarkRepository) BookmarkExists(ctx context.Context, userID, noteID int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM bookmarks WHERE user_id = $1 AND note_id = $2)`,
		userID, noteID).Scan(&exists)
	if err != nil {
		logger.Error().Err(err).Msg("Error checking bookmark existence")
		return false, err
	}
	return exists, nil
}

// GetBookmarksByUser lists the user's bookmarks, newest first, with the
// target note and its owner joined.
func (r *BookmarkRepository) GetBookmarksByUser(ctx context.Context, userID int64) ([]*BookmarkedNoteDetails, error) {
	sqlStr, args, err := squirrel.Select(
		"b.id", "b.created_at",
		"n.id", "n.title", "n.description", "n.subject", "n.semester", "n.branch",
		"n.file_url", "n.file_type", "n.file_size", "n.storage_key", "n.resource_type",
		"n.user_id", "n.status", "n.views", "n.downloads", "n.tags", "n.rating", "n.rating_count",
		"u.name", "u.email", "u.branch", "u.avatar_url",
		"n.created_at", "n.updated_at",
	).From("bookmarks b").
		Join("notes n ON b.note_id = n.id").
		Join("users u ON n.user_id = u.id").
		Where(squirrel.Eq{"b.user_id": userID}).
		OrderBy("b.created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get bookmarks by user SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get bookmarks by user query")
		return nil, err
	}
	defer rows.Close()

	bookmarks := make([]*BookmarkedNoteDetails, 0)
	for rows.Next() {
		var b BookmarkedNoteDetails
		n := &b.Note
		err := rows.Scan(
			&b.BookmarkID, &b.BookmarkedAt,
			&n.ID, &n.Title, &n.Description, &n.Subject, &n.Semester, &n.Branch,
			&n.FileURL, &n.FileType, &n.FileSize, &n.StorageKey, &n.ResourceType,
			&n.UserID, &n.Status, &n.Views, &n.Downloads, &n.Tags, &n.Rating, &n.RatingCount,
			&n.OwnerName, &n.OwnerEmail, &n.OwnerBranch, &n.OwnerAvatarURL,
			&n.CreatedAt, &n.UpdatedAt,
		)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning one bookmark during get by user")
			continue
		}
		bookmarks = append(bookmarks, &b)
	}

	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating through bookmark rows")
		return nil, err
	}

	return bookmarks, nil
}
