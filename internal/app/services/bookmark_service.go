package services

import (
	"context"
	"fmt"

	"github.com/selin/campushub/internal/app/models/dto"
	"github.com/selin/campushub/internal/app/repositories"
)

// BookmarkService defines the interface for bookmark operations
type BookmarkService interface {
	AddBookmark(ctx context.Context, userID, noteID int64) (*dto.BookmarkedNote, error)
	RemoveBookmark(ctx context.Context, userID, noteID int64) error
	GetMyBookmarks(ctx context.Context, userID int64) (*dto.BookmarkListResponse, error)
	IsBookmarked(ctx context.Context, userID, noteID int64) (*dto.BookmarkCheckResponse, error)
}

// bookmarkServiceImpl implements BookmarkService
type bookmarkServiceImpl struct {
	bookmarkRepo *repositories.BookmarkRepository
	noteRepo     *repositories.NoteRepository
}

// NewBookmarkService creates a new BookmarkService
func NewBookmarkService(bookmarkRepo *repositories.BookmarkRepository, noteRepo *repositories.NoteRepository) BookmarkService {
	return &bookmarkServiceImpl{
		bookmarkRepo: bookmarkRepo,
		noteRepo:     noteRepo,
	}
}

// AddBookmark bookmarks a note for the caller. Bookmarking twice is an error.
func (s *bookmarkServiceImpl) AddBookmark(ctx context.Context, userID, noteID int64) (*dto.BookmarkedNote, error) {
	// Reject bookmarks of missing notes up front.
	note, err := s.noteRepo.GetNoteByID(ctx, noteID)
	if err != nil {
		return nil, err
	}

	id, err := s.bookmarkRepo.CreateBookmark(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	return &dto.BookmarkedNote{
		BookmarkID: id,
		Note:       toNoteResponse(note),
	}, nil
}

// RemoveBookmark removes the caller's bookmark of the note.
func (s *bookmarkServiceImpl) RemoveBookmark(ctx context.Context, userID, noteID int64) error {
	return s.bookmarkRepo.DeleteBookmark(ctx, userID, noteID)
}

// GetMyBookmarks lists the caller's bookmarks with their notes.
func (s *bookmarkServiceImpl) GetMyBookmarks(ctx context.Context, userID int64) (*dto.BookmarkListResponse, error) {
	bookmarks, err := s.bookmarkRepo.GetBookmarksByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting bookmarks: %w", err)
	}

	items := make([]dto.BookmarkedNote, 0, len(bookmarks))
	for _, b := range bookmarks {
		items = append(items, dto.BookmarkedNote{
			BookmarkID:   b.BookmarkID,
			BookmarkedAt: b.BookmarkedAt,
			Note:         toNoteResponse(&b.Note),
		})
	}

	return &dto.BookmarkListResponse{
		Bookmarks: items,
		Total:     len(items),
	}, nil
}

// IsBookmarked checks whether the caller has bookmarked the note.
func (s *bookmarkServiceImpl) IsBookmarked(ctx context.Context, userID, noteID int64) (*dto.BookmarkCheckResponse, error) {
	exists, err := s.bookmarkRepo.BookmarkExists(ctx, userID, noteID)
	if err != nil {
		return nil, fmt.Errorf("error checking bookmark: %w", err)
	}
	return &dto.BookmarkCheckResponse{Bookmarked: exists}, nil
}
