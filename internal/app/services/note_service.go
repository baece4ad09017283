package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/selin/campushub/internal/app/auth"
	"github.com/selin/campushub/internal/app/models"
	"github.com/selin/campushub/internal/app/models/dto"
	"github.com/selin/campushub/internal/app/repositories"
	"github.com/selin/campushub/internal/pkg/apperrors"
	"github.com/selin/campushub/internal/pkg/filestorage"
	"github.com/selin/campushub/internal/pkg/logger"
)

// NoteService defines the interface for note operations
type NoteService interface {
	GetAllNotes(ctx context.Context, filter *dto.NoteFilterRequest) (*dto.NoteListResponse, error)
	GetNoteByID(ctx context.Context, id int64) (*dto.NoteResponse, error)
	GetMyNotes(ctx context.Context, userID int64) ([]dto.NoteResponse, error)
	CreateNote(ctx context.Context, userID int64, req *dto.CreateNoteRequest, file *multipart.FileHeader) (*dto.NoteResponse, error)
	UpdateNote(ctx context.Context, id, userID int64, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	DeleteNote(ctx context.Context, id, userID int64) error
	RecordDownload(ctx context.Context, id int64) (*dto.DownloadResponse, error)
}

// noteServiceImpl implements NoteService
type noteServiceImpl struct {
	noteRepo     *repositories.NoteRepository
	authzService *auth.AuthorizationService
	storage      filestorage.ObjectStorage
}

// NewNoteService creates a new NoteService
func NewNoteService(
	noteRepo *repositories.NoteRepository,
	authzService *auth.AuthorizationService,
	storage filestorage.ObjectStorage,
) NoteService {
	return &noteServiceImpl{
		noteRepo:     noteRepo,
		authzService: authzService,
		storage:      storage,
	}
}

// toNoteResponse converts joined note details to the response DTO.
func toNoteResponse(note *repositories.NoteDetails) dto.NoteResponse {
	tags := note.Tags
	if tags == nil {
		tags = []string{}
	}
	return dto.NoteResponse{
		ID:           note.ID,
		Title:        note.Title,
		Description:  note.Description,
		Subject:      note.Subject,
		Semester:     note.Semester,
		Branch:       note.Branch,
		FileURL:      note.FileURL,
		FileType:     note.FileType,
		FileSize:     note.FileSize,
		ResourceType: string(note.ResourceType),
		Status:       string(note.Status),
		Views:        note.Views,
		Downloads:    note.Downloads,
		Tags:         tags,
		Rating:       note.Rating,
		RatingCount:  note.RatingCount,
		Owner: dto.NoteOwner{
			ID:        note.UserID,
			Name:      note.OwnerName,
			Email:     note.OwnerEmail,
			Branch:    note.OwnerBranch,
			AvatarURL: note.OwnerAvatarURL,
		},
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

func toNoteResponses(notes []*repositories.NoteDetails) []dto.NoteResponse {
	responses := make([]dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		responses = append(responses, toNoteResponse(note))
	}
	return responses
}

// GetAllNotes retrieves approved notes with filtering and pagination.
func (s *noteServiceImpl) GetAllNotes(ctx context.Context, filter *dto.NoteFilterRequest) (*dto.NoteListResponse, error) {
	params := repositories.GetAllNotesParams{
		SortBy: filter.SortBy,
		Page:   filter.Page,
		Size:   filter.Limit,
	}
	if filter.Semester > 0 {
		params.Semester = &filter.Semester
	}
	if filter.Branch != "" {
		params.Branch = &filter.Branch
	}
	if filter.Subject != "" {
		params.Subject = &filter.Subject
	}
	if filter.Search != "" {
		params.Search = &filter.Search
	}

	notes, pagination, err := s.noteRepo.GetAllNotes(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("error getting notes: %w", err)
	}

	return &dto.NoteListResponse{
		Notes:      toNoteResponses(notes),
		Pagination: pagination,
	}, nil
}

// GetNoteByID retrieves a note and records the view.
func (s *noteServiceImpl) GetNoteByID(ctx context.Context, id int64) (*dto.NoteResponse, error) {
	note, err := s.noteRepo.GetNoteByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// View counting is best effort; a failed bump never fails the read.
	if err := s.noteRepo.IncrementViews(ctx, id); err != nil {
		logger.Warn().Err(err).Int64("noteID", id).Msg("Failed to increment note views")
	} else {
		note.Views++
	}

	response := toNoteResponse(note)
	return &response, nil
}

// GetMyNotes lists the caller's own notes regardless of status.
func (s *noteServiceImpl) GetMyNotes(ctx context.Context, userID int64) ([]dto.NoteResponse, error) {
	notes, err := s.noteRepo.GetNotesByOwnerID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting notes by owner: %w", err)
	}
	return toNoteResponses(notes), nil
}

// CreateNote stores the uploaded file in the media store, then persists the
// note row. An upload failure leaves no row behind.
func (s *noteServiceImpl) CreateNote(ctx context.Context, userID int64, req *dto.CreateNoteRequest, file *multipart.FileHeader) (*dto.NoteResponse, error) {
	if file == nil {
		return nil, apperrors.ErrFileMissing
	}

	contentType := file.Header.Get("Content-Type")
	if !filestorage.IsAllowedType(contentType) {
		return nil, apperrors.ErrFileType
	}

	src, err := file.Open()
	if err != nil {
		logger.Error().Err(err).Msg("Error opening uploaded file")
		return nil, fmt.Errorf("error opening uploaded file: %w", err)
	}
	defer src.Close()

	key := filestorage.NewObjectKey(contentType)
	stored, err := s.storage.Upload(ctx, key, src, contentType)
	if err != nil {
		logger.Error().Err(err).Str("key", key).Msg("Media store upload failed")
		return nil, apperrors.ErrUploadFailed
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	note := &models.Note{
		Title:        req.Title,
		Description:  req.Description,
		Subject:      req.Subject,
		Semester:     req.Semester,
		Branch:       req.Branch,
		FileURL:      stored.URL,
		FileType:     contentType,
		FileSize:     file.Size,
		StorageKey:   stored.Key,
		ResourceType: filestorage.ResourceTypeFor(contentType),
		UserID:       userID,
		Status:       models.NoteStatusApproved,
		Tags:         tags,
	}

	id, err := s.noteRepo.CreateNote(ctx, note)
	if err != nil {
		// Roll the orphaned object back so the store stays consistent.
		if delErr := s.storage.Delete(ctx, stored.Key); delErr != nil {
			logger.Error().Err(delErr).Str("key", stored.Key).Msg("Failed to clean up orphaned media object")
		}
		return nil, fmt.Errorf("error creating note: %w", err)
	}

	created, err := s.noteRepo.GetNoteByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading created note: %w", err)
	}

	response := toNoteResponse(created)
	return &response, nil
}

// UpdateNote applies a partial update after an ownership check. Only admins
// may change the moderation status.
func (s *noteServiceImpl) UpdateNote(ctx context.Context, id, userID int64, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	if err := s.authzService.ValidateNoteOwnership(ctx, id, userID); err != nil {
		return nil, err
	}

	// Only admins moderate: status changes need more than ownership.
	if req.Status != nil {
		if err := s.authzService.ValidateAdmin(ctx, userID); err != nil {
			return nil, err
		}
	}

	if err := s.noteRepo.UpdateNote(ctx, id, req); err != nil {
		return nil, err
	}

	note, err := s.noteRepo.GetNoteByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := toNoteResponse(note)
	return &response, nil
}

// DeleteNote removes the media object first, then the row. If the media store
// delete fails the row stays so the note is never left pointing at nothing.
func (s *noteServiceImpl) DeleteNote(ctx context.Context, id, userID int64) error {
	if err := s.authzService.ValidateNoteOwnership(ctx, id, userID); err != nil {
		return err
	}

	note, err := s.noteRepo.GetNoteByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, note.StorageKey); err != nil {
		logger.Error().Err(err).Str("key", note.StorageKey).Int64("noteID", id).Msg("Media store delete failed")
		return apperrors.ErrDeleteFailed
	}

	return s.noteRepo.DeleteNote(ctx, id)
}

// RecordDownload bumps the download counter and hands back the file URL.
func (s *noteServiceImpl) RecordDownload(ctx context.Context, id int64) (*dto.DownloadResponse, error) {
	fileURL, downloads, err := s.noteRepo.IncrementDownloads(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.DownloadResponse{
		FileURL:   fileURL,
		Downloads: downloads,
	}, nil
}
