package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/selin/campushub/internal/app/repositories"
	"github.com/selin/campushub/internal/pkg/apperrors"
	"github.com/selin/campushub/internal/pkg/logger"
)

// AuthorizationService answers ownership and role questions for mutations.
// Owners and admins may modify a note; only admins manage jobs and users.
type AuthorizationService struct {
	userRepo *repositories.UserRepository
	noteRepo *repositories.NoteRepository
}

// NewAuthorizationService creates a new AuthorizationService.
func NewAuthorizationService(userRepo *repositories.UserRepository, noteRepo *repositories.NoteRepository) *AuthorizationService {
	return &AuthorizationService{
		userRepo: userRepo,
		noteRepo: noteRepo,
	}
}

// IsAdmin checks if the user holds the admin role.
func (s *AuthorizationService) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return false, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error getting user by ID in IsAdmin")
		return false, err
	}
	return user.IsAdmin(), nil
}

// CanModifyNote checks if the user can modify (update/delete) a note.
// The owner can, and so can any admin.
func (s *AuthorizationService) CanModifyNote(ctx context.Context, noteID, userID int64) (bool, error) {
	var ownerID int64
	err := s.noteRepo.DB.QueryRow(ctx, "SELECT user_id FROM notes WHERE id = $1", noteID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, apperrors.ErrNoteNotFound
		}
		logger.Error().Err(err).Int64("noteID", noteID).Int64("userID", userID).Msg("Error fetching note owner ID")
		return false, fmt.Errorf("failed to check note ownership: %w", err)
	}

	if ownerID == userID {
		return true, nil
	}

	return s.IsAdmin(ctx, userID)
}

// ValidateNoteOwnership validates that the user owns the note or is an admin.
func (s *AuthorizationService) ValidateNoteOwnership(ctx context.Context, noteID, userID int64) error {
	canModify, err := s.CanModifyNote(ctx, noteID, userID)
	if err != nil {
		return err
	}
	if !canModify {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// ValidateAdmin validates that the user holds the admin role.
func (s *AuthorizationService) ValidateAdmin(ctx context.Context, userID int64) error {
	isAdmin, err := s.IsAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return apperrors.ErrPermissionDenied
	}
	return nil
}
