package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/selin/campushub/internal/app/models"
	"github.com/selin/campushub/internal/app/models/dto"
	"github.com/selin/campushub/internal/app/repositories"
	"github.com/selin/campushub/internal/db"
	"github.com/selin/campushub/internal/pkg/apperrors"
	"github.com/selin/campushub/internal/pkg/filestorage"
	"github.com/selin/campushub/internal/pkg/logger"
)

// topContributorLimit caps the dashboard contributor ranking.
const topContributorLimit = 5

// recentNoteLimit caps the dashboard recent-note list.
const recentNoteLimit = 5

// AdminService defines the interface for admin operations
type AdminService interface {
	GetStats(ctx context.Context) (*dto.StatsResponse, error)
	GetAllUsers(ctx context.Context, filter *dto.AdminUserFilterRequest) (*dto.AdminUserListResponse, error)
	SetUserActive(ctx context.Context, userID int64, active bool) (*dto.UserProfile, error)
	DeleteUser(ctx context.Context, userID int64) error
	GetAllNotes(ctx context.Context, filter *dto.AdminNoteFilterRequest) (*dto.NoteListResponse, error)
}

// adminServiceImpl implements AdminService
type adminServiceImpl struct {
	database  *db.PostgresDB
	userRepo  *repositories.UserRepository
	noteRepo  *repositories.NoteRepository
	statsRepo *repositories.StatsRepository
	storage   filestorage.ObjectStorage
}

// NewAdminService creates a new AdminService
func NewAdminService(
	database *db.PostgresDB,
	userRepo *repositories.UserRepository,
	noteRepo *repositories.NoteRepository,
	statsRepo *repositories.StatsRepository,
	storage filestorage.ObjectStorage,
) AdminService {
	return &adminServiceImpl{
		database:  database,
		userRepo:  userRepo,
		noteRepo:  noteRepo,
		statsRepo: statsRepo,
		storage:   storage,
	}
}

// GetStats aggregates the admin dashboard numbers.
func (s *adminServiceImpl) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	totalUsers, err := s.statsRepo.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting users: %w", err)
	}

	totalNotes, totalViews, totalDownloads, err := s.statsRepo.NoteTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("error aggregating note totals: %w", err)
	}

	byBranch, err := s.statsRepo.NotesByBranch(ctx)
	if err != nil {
		return nil, fmt.Errorf("error grouping notes by branch: %w", err)
	}

	bySemester, err := s.statsRepo.NotesBySemester(ctx)
	if err != nil {
		return nil, fmt.Errorf("error grouping notes by semester: %w", err)
	}

	contributors, err := s.statsRepo.TopContributors(ctx, topContributorLimit)
	if err != nil {
		return nil, fmt.Errorf("error ranking contributors: %w", err)
	}

	recent, _, err := s.noteRepo.GetAllNotes(ctx, repositories.GetAllNotesParams{
		AnyStatus: true,
		SortBy:    "recent",
		Page:      1,
		Size:      recentNoteLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("error listing recent notes: %w", err)
	}

	return &dto.StatsResponse{
		TotalUsers:      totalUsers,
		TotalNotes:      totalNotes,
		TotalViews:      totalViews,
		TotalDownloads:  totalDownloads,
		NotesByBranch:   byBranch,
		NotesBySemester: bySemester,
		TopContributors: contributors,
		RecentNotes:     toNoteResponses(recent),
	}, nil
}

// GetAllUsers lists users with search and role filtering.
func (s *adminServiceImpl) GetAllUsers(ctx context.Context, filter *dto.AdminUserFilterRequest) (*dto.AdminUserListResponse, error) {
	params := repositories.GetAllUsersParams{
		Search: filter.Search,
		Page:   filter.Page,
		Size:   filter.Limit,
	}
	if filter.Role != "" {
		role := models.RoleType(filter.Role)
		params.Role = &role
	}

	users, pagination, err := s.userRepo.GetAllUsers(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("error getting users: %w", err)
	}

	profiles := make([]dto.UserProfile, 0, len(users))
	for _, user := range users {
		profiles = append(profiles, toUserProfile(user))
	}

	return &dto.AdminUserListResponse{
		Users:      profiles,
		Pagination: pagination,
	}, nil
}

// SetUserActive flips a user's active flag. Admin accounts are immutable here
// so an admin cannot lock out another admin.
func (s *adminServiceImpl) SetUserActive(ctx context.Context, userID int64, active bool) (*dto.UserProfile, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.IsAdmin() {
		return nil, apperrors.ErrAdminImmutable
	}

	if err := s.userRepo.SetActive(ctx, userID, active); err != nil {
		return nil, err
	}

	user.IsActive = active
	profile := toUserProfile(user)
	return &profile, nil
}

// DeleteUser removes a user account. Their media objects go first; the note,
// application and bookmark rows are removed in one transaction with the user.
func (s *adminServiceImpl) DeleteUser(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.IsAdmin() {
		return apperrors.ErrAdminImmutable
	}

	notes, err := s.noteRepo.GetNotesByOwnerID(ctx, userID)
	if err != nil {
		return fmt.Errorf("error getting user notes for deletion: %w", err)
	}

	for _, note := range notes {
		if err := s.storage.Delete(ctx, note.StorageKey); err != nil {
			logger.Error().Err(err).Str("key", note.StorageKey).Int64("noteID", note.ID).Msg("Media store delete failed during user deletion")
			return apperrors.ErrDeleteFailed
		}
	}

	return s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.noteRepo.DeleteNotesByOwner(ctx, tx, userID); err != nil {
			return fmt.Errorf("error deleting user notes: %w", err)
		}
		return s.userRepo.DeleteUser(ctx, tx, userID)
	})
}

// GetAllNotes lists notes for moderation, any status.
func (s *adminServiceImpl) GetAllNotes(ctx context.Context, filter *dto.AdminNoteFilterRequest) (*dto.NoteListResponse, error) {
	params := repositories.GetAllNotesParams{
		AnyStatus: true,
		SortBy:    "recent",
		Page:      filter.Page,
		Size:      filter.Limit,
	}
	if filter.Status != "" {
		status := models.NoteStatus(filter.Status)
		params.Status = &status
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
