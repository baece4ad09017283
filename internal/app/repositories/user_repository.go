package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/selin/campushub/internal/app/models"
	"github.com/selin/campushub/internal/app/models/dto"
	"github.com/selin/campushub/internal/pkg/apperrors"
	"github.com/selin/campushub/internal/pkg/dberrors"
	"github.com/selin/campushub/internal/pkg/helpers"
	"github.com/selin/campushub/internal/pkg/logger"
)

// GetAllUsersParams holds parameters for filtering and paginating users.
type GetAllUsersParams struct {
	Search string
	Role   *models.RoleType
	Page   int
	Size   int
}

// UserRepository handles database operations for User.
type UserRepository struct {
	DB *pgxpool.Pool
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) selectUserQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"id", "name", "email", "password", "role", "branch", "semester",
		"avatar_url", "is_active", "created_at", "updated_at",
	).From("users").PlaceholderFormat(squirrel.Dollar)
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.Password, &user.Role,
		&user.Branch, &user.Semester, &user.AvatarURL, &user.IsActive,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error scanning user row")
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a new user and returns its ID.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	sql, args, err := squirrel.Insert("users").
		Columns("name", "email", "password", "role", "branch", "semester").
		Values(user.Name, user.Email, user.Password, user.Role, user.Branch, user.Semester).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create user SQL")
		return 0, err
	}

	var id int64
	err = r.DB.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create user query")
		return 0, err
	}

	return id, nil
}

// GetUserByID retrieves a user by ID.
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	sqlStr, args, err := r.selectUserQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get user by ID SQL")
		return nil, err
	}

	return scanUser(r.DB.QueryRow(ctx, sqlStr, args...))
}

// GetUserByEmail retrieves a user by email.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	sqlStr, args, err := r.selectUserQuery().Where(squirrel.Eq{"email": email}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get user by email SQL")
		return nil, err
	}

	return scanUser(r.DB.QueryRow(ctx, sqlStr, args...))
}

// UpdateProfile applies a partial profile update. Nil patch fields are untouched.
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, patch *dto.UpdateProfileRequest) error {
	builder := squirrel.Update("users").PlaceholderFormat(squirrel.Dollar)

	updated := false
	if patch.Name != nil {
		builder = builder.Set("name", *patch.Name)
		updated = true
	}
	if patch.Branch != nil {
		builder = builder.Set("branch", *patch.Branch)
		updated = true
	}
	if patch.Semester != nil {
		builder = builder.Set("semester", *patch.Semester)
		updated = true
	}
	if patch.AvatarURL != nil {
		builder = builder.Set("avatar_url", *patch.AvatarURL)
		updated = true
	}

	if !updated {
		return nil
	}

	sql, args, err := builder.Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update profile SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update profile query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// SetActive flips the is_active flag on a user.
func (r *UserRepository) SetActive(ctx context.Context, id int64, active bool) error {
	sql, args, err := squirrel.Update("users").
		Set("is_active", active).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing set active query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// DeleteUser removes a user row inside the caller's transaction. Applications
// and bookmarks cascade at the schema level; note rows and stored note objects
// must be deleted by the caller first.
func (r *UserRepository) DeleteUser(ctx context.Context, tx pgx.Tx, id int64) error {
	sql, args, err := squirrel.Delete("users").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	cmdTag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete user query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// GetAllUsers retrieves a paginated, filtered user listing.
func (r *UserRepository) GetAllUsers(ctx context.Context, params GetAllUsersParams) ([]*models.User, dto.PaginationInfo, error) {
	sqlBuilder := r.selectUserQuery()
	countBuilder := squirrel.Select("count(*)").From("users").PlaceholderFormat(squirrel.Dollar)

	if params.Search != "" {
		pattern := "%" + strings.ToLower(params.Search) + "%"
		cond := squirrel.Or{
			squirrel.Like{"LOWER(name)": pattern},
			squirrel.Like{"LOWER(email)": pattern},
		}
		sqlBuilder = sqlBuilder.Where(cond)
		countBuilder = countBuilder.Where(cond)
	}
	if params.Role != nil {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"role": *params.Role})
		countBuilder = countBuilder.Where(squirrel.Eq{"role": *params.Role})
	}

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count users SQL")
		return nil, dto.PaginationInfo{}, err
	}

	var totalItems int64
	err = r.DB.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing count users query")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, params.Page, params.Size)

	if totalItems == 0 {
		return []*models.User{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(params.Page, params.Size)
	sqlBuilder = sqlBuilder.OrderBy("created_at DESC").Limit(uint64(limit)).Offset(offset)

	sqlStr, args, err := sqlBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all users SQL")
		return nil, dto.PaginationInfo{}, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all users query")
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning one user during get all")
			continue
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating through user rows")
		return nil, pagination, fmt.Errorf("database iteration error: %w", err)
	}

	return users, pagination, nil
}

// CountOwnedNotes returns the number of notes owned by a user.
func (r *UserRepository) CountOwnedNotes(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.DB.QueryRow(ctx, `SELECT count(*) FROM notes WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error counting owned notes")
		return 0, err
	}
	return count, nil
}

// CountBookmarks returns the number of bookmarks held by a user.
func (r *UserRepository) CountBookmarks(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.DB.QueryRow(ctx, `SELECT count(*) FROM bookmarks WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error counting bookmarks")
		return 0, err
	}
	return count, nil
}
