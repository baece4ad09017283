package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/selin/campushub/internal/app/models"
	appRepos "github.com/selin/campushub/internal/app/repositories"
	"github.com/selin/campushub/internal/pkg/apperrors"
	"github.com/selin/campushub/internal/pkg/auth"
	"github.com/selin/campushub/internal/config"
)

// Default admin credentials. The password is overridable via ADMIN_PASSWORD
// and must be rotated outside development.
const (
	defaultAdminEmail    = "admin@campushub.app"
	defaultAdminPassword = "admin12345"
)

// CreateDefaultData creates the default admin account if it doesn't exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default admin account...")

	password := config.GetEnv("ADMIN_PASSWORD", defaultAdminPassword)
	hashed, err := auth.HashPassword(password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default admin password")
		return err
	}

	admin := &appModels.User{
		Name:     "Administrator",
		Email:    config.GetEnv("ADMIN_EMAIL", defaultAdminEmail),
		Password: hashed,
		Role:     appModels.RoleAdmin,
		IsActive: true,
	}

	_, err = userRepo.CreateUser(ctx, admin)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Info().Str("email", admin.Email).Msg("Default admin already exists")
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating default admin account")
		return err
	}

	lgr.Info().Str("email", admin.Email).Msg("Default admin account created")
	return nil
}
