package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/selin/campushub/internal/app/auth"
	appControllers "github.com/selin/campushub/internal/app/controllers"
	appMigrations "github.com/selin/campushub/internal/app/migrations"
	appRepos "github.com/selin/campushub/internal/app/repositories"
	appRoutes "github.com/selin/campushub/internal/app/routes"
	appServices "github.com/selin/campushub/internal/app/services"
	"github.com/selin/campushub/internal/config"
	"github.com/selin/campushub/internal/db"
	appMiddleware "github.com/selin/campushub/internal/middleware"
	pkgAuth "github.com/selin/campushub/internal/pkg/auth"
	"github.com/selin/campushub/internal/pkg/filestorage"
	"github.com/selin/campushub/internal/pkg/helpers"
	"github.com/selin/campushub/internal/pkg/logger"
	"github.com/selin/campushub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService        appServices.AuthService
	NoteService        appServices.NoteService
	JobService         appServices.JobService
	BookmarkService    appServices.BookmarkService
	AdminService       appServices.AdminService
	AuthController     *appControllers.AuthController
	NoteController     *appControllers.NoteController
	JobController      *appControllers.JobController
	BookmarkController *appControllers.BookmarkController
	AdminController    *appControllers.AdminController
	AuthMiddleware     *appMiddleware.AuthMiddleware
	Repos              *appRepos.Repositories
	JWTService         *pkgAuth.JWTService
	AuthzService       *appAuth.AuthorizationService
	Storage            filestorage.ObjectStorage
	Logger             zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// NewObjectStorage selects the media store backend from configuration.
func NewObjectStorage(cfg *config.Config) (filestorage.ObjectStorage, error) {
	switch cfg.Storage.Driver {
	case "local":
		baseURL := "http://localhost:" + cfg.Server.Port + "/uploads"
		return filestorage.NewLocalStorage(cfg.Storage.LocalPath, baseURL)
	default:
		return filestorage.NewS3Storage(filestorage.S3Config{
			Region:    cfg.Storage.Region,
			Bucket:    cfg.Storage.Bucket,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Endpoint:  cfg.Storage.Endpoint,
		})
	}
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	var err error
	deps.Storage, err = NewObjectStorage(cfg)
	if err != nil {
		lgr.Error().Err(err).Str("driver", cfg.Storage.Driver).Msg("Failed to initialize media store")
		return nil, fmt.Errorf("failed to initialize media store: %w", err)
	}

	deps.AuthzService = appAuth.NewAuthorizationService(
		deps.Repos.UserRepository,
		deps.Repos.NoteRepository,
	)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExpiry: helpers.ParseDuration(cfg.JWT.TokenExpiration, 24*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService)
	deps.NoteService = appServices.NewNoteService(deps.Repos.NoteRepository, deps.AuthzService, deps.Storage)
	deps.JobService = appServices.NewJobService(deps.Repos.JobRepository, deps.Repos.ApplicationRepository)
	deps.BookmarkService = appServices.NewBookmarkService(deps.Repos.BookmarkRepository, deps.Repos.NoteRepository)
	deps.AdminService = appServices.NewAdminService(database, deps.Repos.UserRepository, deps.Repos.NoteRepository, deps.Repos.StatsRepository, deps.Storage)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UserRepository)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.NoteController = appControllers.NewNoteController(deps.NoteService, cfg.MaxUploadBytes())
	deps.JobController = appControllers.NewJobController(deps.JobService)
	deps.BookmarkController = appControllers.NewBookmarkController(deps.BookmarkService)
	deps.AdminController = appControllers.NewAdminController(deps.AdminService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())
	router.Use(appMiddleware.CORS())

	appRoutes.SetupRouter(
		router,
		deps.AuthController,
		deps.NoteController,
		deps.JobController,
		deps.BookmarkController,
		deps.AdminController,
		deps.AuthMiddleware,
	)

	return router
}
