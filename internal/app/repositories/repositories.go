package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles all repository instances for dependency injection.
type Repositories struct {
	UserRepository        *UserRepository
	NoteRepository        *NoteRepository
	JobRepository         *JobRepository
	ApplicationRepository *ApplicationRepository
	BookmarkRepository    *BookmarkRepository
	StatsRepository       *StatsRepository
}

// NewRepositories creates all repositories sharing the given pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		NoteRepository:        NewNoteRepository(db),
		JobRepository:         NewJobRepository(db),
		ApplicationRepository: NewApplicationRepository(db),
		BookmarkRepository:    NewBookmarkRepository(db),
		StatsRepository:       NewStatsRepository(db),
	}
}
