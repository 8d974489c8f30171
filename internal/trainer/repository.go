package trainer

import (
	"log/slog"

	"github.com/avirtanen/gymprogress/internal/sqlite"
)

// baseRepository carries the shared dependencies of all repositories.
type baseRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newBaseRepository(db *sqlite.Database, logger *slog.Logger) baseRepository {
	return baseRepository{db: db, logger: logger}
}

// repository bundles the SQLite repositories behind the service.
type repository struct {
	exercises *sqliteExerciseRepository
	entries   *sqliteEntryRepository
	settings  *sqliteSettingsRepository
}

func newRepository(db *sqlite.Database, logger *slog.Logger) *repository {
	base := newBaseRepository(db, logger)
	return &repository{
		exercises: &sqliteExerciseRepository{baseRepository: base},
		entries:   &sqliteEntryRepository{baseRepository: base},
		settings:  &sqliteSettingsRepository{baseRepository: base},
	}
}
