package persistence

import (
	"database/sql"
	"embed"

	"github.com/pkg/errors"
	migrate "github.com/rubenv/sql-migrate"
)

const migrationsTable = "migrations"

//go:embed migrations/*.sql
var migrations embed.FS

func init() {
	migrate.SetTable(migrationsTable)
}

// Source returns the embedded schema migrations.
func Source() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrations,
		Root:       "migrations",
	}
}

// Migrate applies all pending migrations and returns how many ran.
func Migrate(db *sql.DB) (int, error) {
	n, err := migrate.Exec(db, "postgres", Source(), migrate.Up)
	if err != nil {
		return n, errors.Wrap(err, "failed to apply migrations")
	}

	return n, nil
}

// Status lists the embedded migrations and whether they were applied.
func Status(db *sql.DB) (map[string]bool, error) {
	all, err := Source().FindMigrations()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read migrations")
	}

	records, err := migrate.GetMigrationRecords(db, "postgres")
	if err != nil {
		return nil, errors.Wrap(err, "failed to read migration records")
	}

	applied := make(map[string]bool, len(all))
	for _, m := range all {
		applied[m.Id] = false
	}
	for _, r := range records {
		applied[r.Id] = true
	}

	return applied, nil
}
