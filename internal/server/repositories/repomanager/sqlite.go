package repomanager

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/rosterhq/roster/internal/dbx"
	"github.com/rosterhq/roster/internal/server/migrations"
	"github.com/rosterhq/roster/internal/server/repositories/refreshtokens"
	"github.com/rosterhq/roster/internal/server/repositories/users"
)

// SqliteRepositoryManager vends SQLite-backed repository implementations
// and runs the sqlite migration set.
type SqliteRepositoryManager struct{}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SqliteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSqliteRepository(db)
}

// RefreshTokens returns a refreshtokens.Repository bound to the provided DBTX.
func (m *SqliteRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewSqliteRepository(db)
}

// RunMigrations sets up goose with the embedded migrations and applies the
// sqlite set against the provided database connection.
func (m *SqliteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetDialect("sqlite3")
	if err := gooseUpContext(ctx, db, "sqlite"); err != nil {
		return err
	}
	return nil
}
