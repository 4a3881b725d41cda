// Package repomanager selects the storage backend for a database DSN and
// vends repository implementations bound to it, together with the backend's
// schema migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rosterhq/roster/internal/dbx"
	"github.com/rosterhq/roster/internal/server/repositories/refreshtokens"
	"github.com/rosterhq/roster/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to any DBTX, so services can
// rebind them to a transaction inside dbx.WithTx, and exposes a schema
// migration hook for the backend it represents.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}

// ForDSN inspects the DSN scheme and returns the matching manager together
// with the database/sql driver name the DSN should be opened with.
// postgres:// and postgresql:// select PostgreSQL, file: and :memory:
// select SQLite.
func ForDSN(dsn string) (RepositoryManager, string, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return &PostgresRepositoryManager{}, "pgx", nil
	case strings.HasPrefix(dsn, "file:"), dsn == ":memory:":
		return &SqliteRepositoryManager{}, "sqlite", nil
	default:
		return nil, "", fmt.Errorf("unsupported database dsn: %s", dsn)
	}
}
