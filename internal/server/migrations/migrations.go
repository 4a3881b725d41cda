// Package migrations embeds the SQL schema migrations applied by goose at
// server startup. Each storage backend carries its own set: postgres/ for
// PostgreSQL and sqlite/ for SQLite.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS
