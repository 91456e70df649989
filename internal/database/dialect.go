package database

import (
	"database/sql"
	"strconv"
	"strings"
	"time"
)

// Dialect abstracts the differences between the supported SQL backends.
// Repositories write queries once, with ? placeholders; the dialect takes
// care of driver selection, placeholder style, and ID retrieval.
type Dialect interface {
	// DriverName names the driver to pass to sql.Open.
	DriverName() string

	// DSN builds the connection string from the dialect config.
	DSN(config DialectConfig) string

	// RewriteQuery converts ? placeholders to the backend's native style.
	RewriteQuery(query string) string

	// SupportsLastInsertId reports whether Result.LastInsertId works.
	SupportsLastInsertId() bool

	// ConfigureConnection applies backend-specific connection settings.
	ConfigureConnection(db *sql.DB) error

	// MigrationsSubdir names the per-backend migrations directory.
	MigrationsSubdir() string

	// CreateMigrationsTableQuery returns the DDL for the tracking table.
	CreateMigrationsTableQuery() string
}

// DialectConfig carries the connection parameters. SQLite uses Path, the
// server backends use URL.
type DialectConfig struct {
	Path string
	URL  string
}

// configurePool applies the pool limits shared by every backend.
func configurePool(db *sql.DB) {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)
}

// rewritePlaceholdersToNumbered turns each ? into $1, $2, and so on.
func rewritePlaceholdersToNumbered(query string) string {
	if !strings.Contains(query, "?") {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] != '?' {
			b.WriteByte(query[i])
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}
