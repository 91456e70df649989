package database

import (
	"strings"
	"testing"
)

func TestRewritePlaceholdersToNumbered(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{
			name:     "no placeholders",
			query:    "SELECT 1",
			expected: "SELECT 1",
		},
		{
			name:     "single placeholder",
			query:    "SELECT * FROM users WHERE id = ?",
			expected: "SELECT * FROM users WHERE id = $1",
		},
		{
			name:     "multiple placeholders",
			query:    "INSERT INTO sessions (id, user_id, expires_at) VALUES (?, ?, ?)",
			expected: "INSERT INTO sessions (id, user_id, expires_at) VALUES ($1, $2, $3)",
		},
		{
			name:     "placeholders in update",
			query:    "UPDATE game_records SET score = ? WHERE id = ? AND words_guessed = ?",
			expected: "UPDATE game_records SET score = $1 WHERE id = $2 AND words_guessed = $3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rewritePlaceholdersToNumbered(tt.query); got != tt.expected {
				t.Errorf("rewritePlaceholdersToNumbered() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDialectDriverNames(t *testing.T) {
	tests := []struct {
		dialect  Dialect
		driver   string
		subdir   string
		lastID   bool
	}{
		{dialect: NewSQLiteDialect(), driver: "sqlite3", subdir: "sqlite", lastID: true},
		{dialect: NewPostgresDialect(), driver: "postgres", subdir: "postgres", lastID: false},
		{dialect: NewMySQLDialect(), driver: "mysql", subdir: "mysql", lastID: true},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			if got := tt.dialect.DriverName(); got != tt.driver {
				t.Errorf("DriverName() = %q, want %q", got, tt.driver)
			}
			if got := tt.dialect.MigrationsSubdir(); got != tt.subdir {
				t.Errorf("MigrationsSubdir() = %q, want %q", got, tt.subdir)
			}
			if got := tt.dialect.SupportsLastInsertId(); got != tt.lastID {
				t.Errorf("SupportsLastInsertId() = %v, want %v", got, tt.lastID)
			}
		})
	}
}

func TestSQLiteRewriteIsIdentity(t *testing.T) {
	query := "SELECT * FROM users WHERE id = ? AND username = ?"
	if got := NewSQLiteDialect().RewriteQuery(query); got != query {
		t.Errorf("SQLite rewrite changed the query: %q", got)
	}
	if got := NewMySQLDialect().RewriteQuery(query); got != query {
		t.Errorf("MySQL rewrite changed the query: %q", got)
	}
}

func TestMySQLDSNEnablesMultiStatements(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "bare dsn", url: "user:pass@tcp(localhost:3306)/wordquest"},
		{name: "dsn with params", url: "user:pass@tcp(localhost:3306)/wordquest?parseTime=true"},
		{name: "already enabled", url: "user:pass@tcp(localhost:3306)/wordquest?multiStatements=true"},
	}

	d := NewMySQLDialect()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn := d.DSN(DialectConfig{URL: tt.url})
			if !strings.Contains(dsn, "multiStatements=true") {
				t.Errorf("DSN %q missing multiStatements", dsn)
			}
			if strings.Count(dsn, "multiStatements") != 1 {
				t.Errorf("DSN %q repeats multiStatements", dsn)
			}
		})
	}
}
