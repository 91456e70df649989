package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
)

// RunMigrations applies every pending SQL migration for the active dialect.
// Files live under migrationsPath/<dialect subdir>/ and run in lexical order;
// an applied file is recorded in the migrations table and never rerun.
func (db *DB) RunMigrations(migrationsPath string) error {
	if _, err := db.DB.Exec(db.Dialect.CreateMigrationsTableQuery()); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	dir := filepath.Join(migrationsPath, db.Dialect.MigrationsSubdir())
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to read migration files: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		applied, err := db.applyMigration(file)
		if err != nil {
			return err
		}
		if applied {
			log.Printf("Migration applied: %s", filepath.Base(file))
		}
	}
	return nil
}

// applyMigration runs one migration file unless it is already recorded.
func (db *DB) applyMigration(file string) (bool, error) {
	filename := filepath.Base(file)

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM migrations WHERE filename = ?", filename).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	content, err := os.ReadFile(file)
	if err != nil {
		return false, fmt.Errorf("failed to read migration file %s: %w", filename, err)
	}

	// DDL goes to the raw handle; placeholder rewriting must not touch it
	if _, err := db.DB.Exec(string(content)); err != nil {
		return false, fmt.Errorf("failed to execute migration %s: %w", filename, err)
	}

	if _, err := db.Exec("INSERT INTO migrations (filename) VALUES (?)", filename); err != nil {
		return false, fmt.Errorf("failed to record migration %s: %w", filename, err)
	}
	return true, nil
}
