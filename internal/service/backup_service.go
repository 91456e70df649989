package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"wordquest/internal/database"
)

// BackupData represents the complete database backup structure
type BackupData struct {
	Version    string           `json:"version"`
	ExportedAt time.Time        `json:"exported_at"`
	Users      []UserBackup     `json:"users"`
	Games      []GameBackup     `json:"games"`
	GameWords  []GameWordBackup `json:"game_words"`
}

// UserBackup represents a user record for backup
type UserBackup struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"password_hash"`
	OAuthProvider string    `json:"oauth_provider"`
	OAuthSubject  string    `json:"oauth_subject"`
	CreatedAt     time.Time `json:"created_at"`
}

// GameBackup represents a game record for backup
type GameBackup struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	WordsGuessed int       `json:"words_guessed"`
	TotalHints   int       `json:"total_hints"`
	Score        int       `json:"score"`
	TimeTaken    float64   `json:"time_taken"`
	Completed    bool      `json:"completed"`
	CreatedAt    time.Time `json:"created_at"`
}

// GameWordBackup represents a game word row for backup
type GameWordBackup struct {
	ID       int64  `json:"id"`
	GameID   int64  `json:"game_id"`
	Word     string `json:"word"`
	Position int    `json:"position"`
}

// BackupService exports and imports the full game database as JSON
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes a complete backup of users, games, and game words to w
func (s *BackupService) Export(w io.Writer) error {
	backup := BackupData{
		Version:    "1",
		ExportedAt: time.Now().UTC(),
	}

	if err := s.exportUsers(&backup); err != nil {
		return err
	}
	if err := s.exportGames(&backup); err != nil {
		return err
	}
	if err := s.exportGameWords(&backup); err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Exported %d users, %d games, %d game words",
		len(backup.Users), len(backup.Games), len(backup.GameWords))
	return nil
}

// ExportToFile writes a backup to the named file
func (s *BackupService) ExportToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer f.Close()

	return s.Export(f)
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	query := `
		SELECT id, username, email, password_hash, COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''), created_at
		FROM users ORDER BY id
	`
	rows, err := s.db.Query(query)
	if err != nil {
		return fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash,
			&u.OAuthProvider, &u.OAuthSubject, &u.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan user: %w", err)
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportGames(backup *BackupData) error {
	query := `
		SELECT id, user_id, words_guessed, total_hints, score, time_taken, completed, created_at
		FROM game_records ORDER BY id
	`
	rows, err := s.db.Query(query)
	if err != nil {
		return fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var g GameBackup
		if err := rows.Scan(&g.ID, &g.UserID, &g.WordsGuessed, &g.TotalHints,
			&g.Score, &g.TimeTaken, &g.Completed, &g.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan game: %w", err)
		}
		backup.Games = append(backup.Games, g)
	}
	return rows.Err()
}

func (s *BackupService) exportGameWords(backup *BackupData) error {
	query := `SELECT id, game_id, word, position FROM game_words ORDER BY game_id, position`
	rows, err := s.db.Query(query)
	if err != nil {
		return fmt.Errorf("failed to query game words: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var gw GameWordBackup
		if err := rows.Scan(&gw.ID, &gw.GameID, &gw.Word, &gw.Position); err != nil {
			return fmt.Errorf("failed to scan game word: %w", err)
		}
		backup.GameWords = append(backup.GameWords, gw)
	}
	return rows.Err()
}

// Import loads a backup into the database inside one transaction, preserving
// IDs. With clear set, existing rows are removed first.
func (s *BackupService) Import(r io.Reader, clear bool) error {
	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if clear {
		for _, table := range []string{"game_words", "game_records", "password_reset_tokens", "sessions", "users"} {
			if _, err := tx.Exec("DELETE FROM " + table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
	}

	for _, u := range backup.Users {
		query := `
			INSERT INTO users (id, username, email, password_hash, oauth_provider, oauth_subject, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`
		if _, err := tx.Exec(query, u.ID, u.Username, u.Email, u.PasswordHash,
			u.OAuthProvider, u.OAuthSubject, u.CreatedAt); err != nil {
			return fmt.Errorf("failed to import user %d: %w", u.ID, err)
		}
	}

	for _, g := range backup.Games {
		query := `
			INSERT INTO game_records (id, user_id, words_guessed, total_hints, score, time_taken, completed, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`
		if _, err := tx.Exec(query, g.ID, g.UserID, g.WordsGuessed, g.TotalHints,
			g.Score, g.TimeTaken, g.Completed, g.CreatedAt); err != nil {
			return fmt.Errorf("failed to import game %d: %w", g.ID, err)
		}
	}

	for _, gw := range backup.GameWords {
		query := `INSERT INTO game_words (id, game_id, word, position) VALUES (?, ?, ?, ?)`
		if _, err := tx.Exec(query, gw.ID, gw.GameID, gw.Word, gw.Position); err != nil {
			return fmt.Errorf("failed to import game word %d: %w", gw.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	log.Printf("Imported %d users, %d games, %d game words",
		len(backup.Users), len(backup.Games), len(backup.GameWords))
	return nil
}

// ImportFromFile loads a backup from the named file
func (s *BackupService) ImportFromFile(path string, clear bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()

	return s.Import(f, clear)
}
