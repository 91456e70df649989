package repository

import (
	"database/sql"
	"fmt"
	"time"

	"wordquest/internal/database"
	"wordquest/internal/models"
)

// GameRepository handles database operations for game records and their word
// sequences. All state transitions on a record are single atomic updates with
// guards on the current value, so concurrent submits cannot double-advance a
// game or reopen a completed one.
type GameRepository struct {
	db *database.DB
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *database.DB) *GameRepository {
	return &GameRepository{db: db}
}

const gameColumns = `id, user_id, words_guessed, total_hints, score, time_taken, completed, created_at`

func scanGame(row *sql.Row) (*models.GameRecord, error) {
	game := &models.GameRecord{}
	err := row.Scan(
		&game.ID,
		&game.UserID,
		&game.WordsGuessed,
		&game.TotalHints,
		&game.Score,
		&game.TimeTaken,
		&game.Completed,
		&game.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return game, nil
}

// GetGameByID retrieves a game record by ID
func (r *GameRepository) GetGameByID(gameID int64) (*models.GameRecord, error) {
	query := `SELECT ` + gameColumns + ` FROM game_records WHERE id = ?`
	return scanGame(r.db.QueryRow(query, gameID))
}

// GetActiveGame retrieves the user's game record with completed = false, if any
func (r *GameRepository) GetActiveGame(userID int64) (*models.GameRecord, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM game_records
		WHERE user_id = ? AND completed = ?
		ORDER BY created_at DESC
		LIMIT 1
	`
	return scanGame(r.db.QueryRow(query, userID, false))
}

// HasCompletedGame reports whether the user has ever finished a game.
// This is the replay gate; it always consults the durable store.
func (r *GameRepository) HasCompletedGame(userID int64) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM game_records WHERE user_id = ? AND completed = ?`
	if err := r.db.QueryRow(query, userID, true).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check completed games: %w", err)
	}
	return count > 0, nil
}

// CreateGame creates a new game record and its word sequence in one
// transaction. The active/completed checks are repeated inside the
// transaction so two racing start calls cannot both insert a record.
func (r *GameRepository) CreateGame(userID int64, wordList []string) (*models.GameRecord, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existing int
	query := `SELECT COUNT(*) FROM game_records WHERE user_id = ?`
	if err := tx.QueryRow(query, userID).Scan(&existing); err != nil {
		return nil, fmt.Errorf("failed to check existing games: %w", err)
	}
	if existing > 0 {
		return nil, fmt.Errorf("user %d already has a game record", userID)
	}

	insertGame := `
		INSERT INTO game_records (user_id, words_guessed, total_hints, score, time_taken, completed)
		VALUES (?, 0, 0, 0, 0, ?)
	`
	gameID, err := tx.ExecReturningID(insertGame, userID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	insertWord := `INSERT INTO game_words (game_id, word, position) VALUES (?, ?, ?)`
	for position, word := range wordList {
		if _, err := tx.Exec(insertWord, gameID, word, position); err != nil {
			return nil, fmt.Errorf("failed to create game word: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit game creation: %w", err)
	}

	return &models.GameRecord{
		ID:        gameID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}, nil
}

// GetGameWords retrieves a game's word sequence ordered by position
func (r *GameRepository) GetGameWords(gameID int64) ([]models.GameWord, error) {
	query := `
		SELECT id, game_id, word, position
		FROM game_words
		WHERE game_id = ?
		ORDER BY position ASC
	`
	rows, err := r.db.Query(query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query game words: %w", err)
	}
	defer rows.Close()

	var gameWords []models.GameWord
	for rows.Next() {
		var gw models.GameWord
		if err := rows.Scan(&gw.ID, &gw.GameID, &gw.Word, &gw.Position); err != nil {
			return nil, fmt.Errorf("failed to scan game word: %w", err)
		}
		gameWords = append(gameWords, gw)
	}

	return gameWords, rows.Err()
}

// IncrementHints bumps a game's hint counter. No-op on completed games.
func (r *GameRepository) IncrementHints(gameID int64) error {
	query := `
		UPDATE game_records
		SET total_hints = total_hints + 1
		WHERE id = ? AND completed = ?
	`
	if _, err := r.db.Exec(query, gameID, false); err != nil {
		return fmt.Errorf("failed to increment hints: %w", err)
	}
	return nil
}

// AdvanceWord moves the progress pointer forward by one and recomputes the
// score, guarded on the expected current value of words_guessed. Returns
// false without error when the guard did not match, meaning another request
// advanced the game first.
func (r *GameRepository) AdvanceWord(gameID int64, expectedGuessed, pointsPerWord int) (bool, error) {
	query := `
		UPDATE game_records
		SET score = (words_guessed + 1) * ?,
		    words_guessed = words_guessed + 1
		WHERE id = ? AND completed = ? AND words_guessed = ?
	`
	result, err := r.db.Exec(query, pointsPerWord, gameID, false, expectedGuessed)
	if err != nil {
		return false, fmt.Errorf("failed to advance word: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read advance result: %w", err)
	}
	return rows == 1, nil
}

// CompleteGame seals a game record, fixing time_taken at the transition.
// Returns false when the record was already completed. completed never
// transitions back to false.
func (r *GameRepository) CompleteGame(gameID int64, timeTaken float64) (bool, error) {
	query := `
		UPDATE game_records
		SET completed = ?, time_taken = ?
		WHERE id = ? AND completed = ?
	`
	result, err := r.db.Exec(query, true, timeTaken, gameID, false)
	if err != nil {
		return false, fmt.Errorf("failed to complete game: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read completion result: %w", err)
	}
	return rows == 1, nil
}

// CountGames returns the number of game records for a user
func (r *GameRepository) CountGames(userID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM game_records WHERE user_id = ?`
	if err := r.db.QueryRow(query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count games: %w", err)
	}
	return count, nil
}

// CountGameWords returns the number of word rows for a game
func (r *GameRepository) CountGameWords(gameID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM game_words WHERE game_id = ?`
	if err := r.db.QueryRow(query, gameID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count game words: %w", err)
	}
	return count, nil
}
