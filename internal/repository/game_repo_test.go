package repository

import (
	"path/filepath"
	"testing"

	"wordquest/internal/database"
)

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *database.DB, username string) int64 {
	t.Helper()

	userRepo := NewUserRepository(db)
	user, err := userRepo.CreateUser(username, username+"@example.com", "not-a-real-hash")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user.ID
}

func TestCreateGame(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGameRepository(db)
	userID := createTestUser(t, db, "creator")

	wordList := []string{"python", "docker", "linux"}
	game, err := repo.CreateGame(userID, wordList)
	if err != nil {
		t.Fatalf("CreateGame failed: %v", err)
	}
	if game.ID == 0 {
		t.Error("Game ID not assigned")
	}

	gameWords, err := repo.GetGameWords(game.ID)
	if err != nil {
		t.Fatalf("GetGameWords failed: %v", err)
	}
	if len(gameWords) != len(wordList) {
		t.Fatalf("Got %d word rows, want %d", len(gameWords), len(wordList))
	}
	for i, gw := range gameWords {
		if gw.Position != i {
			t.Errorf("Word %d has position %d", i, gw.Position)
		}
		if gw.Word != wordList[i] {
			t.Errorf("Position %d holds %q, want %q", i, gw.Word, wordList[i])
		}
	}
}

func TestCreateGameBlockedByExistingRecord(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGameRepository(db)
	userID := createTestUser(t, db, "repeat")

	if _, err := repo.CreateGame(userID, []string{"python"}); err != nil {
		t.Fatalf("First CreateGame failed: %v", err)
	}

	if _, err := repo.CreateGame(userID, []string{"docker"}); err == nil {
		t.Error("Second CreateGame succeeded, want error")
	}

	count, err := repo.CountGames(userID)
	if err != nil {
		t.Fatalf("CountGames failed: %v", err)
	}
	if count != 1 {
		t.Errorf("User has %d games, want 1", count)
	}
}

func TestGetActiveGame(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGameRepository(db)
	userID := createTestUser(t, db, "active")

	active, err := repo.GetActiveGame(userID)
	if err != nil {
		t.Fatalf("GetActiveGame failed: %v", err)
	}
	if active != nil {
		t.Error("Found active game before any created")
	}

	game, err := repo.CreateGame(userID, []string{"python", "docker"})
	if err != nil {
		t.Fatalf("CreateGame failed: %v", err)
	}

	active, err = repo.GetActiveGame(userID)
	if err != nil {
		t.Fatalf("GetActiveGame failed: %v", err)
	}
	if active == nil || active.ID != game.ID {
		t.Fatalf("GetActiveGame = %+v, want game %d", active, game.ID)
	}

	if _, err := repo.CompleteGame(game.ID, 12.5); err != nil {
		t.Fatalf("CompleteGame failed: %v", err)
	}

	active, err = repo.GetActiveGame(userID)
	if err != nil {
		t.Fatalf("GetActiveGame failed: %v", err)
	}
	if active != nil {
		t.Error("Completed game still reported active")
	}
}

func TestAdvanceWordGuard(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGameRepository(db)
	userID := createTestUser(t, db, "advancer")

	game, err := repo.CreateGame(userID, []string{"python", "docker", "linux"})
	if err != nil {
		t.Fatalf("CreateGame failed: %v", err)
	}

	advanced, err := repo.AdvanceWord(game.ID, 0, 10)
	if err != nil {
		t.Fatalf("AdvanceWord failed: %v", err)
	}
	if !advanced {
		t.Fatal("First advance rejected")
	}

	// Replaying the same expected index must not match
	advanced, err = repo.AdvanceWord(game.ID, 0, 10)
	if err != nil {
		t.Fatalf("AdvanceWord failed: %v", err)
	}
	if advanced {
		t.Error("Stale advance matched the guard")
	}

	record, err := repo.GetGameByID(game.ID)
	if err != nil {
		t.Fatalf("GetGameByID failed: %v", err)
	}
	if record.WordsGuessed != 1 {
		t.Errorf("WordsGuessed = %d, want 1", record.WordsGuessed)
	}
	if record.Score != 10 {
		t.Errorf("Score = %d, want 10", record.Score)
	}
}

func TestAdvanceWordScoreTracksProgress(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGameRepository(db)
	userID := createTestUser(t, db, "scorer")

	game, err := repo.CreateGame(userID, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("CreateGame failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		advanced, err := repo.AdvanceWord(game.ID, i, 10)
		if err != nil || !advanced {
			t.Fatalf("Advance %d failed: advanced=%v err=%v", i, advanced, err)
		}
	}

	record, err := repo.GetGameByID(game.ID)
	if err != nil {
		t.Fatalf("GetGameByID failed: %v", err)
	}
	if record.Score != 30 {
		t.Errorf("Score = %d, want 30", record.Score)
	}
}

func TestAdvanceWordRejectedOnCompleted(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGameRepository(db)
	userID := createTestUser(t, db, "sealed")

	game, err := repo.CreateGame(userID, []string{"python", "docker"})
	if err != nil {
		t.Fatalf("CreateGame failed: %v", err)
	}
	if _, err := repo.CompleteGame(game.ID, 5); err != nil {
		t.Fatalf("CompleteGame failed: %v", err)
	}

	advanced, err := repo.AdvanceWord(game.ID, 0, 10)
	if err != nil {
		t.Fatalf("AdvanceWord failed: %v", err)
	}
	if advanced {
		t.Error("Advance succeeded on a sealed record")
	}
}

func TestCompleteGameOnce(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGameRepository(db)
	userID := createTestUser(t, db, "finisher")

	game, err := repo.CreateGame(userID, []string{"python"})
	if err != nil {
		t.Fatalf("CreateGame failed: %v", err)
	}

	sealed, err := repo.CompleteGame(game.ID, 42.5)
	if err != nil {
		t.Fatalf("CompleteGame failed: %v", err)
	}
	if !sealed {
		t.Fatal("First completion rejected")
	}

	sealed, err = repo.CompleteGame(game.ID, 99)
	if err != nil {
		t.Fatalf("CompleteGame failed: %v", err)
	}
	if sealed {
		t.Error("Second completion matched")
	}

	record, err := repo.GetGameByID(game.ID)
	if err != nil {
		t.Fatalf("GetGameByID failed: %v", err)
	}
	if !record.Completed {
		t.Error("Record not completed")
	}
	if record.TimeTaken != 42.5 {
		t.Errorf("TimeTaken = %f, want 42.5 from the first completion", record.TimeTaken)
	}
}

func TestIncrementHintsSkipsCompleted(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGameRepository(db)
	userID := createTestUser(t, db, "hinter")

	game, err := repo.CreateGame(userID, []string{"python"})
	if err != nil {
		t.Fatalf("CreateGame failed: %v", err)
	}

	if err := repo.IncrementHints(game.ID); err != nil {
		t.Fatalf("IncrementHints failed: %v", err)
	}
	if _, err := repo.CompleteGame(game.ID, 1); err != nil {
		t.Fatalf("CompleteGame failed: %v", err)
	}
	if err := repo.IncrementHints(game.ID); err != nil {
		t.Fatalf("IncrementHints failed: %v", err)
	}

	record, err := repo.GetGameByID(game.ID)
	if err != nil {
		t.Fatalf("GetGameByID failed: %v", err)
	}
	if record.TotalHints != 1 {
		t.Errorf("TotalHints = %d, want 1", record.TotalHints)
	}
}

func TestHasCompletedGame(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGameRepository(db)
	userID := createTestUser(t, db, "onetimer")

	played, err := repo.HasCompletedGame(userID)
	if err != nil {
		t.Fatalf("HasCompletedGame failed: %v", err)
	}
	if played {
		t.Error("Fresh user reported as played")
	}

	game, err := repo.CreateGame(userID, []string{"python"})
	if err != nil {
		t.Fatalf("CreateGame failed: %v", err)
	}

	played, err = repo.HasCompletedGame(userID)
	if err != nil {
		t.Fatalf("HasCompletedGame failed: %v", err)
	}
	if played {
		t.Error("Active game counted as played")
	}

	if _, err := repo.CompleteGame(game.ID, 0); err != nil {
		t.Fatalf("CompleteGame failed: %v", err)
	}

	played, err = repo.HasCompletedGame(userID)
	if err != nil {
		t.Fatalf("HasCompletedGame failed: %v", err)
	}
	if !played {
		t.Error("Completed game not counted as played")
	}
}
