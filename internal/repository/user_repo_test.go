package repository

import (
	"testing"
	"time"
)

func TestCreateAndGetUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	created, err := repo.CreateUser("alice", "alice@example.com", "hashed-secret")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if created.ID == 0 {
		t.Error("User ID not assigned")
	}

	byName, err := repo.GetUserByUsername("alice")
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if byName == nil || byName.ID != created.ID {
		t.Errorf("GetUserByUsername = %+v, want ID %d", byName, created.ID)
	}

	byEmail, err := repo.GetUserByEmail("alice@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if byEmail == nil || byEmail.Username != "alice" {
		t.Errorf("GetUserByEmail = %+v, want alice", byEmail)
	}

	missing, err := repo.GetUserByUsername("nobody")
	if err != nil {
		t.Fatalf("GetUserByUsername for missing user failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Missing user lookup = %+v, want nil", missing)
	}
}

func TestLinkOAuthProvider(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user, err := repo.CreateUser("bob", "bob@example.com", "hashed-secret")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if err := repo.LinkOAuthProvider(user.ID, "google", "subject-abc"); err != nil {
		t.Fatalf("LinkOAuthProvider failed: %v", err)
	}

	linked, err := repo.GetUserByOAuth("google", "subject-abc")
	if err != nil {
		t.Fatalf("GetUserByOAuth failed: %v", err)
	}
	if linked == nil || linked.ID != user.ID {
		t.Errorf("GetUserByOAuth = %+v, want ID %d", linked, user.ID)
	}

	unknown, err := repo.GetUserByOAuth("google", "other-subject")
	if err != nil {
		t.Fatalf("GetUserByOAuth for unknown subject failed: %v", err)
	}
	if unknown != nil {
		t.Errorf("Unknown OAuth lookup = %+v, want nil", unknown)
	}
}

func TestSessionLifecycle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	userID := createTestUser(t, db, "sessioned")

	session, err := repo.CreateSession("sess-1", userID, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if session.UserID != userID {
		t.Errorf("Session user = %d, want %d", session.UserID, userID)
	}

	stored, err := repo.GetSession("sess-1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if stored == nil || stored.UserID != userID {
		t.Errorf("GetSession = %+v, want user %d", stored, userID)
	}

	if err := repo.DeleteSession("sess-1"); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	gone, err := repo.GetSession("sess-1")
	if err != nil {
		t.Fatalf("GetSession after delete failed: %v", err)
	}
	if gone != nil {
		t.Errorf("Session survived delete: %+v", gone)
	}
}

func TestDeleteExpiredSessions(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	userID := createTestUser(t, db, "expiring")

	if _, err := repo.CreateSession("live", userID, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if _, err := repo.CreateSession("stale", userID, time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if err := repo.DeleteExpiredSessions(); err != nil {
		t.Fatalf("DeleteExpiredSessions failed: %v", err)
	}

	live, err := repo.GetSession("live")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if live == nil {
		t.Error("Live session was deleted")
	}

	stale, err := repo.GetSession("stale")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if stale != nil {
		t.Error("Stale session was not deleted")
	}
}

func TestPasswordResetTokens(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	userID := createTestUser(t, db, "forgetful")

	if err := repo.CreatePasswordResetToken("tok-1", userID, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("CreatePasswordResetToken failed: %v", err)
	}

	token, err := repo.GetPasswordResetToken("tok-1")
	if err != nil {
		t.Fatalf("GetPasswordResetToken failed: %v", err)
	}
	if token == nil || token.UserID != userID || token.Used {
		t.Errorf("GetPasswordResetToken = %+v", token)
	}

	if err := repo.MarkPasswordResetTokenAsUsed("tok-1"); err != nil {
		t.Fatalf("MarkPasswordResetTokenAsUsed failed: %v", err)
	}
	used, err := repo.GetPasswordResetToken("tok-1")
	if err != nil {
		t.Fatalf("GetPasswordResetToken failed: %v", err)
	}
	if used == nil || !used.Used {
		t.Errorf("Token not marked used: %+v", used)
	}

	if err := repo.DeleteUserPasswordResetTokens(userID); err != nil {
		t.Fatalf("DeleteUserPasswordResetTokens failed: %v", err)
	}
	gone, err := repo.GetPasswordResetToken("tok-1")
	if err != nil {
		t.Fatalf("GetPasswordResetToken failed: %v", err)
	}
	if gone != nil {
		t.Errorf("Token survived delete: %+v", gone)
	}
}
