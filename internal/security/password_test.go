package security

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatal("Hash equals the plaintext")
	}

	if !CheckPassword("correct horse battery", hash) {
		t.Error("Correct password rejected")
	}
	if CheckPassword("wrong password", hash) {
		t.Error("Wrong password accepted")
	}
	if CheckPassword("correct horse battery", "not-a-bcrypt-hash") {
		t.Error("Garbage hash accepted")
	}
}

func TestHashPasswordSalts(t *testing.T) {
	first, err := HashPassword("same input")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	second, err := HashPassword("same input")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if first == second {
		t.Error("Two hashes of the same password are identical")
	}
}
