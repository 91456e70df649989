package security

import "testing"

func TestCSRFTokenRoundTrip(t *testing.T) {
	gen := NewCSRFGenerator("test-secret")

	token, err := gen.GenerateToken("session-abc")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if !gen.ValidateToken("session-abc", token) {
		t.Error("Valid token rejected")
	}
	if gen.ValidateToken("session-xyz", token) {
		t.Error("Token accepted for a different session")
	}
	if gen.ValidateToken("session-abc", token+"tampered") {
		t.Error("Tampered token accepted")
	}
	if gen.ValidateToken("session-abc", "") {
		t.Error("Empty token accepted")
	}
}

func TestCSRFTokenRequiresSession(t *testing.T) {
	gen := NewCSRFGenerator("test-secret")

	if _, err := gen.GenerateToken(""); err == nil {
		t.Error("GenerateToken with empty session ID succeeded")
	}
	if gen.ValidateToken("", "anything") {
		t.Error("Token accepted without a session ID")
	}
}

func TestCSRFTokenSecretBound(t *testing.T) {
	first := NewCSRFGenerator("secret-one")
	second := NewCSRFGenerator("secret-two")

	token, err := first.GenerateToken("session-abc")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if second.ValidateToken("session-abc", token) {
		t.Error("Token accepted under a different secret")
	}
}
