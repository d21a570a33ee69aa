package utils

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 1)

	token, err := tm.GenerateToken(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("user id = %d, want 42", claims.UserID)
	}
	if claims.ExpiresAt <= claims.IssuedAt {
		t.Fatal("token expires before it was issued")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 1)
	if _, err := tm.ParseToken("not.a.token"); err == nil {
		t.Fatal("garbage token accepted")
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-one", 1).GenerateToken(7)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := NewTokenManager("secret-two", 1).ParseToken(token); err == nil {
		t.Fatal("token signed with another secret accepted")
	}
}

func TestZeroTTLFallsBack(t *testing.T) {
	tm := NewTokenManager("s", 0)
	token, err := tm.GenerateToken(1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := tm.ParseToken(token); err != nil {
		t.Fatalf("parse: %v", err)
	}
}
