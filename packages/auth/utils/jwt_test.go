package utils

import (
	"testing"

	"auth/models"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("senha-secreta")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "senha-secreta" {
		t.Fatal("hash must not equal the plain password")
	}

	if !CheckPassword("senha-secreta", hash) {
		t.Error("correct password did not verify")
	}
	if CheckPassword("senha-errada", hash) {
		t.Error("wrong password verified")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	user := models.User{
		ID:       42,
		Email:    "rafael@test.com",
		Username: "rafael",
	}

	token, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("claims.UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "rafael@test.com" {
		t.Errorf("claims.Email = %q, want rafael@test.com", claims.Email)
	}
	if claims.Subject != "rafael" {
		t.Errorf("claims.Subject = %q, want rafael", claims.Subject)
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	for _, token := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		if _, err := ParseToken(token); err == nil {
			t.Errorf("ParseToken(%q) succeeded, want error", token)
		}
	}
}
