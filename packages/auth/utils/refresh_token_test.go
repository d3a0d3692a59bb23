package utils

import (
	"testing"
	"time"

	"auth/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTokenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.RefreshToken{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()

	user := models.User{
		Email:    username + "@test.com",
		Username: username,
		Slug:     username,
		Password: "irrelevant",
		Enabled:  true,
		Roles:    models.GetDefaultRoles(),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

func TestGenerateTokenPairRevokesPreviousTokens(t *testing.T) {
	db := setupTokenDB(t)
	user := seedUser(t, db, "rafael")

	first, err := GenerateTokenPair(db, user)
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}
	second, err := GenerateTokenPair(db, user)
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}
	if first.RefreshToken == second.RefreshToken {
		t.Error("expected a fresh refresh token on every pair")
	}

	var count int64
	if err := db.Model(&models.RefreshToken{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count tokens: %v", err)
	}
	if count != 1 {
		t.Errorf("found %d refresh tokens, want 1 (old ones revoked)", count)
	}
}

func TestRefreshAccessTokenRotates(t *testing.T) {
	db := setupTokenDB(t)
	user := seedUser(t, db, "rafael")

	pair, err := GenerateTokenPair(db, user)
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}

	rotated, err := RefreshAccessToken(db, pair.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshAccessToken failed: %v", err)
	}
	if rotated.RefreshToken == pair.RefreshToken {
		t.Error("refresh token was not rotated")
	}

	// The spent token is gone
	if _, err := RefreshAccessToken(db, pair.RefreshToken); err == nil {
		t.Error("spent refresh token still works")
	}
	// The rotated one works
	if _, err := RefreshAccessToken(db, rotated.RefreshToken); err != nil {
		t.Errorf("rotated refresh token rejected: %v", err)
	}
}

func TestRefreshAccessTokenRejectsExpired(t *testing.T) {
	db := setupTokenDB(t)
	user := seedUser(t, db, "rafael")

	expired := models.RefreshToken{
		UserID:    user.ID,
		Token:     "expired-token",
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	if err := db.Create(&expired).Error; err != nil {
		t.Fatalf("Failed to create token: %v", err)
	}

	if _, err := RefreshAccessToken(db, "expired-token"); err == nil {
		t.Fatal("expired refresh token accepted")
	}

	var count int64
	db.Model(&models.RefreshToken{}).Where("token = ?", "expired-token").Count(&count)
	if count != 0 {
		t.Error("expired token was not deleted on use")
	}
}

func TestCleanExpiredTokens(t *testing.T) {
	db := setupTokenDB(t)
	user := seedUser(t, db, "rafael")

	tokens := []models.RefreshToken{
		{UserID: user.ID, Token: "stale", ExpiresAt: time.Now().Add(-time.Hour)},
		{UserID: user.ID, Token: "fresh", ExpiresAt: time.Now().Add(time.Hour)},
	}
	for i := range tokens {
		if err := db.Create(&tokens[i]).Error; err != nil {
			t.Fatalf("Failed to create token: %v", err)
		}
	}

	if err := CleanExpiredTokens(db); err != nil {
		t.Fatalf("CleanExpiredTokens failed: %v", err)
	}

	var remaining []models.RefreshToken
	if err := db.Find(&remaining).Error; err != nil {
		t.Fatalf("Failed to list tokens: %v", err)
	}
	if len(remaining) != 1 || remaining[0].Token != "fresh" {
		t.Errorf("remaining tokens = %+v, want only the fresh one", remaining)
	}
}
