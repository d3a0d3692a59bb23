package services

import (
	"fmt"
	"testing"
	"time"

	"core/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testUser mirrors the columns of the auth module's users table that
// the ranking query reads. The auth module lives in its own Go module,
// so tests declare the table locally.
type testUser struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex"`
	Username  string `gorm:"uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (testUser) TableName() string {
	return "users"
}

// setupTestDB opens an isolated in-memory database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&testUser{},
		&models.Pool{},
		&models.PoolParticipant{},
		&models.Match{},
		&models.UserBet{},
		&models.Poll{},
		&models.PollOption{},
		&models.UserPollVote{},
		&models.Activity{},
		&models.Notification{},
		&models.RankingSnapshot{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test schema: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) testUser {
	t.Helper()

	user := testUser{
		Email:    fmt.Sprintf("%s@test.com", username),
		Username: username,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// createTestPool creates an open pool with the given creator already in
func createTestPool(t *testing.T, db *gorm.DB, creatorID uint, code string) models.Pool {
	t.Helper()

	pool := models.Pool{
		Name:             "Bolão " + code,
		CreatorID:        creatorID,
		Status:           models.PoolStatusOpen,
		InviteCode:       code,
		ScoringRules:     models.DefaultScoringRules(),
		ParticipantCount: 1,
	}
	if err := db.Create(&pool).Error; err != nil {
		t.Fatalf("Failed to create test pool: %v", err)
	}

	participant := models.PoolParticipant{
		PoolID:   pool.ID,
		UserID:   creatorID,
		JoinedAt: time.Now(),
	}
	if err := db.Create(&participant).Error; err != nil {
		t.Fatalf("Failed to add creator to test pool: %v", err)
	}

	return pool
}

func addParticipant(t *testing.T, db *gorm.DB, poolID, userID uint) {
	t.Helper()

	participant := models.PoolParticipant{
		PoolID:   poolID,
		UserID:   userID,
		JoinedAt: time.Now(),
	}
	if err := db.Create(&participant).Error; err != nil {
		t.Fatalf("Failed to add participant: %v", err)
	}
	if err := db.Model(&models.Pool{}).Where("id = ?", poolID).
		Update("participant_count", gorm.Expr("participant_count + 1")).Error; err != nil {
		t.Fatalf("Failed to bump participant count: %v", err)
	}
}

func createTestMatch(t *testing.T, db *gorm.DB, poolID uint, kickoff time.Time) models.Match {
	t.Helper()

	match := models.Match{
		PoolID:    poolID,
		HomeTeam:  "Flamengo",
		AwayTeam:  "Palmeiras",
		MatchDate: kickoff,
		Status:    models.MatchStatusScheduled,
	}
	if err := db.Create(&match).Error; err != nil {
		t.Fatalf("Failed to create test match: %v", err)
	}
	return match
}

func placeTestBet(t *testing.T, db *gorm.DB, userID, matchID uint, home, away int) models.UserBet {
	t.Helper()

	bet := models.UserBet{
		UserID:              userID,
		MatchID:             matchID,
		HomeScorePrediction: home,
		AwayScorePrediction: away,
	}
	if err := db.Create(&bet).Error; err != nil {
		t.Fatalf("Failed to create test bet: %v", err)
	}
	return bet
}

// finishMatch sets the final score and moves the match to finished
// without triggering the scoring service
func finishMatch(t *testing.T, db *gorm.DB, matchID uint, home, away int) {
	t.Helper()

	err := db.Model(&models.Match{}).Where("id = ?", matchID).Updates(map[string]interface{}{
		"status":     models.MatchStatusFinished,
		"home_score": home,
		"away_score": away,
	}).Error
	if err != nil {
		t.Fatalf("Failed to finish test match: %v", err)
	}
}

func newTestServices(db *gorm.DB) (*ActivityService, *RankingService, *ScoringService) {
	activity := NewActivityService(db)
	ranking := NewRankingService(db, activity)
	scoring := NewScoringService(db, ranking, activity)
	return activity, ranking, scoring
}
