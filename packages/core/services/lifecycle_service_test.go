package services

import (
	"testing"
	"time"

	"core/models"

	"gorm.io/gorm"
)

func assertPoolStatus(t *testing.T, db *gorm.DB, poolID uint, want string) {
	t.Helper()

	var pool models.Pool
	if err := db.First(&pool, poolID).Error; err != nil {
		t.Fatalf("Failed to load pool %d: %v", poolID, err)
	}
	if pool.Status != want {
		t.Errorf("pool %d status = %q, want %q", poolID, pool.Status, want)
	}
}

func TestActivateDuePools(t *testing.T) {
	db := setupTestDB(t)
	activity, _, scoring := newTestServices(db)
	polls := NewPollService(db, activity)
	lifecycle := NewLifecycleService(db, scoring, polls, activity)

	creator := createTestUser(t, db, "rafael")

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(24 * time.Hour)

	due := createTestPool(t, db, creator.ID, "DUEPOOLA")
	createTestMatch(t, db, due.ID, future)

	// Due but without a scheduled match, stays open
	empty := createTestPool(t, db, creator.ID, "EMPTYPOO")

	// Not due yet
	early := createTestPool(t, db, creator.ID, "EARLYPOO")
	createTestMatch(t, db, early.ID, future)

	for id, start := range map[uint]time.Time{due.ID: past, empty.ID: past, early.ID: future} {
		if err := db.Model(&models.Pool{}).Where("id = ?", id).
			Update("start_date", start).Error; err != nil {
			t.Fatalf("Failed to set start date: %v", err)
		}
	}

	n, err := lifecycle.ActivateDuePools()
	if err != nil {
		t.Fatalf("ActivateDuePools failed: %v", err)
	}
	if n != 1 {
		t.Errorf("activated %d pools, want 1", n)
	}

	assertPoolStatus(t, db, due.ID, models.PoolStatusActive)
	assertPoolStatus(t, db, empty.ID, models.PoolStatusOpen)
	assertPoolStatus(t, db, early.ID, models.PoolStatusOpen)
}

func TestFinishDuePools(t *testing.T) {
	db := setupTestDB(t)
	activity, _, scoring := newTestServices(db)
	polls := NewPollService(db, activity)
	lifecycle := NewLifecycleService(db, scoring, polls, activity)

	creator := createTestUser(t, db, "rafael")

	// End date passed
	dated := createTestPool(t, db, creator.ID, "DATEDPOO")
	past := time.Now().Add(-time.Hour)
	if err := db.Model(&models.Pool{}).Where("id = ?", dated.ID).
		Updates(map[string]interface{}{"status": models.PoolStatusActive, "end_date": past}).Error; err != nil {
		t.Fatalf("Failed to prepare pool: %v", err)
	}

	// Every match concluded
	played := createTestPool(t, db, creator.ID, "PLAYEDPO")
	m1 := createTestMatch(t, db, played.ID, past)
	m2 := createTestMatch(t, db, played.ID, past)
	finishMatch(t, db, m1.ID, 1, 0)
	if err := db.Model(&models.Match{}).Where("id = ?", m2.ID).
		Update("status", models.MatchStatusCancelled).Error; err != nil {
		t.Fatalf("Failed to cancel match: %v", err)
	}
	if err := db.Model(&models.Pool{}).Where("id = ?", played.ID).
		Update("status", models.PoolStatusActive).Error; err != nil {
		t.Fatalf("Failed to activate pool: %v", err)
	}

	// Still has a scheduled match and no end date, stays active
	running := createTestPool(t, db, creator.ID, "RUNNINGP")
	createTestMatch(t, db, running.ID, time.Now().Add(24*time.Hour))
	if err := db.Model(&models.Pool{}).Where("id = ?", running.ID).
		Update("status", models.PoolStatusActive).Error; err != nil {
		t.Fatalf("Failed to activate pool: %v", err)
	}

	n, err := lifecycle.FinishDuePools()
	if err != nil {
		t.Fatalf("FinishDuePools failed: %v", err)
	}
	if n != 2 {
		t.Errorf("finished %d pools, want 2", n)
	}

	assertPoolStatus(t, db, dated.ID, models.PoolStatusFinished)
	assertPoolStatus(t, db, played.ID, models.PoolStatusFinished)
	assertPoolStatus(t, db, running.ID, models.PoolStatusActive)
}

func TestSendBetRemindersOncePerMatch(t *testing.T) {
	db := setupTestDB(t)
	activity, _, scoring := newTestServices(db)
	polls := NewPollService(db, activity)
	lifecycle := NewLifecycleService(db, scoring, polls, activity)

	creator := createTestUser(t, db, "rafael")
	slacker := createTestUser(t, db, "juliana")
	pool := createTestPool(t, db, creator.ID, "REMINDPO")
	addParticipant(t, db, pool.ID, slacker.ID)

	soon := createTestMatch(t, db, pool.ID, time.Now().Add(6*time.Hour))
	createTestMatch(t, db, pool.ID, time.Now().Add(72*time.Hour))

	// The creator already bet, only the other member needs a nudge
	placeTestBet(t, db, creator.ID, soon.ID, 1, 0)

	n, err := lifecycle.SendBetReminders()
	if err != nil {
		t.Fatalf("SendBetReminders failed: %v", err)
	}
	if n != 1 {
		t.Errorf("sent %d reminders, want 1", n)
	}

	var reminders []models.Notification
	if err := db.Where("type = ?", models.NotificationBetReminder).Find(&reminders).Error; err != nil {
		t.Fatalf("Failed to list notifications: %v", err)
	}
	if len(reminders) != 1 || reminders[0].UserID != slacker.ID {
		t.Fatalf("reminders = %+v, want one for user %d", reminders, slacker.ID)
	}

	// A second pass must not repeat the reminder
	if n, err := lifecycle.SendBetReminders(); err != nil || n != 0 {
		t.Errorf("second pass sent %d reminders (err %v), want 0", n, err)
	}
}
