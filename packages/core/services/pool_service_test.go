package services

import (
	"errors"
	"testing"
	"time"

	"core/models"
)

func TestCreatePool(t *testing.T) {
	db := setupTestDB(t)
	activity := NewActivityService(db)
	pools := NewPoolService(db, activity)

	creator := createTestUser(t, db, "rafael")

	pool, err := pools.CreatePool(creator.ID, models.CreatePoolRequest{
		Name: "Brasileirão 2025",
	})
	if err != nil {
		t.Fatalf("CreatePool failed: %v", err)
	}

	if pool.Status != models.PoolStatusDraft {
		t.Errorf("new pool status = %q, want draft", pool.Status)
	}
	if len(pool.InviteCode) != 8 {
		t.Errorf("invite code %q has length %d, want 8", pool.InviteCode, len(pool.InviteCode))
	}
	if pool.ParticipantCount != 1 {
		t.Errorf("participant count = %d, want 1 (creator auto-joins)", pool.ParticipantCount)
	}
	if pool.ScoringRules.ExactScore != 3 || pool.ScoringRules.CorrectWinner != 1 || pool.ScoringRules.CorrectDraw != 1 {
		t.Errorf("scoring rules = %+v, want defaults 3/1/1", pool.ScoringRules)
	}

	var membership int64
	if err := db.Model(&models.PoolParticipant{}).
		Where("pool_id = ? AND user_id = ?", pool.ID, creator.ID).
		Count(&membership).Error; err != nil {
		t.Fatalf("Failed to count membership: %v", err)
	}
	if membership != 1 {
		t.Error("creator must be a participant of their own pool")
	}
}

func TestCreatePoolRejectsInvertedDates(t *testing.T) {
	db := setupTestDB(t)
	pools := NewPoolService(db, NewActivityService(db))

	creator := createTestUser(t, db, "rafael")
	start := time.Now().AddDate(0, 1, 0)
	end := time.Now()

	_, err := pools.CreatePool(creator.ID, models.CreatePoolRequest{
		Name:      "Bolão invertido",
		StartDate: &start,
		EndDate:   &end,
	})
	if !errors.Is(err, ErrInvalidDates) {
		t.Errorf("CreatePool with end before start = %v, want ErrInvalidDates", err)
	}
}

func TestJoinPool(t *testing.T) {
	db := setupTestDB(t)
	pools := NewPoolService(db, NewActivityService(db))

	creator := createTestUser(t, db, "rafael")
	joiner := createTestUser(t, db, "juliana")

	createTestPool(t, db, creator.ID, "JOINCODE")

	joined, err := pools.JoinPool(joiner.ID, "JOINCODE")
	if err != nil {
		t.Fatalf("JoinPool failed: %v", err)
	}
	if joined.ParticipantCount != 2 {
		t.Errorf("participant count = %d, want 2", joined.ParticipantCount)
	}

	// Same user cannot join twice
	if _, err := pools.JoinPool(joiner.ID, "JOINCODE"); !errors.Is(err, ErrAlreadyMember) {
		t.Errorf("second join = %v, want ErrAlreadyMember", err)
	}

	// Unknown code
	if _, err := pools.JoinPool(joiner.ID, "NOPENOPE"); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("unknown code = %v, want ErrInvalidCode", err)
	}
}

func TestJoinPoolRejectsNonJoinableStatus(t *testing.T) {
	db := setupTestDB(t)
	pools := NewPoolService(db, NewActivityService(db))

	creator := createTestUser(t, db, "rafael")
	joiner := createTestUser(t, db, "juliana")

	pool := createTestPool(t, db, creator.ID, "DONEPOOL")
	if err := db.Model(&pool).Update("status", models.PoolStatusFinished).Error; err != nil {
		t.Fatalf("Failed to finish pool: %v", err)
	}

	if _, err := pools.JoinPool(joiner.ID, "DONEPOOL"); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("join on finished pool = %v, want ErrPoolClosed", err)
	}
}

func TestJoinPoolEnforcesCapacity(t *testing.T) {
	db := setupTestDB(t)
	pools := NewPoolService(db, NewActivityService(db))

	creator := createTestUser(t, db, "rafael")
	pool := createTestPool(t, db, creator.ID, "TINYPOOL")

	max := 3
	if err := db.Model(&pool).Update("max_participants", max).Error; err != nil {
		t.Fatalf("Failed to set capacity: %v", err)
	}

	// Two seats left after the creator
	for _, name := range []string{"ana", "bia"} {
		user := createTestUser(t, db, name)
		if _, err := pools.JoinPool(user.ID, "TINYPOOL"); err != nil {
			t.Fatalf("JoinPool for %s failed: %v", name, err)
		}
	}

	late := createTestUser(t, db, "caio")
	if _, err := pools.JoinPool(late.ID, "TINYPOOL"); !errors.Is(err, ErrPoolFull) {
		t.Errorf("join on full pool = %v, want ErrPoolFull", err)
	}

	// Count never overshoots
	var reloaded models.Pool
	if err := db.First(&reloaded, pool.ID).Error; err != nil {
		t.Fatalf("Failed to reload pool: %v", err)
	}
	if reloaded.ParticipantCount != max {
		t.Errorf("participant count = %d, want %d", reloaded.ParticipantCount, max)
	}
}

func TestPoolLifecycleIsForwardOnly(t *testing.T) {
	db := setupTestDB(t)
	pools := NewPoolService(db, NewActivityService(db))

	creator := createTestUser(t, db, "rafael")
	outsider := createTestUser(t, db, "juliana")

	pool, err := pools.CreatePool(creator.ID, models.CreatePoolRequest{Name: "Ciclo de vida"})
	if err != nil {
		t.Fatalf("CreatePool failed: %v", err)
	}

	// Draft cannot skip straight to active or finished
	if _, err := pools.ActivatePool(creator.ID, pool.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("draft -> active = %v, want ErrInvalidTransition", err)
	}
	if _, err := pools.FinishPool(creator.ID, pool.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("draft -> finished = %v, want ErrInvalidTransition", err)
	}

	// Only the creator drives the lifecycle
	if _, err := pools.PublishPool(outsider.ID, pool.ID); !errors.Is(err, ErrNotCreator) {
		t.Errorf("publish by outsider = %v, want ErrNotCreator", err)
	}

	if _, err := pools.PublishPool(creator.ID, pool.ID); err != nil {
		t.Fatalf("PublishPool failed: %v", err)
	}

	// Activation requires a scheduled match
	if _, err := pools.ActivatePool(creator.ID, pool.ID); !errors.Is(err, ErrNoMatchScheduled) {
		t.Errorf("activate without matches = %v, want ErrNoMatchScheduled", err)
	}

	createTestMatch(t, db, pool.ID, time.Now().Add(24*time.Hour))

	if _, err := pools.ActivatePool(creator.ID, pool.ID); err != nil {
		t.Fatalf("ActivatePool failed: %v", err)
	}
	if _, err := pools.FinishPool(creator.ID, pool.ID); err != nil {
		t.Fatalf("FinishPool failed: %v", err)
	}

	// Finished is terminal
	if _, err := pools.PublishPool(creator.ID, pool.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("finished -> open = %v, want ErrInvalidTransition", err)
	}
}

func TestDeletePoolOnlyInDraft(t *testing.T) {
	db := setupTestDB(t)
	pools := NewPoolService(db, NewActivityService(db))

	creator := createTestUser(t, db, "rafael")
	outsider := createTestUser(t, db, "juliana")

	pool, err := pools.CreatePool(creator.ID, models.CreatePoolRequest{Name: "Descartável"})
	if err != nil {
		t.Fatalf("CreatePool failed: %v", err)
	}

	if err := pools.DeletePool(outsider.ID, pool.ID); !errors.Is(err, ErrNotCreator) {
		t.Errorf("delete by outsider = %v, want ErrNotCreator", err)
	}

	if err := pools.DeletePool(creator.ID, pool.ID); err != nil {
		t.Fatalf("DeletePool failed: %v", err)
	}

	if _, err := pools.GetPool(pool.ID); !errors.Is(err, ErrPoolNotFound) {
		t.Errorf("GetPool after delete = %v, want ErrPoolNotFound", err)
	}

	// A published pool can no longer be deleted
	published, err := pools.CreatePool(creator.ID, models.CreatePoolRequest{Name: "Já publicado"})
	if err != nil {
		t.Fatalf("CreatePool failed: %v", err)
	}
	if _, err := pools.PublishPool(creator.ID, published.ID); err != nil {
		t.Fatalf("PublishPool failed: %v", err)
	}
	if err := pools.DeletePool(creator.ID, published.ID); !errors.Is(err, ErrPoolNotDraft) {
		t.Errorf("delete of published pool = %v, want ErrPoolNotDraft", err)
	}
}

func TestLeavePool(t *testing.T) {
	db := setupTestDB(t)
	pools := NewPoolService(db, NewActivityService(db))

	creator := createTestUser(t, db, "rafael")
	member := createTestUser(t, db, "juliana")

	pool := createTestPool(t, db, creator.ID, "LEAVABLE")
	if _, err := pools.JoinPool(member.ID, "LEAVABLE"); err != nil {
		t.Fatalf("JoinPool failed: %v", err)
	}

	if err := pools.LeavePool(creator.ID, pool.ID); !errors.Is(err, ErrCreatorCantLeave) {
		t.Errorf("creator leaving = %v, want ErrCreatorCantLeave", err)
	}

	if err := pools.LeavePool(member.ID, pool.ID); err != nil {
		t.Fatalf("LeavePool failed: %v", err)
	}
	if err := pools.LeavePool(member.ID, pool.ID); !errors.Is(err, ErrNotMember) {
		t.Errorf("second leave = %v, want ErrNotMember", err)
	}

	var reloaded models.Pool
	if err := db.First(&reloaded, pool.ID).Error; err != nil {
		t.Fatalf("Failed to reload pool: %v", err)
	}
	if reloaded.ParticipantCount != 1 {
		t.Errorf("participant count after leave = %d, want 1", reloaded.ParticipantCount)
	}
}
