package services

import (
	"errors"
	"testing"
	"time"

	"core/models"
)

func intPtr(v int) *int { return &v }

func TestPlaceBet(t *testing.T) {
	db := setupTestDB(t)
	bets := NewBetService(db, NewActivityService(db), DefaultBetCutoff)

	creator := createTestUser(t, db, "rafael")
	bettor := createTestUser(t, db, "juliana")

	pool := createTestPool(t, db, creator.ID, "TESTPOOL")
	addParticipant(t, db, pool.ID, bettor.ID)

	match := createTestMatch(t, db, pool.ID, time.Now().Add(24*time.Hour))

	bet, err := bets.PlaceBet(bettor.ID, models.PlaceBetRequest{
		MatchID:             match.ID,
		HomeScorePrediction: intPtr(2),
		AwayScorePrediction: intPtr(1),
	})
	if err != nil {
		t.Fatalf("PlaceBet failed: %v", err)
	}
	if bet.HomeScorePrediction != 2 || bet.AwayScorePrediction != 1 {
		t.Errorf("bet = %d x %d, want 2 x 1", bet.HomeScorePrediction, bet.AwayScorePrediction)
	}
}

func TestPlaceBetOverwritesPrevious(t *testing.T) {
	db := setupTestDB(t)
	bets := NewBetService(db, NewActivityService(db), DefaultBetCutoff)

	creator := createTestUser(t, db, "rafael")
	pool := createTestPool(t, db, creator.ID, "TESTPOOL")
	match := createTestMatch(t, db, pool.ID, time.Now().Add(24*time.Hour))

	if _, err := bets.PlaceBet(creator.ID, models.PlaceBetRequest{
		MatchID:             match.ID,
		HomeScorePrediction: intPtr(1),
		AwayScorePrediction: intPtr(0),
	}); err != nil {
		t.Fatalf("first PlaceBet failed: %v", err)
	}

	if _, err := bets.PlaceBet(creator.ID, models.PlaceBetRequest{
		MatchID:             match.ID,
		HomeScorePrediction: intPtr(3),
		AwayScorePrediction: intPtr(2),
	}); err != nil {
		t.Fatalf("second PlaceBet failed: %v", err)
	}

	var stored []models.UserBet
	if err := db.Where("user_id = ? AND match_id = ?", creator.ID, match.ID).Find(&stored).Error; err != nil {
		t.Fatalf("Failed to load bets: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("found %d bets, want exactly 1 (no history)", len(stored))
	}
	if stored[0].HomeScorePrediction != 3 || stored[0].AwayScorePrediction != 2 {
		t.Errorf("stored bet = %d x %d, want the replacement 3 x 2",
			stored[0].HomeScorePrediction, stored[0].AwayScorePrediction)
	}

	// Only the initial bet shows up in the activity feed
	var activities int64
	if err := db.Model(&models.Activity{}).
		Where("user_id = ? AND type = ?", creator.ID, models.ActivityBetPlaced).
		Count(&activities).Error; err != nil {
		t.Fatalf("Failed to count activities: %v", err)
	}
	if activities != 1 {
		t.Errorf("bet activities = %d, want 1", activities)
	}
}

func TestPlaceBetRespectsDeadline(t *testing.T) {
	db := setupTestDB(t)
	bets := NewBetService(db, NewActivityService(db), 15*time.Minute)

	creator := createTestUser(t, db, "rafael")
	pool := createTestPool(t, db, creator.ID, "TESTPOOL")

	// Kickoff in 10 minutes: inside the 15 minute cutoff window
	closing := createTestMatch(t, db, pool.ID, time.Now().Add(10*time.Minute))

	_, err := bets.PlaceBet(creator.ID, models.PlaceBetRequest{
		MatchID:             closing.ID,
		HomeScorePrediction: intPtr(1),
		AwayScorePrediction: intPtr(1),
	})
	if !errors.Is(err, ErrDeadlinePassed) {
		t.Errorf("bet inside cutoff window = %v, want ErrDeadlinePassed", err)
	}

	// Kickoff in 20 minutes: still open
	open := createTestMatch(t, db, pool.ID, time.Now().Add(20*time.Minute))
	if _, err := bets.PlaceBet(creator.ID, models.PlaceBetRequest{
		MatchID:             open.ID,
		HomeScorePrediction: intPtr(1),
		AwayScorePrediction: intPtr(1),
	}); err != nil {
		t.Errorf("bet before cutoff = %v, want success", err)
	}
}

func TestPlaceBetRejectsNonMembersAndNonScheduled(t *testing.T) {
	db := setupTestDB(t)
	bets := NewBetService(db, NewActivityService(db), DefaultBetCutoff)

	creator := createTestUser(t, db, "rafael")
	outsider := createTestUser(t, db, "juliana")

	pool := createTestPool(t, db, creator.ID, "TESTPOOL")
	match := createTestMatch(t, db, pool.ID, time.Now().Add(24*time.Hour))

	req := models.PlaceBetRequest{
		MatchID:             match.ID,
		HomeScorePrediction: intPtr(1),
		AwayScorePrediction: intPtr(0),
	}

	if _, err := bets.PlaceBet(outsider.ID, req); !errors.Is(err, ErrNotMember) {
		t.Errorf("bet by non-member = %v, want ErrNotMember", err)
	}

	if err := db.Model(&models.Match{}).Where("id = ?", match.ID).
		Update("status", models.MatchStatusLive).Error; err != nil {
		t.Fatalf("Failed to set match live: %v", err)
	}
	if _, err := bets.PlaceBet(creator.ID, req); !errors.Is(err, ErrMatchNotScheduled) {
		t.Errorf("bet on live match = %v, want ErrMatchNotScheduled", err)
	}

	req.MatchID = 9999
	if _, err := bets.PlaceBet(creator.ID, req); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("bet on missing match = %v, want ErrMatchNotFound", err)
	}
}

func TestGetMatchBetsHiddenBeforeDeadline(t *testing.T) {
	db := setupTestDB(t)
	bets := NewBetService(db, NewActivityService(db), 15*time.Minute)

	creator := createTestUser(t, db, "rafael")
	pool := createTestPool(t, db, creator.ID, "TESTPOOL")

	match := createTestMatch(t, db, pool.ID, time.Now().Add(24*time.Hour))
	placeTestBet(t, db, creator.ID, match.ID, 1, 0)

	if _, err := bets.GetMatchBets(match.ID); !errors.Is(err, ErrBetsHidden) {
		t.Errorf("bets before deadline = %v, want ErrBetsHidden", err)
	}

	// Past the deadline the bets open up
	if err := db.Model(&models.Match{}).Where("id = ?", match.ID).
		Update("match_date", time.Now().Add(5*time.Minute)).Error; err != nil {
		t.Fatalf("Failed to move kickoff: %v", err)
	}

	list, err := bets.GetMatchBets(match.ID)
	if err != nil {
		t.Fatalf("GetMatchBets after deadline failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("got %d bets, want 1", len(list))
	}
}

func TestGetUserBetsFiltersByPool(t *testing.T) {
	db := setupTestDB(t)
	bets := NewBetService(db, NewActivityService(db), DefaultBetCutoff)

	creator := createTestUser(t, db, "rafael")
	first := createTestPool(t, db, creator.ID, "POOLONE1")
	second := createTestPool(t, db, creator.ID, "POOLTWO2")

	matchOne := createTestMatch(t, db, first.ID, time.Now().Add(24*time.Hour))
	matchTwo := createTestMatch(t, db, second.ID, time.Now().Add(24*time.Hour))

	placeTestBet(t, db, creator.ID, matchOne.ID, 1, 0)
	placeTestBet(t, db, creator.ID, matchTwo.ID, 0, 1)

	all, err := bets.GetUserBets(creator.ID, nil)
	if err != nil {
		t.Fatalf("GetUserBets failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("got %d bets overall, want 2", len(all))
	}

	scoped, err := bets.GetUserBets(creator.ID, &first.ID)
	if err != nil {
		t.Fatalf("GetUserBets with pool filter failed: %v", err)
	}
	if len(scoped) != 1 || scoped[0].MatchID != matchOne.ID {
		t.Errorf("pool filter returned %d bets, want only the bet on match %d", len(scoped), matchOne.ID)
	}
}
