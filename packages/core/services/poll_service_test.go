package services

import (
	"errors"
	"testing"
	"time"

	"core/models"

	"gorm.io/gorm"
)

func createOpenPoll(t *testing.T, db *gorm.DB, polls *PollService, creatorID uint, options ...string) *models.Poll {
	t.Helper()

	poll, err := polls.CreatePoll(creatorID, models.CreatePollRequest{
		Title:   "Quem leva o campeonato?",
		Options: options,
	})
	if err != nil {
		t.Fatalf("CreatePoll failed: %v", err)
	}

	published, err := polls.PublishPoll(creatorID, poll.ID)
	if err != nil {
		t.Fatalf("PublishPoll failed: %v", err)
	}
	published.Options = poll.Options
	return published
}

func TestCreatePollRequiresTwoOptions(t *testing.T) {
	db := setupTestDB(t)
	polls := NewPollService(db, NewActivityService(db))

	creator := createTestUser(t, db, "rafael")

	_, err := polls.CreatePoll(creator.ID, models.CreatePollRequest{
		Title:   "Enquete rasa",
		Options: []string{"Sozinha"},
	})
	if !errors.Is(err, ErrTooFewOptions) {
		t.Errorf("CreatePoll with one option = %v, want ErrTooFewOptions", err)
	}

	poll, err := polls.CreatePoll(creator.ID, models.CreatePollRequest{
		Title:   "Enquete válida",
		Options: []string{"Sim", "Não"},
	})
	if err != nil {
		t.Fatalf("CreatePoll failed: %v", err)
	}
	if poll.Status != models.PollStatusDraft {
		t.Errorf("new poll status = %q, want draft", poll.Status)
	}
	if len(poll.Options) != 2 {
		t.Errorf("poll has %d options, want 2", len(poll.Options))
	}
}

func TestVote(t *testing.T) {
	db := setupTestDB(t)
	polls := NewPollService(db, NewActivityService(db))

	creator := createTestUser(t, db, "rafael")
	voter := createTestUser(t, db, "juliana")

	poll := createOpenPoll(t, db, polls, creator.ID, "Flamengo", "Palmeiras")
	chosen := poll.Options[0]

	vote, err := polls.Vote(voter.ID, poll.ID, models.VotePollRequest{OptionID: chosen.ID})
	if err != nil {
		t.Fatalf("Vote failed: %v", err)
	}
	if vote.OptionID != chosen.ID {
		t.Errorf("vote option = %d, want %d", vote.OptionID, chosen.ID)
	}

	var option models.PollOption
	if err := db.First(&option, chosen.ID).Error; err != nil {
		t.Fatalf("Failed to reload option: %v", err)
	}
	if option.VotesCount != 1 {
		t.Errorf("votes_count = %d, want 1", option.VotesCount)
	}

	// One vote per user per poll, final
	other := poll.Options[1]
	if _, err := polls.Vote(voter.ID, poll.ID, models.VotePollRequest{OptionID: other.ID}); !errors.Is(err, ErrAlreadyVoted) {
		t.Errorf("second vote = %v, want ErrAlreadyVoted", err)
	}
}

func TestVoteRejectsForeignOption(t *testing.T) {
	db := setupTestDB(t)
	polls := NewPollService(db, NewActivityService(db))

	creator := createTestUser(t, db, "rafael")
	voter := createTestUser(t, db, "juliana")

	target := createOpenPoll(t, db, polls, creator.ID, "Sim", "Não")
	other := createOpenPoll(t, db, polls, creator.ID, "Sábado", "Domingo")

	foreign := other.Options[0]
	if _, err := polls.Vote(voter.ID, target.ID, models.VotePollRequest{OptionID: foreign.ID}); !errors.Is(err, ErrOptionNotInPoll) {
		t.Errorf("vote with foreign option = %v, want ErrOptionNotInPoll", err)
	}

	if _, err := polls.Vote(voter.ID, target.ID, models.VotePollRequest{OptionID: 9999}); !errors.Is(err, ErrOptionNotInPoll) {
		t.Errorf("vote with unknown option = %v, want ErrOptionNotInPoll", err)
	}
}

func TestVoteRequiresOpenPoll(t *testing.T) {
	db := setupTestDB(t)
	polls := NewPollService(db, NewActivityService(db))

	creator := createTestUser(t, db, "rafael")
	voter := createTestUser(t, db, "juliana")

	draft, err := polls.CreatePoll(creator.ID, models.CreatePollRequest{
		Title:   "Ainda em rascunho",
		Options: []string{"A", "B"},
	})
	if err != nil {
		t.Fatalf("CreatePoll failed: %v", err)
	}

	if _, err := polls.Vote(voter.ID, draft.ID, models.VotePollRequest{OptionID: draft.Options[0].ID}); !errors.Is(err, ErrPollNotOpen) {
		t.Errorf("vote on draft = %v, want ErrPollNotOpen", err)
	}

	closed := createOpenPoll(t, db, polls, creator.ID, "A", "B")
	if _, err := polls.ClosePoll(creator.ID, closed.ID); err != nil {
		t.Fatalf("ClosePoll failed: %v", err)
	}
	if _, err := polls.Vote(voter.ID, closed.ID, models.VotePollRequest{OptionID: closed.Options[0].ID}); !errors.Is(err, ErrPollNotOpen) {
		t.Errorf("vote on closed poll = %v, want ErrPollNotOpen", err)
	}
}

func TestCloseExpiredPolls(t *testing.T) {
	db := setupTestDB(t)
	polls := NewPollService(db, NewActivityService(db))

	creator := createTestUser(t, db, "rafael")

	expired := createOpenPoll(t, db, polls, creator.ID, "A", "B")
	past := time.Now().Add(-time.Hour)
	if err := db.Model(&models.Poll{}).Where("id = ?", expired.ID).
		Update("end_date", &past).Error; err != nil {
		t.Fatalf("Failed to expire poll: %v", err)
	}

	current := createOpenPoll(t, db, polls, creator.ID, "C", "D")

	closed, err := polls.CloseExpiredPolls()
	if err != nil {
		t.Fatalf("CloseExpiredPolls failed: %v", err)
	}
	if closed != 1 {
		t.Errorf("closed %d polls, want 1", closed)
	}

	reloaded, err := polls.GetPoll(current.ID)
	if err != nil {
		t.Fatalf("GetPoll failed: %v", err)
	}
	if reloaded.Status != models.PollStatusOpen {
		t.Errorf("unexpired poll status = %q, want open", reloaded.Status)
	}
}

func TestDeletePollOnlyInDraft(t *testing.T) {
	db := setupTestDB(t)
	polls := NewPollService(db, NewActivityService(db))

	creator := createTestUser(t, db, "rafael")

	draft, err := polls.CreatePoll(creator.ID, models.CreatePollRequest{
		Title:   "Descartável",
		Options: []string{"A", "B"},
	})
	if err != nil {
		t.Fatalf("CreatePoll failed: %v", err)
	}

	if err := polls.DeletePoll(creator.ID, draft.ID); err != nil {
		t.Fatalf("DeletePoll failed: %v", err)
	}
	if _, err := polls.GetPoll(draft.ID); !errors.Is(err, ErrPollNotFound) {
		t.Errorf("GetPoll after delete = %v, want ErrPollNotFound", err)
	}

	open := createOpenPoll(t, db, polls, creator.ID, "A", "B")
	if err := polls.DeletePoll(creator.ID, open.ID); !errors.Is(err, ErrPollNotDraft) {
		t.Errorf("delete of open poll = %v, want ErrPollNotDraft", err)
	}
}
