package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"core/models"

	"gorm.io/gorm"
)

// DefaultBetCutoff is how long before kickoff bets lock
const DefaultBetCutoff = 15 * time.Minute

type BetService struct {
	db       *gorm.DB
	activity *ActivityService
	cutoff   time.Duration
}

func NewBetService(db *gorm.DB, activity *ActivityService, cutoff time.Duration) *BetService {
	if cutoff <= 0 {
		cutoff = DefaultBetCutoff
	}
	return &BetService{
		db:       db,
		activity: activity,
		cutoff:   cutoff,
	}
}

// Deadline returns the moment bets on a match lock
func (s *BetService) Deadline(match *models.Match) time.Time {
	return match.MatchDate.Add(-s.cutoff)
}

// PlaceBet creates or overwrites the caller's prediction for a match.
// Bets are only accepted from pool participants, on scheduled matches,
// strictly before the deadline. No prediction history is retained.
func (s *BetService) PlaceBet(userID uint, req models.PlaceBetRequest) (*models.UserBet, error) {
	var match models.Match
	if err := s.db.Preload("Pool").First(&match, req.MatchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	if match.Status != models.MatchStatusScheduled {
		return nil, ErrMatchNotScheduled
	}
	if !time.Now().Before(s.Deadline(&match)) {
		return nil, ErrDeadlinePassed
	}

	var member int64
	if err := s.db.Model(&models.PoolParticipant{}).
		Where("pool_id = ? AND user_id = ?", match.PoolID, userID).
		Count(&member).Error; err != nil {
		return nil, err
	}
	if member == 0 {
		return nil, ErrNotMember
	}

	var bet models.UserBet
	err := s.db.Where("user_id = ? AND match_id = ?", userID, match.ID).First(&bet).Error
	switch {
	case err == nil:
		// Update path: overwrite the previous prediction
		bet.HomeScorePrediction = *req.HomeScorePrediction
		bet.AwayScorePrediction = *req.AwayScorePrediction
		if err := s.db.Save(&bet).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		bet = models.UserBet{
			UserID:              userID,
			MatchID:             match.ID,
			HomeScorePrediction: *req.HomeScorePrediction,
			AwayScorePrediction: *req.AwayScorePrediction,
		}
		if err := s.db.Create(&bet).Error; err != nil {
			return nil, err
		}

		if err := s.activity.RecordActivity(userID, models.ActivityBetPlaced,
			fmt.Sprintf("Palpite %d x %d em %s vs %s",
				bet.HomeScorePrediction, bet.AwayScorePrediction, match.HomeTeam, match.AwayTeam),
			models.Payload{"match_id": match.ID, "pool_id": match.PoolID}); err != nil {
			log.Printf("Warning: failed to record bet activity: %v", err)
		}
	default:
		return nil, err
	}

	return &bet, nil
}

func (s *BetService) GetUserBets(userID uint, poolID *uint) ([]models.UserBet, error) {
	query := s.db.Where("user_id = ?", userID)
	if poolID != nil {
		query = query.Where("match_id IN (?)", s.db.Model(&models.Match{}).
			Select("id").Where("pool_id = ?", *poolID))
	}

	var bets []models.UserBet
	result := query.Order("created_at DESC").
		Preload("Match").
		Preload("Match.Pool").
		Find(&bets)

	if result.Error != nil {
		return nil, result.Error
	}

	return bets, nil
}

// GetMatchBets lists every bet on a match. Predictions stay hidden
// until the deadline so nobody can copy another participant's bet.
func (s *BetService) GetMatchBets(matchID uint) ([]models.UserBet, error) {
	var match models.Match
	if err := s.db.First(&match, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	if match.Status == models.MatchStatusScheduled && time.Now().Before(s.Deadline(&match)) {
		return nil, ErrBetsHidden
	}

	var bets []models.UserBet
	result := s.db.Where("match_id = ?", matchID).Find(&bets)
	if result.Error != nil {
		return nil, result.Error
	}

	return bets, nil
}
