package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"core/models"
	"core/utils"

	"gorm.io/gorm"
)

// ScoringService turns a finished match into points on every bet that
// references it, then kicks off ranking recomputation for the pool and
// the global scope.
type ScoringService struct {
	db       *gorm.DB
	ranking  *RankingService
	activity *ActivityService
}

func NewScoringService(db *gorm.DB, ranking *RankingService, activity *ActivityService) *ScoringService {
	return &ScoringService{
		db:       db,
		ranking:  ranking,
		activity: activity,
	}
}

// ScoreMatch awards points for all bets on a finished match. The whole
// pass runs in one transaction, so a match is never partially scored.
// Every write is an absolute value, which makes recomputation overwrite
// instead of accumulate; the scored_at claim below keeps concurrent
// finalizations from double-sending notifications.
func (s *ScoringService) ScoreMatch(matchID uint) error {
	var match models.Match
	if err := s.db.Preload("Pool").First(&match, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMatchNotFound
		}
		return err
	}

	if match.Status != models.MatchStatusFinished || !match.HasFinalScore() {
		return ErrIncompleteMatch
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Claim the scoring pass. RowsAffected == 0 means another pass (or a
	// previous one) already claimed it; points below are still rewritten
	// with identical absolute values, so reruns stay idempotent.
	claim := tx.Model(&models.Match{}).
		Where("id = ? AND scored_at IS NULL", match.ID).
		Update("scored_at", time.Now())
	if claim.Error != nil {
		tx.Rollback()
		return claim.Error
	}
	firstPass := claim.RowsAffected == 1

	var bets []models.UserBet
	if err := tx.Where("match_id = ?", match.ID).Find(&bets).Error; err != nil {
		tx.Rollback()
		return err
	}

	rules := match.Pool.ScoringRules
	for i := range bets {
		points := utils.CalculateBetPoints(rules,
			bets[i].HomeScorePrediction, bets[i].AwayScorePrediction,
			*match.HomeScore, *match.AwayScore)

		if err := tx.Model(&models.UserBet{}).
			Where("id = ?", bets[i].ID).
			Update("points_earned", points).Error; err != nil {
			tx.Rollback()
			return err
		}
		bets[i].PointsEarned = points
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	if firstPass {
		s.notifyBettors(&match, bets)
	}

	if err := s.ranking.RecomputePool(match.PoolID); err != nil {
		log.Printf("Warning: failed to recompute pool %d ranking: %v", match.PoolID, err)
	}
	if err := s.ranking.RecomputeGlobal(); err != nil {
		log.Printf("Warning: failed to recompute global ranking: %v", err)
	}

	return nil
}

func (s *ScoringService) notifyBettors(match *models.Match, bets []models.UserBet) {
	for _, bet := range bets {
		message := fmt.Sprintf("%s %d x %d %s: seu palpite rendeu %d ponto(s)",
			match.HomeTeam, *match.HomeScore, *match.AwayScore, match.AwayTeam, bet.PointsEarned)

		if err := s.activity.Notify(bet.UserID, models.NotificationResultUpdate,
			"Resultado registrado", message,
			models.Payload{"match_id": match.ID, "pool_id": match.PoolID, "points": bet.PointsEarned}); err != nil {
			log.Printf("Warning: failed to notify user %d about match %d: %v", bet.UserID, match.ID, err)
		}
	}
}

// ScorePendingMatches is the scheduler safety net: it scores finished
// matches that never went through a scoring pass.
func (s *ScoringService) ScorePendingMatches() (int, error) {
	var matches []models.Match
	if err := s.db.Where("status = ? AND scored_at IS NULL", models.MatchStatusFinished).
		Find(&matches).Error; err != nil {
		return 0, err
	}

	scored := 0
	for _, match := range matches {
		if err := s.ScoreMatch(match.ID); err != nil {
			log.Printf("Error scoring match %d: %v", match.ID, err)
			continue
		}
		scored++
	}

	return scored, nil
}
