package services

import (
	"fmt"
	"log"
	"time"

	"core/models"

	"gorm.io/gorm"
)

// LifecycleService advances pool, poll and match state that depends on
// the clock rather than on a user action. The scheduler runs it hourly.
type LifecycleService struct {
	db       *gorm.DB
	scoring  *ScoringService
	polls    *PollService
	activity *ActivityService
}

func NewLifecycleService(db *gorm.DB, scoring *ScoringService, polls *PollService, activity *ActivityService) *LifecycleService {
	return &LifecycleService{
		db:       db,
		scoring:  scoring,
		polls:    polls,
		activity: activity,
	}
}

// Run executes one full lifecycle pass. Each step logs and continues on
// failure so one broken record cannot stall the others.
func (s *LifecycleService) Run() {
	if n, err := s.ActivateDuePools(); err != nil {
		log.Printf("Error activating due pools: %v", err)
	} else if n > 0 {
		log.Printf("Activated %d pool(s)", n)
	}

	if n, err := s.FinishDuePools(); err != nil {
		log.Printf("Error finishing due pools: %v", err)
	} else if n > 0 {
		log.Printf("Finished %d pool(s)", n)
	}

	if n, err := s.scoring.ScorePendingMatches(); err != nil {
		log.Printf("Error scoring pending matches: %v", err)
	} else if n > 0 {
		log.Printf("Scored %d pending match(es)", n)
	}

	if n, err := s.polls.CloseExpiredPolls(); err != nil {
		log.Printf("Error closing expired polls: %v", err)
	} else if n > 0 {
		log.Printf("Closed %d expired poll(s)", n)
	}

	if n, err := s.SendBetReminders(); err != nil {
		log.Printf("Error sending bet reminders: %v", err)
	} else if n > 0 {
		log.Printf("Sent %d bet reminder(s)", n)
	}
}

// ActivateDuePools moves open pools whose start date passed and that
// have at least one scheduled match into active.
func (s *LifecycleService) ActivateDuePools() (int, error) {
	var pools []models.Pool
	if err := s.db.Where("status = ? AND start_date IS NOT NULL AND start_date <= ?",
		models.PoolStatusOpen, time.Now()).Find(&pools).Error; err != nil {
		return 0, err
	}

	activated := 0
	for _, pool := range pools {
		var scheduled int64
		if err := s.db.Model(&models.Match{}).
			Where("pool_id = ? AND status = ?", pool.ID, models.MatchStatusScheduled).
			Count(&scheduled).Error; err != nil {
			log.Printf("Error counting matches for pool %d: %v", pool.ID, err)
			continue
		}
		if scheduled == 0 {
			continue
		}

		if err := s.db.Model(&models.Pool{}).
			Where("id = ? AND status = ?", pool.ID, models.PoolStatusOpen).
			Update("status", models.PoolStatusActive).Error; err != nil {
			log.Printf("Error activating pool %d: %v", pool.ID, err)
			continue
		}
		activated++
	}

	return activated, nil
}

// FinishDuePools moves active pools into finished once their end date
// passed, or once every match concluded (finished or cancelled).
func (s *LifecycleService) FinishDuePools() (int, error) {
	var pools []models.Pool
	if err := s.db.Where("status = ?", models.PoolStatusActive).Find(&pools).Error; err != nil {
		return 0, err
	}

	now := time.Now()
	finished := 0
	for _, pool := range pools {
		done := pool.EndDate != nil && pool.EndDate.Before(now)

		if !done {
			var total, concluded int64
			if err := s.db.Model(&models.Match{}).
				Where("pool_id = ?", pool.ID).Count(&total).Error; err != nil {
				log.Printf("Error counting matches for pool %d: %v", pool.ID, err)
				continue
			}
			if err := s.db.Model(&models.Match{}).
				Where("pool_id = ? AND status IN ?", pool.ID,
					[]string{models.MatchStatusFinished, models.MatchStatusCancelled}).
				Count(&concluded).Error; err != nil {
				log.Printf("Error counting concluded matches for pool %d: %v", pool.ID, err)
				continue
			}
			done = total > 0 && total == concluded
		}

		if !done {
			continue
		}

		if err := s.db.Model(&models.Pool{}).
			Where("id = ? AND status = ?", pool.ID, models.PoolStatusActive).
			Update("status", models.PoolStatusFinished).Error; err != nil {
			log.Printf("Error finishing pool %d: %v", pool.ID, err)
			continue
		}
		finished++
	}

	return finished, nil
}

// SendBetReminders notifies participants who have not placed a bet on a
// match entering its final day before kickoff. At most one reminder per
// user and match.
func (s *LifecycleService) SendBetReminders() (int, error) {
	now := time.Now()
	var matches []models.Match
	if err := s.db.Where("status = ? AND match_date > ? AND match_date <= ?",
		models.MatchStatusScheduled, now, now.Add(24*time.Hour)).
		Find(&matches).Error; err != nil {
		return 0, err
	}

	sent := 0
	for _, match := range matches {
		var participants []models.PoolParticipant
		if err := s.db.Where("pool_id = ?", match.PoolID).Find(&participants).Error; err != nil {
			log.Printf("Error loading participants for pool %d: %v", match.PoolID, err)
			continue
		}

		for _, participant := range participants {
			var bets int64
			if err := s.db.Model(&models.UserBet{}).
				Where("user_id = ? AND match_id = ?", participant.UserID, match.ID).
				Count(&bets).Error; err != nil || bets > 0 {
				continue
			}
			if s.alreadyReminded(participant.UserID, match.ID) {
				continue
			}

			message := fmt.Sprintf("%s x %s começa em breve e você ainda não palpitou",
				match.HomeTeam, match.AwayTeam)
			if err := s.activity.Notify(participant.UserID, models.NotificationBetReminder,
				"Não esqueça do seu palpite!", message,
				models.Payload{"match_id": match.ID, "pool_id": match.PoolID}); err != nil {
				log.Printf("Error notifying user %d: %v", participant.UserID, err)
				continue
			}
			sent++
		}
	}

	return sent, nil
}

// alreadyReminded checks the user's reminder history for this match. The
// payload is decoded in Go because jsonb lookups are not portable to the
// sqlite test driver.
func (s *LifecycleService) alreadyReminded(userID, matchID uint) bool {
	var notifications []models.Notification
	if err := s.db.Where("user_id = ? AND type = ?", userID, models.NotificationBetReminder).
		Find(&notifications).Error; err != nil {
		return false
	}
	for _, n := range notifications {
		if id, ok := n.Data["match_id"].(float64); ok && uint(id) == matchID {
			return true
		}
	}
	return false
}
