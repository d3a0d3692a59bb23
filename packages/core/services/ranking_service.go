package services

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"core/models"

	"gorm.io/gorm"
)

// RankingService derives user rankings from scored bets. Rankings are
// recomputed views; only the previous snapshot of each scope persists,
// so recomputations can report signed rank deltas.
type RankingService struct {
	db       *gorm.DB
	activity *ActivityService
}

func NewRankingService(db *gorm.DB, activity *ActivityService) *RankingService {
	return &RankingService{
		db:       db,
		activity: activity,
	}
}

type rankingRow struct {
	UserID        uint
	Username      string
	UserCreatedAt time.Time
	Points        int
	TotalBets     int
	CorrectBets   int
}

// ComputeRanking aggregates scored bets into an ordered ranking. Scope
// is global when poolID is nil. Ties are broken deterministically:
// points desc, accuracy desc, earliest account first, then user id.
func (s *RankingService) ComputeRanking(poolID *uint) ([]models.RankingEntry, error) {
	query := s.db.Table("user_bets").
		Select("user_bets.user_id AS user_id, " +
			"users.username AS username, " +
			"users.created_at AS user_created_at, " +
			"SUM(user_bets.points_earned) AS points, " +
			"COUNT(user_bets.id) AS total_bets, " +
			"SUM(CASE WHEN user_bets.points_earned > 0 THEN 1 ELSE 0 END) AS correct_bets").
		Joins("JOIN matches ON matches.id = user_bets.match_id").
		Joins("JOIN users ON users.id = user_bets.user_id").
		Where("matches.scored_at IS NOT NULL").
		Where("user_bets.deleted_at IS NULL AND matches.deleted_at IS NULL AND users.deleted_at IS NULL").
		Group("user_bets.user_id, users.username, users.created_at")

	if poolID != nil {
		query = query.Where("matches.pool_id = ?", *poolID)
	}

	var rows []rankingRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		accI := accuracy(rows[i].CorrectBets, rows[i].TotalBets)
		accJ := accuracy(rows[j].CorrectBets, rows[j].TotalBets)
		if accI != accJ {
			return accI > accJ
		}
		if !rows[i].UserCreatedAt.Equal(rows[j].UserCreatedAt) {
			return rows[i].UserCreatedAt.Before(rows[j].UserCreatedAt)
		}
		return rows[i].UserID < rows[j].UserID
	})

	entries := make([]models.RankingEntry, len(rows))
	for i, row := range rows {
		entries[i] = models.RankingEntry{
			UserID:       row.UserID,
			Username:     row.Username,
			Points:       row.Points,
			TotalBets:    row.TotalBets,
			CorrectBets:  row.CorrectBets,
			AccuracyRate: accuracy(row.CorrectBets, row.TotalBets),
			Rank:         i + 1,
		}
	}

	return entries, nil
}

func accuracy(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

// GetRanking returns the current ranking with deltas against the last
// retained snapshot, without rotating it.
func (s *RankingService) GetRanking(poolID *uint) ([]models.RankingEntry, error) {
	entries, err := s.ComputeRanking(poolID)
	if err != nil {
		return nil, err
	}

	previous, err := s.previousSnapshot(poolID)
	if err != nil {
		return nil, err
	}
	applyDeltas(entries, previous)

	return entries, nil
}

// RecomputeGlobal recomputes the global ranking and rotates its snapshot
func (s *RankingService) RecomputeGlobal() error {
	return s.recompute(nil)
}

// RecomputePool recomputes one pool's ranking and rotates its snapshot
func (s *RankingService) RecomputePool(poolID uint) error {
	return s.recompute(&poolID)
}

func (s *RankingService) recompute(poolID *uint) error {
	entries, err := s.ComputeRanking(poolID)
	if err != nil {
		return err
	}

	previous, err := s.previousSnapshot(poolID)
	if err != nil {
		return err
	}
	applyDeltas(entries, previous)

	scope := models.RankingScopeGlobal
	if poolID != nil {
		scope = models.RankingScopePool
	}

	snapshotEntries := make(models.SnapshotEntries, len(entries))
	for i, entry := range entries {
		snapshotEntries[i] = models.SnapshotEntry{
			UserID: entry.UserID,
			Rank:   entry.Rank,
			Points: entry.Points,
		}
	}

	// Rotate: exactly one snapshot survives per scope
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	rotation := tx.Where("scope = ?", scope)
	if poolID != nil {
		rotation = rotation.Where("pool_id = ?", *poolID)
	} else {
		rotation = rotation.Where("pool_id IS NULL")
	}
	if err := rotation.Delete(&models.RankingSnapshot{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	snapshot := models.RankingSnapshot{
		Scope:   scope,
		PoolID:  poolID,
		Entries: snapshotEntries,
	}
	if err := tx.Create(&snapshot).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.recordClimbers(entries, poolID)
	return nil
}

func (s *RankingService) previousSnapshot(poolID *uint) (map[uint]int, error) {
	query := s.db.Order("created_at DESC")
	if poolID != nil {
		query = query.Where("scope = ? AND pool_id = ?", models.RankingScopePool, *poolID)
	} else {
		query = query.Where("scope = ? AND pool_id IS NULL", models.RankingScopeGlobal)
	}

	var snapshot models.RankingSnapshot
	if err := query.First(&snapshot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	ranks := make(map[uint]int, len(snapshot.Entries))
	for _, entry := range snapshot.Entries {
		ranks[entry.UserID] = entry.Rank
	}
	return ranks, nil
}

// applyDeltas fills RankingEntry.RankDelta; positive means climbed
func applyDeltas(entries []models.RankingEntry, previous map[uint]int) {
	if previous == nil {
		return
	}
	for i := range entries {
		if prevRank, ok := previous[entries[i].UserID]; ok {
			entries[i].RankDelta = prevRank - entries[i].Rank
		}
	}
}

func (s *RankingService) recordClimbers(entries []models.RankingEntry, poolID *uint) {
	for _, entry := range entries {
		if entry.RankDelta <= 0 {
			continue
		}

		description := fmt.Sprintf("Subiu %d posição(ões) no ranking", entry.RankDelta)
		data := models.Payload{"rank": entry.Rank, "delta": entry.RankDelta}
		if poolID != nil {
			data["pool_id"] = *poolID
		}

		if err := s.activity.RecordActivity(entry.UserID, models.ActivityRankingImproved, description, data); err != nil {
			log.Printf("Warning: failed to record ranking activity for user %d: %v", entry.UserID, err)
		}
		if err := s.activity.Notify(entry.UserID, models.NotificationRankingChange,
			"Você subiu no ranking!", description, data); err != nil {
			log.Printf("Warning: failed to notify user %d of ranking change: %v", entry.UserID, err)
		}
	}
}
