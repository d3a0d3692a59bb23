package services

import (
	"time"

	"core/models"

	"gorm.io/gorm"
)

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{
		db: db,
	}
}

func (s *StatsService) GetStats() (*models.Stats, error) {
	var totalPools int64
	var activePools int64
	var totalParticipants int64
	var totalBets int64
	var betsLast7Days int64
	var betsPrevious7Days int64

	if err := s.db.Model(&models.Pool{}).Count(&totalPools).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Pool{}).
		Where("status = ?", models.PoolStatusActive).
		Count(&activePools).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.PoolParticipant{}).Count(&totalParticipants).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.UserBet{}).Count(&totalBets).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	last7DaysStart := now.AddDate(0, 0, -7)
	previous7DaysStart := now.AddDate(0, 0, -14)

	if err := s.db.Model(&models.UserBet{}).
		Where("created_at >= ?", last7DaysStart).
		Count(&betsLast7Days).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.UserBet{}).
		Where("created_at >= ? AND created_at < ?", previous7DaysStart, last7DaysStart).
		Count(&betsPrevious7Days).Error; err != nil {
		return nil, err
	}

	return &models.Stats{
		TotalPools:        totalPools,
		ActivePools:       activePools,
		TotalParticipants: totalParticipants,
		TotalBets:         totalBets,
		BetsLast7Days:     betsLast7Days,
		BetsPrevious7Days: betsPrevious7Days,
	}, nil
}

func (s *StatsService) GetUserStats(userID uint) (*models.UserStats, error) {
	type betAggregate struct {
		TotalPoints int
		TotalBets   int
		CorrectBets int
	}

	var agg betAggregate
	if err := s.db.Table("user_bets").
		Select("COALESCE(SUM(points_earned), 0) AS total_points, " +
			"COUNT(id) AS total_bets, " +
			"SUM(CASE WHEN points_earned > 0 THEN 1 ELSE 0 END) AS correct_bets").
		Where("user_id = ? AND deleted_at IS NULL", userID).
		Scan(&agg).Error; err != nil {
		return nil, err
	}

	var poolsJoined int64
	if err := s.db.Model(&models.PoolParticipant{}).
		Where("user_id = ?", userID).
		Count(&poolsJoined).Error; err != nil {
		return nil, err
	}

	var poolsCreated int64
	if err := s.db.Model(&models.Pool{}).
		Where("creator_id = ?", userID).
		Count(&poolsCreated).Error; err != nil {
		return nil, err
	}

	return &models.UserStats{
		UserID:       userID,
		TotalPoints:  agg.TotalPoints,
		TotalBets:    agg.TotalBets,
		CorrectBets:  agg.CorrectBets,
		AccuracyRate: accuracy(agg.CorrectBets, agg.TotalBets),
		PoolsJoined:  poolsJoined,
		PoolsCreated: poolsCreated,
	}, nil
}
