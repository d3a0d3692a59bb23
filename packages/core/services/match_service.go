package services

import (
	"errors"
	"strings"
	"time"

	"core/models"

	"gorm.io/gorm"
)

type MatchService struct {
	db      *gorm.DB
	scoring *ScoringService
}

func NewMatchService(db *gorm.DB, scoring *ScoringService) *MatchService {
	return &MatchService{
		db:      db,
		scoring: scoring,
	}
}

// matchNextStatus encodes the allowed forward transitions; cancelled is a
// terminal branch off scheduled or live.
var matchNextStatus = map[string][]string{
	models.MatchStatusScheduled: {models.MatchStatusLive, models.MatchStatusFinished, models.MatchStatusCancelled},
	models.MatchStatusLive:      {models.MatchStatusFinished, models.MatchStatusCancelled},
}

func matchTransitionAllowed(from, to string) bool {
	for _, next := range matchNextStatus[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s *MatchService) CreateMatch(userID uint, req models.CreateMatchRequest) (*models.Match, error) {
	var pool models.Pool
	if err := s.db.First(&pool, req.PoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPoolNotFound
		}
		return nil, err
	}

	if pool.CreatorID != userID {
		return nil, ErrNotCreator
	}
	if pool.Status == models.PoolStatusFinished {
		return nil, ErrInvalidTransition
	}
	if strings.EqualFold(strings.TrimSpace(req.HomeTeam), strings.TrimSpace(req.AwayTeam)) {
		return nil, ErrSameTeam
	}

	match := models.Match{
		PoolID:    req.PoolID,
		HomeTeam:  strings.TrimSpace(req.HomeTeam),
		AwayTeam:  strings.TrimSpace(req.AwayTeam),
		MatchDate: req.MatchDate,
		Status:    models.MatchStatusScheduled,
	}

	if err := s.db.Create(&match).Error; err != nil {
		return nil, err
	}

	return &match, nil
}

func (s *MatchService) GetMatch(id uint) (*models.Match, error) {
	var match models.Match

	result := s.db.Preload("Pool").First(&match, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, result.Error
	}

	return &match, nil
}

// MatchFilters narrow the paginated match listing
type MatchFilters struct {
	Page     int
	PerPage  int
	PoolID   *uint
	Status   *string
	DateFrom *time.Time
	DateTo   *time.Time
}

func (s *MatchService) GetMatches(filters MatchFilters) (*models.PaginatedMatchResponse, error) {
	query := s.db.Model(&models.Match{})

	if filters.PoolID != nil {
		query = query.Where("pool_id = ?", *filters.PoolID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.DateFrom != nil {
		query = query.Where("match_date >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("match_date < ?", *filters.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (filters.Page - 1) * filters.PerPage

	var matches []models.Match
	if err := query.Order("match_date ASC").Offset(offset).Limit(filters.PerPage).Find(&matches).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filters.PerPage) - 1) / int64(filters.PerPage))

	return &models.PaginatedMatchResponse{
		Data:       matches,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PerPage,
		TotalPages: totalPages,
	}, nil
}

// GetUpcomingMatches lists scheduled matches for the pools a user joined
func (s *MatchService) GetUpcomingMatches(userID uint, limit int) ([]models.Match, error) {
	var matches []models.Match

	result := s.db.Where("status = ? AND match_date > ?", models.MatchStatusScheduled, time.Now()).
		Where("pool_id IN (?)", s.db.Model(&models.PoolParticipant{}).
			Select("pool_id").Where("user_id = ?", userID)).
		Order("match_date ASC").
		Limit(limit).
		Preload("Pool").
		Find(&matches)

	if result.Error != nil {
		return nil, result.Error
	}

	return matches, nil
}

// UpdateMatch applies score and status changes from the pool creator.
// Scores are accepted only while the match is live or being finished;
// finishing requires a complete score line and triggers the scoring pass.
func (s *MatchService) UpdateMatch(userID, matchID uint, req models.UpdateMatchRequest) (*models.Match, error) {
	var match models.Match
	if err := s.db.Preload("Pool").First(&match, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	if match.Pool.CreatorID != userID {
		return nil, ErrNotCreator
	}

	targetStatus := match.Status
	if req.Status != nil && *req.Status != match.Status {
		if !matchTransitionAllowed(match.Status, *req.Status) {
			return nil, ErrInvalidTransition
		}
		targetStatus = *req.Status
	}

	if req.HomeScore != nil || req.AwayScore != nil {
		if targetStatus != models.MatchStatusLive && targetStatus != models.MatchStatusFinished {
			return nil, ErrScoresNotAllowed
		}
	}

	if match.Status == models.MatchStatusScheduled {
		if req.HomeTeam != nil {
			match.HomeTeam = strings.TrimSpace(*req.HomeTeam)
		}
		if req.AwayTeam != nil {
			match.AwayTeam = strings.TrimSpace(*req.AwayTeam)
		}
		if strings.EqualFold(match.HomeTeam, match.AwayTeam) {
			return nil, ErrSameTeam
		}
		if req.MatchDate != nil {
			match.MatchDate = *req.MatchDate
		}
	}

	if req.HomeScore != nil {
		match.HomeScore = req.HomeScore
	}
	if req.AwayScore != nil {
		match.AwayScore = req.AwayScore
	}

	if targetStatus == models.MatchStatusFinished && !match.HasFinalScore() {
		return nil, ErrIncompleteMatch
	}

	match.Status = targetStatus

	if err := s.db.Save(&match).Error; err != nil {
		return nil, err
	}

	if match.Status == models.MatchStatusFinished {
		if err := s.scoring.ScoreMatch(match.ID); err != nil {
			return nil, err
		}
	}

	if err := s.db.Preload("Pool").First(&match, match.ID).Error; err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *MatchService) CancelMatch(userID, matchID uint) (*models.Match, error) {
	status := models.MatchStatusCancelled
	return s.UpdateMatch(userID, matchID, models.UpdateMatchRequest{Status: &status})
}

// DeleteMatch removes a match and its bets. Handler gates this to admins.
func (s *MatchService) DeleteMatch(matchID uint) error {
	var match models.Match
	if err := s.db.First(&match, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMatchNotFound
		}
		return err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("match_id = ?", match.ID).Delete(&models.UserBet{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&match).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
