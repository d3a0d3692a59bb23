package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"time"

	"core/models"

	"gorm.io/gorm"
)

type PoolService struct {
	db       *gorm.DB
	activity *ActivityService
}

func NewPoolService(db *gorm.DB, activity *ActivityService) *PoolService {
	return &PoolService{
		db:       db,
		activity: activity,
	}
}

// inviteCodeAlphabet matches the 8-char upper-case codes users share
const inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func generateInviteCode() (string, error) {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	for i, b := range bytes {
		bytes[i] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
	}
	return string(bytes), nil
}

func (s *PoolService) CreatePool(creatorID uint, req models.CreatePoolRequest) (*models.Pool, error) {
	if req.StartDate != nil && req.EndDate != nil && !req.EndDate.After(*req.StartDate) {
		return nil, ErrInvalidDates
	}

	rules := models.DefaultScoringRules()
	if req.ScoringRules != nil {
		rules = *req.ScoringRules
	}

	// Invite codes are unique; retry on the unlikely collision
	var inviteCode string
	for attempt := 0; attempt < 5; attempt++ {
		code, err := generateInviteCode()
		if err != nil {
			return nil, err
		}
		var count int64
		if err := s.db.Model(&models.Pool{}).Where("invite_code = ?", code).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			inviteCode = code
			break
		}
	}
	if inviteCode == "" {
		return nil, errors.New("failed to generate a unique invite code")
	}

	pool := models.Pool{
		Name:             req.Name,
		Description:      req.Description,
		CreatorID:        creatorID,
		Status:           models.PoolStatusDraft,
		InviteCode:       inviteCode,
		MaxParticipants:  req.MaxParticipants,
		PrizeAmount:      req.PrizeAmount,
		ScoringRules:     rules,
		ParticipantCount: 1, // the creator joins their own pool
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&pool).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	participant := models.PoolParticipant{
		PoolID:   pool.ID,
		UserID:   creatorID,
		JoinedAt: time.Now(),
	}
	if err := tx.Create(&participant).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if err := s.activity.Notify(creatorID, models.NotificationPoolInvite,
		"Bolão criado",
		fmt.Sprintf("O bolão %q foi criado. Código de convite: %s", pool.Name, pool.InviteCode),
		models.Payload{"pool_id": pool.ID, "invite_code": pool.InviteCode}); err != nil {
		log.Printf("Warning: failed to record pool creation notification: %v", err)
	}

	return &pool, nil
}

func (s *PoolService) GetPool(id uint) (*models.Pool, error) {
	var pool models.Pool

	result := s.db.Preload("Participants").Preload("Matches").First(&pool, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPoolNotFound
		}
		return nil, result.Error
	}

	return &pool, nil
}

// PoolFilters narrow the paginated pool listing
type PoolFilters struct {
	Page          int
	PerPage       int
	Status        *string
	CreatorID     *uint
	ParticipantID *uint
	Search        string
}

func (s *PoolService) GetPools(filters PoolFilters) (*models.PaginatedPoolResponse, error) {
	query := s.db.Model(&models.Pool{})

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.CreatorID != nil {
		query = query.Where("creator_id = ?", *filters.CreatorID)
	}
	if filters.ParticipantID != nil {
		query = query.Where("id IN (?)", s.db.Model(&models.PoolParticipant{}).
			Select("pool_id").Where("user_id = ?", *filters.ParticipantID))
	}
	if filters.Search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+filters.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (filters.Page - 1) * filters.PerPage

	var pools []models.Pool
	if err := query.Order("created_at DESC").Offset(offset).Limit(filters.PerPage).Find(&pools).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filters.PerPage) - 1) / int64(filters.PerPage))

	return &models.PaginatedPoolResponse{
		Data:       pools,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PerPage,
		TotalPages: totalPages,
	}, nil
}

func (s *PoolService) UpdatePool(userID, poolID uint, req models.UpdatePoolRequest) (*models.Pool, error) {
	var pool models.Pool
	if err := s.db.First(&pool, poolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPoolNotFound
		}
		return nil, err
	}

	if pool.CreatorID != userID {
		return nil, ErrNotCreator
	}
	if pool.Status != models.PoolStatusDraft && pool.Status != models.PoolStatusOpen {
		return nil, ErrInvalidTransition
	}

	if req.Name != nil {
		pool.Name = *req.Name
	}
	if req.Description != nil {
		pool.Description = req.Description
	}
	if req.MaxParticipants != nil {
		if *req.MaxParticipants < pool.ParticipantCount {
			return nil, ErrPoolFull
		}
		pool.MaxParticipants = req.MaxParticipants
	}
	if req.PrizeAmount != nil {
		pool.PrizeAmount = req.PrizeAmount
	}
	if req.ScoringRules != nil {
		pool.ScoringRules = *req.ScoringRules
	}
	if req.StartDate != nil {
		pool.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		pool.EndDate = req.EndDate
	}

	if pool.StartDate != nil && pool.EndDate != nil && !pool.EndDate.After(*pool.StartDate) {
		return nil, ErrInvalidDates
	}

	if err := s.db.Save(&pool).Error; err != nil {
		return nil, err
	}

	return &pool, nil
}

// poolNextStatus encodes the forward-only lifecycle
var poolNextStatus = map[string]string{
	models.PoolStatusDraft:  models.PoolStatusOpen,
	models.PoolStatusOpen:   models.PoolStatusActive,
	models.PoolStatusActive: models.PoolStatusFinished,
}

func (s *PoolService) transition(userID, poolID uint, target string) (*models.Pool, error) {
	var pool models.Pool
	if err := s.db.First(&pool, poolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPoolNotFound
		}
		return nil, err
	}

	if pool.CreatorID != userID {
		return nil, ErrNotCreator
	}
	if poolNextStatus[pool.Status] != target {
		return nil, ErrInvalidTransition
	}

	if target == models.PoolStatusActive {
		var scheduled int64
		if err := s.db.Model(&models.Match{}).
			Where("pool_id = ? AND status = ?", pool.ID, models.MatchStatusScheduled).
			Count(&scheduled).Error; err != nil {
			return nil, err
		}
		if scheduled == 0 {
			return nil, ErrNoMatchScheduled
		}
	}

	pool.Status = target
	if err := s.db.Save(&pool).Error; err != nil {
		return nil, err
	}

	return &pool, nil
}

func (s *PoolService) PublishPool(userID, poolID uint) (*models.Pool, error) {
	return s.transition(userID, poolID, models.PoolStatusOpen)
}

func (s *PoolService) ActivatePool(userID, poolID uint) (*models.Pool, error) {
	return s.transition(userID, poolID, models.PoolStatusActive)
}

func (s *PoolService) FinishPool(userID, poolID uint) (*models.Pool, error) {
	return s.transition(userID, poolID, models.PoolStatusFinished)
}

// DeletePool removes a draft pool and everything it owns. Only the
// creator may delete, and only while the pool never left draft.
func (s *PoolService) DeletePool(userID, poolID uint) error {
	var pool models.Pool
	if err := s.db.First(&pool, poolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPoolNotFound
		}
		return err
	}

	if pool.CreatorID != userID {
		return ErrNotCreator
	}
	if pool.Status != models.PoolStatusDraft {
		return ErrPoolNotDraft
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("match_id IN (?)", tx.Model(&models.Match{}).
		Select("id").Where("pool_id = ?", pool.ID)).
		Delete(&models.UserBet{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("pool_id = ?", pool.ID).Delete(&models.Match{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("pool_id = ?", pool.ID).Delete(&models.PoolParticipant{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&pool).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// JoinPool redeems an invite code into pool membership. The membership
// insert and the participant_count increment happen in one transaction,
// with the capacity check folded into a conditional update so two
// concurrent joins cannot overshoot max_participants.
func (s *PoolService) JoinPool(userID uint, inviteCode string) (*models.Pool, error) {
	var pool models.Pool
	if err := s.db.Where("invite_code = ?", inviteCode).First(&pool).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, err
	}

	if !pool.IsJoinable() {
		return nil, ErrPoolClosed
	}

	var existing int64
	if err := s.db.Model(&models.PoolParticipant{}).
		Where("pool_id = ? AND user_id = ?", pool.ID, userID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrAlreadyMember
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	result := tx.Model(&models.Pool{}).
		Where("id = ? AND (max_participants IS NULL OR participant_count < max_participants)", pool.ID).
		Update("participant_count", gorm.Expr("participant_count + 1"))
	if result.Error != nil {
		tx.Rollback()
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return nil, ErrPoolFull
	}

	participant := models.PoolParticipant{
		PoolID:   pool.ID,
		UserID:   userID,
		JoinedAt: time.Now(),
	}
	if err := tx.Create(&participant).Error; err != nil {
		// Unique index backstop for a concurrent double join
		tx.Rollback()
		return nil, ErrAlreadyMember
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if err := s.activity.RecordActivity(userID, models.ActivityPoolJoined,
		fmt.Sprintf("Entrou no bolão %q", pool.Name),
		models.Payload{"pool_id": pool.ID}); err != nil {
		log.Printf("Warning: failed to record pool join activity: %v", err)
	}

	if err := s.db.First(&pool, pool.ID).Error; err != nil {
		return nil, err
	}
	return &pool, nil
}

// LeavePool removes a participant (not the creator) from an unfinished pool
func (s *PoolService) LeavePool(userID, poolID uint) error {
	var pool models.Pool
	if err := s.db.First(&pool, poolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPoolNotFound
		}
		return err
	}

	if pool.Status == models.PoolStatusFinished {
		return ErrInvalidTransition
	}
	if pool.CreatorID == userID {
		return ErrCreatorCantLeave
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	result := tx.Where("pool_id = ? AND user_id = ?", poolID, userID).Delete(&models.PoolParticipant{})
	if result.Error != nil {
		tx.Rollback()
		return result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return ErrNotMember
	}

	if err := tx.Model(&models.Pool{}).Where("id = ?", poolID).
		Update("participant_count", gorm.Expr("participant_count - 1")).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// IsParticipant reports whether a user belongs to a pool
func (s *PoolService) IsParticipant(userID, poolID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.PoolParticipant{}).
		Where("pool_id = ? AND user_id = ?", poolID, userID).
		Count(&count).Error
	return count > 0, err
}
