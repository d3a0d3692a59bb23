package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"core/models"

	"gorm.io/gorm"
)

type PollService struct {
	db       *gorm.DB
	activity *ActivityService
}

func NewPollService(db *gorm.DB, activity *ActivityService) *PollService {
	return &PollService{
		db:       db,
		activity: activity,
	}
}

func (s *PollService) CreatePoll(creatorID uint, req models.CreatePollRequest) (*models.Poll, error) {
	if req.StartDate != nil && req.EndDate != nil && !req.EndDate.After(*req.StartDate) {
		return nil, ErrInvalidDates
	}
	if len(req.Options) < models.PollMinOptions {
		return nil, ErrTooFewOptions
	}

	poll := models.Poll{
		Title:       req.Title,
		Description: req.Description,
		CreatorID:   creatorID,
		Status:      models.PollStatusDraft,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&poll).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, text := range req.Options {
		option := models.PollOption{
			PollID: poll.ID,
			Text:   text,
		}
		if err := tx.Create(&option).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.GetPoll(poll.ID)
}

func (s *PollService) GetPoll(id uint) (*models.Poll, error) {
	var poll models.Poll

	result := s.db.Preload("Options").First(&poll, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPollNotFound
		}
		return nil, result.Error
	}

	return &poll, nil
}

// GetPollForUser returns a poll with the caller's vote attached
func (s *PollService) GetPollForUser(pollID, userID uint) (*models.PollWithVote, error) {
	poll, err := s.GetPoll(pollID)
	if err != nil {
		return nil, err
	}

	result := models.PollWithVote{Poll: *poll}

	var vote models.UserPollVote
	err = s.db.Where("poll_id = ? AND user_id = ?", pollID, userID).First(&vote).Error
	if err == nil {
		result.UserVote = &vote
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return &result, nil
}

func (s *PollService) GetPolls(status *string, limit int) ([]models.Poll, error) {
	query := s.db.Preload("Options").Order("created_at DESC").Limit(limit)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var polls []models.Poll
	if err := query.Find(&polls).Error; err != nil {
		return nil, err
	}

	return polls, nil
}

// PublishPoll opens a draft poll for voting. At least two options must
// exist at publish time.
func (s *PollService) PublishPoll(userID, pollID uint) (*models.Poll, error) {
	poll, err := s.GetPoll(pollID)
	if err != nil {
		return nil, err
	}

	if poll.CreatorID != userID {
		return nil, ErrNotCreator
	}
	if poll.Status != models.PollStatusDraft {
		return nil, ErrInvalidTransition
	}
	if len(poll.Options) < models.PollMinOptions {
		return nil, ErrTooFewOptions
	}

	poll.Status = models.PollStatusOpen
	if err := s.db.Save(poll).Error; err != nil {
		return nil, err
	}

	return poll, nil
}

func (s *PollService) ClosePoll(userID, pollID uint) (*models.Poll, error) {
	poll, err := s.GetPoll(pollID)
	if err != nil {
		return nil, err
	}

	if poll.CreatorID != userID {
		return nil, ErrNotCreator
	}
	if poll.Status != models.PollStatusOpen {
		return nil, ErrInvalidTransition
	}

	poll.Status = models.PollStatusClosed
	if err := s.db.Save(poll).Error; err != nil {
		return nil, err
	}

	return poll, nil
}

func (s *PollService) DeletePoll(userID, pollID uint) error {
	poll, err := s.GetPoll(pollID)
	if err != nil {
		return err
	}

	if poll.CreatorID != userID {
		return ErrNotCreator
	}
	if poll.Status != models.PollStatusDraft {
		return ErrPollNotDraft
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("poll_id = ?", poll.ID).Delete(&models.PollOption{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&models.Poll{}, poll.ID).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// Vote records one vote per user per poll. The option must belong to
// the poll and the poll must be open.
func (s *PollService) Vote(userID, pollID uint, req models.VotePollRequest) (*models.UserPollVote, error) {
	var poll models.Poll
	if err := s.db.First(&poll, pollID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPollNotFound
		}
		return nil, err
	}

	if poll.Status != models.PollStatusOpen {
		return nil, ErrPollNotOpen
	}
	if poll.EndDate != nil && time.Now().After(*poll.EndDate) {
		return nil, ErrPollNotOpen
	}

	var option models.PollOption
	if err := s.db.First(&option, req.OptionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOptionNotInPoll
		}
		return nil, err
	}
	if option.PollID != poll.ID {
		return nil, ErrOptionNotInPoll
	}

	var existing int64
	if err := s.db.Model(&models.UserPollVote{}).
		Where("poll_id = ? AND user_id = ?", poll.ID, userID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrAlreadyVoted
	}

	vote := models.UserPollVote{
		UserID:   userID,
		PollID:   poll.ID,
		OptionID: option.ID,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&vote).Error; err != nil {
		// Unique index backstop for a concurrent double vote
		tx.Rollback()
		return nil, ErrAlreadyVoted
	}

	if err := tx.Model(&models.PollOption{}).
		Where("id = ?", option.ID).
		Update("votes_count", gorm.Expr("votes_count + 1")).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if err := s.activity.RecordActivity(userID, models.ActivityPollVoted,
		fmt.Sprintf("Votou na enquete %q", poll.Title),
		models.Payload{"poll_id": poll.ID, "option_id": option.ID}); err != nil {
		log.Printf("Warning: failed to record poll vote activity: %v", err)
	}

	return &vote, nil
}

// CloseExpiredPolls is called by the scheduler to close open polls past
// their end date.
func (s *PollService) CloseExpiredPolls() (int, error) {
	result := s.db.Model(&models.Poll{}).
		Where("status = ? AND end_date IS NOT NULL AND end_date < ?", models.PollStatusOpen, time.Now()).
		Update("status", models.PollStatusClosed)

	if result.Error != nil {
		return 0, result.Error
	}

	return int(result.RowsAffected), nil
}
