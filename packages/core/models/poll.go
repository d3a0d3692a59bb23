package models

import (
	"time"

	"gorm.io/gorm"
)

// Poll statuses. Transitions are forward-only: draft -> open -> closed
const (
	PollStatusDraft  = "draft"
	PollStatusOpen   = "open"
	PollStatusClosed = "closed"
)

// Option count limits enforced at publish time
const (
	PollMinOptions = 2
	PollMaxOptions = 10
)

type Poll struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description *string        `gorm:"size:500" json:"description,omitempty"`
	CreatorID   uint           `gorm:"not null;index" json:"creator_id"`
	Status      string         `gorm:"size:20;default:draft;index" json:"status"`
	StartDate   *time.Time     `json:"start_date,omitempty"`
	EndDate     *time.Time     `json:"end_date,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Options []PollOption `gorm:"foreignKey:PollID" json:"options,omitempty"`
}

func (Poll) TableName() string {
	return "polls"
}

type PollOption struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PollID     uint      `gorm:"not null;index" json:"poll_id"`
	Text       string    `gorm:"size:100;not null" json:"text"`
	VotesCount int       `gorm:"default:0" json:"votes_count"`
	CreatedAt  time.Time `json:"created_at"`
}

func (PollOption) TableName() string {
	return "poll_options"
}

type UserPollVote struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_poll_votes_user_poll" json:"user_id"`
	PollID    uint      `gorm:"not null;uniqueIndex:idx_user_poll_votes_user_poll" json:"poll_id"`
	OptionID  uint      `gorm:"not null;index" json:"option_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (UserPollVote) TableName() string {
	return "user_poll_votes"
}

type CreatePollRequest struct {
	Title       string     `json:"title" binding:"required,min=5,max=200"`
	Description *string    `json:"description,omitempty" binding:"omitempty,max=500"`
	Options     []string   `json:"options" binding:"required,min=2,max=10,dive,min=1,max=100"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

type VotePollRequest struct {
	OptionID uint `json:"option_id" binding:"required"`
}

// PollWithVote pairs a poll with the caller's vote, if any
type PollWithVote struct {
	Poll
	UserVote *UserPollVote `json:"user_vote,omitempty"`
}
