package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Pool statuses. Transitions are forward-only:
// draft -> open -> active -> finished
const (
	PoolStatusDraft    = "draft"
	PoolStatusOpen     = "open"
	PoolStatusActive   = "active"
	PoolStatusFinished = "finished"
)

// ScoringRules define how many points a bet earns per outcome
type ScoringRules struct {
	ExactScore    int `json:"exact_score" binding:"min=0,max=10"`
	CorrectWinner int `json:"correct_winner" binding:"min=0,max=10"`
	CorrectDraw   int `json:"correct_draw" binding:"min=0,max=10"`
}

// DefaultScoringRules is the standard preset (3/1/1)
func DefaultScoringRules() ScoringRules {
	return ScoringRules{ExactScore: 3, CorrectWinner: 1, CorrectDraw: 1}
}

// Value implements driver.Valuer so GORM stores the rules as a JSON column
func (sr ScoringRules) Value() (driver.Value, error) {
	return json.Marshal(sr)
}

// Scan implements sql.Scanner. Postgres hands us []byte, sqlite a string.
func (sr *ScoringRules) Scan(value interface{}) error {
	if value == nil {
		*sr = DefaultScoringRules()
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, sr)
	case string:
		return json.Unmarshal([]byte(v), sr)
	default:
		return errors.New("unsupported source type for scoring rules")
	}
}

type Pool struct {
	ID               uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string         `gorm:"size:100;not null" json:"name"`
	Description      *string        `gorm:"size:500" json:"description,omitempty"`
	CreatorID        uint           `gorm:"not null;index" json:"creator_id"`
	Status           string         `gorm:"size:20;default:draft;index" json:"status"`
	InviteCode       string         `gorm:"size:8;uniqueIndex;not null" json:"invite_code"`
	MaxParticipants  *int           `json:"max_participants,omitempty"`
	PrizeAmount      *float64       `json:"prize_amount,omitempty"`
	ScoringRules     ScoringRules   `gorm:"type:jsonb" json:"scoring_rules"`
	ParticipantCount int            `gorm:"default:0" json:"participant_count"`
	StartDate        *time.Time     `json:"start_date,omitempty"`
	EndDate          *time.Time     `json:"end_date,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Participants []PoolParticipant `gorm:"foreignKey:PoolID" json:"participants,omitempty"`
	Matches      []Match           `gorm:"foreignKey:PoolID" json:"matches,omitempty"`
}

func (Pool) TableName() string {
	return "pools"
}

// IsJoinable reports whether the pool still accepts new participants
func (p *Pool) IsJoinable() bool {
	return p.Status == PoolStatusDraft || p.Status == PoolStatusOpen
}

type PoolParticipant struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PoolID   uint      `gorm:"not null;uniqueIndex:idx_pool_participants_pool_user" json:"pool_id"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_pool_participants_pool_user" json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}

func (PoolParticipant) TableName() string {
	return "pool_participants"
}

type PaginatedPoolResponse struct {
	Data       []Pool `json:"data"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	TotalPages int    `json:"totalPages"`
}

type CreatePoolRequest struct {
	Name            string        `json:"name" binding:"required,min=3,max=100"`
	Description     *string       `json:"description,omitempty" binding:"omitempty,max=500"`
	MaxParticipants *int          `json:"max_participants,omitempty" binding:"omitempty,min=2,max=1000"`
	PrizeAmount     *float64      `json:"prize_amount,omitempty" binding:"omitempty,min=0"`
	ScoringRules    *ScoringRules `json:"scoring_rules,omitempty"`
	StartDate       *time.Time    `json:"start_date,omitempty"`
	EndDate         *time.Time    `json:"end_date,omitempty"`
}

type UpdatePoolRequest struct {
	Name            *string       `json:"name,omitempty" binding:"omitempty,min=3,max=100"`
	Description     *string       `json:"description,omitempty" binding:"omitempty,max=500"`
	MaxParticipants *int          `json:"max_participants,omitempty" binding:"omitempty,min=2,max=1000"`
	PrizeAmount     *float64      `json:"prize_amount,omitempty" binding:"omitempty,min=0"`
	ScoringRules    *ScoringRules `json:"scoring_rules,omitempty"`
	StartDate       *time.Time    `json:"start_date,omitempty"`
	EndDate         *time.Time    `json:"end_date,omitempty"`
}

type JoinPoolRequest struct {
	InviteCode string `json:"invite_code" binding:"required,len=8"`
}
