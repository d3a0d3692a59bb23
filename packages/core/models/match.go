package models

import (
	"time"

	"gorm.io/gorm"
)

// Match statuses. Scores may only be set while live or finished.
const (
	MatchStatusScheduled = "scheduled"
	MatchStatusLive      = "live"
	MatchStatusFinished  = "finished"
	MatchStatusCancelled = "cancelled"
)

type Match struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	PoolID    uint           `gorm:"not null;index" json:"pool_id"`
	HomeTeam  string         `gorm:"size:50;not null" json:"home_team"`
	AwayTeam  string         `gorm:"size:50;not null" json:"away_team"`
	MatchDate time.Time      `gorm:"not null;index" json:"match_date"`
	HomeScore *int           `json:"home_score,omitempty"`
	AwayScore *int           `json:"away_score,omitempty"`
	Status    string         `gorm:"size:20;default:scheduled;index" json:"status"`
	ScoredAt  *time.Time     `json:"scored_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Pool Pool      `gorm:"foreignKey:PoolID;references:ID" json:"pool,omitempty"`
	Bets []UserBet `gorm:"foreignKey:MatchID" json:"bets,omitempty"`
}

func (Match) TableName() string {
	return "matches"
}

// HasFinalScore reports whether both scores are recorded
func (m *Match) HasFinalScore() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}

// IsScored reports whether the match already went through a scoring pass
func (m *Match) IsScored() bool {
	return m.ScoredAt != nil
}

type PaginatedMatchResponse struct {
	Data       []Match `json:"data"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}

type CreateMatchRequest struct {
	PoolID    uint      `json:"pool_id" binding:"required"`
	HomeTeam  string    `json:"home_team" binding:"required,min=2,max=50"`
	AwayTeam  string    `json:"away_team" binding:"required,min=2,max=50"`
	MatchDate time.Time `json:"match_date" binding:"required"`
}

type UpdateMatchRequest struct {
	HomeTeam  *string    `json:"home_team,omitempty" binding:"omitempty,min=2,max=50"`
	AwayTeam  *string    `json:"away_team,omitempty" binding:"omitempty,min=2,max=50"`
	MatchDate *time.Time `json:"match_date,omitempty"`
	HomeScore *int       `json:"home_score,omitempty" binding:"omitempty,min=0,max=99"`
	AwayScore *int       `json:"away_score,omitempty" binding:"omitempty,min=0,max=99"`
	Status    *string    `json:"status,omitempty" binding:"omitempty,oneof=scheduled live finished cancelled"`
}
