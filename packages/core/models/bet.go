package models

import (
	"time"

	"gorm.io/gorm"
)

type UserBet struct {
	ID                  uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID              uint           `gorm:"not null;uniqueIndex:idx_user_bets_user_match" json:"user_id"`
	MatchID             uint           `gorm:"not null;uniqueIndex:idx_user_bets_user_match" json:"match_id"`
	HomeScorePrediction int            `gorm:"not null" json:"home_score_prediction"`
	AwayScorePrediction int            `gorm:"not null" json:"away_score_prediction"`
	PointsEarned        int            `gorm:"default:0" json:"points_earned"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Match Match `gorm:"foreignKey:MatchID;references:ID" json:"match,omitempty"`
}

func (UserBet) TableName() string {
	return "user_bets"
}

type PlaceBetRequest struct {
	MatchID             uint `json:"match_id" binding:"required"`
	HomeScorePrediction *int `json:"home_score_prediction" binding:"required,min=0,max=99"`
	AwayScorePrediction *int `json:"away_score_prediction" binding:"required,min=0,max=99"`
}
