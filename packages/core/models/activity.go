package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Activity types surfaced in the dashboard feed
const (
	ActivityBetPlaced       = "bet_placed"
	ActivityPoolJoined      = "pool_joined"
	ActivityPollVoted       = "poll_voted"
	ActivityRankingImproved = "ranking_improved"
)

// Notification types
const (
	NotificationBetReminder   = "bet_reminder"
	NotificationResultUpdate  = "result_update"
	NotificationPoolInvite    = "pool_invite"
	NotificationRankingChange = "ranking_change"
)

// Payload holds small free-form JSON attached to feed entries
type Payload map[string]interface{}

func (p Payload) Value() (driver.Value, error) {
	if p == nil {
		return json.Marshal(Payload{})
	}
	return json.Marshal(p)
}

func (p *Payload) Scan(value interface{}) error {
	if value == nil {
		*p = Payload{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return errors.New("unsupported source type for payload")
	}
}

type Activity struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Type        string    `gorm:"size:30;not null;index" json:"type"`
	Description string    `gorm:"size:255;not null" json:"description"`
	Data        Payload   `gorm:"type:jsonb" json:"data,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Activity) TableName() string {
	return "activities"
}

type Notification struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Title     string    `gorm:"size:100;not null" json:"title"`
	Message   string    `gorm:"size:500;not null" json:"message"`
	Type      string    `gorm:"size:30;not null" json:"type"`
	Read      bool      `gorm:"default:false;index" json:"read"`
	Data      Payload   `gorm:"type:jsonb" json:"data,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
