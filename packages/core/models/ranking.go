package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Ranking scopes
const (
	RankingScopeGlobal = "global"
	RankingScopePool   = "pool"
)

// RankingEntry is one row of a computed ranking. Rankings are derived
// views, never stored authoritatively; only snapshots persist.
type RankingEntry struct {
	UserID       uint    `json:"user_id"`
	Username     string  `json:"username"`
	Points       int     `json:"points"`
	TotalBets    int     `json:"total_bets"`
	CorrectBets  int     `json:"correct_bets"`
	AccuracyRate float64 `json:"accuracy_rate"`
	Rank         int     `json:"rank"`
	RankDelta    int     `json:"rank_delta"` // signed change vs previous snapshot
}

// SnapshotEntries is the persisted (user, rank) list of one snapshot
type SnapshotEntries []SnapshotEntry

type SnapshotEntry struct {
	UserID uint `json:"user_id"`
	Rank   int  `json:"rank"`
	Points int  `json:"points"`
}

func (se SnapshotEntries) Value() (driver.Value, error) {
	if se == nil {
		return json.Marshal(SnapshotEntries{})
	}
	return json.Marshal(se)
}

func (se *SnapshotEntries) Scan(value interface{}) error {
	if value == nil {
		*se = SnapshotEntries{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, se)
	case string:
		return json.Unmarshal([]byte(v), se)
	default:
		return errors.New("unsupported source type for snapshot entries")
	}
}

// RankingSnapshot retains the previous ranking of a scope so that a
// recomputation can report signed rank deltas. Exactly one snapshot is
// kept per scope; older ones are pruned on rotation.
type RankingSnapshot struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Scope     string          `gorm:"size:10;not null;index:idx_ranking_snapshots_scope" json:"scope"`
	PoolID    *uint           `gorm:"index:idx_ranking_snapshots_scope" json:"pool_id,omitempty"`
	Entries   SnapshotEntries `gorm:"type:jsonb" json:"entries"`
	CreatedAt time.Time       `json:"created_at"`
}

func (RankingSnapshot) TableName() string {
	return "ranking_snapshots"
}
