package models

// Stats summarizes platform-wide activity for the landing/dashboard
type Stats struct {
	TotalPools        int64 `json:"total_pools"`
	ActivePools       int64 `json:"active_pools"`
	TotalParticipants int64 `json:"total_participants"`
	TotalBets         int64 `json:"total_bets"`
	BetsLast7Days     int64 `json:"bets_last_7_days"`
	BetsPrevious7Days int64 `json:"bets_previous_7_days"`
}

// UserStats summarizes one user's betting record
type UserStats struct {
	UserID       uint    `json:"user_id"`
	TotalPoints  int     `json:"total_points"`
	TotalBets    int     `json:"total_bets"`
	CorrectBets  int     `json:"correct_bets"`
	AccuracyRate float64 `json:"accuracy_rate"`
	PoolsJoined  int64   `json:"pools_joined"`
	PoolsCreated int64   `json:"pools_created"`
}
