package utils

import (
	"testing"

	"core/models"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		name      string
		home, away int
		want      string
	}{
		{"home win", 2, 1, OutcomeHomeWin},
		{"away win", 0, 3, OutcomeAwayWin},
		{"goalless draw", 0, 0, OutcomeDraw},
		{"scoring draw", 2, 2, OutcomeDraw},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Outcome(tt.home, tt.away); got != tt.want {
				t.Errorf("Outcome(%d, %d) = %q, want %q", tt.home, tt.away, got, tt.want)
			}
		})
	}
}

func TestCalculateBetPoints(t *testing.T) {
	rules := models.ScoringRules{
		ExactScore:    3,
		CorrectWinner: 1,
		CorrectDraw:   1,
	}

	tests := []struct {
		name                 string
		predHome, predAway   int
		actualHome, actualAway int
		want                 int
	}{
		{"exact score", 2, 1, 2, 1, 3},
		{"exact draw takes exact award", 1, 1, 1, 1, 3},
		{"correct winner wrong score", 2, 0, 3, 1, 1},
		{"correct away winner", 0, 1, 1, 3, 1},
		{"correct draw wrong score", 0, 0, 2, 2, 1},
		{"wrong outcome", 2, 0, 0, 2, 0},
		{"predicted draw but home won", 1, 1, 2, 1, 0},
		{"predicted winner but draw", 2, 1, 1, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateBetPoints(rules, tt.predHome, tt.predAway, tt.actualHome, tt.actualAway)
			if got != tt.want {
				t.Errorf("CalculateBetPoints(%d-%d vs %d-%d) = %d, want %d",
					tt.predHome, tt.predAway, tt.actualHome, tt.actualAway, got, tt.want)
			}
		})
	}
}

func TestCalculateBetPointsCustomRules(t *testing.T) {
	rules := models.ScoringRules{
		ExactScore:    10,
		CorrectWinner: 5,
		CorrectDraw:   7,
	}

	if got := CalculateBetPoints(rules, 1, 0, 1, 0); got != 10 {
		t.Errorf("exact score = %d, want 10", got)
	}
	if got := CalculateBetPoints(rules, 1, 0, 2, 0); got != 5 {
		t.Errorf("correct winner = %d, want 5", got)
	}
	if got := CalculateBetPoints(rules, 0, 0, 1, 1); got != 7 {
		t.Errorf("correct draw = %d, want 7", got)
	}
}
