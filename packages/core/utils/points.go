package utils

import "core/models"

// Outcome categories of a football score
const (
	OutcomeHomeWin = "home_win"
	OutcomeAwayWin = "away_win"
	OutcomeDraw    = "draw"
)

// Outcome classifies a score line into home win, away win or draw
func Outcome(homeScore, awayScore int) string {
	switch {
	case homeScore > awayScore:
		return OutcomeHomeWin
	case awayScore > homeScore:
		return OutcomeAwayWin
	default:
		return OutcomeDraw
	}
}

// CalculateBetPoints computes the points a single bet earns against the
// final score. An exact prediction always takes the exact_score award,
// even when it is a draw; a matching outcome category takes correct_draw
// for draws and correct_winner otherwise; anything else earns zero.
func CalculateBetPoints(rules models.ScoringRules, predictedHome, predictedAway, actualHome, actualAway int) int {
	if predictedHome == actualHome && predictedAway == actualAway {
		return rules.ExactScore
	}

	actual := Outcome(actualHome, actualAway)
	if Outcome(predictedHome, predictedAway) != actual {
		return 0
	}

	if actual == OutcomeDraw {
		return rules.CorrectDraw
	}
	return rules.CorrectWinner
}
