package report

import (
	"fmt"
	"math"
)

const (
	BaselineScore = 10.0
	MinScore      = 1.0
	MaxScore      = 10.0

	NoIssuesSummary = "Excellent quality - no issues detected"
)

type Grade string

const (
	GradeGood Grade = "good"
	GradeFair Grade = "fair"
	GradePoor Grade = "poor"
)

// FinalizeScore clamps a running score into [MinScore, MaxScore] and rounds
// it half up to one decimal.
func FinalizeScore(score float64) float64 {
	if score < MinScore {
		score = MinScore
	}
	if score > MaxScore {
		score = MaxScore
	}
	return RoundScore(score)
}

// RoundScore rounds half up at the tenths digit.
func RoundScore(score float64) float64 {
	return math.Floor(score*10+0.5) / 10
}

// Summarize derives the one-line summary for a list of issues. Categories
// are counted by exact value.
func Summarize(issues []Issue) string {
	if len(issues) == 0 {
		return NoIssuesSummary
	}

	categories := make(map[Category]struct{}, len(issues))
	for _, issue := range issues {
		categories[issue.Category] = struct{}{}
	}

	noun := "issue"
	if len(issues) > 1 {
		noun = "issues"
	}
	return fmt.Sprintf("%d %s detected across %d categories", len(issues), noun, len(categories))
}

// GradeScore maps a score to good (>= 8), fair (>= 6) or poor.
func GradeScore(score float64) Grade {
	switch {
	case score >= 8:
		return GradeGood
	case score >= 6:
		return GradeFair
	default:
		return GradePoor
	}
}
