package practice

import (
	"math"
	"time"
)

// Score converts session counts to a 0-100 percentage, rounded half up.
// An empty session scores zero.
func Score(totalQuestions, correctAnswers int) int {
	if totalQuestions <= 0 {
		return 0
	}
	return ClampPercent(int(math.Round(float64(correctAnswers) / float64(totalQuestions) * 100)))
}

// MasteryLevel is the share of a scope's active questions the user has
// answered correctly at least once, as a 0-100 percentage.
func MasteryLevel(questionsCorrect, activeQuestions int) int {
	if activeQuestions <= 0 {
		return 0
	}
	return ClampPercent(int(math.Round(float64(questionsCorrect) / float64(activeQuestions) * 100)))
}

// SessionDuration is the wall-clock length of a session in whole seconds.
// Clamped at zero in case clock adjustments put end before start.
func SessionDuration(start, end time.Time) int {
	d := int(end.Sub(start).Seconds())
	if d < 0 {
		return 0
	}
	return d
}

func ClampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
