package adaptive

import "math"

// Status is a question's mastery state for one user, derived on every read
// and never persisted.
type Status string

const (
	StatusToStart  Status = "to_start"
	StatusLearning Status = "learning"
	StatusMastered Status = "mastered"
)

// SuccessRate returns the rounded success percentage, or 0 when nothing has
// been attempted.
func SuccessRate(correct, attempts int) int {
	if attempts <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(attempts)))
}

// Classify derives a mastery status from attempt count and success rate
// using the config's threshold.
func (c Config) Classify(attemptCount, successRate int) Status {
	if attemptCount == 0 {
		return StatusToStart
	}
	if successRate >= c.MasteryThreshold {
		return StatusMastered
	}
	return StatusLearning
}

// Classify applies the default 80% mastery threshold.
func Classify(attemptCount, successRate int) Status {
	return DefaultConfig().Classify(attemptCount, successRate)
}
