package adaptive

import (
	"math"

	"github.com/smartpractice/backend/internal/models"
)

// ConceptStat accumulates graded answers for one concept key (question type).
type ConceptStat struct {
	Attempts  int
	Incorrect int
}

func (s ConceptStat) IncorrectRatio() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Incorrect) / float64(s.Attempts)
}

// Severity maps a concept's incorrect ratio onto 0-100.
func (s ConceptStat) Severity() int {
	return int(math.Round(100 * s.IncorrectRatio()))
}

// AggregateByType groups graded answers by their question type id.
func AggregateByType(results []models.AttemptResult) map[int64]ConceptStat {
	stats := make(map[int64]ConceptStat)
	for _, r := range results {
		st := stats[r.QuestionTypeID]
		st.Attempts++
		if !r.IsCorrect {
			st.Incorrect++
		}
		stats[r.QuestionTypeID] = st
	}
	return stats
}

// ShouldFlag reports whether a concept's recent answers warrant an open gap.
func (c Config) ShouldFlag(s ConceptStat) bool {
	return s.Attempts >= c.GapMinAttempts && s.IncorrectRatio() >= c.GapFlagRatio
}

// ShouldResolve reports whether a concept's recent answers show enough
// improvement to close an open gap.
func (c Config) ShouldResolve(s ConceptStat) bool {
	return s.Attempts >= c.GapMinAttempts && s.IncorrectRatio() <= c.GapResolveRatio
}
