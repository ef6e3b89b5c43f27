package adaptive

import "github.com/smartpractice/backend/internal/models"

// Config holds the tunable thresholds of the adaptive engine. All subjects
// share one code path; differences between them live here.
type Config struct {
	// MasteryThreshold is the success-rate percentage at or above which an
	// attempted question counts as mastered.
	MasteryThreshold int

	// GapFlagRatio is the incorrect ratio at or above which a concept key
	// is flagged as a learning gap.
	GapFlagRatio float64

	// GapResolveRatio is the incorrect ratio at or below which an open gap
	// is considered closed.
	GapResolveRatio float64

	// GapMinAttempts is the minimum number of graded answers for a concept
	// key before it can be flagged or resolved.
	GapMinAttempts int

	// BatchSize bounds how many questions a selection returns.
	BatchSize int
}

func DefaultConfig() Config {
	return Config{
		MasteryThreshold: 80,
		GapFlagRatio:     0.5,
		GapResolveRatio:  0.25,
		GapMinAttempts:   2,
		BatchSize:        10,
	}
}

func ConfigForSubject(subject models.Subject) Config {
	cfg := DefaultConfig()
	switch subject {
	case models.SubjectMathematics:
		// Multi-step problems: require more evidence before flagging a gap
		cfg.GapMinAttempts = 3
	}
	return cfg
}
