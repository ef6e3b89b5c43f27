package adaptive

import (
	"testing"

	"github.com/smartpractice/backend/internal/models"
)

func TestAggregateByType(t *testing.T) {
	results := []models.AttemptResult{
		{QuestionID: 1, QuestionTypeID: 10, IsCorrect: true},
		{QuestionID: 2, QuestionTypeID: 10, IsCorrect: false},
		{QuestionID: 3, QuestionTypeID: 10, IsCorrect: false},
		{QuestionID: 4, QuestionTypeID: 20, IsCorrect: true},
	}

	stats := AggregateByType(results)
	if len(stats) != 2 {
		t.Fatalf("got %d concept keys, want 2", len(stats))
	}

	if st := stats[10]; st.Attempts != 3 || st.Incorrect != 2 {
		t.Errorf("type 10 stats = %+v, want 3 attempts / 2 incorrect", st)
	}
	if st := stats[20]; st.Attempts != 1 || st.Incorrect != 0 {
		t.Errorf("type 20 stats = %+v, want 1 attempt / 0 incorrect", st)
	}
}

func TestShouldFlag(t *testing.T) {
	cfg := DefaultConfig() // min attempts 2, flag at >= 0.5 incorrect

	tests := []struct {
		name string
		stat ConceptStat
		want bool
	}{
		{"one wrong answer is not enough evidence", ConceptStat{Attempts: 1, Incorrect: 1}, false},
		{"half wrong at minimum attempts", ConceptStat{Attempts: 2, Incorrect: 1}, true},
		{"mostly right", ConceptStat{Attempts: 4, Incorrect: 1}, false},
		{"mostly wrong", ConceptStat{Attempts: 4, Incorrect: 3}, true},
		{"no attempts", ConceptStat{}, false},
	}

	for _, tt := range tests {
		if got := cfg.ShouldFlag(tt.stat); got != tt.want {
			t.Errorf("%s: ShouldFlag(%+v) = %v, want %v", tt.name, tt.stat, got, tt.want)
		}
	}
}

func TestShouldResolve(t *testing.T) {
	cfg := DefaultConfig() // resolve at <= 0.25 incorrect

	tests := []struct {
		name string
		stat ConceptStat
		want bool
	}{
		{"perfect run", ConceptStat{Attempts: 4, Incorrect: 0}, true},
		{"one miss in four", ConceptStat{Attempts: 4, Incorrect: 1}, true},
		{"two misses in four", ConceptStat{Attempts: 4, Incorrect: 2}, false},
		{"too few attempts", ConceptStat{Attempts: 1, Incorrect: 0}, false},
	}

	for _, tt := range tests {
		if got := cfg.ShouldResolve(tt.stat); got != tt.want {
			t.Errorf("%s: ShouldResolve(%+v) = %v, want %v", tt.name, tt.stat, got, tt.want)
		}
	}
}

func TestSeverity(t *testing.T) {
	tests := []struct {
		stat ConceptStat
		want int
	}{
		{ConceptStat{Attempts: 0, Incorrect: 0}, 0},
		{ConceptStat{Attempts: 4, Incorrect: 4}, 100},
		{ConceptStat{Attempts: 4, Incorrect: 2}, 50},
		{ConceptStat{Attempts: 3, Incorrect: 1}, 33},
	}

	for _, tt := range tests {
		if got := tt.stat.Severity(); got != tt.want {
			t.Errorf("Severity(%+v) = %d, want %d", tt.stat, got, tt.want)
		}
	}
}

func TestMathematicsRequiresMoreEvidence(t *testing.T) {
	mathCfg := ConfigForSubject(models.SubjectMathematics)
	vocabCfg := ConfigForSubject(models.SubjectVocabulary)

	// Two wrong answers flag a vocabulary gap but not a mathematics one
	stat := ConceptStat{Attempts: 2, Incorrect: 2}
	if !vocabCfg.ShouldFlag(stat) {
		t.Error("vocabulary config should flag 2/2 incorrect")
	}
	if mathCfg.ShouldFlag(stat) {
		t.Error("mathematics config should not flag at only 2 attempts")
	}
	if !mathCfg.ShouldFlag(ConceptStat{Attempts: 3, Incorrect: 3}) {
		t.Error("mathematics config should flag 3/3 incorrect")
	}
}
