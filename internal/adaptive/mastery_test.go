package adaptive

import "testing"

func TestSuccessRate(t *testing.T) {
	tests := []struct {
		correct  int
		attempts int
		want     int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{5, 5, 100},
		{4, 5, 80},
		{1, 3, 33},
		{2, 3, 67},
		{7, 10, 70},
	}

	for _, tt := range tests {
		got := SuccessRate(tt.correct, tt.attempts)
		if got != tt.want {
			t.Errorf("SuccessRate(%d, %d) = %d, want %d", tt.correct, tt.attempts, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		attempts int
		rate     int
		want     Status
	}{
		{0, 0, StatusToStart},
		{1, 100, StatusMastered},
		{5, 80, StatusMastered},
		{5, 79, StatusLearning},
		{5, 0, StatusLearning},
		{10, 50, StatusLearning},
	}

	for _, tt := range tests {
		got := Classify(tt.attempts, tt.rate)
		if got != tt.want {
			t.Errorf("Classify(%d, %d) = %q, want %q", tt.attempts, tt.rate, got, tt.want)
		}
	}
}

func TestClassifyCustomThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MasteryThreshold = 90

	if got := cfg.Classify(5, 85); got != StatusLearning {
		t.Errorf("Classify(5, 85) at threshold 90 = %q, want learning", got)
	}
	if got := cfg.Classify(5, 90); got != StatusMastered {
		t.Errorf("Classify(5, 90) at threshold 90 = %q, want mastered", got)
	}
}
