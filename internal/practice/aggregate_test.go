package practice

import (
	"testing"
	"time"
)

func TestScore(t *testing.T) {
	tests := []struct {
		total   int
		correct int
		want    int
	}{
		{0, 0, 0},
		{10, 0, 0},
		{10, 7, 70},
		{10, 10, 100},
		{3, 1, 33},
		{3, 2, 67},
		{6, 5, 83},
	}

	for _, tt := range tests {
		got := Score(tt.total, tt.correct)
		if got != tt.want {
			t.Errorf("Score(%d, %d) = %d, want %d", tt.total, tt.correct, got, tt.want)
		}
	}
}

func TestMasteryLevel(t *testing.T) {
	tests := []struct {
		correct int
		active  int
		want    int
	}{
		{0, 0, 0},
		{0, 20, 0},
		{10, 20, 50},
		{20, 20, 100},
		// More correct than active (questions deactivated after attempts): clamp
		{25, 20, 100},
	}

	for _, tt := range tests {
		got := MasteryLevel(tt.correct, tt.active)
		if got != tt.want {
			t.Errorf("MasteryLevel(%d, %d) = %d, want %d", tt.correct, tt.active, got, tt.want)
		}
	}
}

func TestSessionDuration(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	// A session left open for half an hour counts the full wall-clock
	// interval, regardless of how little time the answers themselves took
	if got := SessionDuration(start, start.Add(30*time.Minute)); got != 1800 {
		t.Errorf("SessionDuration(30m) = %d, want 1800", got)
	}
	if got := SessionDuration(start, start.Add(90*time.Second)); got != 90 {
		t.Errorf("SessionDuration(90s) = %d, want 90", got)
	}
	if got := SessionDuration(start, start); got != 0 {
		t.Errorf("SessionDuration(0) = %d, want 0", got)
	}
	// End before start clamps instead of going negative
	if got := SessionDuration(start, start.Add(-time.Minute)); got != 0 {
		t.Errorf("SessionDuration(-1m) = %d, want 0", got)
	}
}

func TestClampPercent(t *testing.T) {
	if got := ClampPercent(-5); got != 0 {
		t.Errorf("ClampPercent(-5) = %d, want 0", got)
	}
	if got := ClampPercent(105); got != 100 {
		t.Errorf("ClampPercent(105) = %d, want 100", got)
	}
	if got := ClampPercent(42); got != 42 {
		t.Errorf("ClampPercent(42) = %d, want 42", got)
	}
}
