package adaptive

import (
	"math/rand"
	"testing"

	"github.com/smartpractice/backend/internal/models"
)

func makePool(n int) []models.QuestionWithStats {
	pool := make([]models.QuestionWithStats, n)
	for i := range pool {
		pool[i] = models.QuestionWithStats{
			Question: models.Question{
				ID:              int64(i + 1),
				QuestionTypeID:  1,
				DifficultyLevel: i%5 + 1,
			},
		}
	}
	return pool
}

func defaultSettings() models.AdaptiveSettings {
	return models.AdaptiveSettings{
		AdaptivityLevel:        5,
		DifficultyPreference:   models.PreferenceBalanced,
		EnableAdaptiveLearning: true,
	}
}

func TestDifficultyMultiplier(t *testing.T) {
	// Balanced is neutral at every level
	for level := 1; level <= 5; level++ {
		if got := DifficultyMultiplier(models.PreferenceBalanced, level); got != 1.0 {
			t.Errorf("balanced multiplier at level %d = %f, want 1.0", level, got)
		}
	}

	// Easier boosts low levels, challenging boosts high levels
	if DifficultyMultiplier(models.PreferenceEasier, 1) <= DifficultyMultiplier(models.PreferenceEasier, 5) {
		t.Error("easier preference should weight level 1 above level 5")
	}
	if DifficultyMultiplier(models.PreferenceChallenging, 5) <= DifficultyMultiplier(models.PreferenceChallenging, 1) {
		t.Error("challenging preference should weight level 5 above level 1")
	}

	// Out-of-range levels clamp instead of panicking
	if got := DifficultyMultiplier(models.PreferenceEasier, 0); got != 1.8 {
		t.Errorf("multiplier at clamped level 0 = %f, want 1.8", got)
	}
	if got := DifficultyMultiplier(models.PreferenceEasier, 9); got != 0.3 {
		t.Errorf("multiplier at clamped level 9 = %f, want 0.3", got)
	}
}

func TestQuestionWeightOrdering(t *testing.T) {
	cfg := DefaultConfig()
	settings := defaultSettings()

	learning := cfg.QuestionWeight(StatusLearning, false, settings, 3)
	toStart := cfg.QuestionWeight(StatusToStart, false, settings, 3)
	mastered := cfg.QuestionWeight(StatusMastered, false, settings, 3)

	if !(learning > toStart && toStart > mastered) {
		t.Errorf("weight ordering learning=%f toStart=%f mastered=%f, want learning > toStart > mastered",
			learning, toStart, mastered)
	}

	// Gap membership boosts the weight
	inGap := cfg.QuestionWeight(StatusLearning, true, settings, 3)
	if inGap <= learning {
		t.Errorf("gap weight %f should exceed non-gap weight %f", inGap, learning)
	}

	// A higher adaptivity level sharpens the gap boost
	high := settings
	high.AdaptivityLevel = 10
	if cfg.QuestionWeight(StatusLearning, true, high, 3) <= inGap {
		t.Error("higher adaptivity level should boost gap weight further")
	}
}

func TestSampleUniform(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pool := makePool(30)

	picked := SampleUniform(rng, pool, 10)
	if len(picked) != 10 {
		t.Fatalf("got %d questions, want 10", len(picked))
	}

	seen := make(map[int64]bool)
	for _, q := range picked {
		if seen[q.Question.ID] {
			t.Errorf("question %d picked twice", q.Question.ID)
		}
		seen[q.Question.ID] = true
	}

	// Requesting more than the pool returns the whole pool
	if got := SampleUniform(rng, makePool(3), 10); len(got) != 3 {
		t.Errorf("got %d questions from pool of 3, want 3", len(got))
	}

	if got := SampleUniform(rng, nil, 10); got != nil {
		t.Errorf("empty pool should return nil, got %v", got)
	}
}

func TestSampleWeightedNoDuplicates(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	pool := makePool(20)
	weights := make([]float64, len(pool))
	for i := range weights {
		weights[i] = float64(i + 1)
	}

	picked := SampleWeighted(rng, pool, weights, 20)
	if len(picked) != 20 {
		t.Fatalf("got %d questions, want all 20", len(picked))
	}
	seen := make(map[int64]bool)
	for _, q := range picked {
		if seen[q.Question.ID] {
			t.Errorf("question %d picked twice", q.Question.ID)
		}
		seen[q.Question.ID] = true
	}
}

func TestSampleWeightedBias(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	pool := makePool(2)
	// Question 1 carries 99% of the weight
	weights := []float64{99, 1}

	first := 0
	for i := 0; i < 1000; i++ {
		picked := SampleWeighted(rng, pool, weights, 1)
		if picked[0].Question.ID == 1 {
			first++
		}
	}
	if first < 900 {
		t.Errorf("heavy question picked %d/1000 times, want > 900", first)
	}
}

func TestSampleWeightedZeroWeightFallback(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	pool := makePool(5)
	// Only one question carries weight; the rest must still fill the batch
	weights := []float64{0, 0, 1, 0, 0}

	picked := SampleWeighted(rng, pool, weights, 5)
	if len(picked) != 5 {
		t.Fatalf("got %d questions, want 5", len(picked))
	}
	if picked[0].Question.ID != 3 {
		t.Errorf("first pick = question %d, want the only weighted question 3", picked[0].Question.ID)
	}
}

func TestRankAndSampleBatchSize(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	cfg := DefaultConfig()
	pool := makePool(30)

	picked := cfg.RankAndSample(rng, pool, defaultSettings(), nil)
	if len(picked) != cfg.BatchSize {
		t.Errorf("got %d questions, want batch size %d", len(picked), cfg.BatchSize)
	}
}

func TestRankAndSamplePrefersLearning(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	cfg := DefaultConfig()
	cfg.BatchSize = 1

	// One struggling question among mastered ones
	pool := makePool(10)
	for i := range pool {
		pool[i].AttemptCount = 5
		pool[i].CorrectCount = 5
	}
	pool[7].CorrectCount = 1

	hits := 0
	for i := 0; i < 500; i++ {
		picked := cfg.RankAndSample(rng, pool, defaultSettings(), nil)
		if len(picked) == 1 && picked[0].Question.ID == pool[7].Question.ID {
			hits++
		}
	}
	// Uniform sampling would give ~50/500; the learning question should be
	// drawn several times as often
	if hits < 150 {
		t.Errorf("learning question picked %d/500 times, want well above the uniform rate", hits)
	}
}
