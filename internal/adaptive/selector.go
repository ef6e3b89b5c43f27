package adaptive

import (
	"math/rand"

	"github.com/smartpractice/backend/internal/models"
)

// QuestionWeight returns the sampling weight for one question. Questions in
// Learning state rank highest, unseen questions next, mastered ones lowest.
// The adaptivity level sharpens the contrast: a higher level boosts weak
// areas and gap-flagged concepts more strongly.
func (c Config) QuestionWeight(status Status, inGap bool, settings models.AdaptiveSettings, difficultyLevel int) float64 {
	var w float64
	switch status {
	case StatusLearning:
		w = 3.0
	case StatusToStart:
		w = 2.0
	default:
		w = 0.5
	}

	level := settings.AdaptivityLevel
	if level < 1 {
		level = 1
	}
	if level > 10 {
		level = 10
	}

	if status != StatusMastered {
		w *= 1.0 + float64(level)/10.0
	}
	if inGap {
		w *= 1.0 + 0.4*float64(level)
	}

	return w * DifficultyMultiplier(settings.DifficultyPreference, difficultyLevel)
}

// DifficultyMultiplier shifts the effective difficulty mix of a selection.
// 'easier' favors low levels for confidence building, 'challenging' favors
// high levels, 'balanced' leaves the mix untouched.
func DifficultyMultiplier(pref models.DifficultyPreference, difficultyLevel int) float64 {
	if difficultyLevel < 1 {
		difficultyLevel = 1
	}
	if difficultyLevel > 5 {
		difficultyLevel = 5
	}

	switch pref {
	case models.PreferenceEasier:
		return [5]float64{1.8, 1.4, 1.0, 0.6, 0.3}[difficultyLevel-1]
	case models.PreferenceChallenging:
		return [5]float64{0.3, 0.6, 1.0, 1.4, 1.8}[difficultyLevel-1]
	default:
		return 1.0
	}
}

// RankAndSample picks up to cfg.BatchSize questions from the pool, weighted
// by mastery status, open gaps, and the user's settings. gapTypes holds the
// question type ids of the user's active learning gaps.
func (c Config) RankAndSample(rng *rand.Rand, pool []models.QuestionWithStats, settings models.AdaptiveSettings, gapTypes map[int64]bool) []models.QuestionWithStats {
	weights := make([]float64, len(pool))
	total := 0.0
	for i, q := range pool {
		rate := SuccessRate(q.CorrectCount, q.AttemptCount)
		status := c.Classify(q.AttemptCount, rate)
		weights[i] = c.QuestionWeight(status, gapTypes[q.Question.QuestionTypeID], settings, q.Question.DifficultyLevel)
		total += weights[i]
	}

	// Fully-mastered or otherwise degenerate pool: plain random sample
	if total <= 0 {
		return SampleUniform(rng, pool, c.BatchSize)
	}

	return SampleWeighted(rng, pool, weights, c.BatchSize)
}

// SampleUniform returns up to n distinct questions drawn uniformly at random.
func SampleUniform(rng *rand.Rand, pool []models.QuestionWithStats, n int) []models.QuestionWithStats {
	if n > len(pool) {
		n = len(pool)
	}
	if n <= 0 {
		return nil
	}
	picked := make([]models.QuestionWithStats, 0, n)
	for _, idx := range rng.Perm(len(pool))[:n] {
		picked = append(picked, pool[idx])
	}
	return picked
}

// SampleWeighted draws up to n distinct questions without replacement, each
// draw proportional to the remaining weights. Zero-weight questions are only
// reachable once all positive weight is exhausted, at which point the
// remainder is drawn uniformly.
func SampleWeighted(rng *rand.Rand, pool []models.QuestionWithStats, weights []float64, n int) []models.QuestionWithStats {
	if n > len(pool) {
		n = len(pool)
	}
	if n <= 0 {
		return nil
	}

	remaining := make([]int, len(pool))
	for i := range pool {
		remaining[i] = i
	}
	w := make([]float64, len(weights))
	copy(w, weights)

	picked := make([]models.QuestionWithStats, 0, n)
	for len(picked) < n && len(remaining) > 0 {
		total := 0.0
		for _, idx := range remaining {
			if w[idx] > 0 {
				total += w[idx]
			}
		}

		var chosen int
		if total <= 0 {
			chosen = rng.Intn(len(remaining))
		} else {
			target := rng.Float64() * total
			chosen = len(remaining) - 1
			acc := 0.0
			for i, idx := range remaining {
				if w[idx] <= 0 {
					continue
				}
				acc += w[idx]
				if target < acc {
					chosen = i
					break
				}
			}
		}

		picked = append(picked, pool[remaining[chosen]])
		remaining = append(remaining[:chosen], remaining[chosen+1:]...)
	}
	return picked
}
