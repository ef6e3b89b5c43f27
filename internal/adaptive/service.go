package adaptive

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/smartpractice/backend/internal/models"
	"github.com/smartpractice/backend/internal/questions"
)

type Service struct {
	store     *Store
	questions *questions.Store
}

func NewService(store *Store, qstore *questions.Store) *Service {
	return &Service{store: store, questions: qstore}
}

func newRNG() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// configFor looks up the subtopic's subject to pick thresholds. Any lookup
// failure falls back to the defaults rather than blocking selection.
func (s *Service) configFor(subtopicID int64) Config {
	subject, err := s.questions.GetSubtopicSubject(subtopicID)
	if err != nil {
		log.Printf("WARN: adaptive config lookup for subtopic %d: %v", subtopicID, err)
		return DefaultConfig()
	}
	return ConfigForSubject(subject)
}

// ── Settings ────────────────────────────────────────────

func (s *Service) GetSettings(userID int64) (*models.AdaptiveSettings, error) {
	return s.store.GetOrCreateSettings(userID)
}

func (s *Service) UpdateSettings(userID int64, req models.UpdateSettingsRequest) (*models.AdaptiveSettings, error) {
	if err := ValidateSettingsUpdate(req); err != nil {
		return nil, err
	}
	return s.store.UpdateSettings(userID, req)
}

// ValidateSettingsUpdate checks the updatable fields against their allowed
// ranges. Nil fields are untouched and always pass.
func ValidateSettingsUpdate(req models.UpdateSettingsRequest) error {
	if req.AdaptivityLevel != nil && (*req.AdaptivityLevel < 1 || *req.AdaptivityLevel > 10) {
		return fmt.Errorf("adaptivity_level must be between 1 and 10")
	}
	if req.DifficultyPreference != nil {
		if !models.ValidDifficultyPreferences[models.DifficultyPreference(*req.DifficultyPreference)] {
			return fmt.Errorf("difficulty_preference must be 'easier', 'balanced', or 'challenging'")
		}
	}
	return nil
}

// ── Question Selection ──────────────────────────────────

// GetAdaptiveQuestions picks the next batch of questions for a subtopic.
// Personalization is strictly best-effort: settings, gap, or provenance
// failures degrade to uniform random sampling instead of failing the
// request. The second return value reports whether adaptive ranking was
// actually applied.
func (s *Service) GetAdaptiveQuestions(userID, subtopicID int64, sessionID *int64) ([]models.ServedQuestion, bool, error) {
	pool, err := s.questions.GetPoolWithStats(userID, subtopicID)
	if err != nil {
		return nil, false, fmt.Errorf("load question pool: %w", err)
	}
	if len(pool) == 0 {
		return []models.ServedQuestion{}, false, nil
	}

	rng := newRNG()
	cfg := s.configFor(subtopicID)

	settings, err := s.store.GetOrCreateSettings(userID)
	if err != nil {
		log.Printf("WARN: adaptive settings for user %d: %v — serving random batch", userID, err)
		return serve(SampleUniform(rng, pool, cfg.BatchSize)), false, nil
	}

	if !settings.EnableAdaptiveLearning {
		return serve(SampleUniform(rng, pool, cfg.BatchSize)), false, nil
	}

	gapTypes := make(map[int64]bool)
	gaps, err := s.store.ListActiveGaps(userID, subtopicID)
	if err != nil {
		log.Printf("WARN: active gaps for user %d subtopic %d: %v — ranking without gap data", userID, subtopicID, err)
	} else {
		for _, g := range gaps {
			gapTypes[g.QuestionTypeID] = true
		}
	}

	picked := cfg.RankAndSample(rng, pool, *settings, gapTypes)
	if len(picked) == 0 {
		picked = SampleUniform(rng, pool, cfg.BatchSize)
	}

	entries := make([]SelectionEntry, len(picked))
	for i, q := range picked {
		entries[i] = SelectionEntry{
			QuestionID: q.Question.ID,
			Reason:     selectionReason(cfg, q, gapTypes),
			Position:   i,
		}
	}
	if err := s.store.LogSelections(userID, sessionID, entries); err != nil {
		log.Printf("WARN: selection provenance for user %d: %v", userID, err)
	}

	return serve(picked), true, nil
}

func selectionReason(cfg Config, q models.QuestionWithStats, gapTypes map[int64]bool) string {
	if gapTypes[q.Question.QuestionTypeID] {
		return "learning_gap"
	}
	rate := SuccessRate(q.CorrectCount, q.AttemptCount)
	return string(cfg.Classify(q.AttemptCount, rate))
}

func serve(picked []models.QuestionWithStats) []models.ServedQuestion {
	served := make([]models.ServedQuestion, 0, len(picked))
	for _, q := range picked {
		served = append(served, q.Question.ToServed())
	}
	return served
}

// ── Learning Gaps ───────────────────────────────────────

// UpdateGaps re-evaluates a user's gaps from a batch of graded answers.
// Best-effort by contract: every persistence failure is logged and
// swallowed so the caller's flow is never interrupted.
func (s *Service) UpdateGaps(userID, subtopicID int64, results []models.AttemptResult) {
	if len(results) == 0 {
		return
	}

	cfg := s.configFor(subtopicID)

	for typeID, stat := range AggregateByType(results) {
		switch {
		case cfg.ShouldFlag(stat):
			if err := s.store.UpsertOpenGap(userID, subtopicID, typeID, stat.Severity()); err != nil {
				log.Printf("WARN: flag gap user=%d subtopic=%d type=%d: %v", userID, subtopicID, typeID, err)
			}
		case cfg.ShouldResolve(stat):
			if err := s.store.ResolveOpenGap(userID, subtopicID, typeID); err != nil {
				log.Printf("WARN: resolve gap user=%d subtopic=%d type=%d: %v", userID, subtopicID, typeID, err)
			}
		}
	}
}

func (s *Service) ListActiveGaps(userID, subtopicID int64) ([]models.LearningGap, error) {
	return s.store.ListActiveGaps(userID, subtopicID)
}
