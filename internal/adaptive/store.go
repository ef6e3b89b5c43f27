package adaptive

import (
	"database/sql"
	"fmt"

	"github.com/smartpractice/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Adaptive Settings ───────────────────────────────────

func (s *Store) GetOrCreateSettings(userID int64) (*models.AdaptiveSettings, error) {
	_, err := s.db.Exec(
		`INSERT INTO adaptive_settings (user_id)
		 VALUES ($1)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert settings: %w", err)
	}

	var settings models.AdaptiveSettings
	err = s.db.QueryRow(
		`SELECT user_id, adaptivity_level, difficulty_preference, enable_adaptive_learning, updated_at
		 FROM adaptive_settings WHERE user_id = $1`,
		userID,
	).Scan(&settings.UserID, &settings.AdaptivityLevel, &settings.DifficultyPreference,
		&settings.EnableAdaptiveLearning, &settings.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &settings, nil
}

// UpdateSettings applies a partial update; nil fields keep their stored value.
func (s *Store) UpdateSettings(userID int64, req models.UpdateSettingsRequest) (*models.AdaptiveSettings, error) {
	if _, err := s.GetOrCreateSettings(userID); err != nil {
		return nil, err
	}

	var settings models.AdaptiveSettings
	err := s.db.QueryRow(
		`UPDATE adaptive_settings
		 SET adaptivity_level = COALESCE($1, adaptivity_level),
		     difficulty_preference = COALESCE($2, difficulty_preference),
		     enable_adaptive_learning = COALESCE($3, enable_adaptive_learning),
		     updated_at = NOW()
		 WHERE user_id = $4
		 RETURNING user_id, adaptivity_level, difficulty_preference, enable_adaptive_learning, updated_at`,
		req.AdaptivityLevel, req.DifficultyPreference, req.EnableAdaptiveLearning, userID,
	).Scan(&settings.UserID, &settings.AdaptivityLevel, &settings.DifficultyPreference,
		&settings.EnableAdaptiveLearning, &settings.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}
	return &settings, nil
}

// ── Learning Gaps ───────────────────────────────────────

func (s *Store) ListActiveGaps(userID, subtopicID int64) ([]models.LearningGap, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, subtopic_id, question_type_id, severity, detected_at, resolved_at
		 FROM learning_gaps
		 WHERE user_id = $1 AND subtopic_id = $2 AND resolved_at IS NULL
		 ORDER BY severity DESC, detected_at`,
		userID, subtopicID,
	)
	if err != nil {
		return nil, fmt.Errorf("list active gaps: %w", err)
	}
	defer rows.Close()

	var gaps []models.LearningGap
	for rows.Next() {
		var g models.LearningGap
		if err := rows.Scan(&g.ID, &g.UserID, &g.SubtopicID, &g.QuestionTypeID,
			&g.Severity, &g.DetectedAt, &g.ResolvedAt); err != nil {
			return nil, fmt.Errorf("scan gap: %w", err)
		}
		gaps = append(gaps, g)
	}
	return gaps, rows.Err()
}

// UpsertOpenGap opens a gap for (user, subtopic, concept key), or refreshes
// the severity of the already-open one. The partial unique index guarantees
// at most one open gap per key.
func (s *Store) UpsertOpenGap(userID, subtopicID, questionTypeID int64, severity int) error {
	_, err := s.db.Exec(
		`INSERT INTO learning_gaps (user_id, subtopic_id, question_type_id, severity)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, subtopic_id, question_type_id) WHERE resolved_at IS NULL
		 DO UPDATE SET severity = EXCLUDED.severity`,
		userID, subtopicID, questionTypeID, severity,
	)
	return err
}

func (s *Store) ResolveOpenGap(userID, subtopicID, questionTypeID int64) error {
	_, err := s.db.Exec(
		`UPDATE learning_gaps SET resolved_at = NOW()
		 WHERE user_id = $1 AND subtopic_id = $2 AND question_type_id = $3 AND resolved_at IS NULL`,
		userID, subtopicID, questionTypeID,
	)
	return err
}

// ── Selection Provenance ────────────────────────────────

type SelectionEntry struct {
	QuestionID int64
	Reason     string
	Position   int
}

func (s *Store) LogSelections(userID int64, sessionID *int64, entries []SelectionEntry) error {
	for _, e := range entries {
		_, err := s.db.Exec(
			`INSERT INTO selection_log (user_id, session_id, question_id, reason, position)
			 VALUES ($1, $2, $3, $4, $5)`,
			userID, sessionID, e.QuestionID, e.Reason, e.Position,
		)
		if err != nil {
			return fmt.Errorf("log selection: %w", err)
		}
	}
	return nil
}
