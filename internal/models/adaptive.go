package models

import "time"

type DifficultyPreference string

const (
	PreferenceEasier      DifficultyPreference = "easier"
	PreferenceBalanced    DifficultyPreference = "balanced"
	PreferenceChallenging DifficultyPreference = "challenging"
)

var ValidDifficultyPreferences = map[DifficultyPreference]bool{
	PreferenceEasier:      true,
	PreferenceBalanced:    true,
	PreferenceChallenging: true,
}

type AdaptiveSettings struct {
	UserID                 int64                `json:"user_id"`
	AdaptivityLevel        int                  `json:"adaptivity_level"`
	DifficultyPreference   DifficultyPreference `json:"difficulty_preference"`
	EnableAdaptiveLearning bool                 `json:"enable_adaptive_learning"`
	UpdatedAt              time.Time            `json:"updated_at"`
}

type UpdateSettingsRequest struct {
	AdaptivityLevel        *int    `json:"adaptivity_level,omitempty"`
	DifficultyPreference   *string `json:"difficulty_preference,omitempty"`
	EnableAdaptiveLearning *bool   `json:"enable_adaptive_learning,omitempty"`
}

type LearningGap struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	SubtopicID     int64      `json:"subtopic_id"`
	QuestionTypeID int64      `json:"question_type_id"`
	Severity       int        `json:"severity"`
	DetectedAt     time.Time  `json:"detected_at"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
}

// QuestionWithStats pairs a question with the user's all-time attempt counts
// against it. The selector works entirely from this shape.
type QuestionWithStats struct {
	Question     Question `json:"question"`
	AttemptCount int      `json:"attempt_count"`
	CorrectCount int      `json:"correct_count"`
}

// AttemptResult is one graded answer fed to the gap detector.
type AttemptResult struct {
	QuestionID     int64 `json:"question_id"`
	QuestionTypeID int64 `json:"question_type_id"`
	IsCorrect      bool  `json:"is_correct"`
}

// ── API Request/Response Types ────────────────────────────

type AdaptiveQuestionsResponse struct {
	Questions []ServedQuestion `json:"questions"`
	Adaptive  bool             `json:"adaptive"`
	Total     int              `json:"total"`
}

type GapListResponse struct {
	Gaps []LearningGap `json:"gaps"`
}
