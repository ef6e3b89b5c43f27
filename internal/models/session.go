package models

import "time"

type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
)

type TestSession struct {
	ID             int64         `json:"id"`
	UserID         int64         `json:"user_id"`
	SubtopicID     int64         `json:"subtopic_id"`
	Status         SessionStatus `json:"status"`
	StartTime      time.Time     `json:"start_time"`
	EndTime        *time.Time    `json:"end_time,omitempty"`
	TotalQuestions int           `json:"total_questions"`
	CorrectAnswers int           `json:"correct_answers"`
	Score          int           `json:"score"`
	TimeSpent      int           `json:"time_spent"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

type Attempt struct {
	ID         int64     `json:"id"`
	SessionID  int64     `json:"session_id"`
	QuestionID int64     `json:"question_id"`
	UserAnswer string    `json:"user_answer"`
	IsCorrect  bool      `json:"is_correct"`
	TimeSpent  int       `json:"time_spent"`
	CreatedAt  time.Time `json:"created_at"`
}

// ── API Request/Response Types ────────────────────────────

type InitSessionRequest struct {
	SubtopicID int64 `json:"subtopic_id"`
}

type RecordAttemptRequest struct {
	QuestionID int64  `json:"question_id"`
	SubtopicID int64  `json:"subtopic_id"`
	UserAnswer string `json:"user_answer"`
	TimeSpent  int    `json:"time_spent"`
	SessionID  *int64 `json:"session_id,omitempty"`
}

type RecordAttemptResponse struct {
	SessionID        int64 `json:"session_id"`
	Correct          bool  `json:"correct"`
	TotalQuestions   int   `json:"total_questions"`
	CorrectAnswers   int   `json:"correct_answers"`
	Score            int   `json:"score"`
	AlreadyAttempted bool  `json:"already_attempted"`
}

type CompleteSessionResponse struct {
	SessionID      int64 `json:"session_id"`
	TotalQuestions int   `json:"total_questions"`
	CorrectAnswers int   `json:"correct_answers"`
	Score          int   `json:"score"`
	TimeSpent      int   `json:"time_spent"`
}
