package models

type FeedbackResponse struct {
	SessionID int64  `json:"session_id"`
	Feedback  string `json:"feedback"`
	Model     string `json:"model"`
}
