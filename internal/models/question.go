package models

import (
	"fmt"
	"time"
)

type Subject string

const (
	SubjectVocabulary   Subject = "vocabulary"
	SubjectMathematics  Subject = "mathematics"
	SubjectQuantitative Subject = "quantitative"
)

var ValidSubjects = map[Subject]bool{
	SubjectVocabulary:   true,
	SubjectMathematics:  true,
	SubjectQuantitative: true,
}

type Topic struct {
	ID          int64     `json:"id"`
	Subject     Subject   `json:"subject"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

type Subtopic struct {
	ID          int64     `json:"id"`
	TopicID     int64     `json:"topic_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

type QuestionType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Option is one entry in a question's ordered answer option set.
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// OptionSet is validated once when a question is written; readers trust the
// stored form and never re-coerce it.
type OptionSet []Option

func (o OptionSet) Validate() error {
	if len(o) < 2 {
		return fmt.Errorf("at least 2 options required, got %d", len(o))
	}
	if len(o) > 6 {
		return fmt.Errorf("at most 6 options allowed, got %d", len(o))
	}
	seen := make(map[string]bool, len(o))
	for i, opt := range o {
		if opt.ID == "" {
			return fmt.Errorf("option %d has empty id", i)
		}
		if opt.Text == "" {
			return fmt.Errorf("option %q has empty text", opt.ID)
		}
		if seen[opt.ID] {
			return fmt.Errorf("duplicate option id %q", opt.ID)
		}
		seen[opt.ID] = true
	}
	return nil
}

func (o OptionSet) Contains(id string) bool {
	for _, opt := range o {
		if opt.ID == id {
			return true
		}
	}
	return false
}

type Question struct {
	ID              int64     `json:"id"`
	TopicID         int64     `json:"topic_id"`
	SubtopicID      int64     `json:"subtopic_id"`
	QuestionTypeID  int64     `json:"question_type_id"`
	DifficultyLevel int       `json:"difficulty_level"`
	Prompt          string    `json:"prompt"`
	Options         OptionSet `json:"options"`
	CorrectAnswer   string    `json:"correct_answer"`
	Explanation     string    `json:"explanation"`
	Formula         *string   `json:"formula,omitempty"`
	TimeAllocation  int       `json:"time_allocation"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
}

// ServedQuestion is a question as delivered to a practicing user, with the
// answer and explanation stripped.
type ServedQuestion struct {
	ID              int64     `json:"id"`
	SubtopicID      int64     `json:"subtopic_id"`
	QuestionTypeID  int64     `json:"question_type_id"`
	DifficultyLevel int       `json:"difficulty_level"`
	Prompt          string    `json:"prompt"`
	Options         OptionSet `json:"options"`
	Formula         *string   `json:"formula,omitempty"`
	TimeAllocation  int       `json:"time_allocation"`
}

func (q Question) ToServed() ServedQuestion {
	return ServedQuestion{
		ID:              q.ID,
		SubtopicID:      q.SubtopicID,
		QuestionTypeID:  q.QuestionTypeID,
		DifficultyLevel: q.DifficultyLevel,
		Prompt:          q.Prompt,
		Options:         q.Options,
		Formula:         q.Formula,
		TimeAllocation:  q.TimeAllocation,
	}
}

// ── API Request/Response Types ────────────────────────────

type CreateTopicRequest struct {
	Subject     string  `json:"subject"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type CreateSubtopicRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type CreateQuestionRequest struct {
	TopicID         int64     `json:"topic_id"`
	SubtopicID      int64     `json:"subtopic_id"`
	QuestionTypeID  int64     `json:"question_type_id"`
	DifficultyLevel int       `json:"difficulty_level"`
	Prompt          string    `json:"prompt"`
	Options         OptionSet `json:"options"`
	CorrectAnswer   string    `json:"correct_answer"`
	Explanation     string    `json:"explanation"`
	Formula         *string   `json:"formula,omitempty"`
	TimeAllocation  int       `json:"time_allocation"`
}
