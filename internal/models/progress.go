package models

import "time"

type TopicProgress struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"user_id"`
	TopicID            int64     `json:"topic_id"`
	QuestionsAttempted int       `json:"questions_attempted"`
	QuestionsCorrect   int       `json:"questions_correct"`
	MasteryLevel       int       `json:"mastery_level"`
	LastAttemptAt      time.Time `json:"last_attempt_at"`
}

type SubtopicProgress struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"user_id"`
	SubtopicID         int64     `json:"subtopic_id"`
	QuestionsAttempted int       `json:"questions_attempted"`
	QuestionsCorrect   int       `json:"questions_correct"`
	MasteryLevel       int       `json:"mastery_level"`
	LastAttemptAt      time.Time `json:"last_attempt_at"`
}

type ProgressResponse struct {
	Topics    []TopicProgress    `json:"topics"`
	Subtopics []SubtopicProgress `json:"subtopics"`
}

type RebuildProgressResponse struct {
	TopicsRebuilt    int `json:"topics_rebuilt"`
	SubtopicsRebuilt int `json:"subtopics_rebuilt"`
}
