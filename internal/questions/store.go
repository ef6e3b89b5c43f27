package questions

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/smartpractice/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Topics & Subtopics ──────────────────────────────────

func (s *Store) CreateTopic(req models.CreateTopicRequest) (*models.Topic, error) {
	var t models.Topic
	err := s.db.QueryRow(
		`INSERT INTO topics (subject, name, description)
		 VALUES ($1, $2, $3)
		 RETURNING id, subject, name, description, active, created_at`,
		req.Subject, req.Name, req.Description,
	).Scan(&t.ID, &t.Subject, &t.Name, &t.Description, &t.Active, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create topic: %w", err)
	}
	return &t, nil
}

func (s *Store) ListTopics(subject *models.Subject) ([]models.Topic, error) {
	var rows *sql.Rows
	var err error

	cols := `id, subject, name, description, active, created_at`
	if subject != nil {
		rows, err = s.db.Query(
			fmt.Sprintf(`SELECT %s FROM topics WHERE subject = $1 AND active ORDER BY name`, cols),
			*subject,
		)
	} else {
		rows, err = s.db.Query(
			fmt.Sprintf(`SELECT %s FROM topics WHERE active ORDER BY subject, name`, cols),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	var topics []models.Topic
	for rows.Next() {
		var t models.Topic
		if err := rows.Scan(&t.ID, &t.Subject, &t.Name, &t.Description, &t.Active, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

func (s *Store) CreateSubtopic(topicID int64, req models.CreateSubtopicRequest) (*models.Subtopic, error) {
	var st models.Subtopic
	err := s.db.QueryRow(
		`INSERT INTO subtopics (topic_id, name, description)
		 VALUES ($1, $2, $3)
		 RETURNING id, topic_id, name, description, active, created_at`,
		topicID, req.Name, req.Description,
	).Scan(&st.ID, &st.TopicID, &st.Name, &st.Description, &st.Active, &st.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create subtopic: %w", err)
	}
	return &st, nil
}

func (s *Store) ListSubtopics(topicID int64) ([]models.Subtopic, error) {
	rows, err := s.db.Query(
		`SELECT id, topic_id, name, description, active, created_at
		 FROM subtopics WHERE topic_id = $1 AND active ORDER BY name`,
		topicID,
	)
	if err != nil {
		return nil, fmt.Errorf("list subtopics: %w", err)
	}
	defer rows.Close()

	var subtopics []models.Subtopic
	for rows.Next() {
		var st models.Subtopic
		if err := rows.Scan(&st.ID, &st.TopicID, &st.Name, &st.Description, &st.Active, &st.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan subtopic: %w", err)
		}
		subtopics = append(subtopics, st)
	}
	return subtopics, rows.Err()
}

func (s *Store) GetSubtopic(subtopicID int64) (*models.Subtopic, error) {
	var st models.Subtopic
	err := s.db.QueryRow(
		`SELECT id, topic_id, name, description, active, created_at
		 FROM subtopics WHERE id = $1`,
		subtopicID,
	).Scan(&st.ID, &st.TopicID, &st.Name, &st.Description, &st.Active, &st.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get subtopic: %w", err)
	}
	return &st, nil
}

// GetSubtopicSubject resolves the owning subject of a subtopic, which keys
// the adaptive engine's per-subject thresholds.
func (s *Store) GetSubtopicSubject(subtopicID int64) (models.Subject, error) {
	var subject models.Subject
	err := s.db.QueryRow(
		`SELECT t.subject FROM subtopics st JOIN topics t ON t.id = st.topic_id WHERE st.id = $1`,
		subtopicID,
	).Scan(&subject)
	if err != nil {
		return "", fmt.Errorf("get subtopic subject: %w", err)
	}
	return subject, nil
}

// ── Questions ───────────────────────────────────────────

// CreateQuestion stores an authored question. The option set must already be
// validated by the caller; it is serialized exactly once here and trusted on
// every subsequent read.
func (s *Store) CreateQuestion(req models.CreateQuestionRequest) (*models.Question, error) {
	optionsJSON, err := json.Marshal(req.Options)
	if err != nil {
		return nil, fmt.Errorf("marshal options: %w", err)
	}

	var q models.Question
	var rawOptions []byte
	err = s.db.QueryRow(
		`INSERT INTO questions
		 (topic_id, subtopic_id, question_type_id, difficulty_level, prompt,
		  options, correct_answer, explanation, formula, time_allocation)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, topic_id, subtopic_id, question_type_id, difficulty_level,
		           prompt, options, correct_answer, explanation, formula,
		           time_allocation, active, created_at`,
		req.TopicID, req.SubtopicID, req.QuestionTypeID, req.DifficultyLevel,
		req.Prompt, optionsJSON, req.CorrectAnswer, req.Explanation,
		req.Formula, req.TimeAllocation,
	).Scan(&q.ID, &q.TopicID, &q.SubtopicID, &q.QuestionTypeID, &q.DifficultyLevel,
		&q.Prompt, &rawOptions, &q.CorrectAnswer, &q.Explanation, &q.Formula,
		&q.TimeAllocation, &q.Active, &q.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}

	if err := json.Unmarshal(rawOptions, &q.Options); err != nil {
		return nil, fmt.Errorf("unmarshal options: %w", err)
	}
	return &q, nil
}

func (s *Store) GetQuestion(questionID int64) (*models.Question, error) {
	var q models.Question
	var rawOptions []byte
	err := s.db.QueryRow(
		`SELECT id, topic_id, subtopic_id, question_type_id, difficulty_level,
		        prompt, options, correct_answer, explanation, formula,
		        time_allocation, active, created_at
		 FROM questions WHERE id = $1`,
		questionID,
	).Scan(&q.ID, &q.TopicID, &q.SubtopicID, &q.QuestionTypeID, &q.DifficultyLevel,
		&q.Prompt, &rawOptions, &q.CorrectAnswer, &q.Explanation, &q.Formula,
		&q.TimeAllocation, &q.Active, &q.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}

	if err := json.Unmarshal(rawOptions, &q.Options); err != nil {
		return nil, fmt.Errorf("unmarshal options: %w", err)
	}
	return &q, nil
}

func (s *Store) ListQuestionTypes() ([]models.QuestionType, error) {
	rows, err := s.db.Query(`SELECT id, name FROM question_types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list question types: %w", err)
	}
	defer rows.Close()

	var types []models.QuestionType
	for rows.Next() {
		var qt models.QuestionType
		if err := rows.Scan(&qt.ID, &qt.Name); err != nil {
			return nil, fmt.Errorf("scan question type: %w", err)
		}
		types = append(types, qt)
	}
	return types, rows.Err()
}

// GetPoolWithStats returns every active question in a subtopic together with
// the user's all-time attempt counts against it. correct_count counts
// attempts, so a question is "correct at least once" when correct_count > 0.
func (s *Store) GetPoolWithStats(userID, subtopicID int64) ([]models.QuestionWithStats, error) {
	rows, err := s.db.Query(
		`SELECT q.id, q.topic_id, q.subtopic_id, q.question_type_id, q.difficulty_level,
		        q.prompt, q.options, q.correct_answer, q.explanation, q.formula,
		        q.time_allocation, q.active, q.created_at,
		        COALESCE(st.attempt_count, 0), COALESCE(st.correct_count, 0)
		 FROM questions q
		 LEFT JOIN (
		     SELECT a.question_id,
		            COUNT(*) AS attempt_count,
		            COUNT(*) FILTER (WHERE a.is_correct) AS correct_count
		     FROM attempts a
		     JOIN test_sessions ts ON ts.id = a.session_id
		     WHERE ts.user_id = $1
		     GROUP BY a.question_id
		 ) st ON st.question_id = q.id
		 WHERE q.subtopic_id = $2 AND q.active
		 ORDER BY q.id`,
		userID, subtopicID,
	)
	if err != nil {
		return nil, fmt.Errorf("get question pool: %w", err)
	}
	defer rows.Close()

	var pool []models.QuestionWithStats
	for rows.Next() {
		var qs models.QuestionWithStats
		var rawOptions []byte
		q := &qs.Question
		if err := rows.Scan(&q.ID, &q.TopicID, &q.SubtopicID, &q.QuestionTypeID, &q.DifficultyLevel,
			&q.Prompt, &rawOptions, &q.CorrectAnswer, &q.Explanation, &q.Formula,
			&q.TimeAllocation, &q.Active, &q.CreatedAt,
			&qs.AttemptCount, &qs.CorrectCount); err != nil {
			return nil, fmt.Errorf("scan pool question: %w", err)
		}
		if err := json.Unmarshal(rawOptions, &q.Options); err != nil {
			return nil, fmt.Errorf("unmarshal options: %w", err)
		}
		pool = append(pool, qs)
	}
	return pool, rows.Err()
}
