package practice

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/smartpractice/backend/internal/models"
)

const sessionCols = `id, user_id, subtopic_id, status, start_time, end_time,
	total_questions, correct_answers, score, time_spent, updated_at`

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func scanSession(row interface{ Scan(...interface{}) error }) (*models.TestSession, error) {
	var ts models.TestSession
	err := row.Scan(&ts.ID, &ts.UserID, &ts.SubtopicID, &ts.Status, &ts.StartTime, &ts.EndTime,
		&ts.TotalQuestions, &ts.CorrectAnswers, &ts.Score, &ts.TimeSpent, &ts.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

// ── Sessions ────────────────────────────────────────────

func (s *Store) CreateSession(userID, subtopicID int64) (*models.TestSession, error) {
	session, err := scanSession(s.db.QueryRow(
		`INSERT INTO test_sessions (user_id, subtopic_id)
		 VALUES ($1, $2)
		 RETURNING `+sessionCols,
		userID, subtopicID,
	))
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

func (s *Store) GetOwnedSession(sessionID, userID int64) (*models.TestSession, error) {
	session, err := scanSession(s.db.QueryRow(
		`SELECT `+sessionCols+` FROM test_sessions WHERE id = $1 AND user_id = $2`,
		sessionID, userID,
	))
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return session, nil
}

// FindRecentInProgress returns the user's most recent in-progress session for
// a subtopic started within the last hour, or nil if there is none.
func (s *Store) FindRecentInProgress(userID, subtopicID int64) (*models.TestSession, error) {
	session, err := scanSession(s.db.QueryRow(
		`SELECT `+sessionCols+`
		 FROM test_sessions
		 WHERE user_id = $1 AND subtopic_id = $2 AND status = 'in_progress'
		   AND start_time > NOW() - INTERVAL '1 hour'
		 ORDER BY start_time DESC
		 LIMIT 1`,
		userID, subtopicID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find in-progress session: %w", err)
	}
	return session, nil
}

// ── Attempts ────────────────────────────────────────────

// InsertAttempt records one answer. The unique constraint on
// (session_id, question_id) makes replays a no-op; the bool reports whether a
// row was actually written.
func (s *Store) InsertAttempt(sessionID, questionID int64, userAnswer string, isCorrect bool, timeSpent int) (bool, error) {
	res, err := s.db.Exec(
		`INSERT INTO attempts (session_id, question_id, user_answer, is_correct, time_spent)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (session_id, question_id) DO NOTHING`,
		sessionID, questionID, userAnswer, isCorrect, timeSpent,
	)
	if err != nil {
		return false, fmt.Errorf("insert attempt: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert attempt result: %w", err)
	}
	return n > 0, nil
}

// RecomputeAggregates re-derives a session's running totals from its attempt
// rows. Safe to call after any write, including replayed ones. While a
// session is open, time_spent is the running sum of per-answer time.
func (s *Store) RecomputeAggregates(sessionID int64) (*models.TestSession, error) {
	var total, correct, timeSpent int
	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE is_correct), COALESCE(SUM(time_spent), 0)
		 FROM attempts WHERE session_id = $1`,
		sessionID,
	).Scan(&total, &correct, &timeSpent)
	if err != nil {
		return nil, fmt.Errorf("session attempt counts: %w", err)
	}

	session, err := scanSession(s.db.QueryRow(
		`UPDATE test_sessions
		 SET total_questions = $2, correct_answers = $3, score = $4, time_spent = $5, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+sessionCols,
		sessionID, total, correct, Score(total, correct), timeSpent,
	))
	if err != nil {
		return nil, fmt.Errorf("recompute session aggregates: %w", err)
	}
	return session, nil
}

// GetSessionResults returns the graded answers of a session keyed by concept,
// in the shape the gap detector consumes.
func (s *Store) GetSessionResults(sessionID int64) ([]models.AttemptResult, error) {
	rows, err := s.db.Query(
		`SELECT a.question_id, q.question_type_id, a.is_correct
		 FROM attempts a
		 JOIN questions q ON q.id = a.question_id
		 WHERE a.session_id = $1
		 ORDER BY a.created_at`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("get session results: %w", err)
	}
	defer rows.Close()

	var results []models.AttemptResult
	for rows.Next() {
		var r models.AttemptResult
		if err := rows.Scan(&r.QuestionID, &r.QuestionTypeID, &r.IsCorrect); err != nil {
			return nil, fmt.Errorf("scan session result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func (s *Store) GetSessionAttempts(sessionID int64) ([]models.Attempt, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, question_id, user_answer, is_correct, time_spent, created_at
		 FROM attempts WHERE session_id = $1 ORDER BY created_at`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("get session attempts: %w", err)
	}
	defer rows.Close()

	var attempts []models.Attempt
	for rows.Next() {
		var a models.Attempt
		if err := rows.Scan(&a.ID, &a.SessionID, &a.QuestionID, &a.UserAnswer,
			&a.IsCorrect, &a.TimeSpent, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// ── Completion & Progress ───────────────────────────────

// CompleteSession finalizes a session and folds its results into the user's
// topic and subtopic progress, all in one transaction. Completing an already
// completed session returns it unchanged.
func (s *Store) CompleteSession(sessionID, userID int64) (*models.TestSession, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin complete session: %w", err)
	}
	defer tx.Rollback()

	session, err := scanSession(tx.QueryRow(
		`SELECT `+sessionCols+` FROM test_sessions WHERE id = $1 AND user_id = $2 FOR UPDATE`,
		sessionID, userID,
	))
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock session: %w", err)
	}

	if session.Status == models.SessionCompleted {
		return session, tx.Commit()
	}

	var total, correct int
	if err := tx.QueryRow(
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE is_correct) FROM attempts WHERE session_id = $1`,
		sessionID,
	).Scan(&total, &correct); err != nil {
		return nil, fmt.Errorf("session attempt counts: %w", err)
	}

	// Final time_spent is the session's wall-clock length, not the sum of
	// per-answer timers
	endTime := time.Now()
	session, err = scanSession(tx.QueryRow(
		`UPDATE test_sessions
		 SET status = 'completed', end_time = $2, total_questions = $3, correct_answers = $4,
		     score = $5, time_spent = $6, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+sessionCols,
		sessionID, endTime, total, correct, Score(total, correct),
		SessionDuration(session.StartTime, endTime),
	))
	if err != nil {
		return nil, fmt.Errorf("finalize session: %w", err)
	}

	var topicID int64
	if err := tx.QueryRow(`SELECT topic_id FROM subtopics WHERE id = $1`, session.SubtopicID).Scan(&topicID); err != nil {
		return nil, fmt.Errorf("resolve topic: %w", err)
	}

	if err := upsertSubtopicProgress(tx, userID, session.SubtopicID); err != nil {
		return nil, err
	}
	if err := upsertTopicProgress(tx, userID, topicID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit complete session: %w", err)
	}
	return session, nil
}

type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// upsertSubtopicProgress recomputes one (user, subtopic) progress row from
// all-time attempt history. Distinct question ids, so retrying a question
// never inflates the counts.
func upsertSubtopicProgress(db execer, userID, subtopicID int64) error {
	var attempted, correct, active int
	err := db.QueryRow(
		`SELECT COUNT(DISTINCT a.question_id),
		        COUNT(DISTINCT a.question_id) FILTER (WHERE a.is_correct),
		        (SELECT COUNT(*) FROM questions WHERE subtopic_id = $2 AND active)
		 FROM attempts a
		 JOIN test_sessions ts ON ts.id = a.session_id
		 WHERE ts.user_id = $1 AND ts.subtopic_id = $2`,
		userID, subtopicID,
	).Scan(&attempted, &correct, &active)
	if err != nil {
		return fmt.Errorf("subtopic progress counts: %w", err)
	}

	mastery := MasteryLevel(correct, active)

	res, err := db.Exec(
		`UPDATE subtopic_progress
		 SET questions_attempted = $3, questions_correct = $4, mastery_level = $5, last_attempt_at = NOW()
		 WHERE user_id = $1 AND subtopic_id = $2`,
		userID, subtopicID, attempted, correct, mastery,
	)
	if err != nil {
		return fmt.Errorf("update subtopic progress: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		_, err = db.Exec(
			`INSERT INTO subtopic_progress (user_id, subtopic_id, questions_attempted, questions_correct, mastery_level, last_attempt_at)
			 VALUES ($1, $2, $3, $4, $5, NOW())`,
			userID, subtopicID, attempted, correct, mastery,
		)
		if err != nil {
			return fmt.Errorf("insert subtopic progress: %w", err)
		}
	}
	return nil
}

func upsertTopicProgress(db execer, userID, topicID int64) error {
	var attempted, correct, active int
	err := db.QueryRow(
		`SELECT COUNT(DISTINCT a.question_id),
		        COUNT(DISTINCT a.question_id) FILTER (WHERE a.is_correct),
		        (SELECT COUNT(*) FROM questions WHERE topic_id = $2 AND active)
		 FROM attempts a
		 JOIN test_sessions ts ON ts.id = a.session_id
		 JOIN questions q ON q.id = a.question_id
		 WHERE ts.user_id = $1 AND q.topic_id = $2`,
		userID, topicID,
	).Scan(&attempted, &correct, &active)
	if err != nil {
		return fmt.Errorf("topic progress counts: %w", err)
	}

	mastery := MasteryLevel(correct, active)

	res, err := db.Exec(
		`UPDATE topic_progress
		 SET questions_attempted = $3, questions_correct = $4, mastery_level = $5, last_attempt_at = NOW()
		 WHERE user_id = $1 AND topic_id = $2`,
		userID, topicID, attempted, correct, mastery,
	)
	if err != nil {
		return fmt.Errorf("update topic progress: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		_, err = db.Exec(
			`INSERT INTO topic_progress (user_id, topic_id, questions_attempted, questions_correct, mastery_level, last_attempt_at)
			 VALUES ($1, $2, $3, $4, $5, NOW())`,
			userID, topicID, attempted, correct, mastery,
		)
		if err != nil {
			return fmt.Errorf("insert topic progress: %w", err)
		}
	}
	return nil
}

func (s *Store) GetProgress(userID int64) (*models.ProgressResponse, error) {
	resp := &models.ProgressResponse{
		Topics:    []models.TopicProgress{},
		Subtopics: []models.SubtopicProgress{},
	}

	rows, err := s.db.Query(
		`SELECT id, user_id, topic_id, questions_attempted, questions_correct, mastery_level, last_attempt_at
		 FROM topic_progress WHERE user_id = $1 ORDER BY topic_id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("get topic progress: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p models.TopicProgress
		if err := rows.Scan(&p.ID, &p.UserID, &p.TopicID, &p.QuestionsAttempted,
			&p.QuestionsCorrect, &p.MasteryLevel, &p.LastAttemptAt); err != nil {
			return nil, fmt.Errorf("scan topic progress: %w", err)
		}
		resp.Topics = append(resp.Topics, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	subRows, err := s.db.Query(
		`SELECT id, user_id, subtopic_id, questions_attempted, questions_correct, mastery_level, last_attempt_at
		 FROM subtopic_progress WHERE user_id = $1 ORDER BY subtopic_id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("get subtopic progress: %w", err)
	}
	defer subRows.Close()
	for subRows.Next() {
		var p models.SubtopicProgress
		if err := subRows.Scan(&p.ID, &p.UserID, &p.SubtopicID, &p.QuestionsAttempted,
			&p.QuestionsCorrect, &p.MasteryLevel, &p.LastAttemptAt); err != nil {
			return nil, fmt.Errorf("scan subtopic progress: %w", err)
		}
		resp.Subtopics = append(resp.Subtopics, p)
	}
	return resp, subRows.Err()
}

// RebuildProgress recomputes every progress row a user has attempt history
// for. Repair tool for drift after manual data fixes.
func (s *Store) RebuildProgress(userID int64) (int, int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("begin rebuild: %w", err)
	}
	defer tx.Rollback()

	subtopicIDs, err := collectIDs(tx,
		`SELECT DISTINCT ts.subtopic_id
		 FROM test_sessions ts
		 JOIN attempts a ON a.session_id = ts.id
		 WHERE ts.user_id = $1`,
		userID,
	)
	if err != nil {
		return 0, 0, fmt.Errorf("rebuild subtopic set: %w", err)
	}
	topicIDs, err := collectIDs(tx,
		`SELECT DISTINCT q.topic_id
		 FROM test_sessions ts
		 JOIN attempts a ON a.session_id = ts.id
		 JOIN questions q ON q.id = a.question_id
		 WHERE ts.user_id = $1`,
		userID,
	)
	if err != nil {
		return 0, 0, fmt.Errorf("rebuild topic set: %w", err)
	}

	for _, id := range subtopicIDs {
		if err := upsertSubtopicProgress(tx, userID, id); err != nil {
			return 0, 0, err
		}
	}
	for _, id := range topicIDs {
		if err := upsertTopicProgress(tx, userID, id); err != nil {
			return 0, 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("commit rebuild: %w", err)
	}
	return len(topicIDs), len(subtopicIDs), nil
}

func collectIDs(tx *sql.Tx, query string, args ...interface{}) ([]int64, error) {
	rows, err := tx.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
