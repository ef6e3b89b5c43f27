package practice

import (
	"errors"
	"fmt"
	"log"

	"github.com/smartpractice/backend/internal/models"
	"github.com/smartpractice/backend/internal/questions"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionCompleted = errors.New("session already completed")
	ErrWrongSubtopic    = errors.New("question does not belong to the session's subtopic")
)

// GapUpdater re-evaluates a user's learning gaps after a session. Completion
// must never fail because of it, so implementations log and swallow errors.
type GapUpdater interface {
	UpdateGaps(userID, subtopicID int64, results []models.AttemptResult)
}

type Service struct {
	store      *Store
	questions  *questions.Store
	gapUpdater GapUpdater
}

func NewService(store *Store, qstore *questions.Store) *Service {
	return &Service{store: store, questions: qstore}
}

// SetGapUpdater wires in gap detection. Optional; without it completion
// simply skips the gap pass.
func (s *Service) SetGapUpdater(g GapUpdater) {
	s.gapUpdater = g
}

func (s *Service) InitSession(userID, subtopicID int64) (*models.TestSession, error) {
	if _, err := s.questions.GetSubtopic(subtopicID); err != nil {
		return nil, fmt.Errorf("unknown subtopic %d: %w", subtopicID, err)
	}
	return s.store.CreateSession(userID, subtopicID)
}

func (s *Service) GetSession(userID, sessionID int64) (*models.TestSession, error) {
	return s.store.GetOwnedSession(sessionID, userID)
}

// RecordAttempt grades one answer and attaches it to a session. Session
// resolution order: the caller's hint, then the most recent in-progress
// session for the subtopic started within the last hour, then a fresh one.
// Correctness is always computed server-side against the stored answer.
func (s *Service) RecordAttempt(userID int64, req models.RecordAttemptRequest) (*models.RecordAttemptResponse, error) {
	question, err := s.questions.GetQuestion(req.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("unknown question %d: %w", req.QuestionID, err)
	}
	if req.SubtopicID != 0 && question.SubtopicID != req.SubtopicID {
		return nil, ErrWrongSubtopic
	}

	session, err := s.resolveSession(userID, question.SubtopicID, req.SessionID)
	if err != nil {
		return nil, err
	}
	if question.SubtopicID != session.SubtopicID {
		return nil, ErrWrongSubtopic
	}

	correct := req.UserAnswer == question.CorrectAnswer

	inserted, err := s.store.InsertAttempt(session.ID, question.ID, req.UserAnswer, correct, req.TimeSpent)
	if err != nil {
		return nil, err
	}

	if inserted {
		session, err = s.store.RecomputeAggregates(session.ID)
		if err != nil {
			return nil, err
		}
	}

	return &models.RecordAttemptResponse{
		SessionID:        session.ID,
		Correct:          correct,
		TotalQuestions:   session.TotalQuestions,
		CorrectAnswers:   session.CorrectAnswers,
		Score:            session.Score,
		AlreadyAttempted: !inserted,
	}, nil
}

func (s *Service) resolveSession(userID, subtopicID int64, hint *int64) (*models.TestSession, error) {
	if hint != nil {
		session, err := s.store.GetOwnedSession(*hint, userID)
		if err != nil {
			return nil, err
		}
		if session.Status != models.SessionInProgress {
			return nil, ErrSessionCompleted
		}
		return session, nil
	}

	session, err := s.store.FindRecentInProgress(userID, subtopicID)
	if err != nil {
		return nil, err
	}
	if session != nil {
		return session, nil
	}
	return s.store.CreateSession(userID, subtopicID)
}

// CompleteSession finalizes a session, updates progress, and kicks off a
// best-effort gap re-evaluation from the session's graded answers.
func (s *Service) CompleteSession(userID, sessionID int64) (*models.CompleteSessionResponse, error) {
	session, err := s.store.CompleteSession(sessionID, userID)
	if err != nil {
		return nil, err
	}

	if s.gapUpdater != nil {
		results, err := s.store.GetSessionResults(session.ID)
		if err != nil {
			log.Printf("WARN: session %d results for gap detection: %v", session.ID, err)
		} else {
			s.gapUpdater.UpdateGaps(userID, session.SubtopicID, results)
		}
	}

	return &models.CompleteSessionResponse{
		SessionID:      session.ID,
		TotalQuestions: session.TotalQuestions,
		CorrectAnswers: session.CorrectAnswers,
		Score:          session.Score,
		TimeSpent:      session.TimeSpent,
	}, nil
}

func (s *Service) GetProgress(userID int64) (*models.ProgressResponse, error) {
	return s.store.GetProgress(userID)
}

func (s *Service) RebuildProgress(userID int64) (*models.RebuildProgressResponse, error) {
	topics, subtopics, err := s.store.RebuildProgress(userID)
	if err != nil {
		return nil, err
	}
	return &models.RebuildProgressResponse{TopicsRebuilt: topics, SubtopicsRebuilt: subtopics}, nil
}
