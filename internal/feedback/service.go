package feedback

import (
	"context"
	"errors"
	"fmt"

	"github.com/smartpractice/backend/internal/models"
	"github.com/smartpractice/backend/internal/practice"
	"github.com/smartpractice/backend/internal/questions"
)

var ErrSessionNotCompleted = errors.New("session is not completed")

type Service struct {
	engine    *Engine
	practice  *practice.Store
	questions *questions.Store
}

func NewService(engine *Engine, pstore *practice.Store, qstore *questions.Store) *Service {
	return &Service{engine: engine, practice: pstore, questions: qstore}
}

// FeedbackForSession builds a transcript of a completed session and asks the
// engine for a narrative review.
func (s *Service) FeedbackForSession(ctx context.Context, userID, sessionID int64) (*models.FeedbackResponse, error) {
	session, err := s.practice.GetOwnedSession(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.SessionCompleted {
		return nil, ErrSessionNotCompleted
	}

	transcript, err := s.buildTranscript(session)
	if err != nil {
		return nil, err
	}

	text, _, err := s.engine.GenerateFeedback(ctx, *transcript)
	if err != nil {
		return nil, err
	}

	return &models.FeedbackResponse{
		SessionID: session.ID,
		Feedback:  text,
		Model:     s.engine.ModelName(),
	}, nil
}

func (s *Service) buildTranscript(session *models.TestSession) (*Transcript, error) {
	subtopic, err := s.questions.GetSubtopic(session.SubtopicID)
	if err != nil {
		return nil, fmt.Errorf("transcript subtopic: %w", err)
	}
	subject, err := s.questions.GetSubtopicSubject(session.SubtopicID)
	if err != nil {
		return nil, fmt.Errorf("transcript subject: %w", err)
	}

	topicName := ""
	if topics, err := s.questions.ListTopics(&subject); err == nil {
		for _, t := range topics {
			if t.ID == subtopic.TopicID {
				topicName = t.Name
				break
			}
		}
	}

	attempts, err := s.practice.GetSessionAttempts(session.ID)
	if err != nil {
		return nil, fmt.Errorf("transcript attempts: %w", err)
	}

	transcript := &Transcript{
		Subject:        string(subject),
		TopicName:      topicName,
		SubtopicName:   subtopic.Name,
		TotalQuestions: session.TotalQuestions,
		CorrectAnswers: session.CorrectAnswers,
		Score:          session.Score,
		TimeSpent:      session.TimeSpent,
	}

	for _, a := range attempts {
		question, err := s.questions.GetQuestion(a.QuestionID)
		if err != nil {
			return nil, fmt.Errorf("transcript question %d: %w", a.QuestionID, err)
		}
		transcript.Items = append(transcript.Items, TranscriptItem{
			Prompt:        question.Prompt,
			UserAnswer:    a.UserAnswer,
			CorrectAnswer: question.CorrectAnswer,
			IsCorrect:     a.IsCorrect,
			TimeSpent:     a.TimeSpent,
			Difficulty:    question.DifficultyLevel,
		})
	}
	return transcript, nil
}
