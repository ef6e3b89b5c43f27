package questions

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/smartpractice/backend/internal/models"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if !models.ValidSubjects[models.Subject(req.Subject)] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "subject must be 'vocabulary', 'mathematics', or 'quantitative'"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "name is required"})
		return
	}

	topic, err := h.store.CreateTopic(req)
	if err != nil {
		log.Printf("[questions] CreateTopic error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create topic"})
		return
	}
	writeJSON(w, http.StatusCreated, topic)
}

func (h *Handler) ListTopics(w http.ResponseWriter, r *http.Request) {
	var subject *models.Subject
	if s := r.URL.Query().Get("subject"); s != "" {
		subj := models.Subject(s)
		if !models.ValidSubjects[subj] {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid subject"})
			return
		}
		subject = &subj
	}

	topics, err := h.store.ListTopics(subject)
	if err != nil {
		log.Printf("[questions] ListTopics error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list topics"})
		return
	}
	if topics == nil {
		topics = []models.Topic{}
	}
	writeJSON(w, http.StatusOK, topics)
}

func (h *Handler) CreateSubtopic(w http.ResponseWriter, r *http.Request) {
	topicID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid topic ID"})
		return
	}

	var req models.CreateSubtopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "name is required"})
		return
	}

	subtopic, err := h.store.CreateSubtopic(topicID, req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create subtopic"})
		return
	}
	writeJSON(w, http.StatusCreated, subtopic)
}

func (h *Handler) ListSubtopics(w http.ResponseWriter, r *http.Request) {
	topicID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid topic ID"})
		return
	}

	subtopics, err := h.store.ListSubtopics(topicID)
	if err != nil {
		log.Printf("[questions] ListSubtopics error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list subtopics"})
		return
	}
	if subtopics == nil {
		subtopics = []models.Subtopic{}
	}
	writeJSON(w, http.StatusOK, subtopics)
}

func (h *Handler) ListQuestionTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.store.ListQuestionTypes()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list question types"})
		return
	}
	if types == nil {
		types = []models.QuestionType{}
	}
	writeJSON(w, http.StatusOK, types)
}

func (h *Handler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid question ID"})
		return
	}

	question, err := h.store.GetQuestion(id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Question not found"})
		return
	}
	writeJSON(w, http.StatusOK, question)
}

func (h *Handler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req models.CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.TopicID == 0 || req.SubtopicID == 0 || req.QuestionTypeID == 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "topic_id, subtopic_id, and question_type_id are required"})
		return
	}
	if req.Prompt == "" || req.Explanation == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "prompt and explanation are required"})
		return
	}
	if req.DifficultyLevel < 1 || req.DifficultyLevel > 5 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "difficulty_level must be between 1 and 5"})
		return
	}
	if err := req.Options.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid options: " + err.Error()})
		return
	}
	if !req.Options.Contains(req.CorrectAnswer) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "correct_answer must match an option id"})
		return
	}
	if req.TimeAllocation <= 0 {
		req.TimeAllocation = 60
	}

	question, err := h.store.CreateQuestion(req)
	if err != nil {
		log.Printf("[questions] CreateQuestion error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create question"})
		return
	}
	writeJSON(w, http.StatusCreated, question)
}

func pathID(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[key], 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
