package adaptive

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/smartpractice/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// getUserID extracts the authenticated user ID from the request context.
func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

func (h *Handler) GetAdaptiveQuestions(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	query := r.URL.Query()
	subtopicID, err := strconv.ParseInt(query.Get("subtopic_id"), 10, 64)
	if err != nil || subtopicID <= 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "subtopic_id is required"})
		return
	}

	var sessionID *int64
	if s := query.Get("session_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid session_id"})
			return
		}
		sessionID = &id
	}

	served, adaptive, err := h.service.GetAdaptiveQuestions(userID, subtopicID, sessionID)
	if err != nil {
		log.Printf("[adaptive] GetAdaptiveQuestions error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get questions"})
		return
	}

	writeJSON(w, http.StatusOK, models.AdaptiveQuestionsResponse{
		Questions: served,
		Adaptive:  adaptive,
		Total:     len(served),
	})
}

func (h *Handler) GetGaps(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	subtopicID, err := strconv.ParseInt(r.URL.Query().Get("subtopic_id"), 10, 64)
	if err != nil || subtopicID <= 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "subtopic_id is required"})
		return
	}

	gaps, err := h.service.ListActiveGaps(userID, subtopicID)
	if err != nil {
		log.Printf("[adaptive] GetGaps error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list gaps"})
		return
	}
	if gaps == nil {
		gaps = []models.LearningGap{}
	}
	writeJSON(w, http.StatusOK, models.GapListResponse{Gaps: gaps})
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	settings, err := h.service.GetSettings(userID)
	if err != nil {
		log.Printf("[adaptive] GetSettings error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get settings"})
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := ValidateSettingsUpdate(req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	settings, err := h.service.UpdateSettings(userID, req)
	if err != nil {
		log.Printf("[adaptive] UpdateSettings error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to update settings"})
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
