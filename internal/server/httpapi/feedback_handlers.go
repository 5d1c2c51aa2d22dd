package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/shaketracker/internal/server/repositories/feedbacks"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type feedbackRequest struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Rating   int    `json:"rating"`
}

// SubmitFeedback stores a feedback report for the authenticated user.
func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	f := &feedbacks.Feedback{
		ID:        uuid.NewString(),
		UserID:    userID(r.Context()),
		Title:     req.Title,
		Message:   req.Message,
		Category:  req.Category,
		Rating:    req.Rating,
		Timestamp: h.now(),
	}
	if err := h.feedbacks.Insert(r.Context(), f); err != nil {
		h.logger.Error("failed to store feedback", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]bool{"ok": true})
}
