package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/shaketracker/internal/common"
	"github.com/dmitrijs2005/shaketracker/internal/server/repositories/activities"
	"github.com/dmitrijs2005/shaketracker/internal/server/repositories/shakes"
	"github.com/dmitrijs2005/shaketracker/internal/timex"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultActivityLimit = 20

func parseAvatarIndex(s string) (int, error) {
	return strconv.Atoi(s)
}

// today returns the bounds of the current local calendar day.
func (h *Handler) today() (time.Time, time.Time) {
	now := h.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}

type recordShakeRequest struct {
	Count     int    `json:"count"`
	Timestamp string `json:"timestamp"`
}

type shakeResponse struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Reward    string `json:"reward,omitempty"`
}

// RecordShake stores one shake for the authenticated user. The daily limit
// is enforced here as well: the client checks before submitting, but the
// server is the authority and answers 429 when today's quota is spent.
func (h *Handler) RecordShake(w http.ResponseWriter, r *http.Request) {
	var req recordShakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := userID(r.Context())
	from, to := h.today()

	count, err := h.shakes.CountInRange(r.Context(), id, from, to)
	if err != nil {
		h.logger.Error("failed to count shakes", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if count >= h.dailyLimit {
		writeError(w, http.StatusTooManyRequests, common.ErrorQuotaExceeded.Error())
		return
	}

	ts, ok := timex.Normalize(req.Timestamp)
	if !ok {
		ts = h.now()
	}

	s := &shakes.Shake{ID: uuid.NewString(), UserID: id, Timestamp: ts}
	if err := h.shakes.Insert(r.Context(), s); err != nil {
		h.logger.Error("failed to insert shake", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, shakeResponse{
		ID:        s.ID,
		Timestamp: s.Timestamp.Format(time.RFC3339),
		Reward:    s.Reward,
	})
}

// ListShakes returns the authenticated user's shakes, newest first. With a
// ?date=YYYY-MM-DD query it is restricted to that local calendar day.
func (h *Handler) ListShakes(w http.ResponseWriter, r *http.Request) {
	id := userID(r.Context())

	var (
		items []shakes.Shake
		err   error
	)
	if dateKey := r.URL.Query().Get("date"); dateKey != "" {
		var day time.Time
		day, err = time.ParseInLocation(timex.DateKeyLayout, dateKey, h.now().Location())
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date")
			return
		}
		items, err = h.shakes.ByUserAndRange(r.Context(), id, day, day.AddDate(0, 0, 1))
	} else {
		items, err = h.shakes.ByUser(r.Context(), id)
	}
	if err != nil {
		h.logger.Error("failed to list shakes", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]shakeResponse, 0, len(items))
	for _, s := range items {
		out = append(out, shakeResponse{ID: s.ID, Timestamp: s.Timestamp.Format(time.RFC3339), Reward: s.Reward})
	}
	writeJSON(w, http.StatusOK, out)
}

type logActivityRequest struct {
	Type  string `json:"type"`
	Title string `json:"title"`
}

type activityResponse struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Timestamp string `json:"timestamp"`
}

// LogActivity stores one feed entry for the authenticated user.
func (h *Handler) LogActivity(w http.ResponseWriter, r *http.Request) {
	var req logActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Type == "" {
		writeError(w, http.StatusBadRequest, "type is required")
		return
	}

	a := &activities.Activity{
		ID:        uuid.NewString(),
		UserID:    userID(r.Context()),
		Type:      req.Type,
		Title:     req.Title,
		Timestamp: h.now(),
	}
	if err := h.activities.Insert(r.Context(), a); err != nil {
		h.logger.Error("failed to insert activity", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, activityResponse{
		ID: a.ID, Type: a.Type, Title: a.Title, Timestamp: a.Timestamp.Format(time.RFC3339),
	})
}

// ListActivities returns recent feed entries, newest first. Supports
// ?type= and ?limit= queries.
func (h *Handler) ListActivities(w http.ResponseWriter, r *http.Request) {
	limit := defaultActivityLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	items, err := h.activities.Recent(r.Context(), userID(r.Context()), r.URL.Query().Get("type"), limit)
	if err != nil {
		h.logger.Error("failed to list activities", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]activityResponse, 0, len(items))
	for _, a := range items {
		out = append(out, activityResponse{
			ID: a.ID, Type: a.Type, Title: a.Title, Timestamp: a.Timestamp.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// Ping reports liveness.
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
