package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/shaketracker/internal/common"
	"github.com/dmitrijs2005/shaketracker/internal/server/auth"
	"github.com/dmitrijs2005/shaketracker/internal/server/repositories/users"
	"github.com/dmitrijs2005/shaketracker/internal/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// profileResponse mirrors the profile shape the mobile and CLI clients
// consume. CreatedAt goes out as RFC3339.
type profileResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	CreatedAt   string `json:"created_at"`
	TotalShakes int    `json:"total_shakes"`
	DailyShakes int    `json:"daily_shakes"`
	AvatarIndex *int   `json:"avatar_index,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

// Register creates an account and returns a session token right away, so
// clients do not need a follow-up login.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("failed to hash password", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	u := &users.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    h.now(),
	}
	if err := h.users.Create(r.Context(), u); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeError(w, http.StatusConflict, "email already registered")
			return
		}
		h.logger.Error("failed to create user", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	token, err := auth.GenerateToken(u.ID, h.secretKey, h.tokenTTL)
	if err != nil {
		h.logger.Error("failed to issue token", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"token": token})
}

// Login verifies the credentials and returns a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	u, err := h.users.ByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusUnauthorized, common.ErrorInvalidLoginPassword.Error())
			return
		}
		h.logger.Error("failed to load user", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, common.ErrorInvalidLoginPassword.Error())
		return
	}

	token, err := auth.GenerateToken(u.ID, h.secretKey, h.tokenTTL)
	if err != nil {
		h.logger.Error("failed to issue token", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword starts a password reset. The response never discloses
// whether the email belongs to an account. This reference backend has no
// mail delivery; the reset code is written to the server log instead.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	if u, err := h.users.ByEmail(r.Context(), req.Email); err == nil {
		code, err := shared.MakeRandHexString(8)
		if err != nil {
			h.logger.Error("failed to generate reset code", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		h.logger.Info("password reset requested",
			zap.String("user_id", u.ID), zap.String("reset_code", code))
	} else if !errors.Is(err, common.ErrorNotFound) {
		h.logger.Error("failed to load user", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// CurrentUser returns the authenticated user's profile together with the
// authoritative shake counts.
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	h.respondProfile(w, r, userID(r.Context()))
}

type profileUpdateRequest struct {
	Name        *string `json:"name"`
	AvatarIndex *string `json:"avatar_index"`
	Bio         *string `json:"bio"`
	Phone       *string `json:"phone"`
}

// UpdateProfile applies a partial profile edit and returns the updated
// profile. avatar_index arrives as a string to match the client wire
// format; a non-numeric value is rejected.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	upd := users.ProfileUpdate{Name: req.Name, Bio: req.Bio, Phone: req.Phone}
	if req.AvatarIndex != nil {
		idx, err := parseAvatarIndex(*req.AvatarIndex)
		if err != nil {
			writeError(w, http.StatusBadRequest, "avatar_index must be a number")
			return
		}
		upd.AvatarIndex = &idx
	}

	id := userID(r.Context())
	if err := h.users.UpdateProfile(r.Context(), id, upd); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusUnauthorized, "unknown user")
			return
		}
		h.logger.Error("failed to update profile", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.respondProfile(w, r, id)
}

func (h *Handler) respondProfile(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()

	u, err := h.users.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusUnauthorized, "unknown user")
			return
		}
		h.logger.Error("failed to load user", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	all, err := h.shakes.ByUser(ctx, id)
	if err != nil {
		h.logger.Error("failed to load shakes", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	from, to := h.today()
	daily, err := h.shakes.CountInRange(ctx, id, from, to)
	if err != nil {
		h.logger.Error("failed to count shakes", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
		TotalShakes: len(all),
		DailyShakes: daily,
		AvatarIndex: u.AvatarIndex,
		Bio:         u.Bio,
		Phone:       u.Phone,
	})
}
