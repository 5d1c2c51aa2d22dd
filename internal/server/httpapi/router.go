// Package httpapi implements the REST surface of the shake tracker
// backend: registration and login, the authenticated profile, shake
// submission with daily-limit enforcement, and the activity feed.
package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/shaketracker/internal/server/repositories/activities"
	"github.com/dmitrijs2005/shaketracker/internal/server/repositories/feedbacks"
	"github.com/dmitrijs2005/shaketracker/internal/server/repositories/shakes"
	"github.com/dmitrijs2005/shaketracker/internal/server/repositories/users"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Handler carries the dependencies of all HTTP handlers.
type Handler struct {
	users      users.Repository
	shakes     shakes.Repository
	activities activities.Repository
	feedbacks  feedbacks.Repository
	secretKey  []byte
	tokenTTL   time.Duration
	dailyLimit int
	logger     *zap.Logger
	now        func() time.Time
}

func NewHandler(
	userRepo users.Repository,
	shakeRepo shakes.Repository,
	activityRepo activities.Repository,
	feedbackRepo feedbacks.Repository,
	secretKey []byte,
	tokenTTL time.Duration,
	dailyLimit int,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		users:      userRepo,
		shakes:     shakeRepo,
		activities: activityRepo,
		feedbacks:  feedbackRepo,
		secretKey:  secretKey,
		tokenTTL:   tokenTTL,
		dailyLimit: dailyLimit,
		logger:     logger,
		now:        time.Now,
	}
}

// NewRouter constructs the HTTP handler serving the API.
//
// Routes:
//
//	POST  /api/auth/register         → Register
//	POST  /api/auth/login            → Login
//	POST  /api/auth/forgot-password  → ForgotPassword
//	GET   /api/auth/me               → CurrentUser        (auth)
//	PATCH /api/users/me              → UpdateProfile      (auth)
//	POST  /api/shakes                → RecordShake        (auth, enforces limit)
//	GET   /api/shakes                → ListShakes         (auth, optional ?date=)
//	POST  /api/activities            → LogActivity        (auth)
//	GET   /api/activities            → ListActivities     (auth, ?type= &limit=)
//	POST  /api/feedbacks             → SubmitFeedback     (auth)
//	GET   /api/ping                  → Ping
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(withRequestLogging(h.logger))

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", h.Ping)
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)
		r.Post("/auth/forgot-password", h.ForgotPassword)

		r.Group(func(r chi.Router) {
			r.Use(h.withAuth)
			r.Get("/auth/me", h.CurrentUser)
			r.Patch("/users/me", h.UpdateProfile)
			r.Post("/shakes", h.RecordShake)
			r.Get("/shakes", h.ListShakes)
			r.Post("/activities", h.LogActivity)
			r.Get("/activities", h.ListActivities)
			r.Post("/feedbacks", h.SubmitFeedback)
		})
	})

	return r
}
