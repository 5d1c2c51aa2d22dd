package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/shaketracker/internal/client/api"
	"github.com/dmitrijs2005/shaketracker/internal/client/models"
	"github.com/dmitrijs2005/shaketracker/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/shaketracker/internal/client/repositories/overlay"
	"github.com/dmitrijs2005/shaketracker/internal/logging"
)

// AuthService manages the credential lifecycle: registration, login, the
// persisted session token, and cleanup on logout.
type AuthService struct {
	client  api.Client
	creds   credentials.Repository
	overlay overlay.Repository
	log     logging.Logger
}

func NewAuthService(client api.Client, creds credentials.Repository, overlayRepo overlay.Repository, log logging.Logger) *AuthService {
	return &AuthService{client: client, creds: creds, overlay: overlayRepo, log: log}
}

// Register creates an account and stores the resulting session token.
// Backends that log the new user in implicitly are handled inside the API
// client; either way a token is persisted on success.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.Profile, error) {
	token, err := s.client.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	return s.establishSession(ctx, token)
}

// Login authenticates and stores the session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Profile, error) {
	token, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.establishSession(ctx, token)
}

func (s *AuthService) establishSession(ctx context.Context, token string) (*models.Profile, error) {
	if err := s.creds.SetToken(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to store session token: %w", err)
	}

	profile, err := s.client.CurrentUser(ctx)
	if err != nil {
		// the session is established; profile details can load later
		s.log.Warn(ctx, "failed to load profile after login", "error", err)
		return nil, nil
	}
	return profile, nil
}

// SendPasswordReset asks the backend to start a password reset for the
// given email. The backend answers the same way whether or not the account
// exists.
func (s *AuthService) SendPasswordReset(ctx context.Context, email string) error {
	return s.client.SendPasswordReset(ctx, email)
}

// Logout discards the session token and the user's local profile overlay.
// A failed overlay wipe is logged but does not keep the user logged in.
func (s *AuthService) Logout(ctx context.Context, userKey string) error {
	if err := s.creds.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session token: %w", err)
	}
	if userKey != "" {
		if err := s.overlay.Clear(ctx, userKey); err != nil {
			s.log.Warn(ctx, "failed to clear profile overlay", "error", err)
		}
	}
	return nil
}

// Ping checks backend reachability.
func (s *AuthService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}
