package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/shaketracker/internal/client/api"
	"github.com/dmitrijs2005/shaketracker/internal/client/models"
	"github.com/dmitrijs2005/shaketracker/internal/client/repositories/overlay"
	"github.com/dmitrijs2005/shaketracker/internal/common"
	"github.com/dmitrijs2005/shaketracker/internal/logging"
)

// ProfileService merges the server's view of the user profile with a small
// set of client-side fields persisted locally. The overlay exists because
// some backend deployments do not accept profile updates; locally edited
// fields survive restarts and are reapplied over every remote fetch.
type ProfileService struct {
	client  api.Client
	overlay overlay.Repository
	log     logging.Logger
}

func NewProfileService(client api.Client, overlayRepo overlay.Repository, log logging.Logger) *ProfileService {
	return &ProfileService{client: client, overlay: overlayRepo, log: log}
}

// CurrentProfile fetches the remote profile and applies the local overlay.
// A failed overlay read degrades to the plain remote profile.
func (s *ProfileService) CurrentProfile(ctx context.Context) (*models.Profile, error) {
	remote, err := s.client.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	ov, err := s.overlay.Get(ctx, remote.UserKey())
	if err != nil {
		s.log.Warn(ctx, "failed to read profile overlay", "error", err)
		ov = nil
	}

	merged := models.MergeProfile(*remote, ov)
	return &merged, nil
}

// UpdateProfile applies a partial profile update for the user identified by
// userKey. The allowlisted client-side fields are always persisted to the
// local overlay, even when the remote update fails, so an edit is never
// silently lost. A backend that does not expose a profile update endpoint is
// treated as a success: the overlay alone carries the edit.
//
// The caller passes the session's user key so an edit made while the
// backend is unreachable lands under the same overlay key the next
// CurrentProfile reads. An empty userKey falls back to the remote profile's
// key, then to the anonymous key.
func (s *ProfileService) UpdateProfile(ctx context.Context, userKey string, fields map[string]string) (*models.Profile, error) {
	filtered := models.FilterOverlay(fields)

	var current *models.Profile
	if p, err := s.client.CurrentUser(ctx); err == nil {
		current = p
		if userKey == "" {
			userKey = p.UserKey()
		}
	}
	if userKey == "" {
		userKey = common.AnonymousUserKey
	}

	updated, err := s.client.UpdateProfile(ctx, fields)
	switch {
	case err == nil:
		s.persistOverlay(ctx, userKey, filtered)
		return s.merge(ctx, userKey, *updated), nil

	case errors.Is(err, api.ErrNotSupported):
		s.persistOverlay(ctx, userKey, filtered)
		base := models.Profile{}
		if current != nil {
			base = *current
		}
		return s.merge(ctx, userKey, base), nil

	default:
		// the edit still lands in the overlay so it is not lost, but the
		// caller learns the remote update failed
		s.persistOverlay(ctx, userKey, filtered)
		return nil, err
	}
}

func (s *ProfileService) persistOverlay(ctx context.Context, userKey string, fields map[string]string) {
	if len(fields) == 0 {
		return
	}
	existing, err := s.overlay.Get(ctx, userKey)
	if err != nil || existing == nil {
		existing = map[string]string{}
	}
	for k, v := range fields {
		existing[k] = v
	}
	if err := s.overlay.Set(ctx, userKey, existing); err != nil {
		s.log.Warn(ctx, "failed to persist profile overlay", "error", err)
	}
}

func (s *ProfileService) merge(ctx context.Context, userKey string, base models.Profile) *models.Profile {
	ov, err := s.overlay.Get(ctx, userKey)
	if err != nil {
		s.log.Warn(ctx, "failed to read profile overlay", "error", err)
		ov = nil
	}
	merged := models.MergeProfile(base, ov)
	return &merged
}
