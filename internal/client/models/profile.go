// Package models defines client-side data models for the shake tracker CLI.
package models

import (
	"strconv"

	"github.com/dmitrijs2005/shaketracker/internal/common"
)

// Profile is the user profile as reported by the backend, possibly merged
// with the local overlay. Identifier and count fields are always
// server-authoritative; only the overlay fields below may be patched
// client-side.
type Profile struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	TotalShakes int    `json:"total_shakes"`
	DailyShakes int    `json:"daily_shakes"`

	// Client-managed fields; the backend may not persist them.
	AvatarIndex *int   `json:"avatar_index,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

// UserKey returns the stable key namespacing all cached per-user state,
// so switching accounts on one device cannot leak a previous user's
// overlay into a new session. Priority: id, then email, then a sentinel.
func (p *Profile) UserKey() string {
	if p == nil {
		return common.AnonymousUserKey
	}
	if p.ID != "" {
		return p.ID
	}
	if p.Email != "" {
		return p.Email
	}
	return common.AnonymousUserKey
}

// Overlay field names. The overlay may contain these keys and nothing else.
const (
	OverlayFieldAvatarIndex = "avatar_index"
	OverlayFieldBio         = "bio"
	OverlayFieldPhone       = "phone"
)

var overlayAllowList = map[string]struct{}{
	OverlayFieldAvatarIndex: {},
	OverlayFieldBio:         {},
	OverlayFieldPhone:       {},
}

// OverlayAllowed reports whether field is a client-managed overlay field.
func OverlayAllowed(field string) bool {
	_, ok := overlayAllowList[field]
	return ok
}

// FilterOverlay returns a copy of fields restricted to the allow-list.
// The result may be empty; callers treat an empty overlay as "delete".
func FilterOverlay(fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		if OverlayAllowed(k) {
			out[k] = v
		}
	}
	return out
}

// MergeProfile applies the allow-listed overlay fields on top of remote and
// returns the result. Every other field of remote passes through untouched,
// regardless of what keys the overlay contains; the overlay can never
// shadow a server-authoritative field.
func MergeProfile(remote Profile, overlay map[string]string) Profile {
	merged := remote
	for field, value := range overlay {
		switch field {
		case OverlayFieldAvatarIndex:
			if idx, err := strconv.Atoi(value); err == nil {
				merged.AvatarIndex = &idx
			}
		case OverlayFieldBio:
			merged.Bio = value
		case OverlayFieldPhone:
			merged.Phone = value
		}
	}
	return merged
}
