// Package overlay stores client-managed profile fields per user identity.
// The overlay only ever holds allow-listed fields; it is merged on top of
// the server profile on the read path and must never shadow
// server-authoritative data.
package overlay

import "context"

type Repository interface {
	// Get returns the stored overlay fields for userKey, or an empty map.
	Get(ctx context.Context, userKey string) (map[string]string, error)

	// Set filters fields to the allow-list and replaces the stored overlay.
	// An overlay that is empty after filtering deletes the entry instead of
	// persisting an empty object.
	Set(ctx context.Context, userKey string, fields map[string]string) error

	// Clear removes the overlay for userKey.
	Clear(ctx context.Context, userKey string) error
}
