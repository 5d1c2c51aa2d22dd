// Package credentials persists the current bearer token across process
// restarts. Absence of a token means requests go out unauthenticated and
// the backend is expected to reject them.
package credentials

import "context"

type Repository interface {
	// Token returns the stored token, or "" when none is stored.
	Token(ctx context.Context) (string, error)

	// SetToken stores the token, replacing any previous one.
	SetToken(ctx context.Context, token string) error

	// Clear removes the persisted token, not merely an in-memory copy.
	Clear(ctx context.Context) error
}
