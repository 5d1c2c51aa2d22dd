// Package client bootstraps the local persistence of the shake tracker
// CLI: it opens the sqlite database, applies the embedded goose
// migrations and wires the repositories the services run on.
//
// The backend API contract itself lives in internal/client/api; this
// package deliberately knows nothing about HTTP.
package client
