// Package cli provides the interactive shake tracker command-line client.
//
// It wires configuration, local storage, the REST API client and an
// interactive REPL that supports online/offline operation. Typical flow:
// log in, start a background connectivity watcher, and execute user
// commands.
//
// Key features:
//   - Register / Login / Logout, password reset requests
//   - Record shakes against the daily quota, with offline fallback
//   - Status with reconciled counts and reset countdown
//   - Profile view and client-side profile edits
//   - Local shake history and the backend activity feed
//   - Interactive accelerometer sample feed ("motion")
//   - Feedback reports
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
