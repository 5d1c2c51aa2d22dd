package logging

import (
	"context"
	"log/slog"
)

// SlogLogger adapts a *slog.Logger to the Logger interface.
type SlogLogger struct {
	log *slog.Logger
}

var _ Logger = (*SlogLogger)(nil)

func NewSlogLogger(log *slog.Logger) *SlogLogger {
	return &SlogLogger{log: log}
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.log.DebugContext(ctx, msg, args...)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.log.InfoContext(ctx, msg, args...)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.log.WarnContext(ctx, msg, args...)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.log.ErrorContext(ctx, msg, args...)
}

// With returns a copy of the logger carrying the given key-value pairs.
func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{log: s.log.With(args...)}
}
