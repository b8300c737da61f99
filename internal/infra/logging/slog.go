package logging

import (
	"log/slog"

	"github.com/boulangers/boulanger/internal/domain"
)

// Ensure SlogLogger implements domain.Logger interface.
var _ domain.Logger = (*SlogLogger)(nil)

// SlogLogger adapts a *slog.Logger to domain.Logger.
// The category is emitted as a "category" attribute.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger wraps logger.
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	return &SlogLogger{logger: logger}
}

// Debug logs a debug message.
func (s *SlogLogger) Debug(category, msg string) { s.logger.Debug(msg, "category", category) }

// Info logs an info message.
func (s *SlogLogger) Info(category, msg string) { s.logger.Info(msg, "category", category) }

// Warn logs a warning message.
func (s *SlogLogger) Warn(category, msg string) { s.logger.Warn(msg, "category", category) }

// Error logs an error message.
func (s *SlogLogger) Error(category, msg string) { s.logger.Error(msg, "category", category) }
