package domain

import (
	"context"
	"time"
)

// IssueSource fetches search results from the hierarchy backend.
type IssueSource interface {
	// Fetch performs a search request and decodes the response.
	Fetch(ctx context.Context, req Request) (*SearchResult, error)
}

// IssueRepository fetches issues from the upstream issue tracker.
type IssueRepository interface {
	// FetchIssues returns the issues matching a JQL expression.
	FetchIssues(ctx context.Context, jql string) ([]Issue, error)
}

// ConfigLoader loads configuration from files and the environment.
type ConfigLoader interface {
	// Load returns the merged configuration (defaults <- global <- project <- env).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	// GetGlobalConfigInfo returns information about the global config file.
	GetGlobalConfigInfo() ConfigInfo

	// GetProjectConfigInfo returns information about the project config file.
	GetProjectConfigInfo() ConfigInfo

	// InitGlobalConfig creates a global config file with the default template.
	InitGlobalConfig(cfg *Config) error

	// InitProjectConfig creates a project config file with the default template.
	InitProjectConfig(cfg *Config) error
}

// Logger writes diagnostic messages to the application log.
type Logger interface {
	Debug(category, msg string)
	Info(category, msg string)
	Warn(category, msg string)
	Error(category, msg string)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// NopLogger discards all messages.
type NopLogger struct{}

func (NopLogger) Debug(string, string) {}
func (NopLogger) Info(string, string)  {}
func (NopLogger) Warn(string, string)  {}
func (NopLogger) Error(string, string) {}
