// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/boulangers/boulanger/internal/domain"
)

// MockClock is a test double for domain.Clock.
// Each call to Now advances the time by Step.
type MockClock struct {
	NowTime time.Time
	Step    time.Duration
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	t := m.NowTime
	m.NowTime = m.NowTime.Add(m.Step)
	return t
}

// MockIssueSource is a test double for domain.IssueSource.
// Fields are ordered to minimize memory padding.
type MockIssueSource struct {
	Result   *domain.SearchResult
	FetchErr error
	Requests []domain.Request
	mu       sync.Mutex
}

// Ensure MockIssueSource implements domain.IssueSource interface.
var _ domain.IssueSource = (*MockIssueSource)(nil)

// Fetch records the request and returns the configured result or error.
func (m *MockIssueSource) Fetch(ctx context.Context, req domain.Request) (*domain.SearchResult, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.FetchErr != nil {
		return nil, m.FetchErr
	}
	if m.Result == nil {
		return &domain.SearchResult{}, nil
	}
	return m.Result, nil
}

// LastRequest returns the most recent request, or the zero value.
func (m *MockIssueSource) LastRequest() domain.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Requests) == 0 {
		return domain.Request{}
	}
	return m.Requests[len(m.Requests)-1]
}

// MockIssueRepository is a test double for domain.IssueRepository.
type MockIssueRepository struct {
	FetchErr error
	Issues   []domain.Issue
	Queries  []string
}

// Ensure MockIssueRepository implements domain.IssueRepository interface.
var _ domain.IssueRepository = (*MockIssueRepository)(nil)

// FetchIssues records the JQL and returns the configured issues or error.
func (m *MockIssueRepository) FetchIssues(_ context.Context, jql string) ([]domain.Issue, error) {
	m.Queries = append(m.Queries, jql)
	if m.FetchErr != nil {
		return nil, m.FetchErr
	}
	return m.Issues, nil
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config       *domain.Config
	GlobalConfig *domain.Config
	LoadErr      error
	GlobalErr    error
}

// NewMockConfigLoader creates a new MockConfigLoader with default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{
		Config: domain.NewDefaultConfig(),
	}
}

// Ensure MockConfigLoader implements domain.ConfigLoader interface.
var _ domain.ConfigLoader = (*MockConfigLoader)(nil)

// Load returns the configured config or error.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// LoadGlobal returns the configured config or error.
func (m *MockConfigLoader) LoadGlobal() (*domain.Config, error) {
	if m.GlobalErr != nil {
		return nil, m.GlobalErr
	}
	if m.GlobalConfig != nil {
		return m.GlobalConfig, nil
	}
	return m.Config, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitProjectErr    error
	InitGlobalErr     error
	InitConfig        *domain.Config
	ProjectConfigInfo domain.ConfigInfo
	GlobalConfigInfo  domain.ConfigInfo
	InitProjectCalled bool
	InitGlobalCalled  bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		ProjectConfigInfo: domain.ConfigInfo{
			Path:   "/work/.boulanger.toml",
			Exists: false,
		},
		GlobalConfigInfo: domain.ConfigInfo{
			Path:   "/home/test/.config/boulanger/config.toml",
			Exists: false,
		},
	}
}

// Ensure MockConfigManager implements domain.ConfigManager interface.
var _ domain.ConfigManager = (*MockConfigManager)(nil)

// GetProjectConfigInfo returns the configured project config info.
func (m *MockConfigManager) GetProjectConfigInfo() domain.ConfigInfo {
	return m.ProjectConfigInfo
}

// GetGlobalConfigInfo returns the configured global config info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalConfigInfo
}

// InitProjectConfig records the call and returns configured error.
func (m *MockConfigManager) InitProjectConfig(cfg *domain.Config) error {
	m.InitProjectCalled = true
	m.InitConfig = cfg
	return m.InitProjectErr
}

// InitGlobalConfig records the call and returns configured error.
func (m *MockConfigManager) InitGlobalConfig(cfg *domain.Config) error {
	m.InitGlobalCalled = true
	m.InitConfig = cfg
	return m.InitGlobalErr
}

// MockLogger is a test double for domain.Logger that records entries.
type MockLogger struct {
	Entries []string
	mu      sync.Mutex
}

// Ensure MockLogger implements domain.Logger interface.
var _ domain.Logger = (*MockLogger)(nil)

func (m *MockLogger) record(level, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, fmt.Sprintf("[%s] [%s] %s", level, category, msg))
}

// Debug records a debug entry.
func (m *MockLogger) Debug(category, msg string) { m.record("DEBUG", category, msg) }

// Info records an info entry.
func (m *MockLogger) Info(category, msg string) { m.record("INFO", category, msg) }

// Warn records a warning entry.
func (m *MockLogger) Warn(category, msg string) { m.record("WARN", category, msg) }

// Error records an error entry.
func (m *MockLogger) Error(category, msg string) { m.record("ERROR", category, msg) }

// Snapshot returns a copy of the recorded entries.
func (m *MockLogger) Snapshot() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Entries...)
}
