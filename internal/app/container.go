// Package app provides the dependency injection container for the application.
package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/boulangers/boulanger/internal/domain"
	"github.com/boulangers/boulanger/internal/infra/backend"
	"github.com/boulangers/boulanger/internal/infra/config"
	"github.com/boulangers/boulanger/internal/infra/jira"
	"github.com/boulangers/boulanger/internal/infra/logging"
	"github.com/boulangers/boulanger/internal/infra/server"
	"github.com/boulangers/boulanger/internal/usecase"
)

// Config holds the application paths.
type Config struct {
	WorkDir  string // Directory holding .boulanger.toml and .env
	StateDir string // Directory holding logs (empty disables file logging)
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Source        domain.IssueSource
	Issues        domain.IssueRepository
	Clock         domain.Clock
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	FileLog       domain.Logger

	// Pointer fields
	Logger    *slog.Logger
	AppConfig *domain.Config
	closeLog  func() error

	// Configuration
	Config Config
}

// New creates a new Container rooted at dir.
func New(dir string) (*Container, error) {
	cfg := Config{
		WorkDir:  dir,
		StateDir: logging.DefaultStateDir(),
	}

	configLoader := config.NewLoader(cfg.WorkDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, err
	}

	level := logging.ParseLevel(appConfig.Log.Level)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	fileLog := logging.New(cfg.StateDir, level)

	return &Container{
		Source:        backend.NewClient(appConfig.Backend.BaseURL, appConfig.Backend.Timeout),
		Issues:        jira.NewClient(appConfig.Jira, &http.Client{Timeout: appConfig.Backend.Timeout}),
		Clock:         domain.RealClock{},
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(cfg.WorkDir),
		FileLog:       fileLog,
		Logger:        logger,
		AppConfig:     appConfig,
		closeLog:      fileLog.Close,
		Config:        cfg,
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, appConfig *domain.Config, source domain.IssueSource, issues domain.IssueRepository, clock domain.Clock, logger *slog.Logger) *Container {
	if appConfig == nil {
		appConfig = domain.NewDefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Container{
		Source:    source,
		Issues:    issues,
		Clock:     clock,
		FileLog:   domain.NopLogger{},
		Logger:    logger,
		AppConfig: appConfig,
		Config:    cfg,
	}
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	if c.closeLog == nil {
		return nil
	}
	return c.closeLog()
}

// UseCase factory methods

// QueryBuilder returns the request builder for the configured project.
func (c *Container) QueryBuilder() domain.QueryBuilder {
	return domain.NewQueryBuilder(c.AppConfig.Backend.ProjectKey)
}

// SearchIssuesUseCase returns a new SearchIssues use case.
func (c *Container) SearchIssuesUseCase() *usecase.SearchIssues {
	return usecase.NewSearchIssues(c.Source, c.QueryBuilder(), c.Clock)
}

// ListIssuesUseCase returns a new ListIssues use case.
// Its diagnostics go to the process logger since it runs inside the server.
func (c *Container) ListIssuesUseCase() *usecase.ListIssues {
	return usecase.NewListIssues(c.Issues, logging.NewSlogLogger(c.Logger))
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// ShowConfigTemplateUseCase returns a new ShowConfigTemplate use case.
func (c *Container) ShowConfigTemplateUseCase() *usecase.ShowConfigTemplate {
	return usecase.NewShowConfigTemplate()
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// ServerHandler returns the HTTP handler of the hierarchy backend.
func (c *Container) ServerHandler() http.Handler {
	uc := c.ListIssuesUseCase()
	list := func(ctx context.Context, projectKey string, category domain.Category, keyword string, assignees []string) (*domain.SearchResult, error) {
		out, err := uc.Execute(ctx, usecase.ListIssuesInput{
			ProjectKey: projectKey,
			Category:   category,
			Keyword:    keyword,
			Assignees:  assignees,
		})
		if err != nil {
			return nil, err
		}
		return out.Result, nil
	}
	return server.NewRouter(list, c.AppConfig.Server.AllowedOrigins, c.Logger)
}

// Server returns the hierarchy backend server bound to addr.
// An empty addr uses the configured address.
func (c *Container) Server(addr string) *server.Server {
	if addr == "" {
		addr = c.AppConfig.Server.Addr
	}
	return server.New(addr, c.ServerHandler(), c.Logger)
}
