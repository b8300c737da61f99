// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/boulangers/boulanger/internal/domain"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Environment variables read on top of the config files.
const (
	EnvJiraDomain    = "JIRA_DOMAIN"
	EnvJiraEmail     = "JIRA_EMAIL"
	EnvJiraAPIToken  = "JIRA_API_TOKEN"
	EnvJiraEpicField = "JIRA_EPIC_FIELD"
)

// Loader loads configuration from TOML files, a dotenv file and the environment.
type Loader struct {
	lookupEnv     func(string) (string, bool)
	projectDir    string // Directory holding .boulanger.toml and .env
	globalConfDir string // Path to global config directory (e.g., ~/.config/boulanger)
}

// NewLoader creates a new Loader.
func NewLoader(projectDir string) *Loader {
	return &Loader{
		projectDir:    projectDir,
		globalConfDir: defaultGlobalConfigDir(),
		lookupEnv:     os.LookupEnv,
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory
// and environment lookup. This is useful for testing.
func NewLoaderWithGlobalDir(projectDir, globalConfDir string, lookupEnv func(string) (string, bool)) *Loader {
	if lookupEnv == nil {
		lookupEnv = func(string) (string, bool) { return "", false }
	}
	return &Loader{
		projectDir:    projectDir,
		globalConfDir: globalConfDir,
		lookupEnv:     lookupEnv,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalAppDir(configHome)
}

// Load returns the merged configuration.
// Precedence (later wins): defaults <- global file <- project file <- .env <- environment.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	project, err := l.loadFile(domain.ProjectConfigPath(l.projectDir))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if project != nil {
		base = mergeConfigs(base, project)
	}

	if err := l.applyEnv(base); err != nil {
		return nil, err
	}
	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// applyEnv overlays tracker settings from .env and then the process environment.
func (l *Loader) applyEnv(cfg *domain.Config) error {
	dotenv, err := godotenv.Read(filepath.Join(l.projectDir, domain.EnvFileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read %s: %w", domain.EnvFileName, err)
	}

	get := func(key string) string {
		if v, ok := l.lookupEnv(key); ok && v != "" {
			return v
		}
		return dotenv[key]
	}

	if v := get(EnvJiraDomain); v != "" {
		cfg.Jira.Domain = v
	}
	if v := get(EnvJiraEmail); v != "" {
		cfg.Jira.Email = v
	}
	if v := get(EnvJiraAPIToken); v != "" {
		cfg.Jira.APIToken = v
	}
	if v := get(EnvJiraEpicField); v != "" {
		cfg.Jira.EpicField = v
	}
	return nil
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown key: %s", section))
			continue
		}
		switch section {
		case "backend":
			for k, v := range m {
				switch k {
				case "base_url":
					if s, ok := v.(string); ok {
						res.Backend.BaseURL = s
					}
				case "project_key":
					if s, ok := v.(string); ok {
						res.Backend.ProjectKey = s
					}
				case "timeout":
					d, err := parseDuration(v)
					if err != nil {
						warnings = append(warnings, fmt.Sprintf("invalid value for [backend].timeout: %v", err))
						continue
					}
					res.Backend.Timeout = d
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [backend]: %s", k))
				}
			}
		case "assignees":
			for k, v := range m {
				switch k {
				case "names":
					res.Assignees.Names = stringSlice(v)
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [assignees]: %s", k))
				}
			}
		case "jira":
			for k, v := range m {
				switch k {
				case "domain":
					if s, ok := v.(string); ok {
						res.Jira.Domain = s
					}
				case "email":
					if s, ok := v.(string); ok {
						res.Jira.Email = s
					}
				case "epic_field":
					if s, ok := v.(string); ok {
						res.Jira.EpicField = s
					}
				case "start_date_field":
					if s, ok := v.(string); ok {
						res.Jira.StartDateField = s
					}
				case "max_results":
					if n, ok := v.(int64); ok && n > 0 {
						res.Jira.MaxResults = int(n)
					}
				case "api_token":
					warnings = append(warnings, fmt.Sprintf("[jira].api_token is ignored; set %s instead", EnvJiraAPIToken))
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [jira]: %s", k))
				}
			}
		case "server":
			for k, v := range m {
				switch k {
				case "addr":
					if s, ok := v.(string); ok {
						res.Server.Addr = s
					}
				case "allowed_origins":
					res.Server.AllowedOrigins = stringSlice(v)
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [server]: %s", k))
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					if s, ok := v.(string); ok {
						res.Log.Level = s
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// parseDuration accepts "30s"-style strings or a whole number of seconds.
func parseDuration(v any) (time.Duration, error) {
	switch t := v.(type) {
	case string:
		return time.ParseDuration(t)
	case int64:
		return time.Duration(t) * time.Second, nil
	}
	return 0, fmt.Errorf("unsupported type %T", v)
}

func stringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		Backend:   base.Backend,
		Assignees: base.Assignees,
		Jira:      base.Jira,
		Server:    base.Server,
		Log:       base.Log,
	}

	result.Warnings = append(result.Warnings, base.Warnings...)
	result.Warnings = append(result.Warnings, override.Warnings...)

	if override.Backend.BaseURL != "" {
		result.Backend.BaseURL = override.Backend.BaseURL
	}
	if override.Backend.ProjectKey != "" {
		result.Backend.ProjectKey = override.Backend.ProjectKey
	}
	if override.Backend.Timeout > 0 {
		result.Backend.Timeout = override.Backend.Timeout
	}
	if override.Assignees.Names != nil {
		result.Assignees.Names = override.Assignees.Names
	}
	if override.Jira.Domain != "" {
		result.Jira.Domain = override.Jira.Domain
	}
	if override.Jira.Email != "" {
		result.Jira.Email = override.Jira.Email
	}
	if override.Jira.EpicField != "" {
		result.Jira.EpicField = override.Jira.EpicField
	}
	if override.Jira.StartDateField != "" {
		result.Jira.StartDateField = override.Jira.StartDateField
	}
	if override.Jira.MaxResults > 0 {
		result.Jira.MaxResults = override.Jira.MaxResults
	}
	if override.Server.Addr != "" {
		result.Server.Addr = override.Server.Addr
	}
	if override.Server.AllowedOrigins != nil {
		result.Server.AllowedOrigins = override.Server.AllowedOrigins
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}

	return result
}
