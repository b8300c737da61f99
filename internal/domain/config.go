package domain

import (
	"bytes"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
	"time"
)

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Backend   BackendConfig   // [backend] settings
	Jira      JiraConfig      // [jira] settings
	Server    ServerConfig    // [server] settings
	Log       LogConfig       // [log] settings
	Assignees AssigneesConfig // [assignees] settings
	Warnings  []string        // Unknown keys and sections found while loading
}

// BackendConfig holds settings for the hierarchy backend the viewer queries.
type BackendConfig struct {
	BaseURL    string        // Backend base URL
	ProjectKey string        // Fixed project key searched by the viewer
	Timeout    time.Duration // Per-request timeout
}

// AssigneesConfig holds the selectable assignee identifiers.
type AssigneesConfig struct {
	Names []string
}

// JiraConfig holds the upstream issue tracker settings used by the backend.
// APIToken is only ever read from the environment.
type JiraConfig struct {
	Domain         string // Atlassian site name (<domain>.atlassian.net) or full base URL
	Email          string
	APIToken       string
	EpicField      string // Custom field holding the epic link, used when "parent" is absent
	StartDateField string // Custom field holding the start date
	MaxResults     int
}

// ServerConfig holds settings for the backend HTTP server.
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string // Log level: debug, info, warn, error
}

// ConfigInfo contains information about a config file.
type ConfigInfo struct {
	Path    string // File path
	Content string // File content (empty if not exists)
	Exists  bool   // Whether the file exists
}

// Directory and file names.
const (
	AppDirName            = "boulanger"        // Directory name under XDG config/state homes
	ConfigFileName        = "config.toml"      // Global config file name
	ProjectConfigFileName = ".boulanger.toml"  // Config file name in the working directory
	LogFileName           = "boulanger.log"    // Log file name under <state dir>/logs
	EnvFileName           = ".env"             // Dotenv file with tracker credentials
	DefaultLogLevel       = "info"             // Default log level
	DefaultBaseURL        = "http://localhost:8000"
	DefaultProjectKey     = "AIP"
	DefaultServerAddr     = ":8000"
	DefaultEpicField      = "customfield_10014"
	DefaultStartDateField = "customfield_10015"
	DefaultMaxResults     = 1000
	DefaultTimeout        = 30 * time.Second
)

// DefaultAssignees is the selectable assignee list used when none is configured.
var DefaultAssignees = []string{
	"louie.han", "dahlia.n", "dylan.1", "bay.cloudy",
	"jenn.y", "akira.toya", "zet.woo", "imo.boo",
}

// DefaultAllowedOrigins lists the CORS origins the server accepts by default.
var DefaultAllowedOrigins = []string{"http://localhost:3000"}

// GlobalAppDir returns the global config directory path.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalAppDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the global config path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalAppDir(configHome), ConfigFileName)
}

// ProjectConfigPath returns the project config path inside dir.
func ProjectConfigPath(dir string) string {
	return filepath.Join(dir, ProjectConfigFileName)
}

// LogPath returns the log file path for a state directory.
func LogPath(stateDir string) string {
	return filepath.Join(stateDir, "logs", LogFileName)
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL:    DefaultBaseURL,
			ProjectKey: DefaultProjectKey,
			Timeout:    DefaultTimeout,
		},
		Assignees: AssigneesConfig{
			Names: append([]string(nil), DefaultAssignees...),
		},
		Jira: JiraConfig{
			EpicField:      DefaultEpicField,
			StartDateField: DefaultStartDateField,
			MaxResults:     DefaultMaxResults,
		},
		Server: ServerConfig{
			Addr:           DefaultServerAddr,
			AllowedOrigins: append([]string(nil), DefaultAllowedOrigins...),
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// JiraBaseURL returns the REST base URL of the configured Jira site.
// A bare site name expands to https://<name>.atlassian.net.
func (c JiraConfig) JiraBaseURL() string {
	d := strings.TrimRight(c.Domain, "/")
	if d == "" {
		return ""
	}
	if strings.HasPrefix(d, "http://") || strings.HasPrefix(d, "https://") {
		return d
	}
	return "https://" + d + ".atlassian.net"
}

// HasCredentials reports whether the tracker site and credentials are all set.
func (c JiraConfig) HasCredentials() bool {
	return c.Domain != "" && c.Email != "" && c.APIToken != ""
}

// templateData holds all data for rendering the config template.
type templateData struct {
	BaseURL        string
	ProjectKey     string
	Timeout        string
	Assignees      string
	JiraDomain     string
	JiraEmail      string
	EpicField      string
	StartDateField string
	MaxResults     int
	ServerAddr     string
	AllowedOrigins string
	LogLevel       string
}

var configTemplate = template.Must(template.New("config").Parse(`# boulanger configuration

[backend]
# Backend queried by "boulanger search" and the TUI
base_url = "{{.BaseURL}}"
project_key = "{{.ProjectKey}}"
timeout = "{{.Timeout}}"

[assignees]
# Assignees offered as filter chips
names = [{{.Assignees}}]

[jira]
# Used by "boulanger serve". The API token is read from JIRA_API_TOKEN
# (environment or .env), never from this file.
domain = "{{.JiraDomain}}"
email = "{{.JiraEmail}}"
epic_field = "{{.EpicField}}"
start_date_field = "{{.StartDateField}}"
max_results = {{.MaxResults}}

[server]
addr = "{{.ServerAddr}}"
allowed_origins = [{{.AllowedOrigins}}]

[log]
# debug, info, warn, error
level = "{{.LogLevel}}"
`))

// RenderConfigTemplate renders a commented config file from the given Config.
func RenderConfigTemplate(cfg *Config) string {
	data := templateData{
		BaseURL:        cfg.Backend.BaseURL,
		ProjectKey:     cfg.Backend.ProjectKey,
		Timeout:        cfg.Backend.Timeout.String(),
		Assignees:      quoteList(cfg.Assignees.Names),
		JiraDomain:     cfg.Jira.Domain,
		JiraEmail:      cfg.Jira.Email,
		EpicField:      cfg.Jira.EpicField,
		StartDateField: cfg.Jira.StartDateField,
		MaxResults:     cfg.Jira.MaxResults,
		ServerAddr:     cfg.Server.Addr,
		AllowedOrigins: quoteList(cfg.Server.AllowedOrigins),
		LogLevel:       cfg.Log.Level,
	}

	var buf bytes.Buffer
	if err := configTemplate.Execute(&buf, data); err != nil {
		// The template is static; execution only fails on programmer error.
		panic(err)
	}
	return buf.String()
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}
	return strings.Join(quoted, ", ")
}
