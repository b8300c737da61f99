package cli

import (
	"fmt"
	"io"

	"github.com/boulangers/boulanger/internal/app"
	"github.com/boulangers/boulanger/internal/domain"
	"github.com/boulangers/boulanger/internal/usecase"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Manage boulanger configuration files and settings.`,
		// No RunE: shows subcommand list when called without arguments
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand(c))
	cmd.AddCommand(newConfigTemplateCommand(c))
	cmd.AddCommand(newConfigInitCommand(c))

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display effective configuration after merging all sources.

Shows which config files were loaded and the final merged configuration.
Environment overrides (JIRA_*) are applied; the API token is never printed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.ShowConfigUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowConfigInput{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()

			// Display loaded files section
			_, _ = fmt.Fprintln(w, "[Loaded from]")
			printConfigSource(w, out.GlobalConfig)
			printConfigSource(w, out.ProjectConfig)
			_, _ = fmt.Fprintln(w)

			// Display effective config in TOML format
			_, _ = fmt.Fprintln(w, "[Effective Config]")
			return formatEffectiveConfig(w, out.EffectiveConfig)
		},
	}

	return cmd
}

func printConfigSource(w io.Writer, info domain.ConfigInfo) {
	if info.Path == "" {
		return
	}
	if info.Exists {
		_, _ = fmt.Fprintf(w, "- %s\n", info.Path)
	} else {
		_, _ = fmt.Fprintf(w, "- %s (not found)\n", info.Path)
	}
}

// effectiveConfig mirrors the config file layout for display.
// The API token is never included.
type effectiveConfig struct {
	Backend struct {
		BaseURL    string `toml:"base_url"`
		ProjectKey string `toml:"project_key"`
		Timeout    string `toml:"timeout"`
	} `toml:"backend"`
	Assignees struct {
		Names []string `toml:"names"`
	} `toml:"assignees"`
	Jira struct {
		Domain         string `toml:"domain"`
		Email          string `toml:"email"`
		EpicField      string `toml:"epic_field"`
		StartDateField string `toml:"start_date_field"`
		MaxResults     int    `toml:"max_results"`
	} `toml:"jira"`
	Server struct {
		Addr           string   `toml:"addr"`
		AllowedOrigins []string `toml:"allowed_origins"`
	} `toml:"server"`
	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
}

// formatEffectiveConfig formats the effective config in TOML format.
func formatEffectiveConfig(w io.Writer, cfg *domain.Config) error {
	if cfg == nil {
		return domain.ErrConfigNil
	}

	var out effectiveConfig
	out.Backend.BaseURL = cfg.Backend.BaseURL
	out.Backend.ProjectKey = cfg.Backend.ProjectKey
	out.Backend.Timeout = cfg.Backend.Timeout.String()
	out.Assignees.Names = cfg.Assignees.Names
	out.Jira.Domain = cfg.Jira.Domain
	out.Jira.Email = cfg.Jira.Email
	out.Jira.EpicField = cfg.Jira.EpicField
	out.Jira.StartDateField = cfg.Jira.StartDateField
	out.Jira.MaxResults = cfg.Jira.MaxResults
	out.Server.Addr = cfg.Server.Addr
	out.Server.AllowedOrigins = cfg.Server.AllowedOrigins
	out.Log.Level = cfg.Log.Level

	// Encode to TOML
	if err := toml.NewEncoder(w).Encode(out); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// newConfigTemplateCommand creates the config template subcommand.
func newConfigTemplateCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Output configuration template",
		Long: `Output a configuration file template to stdout.

The template is filled with the built-in defaults. It does not depend on
existing configuration files and will work even if they are broken.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.ShowConfigTemplateUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowConfigTemplateInput{
				Config: domain.NewDefaultConfig(),
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprint(cmd.OutOrStdout(), out.Template)
			return nil
		},
	}

	return cmd
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(c *app.Container) *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate configuration file template",
		Long: `Generate a configuration file template.

By default, creates the project configuration file ./.boulanger.toml.
With --global, creates the global configuration file at ~/.config/boulanger/config.toml.

Error conditions:
- Target file already exists: error`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.InitConfigUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.InitConfigInput{
				Global: global,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", out.Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Generate global configuration")

	return cmd
}
