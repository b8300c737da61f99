// Package cli provides the command-line interface for boulanger.
package cli

import (
	"fmt"

	"github.com/boulangers/boulanger/internal/app"
	"github.com/boulangers/boulanger/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupIssues = "issues"
	groupSetup  = "setup"
)

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// NewRootCommand creates the root command for boulanger.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "boulanger",
		Short: "Browse the epic, task and subtask hierarchy of a project",
		Long: `boulanger searches an issue tracker backend and shows the
epic -> task -> subtask hierarchy of a project as a flat, indented table.

Run without arguments to open the interactive viewer, use "search" for
scriptable output, or "serve" to run the hierarchy backend itself.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil || c.AppConfig == nil {
				return nil
			}

			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			// Default: launch TUI
			return launchTUIFunc(c)
		},
	}

	root.AddGroup(
		&cobra.Group{ID: groupIssues, Title: "Issue Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	searchCmd := newSearchCommand(c)
	searchCmd.GroupID = groupIssues

	tuiCmd := newTUICommand(c)
	tuiCmd.GroupID = groupIssues

	serveCmd := newServeCommand(c)
	serveCmd.GroupID = groupIssues

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	root.AddCommand(
		searchCmd,
		tuiCmd,
		serveCmd,
		configCmd,
	)

	return root
}

// launchTUI runs the interactive viewer until the user quits.
func launchTUI(c *app.Container) error {
	p := tea.NewProgram(tui.New(c), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
