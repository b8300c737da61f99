package cli

import (
	"github.com/spf13/cobra"

	"github.com/boulangers/boulanger/internal/app"
)

// newTUICommand creates the tui command for launching the interactive viewer.
// This is the same as running `boulanger` without arguments.
func newTUICommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Launch interactive TUI",
		Long: `Launch the interactive issue viewer.

Type a keyword with "/", cycle the category with "c", pick assignees with "a"
and press enter to search. Rows with children collapse with space.
Fetch errors are written to the log file under the state directory.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}
	return cmd
}
