package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/boulangers/boulanger/internal/app"
	"github.com/boulangers/boulanger/internal/domain"
	"github.com/spf13/cobra"
)

// newServeCommand creates the serve command that runs the hierarchy backend.
func newServeCommand(c *app.Container) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the hierarchy backend",
		Long: `Run the HTTP backend that the viewer queries.

Routes:
  GET /project/{key}/hierarchy   epic -> task -> subtask tree
  GET /project/{key}/epics       flat list of epics
  GET /project/{key}/tasks       flat list of tasks
  GET /project/{key}/subtasks    flat list of subtasks
  GET /project/{key}/stories     flat list of stories
  GET /health

Every route accepts ?keyword= and ?assignees=a,b. Issues are read from Jira
Cloud using JIRA_DOMAIN, JIRA_EMAIL and JIRA_API_TOKEN (environment or .env).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !c.AppConfig.Jira.HasCredentials() {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", domain.ErrMissingCredentials)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return c.Server(addr).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from [server].addr)")

	return cmd
}
