package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/boulangers/boulanger/internal/app"
	"github.com/boulangers/boulanger/internal/domain"
	"github.com/boulangers/boulanger/internal/usecase"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats of the search command.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

// noDataMessage is printed when a search returns no rows.
const noDataMessage = "No data to display."

// newSearchCommand creates the search command.
func newSearchCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Keyword   string
		Category  string
		Output    string
		Assignees []string
	}

	cmd := &cobra.Command{
		Use:     "search",
		Aliases: []string{"ls"},
		Short:   "Search issues and print the flattened hierarchy",
		Long: `Search the backend and print one row per issue.

With --category all (the default) the epic -> task -> subtask hierarchy is
printed depth-first with keys indented by level. Other categories list a
single issue type.

Examples:
  boulanger search -k login
  boulanger search -c task -a jenn.y -a imo.boo
  boulanger search -o json | jq '.[].key'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			category := domain.ParseCategory(opts.Category)
			if !category.IsValid() {
				return fmt.Errorf("invalid category %q: must be one of all, epic, task, subtask, story", opts.Category)
			}

			uc := c.SearchIssuesUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.SearchIssuesInput{
				Keyword:   opts.Keyword,
				Category:  category,
				Assignees: opts.Assignees,
			})
			if err != nil {
				return err
			}

			return printRows(cmd.OutOrStdout(), out.Rows, opts.Output)
		},
	}

	cmd.Flags().StringVarP(&opts.Keyword, "keyword", "k", "", "Free-text keyword")
	cmd.Flags().StringVarP(&opts.Category, "category", "c", string(domain.CategoryAll), "Category: all, epic, task, subtask, story")
	cmd.Flags().StringSliceVarP(&opts.Assignees, "assignee", "a", nil, "Filter by assignee (repeatable or comma-separated)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", outputTable, "Output format: table, json, yaml")

	return cmd
}

// printRows writes rows in the requested format.
func printRows(w io.Writer, rows []domain.Row, format string) error {
	switch format {
	case outputTable, "":
		printRowsTable(w, rows)
		return nil
	case outputJSON:
		if rows == nil {
			rows = []domain.Row{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case outputYAML:
		if rows == nil {
			rows = []domain.Row{}
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %s", domain.ErrUnknownOutputFormat, format)
}

// printRowsTable prints rows as an aligned table.
func printRowsTable(w io.Writer, rows []domain.Row) {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, noDataMessage)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	// Header
	_, _ = fmt.Fprintln(tw, "KEY\tPARENT\tSUMMARY\tTYPE\tSTATUS\tASSIGNEE\tDUE")

	// Rows
	for _, row := range rows {
		parentStr := "-"
		if row.Parent != nil {
			parentStr = *row.Parent
		}

		_, _ = fmt.Fprintf(tw, "%s%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			strings.Repeat("  ", row.Depth),
			row.Key,
			parentStr,
			row.Summary,
			row.Type,
			row.Status,
			row.Assignee,
			row.DueDate,
		)
	}
}
