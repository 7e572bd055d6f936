package logs

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/runt18/gcpctl/pkg/gcp"
	"github.com/runt18/gcpctl/pkg/gcp/logadmin"
	"github.com/runt18/gcpctl/pkg/output"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the project's logs",
		Long: `List the names of all logs in the project that have entries.

Examples:
  gcpctl logs list
  gcpctl logs list -o json`,

		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flagProject, _ := cmd.Flags().GetString("project")
			outputFormat, _ := cmd.Flags().GetString("output")

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			project, err := gcp.ResolveProject(ctx, flagProject)
			if err != nil {
				return err
			}

			client, err := logadmin.NewClient(ctx, project)
			if err != nil {
				return fmt.Errorf("creating client: %w", err)
			}

			names, err := client.ListLogs(ctx, 0).All()
			if err != nil {
				return fmt.Errorf("listing logs: %w", err)
			}

			ids := make([]string, 0, len(names))
			for _, n := range names {
				ids = append(ids, client.LogID(n))
			}

			format := output.ParseFormat(outputFormat)
			if format != output.FormatText {
				return output.Print(os.Stdout, format, ids)
			}

			if len(ids) == 0 {
				fmt.Fprintln(os.Stdout, "No logs found.")
				return nil
			}
			t := output.NewTable(os.Stdout, "NAME")
			for _, id := range ids {
				t.AddRow(id)
			}
			return t.Flush()
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Maximum time for the listing")

	return cmd
}
