package logs

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/runt18/gcpctl/pkg/gcp"
	"github.com/runt18/gcpctl/pkg/gcp/logadmin"

	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "delete <log>...",
		Short: "Delete logs",
		Long: `Delete all entries of one or more logs. The log name disappears from
'logs list' once its entries are gone; writing to it again recreates it.

Examples:
  gcpctl logs delete my-app
  gcpctl logs delete my-app staging-app`,

		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flagProject, _ := cmd.Flags().GetString("project")

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

			for _, logID := range args {
				if err := client.DeleteLog(ctx, logID); err != nil {
					return fmt.Errorf("deleting log %s: %w", logID, err)
				}
				fmt.Fprintf(os.Stderr, "Deleted log %s\n", logID)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Maximum time for the deletions")

	return cmd
}
