package disks

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/runt18/gcpctl/pkg/gcp"
	"github.com/runt18/gcpctl/pkg/gcp/gce"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	compute "google.golang.org/api/compute/v1"
)

func newDeleteCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "delete <name>...",
		Short: "Delete persistent disks",
		Long: `Delete one or more persistent disks in the given zone.

All deletions are submitted in argument order before any is waited on, then
the waits run concurrently. The command fails if any disk is missing or any
operation fails.

Examples:
  # Delete one disk
  gcpctl disks delete my-disk --zone us-central1-a

  # Delete several disks at once
  gcpctl disks delete scratch-1 scratch-2 scratch-3 --zone us-central1-a`,

		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flagProject, _ := cmd.Flags().GetString("project")
			zone, _ := cmd.Flags().GetString("zone")

			if zone == "" {
				return fmt.Errorf("--zone is required (or set GCPCTL_ZONE)")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			project, err := gcp.ResolveProject(ctx, flagProject)
			if err != nil {
				return err
			}

			client, err := gce.NewClient(ctx, project)
			if err != nil {
				return fmt.Errorf("creating client: %w", err)
			}

			// Submit every delete before waiting on any, in argument
			// order, so partial failures report predictably.
			ops := make([]*compute.Operation, 0, len(args))
			for _, name := range args {
				op, err := client.DeleteDisk(ctx, zone, name)
				if err != nil {
					return fmt.Errorf("deleting disk %s: %w", name, err)
				}
				fmt.Fprintf(os.Stderr, "Deleting disk %s\n", name)
				ops = append(ops, op)
			}

			var g errgroup.Group
			for i, op := range ops {
				op := op
				name := args[i]
				g.Go(func() error {
					if err := client.WaitForOperation(ctx, op); err != nil {
						return fmt.Errorf("deleting disk %s: %w", name, err)
					}
					fmt.Fprintf(os.Stderr, "Deleted disk %s\n", name)
					return nil
				})
			}
			return g.Wait()
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "Maximum time to wait for the operations")

	return cmd
}
