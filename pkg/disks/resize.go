package disks

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/runt18/gcpctl/pkg/gcp"
	"github.com/runt18/gcpctl/pkg/gcp/gce"
	"github.com/runt18/gcpctl/pkg/output"

	"github.com/spf13/cobra"
)

func newResizeCmd() *cobra.Command {
	var (
		sizeGb  int64
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "resize <name>",
		Short: "Grow a persistent disk",
		Long: `Grow a persistent disk to a new size and wait for the operation to
complete. Disks can only grow; a target at or below the current size fails
before any request is submitted.

Examples:
  # Grow a disk to 1 TB
  gcpctl disks resize my-disk --zone us-central1-a --size-gb 1024`,

		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			flagProject, _ := cmd.Flags().GetString("project")
			zone, _ := cmd.Flags().GetString("zone")
			outputFormat, _ := cmd.Flags().GetString("output")

			if zone == "" {
				return fmt.Errorf("--zone is required (or set GCPCTL_ZONE)")
			}
			if sizeGb <= 0 {
				return fmt.Errorf("--size-gb is required")
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

			current, err := client.Disk(ctx, zone, name)
			if err != nil {
				return err
			}
			if sizeGb <= current.SizeGb {
				return fmt.Errorf("disk %q is already %d GB; disks can only grow", name, current.SizeGb)
			}

			fmt.Fprintf(os.Stderr, "Resizing disk %s from %d GB to %d GB\n", name, current.SizeGb, sizeGb)

			op, err := client.ResizeDisk(ctx, zone, name, sizeGb)
			if err != nil {
				return fmt.Errorf("resizing disk %s: %w", name, err)
			}
			if err := client.WaitForOperation(ctx, op); err != nil {
				return fmt.Errorf("resizing disk %s: %w", name, err)
			}

			resized, err := client.Disk(ctx, zone, name)
			if err != nil {
				return err
			}

			format := output.ParseFormat(outputFormat)
			if format != output.FormatText {
				return output.Print(os.Stdout, format, resized)
			}
			fmt.Fprintf(os.Stdout, "Resized disk %s to %d GB\n", resized.Name, resized.SizeGb)
			return nil
		},
	}

	cmd.Flags().Int64Var(&sizeGb, "size-gb", 0, "New disk size in GB (must be larger than the current size)")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "Maximum time to wait for the operation")

	return cmd
}
