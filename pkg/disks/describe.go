package disks

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/runt18/gcpctl/pkg/gcp"
	"github.com/runt18/gcpctl/pkg/gcp/gce"
	"github.com/runt18/gcpctl/pkg/output"

	"github.com/spf13/cobra"
	compute "google.golang.org/api/compute/v1"
)

func newDescribeCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "describe <name>",
		Short: "Show details of one persistent disk",
		Long: `Show details of a persistent disk in the given zone.

Examples:
  # Inspect a disk
  gcpctl disks describe my-disk --zone us-central1-a

  # Full API resource as YAML
  gcpctl disks describe my-disk --zone us-central1-a -o yaml`,

		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			flagProject, _ := cmd.Flags().GetString("project")
			zone, _ := cmd.Flags().GetString("zone")
			outputFormat, _ := cmd.Flags().GetString("output")

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

			disk, err := client.Disk(ctx, zone, name)
			if err != nil {
				return err
			}

			format := output.ParseFormat(outputFormat)
			if format != output.FormatText {
				return output.Print(os.Stdout, format, disk)
			}

			printDisk(os.Stdout, disk)
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Maximum time for the lookup")

	return cmd
}

func printDisk(w *os.File, d *compute.Disk) {
	fmt.Fprintf(w, "Name:         %s\n", d.Name)
	fmt.Fprintf(w, "Zone:         %s\n", gce.ZoneName(d.Zone))
	fmt.Fprintf(w, "Size:         %d GB\n", d.SizeGb)
	fmt.Fprintf(w, "Type:         %s\n", gce.TypeName(d.Type))
	fmt.Fprintf(w, "Status:       %s\n", d.Status)
	fmt.Fprintf(w, "Created:      %s (%s ago)\n", d.CreationTimestamp, output.Age(d.CreationTimestamp))
	if d.Description != "" {
		fmt.Fprintf(w, "Description:  %s\n", d.Description)
	}
	if d.SourceImage != "" {
		fmt.Fprintf(w, "Source image: %s\n", d.SourceImage)
	}
	if d.SourceSnapshot != "" {
		fmt.Fprintf(w, "Source snap:  %s\n", d.SourceSnapshot)
	}
	for _, u := range d.Users {
		fmt.Fprintf(w, "Attached to:  %s\n", lastPathSegment(u))
	}
}

func lastPathSegment(u string) string {
	if i := strings.LastIndex(u, "/"); i >= 0 {
		return u[i+1:]
	}
	return u
}
