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
	compute "google.golang.org/api/compute/v1"
	"google.golang.org/api/iterator"
)

func newListCmd() *cobra.Command {
	var (
		matchZone string
		limit     int
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "list [name]",
		Short: "List persistent disks",
		Long: `List persistent disks across all zones, or in one zone with --zone.

The optional name argument keeps only disks with that exact name. Zone
narrowing beyond a single zone happens client-side with --match-zone.

Examples:
  # List every disk in the project
  gcpctl disks list

  # List disks in one zone
  gcpctl disks list --zone us-central1-a

  # All disks named "scratch", in any zone
  gcpctl disks list scratch

  # Disks in US zones only
  gcpctl disks list --match-zone us

  # JSON output
  gcpctl disks list -o json`,

		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			}

			flagProject, _ := cmd.Flags().GetString("project")
			zone, _ := cmd.Flags().GetString("zone")
			outputFormat, _ := cmd.Flags().GetString("output")

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

			it := client.ListDisks(ctx, gce.ListOptions{
				Zone:      zone,
				Name:      name,
				MatchZone: matchZone,
			})

			var items []*compute.Disk
			for {
				disk, err := it.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					return fmt.Errorf("listing disks: %w", err)
				}
				items = append(items, disk)
				if limit > 0 && len(items) >= limit {
					break
				}
			}

			format := output.ParseFormat(outputFormat)
			if format != output.FormatText {
				return output.Print(os.Stdout, format, items)
			}

			if len(items) == 0 {
				fmt.Fprintln(os.Stdout, "No disks found.")
				return nil
			}

			t := output.NewTable(os.Stdout, "NAME", "ZONE", "SIZE_GB", "TYPE", "STATUS", "AGE")
			for _, d := range items {
				t.AddRow(
					d.Name,
					gce.ZoneName(d.Zone),
					fmt.Sprintf("%d", d.SizeGb),
					gce.TypeName(d.Type),
					d.Status,
					output.Age(d.CreationTimestamp),
				)
			}
			return t.Flush()
		},
	}

	cmd.Flags().StringVar(&matchZone, "match-zone", "", "Keep only disks whose zone contains this substring")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of disks to show (0 = all)")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Maximum time for the listing")

	return cmd
}
