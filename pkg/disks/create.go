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

func newCreateCmd() *cobra.Command {
	var (
		sizeGb         int64
		diskType       string
		description    string
		sourceImage    string
		sourceSnapshot string
		timeout        time.Duration
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a persistent disk",
		Long: `Create a persistent disk and wait for the operation to complete.

Creation refuses to overwrite: if a disk with the same name already exists
in the zone, the command fails.

Examples:
  # A blank 500 GB standard disk
  gcpctl disks create my-disk --zone us-central1-a

  # An SSD from a public image
  gcpctl disks create boot-disk --zone us-central1-a \
      --type pd-ssd --source-image projects/debian-cloud/global/images/family/debian-12

  # Restore from a snapshot
  gcpctl disks create restored --zone us-central1-a --source-snapshot nightly-backup`,

		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			flagProject, _ := cmd.Flags().GetString("project")
			zone, _ := cmd.Flags().GetString("zone")
			outputFormat, _ := cmd.Flags().GetString("output")

			if zone == "" {
				return fmt.Errorf("--zone is required (or set GCPCTL_ZONE)")
			}
			if sourceImage != "" && sourceSnapshot != "" {
				return fmt.Errorf("--source-image and --source-snapshot are mutually exclusive")
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

			exists, err := client.DiskExists(ctx, zone, name)
			if err != nil {
				return fmt.Errorf("checking for existing disk: %w", err)
			}
			if exists {
				return fmt.Errorf("disk %q already exists in zone %s", name, zone)
			}

			disk := &compute.Disk{
				Name:           name,
				SizeGb:         sizeGb,
				Description:    description,
				SourceImage:    sourceImage,
				SourceSnapshot: sourceSnapshot,
			}
			if diskType != "" {
				disk.Type = diskTypeURL(project, zone, diskType)
			}
			// A sourced disk inherits its size unless one was asked for.
			if (sourceImage != "" || sourceSnapshot != "") && !cmd.Flags().Changed("size-gb") {
				disk.SizeGb = 0
			}

			fmt.Fprintf(os.Stderr, "Creating disk %s in %s\n", name, zone)

			op, err := client.CreateDisk(ctx, zone, disk)
			if err != nil {
				return fmt.Errorf("creating disk %s: %w", name, err)
			}
			if err := client.WaitForOperation(ctx, op); err != nil {
				return fmt.Errorf("creating disk %s: %w", name, err)
			}

			// The operation carries no payload; re-fetch the disk.
			created, err := client.Disk(ctx, zone, name)
			if err != nil {
				return err
			}

			format := output.ParseFormat(outputFormat)
			if format != output.FormatText {
				return output.Print(os.Stdout, format, created)
			}
			fmt.Fprintf(os.Stdout, "Created disk %s (%d GB, %s) in %s\n",
				created.Name, created.SizeGb, gce.TypeName(created.Type), gce.ZoneName(created.Zone))
			return nil
		},
	}

	cmd.Flags().Int64Var(&sizeGb, "size-gb", 500, "Disk size in GB")
	cmd.Flags().StringVar(&diskType, "type", "pd-standard", "Disk type (pd-standard, pd-balanced, pd-ssd, or a full type URL)")
	cmd.Flags().StringVar(&description, "description", "", "Disk description")
	cmd.Flags().StringVar(&sourceImage, "source-image", "", "Image to initialize the disk from")
	cmd.Flags().StringVar(&sourceSnapshot, "source-snapshot", "", "Snapshot to restore the disk from")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "Maximum time to wait for the operation")

	return cmd
}

// diskTypeURL expands a short type name like "pd-ssd" to the resource path
// the API expects. Values already containing a slash pass through.
func diskTypeURL(project, zone, diskType string) string {
	if strings.Contains(diskType, "/") {
		return diskType
	}
	return fmt.Sprintf("projects/%s/zones/%s/diskTypes/%s", project, zone, diskType)
}
