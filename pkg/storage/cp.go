package storage

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/runt18/gcpctl/pkg/gcp/gcs"
	"github.com/runt18/gcpctl/pkg/output"

	"github.com/spf13/cobra"
)

func newCpCmd() *cobra.Command {
	var (
		force   bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "cp <src-bucket> <src-object> <dst-bucket> <dst-object>",
		Short: "Copy an object server-side",
		Long: `Copy an object to another name or bucket without downloading it.

Like put, the copy refuses to overwrite an existing destination unless
--force is given.

Examples:
  # Copy within a bucket
  gcpctl storage cp my-bucket config.yaml my-bucket config.yaml.bak

  # Copy across buckets
  gcpctl storage cp staging-bucket release.tar.gz prod-bucket release.tar.gz`,

		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			srcBucket, srcName, dstBucket, dstName := args[0], args[1], args[2], args[3]

			outputFormat, _ := cmd.Flags().GetString("output")

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			client, err := gcs.NewClient(ctx)
			if err != nil {
				return fmt.Errorf("creating client: %w", err)
			}

			if !force {
				exists, err := client.ObjectExists(ctx, dstBucket, dstName)
				if err != nil {
					return fmt.Errorf("checking for existing object: %w", err)
				}
				if exists {
					return fmt.Errorf("object %s/%s already exists (use --force to overwrite)", dstBucket, dstName)
				}
			}

			copied, err := client.CopyObject(ctx, srcBucket, srcName, dstBucket, dstName)
			if err != nil {
				return fmt.Errorf("copying %s/%s: %w", srcBucket, srcName, err)
			}

			format := output.ParseFormat(outputFormat)
			if format != output.FormatText {
				return output.Print(os.Stdout, format, copied)
			}
			fmt.Fprintf(os.Stdout, "Copied %s/%s to %s/%s\n", srcBucket, srcName, copied.Bucket, copied.Name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing destination object")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Maximum time for the copy")

	return cmd
}
