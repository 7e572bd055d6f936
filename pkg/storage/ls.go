package storage

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/runt18/gcpctl/pkg/gcp/gcs"
	"github.com/runt18/gcpctl/pkg/output"

	"github.com/spf13/cobra"
	"google.golang.org/api/iterator"
	storageapi "google.golang.org/api/storage/v1"
)

func newLsCmd() *cobra.Command {
	var (
		limit   int
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "ls <bucket> [prefix]",
		Short: "List objects in a bucket",
		Long: `List objects in a bucket, optionally narrowed to a name prefix.

Examples:
  # Everything in the bucket
  gcpctl storage ls my-bucket

  # Only objects under backups/
  gcpctl storage ls my-bucket backups/

  # JSON metadata
  gcpctl storage ls my-bucket -o json`,

		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bucket := args[0]
			var prefix string
			if len(args) == 2 {
				prefix = args[1]
			}

			outputFormat, _ := cmd.Flags().GetString("output")

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			client, err := gcs.NewClient(ctx)
			if err != nil {
				return fmt.Errorf("creating client: %w", err)
			}

			it := client.ListObjects(ctx, bucket, prefix, 0)
			var items []*storageapi.Object
			for {
				obj, err := it.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					return fmt.Errorf("listing objects: %w", err)
				}
				items = append(items, obj)
				if limit > 0 && len(items) >= limit {
					break
				}
			}

			format := output.ParseFormat(outputFormat)
			if format != output.FormatText {
				return output.Print(os.Stdout, format, items)
			}

			if len(items) == 0 {
				fmt.Fprintln(os.Stdout, "No objects found.")
				return nil
			}

			t := output.NewTable(os.Stdout, "NAME", "SIZE", "CLASS", "UPDATED")
			for _, o := range items {
				t.AddRow(
					o.Name,
					output.FormatBytes(o.Size),
					o.StorageClass,
					output.Age(o.Updated)+" ago",
				)
			}
			return t.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of objects to show (0 = all)")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Maximum time for the listing")

	return cmd
}
