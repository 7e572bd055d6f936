package storage

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/runt18/gcpctl/pkg/gcp/gcs"

	"github.com/spf13/cobra"
)

func newRmCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "rm <bucket> <object>...",
		Short: "Delete objects",
		Long: `Delete one or more objects from a bucket. A missing object is an
error; objects before it in the argument list stay deleted.

Examples:
  gcpctl storage rm my-bucket old.log
  gcpctl storage rm my-bucket tmp/a tmp/b tmp/c`,

		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bucket := args[0]

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			client, err := gcs.NewClient(ctx)
			if err != nil {
				return fmt.Errorf("creating client: %w", err)
			}

			for _, name := range args[1:] {
				if err := client.DeleteObject(ctx, bucket, name); err != nil {
					return fmt.Errorf("deleting object %s/%s: %w", bucket, name, err)
				}
				fmt.Fprintf(os.Stderr, "Removed %s/%s\n", bucket, name)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Maximum time for the deletions")

	return cmd
}
