package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/runt18/gcpctl/pkg/gcp/gcs"

	"github.com/spf13/cobra"
)

func newCatCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "cat <bucket> <object>",
		Short: "Stream an object's contents to stdout",
		Long: `Stream an object's contents to stdout, for piping into other tools.

Examples:
  gcpctl storage cat my-bucket logs/app.log | grep ERROR
  gcpctl storage cat my-bucket backups/db.tar.gz > db.tar.gz`,

		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bucket, name := args[0], args[1]

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			client, err := gcs.NewClient(ctx)
			if err != nil {
				return fmt.Errorf("creating client: %w", err)
			}

			body, err := client.ReadObject(ctx, bucket, name)
			if err != nil {
				return err
			}
			defer body.Close()

			if _, err := io.Copy(os.Stdout, body); err != nil {
				return fmt.Errorf("reading object %s/%s: %w", bucket, name, err)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "Maximum time for the download")

	return cmd
}
