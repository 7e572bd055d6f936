package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/runt18/gcpctl/pkg/gcp/gcs"
	"github.com/runt18/gcpctl/pkg/output"

	"github.com/spf13/cobra"
	storageapi "google.golang.org/api/storage/v1"
)

func newStatCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "stat <bucket> <object>",
		Short: "Show object metadata",
		Long: `Show the metadata of one object. A missing object is an error,
distinct from an empty listing.

Examples:
  gcpctl storage stat my-bucket backups/db.tar.gz
  gcpctl storage stat my-bucket backups/db.tar.gz -o yaml`,

		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bucket, name := args[0], args[1]

			outputFormat, _ := cmd.Flags().GetString("output")

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			client, err := gcs.NewClient(ctx)
			if err != nil {
				return fmt.Errorf("creating client: %w", err)
			}

			obj, err := client.Object(ctx, bucket, name)
			if err != nil {
				return err
			}

			format := output.ParseFormat(outputFormat)
			if format != output.FormatText {
				return output.Print(cmd.OutOrStdout(), format, obj)
			}

			printObject(cmd.OutOrStdout(), obj)
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Maximum time for the lookup")

	return cmd
}

func printObject(w io.Writer, o *storageapi.Object) {
	fmt.Fprintf(w, "Name:          %s\n", o.Name)
	fmt.Fprintf(w, "Bucket:        %s\n", o.Bucket)
	fmt.Fprintf(w, "Size:          %s (%d bytes)\n", output.FormatBytes(o.Size), o.Size)
	fmt.Fprintf(w, "Content type:  %s\n", o.ContentType)
	fmt.Fprintf(w, "Storage class: %s\n", o.StorageClass)
	fmt.Fprintf(w, "Created:       %s\n", o.TimeCreated)
	fmt.Fprintf(w, "Updated:       %s\n", o.Updated)
	fmt.Fprintf(w, "Generation:    %d\n", o.Generation)
	if o.Md5Hash != "" {
		fmt.Fprintf(w, "MD5:           %s\n", o.Md5Hash)
	}
	if o.Crc32c != "" {
		fmt.Fprintf(w, "CRC32C:        %s\n", o.Crc32c)
	}
	for k, v := range o.Metadata {
		fmt.Fprintf(w, "Meta %s: %s\n", k, v)
	}
}
