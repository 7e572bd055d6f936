package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/runt18/gcpctl/pkg/gcp/gcs"
	"github.com/runt18/gcpctl/pkg/output"

	"github.com/spf13/cobra"
	storageapi "google.golang.org/api/storage/v1"
)

func newPutCmd() *cobra.Command {
	var (
		contentType string
		force       bool
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "put <bucket> <object> <file>",
		Short: "Upload an object",
		Long: `Upload a file as an object. Pass "-" as the file to read from stdin.

If the object already exists the upload fails; --force overwrites it as a
new generation.

Examples:
  # Upload a file
  gcpctl storage put my-bucket backups/db.tar.gz ./db.tar.gz

  # Pipe from stdin with an explicit content type
  tar cz var/log | gcpctl storage put my-bucket logs/bundle.tar.gz - --content-type application/gzip

  # Overwrite an existing object
  gcpctl storage put my-bucket config.yaml ./config.yaml --force`,

		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			bucket, name, file := args[0], args[1], args[2]

			outputFormat, _ := cmd.Flags().GetString("output")

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			client, err := gcs.NewClient(ctx)
			if err != nil {
				return fmt.Errorf("creating client: %w", err)
			}

			if !force {
				exists, err := client.ObjectExists(ctx, bucket, name)
				if err != nil {
					return fmt.Errorf("checking for existing object: %w", err)
				}
				if exists {
					return fmt.Errorf("object %s/%s already exists (use --force to overwrite)", bucket, name)
				}
			}

			var media io.Reader
			if file == "-" {
				media = os.Stdin
			} else {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("opening %s: %w", file, err)
				}
				defer f.Close()
				media = f
			}

			obj := &storageapi.Object{Name: name, ContentType: contentType}
			stored, err := client.UploadObject(ctx, bucket, obj, media)
			if err != nil {
				return fmt.Errorf("uploading %s/%s: %w", bucket, name, err)
			}

			format := output.ParseFormat(outputFormat)
			if format != output.FormatText {
				return output.Print(os.Stdout, format, stored)
			}
			fmt.Fprintf(os.Stdout, "Uploaded %s/%s (%s)\n", stored.Bucket, stored.Name, output.FormatBytes(stored.Size))
			return nil
		},
	}

	cmd.Flags().StringVar(&contentType, "content-type", "", "Content type of the object (default: detected by the backend)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing object")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "Maximum time for the upload")

	return cmd
}
