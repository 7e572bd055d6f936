package logs

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/runt18/gcpctl/pkg/gcp"
	"github.com/runt18/gcpctl/pkg/gcp/logadmin"
	"github.com/runt18/gcpctl/pkg/output"

	"github.com/spf13/cobra"
)

func newResourcesCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "resources",
		Short: "List monitored resource types",
		Long: `List the monitored resource descriptors the Logging backend accepts,
the valid values for 'logs write --resource-type'.

Examples:
  gcpctl logs resources
  gcpctl logs resources -o json`,

		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flagProject, _ := cmd.Flags().GetString("project")
			outputFormat, _ := cmd.Flags().GetString("output")

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			project, err := gcp.ResolveProject(ctx, flagProject)
			if err != nil {
				return err
			}

			client, err := logadmin.NewClient(ctx, project)
			if err != nil {
				return fmt.Errorf("creating client: %w", err)
			}

			descs, err := client.ResourceDescriptors(ctx)
			if err != nil {
				return fmt.Errorf("listing resource descriptors: %w", err)
			}

			format := output.ParseFormat(outputFormat)
			if format != output.FormatText {
				return output.Print(os.Stdout, format, descs)
			}

			t := output.NewTable(os.Stdout, "TYPE", "DISPLAY_NAME", "LABELS")
			for _, d := range descs {
				keys := make([]string, 0, len(d.Labels))
				for _, l := range d.Labels {
					keys = append(keys, l.Key)
				}
				t.AddRow(d.Type, d.DisplayName, strings.Join(keys, ","))
			}
			return t.Flush()
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Maximum time for the listing")

	return cmd
}
