package logs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/runt18/gcpctl/pkg/gcp"
	"github.com/runt18/gcpctl/pkg/gcp/logadmin"

	"github.com/spf13/cobra"
	"google.golang.org/api/googleapi"
	loggingapi "google.golang.org/api/logging/v2"
)

func newWriteCmd() *cobra.Command {
	var (
		severity     string
		payloadJSON  string
		labels       []string
		resourceType string
		timeout      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "write <log> [message]",
		Short: "Write a log entry",
		Long: `Write one entry to a log. The log is created implicitly on first write.

The entry payload is either the message argument (text) or --payload-json
(structured), not both. The monitored resource type defaults to "global"
and is validated against the backend's descriptor catalog.

Examples:
  # A text entry
  gcpctl logs write my-app "deploy finished"

  # A structured entry with severity and labels
  gcpctl logs write my-app --payload-json '{"event":"deploy","rev":42}' \
      --severity notice --label env=prod --label team=infra`,

		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logID := args[0]
			var message string
			if len(args) == 2 {
				message = args[1]
			}

			flagProject, _ := cmd.Flags().GetString("project")

			if message == "" && payloadJSON == "" {
				return fmt.Errorf("either a message argument or --payload-json is required")
			}
			if message != "" && payloadJSON != "" {
				return fmt.Errorf("a message argument and --payload-json are mutually exclusive")
			}
			if severity != "" && !logadmin.ValidSeverity(severity) {
				return fmt.Errorf("unknown severity %q (one of: %v)", severity, logadmin.Severities)
			}

			entryLabels, err := parseLabels(labels)
			if err != nil {
				return err
			}

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

			if resourceType != "" && resourceType != "global" {
				ok, err := client.ValidResourceType(ctx, resourceType)
				if err != nil {
					return fmt.Errorf("validating resource type: %w", err)
				}
				if !ok {
					return fmt.Errorf("unknown monitored resource type %q; see 'gcpctl logs resources'", resourceType)
				}
			}

			entry := &loggingapi.LogEntry{
				Severity: strings.ToUpper(severity),
				Labels:   entryLabels,
			}
			if payloadJSON != "" {
				if !json.Valid([]byte(payloadJSON)) {
					return fmt.Errorf("--payload-json is not valid JSON")
				}
				entry.JsonPayload = googleapi.RawMessage(payloadJSON)
			} else {
				entry.TextPayload = message
			}

			var resource *loggingapi.MonitoredResource
			if resourceType != "" {
				resource = &loggingapi.MonitoredResource{Type: resourceType}
			}

			if err := client.WriteEntries(ctx, logID, resource, []*loggingapi.LogEntry{entry}); err != nil {
				return fmt.Errorf("writing entry: %w", err)
			}

			fmt.Fprintf(os.Stderr, "Wrote entry to log %s\n", logID)
			return nil
		},
	}

	cmd.Flags().StringVar(&severity, "severity", "", "Entry severity (default DEFAULT)")
	cmd.Flags().StringVar(&payloadJSON, "payload-json", "", "Structured JSON payload instead of a text message")
	cmd.Flags().StringArrayVar(&labels, "label", nil, "Entry label as key=value (repeatable)")
	cmd.Flags().StringVar(&resourceType, "resource-type", "global", "Monitored resource type for the entry")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Maximum time for the write")

	return cmd
}

func parseLabels(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	labels := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid label %q (want key=value)", p)
		}
		labels[k] = v
	}
	return labels, nil
}
