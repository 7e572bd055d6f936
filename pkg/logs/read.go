package logs

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/runt18/gcpctl/pkg/gcp"
	"github.com/runt18/gcpctl/pkg/gcp/logadmin"
	"github.com/runt18/gcpctl/pkg/output"

	"github.com/spf13/cobra"
	"google.golang.org/api/iterator"
	loggingapi "google.golang.org/api/logging/v2"
)

func newReadCmd() *cobra.Command {
	var (
		log       string
		severity  string
		after     string
		before    string
		filter    string
		ascending bool
		limit     int
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "read",
		Short: "Read log entries",
		Long: `Read log entries from the project, newest first by default.

All given restrictions are AND-joined into one filter expression.

Examples:
  # Last 100 entries of one log
  gcpctl logs read --log my-app

  # Errors and worse since a point in time
  gcpctl logs read --severity error --after 2026-08-25T00:00:00Z

  # Raw filter clause, combined with the flags
  gcpctl logs read --log my-app --filter 'textPayload:"timeout"'

  # Oldest first, as JSON
  gcpctl logs read --log my-app --order-asc -o json`,

		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flagProject, _ := cmd.Flags().GetString("project")
			outputFormat, _ := cmd.Flags().GetString("output")

			if severity != "" && !logadmin.ValidSeverity(severity) {
				return fmt.Errorf("unknown severity %q (one of: %v)", severity, logadmin.Severities)
			}

			q := logadmin.EntryQuery{
				Log:         log,
				MinSeverity: severity,
				Filter:      filter,
				Ascending:   ascending,
			}
			var err error
			if q.After, err = parseTime(after); err != nil {
				return fmt.Errorf("parsing --after: %w", err)
			}
			if q.Before, err = parseTime(before); err != nil {
				return fmt.Errorf("parsing --before: %w", err)
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

			it := client.ListEntries(ctx, q)
			var entries []*loggingapi.LogEntry
			for {
				entry, err := it.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					return fmt.Errorf("reading entries: %w", err)
				}
				entries = append(entries, entry)
				if limit > 0 && len(entries) >= limit {
					break
				}
			}

			format := output.ParseFormat(outputFormat)
			if format != output.FormatText {
				return output.Print(os.Stdout, format, entries)
			}

			if len(entries) == 0 {
				fmt.Fprintln(os.Stdout, "No entries found.")
				return nil
			}

			t := output.NewTable(os.Stdout, "TIMESTAMP", "SEVERITY", "LOG", "PAYLOAD")
			for _, e := range entries {
				t.AddRow(
					e.Timestamp,
					e.Severity,
					client.LogID(e.LogName),
					output.Truncate(payloadSummary(e), 80),
				)
			}
			return t.Flush()
		},
	}

	cmd.Flags().StringVar(&log, "log", "", "Restrict to one log, by log ID")
	cmd.Flags().StringVar(&severity, "severity", "", "Minimum severity (e.g. warning, error)")
	cmd.Flags().StringVar(&after, "after", "", "Only entries at or after this RFC 3339 time")
	cmd.Flags().StringVar(&before, "before", "", "Only entries before this RFC 3339 time")
	cmd.Flags().StringVar(&filter, "filter", "", "Raw Logging filter clause, AND-joined with the other flags")
	cmd.Flags().BoolVar(&ascending, "order-asc", false, "Oldest entries first")
	cmd.Flags().IntVar(&limit, "limit", 100, "Maximum number of entries to show (0 = all)")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Maximum time for the listing")

	return cmd
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}

// payloadSummary renders whichever payload field an entry carries as one
// line of text.
func payloadSummary(e *loggingapi.LogEntry) string {
	switch {
	case e.TextPayload != "":
		return e.TextPayload
	case len(e.JsonPayload) > 0:
		return string(e.JsonPayload)
	case len(e.ProtoPayload) > 0:
		return string(e.ProtoPayload)
	default:
		return ""
	}
}
