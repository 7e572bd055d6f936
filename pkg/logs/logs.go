// Package logs implements the "logs" command subtree for Cloud Logging:
// reading and writing log entries, listing and deleting logs, and
// inspecting the monitored-resource descriptor catalog.
package logs

import (
	"github.com/spf13/cobra"
)

// NewLogsCmd creates the logs command tree.
func NewLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Read and write Cloud Logging entries",
		Long: `Read and write Cloud Logging entries.

Filter clauses given to 'logs read' (--log, --severity, --after, --before,
--filter) are AND-joined into one Logging filter expression.`,
	}

	cmd.AddCommand(newReadCmd())
	cmd.AddCommand(newWriteCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newDeleteCmd())
	cmd.AddCommand(newResourcesCmd())

	return cmd
}
