// Package disks implements the "disks" command subtree for Compute Engine
// persistent disk management.
//
// This package is self-contained so it can be extracted as a standalone
// plugin binary without depending on the parent pkg/cli package.
package disks

import (
	"github.com/spf13/cobra"
)

// NewDisksCmd creates the disks command tree.
func NewDisksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disks",
		Short: "Manage Compute Engine persistent disks",
		Long: `Manage Compute Engine persistent disks: list across zones, inspect,
create, resize, and delete.

Mutating commands submit an asynchronous operation and wait for it to
complete before returning.`,
	}

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newDescribeCmd())
	cmd.AddCommand(newCreateCmd())
	cmd.AddCommand(newDeleteCmd())
	cmd.AddCommand(newResizeCmd())

	return cmd
}
