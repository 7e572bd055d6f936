// Package storage implements the "storage" command subtree for Cloud
// Storage object management.
package storage

import (
	"github.com/spf13/cobra"
)

// NewStorageCmd creates the storage command tree.
func NewStorageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Manage Cloud Storage objects",
		Long: `Manage Cloud Storage objects: list, inspect, read, upload, copy,
and delete.

Uploads refuse to overwrite an existing object unless --force is given.`,
	}

	cmd.AddCommand(newLsCmd())
	cmd.AddCommand(newStatCmd())
	cmd.AddCommand(newCatCmd())
	cmd.AddCommand(newPutCmd())
	cmd.AddCommand(newCpCmd())
	cmd.AddCommand(newRmCmd())

	return cmd
}
