package cli

import (
	"fmt"
	"os"

	"github.com/runt18/gcpctl/pkg/config"
	"github.com/runt18/gcpctl/pkg/disks"
	"github.com/runt18/gcpctl/pkg/logs"
	"github.com/runt18/gcpctl/pkg/storage"

	"github.com/spf13/cobra"
)

var (
	project      string
	zone         string
	outputFormat string
	configPath   string
)

var rootCmd = &cobra.Command{
	Use:   "gcpctl",
	Short: "CLI for Google Cloud disks, logs, and storage objects",
	Long: `gcpctl exposes Google Cloud Platform resources as shell commands:
Compute Engine persistent disks, Cloud Logging entries and logs, and
Cloud Storage objects.

Configuration priority: CLI flags > environment variables > config file (~/.gcpctl/config.yaml).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
}

func loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if project == "" && cfg.Project != "" {
		project = cfg.Project
	}
	if zone == "" && cfg.Zone != "" {
		zone = cfg.Zone
	}
	if !cmd.Flags().Changed("output") && cfg.Output != "" {
		outputFormat = cfg.Output
	}

	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&project, "project", os.Getenv("GCPCTL_PROJECT"), "GCP project ID (env: GCPCTL_PROJECT)")
	rootCmd.PersistentFlags().StringVar(&zone, "zone", os.Getenv("GCPCTL_ZONE"), "GCE zone (env: GCPCTL_ZONE)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json, yaml")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.gcpctl/config.yaml)")

	// Each resource subtree is self-contained so it can be extracted as a
	// plugin binary later.
	rootCmd.AddCommand(disks.NewDisksCmd())
	rootCmd.AddCommand(logs.NewLogsCmd())
	rootCmd.AddCommand(storage.NewStorageCmd())
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
