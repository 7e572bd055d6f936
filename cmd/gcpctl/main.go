package main

import (
	"os"

	gcpctlcli "github.com/runt18/gcpctl/pkg/cli"
)

func main() {
	if err := gcpctlcli.Execute(); err != nil {
		os.Exit(1)
	}
}
