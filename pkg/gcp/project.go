package gcp

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// DefaultProject returns the project ID carried by the Application Default
// Credentials, or "" if none can be determined.
func DefaultProject(ctx context.Context) string {
	creds, err := google.FindDefaultCredentials(ctx, cloudPlatformScope)
	if err != nil || creds == nil {
		return ""
	}
	return creds.ProjectID
}

// ResolveProject returns the project to use for a command: the flag value
// when set, otherwise the ADC project. An empty result is an error telling
// the user how to supply one.
func ResolveProject(ctx context.Context, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if p := DefaultProject(ctx); p != "" {
		return p, nil
	}
	return "", fmt.Errorf("--project is required (or set GCPCTL_PROJECT)")
}
