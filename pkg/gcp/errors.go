// Package gcp provides the shared plumbing for the gcpctl API clients:
// a typed error taxonomy over the REST responses, a generic page iterator
// for token-paginated listings, and project resolution from Application
// Default Credentials.
package gcp

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

// NotFoundError reports a 404 on a direct single-resource lookup. It is
// distinct from an empty listing: a list with no items is not an error.
type NotFoundError struct {
	Resource string
	Name     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Name)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// RequestFailedError reports any other non-2xx API response. Requests are
// not retried; the error is fatal to the current command invocation.
type RequestFailedError struct {
	StatusCode int
	Message    string

	err error
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("request failed: HTTP %d: %s", e.StatusCode, e.Message)
}

func (e *RequestFailedError) Unwrap() error { return e.err }

// OperationFailedError reports an asynchronous Operation that reached its
// terminal state with a non-empty error payload. Code and Message are the
// backend values verbatim.
type OperationFailedError struct {
	Code       string
	Message    string
	HTTPStatus int
}

func (e *OperationFailedError) Error() string {
	if e.HTTPStatus != 0 {
		return fmt.Sprintf("operation failed: %s: %s (HTTP %d)", e.Code, e.Message, e.HTTPStatus)
	}
	return fmt.Sprintf("operation failed: %s: %s", e.Code, e.Message)
}

// TranslateError converts a googleapi error into a RequestFailedError.
// Other errors (network failures, context cancellation) pass through.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		msg := gerr.Message
		if msg == "" {
			msg = http.StatusText(gerr.Code)
		}
		return &RequestFailedError{StatusCode: gerr.Code, Message: msg, err: err}
	}
	return err
}

// TranslateLookupError is TranslateError for direct get-by-name calls, where
// a 404 means the named resource does not exist and becomes a NotFoundError.
func TranslateLookupError(err error, resource, name string) error {
	if err == nil {
		return nil
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusNotFound {
		return &NotFoundError{Resource: resource, Name: name}
	}
	return TranslateError(err)
}

// WrapAuthError translates credential and permission failures into
// actionable CLI messages. Anything unrecognized is wrapped unchanged.
func WrapAuthError(action string, err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "could not find default credentials"):
		return fmt.Errorf("%s: no GCP credentials found\n\n"+
			"  Run: gcloud auth application-default login\n"+
			"  Or set GOOGLE_APPLICATION_CREDENTIALS to a service account key file", action)
	case strings.Contains(msg, "token expired") || strings.Contains(msg, "oauth2: token expired"):
		return fmt.Errorf("%s: GCP credentials have expired\n\n"+
			"  Run: gcloud auth application-default login", action)
	case strings.Contains(msg, "PermissionDenied") || strings.Contains(msg, "permission denied") || strings.Contains(msg, "403"):
		return fmt.Errorf("%s: permission denied\n\n"+
			"  Ensure your account has the required roles:\n"+
			"    - roles/compute.storageAdmin (disks)\n"+
			"    - roles/logging.admin (logs)\n"+
			"    - roles/storage.objectAdmin (storage objects)\n\n"+
			"  Check: gcloud projects get-iam-policy <project> --flatten='bindings[].members' --filter='bindings.members:<your-email>'", action)
	case strings.Contains(msg, "Unauthenticated") || strings.Contains(msg, "401"):
		return fmt.Errorf("%s: authentication failed\n\n"+
			"  Run: gcloud auth application-default login\n"+
			"  Or: gcloud auth login", action)
	default:
		return fmt.Errorf("%s: %w", action, err)
	}
}
