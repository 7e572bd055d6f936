package gce

import (
	"context"
	"fmt"
	"time"

	"github.com/runt18/gcpctl/pkg/gcp"

	compute "google.golang.org/api/compute/v1"
)

const (
	defaultPollInterval = 500 * time.Millisecond
	maxPollInterval     = 2 * time.Second

	// defaultWaitTimeout bounds waits whose context carries no deadline.
	// Commands normally pass a deadline from their --timeout flag.
	defaultWaitTimeout = 10 * time.Minute
)

// WaitForOperation polls the operation's status endpoint until it reaches
// DONE, then reports the outcome: nil on success, a gcp.OperationFailedError
// carrying the backend code and message when the terminal operation has an
// error payload. The scope endpoint (zone, region, or global) is chosen from
// the operation itself.
//
// Polling backs off from 500ms to a 2s cap and stops promptly when ctx is
// cancelled. The Operation carries no result payload; callers re-fetch the
// affected resource after a successful wait.
func (c *Client) WaitForOperation(ctx context.Context, op *compute.Operation) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultWaitTimeout)
		defer cancel()
	}

	interval := c.pollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}

	for {
		if op.Status == "DONE" {
			return operationResult(op)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for operation %s: %w", op.Name, ctx.Err())
		case <-time.After(interval):
		}

		if interval < maxPollInterval {
			interval = interval * 2
			if interval > maxPollInterval {
				interval = maxPollInterval
			}
		}

		cur, err := c.getOperation(ctx, op)
		if err != nil {
			return fmt.Errorf("polling operation %s: %w", op.Name, gcp.TranslateError(err))
		}
		op = cur
	}
}

// getOperation re-fetches the operation from the status endpoint matching
// its scope. The poller only reads; the backend owns all state transitions.
func (c *Client) getOperation(ctx context.Context, op *compute.Operation) (*compute.Operation, error) {
	switch {
	case op.Zone != "":
		return c.service.ZoneOperations.Get(c.Project, lastSegment(op.Zone), op.Name).Context(ctx).Do()
	case op.Region != "":
		return c.service.RegionOperations.Get(c.Project, lastSegment(op.Region), op.Name).Context(ctx).Do()
	default:
		return c.service.GlobalOperations.Get(c.Project, op.Name).Context(ctx).Do()
	}
}

// operationResult inspects a DONE operation. The error field is
// authoritative: absence means success.
func operationResult(op *compute.Operation) error {
	if op.Error == nil || len(op.Error.Errors) == 0 {
		return nil
	}
	first := op.Error.Errors[0]
	return &gcp.OperationFailedError{
		Code:       first.Code,
		Message:    first.Message,
		HTTPStatus: int(op.HttpErrorStatusCode),
	}
}
