// Package gce wraps the Compute Engine v1 API for persistent disk
// management: lookups, aggregated listings across zones, and the mutating
// calls (insert, delete, resize) that return asynchronous Operations.
package gce

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/runt18/gcpctl/pkg/gcp"

	compute "google.golang.org/api/compute/v1"
	"google.golang.org/api/option"
)

// Client wraps the Compute Engine API for one project.
type Client struct {
	Project string

	service *compute.Service

	// pollInterval overrides the initial operation poll interval; zero
	// means the default. Settable only from tests in this package.
	pollInterval time.Duration
}

// NewClient creates a Compute Engine client using Application Default
// Credentials. Extra options are forwarded to the underlying service,
// which lets tests point the client at a local server.
func NewClient(ctx context.Context, project string, opts ...option.ClientOption) (*Client, error) {
	service, err := compute.NewService(ctx, opts...)
	if err != nil {
		return nil, gcp.WrapAuthError("creating compute client", err)
	}
	return &Client{Project: project, service: service}, nil
}

// Disk retrieves a single disk by zone and name. A missing disk surfaces as
// a gcp.NotFoundError.
func (c *Client) Disk(ctx context.Context, zone, name string) (*compute.Disk, error) {
	disk, err := c.service.Disks.Get(c.Project, zone, name).Context(ctx).Do()
	if err != nil {
		return nil, gcp.TranslateLookupError(err, "disk", name)
	}
	return disk, nil
}

// DiskExists probes for a disk by name. A 404 means false; any other
// failure propagates as a genuine error.
func (c *Client) DiskExists(ctx context.Context, zone, name string) (bool, error) {
	_, err := c.Disk(ctx, zone, name)
	if gcp.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListOptions narrows a disk listing. An empty Zone lists across all zones
// via the aggregated endpoint.
type ListOptions struct {
	// Zone pins the listing to a single zone.
	Zone string
	// Name keeps only disks with this exact name. It is also sent as the
	// server-side filter, the one predicate the API supports per request.
	Name string
	// MatchZone keeps only disks whose zone name contains this substring.
	// Applied client-side; only meaningful for aggregated listings.
	MatchZone string
	// PageSize hints the page size; zero uses the API default.
	PageSize int64
}

// ListDisks returns a lazy iterator over the disks matching opts. For
// aggregated listings the per-zone partitions of each page are flattened in
// map order, so no global ordering is guaranteed; every matching disk is
// yielded exactly once.
func (c *Client) ListDisks(ctx context.Context, opts ListOptions) *gcp.Iterator[*compute.Disk] {
	var serverFilter string
	if opts.Name != "" {
		serverFilter = fmt.Sprintf("name = %q", opts.Name)
	}

	var filters []gcp.Filter[*compute.Disk]
	if opts.Name != "" {
		filters = append(filters, func(d *compute.Disk) bool { return d.Name == opts.Name })
	}
	if opts.MatchZone != "" {
		filters = append(filters, func(d *compute.Disk) bool {
			return strings.Contains(ZoneName(d.Zone), opts.MatchZone)
		})
	}

	if opts.Zone != "" {
		fetch := func(ctx context.Context, pageToken string) ([]*compute.Disk, string, error) {
			call := c.service.Disks.List(c.Project, opts.Zone).Context(ctx)
			if serverFilter != "" {
				call = call.Filter(serverFilter)
			}
			if opts.PageSize > 0 {
				call = call.MaxResults(opts.PageSize)
			}
			if pageToken != "" {
				call = call.PageToken(pageToken)
			}
			resp, err := call.Do()
			if err != nil {
				return nil, "", gcp.TranslateError(err)
			}
			return resp.Items, resp.NextPageToken, nil
		}
		return gcp.NewIterator(ctx, fetch, filters...)
	}

	fetch := func(ctx context.Context, pageToken string) ([]*compute.Disk, string, error) {
		call := c.service.Disks.AggregatedList(c.Project).Context(ctx)
		if serverFilter != "" {
			call = call.Filter(serverFilter)
		}
		if opts.PageSize > 0 {
			call = call.MaxResults(opts.PageSize)
		}
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, "", gcp.TranslateError(err)
		}
		var items []*compute.Disk
		for _, scoped := range resp.Items {
			// A zone with no disks carries a nil item list; that is
			// zero items for the partition, never an error.
			items = append(items, scoped.Disks...)
		}
		return items, resp.NextPageToken, nil
	}
	return gcp.NewIterator(ctx, fetch, filters...)
}

// CreateDisk submits a disk insert and returns the pending Operation.
func (c *Client) CreateDisk(ctx context.Context, zone string, disk *compute.Disk) (*compute.Operation, error) {
	op, err := c.service.Disks.Insert(c.Project, zone, disk).Context(ctx).Do()
	if err != nil {
		return nil, gcp.TranslateError(err)
	}
	return op, nil
}

// DeleteDisk submits a disk delete and returns the pending Operation.
func (c *Client) DeleteDisk(ctx context.Context, zone, name string) (*compute.Operation, error) {
	op, err := c.service.Disks.Delete(c.Project, zone, name).Context(ctx).Do()
	if err != nil {
		return nil, gcp.TranslateLookupError(err, "disk", name)
	}
	return op, nil
}

// ResizeDisk submits a disk resize to sizeGb and returns the pending
// Operation. The API only permits growing a disk.
func (c *Client) ResizeDisk(ctx context.Context, zone, name string, sizeGb int64) (*compute.Operation, error) {
	req := &compute.DisksResizeRequest{SizeGb: sizeGb}
	op, err := c.service.Disks.Resize(c.Project, zone, name, req).Context(ctx).Do()
	if err != nil {
		return nil, gcp.TranslateLookupError(err, "disk", name)
	}
	return op, nil
}

// ZoneName extracts the short zone name from a zone URL such as
// ".../projects/p/zones/us-central1-a". Non-URL values pass through.
func ZoneName(zoneURL string) string {
	return lastSegment(zoneURL)
}

// TypeName extracts the short disk type name from a disk type URL.
func TypeName(typeURL string) string {
	return lastSegment(typeURL)
}

func lastSegment(u string) string {
	if i := strings.LastIndex(u, "/"); i >= 0 {
		return u[i+1:]
	}
	return u
}
