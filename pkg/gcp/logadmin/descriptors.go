package logadmin

import (
	"context"

	"github.com/runt18/gcpctl/pkg/gcp"

	loggingapi "google.golang.org/api/logging/v2"
)

// ResourceDescriptors lists every monitored-resource descriptor the backend
// knows about, across all pages.
func (c *Client) ResourceDescriptors(ctx context.Context) ([]*loggingapi.MonitoredResourceDescriptor, error) {
	fetch := func(ctx context.Context, pageToken string) ([]*loggingapi.MonitoredResourceDescriptor, string, error) {
		call := c.service.MonitoredResourceDescriptors.List().Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, "", gcp.TranslateError(err)
		}
		return resp.ResourceDescriptors, resp.NextPageToken, nil
	}
	return gcp.NewIterator(ctx, fetch).All()
}

// ResourceTypes returns the set of valid monitored-resource type names,
// fetched from the backend on first use and cached for the client's
// lifetime. A failed fetch is cached too; create a new client to retry.
func (c *Client) ResourceTypes(ctx context.Context) ([]string, error) {
	c.descOnce.Do(func() {
		descs, err := c.ResourceDescriptors(ctx)
		if err != nil {
			c.descErr = err
			return
		}
		types := make([]string, 0, len(descs))
		for _, d := range descs {
			types = append(types, d.Type)
		}
		c.descTypes = types
	})
	return c.descTypes, c.descErr
}

// ValidResourceType reports whether typ is a monitored-resource type the
// backend accepts.
func (c *Client) ValidResourceType(ctx context.Context, typ string) (bool, error) {
	types, err := c.ResourceTypes(ctx)
	if err != nil {
		return false, err
	}
	for _, t := range types {
		if t == typ {
			return true, nil
		}
	}
	return false, nil
}
