// Package gcs wraps the Cloud Storage v1 API for object management:
// listings with prefix narrowing, metadata lookups, media reads and writes,
// server-side copies, and deletes.
package gcs

import (
	"context"
	"io"

	"github.com/runt18/gcpctl/pkg/gcp"

	"google.golang.org/api/option"
	storageapi "google.golang.org/api/storage/v1"
)

// Client wraps the Cloud Storage API. Buckets are passed per call; object
// operations need no project.
type Client struct {
	service *storageapi.Service
}

// NewClient creates a Cloud Storage client using Application Default
// Credentials. Extra options are forwarded to the underlying service.
func NewClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	service, err := storageapi.NewService(ctx, opts...)
	if err != nil {
		return nil, gcp.WrapAuthError("creating storage client", err)
	}
	return &Client{service: service}, nil
}

// Object retrieves object metadata. A missing object surfaces as a
// gcp.NotFoundError.
func (c *Client) Object(ctx context.Context, bucket, name string) (*storageapi.Object, error) {
	obj, err := c.service.Objects.Get(bucket, name).Context(ctx).Do()
	if err != nil {
		return nil, gcp.TranslateLookupError(err, "object", bucket+"/"+name)
	}
	return obj, nil
}

// ObjectExists probes for an object by name. A 404 means false; any other
// failure propagates as a genuine error.
func (c *Client) ObjectExists(ctx context.Context, bucket, name string) (bool, error) {
	_, err := c.Object(ctx, bucket, name)
	if gcp.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListObjects returns a lazy iterator over the bucket's objects under
// prefix, in the lexicographic order the API guarantees.
func (c *Client) ListObjects(ctx context.Context, bucket, prefix string, pageSize int64, filters ...gcp.Filter[*storageapi.Object]) *gcp.Iterator[*storageapi.Object] {
	fetch := func(ctx context.Context, pageToken string) ([]*storageapi.Object, string, error) {
		call := c.service.Objects.List(bucket).Context(ctx)
		if prefix != "" {
			call = call.Prefix(prefix)
		}
		if pageSize > 0 {
			call = call.MaxResults(pageSize)
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

// ReadObject opens the object's media for reading. The caller closes the
// returned body.
func (c *Client) ReadObject(ctx context.Context, bucket, name string) (io.ReadCloser, error) {
	resp, err := c.service.Objects.Get(bucket, name).Context(ctx).Download()
	if err != nil {
		return nil, gcp.TranslateLookupError(err, "object", bucket+"/"+name)
	}
	return resp.Body, nil
}

// UploadObject writes media as a new object (or a new generation of an
// existing one) and returns the stored metadata.
func (c *Client) UploadObject(ctx context.Context, bucket string, obj *storageapi.Object, media io.Reader) (*storageapi.Object, error) {
	stored, err := c.service.Objects.Insert(bucket, obj).Media(media).Context(ctx).Do()
	if err != nil {
		return nil, gcp.TranslateError(err)
	}
	return stored, nil
}

// CopyObject copies an object server-side and returns the destination
// metadata.
func (c *Client) CopyObject(ctx context.Context, srcBucket, srcName, dstBucket, dstName string) (*storageapi.Object, error) {
	obj, err := c.service.Objects.Copy(srcBucket, srcName, dstBucket, dstName, &storageapi.Object{}).Context(ctx).Do()
	if err != nil {
		return nil, gcp.TranslateLookupError(err, "object", srcBucket+"/"+srcName)
	}
	return obj, nil
}

// DeleteObject deletes an object. A missing object surfaces as a
// gcp.NotFoundError.
func (c *Client) DeleteObject(ctx context.Context, bucket, name string) error {
	if err := c.service.Objects.Delete(bucket, name).Context(ctx).Do(); err != nil {
		return gcp.TranslateLookupError(err, "object", bucket+"/"+name)
	}
	return nil
}
