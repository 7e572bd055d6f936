package gce

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/runt18/gcpctl/pkg/gcp"

	compute "google.golang.org/api/compute/v1"
)

const testZoneURL = "https://www.googleapis.com/compute/v1/projects/test-project/zones/us-central1-a"

// operationServer serves a fixed sequence of operation states from the zone
// operations endpoint, one per poll.
func operationServer(t *testing.T, states []*compute.Operation) (*Client, *int) {
	t.Helper()
	polls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/zones/us-central1-a/operations/op-1") {
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		if polls >= len(states) {
			t.Errorf("poll %d beyond the scripted %d states", polls+1, len(states))
			http.NotFound(w, r)
			return
		}
		writeJSON(t, w, states[polls])
		polls++
	})
	return testClient(t, handler), &polls
}

func op(status string) *compute.Operation {
	return &compute.Operation{Name: "op-1", Status: status, Zone: testZoneURL}
}

func TestWaitForOperation_PollsUntilDone(t *testing.T) {
	client, polls := operationServer(t, []*compute.Operation{
		op("RUNNING"), op("RUNNING"), op("DONE"),
	})

	if err := client.WaitForOperation(context.Background(), op("PENDING")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *polls != 3 {
		t.Errorf("polled %d times, want 3", *polls)
	}
}

func TestWaitForOperation_ImmediatelyDone(t *testing.T) {
	client, polls := operationServer(t, nil)

	if err := client.WaitForOperation(context.Background(), op("DONE")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *polls != 0 {
		t.Errorf("polled %d times for an already-DONE operation, want 0", *polls)
	}
}

func TestWaitForOperation_SurfacesOperationError(t *testing.T) {
	failed := op("DONE")
	failed.HttpErrorStatusCode = 400
	failed.Error = &compute.OperationError{
		Errors: []*compute.OperationErrorErrors{{Code: "BAD_REQUEST", Message: "x"}},
	}
	client, _ := operationServer(t, []*compute.Operation{failed})

	err := client.WaitForOperation(context.Background(), op("PENDING"))
	var opErr *gcp.OperationFailedError
	if !errors.As(err, &opErr) {
		t.Fatalf("got %v, want OperationFailedError", err)
	}
	if opErr.Code != "BAD_REQUEST" || opErr.Message != "x" || opErr.HTTPStatus != 400 {
		t.Errorf("got (%s, %s, %d), want (BAD_REQUEST, x, 400)", opErr.Code, opErr.Message, opErr.HTTPStatus)
	}
}

func TestWaitForOperation_DoneWithoutErrorIsSuccess(t *testing.T) {
	// Once DONE, the error field is authoritative: absence means success.
	client, _ := operationServer(t, []*compute.Operation{op("DONE")})

	if err := client.WaitForOperation(context.Background(), op("PENDING")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWaitForOperation_CancellationStopsPolling(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, op("RUNNING"))
	})
	client := testClient(t, handler)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := client.WaitForOperation(ctx, op("PENDING"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestWaitForOperation_DeadlineBoundsThePolling(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, op("RUNNING"))
	})
	client := testClient(t, handler)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := client.WaitForOperation(ctx, op("PENDING"))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("got %v, want context.DeadlineExceeded", err)
	}
}

func TestWaitForOperation_PollFailureSurfaces(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend error", http.StatusInternalServerError)
	})
	client := testClient(t, handler)

	err := client.WaitForOperation(context.Background(), op("PENDING"))
	var req *gcp.RequestFailedError
	if !errors.As(err, &req) || req.StatusCode != http.StatusInternalServerError {
		t.Fatalf("got %v, want RequestFailedError with status 500", err)
	}
}

func TestGetOperation_ScopeDispatch(t *testing.T) {
	tests := []struct {
		name     string
		op       *compute.Operation
		wantPath string
	}{
		{
			name:     "When the operation is zonal it should poll the zone endpoint",
			op:       &compute.Operation{Name: "op-1", Zone: testZoneURL},
			wantPath: "/zones/us-central1-a/operations/op-1",
		},
		{
			name:     "When the operation is regional it should poll the region endpoint",
			op:       &compute.Operation{Name: "op-1", Region: "https://www.googleapis.com/compute/v1/projects/test-project/regions/us-central1"},
			wantPath: "/regions/us-central1/operations/op-1",
		},
		{
			name:     "When the operation is global it should poll the global endpoint",
			op:       &compute.Operation{Name: "op-1"},
			wantPath: "/global/operations/op-1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				writeJSON(t, w, &compute.Operation{Name: "op-1", Status: "DONE"})
			})
			client := testClient(t, handler)

			if _, err := client.getOperation(context.Background(), tt.op); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.HasSuffix(gotPath, tt.wantPath) {
				t.Errorf("polled %s, want suffix %s", gotPath, tt.wantPath)
			}
		})
	}
}
