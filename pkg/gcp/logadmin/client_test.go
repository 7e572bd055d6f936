package logadmin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/runt18/gcpctl/pkg/gcp"

	"google.golang.org/api/iterator"
	loggingapi "google.golang.org/api/logging/v2"
	"google.golang.org/api/option"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(context.Background(), "test-project",
		option.WithEndpoint(srv.URL),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encoding response: %v", err)
	}
}

func TestLogName_RoundTrip(t *testing.T) {
	c := &Client{Project: "p"}

	tests := []struct {
		id   string
		name string
	}{
		{"my-app", "projects/p/logs/my-app"},
		{"appengine.googleapis.com/request_log", "projects/p/logs/appengine.googleapis.com%2Frequest_log"},
	}
	for _, tt := range tests {
		if got := c.LogName(tt.id); got != tt.name {
			t.Errorf("LogName(%q) = %q, want %q", tt.id, got, tt.name)
		}
		if got := c.LogID(tt.name); got != tt.id {
			t.Errorf("LogID(%q) = %q, want %q", tt.name, got, tt.id)
		}
	}

	// Names from other projects pass through unchanged.
	foreign := "projects/other/logs/syslog"
	if got := c.LogID(foreign); got != foreign {
		t.Errorf("LogID(%q) = %q, want unchanged", foreign, got)
	}
}

func TestListEntries_PaginatesViaRequestBody(t *testing.T) {
	var gotTokens []string
	var gotFilter, gotOrder string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/v2/entries:list") {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req loggingapi.ListLogEntriesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		gotTokens = append(gotTokens, req.PageToken)
		gotFilter, gotOrder = req.Filter, req.OrderBy
		switch req.PageToken {
		case "":
			writeJSON(t, w, &loggingapi.ListLogEntriesResponse{
				Entries:       []*loggingapi.LogEntry{{TextPayload: "one"}, {TextPayload: "two"}},
				NextPageToken: "page2",
			})
		case "page2":
			writeJSON(t, w, &loggingapi.ListLogEntriesResponse{
				Entries: []*loggingapi.LogEntry{{TextPayload: "three"}},
			})
		default:
			t.Errorf("unexpected page token %q", req.PageToken)
		}
	}))

	it := c.ListEntries(context.Background(), EntryQuery{Log: "my-app", MinSeverity: "error"})
	var payloads []string
	for {
		e, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		payloads = append(payloads, e.TextPayload)
	}

	if want := []string{"one", "two", "three"}; !equal(payloads, want) {
		t.Errorf("payloads = %v, want %v", payloads, want)
	}
	if want := []string{"", "page2"}; !equal(gotTokens, want) {
		t.Errorf("page tokens = %v, want %v", gotTokens, want)
	}
	wantFilter := `logName="projects/test-project/logs/my-app" AND severity>=ERROR`
	if gotFilter != wantFilter {
		t.Errorf("filter = %q, want %q", gotFilter, wantFilter)
	}
	if gotOrder != "timestamp desc" {
		t.Errorf("orderBy = %q, want timestamp desc", gotOrder)
	}
}

func TestWriteEntries_FillsDefaults(t *testing.T) {
	var got loggingapi.WriteLogEntriesRequest
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		writeJSON(t, w, &loggingapi.WriteLogEntriesResponse{})
	}))

	entries := []*loggingapi.LogEntry{
		{TextPayload: "hello"},
		{TextPayload: "pinned", InsertId: "fixed-id"},
	}
	if err := c.WriteEntries(context.Background(), "my-app", nil, entries); err != nil {
		t.Fatalf("WriteEntries: %v", err)
	}

	if got.LogName != "projects/test-project/logs/my-app" {
		t.Errorf("logName = %q", got.LogName)
	}
	if got.Resource == nil || got.Resource.Type != "global" {
		t.Errorf("resource = %+v, want type global", got.Resource)
	}
	if len(got.Entries) != 2 {
		t.Fatalf("wrote %d entries, want 2", len(got.Entries))
	}
	if got.Entries[0].InsertId == "" {
		t.Error("missing insert ID was not generated")
	}
	if got.Entries[1].InsertId != "fixed-id" {
		t.Errorf("explicit insert ID overwritten: %q", got.Entries[1].InsertId)
	}
}

func TestResourceTypes_FetchedOnce(t *testing.T) {
	calls := 0
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeJSON(t, w, &loggingapi.ListMonitoredResourceDescriptorsResponse{
			ResourceDescriptors: []*loggingapi.MonitoredResourceDescriptor{
				{Type: "global"}, {Type: "gce_instance"},
			},
		})
	}))

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		ok, err := c.ValidResourceType(ctx, "gce_instance")
		if err != nil || !ok {
			t.Fatalf("ValidResourceType(gce_instance) = %v, %v", ok, err)
		}
	}
	ok, err := c.ValidResourceType(ctx, "nonexistent")
	if err != nil || ok {
		t.Fatalf("ValidResourceType(nonexistent) = %v, %v", ok, err)
	}
	if calls != 1 {
		t.Errorf("descriptor list fetched %d times, want 1", calls)
	}
}

func TestListLogs_AllPages(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("pageToken") {
		case "":
			writeJSON(t, w, &loggingapi.ListLogsResponse{
				LogNames:      []string{"projects/test-project/logs/a"},
				NextPageToken: "next",
			})
		case "next":
			writeJSON(t, w, &loggingapi.ListLogsResponse{
				LogNames: []string{"projects/test-project/logs/b"},
			})
		default:
			t.Errorf("unexpected page token %q", r.URL.Query().Get("pageToken"))
		}
	}))

	names, err := c.ListLogs(context.Background(), 0).All()
	if err != nil {
		t.Fatalf("ListLogs: %v", err)
	}
	want := []string{"projects/test-project/logs/a", "projects/test-project/logs/b"}
	if !equal(names, want) {
		t.Errorf("log names = %v, want %v", names, want)
	}
}

func TestDeleteLog_NotFound(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":404,"message":"not found"}}`, http.StatusNotFound)
	}))

	err := c.DeleteLog(context.Background(), "missing")
	if !gcp.IsNotFound(err) {
		t.Fatalf("DeleteLog error = %v, want NotFoundError", err)
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
