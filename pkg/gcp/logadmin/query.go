package logadmin

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Severities lists the log severity levels in ascending order, as the
// Logging API defines them.
var Severities = []string{
	"DEFAULT", "DEBUG", "INFO", "NOTICE", "WARNING",
	"ERROR", "CRITICAL", "ALERT", "EMERGENCY",
}

// ValidSeverity reports whether s names a known severity, ignoring case.
func ValidSeverity(s string) bool {
	for _, known := range Severities {
		if strings.EqualFold(s, known) {
			return true
		}
	}
	return false
}

// EntryQuery narrows a log entry listing. All set fields are combined into
// a single AND-joined filter expression; the raw Filter clause participates
// as one parenthesized term.
type EntryQuery struct {
	// Log restricts entries to one log, by log ID.
	Log string
	// MinSeverity restricts entries to this severity and above.
	MinSeverity string
	// After and Before bound the entry timestamps.
	After  time.Time
	Before time.Time
	// Filter is a raw Logging filter clause passed through verbatim.
	Filter string
	// Ascending orders entries oldest first. Default is newest first.
	Ascending bool
	// PageSize hints the page size; zero uses the API default.
	PageSize int64
}

// Expression renders the query as one Logging filter expression scoped to
// parent ("projects/<id>"). An empty query renders as an empty filter.
func (q EntryQuery) Expression(parent string) string {
	var clauses []string
	if q.Log != "" {
		clauses = append(clauses, fmt.Sprintf("logName=%q", parent+"/logs/"+url.PathEscape(q.Log)))
	}
	if q.MinSeverity != "" {
		clauses = append(clauses, "severity>="+strings.ToUpper(q.MinSeverity))
	}
	if !q.After.IsZero() {
		clauses = append(clauses, fmt.Sprintf("timestamp>=%q", q.After.UTC().Format(time.RFC3339)))
	}
	if !q.Before.IsZero() {
		clauses = append(clauses, fmt.Sprintf("timestamp<%q", q.Before.UTC().Format(time.RFC3339)))
	}
	if q.Filter != "" {
		clauses = append(clauses, "("+q.Filter+")")
	}
	return strings.Join(clauses, " AND ")
}

func (q EntryQuery) orderBy() string {
	if q.Ascending {
		return "timestamp asc"
	}
	return "timestamp desc"
}
