package newsletter

import (
	"strings"
	"time"
)

// ExportContentType is the MIME type stamped on CSV downloads.
const ExportContentType = "text/csv;charset=utf-8;"

// Export is a fully serialized subscriber list ready for download.
type Export struct {
	Filename    string
	ContentType string
	Data        string
}

// ExportFilename builds the download name, e.g. "subscribers-2026-09-01.csv".
func ExportFilename(now time.Time) string {
	return "subscribers-" + now.Format("2006-01-02") + ".csv"
}

// MarshalCSV serializes subscribers with the header row
// "Email,Status,Source,Subscribed At". Every field is double-quoted with
// internal quotes escaped by doubling, rows joined by \n. Dates are written
// as ISO dates so the export round-trips losslessly.
func MarshalCSV(subs []Subscriber) string {
	rows := make([]string, 0, len(subs)+1)
	rows = append(rows, "Email,Status,Source,Subscribed At")
	for _, sub := range subs {
		fields := []string{
			escapeCSV(sub.Email),
			escapeCSV(sub.Status),
			escapeCSV(sub.Source),
			escapeCSV(sub.SubscribedAt.Format("2006-01-02")),
		}
		rows = append(rows, strings.Join(fields, ","))
	}
	return strings.Join(rows, "\n")
}

func escapeCSV(val string) string {
	return `"` + strings.ReplaceAll(val, `"`, `""`) + `"`
}
