package extractor

import (
	"fmt"

	"github.com/axrune/subscan/internal/content"
)

// Walker traverses a decoded JSON document and returns the raw set of
// strings it found — whatever shape the caller's source considers a
// candidate subdomain, not yet filtered against apex.
type Walker func(doc any, apex string) (map[string]struct{}, error)

// JSON defers extraction entirely to a caller-supplied Walker, since JSON
// API response shapes vary per vendor and cannot be generalised behind a
// single selector language the way HTML can.
type JSON struct {
	Walk Walker
}

// Extract implements Extractor.
func (j JSON) Extract(c content.Content, apex string) (map[string]struct{}, error) {
	doc, ok := c.ToStructured()
	if !ok {
		return nil, fmt.Errorf("content is not valid JSON")
	}
	return j.Walk(doc, apex)
}
