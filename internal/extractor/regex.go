package extractor

import (
	"strings"

	"github.com/axrune/subscan/internal/content"
)

// Regex extracts subdomains by matching the canonical subdomain pattern
// against the lower-cased text form of the content.
type Regex struct{}

// Extract implements Extractor.
func (Regex) Extract(c content.Content, apex string) (map[string]struct{}, error) {
	re, err := CompileSubdomainRegex(strings.ToLower(apex))
	if err != nil {
		return nil, err
	}
	text := strings.ToLower(c.ToString())
	matches := re.FindAllString(text, -1)
	found := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		found[m] = struct{}{}
	}
	return found, nil
}
