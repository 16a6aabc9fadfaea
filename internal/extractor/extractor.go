// Package extractor turns content.Content into a set of subdomains. It
// defines the Extractor interface shared by every adapter and the
// canonical subdomain-matching regex that both the regex and HTML
// variants anchor on.
package extractor

import (
	"fmt"
	"regexp"

	"github.com/axrune/subscan/internal/content"
)

// Extractor pulls candidate subdomains for apex out of c. Extractor errors
// are recovered locally by the calling adapter and converted into a
// terminal status (spec.md §7) — they never escape to the pool.
type Extractor interface {
	Extract(c content.Content, apex string) (map[string]struct{}, error)
}

// subdomainPattern is the single canonical regex every extractor variant
// anchors on (spec.md §4.2): one or more label groups terminated by the
// literal, escaped apex.
const subdomainPattern = `(?:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?\.)+%s`

// CompileSubdomainRegex builds the canonical per-apex subdomain matcher.
// apex is quoted with regexp.QuoteMeta so literal dots in the apex are not
// treated as the regex wildcard.
func CompileSubdomainRegex(apex string) (*regexp.Regexp, error) {
	pattern := fmt.Sprintf(subdomainPattern, regexp.QuoteMeta(apex))
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling subdomain regex for %q: %w", apex, err)
	}
	return re, nil
}
