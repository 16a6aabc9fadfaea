package extractor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/axrune/subscan/internal/content"
)

// HTML selects nodes by a CSS selector, strips a configured list of
// literal substrings from each node's inner text, and feeds the residue
// through the Regex extractor (spec.md §4.2).
type HTML struct {
	Selector string
	Strip    []string
}

// Extract implements Extractor.
func (h HTML) Extract(c content.Content, apex string) (map[string]struct{}, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(c.ToString()))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var residue strings.Builder
	doc.Find(h.Selector).Each(func(_ int, sel *goquery.Selection) {
		text := sel.Text()
		for _, s := range h.Strip {
			text = strings.ReplaceAll(text, s, "")
		}
		residue.WriteString(text)
		residue.WriteByte('\n')
	})

	return Regex{}.Extract(content.Text(residue.String()), apex)
}
