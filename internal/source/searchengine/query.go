// Package searchengine implements the generic dorking-loop adapter used by
// search-engine sources (google, bing, yahoo, duckduckgo), grounded on
// original_source's src/types/query.rs and src/modules/generics/engine.rs.
package searchengine

import (
	"net/url"
	"sort"
	"strings"
)

// SearchQuery builds and grows a "site:domain -found1 -found2 ..." query
// string, exactly per spec.md §4.3 and original_source's SearchQuery. The
// original Rust type orders negatives with a BTreeSet; Go uses a map for
// membership plus a sort at render time to match that ordering.
type SearchQuery struct {
	Param  string
	Prefix string
	Domain string
	state  map[string]struct{}
}

// NewSearchQuery constructs a query for domain using prefix (typically
// "site:") and the URL query parameter name param (e.g. "q").
func NewSearchQuery(param, prefix, domain string) *SearchQuery {
	return &SearchQuery{Param: param, Prefix: prefix, Domain: domain, state: make(map[string]struct{})}
}

// Update records sub as a found subdomain of q.Domain. Returns true iff sub
// was a new negative term (i.e. had the "." + domain suffix and was not
// already recorded). Subdomains outside the domain suffix are ignored.
func (q *SearchQuery) Update(sub string) bool {
	suffix := "." + q.Domain
	stripped, ok := strings.CutSuffix(sub, suffix)
	if !ok {
		return false
	}
	negative := "-" + stripped
	if _, exists := q.state[negative]; exists {
		return false
	}
	q.state[negative] = struct{}{}
	return true
}

// UpdateMany calls Update for every sub in subs and reports whether at
// least one was newly inserted — the search loop's termination condition.
func (q *SearchQuery) UpdateMany(subs map[string]struct{}) bool {
	inserted := false
	for sub := range subs {
		if q.Update(sub) {
			inserted = true
		}
	}
	return inserted
}

// AsSearchString renders "{prefix}{domain} -neg1 -neg2 ...", negatives
// sorted lexicographically, trimmed of surrounding whitespace.
func (q *SearchQuery) AsSearchString() string {
	negatives := make([]string, 0, len(q.state))
	for n := range q.state {
		negatives = append(negatives, n)
	}
	sort.Strings(negatives)

	parts := append([]string{q.Prefix + q.Domain}, negatives...)
	return strings.TrimSpace(strings.Join(parts, " "))
}

// AsURL appends extraParams and {param: AsSearchString()} as query
// parameters onto baseURL.
func (q *SearchQuery) AsURL(baseURL string, extraParams map[string]string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	values := u.Query()
	for k, v := range extraParams {
		values.Set(k, v)
	}
	values.Set(q.Param, q.AsSearchString())
	u.RawQuery = values.Encode()
	return u.String(), nil
}
