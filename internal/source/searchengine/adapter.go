package searchengine

import (
	"context"

	"github.com/axrune/subscan/internal/extractor"
	"github.com/axrune/subscan/internal/requester"
	"github.com/axrune/subscan/internal/source"
)

// Adapter is the generic search-engine dorking adapter (spec.md §4.3, C4/C5):
// it composes a SearchQuery with a Requester/Extractor pair and repeats the
// "site:domain -found..." loop until a fetch yields nothing new.
type Adapter struct {
	Name_       string
	URL         string
	Param       string
	ExtraParams map[string]string
	Req         requester.Requester
	Ext         extractor.Extractor
}

// Name implements source.Adapter.
func (a *Adapter) Name() string { return a.Name_ }

// Requester implements source.Adapter.
func (a *Adapter) Requester() requester.Requester { return a.Req }

// Extractor implements source.Adapter.
func (a *Adapter) Extractor() extractor.Extractor { return a.Ext }

// Run implements source.Adapter, exactly per spec.md §4.3's algorithm.
func (a *Adapter) Run(ctx context.Context, apex string, sink chan<- source.Message) {
	query := NewSearchQuery(a.Param, "site:", apex)

	for {
		url, err := query.AsURL(a.URL, a.ExtraParams)
		if err != nil {
			sink <- source.StatusMessage(a.Name_, source.Failed, source.KindCustom)
			return
		}

		body, err := a.Req.Fetch(ctx, url)
		if err != nil {
			sink <- source.StatusMessage(a.Name_, source.Failed, source.KindGetContent)
			return
		}

		found, err := a.Ext.Extract(body, apex)
		if err != nil {
			sink <- source.StatusMessage(a.Name_, source.Failed, source.KindHTMLExtract)
			return
		}

		for sub := range found {
			sink <- source.ItemMessage(a.Name_, sub)
		}

		if !query.UpdateMany(found) {
			sink <- source.StatusMessage(a.Name_, source.Finished, "")
			return
		}
	}
}
