package integration

import (
	"context"
	"net/url"

	"github.com/axrune/subscan/internal/content"
	"github.com/axrune/subscan/internal/env"
	"github.com/axrune/subscan/internal/extractor"
	"github.com/axrune/subscan/internal/requester"
	"github.com/axrune/subscan/internal/source"
)

// URLFunc builds the initial request URL for apex.
type URLFunc func(apex string) string

// NextFunc inspects the previous URL and response content and returns the
// next URL to fetch, or ("", false) to signal end-of-stream.
type NextFunc func(prevURL string, c content.Content) (string, bool)

// Adapter is the generic paginated-API adapter (spec.md §4.4, C4): builds a
// URL, installs authentication, then loops fetch→extract→stream→advance
// until NextFunc signals end-of-stream.
type Adapter struct {
	Name_ string
	URL   URLFunc
	Next  NextFunc
	Auth  AuthMethod
	Req   requester.Requester
	Ext   extractor.Extractor
}

// Name implements source.Adapter.
func (a *Adapter) Name() string { return a.Name_ }

// Requester implements source.Adapter.
func (a *Adapter) Requester() requester.Requester { return a.Req }

// Extractor implements source.Adapter.
func (a *Adapter) Extractor() extractor.Extractor { return a.Ext }

// Run implements source.Adapter, per spec.md §4.4's algorithm.
func (a *Adapter) Run(ctx context.Context, apex string, sink chan<- source.Message) {
	raw := a.URL(apex)
	u, err := url.Parse(raw)
	if err != nil {
		sink <- source.StatusMessage(a.Name_, source.Failed, source.KindCustom)
		return
	}

	if !a.authenticate(u) {
		sink <- source.StatusMessage(a.Name_, source.Skipped, source.ReasonAuthenticationNotProvided)
		return
	}

	current := u.String()
	streamed := false
	for {
		body, err := a.Req.Fetch(ctx, current)
		if err != nil {
			if streamed {
				sink <- source.StatusMessage(a.Name_, source.FailedWithResult, source.KindGetContent)
			} else {
				sink <- source.StatusMessage(a.Name_, source.Failed, source.KindGetContent)
			}
			return
		}

		found, err := a.Ext.Extract(body, apex)
		if err != nil {
			if streamed {
				sink <- source.StatusMessage(a.Name_, source.FailedWithResult, source.KindJSONExtract)
			} else {
				sink <- source.StatusMessage(a.Name_, source.Failed, source.KindJSONExtract)
			}
			return
		}

		for sub := range found {
			sink <- source.ItemMessage(a.Name_, sub)
			streamed = true
		}

		next, ok := a.Next(current, body)
		if !ok {
			sink <- source.StatusMessage(a.Name_, source.Finished, "")
			return
		}
		current = next
	}
}

// authenticate installs a.Auth onto u and/or the requester's configuration,
// returning false if required credentials could not be resolved.
func (a *Adapter) authenticate(u *url.URL) bool {
	switch auth := a.Auth.(type) {
	case nil, NoAuth:
		return true
	case HeaderAuth:
		key := env.APIKey(a.Name_)
		if key == "" {
			return false
		}
		cfg := a.Req.Config().Get()
		cfg.SetHeader(auth.HeaderName, key)
		a.Req.Configure(cfg)
		return true
	case QueryParamAuth:
		key := env.APIKey(a.Name_)
		if key == "" {
			return false
		}
		q := u.Query()
		q.Set(auth.Param, key)
		u.RawQuery = q.Encode()
		return true
	case BasicAuth:
		creds := auth.Credentials
		if !creds.Valid() {
			creds = env.BasicCredentials(a.Name_)
			if !creds.Valid() {
				return false
			}
		}
		cfg := a.Req.Config().Get()
		cfg.SetBasicAuth(creds.Username(), creds.Password())
		a.Req.Configure(cfg)
		return true
	default:
		return true
	}
}
