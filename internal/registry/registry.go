// Package registry is the process-wide module catalog (spec.md §4.6, C6):
// an ordered list of named source adapters built once at lifecycle-init,
// looked up by name, and fanned a requester configuration update.
package registry

import (
	"sort"
	"strings"
	"sync"

	"github.com/axrune/subscan/internal/requester"
	"github.com/axrune/subscan/internal/source"
)

// Registry is an ordered, name-indexed catalog of source adapters.
type Registry struct {
	order []source.Adapter
	byKey map[string]source.Adapter
}

// New builds a Registry from adapters, in the order given. Names are
// case-insensitive and must be unique within the registry (spec.md §3
// "name() is unique within the registry; case-insensitive").
func New(adapters ...source.Adapter) *Registry {
	r := &Registry{byKey: make(map[string]source.Adapter, len(adapters))}
	for _, a := range adapters {
		key := strings.ToLower(a.Name())
		if _, dup := r.byKey[key]; dup {
			continue
		}
		r.byKey[key] = a
		r.order = append(r.order, a)
	}
	return r
}

// Modules returns the full, ordered adapter list.
func (r *Registry) Modules() []source.Adapter {
	out := make([]source.Adapter, len(r.order))
	copy(out, r.order)
	return out
}

// Module looks up an adapter by name, case-insensitively.
func (r *Registry) Module(name string) (source.Adapter, bool) {
	a, ok := r.byKey[strings.ToLower(name)]
	return a, ok
}

// Names returns every registered adapter name, sorted. `module list` does
// not use it; it lists Modules in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.order))
	for _, a := range r.order {
		names = append(names, a.Name())
	}
	sort.Strings(names)
	return names
}

// Configure fans requester configuration cfg out to every adapter that
// exposes a requester (spec.md §4.6 "configure(requester_config) fans out
// the requester configuration to every adapter that exposes a requester").
// Adapters sharing a single requester instance (uncommon but legal) are
// configured once per occurrence; Configure is idempotent so this is safe.
func (r *Registry) Configure(cfg requester.Config) {
	var wg sync.WaitGroup
	for _, a := range r.order {
		req := a.Requester()
		if req == nil {
			continue
		}
		wg.Add(1)
		go func(req requester.Requester) {
			defer wg.Done()
			req.Configure(cfg.Clone())
		}(req)
	}
	wg.Wait()
}

// Description is supplementary metadata surfaced by `subscan module
// describe` (not in spec.md's distilled scope; see SPEC_FULL.md §8):
// whether one module has a requester and an extractor, and whether that
// requester has a proxy configured (RequiresProxy), derived from the
// registry without invoking the adapter. Authentication is not reported.
type Description struct {
	Name          string
	HasRequester  bool
	HasExtractor  bool
	RequiresProxy bool
}

// Describe returns metadata about the named module without running it.
func (r *Registry) Describe(name string) (Description, bool) {
	a, ok := r.Module(name)
	if !ok {
		return Description{}, false
	}
	req := a.Requester()
	desc := Description{
		Name:         a.Name(),
		HasRequester: req != nil,
		HasExtractor: a.Extractor() != nil,
	}
	if req != nil {
		desc.RequiresProxy = req.Config().Get().Proxy != ""
	}
	return desc, true
}
