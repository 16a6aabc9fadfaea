// Package subscan is the lifecycle façade (spec.md §4.10, C12): it
// composes the module registry, module pool, brute pool, and resolver
// around one Config and exposes the three top-level operations —
// Scan, Run, and Brute — that every entry point (CLI, tests) drives.
// Grounded on original_source's src/lib.rs (Subscan::scan/run + the
// cache-manager init-once pattern, here just an eagerly-built Registry).
package subscan

import (
	"context"
	"os"

	"github.com/axrune/subscan/internal/apperr"
	"github.com/axrune/subscan/internal/brute"
	"github.com/axrune/subscan/internal/config"
	"github.com/axrune/subscan/internal/pool"
	"github.com/axrune/subscan/internal/registry"
	"github.com/axrune/subscan/internal/requester"
	"github.com/axrune/subscan/internal/resolver"
	"github.com/axrune/subscan/internal/result"
	"github.com/axrune/subscan/internal/source"
)

// Subscan composes the core components behind one resolved Config.
type Subscan struct {
	cfg      config.Config
	registry *registry.Registry
	lookup   resolver.LookupFunc
	onItem   func(result.Item)
}

// New builds a Subscan façade from cfg and a pre-populated registry (the
// vendor module roster is assembled by the caller — see
// internal/source/vendor — so this package never imports every adapter).
// New installs cfg's requester configuration on every registered adapter
// and builds the resolver's lookup function from cfg.Resolver.
func New(cfg config.Config, reg *registry.Registry) (*Subscan, error) {
	servers, err := loadResolverList(cfg.Resolver.ListFile)
	if err != nil {
		return nil, err
	}

	lookup, err := resolver.NewLookup(resolver.Config{
		Timeout:     cfg.Resolver.Timeout,
		Concurrency: cfg.Resolver.Concurrency,
		Disabled:    cfg.Resolver.Disabled,
		Servers:     servers,
		Proxy:       cfg.Requester.Proxy,
	})
	if err != nil {
		return nil, err
	}

	reg.Configure(requester.Config{
		Timeout: cfg.Requester.Timeout,
		Headers: cfg.Requester.Headers,
		Proxy:   cfg.Requester.Proxy,
	})

	return &Subscan{cfg: cfg, registry: reg, lookup: lookup}, nil
}

func loadResolverList(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return resolver.ParseServerList(f)
}

// OnItem installs fn as the callback invoked for every newly-discovered
// item across Scan, Run, and Brute, supporting the --print streaming
// flag (spec.md §6 Config.print / SPEC_FULL.md §8).
func (s *Subscan) OnItem(fn func(result.Item)) {
	s.onItem = fn
}

// Scan runs every registered module — subject to cfg.Filter — against
// apex and returns the aggregated result (spec.md §4.10 "scan(apex):
// registry × filter × module pool × resolver").
func (s *Subscan) Scan(ctx context.Context, apex string) *result.Aggregate {
	p := pool.New(pool.Config{
		Concurrency:         s.cfg.Concurrency,
		ResolverConcurrency: s.cfg.Resolver.Concurrency,
		Allows:              s.cfg.Filter.Allows,
		Lookup:              s.lookup,
		OnItem:              s.onItem,
	}, apex)
	return p.Run(ctx, apex, s.registry.Modules())
}

// Run executes a single named module against apex, bypassing the filter
// entirely (spec.md §4.10 "run(name, apex): as scan but with N_runners=1
// and a single-element module set").
func (s *Subscan) Run(ctx context.Context, name, apex string) (*result.Aggregate, error) {
	mod, ok := s.registry.Module(name)
	if !ok {
		return nil, apperr.ErrModuleNotFound
	}

	p := pool.New(pool.Config{
		Concurrency:         1,
		ResolverConcurrency: s.cfg.Resolver.Concurrency,
		Allows:              func(string) bool { return true },
		Lookup:              s.lookup,
		OnItem:              s.onItem,
	}, apex)
	return p.Run(ctx, apex, []source.Adapter{mod}), nil
}

// Brute resolves every word in words as "word.apex" and returns the
// aggregated result (spec.md §4.10 "brute(apex): wordlist × brute pool ×
// resolver").
func (s *Subscan) Brute(ctx context.Context, apex string, words []string) *result.Aggregate {
	b := brute.New(brute.Config{
		Concurrency: s.cfg.Resolver.Concurrency,
		Lookup:      s.lookup,
		OnItem:      s.onItem,
	}, apex)
	return b.Run(ctx, apex, words)
}

// Modules returns the registered module roster, for `module list`.
func (s *Subscan) Modules() []source.Adapter {
	return s.registry.Modules()
}

// Describe returns metadata about a named module, for `module describe`.
func (s *Subscan) Describe(name string) (registry.Description, bool) {
	return s.registry.Describe(name)
}
