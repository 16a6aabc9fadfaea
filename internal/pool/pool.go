// Package pool implements the module pool (spec.md §4.8, C8): two bounded
// worker sets — source runners draining a job channel, resolvers draining
// the results channel they produce — joined by Go's native channel-close
// broadcast instead of original_source's explicit `None` sentinel count
// (closing a channel IS "send the shutdown sentinel to every receiver" in
// Go), preserving the same deterministic termination order: all runners
// exit before the results channel closes, so no late item is dropped.
//
// Grounded on original_source's src/pools/module.rs (two channels, two
// worker sets, runner/resolver loop shapes) and on the teacher's
// internal/worker/pool.go (WaitGroup + worker goroutines draining a
// channel), generalized from one result channel into the runner/resolver
// split spec.md §4.8 requires.
package pool

import (
	"context"
	"sync"
	"time"

	"github.com/axrune/subscan/internal/resolver"
	"github.com/axrune/subscan/internal/result"
	"github.com/axrune/subscan/internal/source"
)

// Config configures one pool run.
type Config struct {
	// Concurrency is N_runners, the number of source-runner workers.
	Concurrency int
	// ResolverConcurrency is N_resolvers, the resolver worker count.
	ResolverConcurrency int
	// Allows reports whether a module name passes the active CacheFilter;
	// a rejecting Allows yields Skipped(SkippedByUser) without running
	// the adapter (spec.md §4.8 runner loop).
	Allows func(name string) bool
	// Lookup resolves a subdomain to an IP, or ("", false) when disabled
	// or unresolvable.
	Lookup resolver.LookupFunc
	// OnItem, when non-nil, is called from the resolver worker for every
	// newly-inserted item, supporting the --print streaming flag (spec.md
	// §6 Config.print) without the pool itself depending on an io.Writer.
	OnItem func(result.Item)
}

// Pool runs a batch of source.Adapter instances against one apex domain
// and produces a result.Aggregate.
type Pool struct {
	cfg     Config
	jobs    chan source.Adapter
	results chan source.Message

	mu  sync.Mutex
	agg *result.Aggregate
}

// New builds a Pool for target, ready for one Run call.
func New(cfg Config, target string) *Pool {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.ResolverConcurrency < 1 {
		cfg.ResolverConcurrency = 1
	}
	if cfg.Allows == nil {
		cfg.Allows = func(string) bool { return true }
	}
	return &Pool{
		cfg:     cfg,
		jobs:    make(chan source.Adapter),
		results: make(chan source.Message),
		agg:     result.New(target, time.Now()),
	}
}

// Run submits every adapter in modules, drains both worker sets to
// completion following spec.md §4.8's shutdown protocol, and returns the
// finished aggregate. Run must be called exactly once per Pool.
func (p *Pool) Run(ctx context.Context, apex string, modules []source.Adapter) *result.Aggregate {
	var runners, resolvers sync.WaitGroup

	resolvers.Add(p.cfg.ResolverConcurrency)
	for i := 0; i < p.cfg.ResolverConcurrency; i++ {
		go p.resolveLoop(ctx, &resolvers)
	}

	runners.Add(p.cfg.Concurrency)
	for i := 0; i < p.cfg.Concurrency; i++ {
		go p.runLoop(ctx, apex, &runners)
	}

	for _, m := range modules {
		p.jobs <- m
	}
	close(p.jobs)
	runners.Wait()

	close(p.results)
	resolvers.Wait()

	p.agg.Close(time.Now())
	return p.agg
}

// runLoop is the source-runner worker (spec.md §4.8 runner loop).
func (p *Pool) runLoop(ctx context.Context, apex string, wg *sync.WaitGroup) {
	defer wg.Done()
	for adapter := range p.jobs {
		name := adapter.Name()
		if !p.cfg.Allows(name) {
			p.results <- source.StatusMessage(name, source.Skipped, source.ReasonSkippedByUser)
			continue
		}
		p.results <- source.StatusMessage(name, source.Started, "")
		adapter.Run(ctx, apex, p.results)
	}
}

// resolveLoop is the resolver worker (spec.md §4.8 resolver loop): the
// only place the aggregate is mutated, per spec.md §5's "items set and
// statistics map are mutated only by resolver workers".
func (p *Pool) resolveLoop(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()
	for msg := range p.results {
		if msg.Status != nil {
			p.mu.Lock()
			if msg.Status.Kind == source.Started {
				p.agg.Start(msg.Status.Source, time.Now())
			} else {
				p.agg.Finish(msg.Status.Source, *msg.Status, time.Now())
			}
			p.mu.Unlock()
			continue
		}

		ip, _ := p.cfg.Lookup(ctx, msg.Item.Subdomain)
		p.mu.Lock()
		inserted := p.agg.Insert(msg.Item.Source, msg.Item.Subdomain, ip)
		p.mu.Unlock()
		if inserted && p.cfg.OnItem != nil {
			p.cfg.OnItem(result.Item{Subdomain: msg.Item.Subdomain, IP: ip})
		}
	}
}
