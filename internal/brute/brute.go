// Package brute implements the wordlist brute-force pool (spec.md §4.9,
// C9): forms "candidate.apex" for each wordlist entry, resolves it, and
// keeps only candidates that resolve. Grounded on original_source's
// src/pools/brute.rs for the resolver-loop-variant shape and on the
// teacher's internal/worker/stdin.go (ReadInputs) for wordlist reading.
package brute

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/axrune/subscan/internal/resolver"
	"github.com/axrune/subscan/internal/result"
	"github.com/axrune/subscan/internal/source"
)

// sourceName is the statistics key brute results are recorded under;
// brute has no adapter roster, so it stands in for spec.md §3's
// per-source statistics entry.
const sourceName = "brute"

// Config configures one brute run.
type Config struct {
	// Concurrency is N_bruters, the resolver-loop worker count.
	Concurrency int
	Lookup      resolver.LookupFunc
	// OnItem, when non-nil, is called once for every resolved candidate
	// newly inserted into the aggregate, supporting the --print streaming flag (spec.md §6 Config.print).
	OnItem func(result.Item)
}

// Pool resolves wordlist candidates against one apex domain.
type Pool struct {
	cfg        Config
	candidates chan string

	mu  sync.Mutex
	agg *result.Aggregate
}

// New builds a Pool for target, ready for one Run call.
func New(cfg Config, target string) *Pool {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &Pool{
		cfg:        cfg,
		candidates: make(chan string),
		agg:        result.New(target, time.Now()),
	}
}

// Run submits every word in words, forms "word.apex", resolves it, and
// records only the candidates that resolve (spec.md §4.9 "emits only
// resolvable hosts").
func (p *Pool) Run(ctx context.Context, apex string, words []string) *result.Aggregate {
	var wg sync.WaitGroup
	wg.Add(p.cfg.Concurrency)
	for i := 0; i < p.cfg.Concurrency; i++ {
		go p.worker(ctx, apex, &wg)
	}

	p.agg.Start(sourceName, time.Now())
	for _, w := range words {
		p.candidates <- w
	}
	close(p.candidates)
	wg.Wait()

	p.agg.Finish(sourceName, source.Status{Source: sourceName, Kind: source.Finished}, time.Now())
	p.agg.Close(time.Now())
	return p.agg
}

func (p *Pool) worker(ctx context.Context, apex string, wg *sync.WaitGroup) {
	defer wg.Done()
	for word := range p.candidates {
		candidate := word + "." + apex
		ip, ok := p.cfg.Lookup(ctx, candidate)
		if !ok {
			continue
		}
		p.mu.Lock()
		inserted := p.agg.Insert(sourceName, candidate, ip)
		p.mu.Unlock()
		if inserted && p.cfg.OnItem != nil {
			p.cfg.OnItem(result.Item{Subdomain: candidate, IP: ip})
		}
	}
}

// ReadWordlist reads newline-separated candidate labels from r, trimming
// whitespace and dropping blank lines (spec.md §4.9 "blank lines skipped").
func ReadWordlist(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			words = append(words, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
