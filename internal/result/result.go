// Package result is the scan-wide aggregate (spec.md §4, C10): a unique
// set of discovered (subdomain, ip?) items plus per-source statistics and
// a run-level metadata block, grounded on original_source's
// src/types/result/{pool,statistics,item,metadata}.rs.
package result

import (
	"sort"
	"time"

	"github.com/axrune/subscan/internal/source"
)

// Item is one discovered subdomain and its resolved IP, if any
// (spec.md §3 "accumulates (subdomain, optional ip) items uniquely").
type Item struct {
	Subdomain string
	IP        string
}

// AsTXT renders the item as one "subdomain\tip" line (spec.md §6 TXT format).
func (i Item) AsTXT() string {
	return i.Subdomain + "\t" + i.IP
}

// Statistic is the per-source outcome record (spec.md §6 "Statistics JSON").
type Statistic struct {
	Status     source.StatusKind
	Reason     string
	Count      int
	StartedAt  time.Time
	FinishedAt time.Time
	Elapsed    time.Duration
}

// fingerprint is the dedup key, per spec.md §9's resolution of the
// "result-item equality" Open Question: (subdomain, ip) uniqueness.
func fingerprint(subdomain, ip string) string {
	return subdomain + "|" + ip
}

// Metadata is the run-level envelope (spec.md §3 "run-level metadata
// block: target, started_at, finished_at, elapsed").
type Metadata struct {
	Target     string
	StartedAt  time.Time
	FinishedAt time.Time
	Elapsed    time.Duration
}

// Aggregate accumulates items and statistics for one façade invocation.
// It is not safe for unsynchronized concurrent use — spec.md §5 assigns a
// single mutex to the aggregate and has only resolver workers write to
// it, so Aggregate itself stays a plain struct; internal/pool supplies
// the mutex.
type Aggregate struct {
	Metadata   Metadata
	Items      map[string]Item
	Statistics map[string]Statistic
}

// New creates an empty aggregate for target, stamping StartedAt as now.
func New(target string, now time.Time) *Aggregate {
	return &Aggregate{
		Metadata:   Metadata{Target: target, StartedAt: now},
		Items:      make(map[string]Item),
		Statistics: make(map[string]Statistic),
	}
}

// Insert records subdomain/ip as discovered by source, incrementing
// source's count iff this exact (subdomain, ip) pair was not already
// present. Returns whether a new item was inserted.
func (a *Aggregate) Insert(sourceName, subdomain, ip string) bool {
	key := fingerprint(subdomain, ip)
	if _, exists := a.Items[key]; exists {
		return false
	}
	a.Items[key] = Item{Subdomain: subdomain, IP: ip}

	stat := a.Statistics[sourceName]
	stat.Count++
	a.Statistics[sourceName] = stat
	return true
}

// Finish records source's terminal status, stamping FinishedAt/Elapsed
// from the source's StartedAt (spec.md §4.8 "update statistics[source]
// with terminal status + elapsed").
func (a *Aggregate) Finish(sourceName string, status source.Status, finishedAt time.Time) {
	stat := a.Statistics[sourceName]
	stat.Status = status.Kind
	stat.Reason = status.Reason
	stat.FinishedAt = finishedAt
	if stat.StartedAt.IsZero() {
		stat.StartedAt = finishedAt
	}
	stat.Elapsed = finishedAt.Sub(stat.StartedAt)
	a.Statistics[sourceName] = stat
}

// Start marks sourceName as having begun, so Finish can later compute a
// meaningful elapsed duration even for sources with zero items.
func (a *Aggregate) Start(sourceName string, startedAt time.Time) {
	stat := a.Statistics[sourceName]
	stat.Status = source.Started
	stat.StartedAt = startedAt
	a.Statistics[sourceName] = stat
}

// Close stamps the aggregate's own FinishedAt/Elapsed from its Metadata's
// StartedAt.
func (a *Aggregate) Close(finishedAt time.Time) {
	a.Metadata.FinishedAt = finishedAt
	a.Metadata.Elapsed = finishedAt.Sub(a.Metadata.StartedAt)
}

// ItemList returns the discovered items as a slice, sorted by subdomain
// then IP, for deterministic serialization.
func (a *Aggregate) ItemList() []Item {
	items := make([]Item, 0, len(a.Items))
	for _, item := range a.Items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Subdomain != items[j].Subdomain {
			return items[i].Subdomain < items[j].Subdomain
		}
		return items[i].IP < items[j].IP
	})
	return items
}

// Total returns the number of unique discovered items.
func (a *Aggregate) Total() int {
	return len(a.Items)
}

// SourcesByStatus returns the sorted names of every source whose terminal
// Statistics entry matches kind. spec.md §3's run-level metadata calls out
// started/finished/failed/skipped sets explicitly; rather than duplicate
// that bookkeeping into Metadata, it is derived on demand from Statistics,
// the single place the status already lives.
func (a *Aggregate) SourcesByStatus(kind source.StatusKind) []string {
	var names []string
	for name, stat := range a.Statistics {
		if stat.Status == kind {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
