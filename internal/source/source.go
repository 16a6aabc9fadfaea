// Package source defines the uniform contract a module presents to the
// pool (spec.md §4, C4): a name, optional requester/extractor handles, and
// a Run procedure that streams Messages onto a sink channel.
package source

import (
	"context"

	"github.com/axrune/subscan/internal/extractor"
	"github.com/axrune/subscan/internal/requester"
)

// StatusKind is the terminal outcome of one adapter invocation (spec.md §7).
type StatusKind int

const (
	Started StatusKind = iota
	Finished
	Skipped
	Failed
	FailedWithResult
)

func (k StatusKind) String() string {
	switch k {
	case Started:
		return "STARTED"
	case Finished:
		return "FINISHED"
	case Skipped:
		return "SKIPPED"
	case Failed:
		return "FAILED"
	case FailedWithResult:
		return "FAILED_WITH_RESULT"
	default:
		return "UNKNOWN"
	}
}

// Skip reasons (spec.md §3).
const (
	ReasonAuthenticationNotProvided = "authentication not provided"
	ReasonSkippedByUser             = "skipped by user"
)

// Failure kinds (spec.md §7). Custom(string) is represented by setting
// Reason directly with KindCustom.
const (
	KindGetContent   = "GetContent"
	KindJSONExtract  = "JSONExtract"
	KindHTMLExtract  = "HTMLExtract"
	KindRegexExtract = "RegexExtract"
	KindCustom       = "Custom"
)

// Status is the terminal message an adapter emits exactly once per
// invocation (spec.md §3 SourceStatus, §8 property 6). Source identifies
// which adapter the status belongs to, so the pool's resolver workers can
// key their statistics map without threading adapter identity separately
// (spec.md §4.8 "Status{source,status}").
type Status struct {
	Source string
	Kind   StatusKind
	Reason string
}

// Item is one discovered (not yet resolved) subdomain from a named source.
type Item struct {
	Source    string
	Subdomain string
}

// Message is the sum type flowing on the pool's results channel: either an
// Item or a terminal Status, never both at once.
type Message struct {
	Item   *Item
	Status *Status
}

// ItemMessage wraps a discovered subdomain as a Message.
func ItemMessage(sourceName, subdomain string) Message {
	return Message{Item: &Item{Source: sourceName, Subdomain: subdomain}}
}

// StatusMessage wraps a terminal status as a Message.
func StatusMessage(sourceName string, kind StatusKind, reason string) Message {
	return Message{Status: &Status{Source: sourceName, Kind: kind, Reason: reason}}
}

// Adapter is the uniform contract every source module implements.
// Requester and Extractor return nil when the adapter has no use for one
// (e.g. the zone-transfer adapter uses neither).
type Adapter interface {
	Name() string
	Requester() requester.Requester
	Extractor() extractor.Extractor
	Run(ctx context.Context, apex string, sink chan<- Message)
}
