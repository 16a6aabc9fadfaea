package brute_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axrune/subscan/internal/brute"
	"github.com/axrune/subscan/internal/result"
)

func resolvesOnly(allowed map[string]string) func(context.Context, string) (string, bool) {
	return func(_ context.Context, host string) (string, bool) {
		ip, ok := allowed[host]
		return ip, ok
	}
}

func TestPool_Run_KeepsOnlyResolvableCandidates(t *testing.T) {
	lookup := resolvesOnly(map[string]string{"www.foo.com": "1.2.3.4"})
	p := brute.New(brute.Config{Concurrency: 4, Lookup: lookup}, "foo.com")

	agg := p.Run(context.Background(), "foo.com", []string{"www", "mail", "api"})

	items := agg.ItemList()
	require.Len(t, items, 1)
	assert.Equal(t, "www.foo.com", items[0].Subdomain)
	assert.Equal(t, "1.2.3.4", items[0].IP)
}

func TestPool_Run_EmptyWordlistYieldsEmptyAggregate(t *testing.T) {
	p := brute.New(brute.Config{Concurrency: 2, Lookup: resolvesOnly(nil)}, "foo.com")
	agg := p.Run(context.Background(), "foo.com", nil)
	assert.Equal(t, 0, agg.Total())
}

func TestPool_Run_OnItemFiresForResolvedCandidatesOnly(t *testing.T) {
	lookup := resolvesOnly(map[string]string{"www.foo.com": "1.2.3.4"})
	var streamed []string
	p := brute.New(brute.Config{
		Concurrency: 2,
		Lookup:      lookup,
		OnItem:      func(item result.Item) { streamed = append(streamed, item.Subdomain) },
	}, "foo.com")

	p.Run(context.Background(), "foo.com", []string{"www", "mail"})

	assert.Equal(t, []string{"www.foo.com"}, streamed)
}

func TestReadWordlist_SkipsBlankLines(t *testing.T) {
	input := "www\n\nmail\n   \napi\n"
	words, err := brute.ReadWordlist(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"www", "mail", "api"}, words)
}
