package result_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axrune/subscan/internal/result"
	"github.com/axrune/subscan/internal/source"
)

func TestAggregate_Insert_DedupsBySubdomainAndIP(t *testing.T) {
	agg := result.New("foo.com", time.Now())

	assert.True(t, agg.Insert("crtsh", "a.foo.com", "1.1.1.1"))
	assert.False(t, agg.Insert("crtsh", "a.foo.com", "1.1.1.1"), "exact dup must not reinsert")
	assert.True(t, agg.Insert("shodan", "a.foo.com", "2.2.2.2"), "same subdomain, different ip is a distinct item")

	assert.Equal(t, 2, agg.Total())
	assert.Equal(t, 2, agg.Statistics["crtsh"].Count+agg.Statistics["shodan"].Count)
}

func TestAggregate_Insert_EmptyIPCountsOnce(t *testing.T) {
	agg := result.New("foo.com", time.Now())
	assert.True(t, agg.Insert("crtsh", "b.foo.com", ""))
	assert.False(t, agg.Insert("crtsh", "b.foo.com", ""))
	assert.Equal(t, 1, agg.Total())
}

func TestAggregate_Finish_RecordsStatusAndElapsed(t *testing.T) {
	agg := result.New("foo.com", time.Now())
	start := time.Now()
	agg.Start("crtsh", start)

	finish := start.Add(2 * time.Second)
	agg.Finish("crtsh", source.Status{Kind: source.Finished}, finish)

	stat := agg.Statistics["crtsh"]
	assert.Equal(t, source.Finished, stat.Status)
	assert.Equal(t, 2*time.Second, stat.Elapsed)
}

func TestAggregate_SourcesByStatus_GroupsAndSorts(t *testing.T) {
	agg := result.New("foo.com", time.Now())
	now := time.Now()
	agg.Start("bing", now)
	agg.Start("crtsh", now)
	agg.Start("shodan", now)

	agg.Finish("crtsh", source.Status{Kind: source.Finished}, now)
	agg.Finish("bing", source.Status{Kind: source.Finished}, now)
	agg.Finish("shodan", source.Status{Kind: source.Skipped, Reason: source.ReasonAuthenticationNotProvided}, now)

	assert.Equal(t, []string{"bing", "crtsh"}, agg.SourcesByStatus(source.Finished))
	assert.Equal(t, []string{"shodan"}, agg.SourcesByStatus(source.Skipped))
	assert.Empty(t, agg.SourcesByStatus(source.Failed))
}

func TestAggregate_ItemList_SortedDeterministically(t *testing.T) {
	agg := result.New("foo.com", time.Now())
	agg.Insert("a", "z.foo.com", "")
	agg.Insert("a", "a.foo.com", "")
	agg.Insert("a", "a.foo.com", "1.1.1.1")

	items := agg.ItemList()
	require.Len(t, items, 3)
	assert.Equal(t, "a.foo.com", items[0].Subdomain)
	assert.Equal(t, "a.foo.com", items[1].Subdomain)
	assert.Equal(t, "z.foo.com", items[2].Subdomain)
}

func TestAggregate_Close_StampsElapsed(t *testing.T) {
	start := time.Now()
	agg := result.New("foo.com", start)
	agg.Close(start.Add(5 * time.Second))
	assert.Equal(t, 5*time.Second, agg.Metadata.Elapsed)
}

func TestItem_AsTXT(t *testing.T) {
	item := result.Item{Subdomain: "a.foo.com", IP: "1.1.1.1"}
	assert.Equal(t, "a.foo.com\t1.1.1.1", item.AsTXT())

	empty := result.Item{Subdomain: "b.foo.com"}
	assert.Equal(t, "b.foo.com\t", empty.AsTXT())
}
