package registry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axrune/subscan/internal/content"
	"github.com/axrune/subscan/internal/extractor"
	"github.com/axrune/subscan/internal/registry"
	"github.com/axrune/subscan/internal/requester"
	"github.com/axrune/subscan/internal/source"
)

type fakeRequester struct {
	handle *requester.Handle
}

func newFakeRequester() *fakeRequester { return &fakeRequester{handle: requester.NewHandle(requester.Config{})} }

func (f *fakeRequester) Config() *requester.Handle      { return f.handle }
func (f *fakeRequester) Configure(cfg requester.Config) { f.handle.Set(cfg) }
func (f *fakeRequester) Fetch(context.Context, string) (content.Content, error) {
	panic("not used in these tests")
}

type fakeAdapter struct {
	name string
	req  requester.Requester
}

func (a *fakeAdapter) Name() string                       { return a.name }
func (a *fakeAdapter) Requester() requester.Requester     { return a.req }
func (a *fakeAdapter) Extractor() extractor.Extractor     { return extractor.Regex{} }
func (a *fakeAdapter) Run(context.Context, string, chan<- source.Message) {}

func TestRegistry_ModuleLookupCaseInsensitive(t *testing.T) {
	a := &fakeAdapter{name: "Shodan"}
	r := registry.New(a)

	got, ok := r.Module("shodan")
	require.True(t, ok)
	assert.Equal(t, "Shodan", got.Name())

	_, ok = r.Module("missing")
	assert.False(t, ok)
}

func TestRegistry_Modules_PreservesOrder(t *testing.T) {
	a1 := &fakeAdapter{name: "b"}
	a2 := &fakeAdapter{name: "a"}
	r := registry.New(a1, a2)

	mods := r.Modules()
	require.Len(t, mods, 2)
	assert.Equal(t, "b", mods[0].Name())
	assert.Equal(t, "a", mods[1].Name())
}

func TestRegistry_Names_Sorted(t *testing.T) {
	r := registry.New(&fakeAdapter{name: "zoomeye"}, &fakeAdapter{name: "anubis"})
	assert.Equal(t, []string{"anubis", "zoomeye"}, r.Names())
}

func TestRegistry_DuplicateNameKeepsFirst(t *testing.T) {
	first := &fakeAdapter{name: "dup"}
	second := &fakeAdapter{name: "DUP"}
	r := registry.New(first, second)

	require.Len(t, r.Modules(), 1)
	got, _ := r.Module("dup")
	assert.Same(t, first, got)
}

func TestRegistry_Describe(t *testing.T) {
	withReq := &fakeAdapter{name: "hasreq", req: newFakeRequester()}
	withoutReq := &fakeAdapter{name: "noreq"}
	r := registry.New(withReq, withoutReq)

	desc, ok := r.Describe("hasreq")
	require.True(t, ok)
	assert.True(t, desc.HasRequester)
	assert.True(t, desc.HasExtractor)

	desc, ok = r.Describe("noreq")
	require.True(t, ok)
	assert.False(t, desc.HasRequester)

	_, ok = r.Describe("nonexistent")
	assert.False(t, ok)
}

func TestRegistry_Configure_FansOutToAllRequesters(t *testing.T) {
	reqA := newFakeRequester()
	reqB := newFakeRequester()
	r := registry.New(
		&fakeAdapter{name: "a", req: reqA},
		&fakeAdapter{name: "b", req: reqB},
		&fakeAdapter{name: "c"},
	)

	r.Configure(requester.Config{Proxy: "socks5://127.0.0.1:9050"})

	assert.Equal(t, "socks5://127.0.0.1:9050", reqA.Config().Get().Proxy)
	assert.Equal(t, "socks5://127.0.0.1:9050", reqB.Config().Get().Proxy)
}
