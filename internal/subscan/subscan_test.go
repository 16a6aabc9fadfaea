package subscan_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axrune/subscan/internal/apperr"
	"github.com/axrune/subscan/internal/config"
	"github.com/axrune/subscan/internal/content"
	"github.com/axrune/subscan/internal/extractor"
	"github.com/axrune/subscan/internal/registry"
	"github.com/axrune/subscan/internal/requester"
	"github.com/axrune/subscan/internal/result"
	"github.com/axrune/subscan/internal/source"
	"github.com/axrune/subscan/internal/subscan"
)

type stubAdapter struct {
	name string
	req  requester.Requester
}

func (s *stubAdapter) Name() string                   { return s.name }
func (s *stubAdapter) Requester() requester.Requester { return s.req }
func (s *stubAdapter) Extractor() extractor.Extractor { return extractor.Regex{} }
func (s *stubAdapter) Run(_ context.Context, apex string, sink chan<- source.Message) {
	sink <- source.ItemMessage(s.name, "www."+apex)
	sink <- source.StatusMessage(s.name, source.Finished, "")
}

func baseConfig() config.Config {
	return config.Config{
		Concurrency: 2,
		Resolver:    config.ResolverConfig{Timeout: 50 * time.Millisecond, Concurrency: 2, Disabled: true},
		Requester:   config.RequesterConfig{Timeout: time.Second},
	}
}

func TestSubscan_Scan_AggregatesAcrossModules(t *testing.T) {
	req := &stubRequester{handle: requester.NewHandle(requester.Config{})}
	reg := registry.New(&stubAdapter{name: "crtsh", req: req}, &stubAdapter{name: "shodan"})

	cfg := baseConfig()
	cfg.Requester.Proxy = "socks5://127.0.0.1:9050"
	s, err := subscan.New(cfg, reg)
	require.NoError(t, err)

	agg := s.Scan(context.Background(), "foo.com")
	assert.Equal(t, 1, agg.Total(), "both modules report www.foo.com unresolved; the (subdomain, ip) pair is kept once")
	assert.Len(t, agg.Statistics, 2)
	assert.Equal(t, "socks5://127.0.0.1:9050", req.Config().Get().Proxy, "New must fan the requester config out to every adapter")
}

type stubRequester struct{ handle *requester.Handle }

func (r *stubRequester) Config() *requester.Handle      { return r.handle }
func (r *stubRequester) Configure(cfg requester.Config) { r.handle.Set(cfg) }
func (r *stubRequester) Fetch(context.Context, string) (content.Content, error) {
	return content.Empty, nil
}

func TestSubscan_Run_UnknownModuleReturnsError(t *testing.T) {
	reg := registry.New(&stubAdapter{name: "crtsh"})
	s, err := subscan.New(baseConfig(), reg)
	require.NoError(t, err)

	_, err = s.Run(context.Background(), "nonexistent", "foo.com")
	assert.ErrorIs(t, err, apperr.ErrModuleNotFound)
}

func TestSubscan_Run_ExecutesSingleModule(t *testing.T) {
	reg := registry.New(&stubAdapter{name: "crtsh"}, &stubAdapter{name: "shodan"})
	s, err := subscan.New(baseConfig(), reg)
	require.NoError(t, err)

	agg, err := s.Run(context.Background(), "crtsh", "foo.com")
	require.NoError(t, err)
	assert.Equal(t, 1, agg.Total())
	assert.Contains(t, agg.Statistics, "crtsh")
	assert.NotContains(t, agg.Statistics, "shodan")
}

func TestSubscan_Brute_DisabledResolverConfirmsNothing(t *testing.T) {
	cfg := baseConfig()
	cfg.Resolver.Disabled = true
	reg := registry.New()
	s, err := subscan.New(cfg, reg)
	require.NoError(t, err)

	agg := s.Brute(context.Background(), "foo.com", []string{"www", "mail"})
	assert.Equal(t, 0, agg.Total(), "disabled resolver never confirms a candidate")
}

func TestSubscan_OnItem_StreamsDiscoveredItems(t *testing.T) {
	reg := registry.New(&stubAdapter{name: "crtsh"})
	s, err := subscan.New(baseConfig(), reg)
	require.NoError(t, err)

	var streamed []string
	s.OnItem(func(item result.Item) { streamed = append(streamed, item.Subdomain) })

	s.Scan(context.Background(), "foo.com")
	assert.Equal(t, []string{"www.foo.com"}, streamed)
}

func TestSubscan_ModulesAndDescribe(t *testing.T) {
	reg := registry.New(&stubAdapter{name: "crtsh"})
	s, err := subscan.New(baseConfig(), reg)
	require.NoError(t, err)

	assert.Len(t, s.Modules(), 1)

	desc, ok := s.Describe("crtsh")
	require.True(t, ok)
	assert.Equal(t, "crtsh", desc.Name)
}
