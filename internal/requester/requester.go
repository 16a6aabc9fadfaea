// Package requester defines the abstract fetch contract every source
// adapter drives: configure once, fetch many times. Two implementations
// satisfy it — internal/httpclient.Client (plain HTTP) and
// internal/browser.Renderer (headless Chrome) — but callers in
// internal/source only ever see the Requester interface.
package requester

import (
	"context"
	"sync"
	"time"

	"github.com/axrune/subscan/internal/content"
)

// Config is the mutable configuration shared by a requester's owning
// adapter: headers (including any installed auth), timeout, proxy, and
// optional basic-auth credentials. It mirrors spec.md §6's
// requester:{timeout, headers, proxy?, credentials?}.
type Config struct {
	Timeout  time.Duration
	Headers  map[string]string
	Proxy    string
	Username string
	Password string
	hasBasic bool
}

// SetBasicAuth installs HTTP basic-auth credentials on the config.
func (c *Config) SetBasicAuth(username, password string) {
	c.Username, c.Password, c.hasBasic = username, password, true
}

// HasBasicAuth reports whether basic-auth credentials were installed.
func (c *Config) HasBasicAuth() bool { return c.hasBasic }

// SetHeader installs or overwrites a single header, allocating the map on
// first use.
func (c *Config) SetHeader(name, value string) {
	if c.Headers == nil {
		c.Headers = make(map[string]string)
	}
	c.Headers[name] = value
}

// Clone returns a deep copy of c, safe to hand to a new requester
// implementation without sharing the header map.
func (c Config) Clone() Config {
	clone := c
	if c.Headers != nil {
		clone.Headers = make(map[string]string, len(c.Headers))
		for k, v := range c.Headers {
			clone.Headers[k] = v
		}
	}
	return clone
}

// Requester is the interface an adapter drives to turn a URL into Content.
// Fetch never treats a non-2xx HTTP status as an error — per spec.md §4.1,
// sources commonly encode errors inside a 4xx/5xx JSON body, so the raw
// body is always returned. Only transport, TLS, and timeout failures
// surface as an error.
type Requester interface {
	// Config returns the mutex-guarded handle; callers hold Handle for the
	// duration of a read-modify-write to avoid racing a concurrent Configure.
	Config() *Handle
	// Configure replaces the requester's configuration wholesale.
	Configure(cfg Config)
	// Fetch issues exactly one request for url and returns its body as Content.
	Fetch(ctx context.Context, url string) (content.Content, error)
}

// Handle guards a Config behind a mutex. An adapter's requester and the
// façade's init-time configuration pass share one Handle, matching
// spec.md §3's "owned by it... configured once... under exclusive access".
type Handle struct {
	mu  sync.Mutex
	cfg Config
}

// NewHandle wraps an initial Config in a Handle.
func NewHandle(cfg Config) *Handle {
	return &Handle{cfg: cfg}
}

// Get returns a copy of the current configuration.
func (h *Handle) Get() Config {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cfg
}

// Set replaces the current configuration.
func (h *Handle) Set(cfg Config) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cfg = cfg
}

// Mutate applies fn to the guarded configuration under the lock.
func (h *Handle) Mutate(fn func(*Config)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(&h.cfg)
}
