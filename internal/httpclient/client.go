// Package httpclient builds req/v3 clients for source adapters: one client
// per adapter, configured from that adapter's slice of internal/config's
// RequesterConfig, with rate limiting and retry-on-429 attached uniformly.
package httpclient

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/imroc/req/v3"
)

// defaultUserAgents is a pool of modern browser UA strings used for rotation
// when an adapter does not set its own User-Agent header.
var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:132.0) Gecko/20100101 Firefox/132.0",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
}

// Config configures a single adapter's HTTP client. It mirrors spec.md §6's
// requester:{timeout, headers, proxy?} — credentials are not part of it:
// header-borne keys arrive in Headers, and basic-auth credentials are
// installed on the built client by Client.rebuild.
type Config struct {
	Timeout time.Duration
	Headers map[string]string
	Proxy   string
	Logger  *slog.Logger
	Debug   bool
}

// New builds a *req.Client from cfg. proxy supports http://, https://, and
// socks5:// URLs via req's SetProxyURL; an empty proxy falls back to
// HTTP_PROXY/HTTPS_PROXY/NO_PROXY environment variables. A User-Agent
// header absent from cfg.Headers is filled in from the built-in UA pool.
func New(cfg Config) (*req.Client, error) {
	client := req.NewClient().SetTimeout(cfg.Timeout)

	if _, ok := cfg.Headers["User-Agent"]; !ok {
		client.SetUserAgent(defaultUserAgents[rand.IntN(len(defaultUserAgents))]) //nolint:gosec // UA rotation need not be cryptographically random
	}
	for k, v := range cfg.Headers {
		client.SetCommonHeader(k, v)
	}

	if cfg.Proxy != "" {
		if err := validateProxyScheme(cfg.Proxy); err != nil {
			return nil, fmt.Errorf("invalid proxy URL %q: %w", cfg.Proxy, err)
		}
		client.SetProxyURL(cfg.Proxy)
	} else {
		client.SetProxy(http.ProxyFromEnvironment)
	}

	if cfg.Debug && cfg.Logger != nil {
		attachDebugHook(client, cfg.Logger)
	}

	return client, nil
}

func attachDebugHook(client *req.Client, logger *slog.Logger) {
	client.EnableTraceAll()
	client.OnAfterResponse(func(_ *req.Client, resp *req.Response) error {
		if resp.Request == nil || resp.Request.RawRequest == nil {
			return nil
		}
		ti := resp.TraceInfo()
		logger.Debug("http response",
			"method", resp.Request.RawRequest.Method,
			"url", resp.Request.RawRequest.URL.String(),
			"status", resp.StatusCode,
			"total", ti.TotalTime.Round(time.Millisecond),
			"dns", ti.DNSLookupTime.Round(time.Millisecond),
		)
		if !resp.IsSuccessState() {
			body := resp.String()
			if len(body) > 512 {
				body = body[:512]
			}
			logger.Debug("http error body", "status", resp.StatusCode, "body", body)
		}
		return nil
	})
}

func validateProxyScheme(proxy string) error {
	for _, scheme := range []string{"http://", "https://", "socks5://"} {
		if len(proxy) >= len(scheme) && proxy[:len(scheme)] == scheme {
			return nil
		}
	}
	return fmt.Errorf("proxy scheme must be http://, https://, or socks5://")
}
