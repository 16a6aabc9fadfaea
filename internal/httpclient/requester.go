package httpclient

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/imroc/req/v3"

	"github.com/axrune/subscan/internal/content"
	"github.com/axrune/subscan/internal/ratelimit"
	"github.com/axrune/subscan/internal/requester"
)

// Client is the plain-HTTP implementation of requester.Requester. It wraps
// a *req.Client rebuilt on every Configure call so header/proxy/timeout
// changes take effect for subsequent Fetch calls.
type Client struct {
	handle  *requester.Handle
	logger  *slog.Logger
	debug   bool
	limiter *ratelimit.Limiter

	client *req.Client
}

// NewClient builds a Client from cfg. limiter may be nil to disable rate
// limiting (e.g. in tests).
func NewClient(cfg requester.Config, logger *slog.Logger, debug bool, limiter *ratelimit.Limiter) (*Client, error) {
	c := &Client{handle: requester.NewHandle(cfg), logger: logger, debug: debug, limiter: limiter}
	if err := c.rebuild(cfg); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) rebuild(cfg requester.Config) error {
	headers := cfg.Headers
	if cfg.HasBasicAuth() {
		if headers == nil {
			headers = make(map[string]string)
		}
	}
	client, err := New(Config{
		Timeout: cfg.Timeout,
		Headers: headers,
		Proxy:   cfg.Proxy,
		Logger:  c.logger,
		Debug:   c.debug,
	})
	if err != nil {
		return err
	}
	if cfg.HasBasicAuth() {
		client.SetCommonBasicAuth(cfg.Username, cfg.Password)
	}
	if c.limiter != nil {
		AttachRateLimit(client, c.limiter)
	}
	c.client = client
	return nil
}

// Config implements requester.Requester.
func (c *Client) Config() *requester.Handle { return c.handle }

// Configure implements requester.Requester. A rebuild failure (malformed
// proxy URL) is swallowed here — Configure has no error return per the
// interface — leaving the previous client in place.
func (c *Client) Configure(cfg requester.Config) {
	c.handle.Set(cfg)
	_ = c.rebuild(cfg)
}

// Fetch implements requester.Requester. A non-2xx response is returned as
// textual Content, never as an error — only transport/TLS/timeout failures
// are errors, per spec.md §4.1.
func (c *Client) Fetch(ctx context.Context, url string) (content.Content, error) {
	resp, err := c.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return content.Empty, fmt.Errorf("fetching %s: %w", url, err)
	}
	return content.Text(resp.String()), nil
}

// PostForm issues a url-encoded form POST, for the handful of vendor
// modules that authenticate via a form submission rather than a GET
// (e.g. the dnsdumpster CSRF handshake).
func (c *Client) PostForm(ctx context.Context, url string, form map[string]string) (content.Content, error) {
	resp, err := c.client.R().SetContext(ctx).SetFormData(form).Post(url)
	if err != nil {
		return content.Empty, fmt.Errorf("posting %s: %w", url, err)
	}
	return content.Text(resp.String()), nil
}

// PostJSON issues a POST with a JSON-encoded body, for vendor modules
// whose second phase is a bulk JSON query rather than a GET (netlas).
func (c *Client) PostJSON(ctx context.Context, url string, body any) (content.Content, error) {
	resp, err := c.client.R().SetContext(ctx).SetBody(body).Post(url)
	if err != nil {
		return content.Empty, fmt.Errorf("posting %s: %w", url, err)
	}
	return content.Text(resp.String()), nil
}
