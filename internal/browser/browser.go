// Package browser is the headless-Chrome implementation of
// requester.Requester, for sources that only expose their subdomain list
// after JavaScript has run (spec.md §4.1 "requester may be backed by a
// plain HTTP client or a headless browser renderer"). Grounded on
// PathFinder's render_headless.go chromedp.NewExecAllocator/Run shape,
// generalized from PathFinder's crawl-queue use into a single
// navigate-and-capture-body Fetch call.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/axrune/subscan/internal/content"
	"github.com/axrune/subscan/internal/env"
	"github.com/axrune/subscan/internal/requester"
)

// Renderer is the chromedp-backed requester.Requester. Unlike
// httpclient.Client it does not rebuild anything on Configure — each Fetch
// starts its own allocator and applies the current timeout, proxy, and
// User-Agent header; other configured headers are not sent.
type Renderer struct {
	handle     *requester.Handle
	execPath   string
	waitReady  string
	settleTime time.Duration
}

// New builds a Renderer from cfg. execPath overrides the Chrome binary
// chromedp auto-discovers; pass "" to let chromedp search PATH, or use
// env.ChromePath() to honor SUBSCAN_CHROME_PATH. waitReady is the CSS
// selector chromedp waits for before reading the rendered body; "body" is
// a sane default for sources with no known SPA root.
func New(cfg requester.Config, execPath, waitReady string) *Renderer {
	if waitReady == "" {
		waitReady = "body"
	}
	return &Renderer{
		handle:     requester.NewHandle(cfg),
		execPath:   execPath,
		waitReady:  waitReady,
		settleTime: 1500 * time.Millisecond,
	}
}

// NewFromEnv builds a Renderer honoring SUBSCAN_CHROME_PATH.
func NewFromEnv(cfg requester.Config, waitReady string) *Renderer {
	return New(cfg, env.ChromePath(), waitReady)
}

// Config implements requester.Requester.
func (r *Renderer) Config() *requester.Handle { return r.handle }

// Configure implements requester.Requester.
func (r *Renderer) Configure(cfg requester.Config) { r.handle.Set(cfg) }

// Fetch navigates to url in a fresh headless tab, waits for waitReady to
// appear, gives the page settleTime to fire any XHR-driven rendering, and
// returns the resulting DOM as text/html Content. Each Fetch gets its own
// browser context so adapters calling Fetch concurrently never share tab
// state.
func (r *Renderer) Fetch(ctx context.Context, url string) (content.Content, error) {
	cfg := r.handle.Get()

	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if r.execPath != "" {
		opts = append(opts, chromedp.ExecPath(r.execPath))
	}
	if cfg.Proxy != "" {
		opts = append(opts, chromedp.ProxyServer(cfg.Proxy))
	}
	if ua, ok := cfg.Headers["User-Agent"]; ok {
		opts = append(opts, chromedp.UserAgent(ua))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	runCtx, cancelRun := context.WithTimeout(tabCtx, timeout)
	defer cancelRun()

	var body string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady(r.waitReady, chromedp.ByQuery),
		chromedp.Sleep(r.settleTime),
		chromedp.OuterHTML("html", &body, chromedp.ByQuery),
	)
	if err != nil {
		return content.Empty, fmt.Errorf("rendering %s: %w", url, err)
	}
	return content.Text(body), nil
}
