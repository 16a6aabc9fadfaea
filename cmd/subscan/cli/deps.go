// Copyright (c) 2024 Tim <tbckr>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
//
// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/axrune/subscan/internal/config"
	"github.com/axrune/subscan/internal/ratelimit"
	"github.com/axrune/subscan/internal/registry"
	"github.com/axrune/subscan/internal/source/vendor"
	"github.com/axrune/subscan/internal/subscan"
	"github.com/axrune/subscan/internal/validate"
)

// canonicalizeApex lowercases and trims apex and enforces spec.md §3's
// "apex is a canonical lowercase DNS name" invariant before it reaches the
// façade. Every command that accepts -d/--domain calls this first.
func canonicalizeApex(apex string) (string, error) {
	apex = strings.ToLower(strings.TrimSpace(apex))
	if !validate.IsDomain(apex) {
		return "", fmt.Errorf("%q is not a valid apex domain", apex)
	}
	return apex, nil
}

// commonFlags are the requester/resolver/output knobs scan, brute, and
// module run all accept (spec.md §6).
type commonFlags struct {
	concurrency         int
	userAgent           string
	timeout             time.Duration
	proxy               string
	output              string
	resolverConcurrency int
	resolverTimeoutMS   int
	resolverList        string
	disableIPResolve    bool
	print               bool
}

func addCommonFlags(cmd *cobra.Command, f *commonFlags, withModuleFilter bool) *moduleFilterFlags {
	cmd.Flags().IntVar(&f.concurrency, "concurrency", 0, "number of modules run concurrently (0: use config default)")
	cmd.Flags().StringVar(&f.userAgent, "user-agent", "", "override the User-Agent header sent by every HTTP-backed module")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "per-request HTTP timeout (0: use config default)")
	cmd.Flags().StringVar(&f.proxy, "proxy", "", "proxy URL for every HTTP-backed module")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write the result to <apex>_<epoch>.<fmt> in this format: txt, csv, json, html")
	cmd.Flags().IntVar(&f.resolverConcurrency, "resolver-concurrency", 0, "number of concurrent DNS resolver workers (0: use config default)")
	cmd.Flags().IntVar(&f.resolverTimeoutMS, "resolver-timeout", 0, "DNS resolver timeout in milliseconds (0: use config default)")
	cmd.Flags().StringVar(&f.resolverList, "resolver-list", "", "path to a file listing resolver servers, one ip:port per line")
	cmd.Flags().BoolVar(&f.disableIPResolve, "disable-ip-resolve", false, "skip resolving discovered subdomains to an IP")
	cmd.Flags().BoolVar(&f.print, "print", false, "stream each discovered item to stdout as it is found")

	if !withModuleFilter {
		return nil
	}
	mf := &moduleFilterFlags{}
	cmd.Flags().StringVar(&mf.modules, "modules", "", "comma-separated module names to run, or \"*\" for all (default: all)")
	cmd.Flags().StringVar(&mf.skips, "skips", "", "comma-separated module names to exclude")
	return mf
}

type moduleFilterFlags struct {
	modules string
	skips   string
}

// applyCommon overlays the common flags onto cfg, leaving config-file and
// environment-derived defaults in place for every flag left at its zero
// value — viper's own precedence chain already handled SUBSCAN_* env vars
// and the config file at config.Load time.
func applyCommon(cfg *config.Config, f *commonFlags) {
	if f.concurrency > 0 {
		cfg.Concurrency = f.concurrency
	}
	if f.userAgent != "" {
		if cfg.Requester.Headers == nil {
			cfg.Requester.Headers = make(map[string]string, 1)
		}
		cfg.Requester.Headers["User-Agent"] = f.userAgent
	}
	if f.timeout > 0 {
		cfg.Requester.Timeout = f.timeout
	}
	if f.proxy != "" {
		cfg.Requester.Proxy = f.proxy
	}
	if f.output != "" {
		cfg.Stream = f.output
	}
	if f.resolverConcurrency > 0 {
		cfg.Resolver.Concurrency = f.resolverConcurrency
	}
	if f.resolverTimeoutMS > 0 {
		cfg.Resolver.Timeout = time.Duration(f.resolverTimeoutMS) * time.Millisecond
	}
	if f.resolverList != "" {
		cfg.Resolver.ListFile = f.resolverList
	}
	if f.disableIPResolve {
		cfg.Resolver.Disabled = true
	}
	if f.print {
		cfg.Print = true
	}
}

func applyModuleFilter(cfg *config.Config, mf *moduleFilterFlags) {
	if mf == nil {
		return
	}
	if mf.modules != "" && mf.modules != "*" {
		cfg.Filter.Allow = splitCSV(mf.modules)
	}
	if mf.skips != "" {
		cfg.Filter.Deny = splitCSV(mf.skips)
	}
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// rateLimitRPS/rateLimitBurst bound the shared request pace every adapter's
// HTTP client is built with; subscan has no per-vendor throttling config of
// its own, so one conservative process-wide limiter protects every source
// from tripping a vendor's abuse detection.
const (
	rateLimitRPS   = 5
	rateLimitBurst = 5
)

// buildSubscan assembles the lifecycle façade for one command invocation:
// loads config, overlays f (and mf, if non-nil), builds the full vendor
// roster, and wires it into a fresh subscan.Subscan.
func buildSubscan(root *RootCmd, configFile string, f *commonFlags, mf *moduleFilterFlags) (*subscan.Subscan, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	applyCommon(cfg, f)
	applyModuleFilter(cfg, mf)

	if cfg.Concurrency < 1 {
		return nil, fmt.Errorf("--concurrency must be at least 1, got %d", cfg.Concurrency)
	}

	limiter := ratelimit.NewLimiter(rateLimitRPS, rateLimitBurst, root.logger)
	adapters, err := vendor.All(vendor.Deps{Logger: root.logger, Debug: root.verbose, Limiter: limiter})
	if err != nil {
		return nil, fmt.Errorf("building module roster: %w", err)
	}

	reg := registry.New(adapters...)
	s, err := subscan.New(*cfg, reg)
	if err != nil {
		return nil, fmt.Errorf("initializing subscan: %w", err)
	}
	return s, nil
}
