package resolver

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/miekg/dns"
	"golang.org/x/net/proxy"
)

// LookupFunc resolves host to an IP address. Returns ("", false) when the
// lookup is disabled, times out, or fails — spec.md §4.7 never
// distinguishes these cases to the caller.
type LookupFunc func(ctx context.Context, host string) (string, bool)

// Config configures the resolver stage shared by scan and brute (spec.md
// §6 Config.resolver).
type Config struct {
	Timeout     time.Duration
	Concurrency int
	Disabled    bool
	// Servers is the resolver list (ip:port / [ipv6]:port); empty means
	// 1.1.1.1:53 is queried.
	Servers []string
	Proxy   string
}

// NewLookup builds a LookupFunc from cfg. When cfg.Disabled, the returned
// function always returns ("", false) without touching the network.
func NewLookup(cfg Config) (LookupFunc, error) {
	if cfg.Disabled {
		return func(context.Context, string) (string, bool) { return "", false }, nil
	}

	client := &dns.Client{Timeout: cfg.Timeout}
	servers := cfg.Servers
	if len(servers) == 0 {
		servers = []string{"1.1.1.1:53"}
	}

	// cfg.Proxy (or ALL_PROXY) routes the raw DNS exchange through a SOCKS5
	// tunnel instead of dialing nameservers directly.
	dialer, err := socks5Dialer(cfg.Proxy)
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context, host string) (string, bool) {
		ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()

		msg := new(dns.Msg)
		msg.SetQuestion(dns.Fqdn(host), dns.TypeA)
		msg.RecursionDesired = true

		for _, server := range servers {
			resp, err := exchange(ctx, client, dialer, msg, server)
			if err != nil || resp == nil {
				continue
			}
			for _, rr := range resp.Answer {
				if a, ok := rr.(*dns.A); ok {
					return a.A.String(), true
				}
			}
		}
		return "", false
	}, nil
}

// exchange sends msg to server. When dialer is non-nil (cfg.Proxy / ALL_PROXY
// resolved to a SOCKS5 proxy), the query is tunnelled over a dialed TCP
// connection; otherwise client dials server directly.
func exchange(ctx context.Context, client *dns.Client, dialer proxy.ContextDialer, msg *dns.Msg, server string) (*dns.Msg, error) {
	if dialer == nil {
		resp, _, err := client.ExchangeContext(ctx, msg, server)
		return resp, err
	}

	conn, err := dialer.DialContext(ctx, "tcp", server)
	if err != nil {
		return nil, fmt.Errorf("dialing %s via SOCKS5: %w", server, err)
	}
	dc := &dns.Conn{Conn: conn}
	defer dc.Close()

	resp, _, err := client.ExchangeWithConnContext(ctx, msg, dc)
	return resp, err
}

const portPattern = `(6553[0-5]|655[0-2]\d|65[0-4]\d{2}|6[0-4]\d{3}|[1-5]\d{4}|[1-9]\d{0,3})`

// ipv4Port matches "a.b.c.d:port" with 1 <= port <= 65535.
var ipv4Port = regexp.MustCompile(`^((?:25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)(?:\.(?:25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)){3}):` + portPattern + `$`)

// ipv6Port matches "[address]:port"; address validity is deferred to miekg/dns.
var ipv6Port = regexp.MustCompile(`^\[([0-9a-fA-F:]+)\]:` + portPattern + `$`)

// ParseServerList reads a resolver-list file (spec.md §6 grammar):
// line-oriented, IPv4 "a.b.c.d:port" or IPv6 "[addr]:port"; non-matching
// lines are ignored; IPv6 address validity is left to miekg/dns at query
// time.
func ParseServerList(r io.Reader) ([]string, error) {
	var servers []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if ipv4Port.MatchString(line) || ipv6Port.MatchString(line) {
			servers = append(servers, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading resolver list: %w", err)
	}
	return servers, nil
}
