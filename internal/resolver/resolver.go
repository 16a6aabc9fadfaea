package resolver

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/proxy"
)

// socks5Dialer builds a SOCKS5 ContextDialer from proxyURL. When proxyURL is
// empty, the ALL_PROXY / all_proxy environment variable is consulted instead.
// Only SOCKS5 can proxy raw TCP DNS traffic, so any other scheme (including
// HTTP/HTTPS proxies) yields a nil dialer with no error. nil, nil means
// "use the direct path" — NewLookup dials nameservers itself.
func socks5Dialer(proxyURL string) (proxy.ContextDialer, error) {
	if proxyURL == "" {
		proxyURL = os.Getenv("ALL_PROXY")
		if proxyURL == "" {
			proxyURL = os.Getenv("all_proxy")
		}
	}

	host, ok := strings.CutPrefix(proxyURL, "socks5://")
	if !ok {
		return nil, nil
	}

	dialer, err := proxy.SOCKS5("tcp", host, nil, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("creating SOCKS5 dialer: %w", err)
	}

	// proxy.SOCKS5 returns a ContextDialer — type-assert to get DialContext.
	cd, ok := dialer.(proxy.ContextDialer)
	if !ok {
		return nil, fmt.Errorf("SOCKS5 dialer does not implement ContextDialer")
	}
	return cd, nil
}
