// Package resolver builds the IP lookup function used by the module and brute
// pools. Queries go through miekg/dns, optionally tunnelled over a SOCKS5
// proxy to prevent DNS leaks when the user configures one.
package resolver
