// Package integration implements the generic paginated-API adapter used by
// most source modules (alienvault, shodan, virustotal, ...), grounded on
// original_source's src/modules/generics/integration.rs.
package integration

import "github.com/axrune/subscan/internal/env"

// AuthMethod is a sum of the four authentication variants original_source's
// AuthenticationMethod enum supports.
type AuthMethod interface {
	isAuthMethod()
}

// NoAuth means the adapter makes unauthenticated requests.
type NoAuth struct{}

func (NoAuth) isAuthMethod() {}

// HeaderAuth installs the module's API key (read from
// SUBSCAN_<MODULE>_APIKEY) as a named request header.
type HeaderAuth struct {
	HeaderName string
}

func (HeaderAuth) isAuthMethod() {}

// QueryParamAuth installs the module's API key as a URL query parameter.
type QueryParamAuth struct {
	Param string
}

func (QueryParamAuth) isAuthMethod() {}

// BasicAuth installs HTTP basic-auth credentials. If the caller-supplied
// Credentials are invalid, the adapter falls back to the module's
// environment-derived credentials (SUBSCAN_<MODULE>_USERNAME/_PASSWORD).
type BasicAuth struct {
	Credentials env.Credentials
}

func (BasicAuth) isAuthMethod() {}
