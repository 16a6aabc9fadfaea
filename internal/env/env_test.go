package env_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/axrune/subscan/internal/env"
)

func TestAPIKeyVar(t *testing.T) {
	assert.Equal(t, "SUBSCAN_SECURITYTRAILS_APIKEY", env.APIKeyVar("securitytrails"))
}

func TestUsernameVar(t *testing.T) {
	assert.Equal(t, "SUBSCAN_NETLAS_USERNAME", env.UsernameVar("netlas"))
}

func TestPasswordVar(t *testing.T) {
	assert.Equal(t, "SUBSCAN_NETLAS_PASSWORD", env.PasswordVar("netlas"))
}

func TestHostVar(t *testing.T) {
	assert.Equal(t, "SUBSCAN_CUSTOM_HOST", env.HostVar("custom"))
}

func TestAPIKey(t *testing.T) {
	t.Setenv("SUBSCAN_SHODAN_APIKEY", "key123")
	assert.Equal(t, "key123", env.APIKey("shodan"))
}

func TestAPIKey_Missing(t *testing.T) {
	assert.Equal(t, "", env.APIKey("doesnotexist"))
}

func TestCredentials_Valid(t *testing.T) {
	creds := env.BasicCredentials("censys")
	t.Setenv("SUBSCAN_CENSYS_USERNAME", "u")
	t.Setenv("SUBSCAN_CENSYS_PASSWORD", "p")
	assert.True(t, creds.Valid())
	assert.Equal(t, "u", creds.Username())
	assert.Equal(t, "p", creds.Password())
}

func TestCredentials_InvalidWhenMissing(t *testing.T) {
	creds := env.BasicCredentials("nope")
	assert.False(t, creds.Valid())
}

func TestChromePath(t *testing.T) {
	t.Setenv(env.ChromePathVar, "/usr/bin/chromium")
	assert.Equal(t, "/usr/bin/chromium", env.ChromePath())
}
