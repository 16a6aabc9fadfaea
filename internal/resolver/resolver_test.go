package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSocks5Dialer_Empty(t *testing.T) {
	cd, err := socks5Dialer("")
	require.NoError(t, err)
	assert.Nil(t, cd, "no proxy configured and no ALL_PROXY set")
}

func TestSocks5Dialer_NonSocks5Scheme(t *testing.T) {
	for _, u := range []string{"http://proxy.example.com:8080", "https://proxy.example.com:8080"} {
		cd, err := socks5Dialer(u)
		require.NoError(t, err, "proxy=%s", u)
		assert.Nil(t, cd, "non-socks5 proxy must not produce a dialer")
	}
}

func TestSocks5Dialer_Socks5Scheme(t *testing.T) {
	cd, err := socks5Dialer("socks5://127.0.0.1:1080")
	require.NoError(t, err)
	assert.NotNil(t, cd)
}

func TestSocks5Dialer_AllProxyEnv_Socks5(t *testing.T) {
	t.Setenv("ALL_PROXY", "socks5://127.0.0.1:1080")
	cd, err := socks5Dialer("")
	require.NoError(t, err)
	assert.NotNil(t, cd, "ALL_PROXY socks5 should produce a dialer")
}

func TestSocks5Dialer_AllProxyEnv_Http(t *testing.T) {
	t.Setenv("ALL_PROXY", "http://proxy.example.com:8080")
	cd, err := socks5Dialer("")
	require.NoError(t, err)
	assert.Nil(t, cd, "HTTP ALL_PROXY must not produce a dialer")
}
