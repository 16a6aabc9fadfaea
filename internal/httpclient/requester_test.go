package httpclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axrune/subscan/internal/httpclient"
	"github.com/axrune/subscan/internal/requester"
)

func TestClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("sub.example.com"))
	}))
	defer srv.Close()

	c, err := httpclient.NewClient(requester.Config{Timeout: 5 * time.Second}, nil, false, nil)
	require.NoError(t, err)

	got, err := c.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "sub.example.com", got.ToString())
}

func TestClient_Fetch_NonSuccessStatusIsNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer srv.Close()

	c, err := httpclient.NewClient(requester.Config{Timeout: 5 * time.Second}, nil, false, nil)
	require.NoError(t, err)

	got, err := c.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, got.ToString(), "rate limited")
}

func TestClient_Configure_UpdatesHeaders(t *testing.T) {
	var gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-Api-Key")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c, err := httpclient.NewClient(requester.Config{Timeout: 5 * time.Second}, nil, false, nil)
	require.NoError(t, err)

	cfg := requester.Config{Timeout: 5 * time.Second}
	cfg.SetHeader("X-Api-Key", "secret")
	c.Configure(cfg)

	_, err = c.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "secret", gotHeader)
}

func TestClient_Fetch_TransportErrorIsError(t *testing.T) {
	c, err := httpclient.NewClient(requester.Config{Timeout: 100 * time.Millisecond}, nil, false, nil)
	require.NoError(t, err)

	_, err = c.Fetch(context.Background(), "http://127.0.0.1:1/unreachable")
	assert.Error(t, err)
}
