package slack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionsOpen(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/apps.connections.open", r.URL.Path)
		assert.Equal(t, "Bearer xapp-test", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "url": "wss://example.test/link/abc"})
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), "xoxb-test", "xapp-test")
	c.SetAPIBase(srv.URL)

	url, err := c.ConnectionsOpen(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "wss://example.test/link/abc", url)
}

func TestConnectionsOpenNotOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "invalid_auth"})
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), "xoxb-test", "xapp-bad")
	c.SetAPIBase(srv.URL)

	_, err := c.ConnectionsOpen(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_auth")
}

func TestPostMessage(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat.postMessage", r.URL.Path)
		assert.Equal(t, "Bearer xoxb-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), "xoxb-test", "xapp-test")
	c.SetAPIBase(srv.URL)

	err := c.PostMessage(context.Background(), "C123", "1700000000.000100", "hello there")
	require.NoError(t, err)
	assert.Equal(t, "C123", got["channel"])
	assert.Equal(t, "1700000000.000100", got["thread_ts"])
	assert.Equal(t, "hello there", got["text"])
}

func TestPostMessageChannelNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "channel_not_found"})
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), "xoxb-test", "xapp-test")
	c.SetAPIBase(srv.URL)

	err := c.PostMessage(context.Background(), "C404", "1.2", "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel_not_found")
}
