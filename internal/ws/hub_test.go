package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, srv *httptest.Server, header http.Header) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	return websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), header)
}

func readText(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	return string(msg)
}

func TestHubDeliversAndReplaysLastEvent(t *testing.T) {
	m := NewHubManager(nil)
	t.Cleanup(m.StopAll)
	hub := m.GetHub("MANAGER")
	assert.Same(t, hub, m.GetHub("MANAGER"))

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	t.Cleanup(srv.Close)

	// A client that connects after an event still sees it.
	hub.Publish([]byte(`{"state":"Submitting"}`))
	first, _, err := dial(t, srv, nil)
	require.NoError(t, err)
	defer first.Close()
	assert.Equal(t, `{"state":"Submitting"}`, readText(t, first))

	hub.Publish([]byte(`{"state":"ShowingResult"}`))
	assert.Equal(t, `{"state":"ShowingResult"}`, readText(t, first))

	second, _, err := dial(t, srv, nil)
	require.NoError(t, err)
	defer second.Close()
	assert.Equal(t, `{"state":"ShowingResult"}`, readText(t, second))
}

func TestHubRejectsCrossOrigin(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	t.Cleanup(hub.Stop)

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	t.Cleanup(srv.Close)

	_, resp, err := dial(t, srv, http.Header{"Origin": {"http://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestPublishDoesNotBlockWithoutRunLoop(t *testing.T) {
	hub := NewHub(nil)
	for i := 0; i < 200; i++ {
		hub.Publish([]byte("x"))
	}
}
