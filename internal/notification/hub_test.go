package notification

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHubServer(t *testing.T, hub *Hub, clientID string) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.ServeWS(conn, clientID)
	}))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.Eventually(t, func() bool {
		return hub.SubscriberCount() == 1
	}, time.Second, time.Millisecond)

	return conn
}

func TestBroadcast_ConcurrentSenders(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	conn := startHubServer(t, hub, "admin-1")

	// Drain frames as they arrive; every one must be intact JSON.
	received := make(chan envelope, 2048)
	go func() {
		defer close(received)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var env envelope
			if json.Unmarshal(data, &env) != nil {
				return
			}
			received <- env
		}
	}()

	// Toasts and board refreshes arrive from independent goroutines in
	// production (HTTP handlers, background file reads), so hammer the hub
	// from two at once.
	var wg sync.WaitGroup
	for g := 0; g < 2; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				hub.Broadcast(envelope{Type: "toast", Data: Toast{Title: "Success", Message: "ok"}})
			}
		}()
	}
	wg.Wait()

	// A full send buffer may drop any single frame, so repeat the refresh
	// until it comes through; every frame that does arrive must be intact.
	retry := time.NewTicker(50 * time.Millisecond)
	defer retry.Stop()
	deadline := time.After(2 * time.Second)
	hub.BroadcastRefresh([]string{"R1"})

	sawRefresh := false
	for !sawRefresh {
		select {
		case env, ok := <-received:
			require.True(t, ok, "connection died mid-broadcast")
			assert.Contains(t, []string{"toast", "pending_list_refresh"}, env.Type)
			if env.Type == "pending_list_refresh" {
				sawRefresh = true
			}
		case <-retry.C:
			hub.BroadcastRefresh([]string{"R1"})
		case <-deadline:
			t.Fatal("timed out waiting for the refresh frame")
		}
	}
}

func TestHub_UnregistersOnDisconnect(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	conn := startHubServer(t, hub, "admin-1")
	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool {
		return hub.SubscriberCount() == 0
	}, time.Second, time.Millisecond)
}

func TestBroadcastRefresh_Envelope(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	conn := startHubServer(t, hub, "admin-1")
	hub.BroadcastRefresh([]string{"R1", "R2"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(data, &env))
	assert.Equal(t, "pending_list_refresh", env.Type)
	assert.Equal(t, []interface{}{"R1", "R2"}, env.Data)
}

func TestBroadcast_SkipsUnmarshalableMessage(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	conn := startHubServer(t, hub, "admin-1")

	hub.Broadcast(make(chan int)) // not JSON-marshalable, dropped
	hub.BroadcastRefresh(nil)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(data, &env))
	assert.Equal(t, "pending_list_refresh", env.Type)
}
