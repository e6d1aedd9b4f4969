package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/gocomet/ride-records/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub, id string, buffer int) *Client {
	return &Client{
		ID:     id,
		Hub:    hub,
		Send:   make(chan []byte, buffer),
		logger: logger.NewNop(),
	}
}

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	hub := NewHub(logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub, cancel
}

// TestHub_BroadcastReachesAllClients tests fan-out of a ride_created message
func TestHub_BroadcastReachesAllClients(t *testing.T) {
	hub, _ := startHub(t)

	first := newTestClient(hub, "first", 4)
	second := newTestClient(hub, "second", 4)
	hub.Register(first)
	hub.Register(second)

	hub.Broadcast(Message{Type: TypeRideCreated, Data: map[string]interface{}{"id": 7}})

	for _, client := range []*Client{first, second} {
		select {
		case raw := <-client.Send:
			var msg map[string]interface{}
			require.NoError(t, json.Unmarshal(raw, &msg))
			assert.Equal(t, TypeRideCreated, msg["type"])
			assert.Equal(t, float64(7), msg["data"].(map[string]interface{})["id"])
		case <-time.After(time.Second):
			t.Fatalf("client %s did not receive broadcast", client.ID)
		}
	}
}

// TestHub_UnregisterClosesSend tests that unregistering closes the client channel
func TestHub_UnregisterClosesSend(t *testing.T) {
	hub, _ := startHub(t)

	client := newTestClient(hub, "leaving", 1)
	hub.Register(client)
	hub.Unregister(client)

	select {
	case _, ok := <-client.Send:
		assert.False(t, ok, "send channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed")
	}
	assert.Eventually(t, func() bool { return hub.GetActiveConnections() == 0 }, time.Second, 10*time.Millisecond)
}

// TestHub_DropsSlowClient tests that a client with a full buffer is disconnected
func TestHub_DropsSlowClient(t *testing.T) {
	hub, _ := startHub(t)

	slow := newTestClient(hub, "slow", 1)
	hub.Register(slow)

	hub.Broadcast(Message{Type: TypeRideCreated})
	hub.Broadcast(Message{Type: TypeRideCreated})

	assert.Eventually(t, func() bool { return hub.GetActiveConnections() == 0 }, time.Second, 10*time.Millisecond)
}

// TestHub_StopClosesClients tests shutdown and registration after shutdown
func TestHub_StopClosesClients(t *testing.T) {
	hub, cancel := startHub(t)

	client := newTestClient(hub, "connected", 1)
	hub.Register(client)
	cancel()

	assert.Eventually(t, func() bool {
		client.mu.Lock()
		defer client.mu.Unlock()
		return client.closed
	}, time.Second, 10*time.Millisecond)

	late := newTestClient(hub, "late", 1)
	hub.Register(late)
	_, ok := <-late.Send
	assert.False(t, ok)

	// must not block once the hub is gone
	hub.Unregister(late)
}

// TestClient_PingGetsPong tests the client-side ping handling
func TestClient_PingGetsPong(t *testing.T) {
	client := newTestClient(nil, "pinger", 1)

	client.handleMessage([]byte(`{"type":"ping"}`))

	raw := <-client.Send
	assert.JSONEq(t, `{"type":"pong"}`, string(raw))
}

// TestClient_SendAfterCloseIsSafe tests that sends to a closed client are ignored
func TestClient_SendAfterCloseIsSafe(t *testing.T) {
	client := newTestClient(nil, "closed", 1)
	client.closeSend()
	client.closeSend()

	assert.NotPanics(t, func() {
		client.SendMessage(Message{Type: TypePong})
	})
}
