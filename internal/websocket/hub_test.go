package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/dhanushgc/HireMind/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h := NewHub(nil, logger.NewNopLogger())
	go h.Run(ctx)
	return h
}

func TestSendReachesOnlyWatchersOfSession(t *testing.T) {
	h := startHub(t)
	a := &Client{Hub: h, SessionKey: "c1:j1", Send: make(chan []byte, 4)}
	b := &Client{Hub: h, SessionKey: "c2:j1", Send: make(chan []byte, 4)}
	h.register <- a
	h.register <- b
	require.Eventually(t, func() bool { return h.Watchers("c1:j1") == 1 && h.Watchers("c2:j1") == 1 }, time.Second, 5*time.Millisecond)

	h.Send(Update{Type: "FOLLOW_UP_APPENDED", SessionKey: "c1:j1", Data: map[string]interface{}{"question": "Why?"}})

	select {
	case msg := <-a.Send:
		var got Update
		require.NoError(t, json.Unmarshal(msg, &got))
		assert.Equal(t, "FOLLOW_UP_APPENDED", got.Type)
		assert.Equal(t, "Why?", got.Data["question"])
	case <-time.After(time.Second):
		t.Fatal("watcher did not receive update")
	}
	assert.Len(t, b.Send, 0)
}

func TestFullBufferDropsClient(t *testing.T) {
	h := startHub(t)
	c := &Client{Hub: h, SessionKey: "c1:j1", Send: make(chan []byte)}
	h.register <- c
	require.Eventually(t, func() bool { return h.Watchers("c1:j1") == 1 }, time.Second, 5*time.Millisecond)

	h.Send(Update{Type: "X", SessionKey: "c1:j1"})

	assert.Eventually(t, func() bool { return h.Watchers("c1:j1") == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-c.Send
	assert.False(t, open)
}

func TestUnregisterTwiceIsSafe(t *testing.T) {
	h := startHub(t)
	c := &Client{Hub: h, SessionKey: "k", Send: make(chan []byte, 1)}
	h.register <- c
	require.Eventually(t, func() bool { return h.Watchers("k") == 1 }, time.Second, 5*time.Millisecond)

	h.unregister <- c
	h.unregister <- c
	assert.Eventually(t, func() bool { return h.Watchers("k") == 0 }, time.Second, 5*time.Millisecond)
}
