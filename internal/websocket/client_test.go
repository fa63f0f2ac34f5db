package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_EvictsSlowConsumer(t *testing.T) {
	hub := NewHub()
	timings := DefaultTimings()
	timings.SendBuffer = 1
	c := NewClient(nil, AdminChannel, hub, WithSubject("ops"), WithTimings(timings))
	hub.Register(c)

	require.NoError(t, c.Send([]byte(`{}`)))
	assert.ErrorIs(t, c.Send([]byte(`{}`)), ErrSlowClient)

	assert.True(t, c.IsClosed())
	assert.Equal(t, 0, hub.ClientCount(AdminChannel))
	assert.ErrorIs(t, c.Send([]byte(`{}`)), ErrClientClosed)
	assert.NoError(t, c.Close())
}

func TestClient_InvalidBufferFallsBackToDefault(t *testing.T) {
	c := NewClient(nil, AdminChannel, nil, WithTimings(Timings{}))
	assert.Equal(t, DefaultTimings().SendBuffer, cap(c.send))
}

func TestClient_PumpsAnswerPing(t *testing.T) {
	hub := NewHub()
	upgrader := websocket.Upgrader{}
	timings := Timings{
		WriteWait:      time.Second,
		PongWait:       2 * time.Second,
		PingPeriod:     time.Second,
		MaxMessageSize: 512,
		SendBuffer:     8,
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(conn, CustomerChannel(7), hub, WithTimings(timings))
		hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount(CustomerChannel(7)) == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("hello")))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"action":"subscribe"}`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"action":"ping"}`)))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, "session.pong", event.Type)
	assert.Equal(t, EntityTypeSession, event.Entity)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.TotalClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}
