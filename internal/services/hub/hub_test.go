package hub

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"argus-hub-go/internal/config"
	"argus-hub-go/internal/models"
)

func newTestConfig() *config.Config {
	return &config.Config{
		WSReadBufferSize:  1024,
		WSWriteBufferSize: 1024,
		WSMaxMessageSize:  1024 * 1024,
		WSSendBuffer:      16,
		WSPongWait:        60 * time.Second,
		WSWriteWait:       5 * time.Second,
	}
}

func startHub(t *testing.T, h *Hub) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{
		CheckOrigin: func(*http.Request) bool { return true },
	}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		h.Register(conn)
	}))
	t.Cleanup(h.Close)
	t.Cleanup(ts.Close)
	return ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to dial hub: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendEnvelope(t *testing.T, conn *websocket.Conn, event string, data any) {
	t.Helper()
	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}
	msg, err := json.Marshal(models.Envelope{Event: event, Data: payload})
	if err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		t.Fatalf("failed to send %s: %v", event, err)
	}
}

func readEnvelope(t *testing.T, conn *websocket.Conn, timeout time.Duration) models.Envelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(timeout))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read message: %v", err)
	}
	var env models.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("malformed envelope %s: %v", raw, err)
	}
	return env
}

func waitForClients(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, have %d", want, h.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestFrameFanOutIncludesSender(t *testing.T) {
	h := New(newTestConfig())
	h.HandleFunc(models.EventFrame, func(_ *Client, data json.RawMessage) {
		h.Broadcast(models.EventFrame, data)
	})
	ts := startHub(t, h)

	sender := dial(t, ts)
	viewer := dial(t, ts)
	waitForClients(t, h, 2)

	sendEnvelope(t, sender, models.EventFrame, "ZnJhbWUtMQ==")
	sendEnvelope(t, sender, models.EventFrame, "ZnJhbWUtMg==")

	// Both clients receive both frames in send order, sender included
	for _, conn := range []*websocket.Conn{sender, viewer} {
		first := readEnvelope(t, conn, time.Second)
		second := readEnvelope(t, conn, time.Second)
		if first.Event != models.EventFrame || second.Event != models.EventFrame {
			t.Fatalf("expected frame events, got %q then %q", first.Event, second.Event)
		}
		if string(first.Data) != `"ZnJhbWUtMQ=="` || string(second.Data) != `"ZnJhbWUtMg=="` {
			t.Errorf("frames reordered or altered: %s then %s", first.Data, second.Data)
		}
	}
}

func TestDirectReplyOnlyReachesSender(t *testing.T) {
	h := New(newTestConfig())
	h.HandleFunc("ping", func(c *Client, _ json.RawMessage) {
		c.Send("pong", map[string]string{"to": c.ID()})
	})
	ts := startHub(t, h)

	asker := dial(t, ts)
	bystander := dial(t, ts)
	waitForClients(t, h, 2)

	sendEnvelope(t, asker, "ping", nil)

	if env := readEnvelope(t, asker, time.Second); env.Event != "pong" {
		t.Fatalf("expected pong, got %q", env.Event)
	}

	bystander.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := bystander.ReadMessage(); err == nil {
		t.Error("direct reply must not reach other clients")
	}
}

func TestUnknownEventIsDropped(t *testing.T) {
	h := New(newTestConfig())
	h.HandleFunc("ping", func(c *Client, _ json.RawMessage) {
		c.Send("pong", nil)
	})
	ts := startHub(t, h)

	conn := dial(t, ts)
	waitForClients(t, h, 1)

	sendEnvelope(t, conn, "no_such_event", "whatever")
	sendEnvelope(t, conn, "ping", nil)

	// The connection survives the unknown event
	if env := readEnvelope(t, conn, time.Second); env.Event != "pong" {
		t.Fatalf("expected pong after unknown event, got %q", env.Event)
	}
}

func TestDisconnectHookRunsBeforeRemoval(t *testing.T) {
	h := New(newTestConfig())
	gone := make(chan string, 1)
	h.OnDisconnect(func(clientID string) {
		gone <- clientID
	})
	ts := startHub(t, h)

	conn := dial(t, ts)
	waitForClients(t, h, 1)

	h.mu.RLock()
	var connectedID string
	for id := range h.clients {
		connectedID = id
	}
	h.mu.RUnlock()

	conn.Close()

	select {
	case id := <-gone:
		if id != connectedID {
			t.Errorf("hook got id %q, expected %q", id, connectedID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("disconnect hook did not run")
	}
	waitForClients(t, h, 0)
}

func TestBroadcastDropsWhenBufferFull(t *testing.T) {
	h := New(newTestConfig())

	// A client that never drains its queue
	stuck := &Client{id: "stuck", hub: h, send: make(chan []byte)}
	h.mu.Lock()
	h.clients[stuck.id] = stuck
	h.mu.Unlock()

	h.Broadcast(models.EventFrame, json.RawMessage(`"ZnJhbWU="`))

	if h.Dropped() != 1 {
		t.Errorf("expected 1 dropped message, got %d", h.Dropped())
	}
}

func TestMalformedEnvelopeKeepsConnection(t *testing.T) {
	h := New(newTestConfig())
	h.HandleFunc("ping", func(c *Client, _ json.RawMessage) {
		c.Send("pong", nil)
	})
	ts := startHub(t, h)

	conn := dial(t, ts)
	waitForClients(t, h, 1)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatal(err)
	}
	sendEnvelope(t, conn, "ping", nil)

	if env := readEnvelope(t, conn, time.Second); env.Event != "pong" {
		t.Fatalf("expected pong after malformed envelope, got %q", env.Event)
	}
}
