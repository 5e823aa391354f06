package realtime

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

func newTestServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub(zerolog.Nop())
	go hub.Run()

	handler := NewHandler(hub, zerolog.Nop())
	router := gin.New()
	router.GET("/realtime", func(c *gin.Context) {
		c.Set("userID", "test-user")
		handler.HandleConnection(c)
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return hub, server
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/realtime"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readSnapshot(t *testing.T, conn *websocket.Conn) *SnapshotMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}

	// A frame may carry several newline-separated snapshots; take the first
	if i := strings.IndexByte(string(data), '\n'); i >= 0 {
		data = data[:i]
	}

	var message SnapshotMessage
	if err := json.Unmarshal(data, &message); err != nil {
		t.Fatalf("Unmarshal %q: %v", data, err)
	}
	return &message
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("ClientCount = %d, want %d", hub.ClientCount(), want)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestBroadcastReachesConnectedClient(t *testing.T) {
	hub, server := newTestServer(t)

	conn := dial(t, server)
	waitForClients(t, hub, 1)

	hub.Broadcast("students", []string{"doc-1", "doc-2"})

	message := readSnapshot(t, conn)
	if message.Type != "snapshot" {
		t.Fatalf("Type = %s, want snapshot", message.Type)
	}
	if message.Collection != "students" {
		t.Fatalf("Collection = %s, want students", message.Collection)
	}
}

func TestNewClientReceivesCachedSnapshots(t *testing.T) {
	hub, server := newTestServer(t)

	// Broadcast before anyone is connected; the hub must cache it
	hub.Broadcast("goals", []string{"doc-1"})

	deadline := time.Now().Add(2 * time.Second)
	for {
		hub.snapshotsMu.RLock()
		_, cached := hub.snapshots["goals"]
		hub.snapshotsMu.RUnlock()
		if cached {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("snapshot never cached")
		}
		time.Sleep(10 * time.Millisecond)
	}

	conn := dial(t, server)

	message := readSnapshot(t, conn)
	if message.Collection != "goals" {
		t.Fatalf("Collection = %s, want replayed goals snapshot", message.Collection)
	}
}

func TestSlowClientIsDroppedWithoutStallingHub(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hub := NewHub(zerolog.Nop())
	go hub.Run()

	// Register clients without pumps and with no send buffer, so every
	// broadcast overflows them immediately
	router := gin.New()
	router.GET("/realtime", func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			t.Errorf("Upgrade: %v", err)
			return
		}
		hub.register <- &Client{
			hub:    hub,
			conn:   conn,
			send:   make(chan []byte),
			userID: "stalled-user",
			logger: zerolog.Nop(),
		}
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	dial(t, server)
	waitForClients(t, hub, 1)

	hub.Broadcast("students", []string{"doc-1"})
	waitForClients(t, hub, 0)

	// The hub loop must still be serving registrations afterwards
	dial(t, server)
	waitForClients(t, hub, 1)
}

func TestUnregisterOnDisconnect(t *testing.T) {
	hub, server := newTestServer(t)

	conn := dial(t, server)
	waitForClients(t, hub, 1)

	conn.Close()
	waitForClients(t, hub, 0)
}
