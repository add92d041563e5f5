package events

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"museumhub/pkg/utils"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestServer_BroadcastsToTCPClients(t *testing.T) {
	hub := NewHub(utils.DiscardLogger())
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewServer("", hub).Serve(ctx, ln) }()

	conn, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	r := bufio.NewReader(conn)
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	line, err := r.ReadString('\n')
	if err != nil || !strings.Contains(line, `"welcome"`) {
		t.Fatalf("want welcome, got %q, %v", line, err)
	}

	hub.BroadcastJSON(map[string]string{"type": "exhibition.created", "exhibitionId": "abc"})
	line, err = r.ReadString('\n')
	if err != nil {
		t.Fatalf("read event: %v", err)
	}
	var ev map[string]string
	if err := json.Unmarshal([]byte(line), &ev); err != nil {
		t.Fatalf("decode %q: %v", line, err)
	}
	if ev["type"] != "exhibition.created" || ev["exhibitionId"] != "abc" {
		t.Fatalf("unexpected event %v", ev)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("server did not stop on cancel")
	}
}

func TestWSHandler_ReceivesBroadcasts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub(utils.DiscardLogger())
	r := gin.New()
	r.GET("/ws", WSHandler(hub, nil))
	srv := httptest.NewServer(r)
	defer srv.Close()

	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer ws.Close()
	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))

	if _, msg, err := ws.ReadMessage(); err != nil || !strings.Contains(string(msg), "welcome") {
		t.Fatalf("want welcome, got %q, %v", msg, err)
	}
	waitFor(t, func() bool { return hub.Stats().WSClients == 1 })

	hub.BroadcastJSON(map[string]string{"type": "artwork.added"})
	_, msg, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(msg), "artwork.added") {
		t.Fatalf("unexpected message %q", msg)
	}

	_ = ws.Close()
	waitFor(t, func() bool { return hub.Stats().WSClients == 0 })
}

func TestWSHandler_RejectsUnknownOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub(utils.DiscardLogger())
	r := gin.New()
	r.GET("/ws", WSHandler(hub, []string{"http://localhost:5173"}))
	srv := httptest.NewServer(r)
	defer srv.Close()

	header := map[string][]string{"Origin": {"http://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", header)
	if err == nil {
		t.Fatalf("want handshake failure for foreign origin")
	}
	if resp == nil || resp.StatusCode != 403 {
		t.Fatalf("want 403, got %v", resp)
	}
}
