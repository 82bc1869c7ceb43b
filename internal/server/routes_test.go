package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Kailash-Mistry/Interviewly/internal/config"
	"github.com/Kailash-Mistry/Interviewly/internal/relay"
)

func startServer(t *testing.T, cfg *config.Server) *httptest.Server {
	t.Helper()
	hub := relay.NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	srv := httptest.NewServer(NewMux(cfg, hub))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// joinAndConfirm joins the room and blocks until the hub has processed the
// join, using the chat echo as the synchronization point.
func joinAndConfirm(t *testing.T, conn *websocket.Conn, room string) {
	t.Helper()
	if err := conn.WriteJSON(&relay.Event{Type: relay.EventJoinRoom, RoomID: room}); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := conn.WriteJSON(&relay.Event{Type: relay.EventChatMessage, Room: room, Message: "sync", Sender: "t"}); err != nil {
		t.Fatalf("sync chat: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev relay.Event
	for {
		if err := conn.ReadJSON(&ev); err != nil {
			t.Fatalf("read sync echo: %v", err)
		}
		if ev.Type == relay.EventChatMessage && ev.Message == "sync" {
			return
		}
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := startServer(t, &config.Server{})

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("get health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestCodeChangeOverWebsocket(t *testing.T) {
	srv := startServer(t, &config.Server{})

	a := dial(t, srv)
	joinAndConfirm(t, a, "abc")
	b := dial(t, srv)
	joinAndConfirm(t, b, "abc")

	code := "int main(){}"
	if err := a.WriteJSON(&relay.Event{Type: relay.EventCodeChange, Room: "abc", NewCode: &code}); err != nil {
		t.Fatalf("send code_change: %v", err)
	}

	b.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got relay.Event
	for {
		if err := b.ReadJSON(&got); err != nil {
			t.Fatalf("read code_update: %v", err)
		}
		if got.Type == relay.EventCodeUpdate {
			break
		}
	}
	if got.Room != "abc" || got.NewCode == nil || *got.NewCode != code {
		t.Fatalf("unexpected code_update: %+v", got)
	}

	// The sender gets nothing back.
	a.SetReadDeadline(time.Now().Add(150 * time.Millisecond))
	var stray relay.Event
	if err := a.ReadJSON(&stray); err == nil {
		t.Fatalf("expected no echo to sender, got %+v", stray)
	}
}

func TestOriginRestriction(t *testing.T) {
	srv := startServer(t, &config.Server{AllowedOrigins: []string{"https://allowed.example"}})
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	header := http.Header{"Origin": []string{"https://evil.example"}}
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err == nil {
		conn.Close()
		t.Fatalf("expected upgrade rejected for disallowed origin")
	}
	if resp != nil && resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}

	header = http.Header{"Origin": []string{"https://allowed.example"}}
	conn, _, err = websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		t.Fatalf("expected upgrade accepted for allowed origin: %v", err)
	}
	conn.Close()
}
