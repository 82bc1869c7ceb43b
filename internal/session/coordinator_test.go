package session

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Kailash-Mistry/Interviewly/internal/config"
	"github.com/Kailash-Mistry/Interviewly/internal/relay"
	"github.com/Kailash-Mistry/Interviewly/internal/server"
)

func startRelay(t *testing.T) string {
	t.Helper()
	hub := relay.NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	srv := httptest.NewServer(server.NewMux(&config.Server{}, hub))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

type testPeer struct {
	co      *Coordinator
	updates chan CodeUpdate
	chats   chan ChatMessage
}

// newTestPeer connects, joins, and waits for its own chat echo so the join
// is known to be processed before the test sends room traffic. All callbacks
// are registered before the dispatcher starts.
func newTestPeer(t *testing.T, url, name, room string) *testPeer {
	t.Helper()
	p := &testPeer{
		co:      NewCoordinator(url, name),
		updates: make(chan CodeUpdate, 4),
		chats:   make(chan ChatMessage, 4),
	}
	t.Cleanup(p.co.Close)

	p.co.OnCodeUpdate(func(up CodeUpdate) { p.updates <- up })
	p.co.OnChat(func(msg ChatMessage) { p.chats <- msg })

	if err := p.co.Connect(); err != nil {
		t.Fatalf("connect %s: %v", name, err)
	}
	if err := p.co.Join(room); err != nil {
		t.Fatalf("join %s: %v", name, err)
	}
	if err := p.co.Chat("sync"); err != nil {
		t.Fatalf("sync chat %s: %v", name, err)
	}
	for {
		select {
		case msg := <-p.chats:
			if msg.Sender == name && msg.Message == "sync" {
				return p
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for join confirmation of %s", name)
		}
	}
}

// drain empties buffered events so assertions only see fresh traffic.
func (p *testPeer) drain() {
	for {
		select {
		case <-p.updates:
		case <-p.chats:
		default:
			return
		}
	}
}

func TestCoordinatorsShareDocument(t *testing.T) {
	url := startRelay(t)
	a := newTestPeer(t, url, "alice", "abc")
	b := newTestPeer(t, url, "bob", "abc")
	a.drain()
	b.drain()

	if err := a.co.EditorChanged("fmt.Println(42)"); err != nil {
		t.Fatalf("editor change: %v", err)
	}

	select {
	case up := <-b.updates:
		if up.Code != "fmt.Println(42)" || up.Room != "abc" {
			t.Fatalf("unexpected update: %+v", up)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for code update")
	}
	if b.co.Editor.Text() != "fmt.Println(42)" {
		t.Fatalf("expected editor mirror updated, got %q", b.co.Editor.Text())
	}

	// The sender never hears its own snapshot back.
	select {
	case up := <-a.updates:
		t.Fatalf("snapshot echoed to sender: %+v", up)
	case <-time.After(150 * time.Millisecond):
	}

	// bob's editor callback reporting the applied snapshot must not bounce
	// it back to alice.
	if err := b.co.EditorChanged("fmt.Println(42)"); err != nil {
		t.Fatalf("editor change: %v", err)
	}
	select {
	case up := <-a.updates:
		t.Fatalf("echo came back around: %+v", up)
	case <-time.After(200 * time.Millisecond):
	}

	// A real divergence from bob does reach alice.
	if err := b.co.EditorChanged("fmt.Println(43)"); err != nil {
		t.Fatalf("editor change: %v", err)
	}
	select {
	case up := <-a.updates:
		if up.Code != "fmt.Println(43)" {
			t.Fatalf("unexpected update: %+v", up)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for divergent edit")
	}
}

func TestChatEchoDrivesTranscript(t *testing.T) {
	url := startRelay(t)
	a := newTestPeer(t, url, "alice", "abc")
	a.drain()

	if err := a.co.Chat("hello room"); err != nil {
		t.Fatalf("chat: %v", err)
	}

	select {
	case msg := <-a.chats:
		if msg.Sender != "alice" || msg.Message != "hello room" || msg.Timestamp == "" {
			t.Fatalf("unexpected echo: %+v", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for chat echo")
	}
}
