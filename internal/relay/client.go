package relay

import (
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Enough for SDP blobs and any
	// realistic document snapshot.
	maxMessageSize = 256 * 1024

	// Outbound buffer per connection. Fan-out drops events for a client
	// whose buffer is full rather than blocking the room.
	sendBuffer = 256
)

// Client wraps a single websocket connection. The hub addresses it only
// through its connection id and send channel; the pumps are the sole owners
// of the underlying conn.
type Client struct {
	hub  *Hub
	conn *websocket.Conn

	id   string
	send chan *Event
}

func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan *Event, sendBuffer),
	}
}

// ID returns the connection id assigned at registration.
func (c *Client) ID() string { return c.id }

// ReadPump pumps events from the websocket connection to the hub. It runs in
// a per-connection goroutine; all reads happen here.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var ev Event
		if err := c.conn.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("websocket read failed", "conn", c.id, "error", err)
			}
			return
		}
		c.hub.Deliver(c, &ev)
	}
}

// WritePump pumps events from the send channel to the websocket connection
// and keeps the connection alive with periodic pings. It runs in a
// per-connection goroutine; all writes happen here.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel on unregister.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(ev); err != nil {
				slog.Warn("websocket write failed", "conn", c.id, "error", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
