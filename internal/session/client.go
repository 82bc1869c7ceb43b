package session

import (
	"encoding/json"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Kailash-Mistry/Interviewly/internal/relay"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 256 * 1024
)

// Client manages the websocket connection to the relay server.
type Client struct {
	conn      *websocket.Conn
	serverURL string
	incoming  chan *relay.Event
	outgoing  chan *relay.Event
	done      chan struct{}
	closed    bool
}

func NewClient(serverURL string) *Client {
	return &Client{
		serverURL: serverURL,
		incoming:  make(chan *relay.Event, 32),
		outgoing:  make(chan *relay.Event, 32),
		done:      make(chan struct{}, 1),
	}
}

// Connect establishes the websocket connection and starts the pumps.
func (c *Client) Connect() error {
	u, err := url.Parse(c.serverURL)
	if err != nil {
		return newError("parse server URL", err)
	}

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return newError("connect to relay", err)
	}

	c.conn = conn
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	go c.readPump()
	go c.writePump()
	return nil
}

func (c *Client) readPump() {
	defer func() {
		c.conn.Close()
		close(c.incoming)
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))

	for {
		var ev relay.Event
		if err := c.conn.ReadJSON(&ev); err != nil {
			return
		}
		c.incoming <- &ev
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case ev := <-c.outgoing:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(ev); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

// Send queues an event for the relay.
func (c *Client) Send(ev *relay.Event) error {
	if c.conn == nil {
		return ErrNotConnected
	}
	if c.closed {
		return ErrClosed
	}
	c.outgoing <- ev
	return nil
}

// JoinRoom asks the relay to add this connection to a room.
func (c *Client) JoinRoom(roomID string) error {
	return c.Send(&relay.Event{Type: relay.EventJoinRoom, RoomID: roomID})
}

// SendCode broadcasts a full document snapshot to the rest of the room.
func (c *Client) SendCode(room, code string) error {
	return c.Send(&relay.Event{Type: relay.EventCodeChange, Room: room, NewCode: &code})
}

// SendChat broadcasts a chat message; the relay echoes it back to us too.
func (c *Client) SendChat(room, message, sender string) error {
	return c.Send(&relay.Event{
		Type:      relay.EventChatMessage,
		Room:      room,
		Message:   message,
		Sender:    sender,
		Timestamp: time.Now().Format(time.Kitchen),
	})
}

// SendOffer relays an SDP offer to the other room members.
func (c *Client) SendOffer(roomID string, offer json.RawMessage) error {
	return c.Send(&relay.Event{Type: relay.EventOffer, RoomID: roomID, Offer: offer})
}

// SendAnswer relays an SDP answer to the other room members.
func (c *Client) SendAnswer(roomID string, answer json.RawMessage) error {
	return c.Send(&relay.Event{Type: relay.EventAnswer, RoomID: roomID, Answer: answer})
}

// SendCandidate relays an ICE candidate to the other room members.
func (c *Client) SendCandidate(roomID string, candidate json.RawMessage) error {
	return c.Send(&relay.Event{Type: relay.EventICECandidate, RoomID: roomID, Candidate: candidate})
}

// Incoming returns the channel of events from the relay. It is closed when
// the connection drops.
func (c *Client) Incoming() <-chan *relay.Event {
	return c.incoming
}

// Close shuts the connection down.
func (c *Client) Close() {
	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
}
