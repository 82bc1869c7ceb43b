package relay

import (
	"context"
	"log/slog"
)

type inbound struct {
	client *Client
	event  *Event
}

// Hub is the message router. A single goroutine running Run owns the
// registry and room directory, so joins, leaves and member lookups are
// atomic with respect to each other and no event can target a connection
// mid-teardown.
type Hub struct {
	log *slog.Logger

	registry *Registry
	rooms    *Rooms

	register   chan *Client
	unregister chan *Client
	events     chan inbound
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		log:        log,
		registry:   NewRegistry(),
		rooms:      NewRooms(),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan inbound),
	}
}

// Register hands a new connection to the hub goroutine.
func (h *Hub) Register(c *Client) { h.register <- c }

// Unregister tears a connection down. Called by the read pump on exit.
func (h *Hub) Unregister(c *Client) { h.unregister <- c }

// Deliver hands an inbound event to the hub goroutine.
func (h *Hub) Deliver(c *Client, ev *Event) { h.events <- inbound{client: c, event: ev} }

// Run is the hub's event loop. It must run in exactly one goroutine.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.register:
			id := h.registry.Add(c)
			h.log.Info("connection registered", "conn", id)

		case c := <-h.unregister:
			if room := h.rooms.Leave(c.id); room != "" {
				h.log.Info("connection left room", "conn", c.id, "room", room)
			}
			h.registry.Remove(c.id)
			close(c.send)
			h.log.Info("connection unregistered", "conn", c.id)

		case in := <-h.events:
			h.route(in.client, in.event)
		}
	}
}

// route applies the fan-out table. A bad event is dropped with a log line;
// one malformed client must never affect the others.
func (h *Hub) route(c *Client, ev *Event) {
	switch ev.Type {
	case EventJoinRoom:
		if ev.RoomID == "" {
			h.drop(c, ev, ErrMalformedEvent)
			return
		}
		h.rooms.Join(ev.RoomID, c.id)
		h.log.Info("connection joined room", "conn", c.id, "room", ev.RoomID)

	case EventCodeChange:
		if ev.Room == "" || ev.NewCode == nil {
			h.drop(c, ev, ErrMalformedEvent)
			return
		}
		if !h.senderIn(c, ev.Room) {
			h.drop(c, ev, ErrNotInRoom)
			return
		}
		out := &Event{Type: EventCodeUpdate, Room: ev.Room, NewCode: ev.NewCode}
		h.fanOut(h.rooms.MembersExcluding(ev.Room, c.id), out)

	case EventChatMessage:
		if ev.Room == "" || ev.Message == "" {
			h.drop(c, ev, ErrMalformedEvent)
			return
		}
		if !h.senderIn(c, ev.Room) {
			h.drop(c, ev, ErrNotInRoom)
			return
		}
		// Echoed to the sender too: every transcript, the sender's
		// included, is driven by the broadcast.
		out := &Event{
			Type:      EventChatMessage,
			Room:      ev.Room,
			Message:   ev.Message,
			Sender:    ev.Sender,
			Timestamp: ev.Timestamp,
		}
		h.fanOut(h.rooms.Members(ev.Room), out)

	case EventOffer:
		if ev.RoomID == "" || ev.Offer == nil {
			h.drop(c, ev, ErrMalformedEvent)
			return
		}
		h.relaySignal(c, ev, &Event{Type: EventOffer, RoomID: ev.RoomID, Offer: ev.Offer})

	case EventAnswer:
		if ev.RoomID == "" || ev.Answer == nil {
			h.drop(c, ev, ErrMalformedEvent)
			return
		}
		h.relaySignal(c, ev, &Event{Type: EventAnswer, RoomID: ev.RoomID, Answer: ev.Answer})

	case EventICECandidate:
		if ev.RoomID == "" || ev.Candidate == nil {
			h.drop(c, ev, ErrMalformedEvent)
			return
		}
		h.relaySignal(c, ev, &Event{Type: EventICECandidate, RoomID: ev.RoomID, Candidate: ev.Candidate})

	default:
		h.log.Warn("unknown event type", "conn", c.id, "type", ev.Type)
	}
}

// relaySignal forwards a signaling event to everyone in the room but the
// sender, stamped with the sender's connection id so the receiving peer
// knows which connection to address its reply to.
func (h *Hub) relaySignal(c *Client, in, out *Event) {
	if !h.senderIn(c, in.RoomID) {
		h.drop(c, in, ErrNotInRoom)
		return
	}
	out.Sender = c.id
	h.fanOut(h.rooms.MembersExcluding(in.RoomID, c.id), out)
}

func (h *Hub) fanOut(targets []string, ev *Event) {
	for _, id := range targets {
		if err := h.registry.Send(id, ev); err != nil {
			// Dead connection: the peer already left. Nothing to do.
			continue
		}
	}
}

func (h *Hub) senderIn(c *Client, roomID string) bool {
	room, ok := h.rooms.RoomOf(c.id)
	return ok && room == roomID
}

func (h *Hub) drop(c *Client, ev *Event, err error) {
	h.log.Warn("event dropped", "conn", c.id, "type", ev.Type, "reason", err)
}
