package session

import (
	"encoding/json"

	"github.com/Kailash-Mistry/Interviewly/internal/relay"
)

// CodeUpdate is a remote document snapshot.
type CodeUpdate struct {
	Room string
	Code string
}

// ChatMessage is a chat event as seen by every room member.
type ChatMessage struct {
	Room      string
	Message   string
	Sender    string
	Timestamp string
}

// Signal is a relayed negotiation message. Sender is the connection id of
// the peer that produced it; replies go back through the relay addressed by
// that identity.
type Signal struct {
	Room    string
	Sender  string
	Payload json.RawMessage
}

// Dispatcher routes relay events to registered callbacks. Callbacks run on
// the goroutine that calls Run, one event at a time.
type Dispatcher struct {
	onCodeUpdate func(CodeUpdate)
	onChat       func(ChatMessage)
	onOffer      func(Signal)
	onAnswer     func(Signal)
	onCandidate  func(Signal)
	onUnknown    func(string)
}

func (d *Dispatcher) OnCodeUpdate(fn func(CodeUpdate)) { d.onCodeUpdate = fn }
func (d *Dispatcher) OnChat(fn func(ChatMessage))      { d.onChat = fn }
func (d *Dispatcher) OnOffer(fn func(Signal))          { d.onOffer = fn }
func (d *Dispatcher) OnAnswer(fn func(Signal))         { d.onAnswer = fn }
func (d *Dispatcher) OnCandidate(fn func(Signal))      { d.onCandidate = fn }
func (d *Dispatcher) OnUnknown(fn func(string))        { d.onUnknown = fn }

// Dispatch routes one event.
func (d *Dispatcher) Dispatch(ev *relay.Event) {
	switch ev.Type {
	case relay.EventCodeUpdate:
		if d.onCodeUpdate == nil || ev.NewCode == nil {
			return
		}
		d.onCodeUpdate(CodeUpdate{Room: ev.Room, Code: *ev.NewCode})

	case relay.EventChatMessage:
		if d.onChat == nil {
			return
		}
		d.onChat(ChatMessage{
			Room:      ev.Room,
			Message:   ev.Message,
			Sender:    ev.Sender,
			Timestamp: ev.Timestamp,
		})

	case relay.EventOffer:
		if d.onOffer == nil {
			return
		}
		d.onOffer(Signal{Room: ev.RoomID, Sender: ev.Sender, Payload: ev.Offer})

	case relay.EventAnswer:
		if d.onAnswer == nil {
			return
		}
		d.onAnswer(Signal{Room: ev.RoomID, Sender: ev.Sender, Payload: ev.Answer})

	case relay.EventICECandidate:
		if d.onCandidate == nil {
			return
		}
		d.onCandidate(Signal{Room: ev.RoomID, Sender: ev.Sender, Payload: ev.Candidate})

	default:
		if d.onUnknown != nil {
			d.onUnknown(ev.Type)
		}
	}
}

// Run dispatches events until the channel closes.
func (d *Dispatcher) Run(events <-chan *relay.Event) {
	for ev := range events {
		d.Dispatch(ev)
	}
}
