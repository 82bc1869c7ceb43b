package relay

import "encoding/json"

// Event names sent by clients.
const (
	EventJoinRoom     = "join_room"
	EventCodeChange   = "code_change"
	EventChatMessage  = "chat_message"
	EventOffer        = "offer"
	EventAnswer       = "answer"
	EventICECandidate = "ice-candidate"
)

// EventCodeUpdate is emitted by the server to every room member except the
// connection whose code_change produced it.
const EventCodeUpdate = "code_update"

// Event is the wire envelope for every message on the websocket, in both
// directions. Fields are flat; each event type uses its own subset.
//
// Legacy quirk kept on purpose: code and chat events name the room "room",
// join and signaling events name it "roomId".
type Event struct {
	Type string `json:"type"`

	Room   string `json:"room,omitempty"`
	RoomID string `json:"roomId,omitempty"`

	// NewCode is a pointer so an empty editor (a cleared document) is
	// distinguishable from a missing field.
	NewCode *string `json:"newCode,omitempty"`

	Message   string `json:"message,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`

	// Sender is the chat display name on chat_message. On relayed signaling
	// events the hub overwrites it with the originating connection id so the
	// receiving peer can address its reply.
	Sender string `json:"sender,omitempty"`

	// Signaling blobs. Opaque to the relay; produced and consumed by the
	// peers' WebRTC stacks.
	Offer     json.RawMessage `json:"offer,omitempty"`
	Answer    json.RawMessage `json:"answer,omitempty"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
}
