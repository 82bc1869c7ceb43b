// Package webrtc glues pion to the relay's signaling events. The relay only
// couriers the blobs produced here; everything that touches the peer
// connection lives on the client.
package webrtc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	pion "github.com/pion/webrtc/v4"

	"github.com/Kailash-Mistry/Interviewly/internal/config"
)

// ErrNegotiationTimeout is returned when no answer arrives within the
// bounded wait after sending an offer. Callers surface it instead of hanging
// on a peer that never replies.
var ErrNegotiationTimeout = errors.New("negotiation timed out waiting for answer")

// DefaultAnswerTimeout bounds the offer to answer handshake.
const DefaultAnswerTimeout = 30 * time.Second

// NewPeerConnection builds a peer connection from the configured ICE servers.
func NewPeerConnection(cfg *config.Client) (*pion.PeerConnection, error) {
	iceServers := []pion.ICEServer{{URLs: cfg.GetSTUNServers()}}

	if turnServers := cfg.GetTURNServers(); turnServers != nil {
		username, password := cfg.GetTURNCredentials()
		iceServers = append(iceServers, pion.ICEServer{
			URLs:       turnServers,
			Username:   username,
			Credential: password,
		})
	}

	pc, err := pion.NewPeerConnection(pion.Configuration{ICEServers: iceServers})
	if err != nil {
		return nil, fmt.Errorf("create peer connection: %w", err)
	}
	return pc, nil
}

// ForwardLocalCandidates sends each locally gathered ICE candidate to the
// relay via the provided function.
func ForwardLocalCandidates(pc *pion.PeerConnection, send func(json.RawMessage)) {
	pc.OnICECandidate(func(c *pion.ICECandidate) {
		if c == nil {
			return
		}
		raw, err := json.Marshal(c.ToJSON())
		if err != nil {
			return
		}
		send(raw)
	})
}

// CreateOffer produces the local offer blob to relay.
func CreateOffer(pc *pion.PeerConnection) (json.RawMessage, error) {
	offer, err := pc.CreateOffer(nil)
	if err != nil {
		return nil, fmt.Errorf("create offer: %w", err)
	}
	if err := pc.SetLocalDescription(offer); err != nil {
		return nil, fmt.Errorf("set local description: %w", err)
	}
	return json.Marshal(pc.LocalDescription())
}

// CreateAnswer applies a relayed offer and produces the answer blob to send
// back.
func CreateAnswer(pc *pion.PeerConnection, rawOffer json.RawMessage) (json.RawMessage, error) {
	var offer pion.SessionDescription
	if err := json.Unmarshal(rawOffer, &offer); err != nil {
		return nil, fmt.Errorf("parse offer: %w", err)
	}
	if err := pc.SetRemoteDescription(offer); err != nil {
		return nil, fmt.Errorf("set remote description: %w", err)
	}

	answer, err := pc.CreateAnswer(nil)
	if err != nil {
		return nil, fmt.Errorf("create answer: %w", err)
	}
	if err := pc.SetLocalDescription(answer); err != nil {
		return nil, fmt.Errorf("set local description: %w", err)
	}
	return json.Marshal(pc.LocalDescription())
}

// ApplyAnswer installs a relayed answer on the offering side.
func ApplyAnswer(pc *pion.PeerConnection, rawAnswer json.RawMessage) error {
	var answer pion.SessionDescription
	if err := json.Unmarshal(rawAnswer, &answer); err != nil {
		return fmt.Errorf("parse answer: %w", err)
	}
	if err := pc.SetRemoteDescription(answer); err != nil {
		return fmt.Errorf("set remote description: %w", err)
	}
	return nil
}

// AddCandidate feeds a relayed ICE candidate to the peer connection.
func AddCandidate(pc *pion.PeerConnection, raw json.RawMessage) error {
	var init pion.ICECandidateInit
	if err := json.Unmarshal(raw, &init); err != nil {
		return fmt.Errorf("parse ICE candidate: %w", err)
	}
	if err := pc.AddICECandidate(init); err != nil {
		return fmt.Errorf("add ICE candidate: %w", err)
	}
	return nil
}

// WaitForAnswer blocks until an answer blob arrives, the timeout expires, or
// the context is cancelled.
func WaitForAnswer(ctx context.Context, answers <-chan json.RawMessage, timeout time.Duration) (json.RawMessage, error) {
	if timeout <= 0 {
		timeout = DefaultAnswerTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case raw, ok := <-answers:
		if !ok {
			return nil, errors.New("answer channel closed")
		}
		return raw, nil
	case <-timer.C:
		return nil, ErrNegotiationTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
