package cli

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	pion "github.com/pion/webrtc/v4"

	"github.com/Kailash-Mistry/Interviewly/internal/config"
	"github.com/Kailash-Mistry/Interviewly/internal/session"
	"github.com/Kailash-Mistry/Interviewly/internal/ui"
	"github.com/Kailash-Mistry/Interviewly/internal/webrtc"
)

// callSession drives one peer negotiation through the relay. It both offers
// (on join, like every room member) and answers offers from the other side;
// rooms hold at most two media peers.
type callSession struct {
	pc   *pion.PeerConnection
	co   *session.Coordinator
	room string

	answers chan json.RawMessage

	mu        sync.Mutex
	remoteSet bool
	pending   []json.RawMessage
}

func newCallSession(cfg *config.Client, co *session.Coordinator, room string) (*callSession, error) {
	pc, err := webrtc.NewPeerConnection(cfg)
	if err != nil {
		return nil, err
	}

	cs := &callSession{
		pc:      pc,
		co:      co,
		room:    room,
		answers: make(chan json.RawMessage, 1),
	}

	webrtc.ForwardLocalCandidates(pc, func(raw json.RawMessage) {
		if err := co.Client.SendCandidate(room, raw); err != nil {
			ui.PrintError(err.Error())
		}
	})

	pc.OnICEConnectionStateChange(func(state pion.ICEConnectionState) {
		switch state {
		case pion.ICEConnectionStateConnected:
			ui.PrintSuccess("Direct peer link established")
		case pion.ICEConnectionStateFailed, pion.ICEConnectionStateClosed:
			ui.PrintWarning("Peer link lost")
		}
	})

	co.OnOffer(func(sig session.Signal) {
		answer, err := webrtc.CreateAnswer(pc, sig.Payload)
		if err != nil {
			ui.PrintError(err.Error())
			return
		}
		cs.remoteReady()
		if err := co.Client.SendAnswer(room, answer); err != nil {
			ui.PrintError(err.Error())
		}
	})

	co.OnAnswer(func(sig session.Signal) {
		select {
		case cs.answers <- sig.Payload:
		default:
		}
	})

	co.OnCandidate(func(sig session.Signal) {
		cs.addCandidate(sig.Payload)
	})

	return cs, nil
}

// Offer starts negotiation and waits for the answer in the background. A
// silent peer surfaces as a timeout instead of a hang.
func (cs *callSession) Offer() error {
	// The data channel gives ICE something to negotiate even before media
	// tracks exist on either side.
	if _, err := cs.pc.CreateDataChannel("interviewly", nil); err != nil {
		return err
	}

	raw, err := webrtc.CreateOffer(cs.pc)
	if err != nil {
		return err
	}
	if err := cs.co.Client.SendOffer(cs.room, raw); err != nil {
		return err
	}

	go func() {
		stop := ui.RunWaitingSpinner("Waiting for peer...")
		answer, err := webrtc.WaitForAnswer(context.Background(), cs.answers, webrtc.DefaultAnswerTimeout)
		stop()
		if err != nil {
			if errors.Is(err, webrtc.ErrNegotiationTimeout) {
				ui.PrintWarning("No answer from peer; chat and code sync still work")
			}
			return
		}
		if err := webrtc.ApplyAnswer(cs.pc, answer); err != nil {
			ui.PrintError(err.Error())
			return
		}
		cs.remoteReady()
	}()
	return nil
}

// addCandidate feeds a relayed candidate to pion, buffering it while the
// remote description is not yet set.
func (cs *callSession) addCandidate(raw json.RawMessage) {
	cs.mu.Lock()
	if !cs.remoteSet {
		cs.pending = append(cs.pending, raw)
		cs.mu.Unlock()
		return
	}
	cs.mu.Unlock()

	if err := webrtc.AddCandidate(cs.pc, raw); err != nil {
		ui.PrintError(err.Error())
	}
}

// remoteReady flushes candidates buffered before the remote description.
func (cs *callSession) remoteReady() {
	cs.mu.Lock()
	cs.remoteSet = true
	pending := cs.pending
	cs.pending = nil
	cs.mu.Unlock()

	for _, raw := range pending {
		if err := webrtc.AddCandidate(cs.pc, raw); err != nil {
			ui.PrintError(err.Error())
		}
	}
}

func (cs *callSession) Close() {
	cs.pc.Close()
}
