package relay

import "errors"

var (
	// ErrDeadConnection means the send target is no longer registered. The
	// peer has already left; callers treat this as a no-op.
	ErrDeadConnection = errors.New("connection no longer registered")

	// ErrNotInRoom means an event referenced a room its sender never joined.
	ErrNotInRoom = errors.New("sender not in room")

	// ErrMalformedEvent means a required field was missing from an event.
	ErrMalformedEvent = errors.New("malformed event")
)
