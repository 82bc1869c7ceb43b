package session

import "sync"

// Editor mirrors the shared document and decides whether a local edit
// callback should be broadcast. Applying a remote update records the text it
// carried; a subsequent local change that equals the last remotely applied
// text is the editor re-reporting that same update and must not be re-sent,
// or two clients would echo the latest edit back and forth forever.
//
// Comparing against the recorded text (rather than latching a single
// suppress-next flag) stays correct when several remote updates land before
// the editor fires its change callback.
type Editor struct {
	mu         sync.Mutex
	text       string
	version    uint64
	lastRemote string
	hasRemote  bool
}

func NewEditor() *Editor {
	return &Editor{}
}

// ApplyRemote installs a remote snapshot and returns the new document
// version. Versions increase by one per applied update.
func (e *Editor) ApplyRemote(code string) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.text = code
	e.lastRemote = code
	e.hasRemote = true
	e.version++
	return e.version
}

// LocalChange records a local edit and reports whether it should be
// broadcast. False means the value is the remote state we already hold and
// the emission must be swallowed.
func (e *Editor) LocalChange(code string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.hasRemote && code == e.lastRemote {
		return false
	}
	e.text = code
	e.version++
	return true
}

// Text returns the current document.
func (e *Editor) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.text
}

// Version returns the current document version.
func (e *Editor) Version() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.version
}
