package session

import "sync"

// Media owns the local capture-track toggles. Muting or disabling camera is
// purely local state: it never generates a relay or signaling event, and the
// peer connection is left untouched.
type Media struct {
	mu    sync.Mutex
	audio bool
	video bool
}

// NewMedia starts with both tracks enabled, matching a freshly acquired
// capture stream.
func NewMedia() *Media {
	return &Media{audio: true, video: true}
}

// ToggleAudio flips the microphone track and returns the new state.
func (m *Media) ToggleAudio() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.audio = !m.audio
	return m.audio
}

// ToggleVideo flips the camera track and returns the new state.
func (m *Media) ToggleVideo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.video = !m.video
	return m.video
}

func (m *Media) AudioEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.audio
}

func (m *Media) VideoEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.video
}
