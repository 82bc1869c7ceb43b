package session

import "testing"

func TestMediaStartsEnabled(t *testing.T) {
	m := NewMedia()
	if !m.AudioEnabled() || !m.VideoEnabled() {
		t.Fatalf("expected both tracks enabled at start")
	}
}

func TestToggleAudio(t *testing.T) {
	m := NewMedia()

	if m.ToggleAudio() {
		t.Fatalf("expected first toggle to mute")
	}
	if m.AudioEnabled() {
		t.Fatalf("expected audio muted")
	}
	if !m.ToggleAudio() {
		t.Fatalf("expected second toggle to unmute")
	}

	// Video is untouched by audio toggles.
	if !m.VideoEnabled() {
		t.Fatalf("expected video unaffected")
	}
}

func TestToggleVideo(t *testing.T) {
	m := NewMedia()

	if m.ToggleVideo() {
		t.Fatalf("expected first toggle to disable camera")
	}
	if !m.ToggleVideo() {
		t.Fatalf("expected second toggle to enable camera")
	}
	if !m.AudioEnabled() {
		t.Fatalf("expected audio unaffected")
	}
}
