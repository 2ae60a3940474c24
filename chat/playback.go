package chat

import "sync"

// PlaybackKey identifies the message whose audio is playing. Message
// ids are per-chat sequence numbers, so the chat id is part of the key.
type PlaybackKey struct {
	ChatID    string
	MessageID int
}

// PlaybackCoordinator enforces the at-most-one-concurrent-audio rule:
// a single token grants the right to play, and only its holder can
// release it. Audio end, audio error, explicit stop and view teardown
// all release the same way.
type PlaybackCoordinator struct {
	mu     sync.Mutex
	holder *PlaybackKey

	// OnChange is invoked after the token is acquired or released, so
	// the UI can enable or disable play controls the moment the holder
	// changes. May be invoked from any goroutine.
	OnChange func()
}

// NewPlaybackCoordinator creates a coordinator with no token held.
func NewPlaybackCoordinator() *PlaybackCoordinator {
	return &PlaybackCoordinator{}
}

// RequestPlay assigns the playback token to key and returns true iff no
// token is currently held. A message already holding the token is not
// granted a second one.
func (p *PlaybackCoordinator) RequestPlay(key PlaybackKey) bool {
	p.mu.Lock()
	if p.holder != nil {
		p.mu.Unlock()
		return false
	}
	k := key
	p.holder = &k
	p.mu.Unlock()

	p.changed()
	return true
}

// Release clears the token if key currently holds it; otherwise it is
// a no-op, so releasing after losing the token (or never holding it)
// is always safe.
func (p *PlaybackCoordinator) Release(key PlaybackKey) {
	p.mu.Lock()
	released := p.holder != nil && *p.holder == key
	if released {
		p.holder = nil
	}
	p.mu.Unlock()

	if released {
		p.changed()
	}
}

func (p *PlaybackCoordinator) changed() {
	if p.OnChange != nil {
		p.OnChange()
	}
}

// Current returns the key holding the token, if any.
func (p *PlaybackCoordinator) Current() (PlaybackKey, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.holder == nil {
		return PlaybackKey{}, false
	}
	return *p.holder, true
}

// CanPlay reports whether the given message's play control should be
// enabled: true when no token is held or when key itself holds it.
func (p *PlaybackCoordinator) CanPlay(key PlaybackKey) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.holder == nil || *p.holder == key
}
