package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaybackTokenIsExclusive(t *testing.T) {
	p := NewPlaybackCoordinator()
	a := PlaybackKey{ChatID: "c-1", MessageID: 1}
	b := PlaybackKey{ChatID: "c-2", MessageID: 1}

	require.True(t, p.RequestPlay(a))
	assert.False(t, p.RequestPlay(b))
	assert.False(t, p.RequestPlay(a), "holder is not granted a second token")

	current, held := p.Current()
	require.True(t, held)
	assert.Equal(t, a, current)
}

func TestPlaybackReleaseThenGrant(t *testing.T) {
	p := NewPlaybackCoordinator()
	a := PlaybackKey{ChatID: "c-1", MessageID: 1}
	b := PlaybackKey{ChatID: "c-1", MessageID: 2}

	require.True(t, p.RequestPlay(a))
	p.Release(a)
	assert.True(t, p.RequestPlay(b))
}

func TestPlaybackForeignReleaseIsNoOp(t *testing.T) {
	p := NewPlaybackCoordinator()
	a := PlaybackKey{ChatID: "c-1", MessageID: 1}
	b := PlaybackKey{ChatID: "c-1", MessageID: 2}

	require.True(t, p.RequestPlay(a))

	// A non-holder releasing must not free the holder's token.
	p.Release(b)
	current, held := p.Current()
	require.True(t, held)
	assert.Equal(t, a, current)

	// Releasing twice is safe.
	p.Release(a)
	p.Release(a)
	_, held = p.Current()
	assert.False(t, held)
}

func TestPlaybackSameSequenceDifferentChats(t *testing.T) {
	p := NewPlaybackCoordinator()
	a := PlaybackKey{ChatID: "c-1", MessageID: 3}
	b := PlaybackKey{ChatID: "c-2", MessageID: 3}

	require.True(t, p.RequestPlay(a))
	assert.False(t, p.RequestPlay(b), "sequence numbers collide across chats; the chat id must disambiguate")
}

func TestPlaybackChangeHook(t *testing.T) {
	p := NewPlaybackCoordinator()
	a := PlaybackKey{ChatID: "c-1", MessageID: 1}
	b := PlaybackKey{ChatID: "c-1", MessageID: 2}

	changes := 0
	p.OnChange = func() { changes++ }

	require.True(t, p.RequestPlay(a))
	assert.Equal(t, 1, changes, "acquire notifies")

	assert.False(t, p.RequestPlay(b))
	assert.Equal(t, 1, changes, "a denied request changes nothing")

	p.Release(b)
	assert.Equal(t, 1, changes, "a non-holder release changes nothing")

	p.Release(a)
	assert.Equal(t, 2, changes, "release notifies")

	p.Release(a)
	assert.Equal(t, 2, changes, "a second release changes nothing")
}

func TestPlaybackCanPlay(t *testing.T) {
	p := NewPlaybackCoordinator()
	a := PlaybackKey{ChatID: "c-1", MessageID: 1}
	b := PlaybackKey{ChatID: "c-1", MessageID: 2}

	assert.True(t, p.CanPlay(a))
	assert.True(t, p.CanPlay(b))

	require.True(t, p.RequestPlay(a))
	assert.True(t, p.CanPlay(a))
	assert.False(t, p.CanPlay(b))
}
