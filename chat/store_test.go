package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeWith(chats ...Chat) *Store {
	s := NewStore()
	s.Load(chats)
	return s
}

func TestStoreLoadAndGet(t *testing.T) {
	s := storeWith(
		Chat{ID: "a", Name: "First"},
		Chat{ID: "b", Name: "Second"},
	)

	require.Equal(t, 2, s.Len())
	c, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "First", c.Name)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestStoreListNewestCreatedFirst(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	s := storeWith(
		Chat{ID: "old", CreatedAt: base},
		Chat{ID: "new", CreatedAt: base.Add(time.Hour)},
		Chat{ID: "tie-b", CreatedAt: base.Add(time.Minute)},
		Chat{ID: "tie-a", CreatedAt: base.Add(time.Minute)},
	)

	var ids []string
	for _, c := range s.List() {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"new", "tie-a", "tie-b", "old"}, ids)
}

func TestStoreAppendCopiesHistory(t *testing.T) {
	s := storeWith(Chat{ID: "a"})

	first := s.Append("a", Message{ID: 1, Content: "Hello"})
	second := s.Append("a", Message{ID: 2, Content: "How are you?"})

	// The earlier snapshot must not see the later append.
	assert.Len(t, first.Messages, 1)
	assert.Len(t, second.Messages, 2)
	assert.Equal(t, "Hello", second.Messages[0].Content)
}

func TestStoreAppendUnknownChatPanics(t *testing.T) {
	s := NewStore()
	assert.Panics(t, func() { s.Append("nope", Message{}) })
}

func TestStoreNextSequence(t *testing.T) {
	s := storeWith(Chat{ID: "a"})

	assert.Equal(t, 1, s.NextSequence("a"))
	s.Append("a", Message{ID: 1})
	assert.Equal(t, 2, s.NextSequence("a"))
}

func TestStoreRename(t *testing.T) {
	s := storeWith(Chat{ID: "a", Name: "Old", Messages: []Message{{ID: 1}}})

	require.True(t, s.Rename("a", "New"))
	c, _ := s.Get("a")
	assert.Equal(t, "New", c.Name)
	assert.Len(t, c.Messages, 1, "rename must not touch the history")

	assert.False(t, s.Rename("missing", "X"))
}

func TestStoreRemove(t *testing.T) {
	s := storeWith(Chat{ID: "a"})

	s.Remove("a")
	_, ok := s.Get("a")
	assert.False(t, ok)

	s.Remove("a") // no-op
	assert.Zero(t, s.Len())
}

func TestChatLastActivity(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	c := Chat{ID: "a", CreatedAt: created}
	assert.Equal(t, created, c.LastActivity())

	latest := created.Add(time.Hour)
	c.Messages = []Message{
		{ID: 1, AddedAt: created.Add(time.Minute)},
		{ID: 2, AddedAt: latest},
	}
	assert.Equal(t, latest, c.LastActivity())
}
