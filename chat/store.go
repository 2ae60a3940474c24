package chat

import (
	"fmt"
	"sort"
	"sync"
)

// Store holds the chat-id to chat mapping and is the single source of
// truth for the session. All mutation is whole-value replacement so a
// reader holding a Chat never observes a partial update.
type Store struct {
	mu    sync.RWMutex
	chats map[string]Chat
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{chats: make(map[string]Chat)}
}

// Load replaces the store contents with the given chats, typically the
// result of the initial persistence read at session start.
func (s *Store) Load(chats []Chat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats = make(map[string]Chat, len(chats))
	for _, c := range chats {
		s.chats[c.ID] = c
	}
}

// Get returns the chat for the given id.
func (s *Store) Get(chatID string) (Chat, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.chats[chatID]
	return c, ok
}

// Put inserts or replaces a chat.
func (s *Store) Put(c Chat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats[c.ID] = c
}

// Replace swaps the stored chat for chatID with the given value.
func (s *Store) Replace(chatID string, c Chat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats[chatID] = c
}

// Remove deletes a chat from the store. Removing an unknown id is a
// no-op.
func (s *Store) Remove(chatID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.chats, chatID)
}

// Rename updates only the chat's name.
func (s *Store) Rename(chatID, newName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.chats[chatID]
	if !ok {
		return false
	}
	c.Name = newName
	s.chats[chatID] = c
	return true
}

// Append adds a message to a chat and returns the new chat value. The
// message list is copied, never mutated in place, so previously read
// values keep their own history. Appending to an unknown chat is a
// programming error.
func (s *Store) Append(chatID string, msg Message) Chat {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.chats[chatID]
	if !ok {
		panic(fmt.Sprintf("chat: append to unknown chat %q", chatID))
	}

	messages := make([]Message, len(c.Messages), len(c.Messages)+1)
	copy(messages, c.Messages)
	c.Messages = append(messages, msg)
	s.chats[chatID] = c
	return c
}

// NextSequence returns the id the next message appended to the chat
// must carry: the current message count plus one.
func (s *Store) NextSequence(chatID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chats[chatID].Messages) + 1
}

// List returns all chats ordered newest-created first, the order the
// sidebar renders them in.
func (s *Store) List() []Chat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chats := make([]Chat, 0, len(s.chats))
	for _, c := range s.chats {
		chats = append(chats, c)
	}
	sort.Slice(chats, func(i, j int) bool {
		if chats[i].CreatedAt.Equal(chats[j].CreatedAt) {
			return chats[i].ID < chats[j].ID
		}
		return chats[i].CreatedAt.After(chats[j].CreatedAt)
	})
	return chats
}

// Len returns the number of chats in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chats)
}
