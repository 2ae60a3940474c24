package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"linguachat/chat"
)

func TestFilterChats(t *testing.T) {
	all := []chat.Chat{
		{ID: "a", Name: "Spanish Practice"},
		{ID: "b", Name: "French Lessons"},
		{ID: "c", Name: "spanish slang"},
	}

	matched := func(query string) []string {
		var ids []string
		for _, c := range filterChats(all, query) {
			ids = append(ids, c.ID)
		}
		return ids
	}

	assert.Equal(t, []string{"a", "b", "c"}, matched(""))
	assert.Equal(t, []string{"a", "b", "c"}, matched("   "))
	assert.Equal(t, []string{"a", "c"}, matched("spanish"))
	assert.Equal(t, []string{"a", "c"}, matched("  SPANISH "))
	assert.Equal(t, []string{"b"}, matched("french"))
	assert.Nil(t, matched("german"))
}
