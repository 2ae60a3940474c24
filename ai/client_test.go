package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientAppliesDefaults(t *testing.T) {
	c := NewClient(Config{APIKey: "sk-test"})

	assert.Equal(t, "gpt-4o-mini", c.config.ChatModel)
	assert.Equal(t, "tts-1", c.config.TTSModel)
	assert.Equal(t, "nova", c.config.TTSVoice)
	assert.Equal(t, "whisper-1", c.config.STTModel)
	assert.Equal(t, 1024, c.config.MaxTokens)
	assert.InDelta(t, 0.7, c.config.Temperature, 1e-9)
}

func TestNewClientKeepsExplicitConfig(t *testing.T) {
	c := NewClient(Config{
		APIKey:      "sk-test",
		ChatModel:   "gpt-4o",
		TTSVoice:    "alloy",
		MaxTokens:   256,
		Temperature: 0.2,
	})

	assert.Equal(t, "gpt-4o", c.config.ChatModel)
	assert.Equal(t, "alloy", c.config.TTSVoice)
	assert.Equal(t, 256, c.config.MaxTokens)
	assert.InDelta(t, 0.2, c.config.Temperature, 1e-9)
}

func TestValidateConfig(t *testing.T) {
	require.Error(t, NewClient(Config{}).ValidateConfig())
	assert.NoError(t, NewClient(Config{APIKey: "sk-test"}).ValidateConfig())
}
