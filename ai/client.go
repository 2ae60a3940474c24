package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sashabaranov/go-openai"

	"linguachat/chat"
)

// Config represents the AI provider configuration
type Config struct {
	APIKey      string
	BaseURL     string
	ChatModel   string
	TTSModel    string
	TTSVoice    string
	STTModel    string
	MaxTokens   int
	Temperature float64
}

// Client wraps the OpenAI API behind the collaborator contracts the
// session engine consumes: translation, chat completion, speech
// synthesis and transcription. It satisfies chat.Assistant and
// chat.Transcriber.
type Client struct {
	api    *openai.Client
	config Config
}

// NewClient creates a new AI client. An empty API key is allowed here;
// validation happens at call time.
func NewClient(config Config) *Client {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	// Set defaults only if not provided
	if config.ChatModel == "" {
		config.ChatModel = "gpt-4o-mini"
	}
	if config.TTSModel == "" {
		config.TTSModel = string(openai.TTSModel1)
	}
	if config.TTSVoice == "" {
		config.TTSVoice = string(openai.VoiceNova)
	}
	if config.STTModel == "" {
		config.STTModel = openai.Whisper1
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = 1024
	}
	if config.Temperature == 0 {
		config.Temperature = 0.7
	}

	return &Client{
		api:    openai.NewClientWithConfig(clientConfig),
		config: config,
	}
}

// Translate renders text from one language into another. The model is
// instructed to output only the translation.
func (c *Client) Translate(ctx context.Context, text, fromLang, toLang string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.config.ChatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(
					"You are a translator. Translate the user's text from %s to %s. Output only the translation, nothing else.",
					fromLang, toLang,
				),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		MaxTokens:   c.config.MaxTokens,
		Temperature: float32(c.config.Temperature),
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to translate text: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no translation in response")
	}

	return resp.Choices[0].Message.Content, nil
}

// CompleteChat generates the assistant reply over the full prior
// message history, answering in the chat's source language.
func (c *Client) CompleteChat(ctx context.Context, history []chat.Message, language string) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: fmt.Sprintf("Only speak %s to the user", language),
	})
	for _, msg := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	req := openai.ChatCompletionRequest{
		Model:       c.config.ChatModel,
		Messages:    messages,
		MaxTokens:   c.config.MaxTokens,
		Temperature: float32(c.config.Temperature),
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from assistant")
	}

	return resp.Choices[0].Message.Content, nil
}

// SynthesizeSpeech converts text to spoken audio and returns the MP3
// bytes.
func (c *Client) SynthesizeSpeech(ctx context.Context, text string) ([]byte, error) {
	resp, err := c.api.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model: openai.SpeechModel(c.config.TTSModel),
		Input: text,
		Voice: openai.SpeechVoice(c.config.TTSVoice),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize speech: %w", err)
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read synthesized audio: %w", err)
	}
	return data, nil
}

// TranscribeSpeech transcribes a recorded clip.
func (c *Client) TranscribeSpeech(ctx context.Context, clip chat.Clip) (string, error) {
	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.config.STTModel,
		Reader:   bytes.NewReader(clip.Encoded),
		FilePath: "clip.wav",
	})
	if err != nil {
		return "", fmt.Errorf("failed to transcribe audio: %w", err)
	}
	return resp.Text, nil
}

// ValidateConfig validates the client configuration.
func (c *Client) ValidateConfig() error {
	if c.config.APIKey == "" {
		return errors.New("API key is required")
	}
	return nil
}
