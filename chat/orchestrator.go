package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"linguachat/auth"
)

// ErrSendInFlight is returned when Send is invoked for a chat that
// already has a send in progress. The send control is disabled while
// sending, this is the defensive backstop for re-entrant calls.
var ErrSendInFlight = errors.New("send already in flight for this chat")

// Assistant is the AI collaborator the orchestrator drives. ai.Client
// satisfies it.
type Assistant interface {
	Translate(ctx context.Context, text, fromLang, toLang string) (string, error)
	CompleteChat(ctx context.Context, history []Message, language string) (string, error)
	SynthesizeSpeech(ctx context.Context, text string) ([]byte, error)
}

// Receipt carries the authoritative fields the persistence layer
// assigns when a message is written.
type Receipt struct {
	AddedAt      time.Time
	AuthorEmail  string
	AuthorUserID string
}

// MessageWriter persists messages. db.DB satisfies it.
type MessageWriter interface {
	AddMessage(ctx context.Context, p auth.Principal, chatID string, seq int, role Role, content, translated string) (Receipt, error)
}

// Player plays synthesized audio. Play returns once playback has been
// started; done is invoked exactly once when the audio ends or errors.
type Player interface {
	Play(ctx context.Context, mp3 []byte, done func(error)) error
}

// Orchestrator sequences the send pipeline: translate, persist and
// render the user turn, then complete, translate, persist and render
// the assistant turn, then optionally speak it. Steps are strictly
// sequential; the user turn is always visible before the assistant turn
// that answers it.
type Orchestrator struct {
	store     *Store
	assistant Assistant
	writer    MessageWriter
	playback  *PlaybackCoordinator
	player    Player
	settings  *SettingsReconciler
	notifier  Notifier
	logger    Logger

	mu       sync.Mutex
	inFlight map[string]bool

	// OnMessageAppended is invoked after each message becomes visible in
	// the store, with the new chat value. The UI renders from it.
	OnMessageAppended func(Chat, Message)
	// OnSendingChanged reports the per-chat sending gate so the UI can
	// disable the send control.
	OnSendingChanged func(chatID string, sending bool)
}

// NewOrchestrator wires the send pipeline. player may be nil when the
// platform has no audio output; playback requests are then skipped.
func NewOrchestrator(store *Store, assistant Assistant, writer MessageWriter, playback *PlaybackCoordinator, player Player, settings *SettingsReconciler, notifier Notifier, logger Logger) *Orchestrator {
	return &Orchestrator{
		store:     store,
		assistant: assistant,
		writer:    writer,
		playback:  playback,
		player:    player,
		settings:  settings,
		notifier:  notifier,
		logger:    logger,
		inFlight:  make(map[string]bool),
	}
}

// Sending reports whether a send is in flight for the chat.
func (o *Orchestrator) Sending(chatID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.inFlight[chatID]
}

// Send runs the full pipeline for one user turn. Empty or
// whitespace-only input is a no-op. Sends to different chats may
// interleave freely; a second send to the same chat while one is in
// flight returns ErrSendInFlight. Any external-call failure aborts the
// remaining steps without rolling back completed ones; the gate is
// always released.
func (o *Orchestrator) Send(ctx context.Context, principal auth.Principal, chatID, rawText string) error {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return nil
	}

	if !principal.Valid() {
		return auth.ErrNoPrincipal
	}

	o.mu.Lock()
	if o.inFlight[chatID] {
		o.mu.Unlock()
		return ErrSendInFlight
	}
	o.inFlight[chatID] = true
	o.mu.Unlock()

	o.setSending(chatID, true)
	defer func() {
		o.mu.Lock()
		delete(o.inFlight, chatID)
		o.mu.Unlock()
		o.setSending(chatID, false)
	}()

	c, ok := o.store.Get(chatID)
	if !ok {
		return fmt.Errorf("unknown chat %q", chatID)
	}

	// User turn: translate, persist, render.
	translated, err := o.assistant.Translate(ctx, text, c.SourceLanguage, c.TargetLanguage)
	if err != nil {
		return o.fail("translate message", err)
	}

	seq := len(c.Messages) + 1
	receipt, err := o.writer.AddMessage(ctx, principal, chatID, seq, RoleUser, text, translated)
	if err != nil {
		return o.fail("save message", err)
	}

	userMsg := Message{
		ID:                seq,
		ChatID:            chatID,
		Role:              RoleUser,
		Content:           text,
		TranslatedContent: translated,
		AddedAt:           receipt.AddedAt,
		AuthorEmail:       receipt.AuthorEmail,
		AuthorUserID:      receipt.AuthorUserID,
	}
	c = o.store.Append(chatID, userMsg)
	o.appended(c, userMsg)

	// Assistant turn: complete over the full history including the turn
	// just added, in the chat's source language.
	reply, err := o.assistant.CompleteChat(ctx, c.Messages, c.SourceLanguage)
	if err != nil {
		return o.fail("get assistant reply", err)
	}

	translatedReply, err := o.assistant.Translate(ctx, reply, c.SourceLanguage, c.TargetLanguage)
	if err != nil {
		return o.fail("translate reply", err)
	}

	seq = len(c.Messages) + 1
	receipt, err = o.writer.AddMessage(ctx, principal, chatID, seq, RoleAssistant, reply, translatedReply)
	if err != nil {
		// The completion already succeeded; losing it silently would
		// waste the reply, so the write is retried once before the
		// failure is surfaced.
		o.logger.Warn("Retrying assistant message save: %v", err)
		receipt, err = o.writer.AddMessage(ctx, principal, chatID, seq, RoleAssistant, reply, translatedReply)
		if err != nil {
			return o.fail("save assistant reply", err)
		}
	}

	assistantMsg := Message{
		ID:                seq,
		ChatID:            chatID,
		Role:              RoleAssistant,
		Content:           reply,
		TranslatedContent: translatedReply,
		AddedAt:           receipt.AddedAt,
		AuthorEmail:       receipt.AuthorEmail,
		AuthorUserID:      receipt.AuthorUserID,
	}
	c = o.store.Append(chatID, assistantMsg)
	o.appended(c, assistantMsg)

	if o.settings.Draft().AutoPlay {
		// Playback failures don't fail the send; the messages are
		// already persisted and rendered.
		o.Speak(ctx, PlaybackKey{ChatID: chatID, MessageID: assistantMsg.ID}, reply)
	}

	return nil
}

// Speak synthesizes text and plays it, holding the playback token for
// the duration. It is also the path behind each message's play button.
// The request is skipped when another message holds the token.
func (o *Orchestrator) Speak(ctx context.Context, key PlaybackKey, text string) {
	if o.player == nil {
		return
	}

	if !o.playback.RequestPlay(key) {
		return
	}

	data, err := o.assistant.SynthesizeSpeech(ctx, text)
	if err != nil {
		o.playback.Release(key)
		o.fail("synthesize speech", err)
		return
	}

	err = o.player.Play(ctx, data, func(playErr error) {
		// Finished and failed playback release identically.
		o.playback.Release(key)
		if playErr != nil {
			o.logger.Error("Audio playback ended with error: %v", playErr)
		}
	})
	if err != nil {
		o.playback.Release(key)
		o.fail("play audio", err)
	}
}

// fail logs an external-call failure and surfaces it as a transient
// notice. No automatic retry, no rollback; the user re-triggers.
func (o *Orchestrator) fail(action string, err error) error {
	o.logger.Error("Failed to %s: %v", action, err)
	o.notifier.Notify(Notice{
		Message:  "Failed to " + action + ". Please try again.",
		Severity: SeverityError,
		Duration: 3 * time.Second,
	})
	return fmt.Errorf("failed to %s: %w", action, err)
}

func (o *Orchestrator) appended(c Chat, msg Message) {
	if o.OnMessageAppended != nil {
		o.OnMessageAppended(c, msg)
	}
}

func (o *Orchestrator) setSending(chatID string, sending bool) {
	if o.OnSendingChanged != nil {
		o.OnSendingChanged(chatID, sending)
	}
}
