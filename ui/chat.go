package ui

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"linguachat/chat"
	"linguachat/utils"
)

// ChatView renders the active conversation: the message history, the
// compose row with send and microphone controls, and per-message
// playback buttons.
type ChatView struct {
	app *App

	chatID  string
	sending bool

	header      *widget.Label
	messages    *fyne.Container
	scroll      *container.Scroll
	input       *widget.Entry
	sendButton  *widget.Button
	micButton   *widget.Button
	placeholder *widget.Label

	// playButtons tracks the visible play controls so PlaybackChanged
	// can flip their enabled state when the playback token moves.
	playButtons map[chat.PlaybackKey]*widget.Button
}

func NewChatView(app *App) *ChatView {
	return &ChatView{app: app}
}

func (cv *ChatView) Build() fyne.CanvasObject {
	cv.header = widget.NewLabel("Select a chat to start")
	cv.header.TextStyle = fyne.TextStyle{Bold: true}

	cv.messages = container.NewVBox()
	cv.scroll = container.NewScroll(cv.messages)

	cv.placeholder = widget.NewLabel("No messages yet. Say hello!")
	cv.placeholder.Alignment = fyne.TextAlignCenter

	cv.input = widget.NewMultiLineEntry()
	cv.input.SetPlaceHolder("Type a message...")
	cv.input.Wrapping = fyne.TextWrapWord
	cv.input.OnSubmitted = func(string) { cv.send() }

	cv.sendButton = widget.NewButtonWithIcon("", theme.MailSendIcon(), cv.send)
	cv.sendButton.Importance = widget.HighImportance

	cv.micButton = widget.NewButtonWithIcon("", theme.MediaRecordIcon(), cv.toggleRecording)

	composeRow := container.NewBorder(nil, nil, cv.micButton, cv.sendButton, cv.input)
	headerRow := container.NewHBox(cv.header)

	cv.updateControls()

	return container.NewBorder(headerRow, composeRow, nil, nil, cv.scroll)
}

// SetChat switches the view to the given chat and redraws its history.
func (cv *ChatView) SetChat(chatID string) {
	cv.chatID = chatID
	cv.sending = cv.app.orchestrator.Sending(chatID)

	if c, ok := cv.app.store.Get(chatID); ok {
		cv.header.SetText(fmt.Sprintf("%s  (%s → %s)", c.Name, c.SourceLanguage, c.TargetLanguage))
	}

	cv.renderMessages()
	cv.updateControls()
}

// MessageAppended is invoked by the orchestrator whenever a message is
// persisted, for any chat. Only the visible chat triggers a redraw.
func (cv *ChatView) MessageAppended(c chat.Chat, msg chat.Message) {
	if c.ID != cv.chatID {
		return
	}
	fyne.Do(func() {
		// The compose input keeps its text until the user turn is
		// persisted, so a failed send never discards what was typed.
		if msg.Role == chat.RoleUser {
			cv.input.SetText("")
		}
		cv.renderMessages()
		cv.scroll.ScrollToBottom()
	})
}

// PlaybackChanged is invoked by the playback coordinator whenever the
// token is acquired or released. Play controls for other messages are
// disabled while the token is held and re-enabled on release.
func (cv *ChatView) PlaybackChanged() {
	fyne.Do(func() {
		for key, button := range cv.playButtons {
			if cv.app.playback.CanPlay(key) {
				button.Enable()
			} else {
				button.Disable()
			}
		}
	})
}

// SendingChanged is invoked by the orchestrator when a chat enters or
// leaves the in-flight state.
func (cv *ChatView) SendingChanged(chatID string, sending bool) {
	if chatID != cv.chatID {
		return
	}
	fyne.Do(func() {
		cv.sending = sending
		cv.updateControls()
	})
}

// ChatRemoved clears the view if the visible chat was deleted.
func (cv *ChatView) ChatRemoved(chatID string) {
	if chatID != cv.chatID {
		return
	}
	cv.chatID = ""
	cv.header.SetText("Select a chat to start")
	cv.messages.RemoveAll()
	cv.messages.Refresh()
	cv.updateControls()
}

func (cv *ChatView) updateControls() {
	hasChat := cv.chatID != ""

	if hasChat && !cv.sending {
		cv.sendButton.Enable()
		cv.input.Enable()
	} else {
		cv.sendButton.Disable()
		cv.input.Disable()
	}

	if hasChat {
		cv.micButton.Enable()
	} else {
		cv.micButton.Disable()
	}

	switch cv.app.capture.State() {
	case chat.CaptureRecording:
		cv.micButton.SetIcon(theme.MediaStopIcon())
	default:
		cv.micButton.SetIcon(theme.MediaRecordIcon())
	}
}

func (cv *ChatView) send() {
	text := strings.TrimSpace(cv.input.Text)
	if text == "" || cv.chatID == "" || cv.sending {
		return
	}

	chatID := cv.chatID

	utils.SafeGo(cv.app.logger, "send message", func() {
		if err := cv.app.orchestrator.Send(context.Background(), cv.app.principal, chatID, text); err != nil {
			if errors.Is(err, chat.ErrSendInFlight) {
				return
			}
			cv.app.logger.Error("Send failed for chat %s: %v", chatID, err)
		}
	})
}

func (cv *ChatView) toggleRecording() {
	switch cv.app.capture.State() {
	case chat.CaptureIdle:
		if err := cv.app.capture.StartRecording(context.Background()); err != nil {
			cv.app.logger.Error("Failed to start recording: %v", err)
		}
		cv.updateControls()
	case chat.CaptureRecording:
		cv.micButton.Disable()
		utils.SafeGo(cv.app.logger, "stop recording", func() {
			transcript, err := cv.app.capture.StopRecording(context.Background())
			fyne.Do(func() {
				cv.updateControls()
				if err != nil {
					if !errors.Is(err, chat.ErrNoSpeech) {
						cv.app.logger.Error("Transcription failed: %v", err)
					}
					return
				}
				cv.input.SetText(transcript)
			})
		})
	}
}

func (cv *ChatView) renderMessages() {
	cv.messages.RemoveAll()
	cv.playButtons = make(map[chat.PlaybackKey]*widget.Button)

	c, ok := cv.app.store.Get(cv.chatID)
	if !ok {
		cv.messages.Refresh()
		return
	}

	settings := cv.app.reconciler.Draft()

	if len(c.Messages) == 0 {
		cv.messages.Add(cv.placeholder)
		cv.messages.Refresh()
		return
	}

	var prev *chat.Message
	for i := range c.Messages {
		msg := c.Messages[i]
		if prev == nil || !SameDay(prev.AddedAt, msg.AddedAt) {
			cv.messages.Add(cv.dateSeparator(msg, settings))
		}
		cv.messages.Add(cv.messageBubble(c, msg, settings))
		prev = &c.Messages[i]
	}

	cv.messages.Refresh()
}

func (cv *ChatView) dateSeparator(msg chat.Message, settings chat.DisplaySettings) fyne.CanvasObject {
	label := widget.NewLabel(FormatDate(msg.AddedAt, settings.DateFormat))
	label.TextStyle = fyne.TextStyle{Italic: true}
	label.Alignment = fyne.TextAlignCenter
	return label
}

func (cv *ChatView) messageBubble(c chat.Chat, msg chat.Message, settings chat.DisplaySettings) fyne.CanvasObject {
	var bg, fg color.Color
	if msg.Role == chat.RoleUser {
		bg = ParseHexColor(settings.BubbleColorUser)
		fg = ParseHexColor(settings.TextColorUser)
	} else {
		bg = ParseHexColor(settings.BubbleColorBot)
		fg = ParseHexColor(settings.TextColorBot)
	}

	text := widget.NewLabel(msg.Content)
	text.Wrapping = fyne.TextWrapWord

	body := container.NewVBox(text)

	if settings.ShowTranslationTooltip && msg.TranslatedContent != "" && msg.TranslatedContent != msg.Content {
		translated := widget.NewLabel(msg.TranslatedContent)
		translated.Wrapping = fyne.TextWrapWord
		translated.TextStyle = fyne.TextStyle{Italic: true}
		body.Add(translated)
	}

	meta := canvas.NewText(FormatTimestamp(msg.AddedAt, settings.DateFormat, settings.TimeFormat), fg)
	meta.TextSize = float32(settings.FontSize) * 0.7
	meta.TextStyle = fyne.TextStyle{Italic: true}

	footer := container.NewHBox(meta)
	if msg.Role == chat.RoleAssistant {
		footer.Add(cv.playButton(c.ID, msg))
	}
	body.Add(footer)

	rect := canvas.NewRectangle(bg)
	if settings.BubbleStyle == "rounded" {
		rect.CornerRadius = 12
	}
	bubble := container.NewStack(rect, container.NewPadded(body))

	if msg.Role == chat.RoleUser {
		return container.NewHBox(layout.NewSpacer(), bubble)
	}
	return container.NewHBox(bubble, layout.NewSpacer())
}

func (cv *ChatView) playButton(chatID string, msg chat.Message) *widget.Button {
	key := chat.PlaybackKey{ChatID: chatID, MessageID: msg.ID}

	button := widget.NewButtonWithIcon("", theme.MediaPlayIcon(), func() {
		if !cv.app.playback.CanPlay(key) {
			return
		}
		utils.SafeGo(cv.app.logger, "play message", func() {
			cv.app.orchestrator.Speak(context.Background(), key, msg.Content)
		})
	})
	if !cv.app.playback.CanPlay(key) {
		button.Disable()
	}
	cv.playButtons[key] = button
	return button
}
