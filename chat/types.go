package chat

import "time"

// Role identifies the author side of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single turn in a chat. The ID is a per-chat sequence
// number: strictly increasing and equal to the previous message count
// plus one at append time. Messages are never mutated after creation.
type Message struct {
	ID                int       `json:"id"`
	ChatID            string    `json:"chat_id"`
	Role              Role      `json:"role"`
	Content           string    `json:"content"`
	TranslatedContent string    `json:"translated_content"`
	AddedAt           time.Time `json:"added_at"`
	AuthorEmail       string    `json:"author_email"`
	AuthorUserID      string    `json:"author_user_id"`
}

// Chat is a conversation with its ordered message history. The message
// list is append-only during a session; rename mutates only Name.
type Chat struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	SourceLanguage string    `json:"source_language"`
	TargetLanguage string    `json:"target_language"`
	CreatedAt      time.Time `json:"created_at"`
	Messages       []Message `json:"messages"`
}

// LastActivity returns the timestamp of the newest message, or the
// chat's creation time when it has none. Used for sidebar subtitles.
func (c Chat) LastActivity() time.Time {
	if len(c.Messages) == 0 {
		return c.CreatedAt
	}
	return c.Messages[len(c.Messages)-1].AddedAt
}

// DisplaySettings are the per-user rendering preferences. Two copies
// exist at runtime: the persisted settings and the editable draft the
// message list renders through (see SettingsReconciler).
type DisplaySettings struct {
	FontSize               int    `json:"fontSize"`
	FontFamily             string `json:"fontFamily"`
	BubbleStyle            string `json:"bubbleStyle"`
	TextColorUser          string `json:"textColorUser"`
	TextColorBot           string `json:"textColorBot"`
	BubbleColorUser        string `json:"bubbleColorUser"`
	BubbleColorBot         string `json:"bubbleColorBot"`
	DateFormat             string `json:"dateFormat"`
	TimeFormat             string `json:"timeFormat"`
	AutoPlay               bool   `json:"autoPlay"`
	ShowTranslationTooltip bool   `json:"showTranslationTooltip"`
}

// DefaultDisplaySettings returns the settings a new user starts with.
func DefaultDisplaySettings() DisplaySettings {
	return DisplaySettings{
		FontSize:               16,
		FontFamily:             "Arial",
		BubbleStyle:            "rounded",
		TextColorUser:          "#000000",
		TextColorBot:           "#000000",
		BubbleColorUser:        "#E3F2FD",
		BubbleColorBot:         "#F3E5F5",
		DateFormat:             "MM/DD/YYYY",
		TimeFormat:             "12h",
		AutoPlay:               false,
		ShowTranslationTooltip: false,
	}
}

// Severity classifies a user-facing notice.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notice is a transient, auto-dismissing message shown to the user.
// Failures surface through notices, never through blocking dialogs.
type Notice struct {
	Message  string
	Severity Severity
	Duration time.Duration
}

// Notifier displays notices. The UI provides the real implementation;
// tests record them.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Notice)

// Notify implements Notifier.
func (f NotifierFunc) Notify(n Notice) { f(n) }
