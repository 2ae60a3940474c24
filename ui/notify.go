package ui

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"linguachat/chat"
)

// Toaster shows transient auto-dismissing notices in the corner of the
// window. It satisfies chat.Notifier; nothing here blocks the user.
type Toaster struct {
	window fyne.Window
}

// NewToaster creates a toaster for the window.
func NewToaster(window fyne.Window) *Toaster {
	return &Toaster{window: window}
}

// Notify implements chat.Notifier.
func (t *Toaster) Notify(n chat.Notice) {
	duration := n.Duration
	if duration == 0 {
		duration = 3 * time.Second
	}

	fyne.Do(func() {
		label := widget.NewLabel(t.prefix(n.Severity) + n.Message)
		label.Wrapping = fyne.TextWrapWord

		popup := widget.NewPopUp(container.NewPadded(label), t.window.Canvas())

		canvasSize := t.window.Canvas().Size()
		popupSize := popup.MinSize()
		popup.ShowAtPosition(fyne.NewPos(
			canvasSize.Width-popupSize.Width-16,
			16,
		))

		go func() {
			time.Sleep(duration)
			fyne.Do(popup.Hide)
		}()
	})
}

func (t *Toaster) prefix(s chat.Severity) string {
	switch s {
	case chat.SeveritySuccess:
		return "✅ "
	case chat.SeverityWarning:
		return "⚠️ "
	case chat.SeverityError:
		return "❌ "
	default:
		return "ℹ️ "
	}
}
