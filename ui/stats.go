package ui

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"linguachat/utils"
)

// showStats fetches the user's usage counters and presents them in a
// dialog.
func (a *App) showStats() {
	utils.SafeGo(a.logger, "load stats", func() {
		stats, err := a.db.GetStats(context.Background(), a.principal)
		fyne.Do(func() {
			if err != nil {
				a.logger.Error("Failed to load stats: %v", err)
				dialog.ShowError(fmt.Errorf("could not load statistics: %w", err), a.window)
				return
			}
			body := fmt.Sprintf(
				"Chats: %d\nMessages: %d\nYours: %d\nAssistant: %d",
				stats.ChatCount, stats.MessageCount, stats.UserMessages, stats.AssistantMessages,
			)
			dialog.ShowInformation("Statistics", body, a.window)
		})
	})
}
