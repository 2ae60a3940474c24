package ui

import (
	"context"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"linguachat/chat"
	"linguachat/utils"
)

// languages offered by the new-chat dialog.
var languages = []string{
	"English", "Spanish", "French", "German", "Italian", "Portuguese",
	"Swedish", "Dutch", "Polish", "Japanese", "Korean", "Chinese",
}

// Sidebar lists the user's chats with search, rename and delete, and
// hosts the new-chat dialog.
type Sidebar struct {
	app *App

	searchEntry *widget.Entry
	list        *widget.List
	visible     []chat.Chat
}

// NewSidebar creates the sidebar.
func NewSidebar(app *App) *Sidebar {
	return &Sidebar{app: app}
}

// Build constructs the sidebar widgets.
func (sb *Sidebar) Build() fyne.CanvasObject {
	sb.searchEntry = widget.NewEntry()
	sb.searchEntry.SetPlaceHolder("Search chats...")
	sb.searchEntry.OnChanged = func(string) { sb.Refresh() }

	newChatButton := widget.NewButton("New Chat", sb.showNewChatDialog)

	sb.list = widget.NewList(
		func() int { return len(sb.visible) },
		func() fyne.CanvasObject {
			title := widget.NewLabel("")
			title.TextStyle = fyne.TextStyle{Bold: true}
			subtitle := widget.NewLabel("")
			menu := widget.NewButton("⋮", nil)
			return container.NewBorder(nil, nil, nil, menu, container.NewVBox(title, subtitle))
		},
		func(i widget.ListItemID, obj fyne.CanvasObject) {
			if i >= len(sb.visible) {
				return
			}
			c := sb.visible[i]
			border := obj.(*fyne.Container)
			box := border.Objects[0].(*fyne.Container)
			box.Objects[0].(*widget.Label).SetText(c.Name)

			subtitle := "No messages yet"
			if len(c.Messages) > 0 {
				draft := sb.app.reconciler.Draft()
				subtitle = "Last modified on " + FormatTimestamp(c.LastActivity(), draft.DateFormat, draft.TimeFormat)
			}
			box.Objects[1].(*widget.Label).SetText(subtitle)

			menu := border.Objects[1].(*widget.Button)
			chatID := c.ID
			menu.OnTapped = func() { sb.showChatMenu(chatID) }
		},
	)
	sb.list.OnSelected = func(i widget.ListItemID) {
		if i < len(sb.visible) {
			sb.app.OpenChat(sb.visible[i].ID)
		}
	}

	sb.Refresh()

	return container.NewBorder(
		container.NewVBox(newChatButton, sb.searchEntry),
		nil, nil, nil,
		sb.list,
	)
}

// filterChats returns the chats whose name contains the query,
// case-insensitively. An empty query keeps everything.
func filterChats(all []chat.Chat, query string) []chat.Chat {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return all
	}
	filtered := make([]chat.Chat, 0, len(all))
	for _, c := range all {
		if strings.Contains(strings.ToLower(c.Name), query) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// Refresh re-applies the search filter and redraws the list. The list
// callbacks read sb.visible on the UI thread, so Refresh must run
// there too; goroutines reach it through fyne.Do.
func (sb *Sidebar) Refresh() {
	query := ""
	if sb.searchEntry != nil {
		query = sb.searchEntry.Text
	}
	sb.visible = filterChats(sb.app.store.List(), query)

	if sb.list != nil {
		sb.list.Refresh()
	}
}

// showChatMenu offers rename and delete for one chat.
func (sb *Sidebar) showChatMenu(chatID string) {
	c, ok := sb.app.store.Get(chatID)
	if !ok {
		return
	}

	rename := widget.NewButton("Rename", nil)
	remove := widget.NewButton("Delete", nil)

	popup := widget.NewPopUp(container.NewVBox(rename, remove), sb.app.window.Canvas())
	rename.OnTapped = func() {
		popup.Hide()
		sb.showRenameDialog(c)
	}
	remove.OnTapped = func() {
		popup.Hide()
		sb.deleteChat(chatID)
	}
	popup.Show()
}

// showRenameDialog prompts for and applies a new chat name.
func (sb *Sidebar) showRenameDialog(c chat.Chat) {
	entry := widget.NewEntry()
	entry.SetText(c.Name)

	dialog.ShowForm("Rename Chat", "Rename", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Name", entry)},
		func(confirmed bool) {
			if !confirmed {
				return
			}
			newName := strings.TrimSpace(entry.Text)
			if newName == "" || newName == c.Name {
				return
			}
			utils.SafeGo(sb.app.logger, "rename chat", func() {
				if err := sb.app.db.RenameChat(context.Background(), sb.app.principal, c.ID, newName); err != nil {
					sb.app.logger.Error("Failed to rename chat: %v", err)
					sb.app.notifier.Notify(chat.Notice{Message: "Failed to rename chat.", Severity: chat.SeverityError})
					return
				}
				sb.app.store.Rename(c.ID, newName)
				fyne.Do(sb.Refresh)
			})
		}, sb.app.window)
}

// deleteChat confirms with the message count, then removes the chat
// and all its messages. Deletion is immediate; there is no undo.
func (sb *Sidebar) deleteChat(chatID string) {
	utils.SafeGo(sb.app.logger, "delete chat", func() {
		prompt := "Delete this chat and all its messages?"
		if count, err := sb.app.db.CountMessages(context.Background(), chatID); err == nil && count > 0 {
			prompt = fmt.Sprintf("Delete this chat and its %d messages?", count)
		}

		fyne.Do(func() {
			dialog.ShowConfirm("Delete Chat", prompt,
				func(confirmed bool) {
					if !confirmed {
						return
					}
					utils.SafeGo(sb.app.logger, "delete chat", func() {
						if err := sb.app.db.DeleteChat(context.Background(), sb.app.principal, chatID); err != nil {
							sb.app.logger.Error("Failed to delete chat: %v", err)
							sb.app.notifier.Notify(chat.Notice{Message: "Failed to delete chat.", Severity: chat.SeverityError})
							return
						}
						sb.app.store.Remove(chatID)
						fyne.Do(func() {
							sb.app.chatView.ChatRemoved(chatID)
							sb.Refresh()
						})
					})
				}, sb.app.window)
		})
	})
}

// showNewChatDialog collects a name and language pair, then creates
// the chat.
func (sb *Sidebar) showNewChatDialog() {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Chat name")

	sourceSelect := widget.NewSelect(languages, nil)
	sourceSelect.SetSelected("English")
	targetSelect := widget.NewSelect(languages, nil)
	targetSelect.SetSelected("Spanish")

	dialog.ShowForm("New Chat", "Create", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Language", sourceSelect),
			widget.NewFormItem("Translate to", targetSelect),
		},
		func(confirmed bool) {
			if !confirmed {
				return
			}
			name := strings.TrimSpace(nameEntry.Text)
			if name == "" {
				name = fmt.Sprintf("%s Chat", sourceSelect.Selected)
			}
			utils.SafeGo(sb.app.logger, "create chat", func() {
				c, err := sb.app.db.CreateChat(context.Background(), sb.app.principal, name, sourceSelect.Selected, targetSelect.Selected)
				if err != nil {
					sb.app.logger.Error("Failed to create chat: %v", err)
					sb.app.notifier.Notify(chat.Notice{Message: "Failed to create chat.", Severity: chat.SeverityError})
					return
				}
				sb.app.store.Put(c)
				fyne.Do(func() {
					sb.Refresh()
					sb.app.OpenChat(c.ID)
				})
			})
		}, sb.app.window)
}
