package ui

import (
	"context"
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"linguachat/chat"
	"linguachat/utils"
)

// SettingsPanel edits the display settings draft. Edits apply to the
// message list immediately; the Save button persists them, Discard
// reverts to the last saved state.
type SettingsPanel struct {
	app *App

	root       *fyne.Container
	saveButton *widget.Button
	visible    bool

	fontSize         *widget.Select
	fontFamily       *widget.Select
	bubbleStyle      *widget.Select
	textColorUser    *widget.Entry
	textColorBot     *widget.Entry
	bubbleColorUser  *widget.Entry
	bubbleColorBot   *widget.Entry
	dateFormat       *widget.Select
	timeFormat       *widget.Select
	autoPlay         *widget.Check
	showTranslations *widget.Check
}

func NewSettingsPanel(app *App) *SettingsPanel {
	return &SettingsPanel{app: app}
}

func (sp *SettingsPanel) Build() fyne.CanvasObject {
	edit := sp.app.reconciler.Edit

	sp.fontSize = widget.NewSelect([]string{"12", "14", "16", "18", "20", "24"}, func(v string) {
		size, err := strconv.Atoi(v)
		if err != nil {
			return
		}
		edit(func(s *chat.DisplaySettings) { s.FontSize = size })
		sp.refresh()
	})

	sp.fontFamily = widget.NewSelect([]string{"Arial", "Helvetica", "Georgia", "Courier New", "Verdana"}, func(v string) {
		edit(func(s *chat.DisplaySettings) { s.FontFamily = v })
		sp.refresh()
	})

	sp.bubbleStyle = widget.NewSelect([]string{"rounded", "square"}, func(v string) {
		edit(func(s *chat.DisplaySettings) { s.BubbleStyle = v })
		sp.refresh()
	})

	sp.textColorUser = sp.colorEntry(func(s *chat.DisplaySettings, v string) { s.TextColorUser = v })
	sp.textColorBot = sp.colorEntry(func(s *chat.DisplaySettings, v string) { s.TextColorBot = v })
	sp.bubbleColorUser = sp.colorEntry(func(s *chat.DisplaySettings, v string) { s.BubbleColorUser = v })
	sp.bubbleColorBot = sp.colorEntry(func(s *chat.DisplaySettings, v string) { s.BubbleColorBot = v })

	sp.dateFormat = widget.NewSelect([]string{"MM/DD/YYYY", "DD/MM/YYYY", "YYYY-MM-DD"}, func(v string) {
		edit(func(s *chat.DisplaySettings) { s.DateFormat = v })
		sp.refresh()
	})

	sp.timeFormat = widget.NewSelect([]string{"12h", "24h"}, func(v string) {
		edit(func(s *chat.DisplaySettings) { s.TimeFormat = v })
		sp.refresh()
	})

	sp.autoPlay = widget.NewCheck("Auto-play replies", func(v bool) {
		edit(func(s *chat.DisplaySettings) { s.AutoPlay = v })
		sp.refresh()
	})

	sp.showTranslations = widget.NewCheck("Show translations", func(v bool) {
		edit(func(s *chat.DisplaySettings) { s.ShowTranslationTooltip = v })
		sp.refresh()
	})

	sp.saveButton = widget.NewButton("Save", sp.save)
	sp.saveButton.Importance = widget.HighImportance
	discardButton := widget.NewButton("Discard", func() {
		sp.app.reconciler.Discard()
		sp.refresh()
	})

	form := widget.NewForm(
		widget.NewFormItem("Font size", sp.fontSize),
		widget.NewFormItem("Font family", sp.fontFamily),
		widget.NewFormItem("Bubble style", sp.bubbleStyle),
		widget.NewFormItem("Your text color", sp.textColorUser),
		widget.NewFormItem("Bot text color", sp.textColorBot),
		widget.NewFormItem("Your bubble color", sp.bubbleColorUser),
		widget.NewFormItem("Bot bubble color", sp.bubbleColorBot),
		widget.NewFormItem("Date format", sp.dateFormat),
		widget.NewFormItem("Time format", sp.timeFormat),
	)

	title := widget.NewLabel("Display Settings")
	title.TextStyle = fyne.TextStyle{Bold: true}

	optimizeButton := widget.NewButton("Optimize database", sp.optimizeDatabase)

	sp.root = container.NewVBox(
		title,
		form,
		sp.autoPlay,
		sp.showTranslations,
		container.NewGridWithColumns(2, discardButton, sp.saveButton),
		widget.NewSeparator(),
		optimizeButton,
	)
	sp.root.Hide()

	sp.syncWidgets()

	return sp.root
}

// Toggle shows or hides the panel. Opening re-reads the draft so the
// widgets always reflect the current state.
func (sp *SettingsPanel) Toggle() {
	sp.visible = !sp.visible
	if sp.visible {
		sp.syncWidgets()
		sp.root.Show()
	} else {
		sp.root.Hide()
	}
}

// syncWidgets pushes the current draft into the widgets without
// triggering their change callbacks as edits.
func (sp *SettingsPanel) syncWidgets() {
	s := sp.app.reconciler.Draft()

	sp.fontSize.SetSelected(fmt.Sprintf("%d", s.FontSize))
	sp.fontFamily.SetSelected(s.FontFamily)
	sp.bubbleStyle.SetSelected(s.BubbleStyle)
	sp.textColorUser.SetText(s.TextColorUser)
	sp.textColorBot.SetText(s.TextColorBot)
	sp.bubbleColorUser.SetText(s.BubbleColorUser)
	sp.bubbleColorBot.SetText(s.BubbleColorBot)
	sp.dateFormat.SetSelected(s.DateFormat)
	sp.timeFormat.SetSelected(s.TimeFormat)
	sp.autoPlay.SetChecked(s.AutoPlay)
	sp.showTranslations.SetChecked(s.ShowTranslationTooltip)

	sp.refresh()
}

// refresh re-renders the message list with the draft and updates the
// Save button state.
func (sp *SettingsPanel) refresh() {
	if sp.app.reconciler.HasUnsavedChanges() {
		sp.saveButton.Enable()
	} else {
		sp.saveButton.Disable()
	}
	sp.app.chatView.renderMessages()
}

func (sp *SettingsPanel) save() {
	sp.saveButton.Disable()
	utils.SafeGo(sp.app.logger, "save settings", func() {
		err := sp.app.reconciler.Save(context.Background(), sp.app.principal)
		fyne.Do(func() {
			if err != nil {
				sp.app.logger.Error("Failed to save settings: %v", err)
			}
			sp.syncWidgets()
		})
	})
}

// optimizeDatabase compacts the sqlite file.
func (sp *SettingsPanel) optimizeDatabase() {
	utils.SafeGo(sp.app.logger, "optimize database", func() {
		if err := sp.app.db.Vacuum(); err != nil {
			sp.app.logger.Error("Failed to optimize database: %v", err)
			sp.app.notifier.Notify(chat.Notice{Message: "Failed to optimize database.", Severity: chat.SeverityError})
			return
		}
		sp.app.notifier.Notify(chat.Notice{Message: "Database optimized", Severity: chat.SeveritySuccess})
	})
}

func (sp *SettingsPanel) colorEntry(apply func(*chat.DisplaySettings, string)) *widget.Entry {
	entry := widget.NewEntry()
	entry.OnChanged = func(v string) {
		sp.app.reconciler.Edit(func(s *chat.DisplaySettings) { apply(s, v) })
		sp.refresh()
	}
	return entry
}
