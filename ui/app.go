package ui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"linguachat/ai"
	"linguachat/audio"
	"linguachat/auth"
	"linguachat/chat"
	"linguachat/db"
	"linguachat/utils"
)

// App represents the main application
type App struct {
	fyneApp    fyne.App
	window     fyne.Window
	config     *utils.Config
	configPath string
	db         *db.DB
	logger     *utils.Logger
	principal  auth.Principal

	// Session engine
	store        *chat.Store
	playback     *chat.PlaybackCoordinator
	capture      *chat.CapturePipeline
	reconciler   *chat.SettingsReconciler
	orchestrator *chat.Orchestrator
	notifier     chat.Notifier

	// UI components
	sidebar       *Sidebar
	chatView      *ChatView
	settingsPanel *SettingsPanel
}

// NewApp creates the application: it loads the session state, wires the
// engine and builds the window.
func NewApp(config *utils.Config, configPath string, database *db.DB, client *ai.Client, logger *utils.Logger, principal auth.Principal) (*App, error) {
	fyneApp := app.NewWithID("linguachat")
	window := fyneApp.NewWindow("LinguaChat")

	// Set window size from config
	window.Resize(fyne.NewSize(
		float32(config.UI.WindowWidth),
		float32(config.UI.WindowHeight),
	))

	a := &App{
		fyneApp:    fyneApp,
		window:     window,
		config:     config,
		configPath: configPath,
		db:         database,
		logger:     logger,
		principal:  principal,
	}

	a.notifier = NewToaster(window)

	ctx := context.Background()

	// Load the user's chats into the session store.
	chats, err := database.ListChats(ctx, principal)
	if err != nil {
		return nil, err
	}
	a.store = chat.NewStore()
	a.store.Load(chats)

	// Persisted display settings; first run gets the defaults.
	persisted, found, err := database.LoadSettings(ctx, principal)
	if err != nil {
		return nil, err
	}
	if !found {
		persisted = chat.DefaultDisplaySettings()
	}
	a.reconciler = chat.NewSettingsReconciler(persisted, database, a.notifier, logger)

	a.playback = chat.NewPlaybackCoordinator()
	a.capture = chat.NewCapturePipeline(audio.NewMicRecorder(), client, a.notifier, logger)
	a.orchestrator = chat.NewOrchestrator(
		a.store, client, database, a.playback,
		audio.NewExecPlayer(logger), a.reconciler, a.notifier, logger,
	)

	a.buildUI()

	window.SetOnClosed(func() {
		size := window.Canvas().Size()
		a.config.UI.WindowWidth = int(size.Width)
		a.config.UI.WindowHeight = int(size.Height)
		if err := utils.SaveConfig(a.configPath, a.config); err != nil {
			a.logger.Error("Failed to save window size: %v", err)
		}
	})

	return a, nil
}

// buildUI constructs the main window layout: sidebar, chat view and
// the settings panel.
func (a *App) buildUI() {
	a.chatView = NewChatView(a)
	a.sidebar = NewSidebar(a)
	a.settingsPanel = NewSettingsPanel(a)

	// The hooks fire on the send pipeline's goroutine; widget work goes
	// through fyne.Do (MessageAppended and SendingChanged do their own).
	a.orchestrator.OnMessageAppended = func(c chat.Chat, msg chat.Message) {
		a.chatView.MessageAppended(c, msg)
		fyne.Do(a.sidebar.Refresh)
	}
	a.orchestrator.OnSendingChanged = func(chatID string, sending bool) {
		a.chatView.SendingChanged(chatID, sending)
	}
	a.playback.OnChange = a.chatView.PlaybackChanged

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.SettingsIcon(), a.settingsPanel.Toggle),
		widget.NewToolbarAction(theme.InfoIcon(), a.showStats),
		widget.NewToolbarSpacer(),
	)

	center := container.NewBorder(toolbar, nil, nil, nil, a.chatView.Build())

	split := container.NewHSplit(a.sidebar.Build(), center)
	split.Offset = 0.22

	content := container.NewBorder(nil, nil, nil, a.settingsPanel.Build(), split)

	a.window.SetContent(content)
}

// OpenChat switches the chat view to the given chat, rendering the
// in-memory copy immediately, then reloads the persisted history so a
// long-running session stays aligned with the database.
func (a *App) OpenChat(chatID string) {
	a.chatView.SetChat(chatID)

	utils.SafeGo(a.logger, "reload chat", func() {
		c, err := a.db.GetChat(context.Background(), a.principal, chatID)
		if err != nil {
			a.logger.Warn("Failed to reload chat %s: %v", chatID, err)
			return
		}
		a.store.Replace(chatID, c)
		fyne.Do(func() {
			if a.chatView.chatID == chatID {
				a.chatView.renderMessages()
			}
			a.sidebar.Refresh()
		})
	})
}

// Run starts the main event loop
func (a *App) Run() {
	a.window.ShowAndRun()
}

// Cleanup performs cleanup before exit
func (a *App) Cleanup() {
	a.logger.Info("Application cleanup")
}
