package chat

import (
	"context"
	"sync"
	"time"

	"linguachat/auth"
)

// unsavedNoticeDuration is how long the one-shot "changes not saved"
// notice stays on screen.
const unsavedNoticeDuration = 5 * time.Second

// SettingsStore persists display settings for a user. db.DB satisfies
// it.
type SettingsStore interface {
	SaveSettings(ctx context.Context, p auth.Principal, s DisplaySettings) error
}

// SettingsReconciler maintains the editable draft of the persisted
// display settings. The message list renders through the draft so edits
// are previewed live; nothing touches the persisted copy until Save.
type SettingsReconciler struct {
	store    SettingsStore
	notifier Notifier
	logger   Logger

	mu         sync.Mutex
	persisted  DisplaySettings
	draft      DisplaySettings
	wasUnsaved bool
}

// NewSettingsReconciler creates a reconciler whose draft starts as a
// copy of the persisted settings.
func NewSettingsReconciler(persisted DisplaySettings, store SettingsStore, notifier Notifier, logger Logger) *SettingsReconciler {
	return &SettingsReconciler{
		store:     store,
		notifier:  notifier,
		logger:    logger,
		persisted: persisted,
		draft:     persisted,
	}
}

// Draft returns the current draft, the settings messages render with.
func (r *SettingsReconciler) Draft() DisplaySettings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.draft
}

// Persisted returns the authoritative saved settings.
func (r *SettingsReconciler) Persisted() DisplaySettings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.persisted
}

// Edit applies a mutation to the draft only. The first edit that makes
// the draft diverge from the persisted settings emits a one-shot
// "changes not saved" notice.
func (r *SettingsReconciler) Edit(mutate func(*DisplaySettings)) {
	r.mu.Lock()
	mutate(&r.draft)
	r.noticeOnTransitionLocked()
	r.mu.Unlock()
}

// HasUnsavedChanges reports whether the draft differs from the
// persisted settings in at least one field.
func (r *SettingsReconciler) HasUnsavedChanges() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.draft != r.persisted
}

// SyncPersisted handles a persisted-settings change from outside (for
// example the session-start load). The draft follows only when no
// unsaved edits exist; an outstanding draft is never clobbered, the
// incoming value is ignored until the user saves or discards.
func (r *SettingsReconciler) SyncPersisted(s DisplaySettings) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.draft != r.persisted {
		return
	}
	r.persisted = s
	r.draft = s
}

// Save writes the full draft through the settings store. On success the
// persisted copy becomes a structural copy of the draft and the unsaved
// state clears; on failure the draft is left untouched and an error
// notice is shown.
func (r *SettingsReconciler) Save(ctx context.Context, p auth.Principal) error {
	r.mu.Lock()
	draft := r.draft
	r.mu.Unlock()

	if err := r.store.SaveSettings(ctx, p, draft); err != nil {
		r.logger.Error("Failed to save settings: %v", err)
		r.notifier.Notify(Notice{
			Message:  "Failed to save settings.",
			Severity: SeverityError,
			Duration: 3 * time.Second,
		})
		return err
	}

	r.mu.Lock()
	r.persisted = draft
	r.wasUnsaved = r.draft != r.persisted
	r.mu.Unlock()

	r.notifier.Notify(Notice{
		Message:  "Settings saved!",
		Severity: SeveritySuccess,
		Duration: 3 * time.Second,
	})
	return nil
}

// Discard resets the draft back to the persisted settings.
func (r *SettingsReconciler) Discard() {
	r.mu.Lock()
	r.draft = r.persisted
	r.wasUnsaved = false
	r.mu.Unlock()
}

// noticeOnTransitionLocked emits the unsaved-changes notice exactly
// when the unsaved flag flips from false to true.
func (r *SettingsReconciler) noticeOnTransitionLocked() {
	unsaved := r.draft != r.persisted
	if unsaved && !r.wasUnsaved {
		r.notifier.Notify(Notice{
			Message:  "Changes not saved",
			Severity: SeverityWarning,
			Duration: unsavedNoticeDuration,
		})
	}
	r.wasUnsaved = unsaved
}
