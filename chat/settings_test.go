package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linguachat/auth"
)

type stubSettingsStore struct {
	saved []DisplaySettings
	err   error
}

func (s *stubSettingsStore) SaveSettings(_ context.Context, _ auth.Principal, settings DisplaySettings) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, settings)
	return nil
}

func countNotices(r *noticeRecorder, message string) int {
	n := 0
	for _, m := range r.messages() {
		if m == message {
			n++
		}
	}
	return n
}

func TestSettingsEditTouchesOnlyDraft(t *testing.T) {
	store := &stubSettingsStore{}
	r := NewSettingsReconciler(DefaultDisplaySettings(), store, &noticeRecorder{}, nopLogger{})

	assert.False(t, r.HasUnsavedChanges())

	r.Edit(func(s *DisplaySettings) { s.FontSize = 20 })

	assert.True(t, r.HasUnsavedChanges())
	assert.Equal(t, 20, r.Draft().FontSize)
	assert.Equal(t, DefaultDisplaySettings().FontSize, r.Persisted().FontSize)
	assert.Empty(t, store.saved, "editing never writes to the store")
}

func TestSettingsUnsavedNoticeFiresOncePerDivergence(t *testing.T) {
	notices := &noticeRecorder{}
	r := NewSettingsReconciler(DefaultDisplaySettings(), &stubSettingsStore{}, notices, nopLogger{})

	r.Edit(func(s *DisplaySettings) { s.FontSize = 20 })
	r.Edit(func(s *DisplaySettings) { s.FontFamily = "Georgia" })
	r.Edit(func(s *DisplaySettings) { s.AutoPlay = true })

	assert.Equal(t, 1, countNotices(notices, "Changes not saved"))
}

func TestSettingsEditBackToPersistedClearsUnsaved(t *testing.T) {
	notices := &noticeRecorder{}
	r := NewSettingsReconciler(DefaultDisplaySettings(), &stubSettingsStore{}, notices, nopLogger{})

	r.Edit(func(s *DisplaySettings) { s.FontSize = 20 })
	r.Edit(func(s *DisplaySettings) { s.FontSize = DefaultDisplaySettings().FontSize })

	assert.False(t, r.HasUnsavedChanges())

	// Diverging again is a fresh transition and notifies again.
	r.Edit(func(s *DisplaySettings) { s.FontSize = 24 })
	assert.Equal(t, 2, countNotices(notices, "Changes not saved"))
}

func TestSettingsSavePersistsWholeDraft(t *testing.T) {
	store := &stubSettingsStore{}
	notices := &noticeRecorder{}
	r := NewSettingsReconciler(DefaultDisplaySettings(), store, notices, nopLogger{})

	r.Edit(func(s *DisplaySettings) {
		s.FontSize = 20
		s.DateFormat = "YYYY-MM-DD"
	})

	require.NoError(t, r.Save(context.Background(), testPrincipal))

	require.Len(t, store.saved, 1)
	assert.Equal(t, 20, store.saved[0].FontSize)
	assert.Equal(t, "YYYY-MM-DD", store.saved[0].DateFormat)

	assert.False(t, r.HasUnsavedChanges())
	assert.Equal(t, r.Draft(), r.Persisted())
	assert.Contains(t, notices.messages(), "Settings saved!")
}

func TestSettingsSaveFailureKeepsDraft(t *testing.T) {
	store := &stubSettingsStore{err: errors.New("db locked")}
	notices := &noticeRecorder{}
	r := NewSettingsReconciler(DefaultDisplaySettings(), store, notices, nopLogger{})

	r.Edit(func(s *DisplaySettings) { s.FontSize = 20 })

	require.Error(t, r.Save(context.Background(), testPrincipal))

	assert.True(t, r.HasUnsavedChanges(), "a failed save leaves the edits in place")
	assert.Equal(t, 20, r.Draft().FontSize)
	assert.Contains(t, notices.messages(), "Failed to save settings.")
}

func TestSettingsDiscard(t *testing.T) {
	notices := &noticeRecorder{}
	r := NewSettingsReconciler(DefaultDisplaySettings(), &stubSettingsStore{}, notices, nopLogger{})

	r.Edit(func(s *DisplaySettings) { s.FontSize = 20 })
	r.Discard()

	assert.False(t, r.HasUnsavedChanges())
	assert.Equal(t, DefaultDisplaySettings(), r.Draft())

	// Discard resets the transition tracking too.
	r.Edit(func(s *DisplaySettings) { s.FontSize = 24 })
	assert.Equal(t, 2, countNotices(notices, "Changes not saved"))
}

func TestSettingsSyncPersistedFollowsWhenClean(t *testing.T) {
	r := NewSettingsReconciler(DefaultDisplaySettings(), &stubSettingsStore{}, &noticeRecorder{}, nopLogger{})

	incoming := DefaultDisplaySettings()
	incoming.FontSize = 18
	r.SyncPersisted(incoming)

	assert.Equal(t, 18, r.Draft().FontSize)
	assert.Equal(t, 18, r.Persisted().FontSize)
}

func TestSettingsSyncPersistedIgnoredWhenDirty(t *testing.T) {
	r := NewSettingsReconciler(DefaultDisplaySettings(), &stubSettingsStore{}, &noticeRecorder{}, nopLogger{})

	r.Edit(func(s *DisplaySettings) { s.FontSize = 20 })

	incoming := DefaultDisplaySettings()
	incoming.FontSize = 18
	r.SyncPersisted(incoming)

	assert.Equal(t, 20, r.Draft().FontSize, "outstanding edits are never clobbered")
	assert.Equal(t, DefaultDisplaySettings(), r.Persisted())
}
