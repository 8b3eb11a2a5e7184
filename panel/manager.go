// Package panel is the façade the presentation layers talk to. It ties the
// session config switch, the preference store, the change journal and the
// notifier together behind the four operations a settings panel needs.
package panel

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/yllada/xfce-gala-settings/common"
	"github.com/yllada/xfce-gala-settings/history"
	"github.com/yllada/xfce-gala-settings/notify"
	"github.com/yllada/xfce-gala-settings/settings"
	"github.com/yllada/xfce-gala-settings/wm"
)

// Switcher is the window manager half of the panel.
type Switcher interface {
	Current() (wm.Choice, error)
	Toggle() (wm.Choice, error)
	Apply(choice wm.Choice) error
	Path() (string, error)
}

// Recorder stores applied changes.
type Recorder interface {
	Record(ctx context.Context, c history.Change) error
}

// Options configures a Manager.
type Options struct {
	Switch   Switcher
	Store    *settings.Store
	Notifier common.Notifier
	// Recorder may be nil to disable the journal.
	Recorder Recorder
	// Reconcile restarts the window manager in Finish when the
	// configured one changed during the session.
	Reconcile bool
}

// Manager holds one panel session. Its methods may be called from any
// goroutine; operations run one at a time.
type Manager struct {
	mu sync.Mutex

	sessionID string
	sw        Switcher
	store     *settings.Store
	notifier  common.Notifier
	recorder  Recorder
	reconcile bool

	start    wm.Choice
	snapshot settings.Settings
}

// NewManager creates a session. It captures the configured window manager
// so Finish can tell whether it changed, and the preferences ToggleSetting
// flips.
func NewManager(opts Options) (*Manager, error) {
	m := &Manager{
		sessionID: uuid.NewString(),
		sw:        opts.Switch,
		store:     opts.Store,
		notifier:  opts.Notifier,
		recorder:  opts.Recorder,
		reconcile: opts.Reconcile,
	}
	if m.notifier == nil {
		m.notifier = discardNotifier{}
	}

	start, err := m.sw.Current()
	if err != nil {
		return nil, err
	}
	m.start = start
	if m.store != nil {
		m.snapshot = m.store.Load()
	}
	common.LogInfo("Session %s started, configured window manager: %s", m.sessionID, start)
	return m, nil
}

// SessionID identifies this panel session in logs and in the journal.
func (m *Manager) SessionID() string {
	return m.sessionID
}

// ConfigPath returns the session config file the panel edits.
func (m *Manager) ConfigPath() string {
	path, err := m.sw.Path()
	if err != nil {
		return ""
	}
	return path
}

// CurrentWindowManager returns the configured window manager.
func (m *Manager) CurrentWindowManager() (wm.Choice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sw.Current()
}

// ToggleWindowManager flips the configured window manager and starts the
// new one. A spawn failure is returned with the new choice and reported
// through the notifier; callers should treat it as a warning.
func (m *Manager) ToggleWindowManager() (wm.Choice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	before, err := m.sw.Current()
	if err != nil {
		return wm.Unknown, err
	}

	next, err := m.sw.Toggle()
	if err != nil && !errors.Is(err, common.ErrProcessSpawnFailed) {
		common.LogError("Switching window manager: %v", err)
		return next, err
	}

	note := ""
	if err != nil {
		note = err.Error()
		common.LogWarn("%v", err)
		m.notify("Window manager not restarted", fmt.Sprintf("%s is configured but could not be started: %v", next, err))
	}
	if next.Known() {
		m.record(history.SubjectWindowManager, before.String(), next.String(), note)
	}
	return next, err
}

// LoadSettings reads the three preferences and remembers them as the
// snapshot ToggleSetting flips.
func (m *Manager) LoadSettings() settings.Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load()
}

func (m *Manager) load() settings.Settings {
	m.snapshot = m.store.Load()
	return m.snapshot
}

// ToggleSetting flips one preference and writes all three. The returned
// snapshot is re-read from the store so it shows what actually persisted.
func (m *Manager) ToggleSetting(k settings.Key) (settings.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	old := m.snapshot.Get(k)
	_, err := m.store.Toggle(m.snapshot, k)
	current := m.load()

	if err != nil {
		common.LogError("Saving preferences: %v", err)
		m.notify("Preference not saved", fmt.Sprintf("%s: %v", k.Label(), err))
		return current, err
	}

	m.record(k.String(), strconv.FormatBool(old), strconv.FormatBool(current.Get(k)), "")
	return current, nil
}

// Finish re-reads the configured window manager and, when it differs
// from the start of the session, starts it once more. This is a
// best-effort reconciliation: failures are reported, never retried.
func (m *Manager) Finish() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	end, err := m.sw.Current()
	if err != nil {
		return err
	}

	common.LogInfo("Session %s finished, configured window manager: %s", m.sessionID, end)
	if !m.reconcile || end == m.start || !end.Known() {
		return nil
	}

	common.LogInfo("Window manager changed from %s to %s, applying", m.start, end)
	if err := m.sw.Apply(end); err != nil {
		m.notify("Window manager not restarted", err.Error())
		return err
	}
	// The panel is already gone, so this is the only sign the restart
	// happened.
	if err := m.notifier.Notify("Window manager restarted", fmt.Sprintf("%s is now running", end)); err != nil {
		common.LogDebug("Notification failed: %v", err)
	}
	return nil
}

func (m *Manager) record(subject, oldValue, newValue, note string) {
	if m.recorder == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), common.CommandTimeout)
	defer cancel()

	err := m.recorder.Record(ctx, history.Change{
		SessionID: m.sessionID,
		Subject:   subject,
		OldValue:  oldValue,
		NewValue:  newValue,
		Note:      note,
	})
	if err != nil {
		common.LogWarn("History not updated: %v", err)
	}
}

func (m *Manager) notify(title, message string) {
	if err := m.notifier.NotifyWithIcon(title, message, notify.IconError); err != nil {
		common.LogDebug("Notification failed: %v", err)
	}
}

type discardNotifier struct{}

func (discardNotifier) Notify(string, string) error                 { return nil }
func (discardNotifier) NotifyWithIcon(string, string, string) error { return nil }
