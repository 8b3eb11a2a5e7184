package panel

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/yllada/xfce-gala-settings/common"
	"github.com/yllada/xfce-gala-settings/history"
	"github.com/yllada/xfce-gala-settings/settings"
	"github.com/yllada/xfce-gala-settings/wm"
)

type fakeSwitch struct {
	current  wm.Choice
	readErr  error
	spawnErr error
	applied  []wm.Choice
}

func (f *fakeSwitch) Current() (wm.Choice, error) {
	return f.current, f.readErr
}

func (f *fakeSwitch) Toggle() (wm.Choice, error) {
	if f.readErr != nil {
		return wm.Unknown, f.readErr
	}
	f.current = f.current.Other()
	if !f.current.Known() {
		return wm.Unknown, nil
	}
	return f.current, f.Apply(f.current)
}

func (f *fakeSwitch) Apply(c wm.Choice) error {
	if f.spawnErr != nil {
		return errors.Join(common.ErrProcessSpawnFailed, f.spawnErr)
	}
	f.applied = append(f.applied, c)
	return nil
}

func (f *fakeSwitch) Path() (string, error) {
	return "/home/ana/.config/xfce4/xfconf/xfce-perchannel-xml/xfce4-session.xml", nil
}

type memBackend map[string]bool

func (m memBackend) ReadBool(path string) (bool, error) {
	v, ok := m[path]
	if !ok {
		return false, common.ErrPreferenceUnset
	}
	return v, nil
}

func (m memBackend) WriteBool(path string, v bool) error {
	m[path] = v
	return nil
}

type failingBackend struct{ memBackend }

func (failingBackend) WriteBool(string, bool) error { return errors.New("dconf unavailable") }

type recorder struct{ changes []history.Change }

func (r *recorder) Record(_ context.Context, c history.Change) error {
	r.changes = append(r.changes, c)
	return nil
}

type countingNotifier struct{ infos, failures int }

func (c *countingNotifier) Notify(string, string) error { c.infos++; return nil }
func (c *countingNotifier) NotifyWithIcon(string, string, string) error {
	c.failures++
	return nil
}

// syncBackend is a memBackend safe for concurrent use.
type syncBackend struct {
	mu sync.Mutex
	m  memBackend
}

func (b *syncBackend) ReadBool(path string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.m.ReadBool(path)
}

func (b *syncBackend) WriteBool(path string, v bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.m.WriteBool(path, v)
}

func newManager(t *testing.T, sw *fakeSwitch, backend settings.Backend, reconcile bool) (*Manager, *recorder, *countingNotifier) {
	t.Helper()
	rec := &recorder{}
	notifier := &countingNotifier{}
	m, err := NewManager(Options{
		Switch:    sw,
		Store:     settings.NewStore(backend),
		Notifier:  notifier,
		Recorder:  rec,
		Reconcile: reconcile,
	})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	return m, rec, notifier
}

func TestNewManager_ReadFailed(t *testing.T) {
	_, err := NewManager(Options{Switch: &fakeSwitch{readErr: common.ErrReadFailed}})
	if !errors.Is(err, common.ErrReadFailed) {
		t.Errorf("NewManager() error = %v, want ErrReadFailed", err)
	}
}

func TestManager_ToggleWindowManager(t *testing.T) {
	sw := &fakeSwitch{current: wm.Xfwm4}
	m, rec, _ := newManager(t, sw, memBackend{}, true)

	got, err := m.ToggleWindowManager()
	if err != nil {
		t.Fatalf("ToggleWindowManager() error = %v", err)
	}
	if got != wm.Gala {
		t.Errorf("ToggleWindowManager() = %v, want %v", got, wm.Gala)
	}
	if len(rec.changes) != 1 {
		t.Fatalf("recorded %d changes, want 1", len(rec.changes))
	}
	c := rec.changes[0]
	if c.Subject != history.SubjectWindowManager || c.OldValue != "xfwm4" || c.NewValue != "gala" {
		t.Errorf("recorded %+v", c)
	}
	if c.SessionID != m.SessionID() || c.SessionID == "" {
		t.Errorf("SessionID = %q, want %q", c.SessionID, m.SessionID())
	}
}

func TestManager_ToggleWindowManagerSpawnFailed(t *testing.T) {
	sw := &fakeSwitch{current: wm.Gala, spawnErr: errors.New("xfwm4: not found")}
	m, rec, notifier := newManager(t, sw, memBackend{}, true)

	got, err := m.ToggleWindowManager()
	if !errors.Is(err, common.ErrProcessSpawnFailed) {
		t.Fatalf("ToggleWindowManager() error = %v, want ErrProcessSpawnFailed", err)
	}
	if got != wm.Xfwm4 {
		t.Errorf("ToggleWindowManager() = %v, want %v", got, wm.Xfwm4)
	}
	if notifier.failures != 1 {
		t.Errorf("notifications = %d, want 1", notifier.failures)
	}
	if len(rec.changes) != 1 || rec.changes[0].Note == "" {
		t.Errorf("recorded %+v, want one change with a note", rec.changes)
	}
}

func TestManager_ToggleWindowManagerUnknown(t *testing.T) {
	sw := &fakeSwitch{current: wm.Unknown}
	m, rec, _ := newManager(t, sw, memBackend{}, true)

	got, err := m.ToggleWindowManager()
	if err != nil || got != wm.Unknown {
		t.Errorf("ToggleWindowManager() = %v, %v, want Unknown, nil", got, err)
	}
	if len(rec.changes) != 0 {
		t.Error("an unknown config should not be journaled")
	}
}

func TestManager_ToggleSetting(t *testing.T) {
	backend := memBackend{settings.EdgeTiling.Path(): true}
	m, rec, _ := newManager(t, &fakeSwitch{current: wm.Gala}, backend, true)

	if got := m.LoadSettings(); got != (settings.Settings{EdgeTiling: true}) {
		t.Fatalf("LoadSettings() = %+v", got)
	}

	got, err := m.ToggleSetting(settings.DynamicWorkspaces)
	if err != nil {
		t.Fatalf("ToggleSetting() error = %v", err)
	}
	want := settings.Settings{DynamicWorkspaces: true, EdgeTiling: true}
	if got != want {
		t.Errorf("ToggleSetting() = %+v, want %+v", got, want)
	}
	// All three keys are written on every toggle.
	if _, ok := backend[settings.Animations.Path()]; !ok {
		t.Error("animations key should have been written")
	}
	if len(rec.changes) != 1 || rec.changes[0].Subject != "dynamic-workspaces" || rec.changes[0].NewValue != "true" {
		t.Errorf("recorded %+v", rec.changes)
	}
}

func TestManager_ToggleSettingWithoutLoad(t *testing.T) {
	backend := memBackend{
		settings.DynamicWorkspaces.Path(): true,
		settings.Animations.Path():        true,
	}
	m, _, _ := newManager(t, &fakeSwitch{current: wm.Gala}, backend, true)

	got, err := m.ToggleSetting(settings.EdgeTiling)
	if err != nil {
		t.Fatalf("ToggleSetting() error = %v", err)
	}
	want := settings.Settings{DynamicWorkspaces: true, EdgeTiling: true, Animations: true}
	if got != want {
		t.Errorf("ToggleSetting() = %+v, want %+v", got, want)
	}
	if !backend[settings.DynamicWorkspaces.Path()] || !backend[settings.Animations.Path()] {
		t.Errorf("untouched keys were overwritten: %v", backend)
	}
}

func TestManager_ConcurrentLoadAndToggle(t *testing.T) {
	backend := &syncBackend{m: memBackend{}}
	m, rec, _ := newManager(t, &fakeSwitch{current: wm.Gala}, backend, true)

	const toggles = 50
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range toggles {
			if _, err := m.ToggleSetting(settings.EdgeTiling); err != nil {
				t.Errorf("ToggleSetting() error = %v", err)
				return
			}
		}
	}()
	for range toggles {
		m.LoadSettings()
	}
	wg.Wait()

	// An even number of flips leaves the key where it started.
	if got := m.LoadSettings(); got.EdgeTiling {
		t.Errorf("EdgeTiling = %v after %d toggles, want false", got.EdgeTiling, toggles)
	}
	if len(rec.changes) != toggles {
		t.Errorf("recorded %d changes, want %d", len(rec.changes), toggles)
	}
}

func TestManager_ToggleSettingWriteFailed(t *testing.T) {
	backend := failingBackend{memBackend{}}
	m, rec, notifier := newManager(t, &fakeSwitch{current: wm.Gala}, backend, true)
	m.LoadSettings()

	got, err := m.ToggleSetting(settings.Animations)
	if !errors.Is(err, common.ErrPreferenceWrite) {
		t.Fatalf("ToggleSetting() error = %v, want ErrPreferenceWrite", err)
	}
	if got.Animations {
		t.Error("ToggleSetting() should return the persisted state after a failed write")
	}
	if notifier.failures != 1 {
		t.Errorf("notifications = %d, want 1", notifier.failures)
	}
	if len(rec.changes) != 0 {
		t.Error("failed writes should not be journaled")
	}
}

func TestManager_Finish(t *testing.T) {
	tests := []struct {
		name      string
		start     wm.Choice
		end       wm.Choice
		reconcile bool
		want      []wm.Choice
	}{
		{"unchanged", wm.Xfwm4, wm.Xfwm4, true, nil},
		{"changed", wm.Xfwm4, wm.Gala, true, []wm.Choice{wm.Gala}},
		{"changed back", wm.Gala, wm.Xfwm4, true, []wm.Choice{wm.Xfwm4}},
		{"changed to unknown", wm.Gala, wm.Unknown, true, nil},
		{"reconcile disabled", wm.Xfwm4, wm.Gala, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sw := &fakeSwitch{current: tt.start}
			m, _, notifier := newManager(t, sw, memBackend{}, tt.reconcile)
			sw.current = tt.end

			if err := m.Finish(); err != nil {
				t.Fatalf("Finish() error = %v", err)
			}
			if notifier.infos != len(tt.want) {
				t.Errorf("restart notifications = %d, want %d", notifier.infos, len(tt.want))
			}
			if len(sw.applied) != len(tt.want) {
				t.Fatalf("applied %v, want %v", sw.applied, tt.want)
			}
			for i := range tt.want {
				if sw.applied[i] != tt.want[i] {
					t.Errorf("applied %v, want %v", sw.applied, tt.want)
				}
			}
		})
	}
}

func TestManager_FinishSpawnFailed(t *testing.T) {
	sw := &fakeSwitch{current: wm.Xfwm4}
	m, _, notifier := newManager(t, sw, memBackend{}, true)
	sw.current = wm.Gala
	sw.spawnErr = errors.New("gala: not found")

	if err := m.Finish(); !errors.Is(err, common.ErrProcessSpawnFailed) {
		t.Errorf("Finish() error = %v, want ErrProcessSpawnFailed", err)
	}
	if notifier.failures != 1 {
		t.Errorf("notifications = %d, want 1", notifier.failures)
	}
}
