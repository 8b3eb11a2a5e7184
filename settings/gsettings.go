package settings

import (
	"fmt"
	"path"
	"strings"

	"github.com/diamondburned/gotk4/pkg/gio/v2"

	"github.com/yllada/xfce-gala-settings/common"
)

// GSettingsBackend reads and writes through GIO, which validates every key
// against its installed schema.
type GSettingsBackend struct{}

// NewGSettingsBackend creates a GIO backed store backend.
func NewGSettingsBackend() *GSettingsBackend {
	return &GSettingsBackend{}
}

// schemaKey splits a dconf path into schema id and key:
// /org/gnome/mutter/edge-tiling -> org.gnome.mutter, edge-tiling.
func schemaKey(p string) (string, string, error) {
	dir, key := path.Split(p)
	dir = strings.Trim(dir, "/")
	if dir == "" || key == "" {
		return "", "", fmt.Errorf("malformed key path %q", p)
	}
	return strings.ReplaceAll(dir, "/", "."), key, nil
}

// settingsFor opens the schema holding p. Missing schemas and keys are
// errors rather than the abort GIO would trigger.
func settingsFor(p string) (*gio.Settings, string, error) {
	schemaID, key, err := schemaKey(p)
	if err != nil {
		return nil, "", err
	}

	source := gio.SettingsSchemaSourceGetDefault()
	if source == nil {
		return nil, "", fmt.Errorf("no GSettings schemas installed")
	}
	schema := source.Lookup(schemaID, true)
	if schema == nil {
		return nil, "", fmt.Errorf("%w: schema %s not installed", common.ErrPreferenceUnset, schemaID)
	}
	if !schema.HasKey(key) {
		return nil, "", fmt.Errorf("%w: schema %s has no key %s", common.ErrPreferenceUnset, schemaID, key)
	}
	return gio.NewSettings(schemaID), key, nil
}

// ReadBool returns the value stored at keyPath.
func (g *GSettingsBackend) ReadBool(keyPath string) (bool, error) {
	s, key, err := settingsFor(keyPath)
	if err != nil {
		return false, err
	}
	return s.Boolean(key), nil
}

// WriteBool stores value at keyPath and flushes it to dconf.
func (g *GSettingsBackend) WriteBool(keyPath string, value bool) error {
	s, key, err := settingsFor(keyPath)
	if err != nil {
		return err
	}
	if !s.SetBoolean(key, value) {
		return fmt.Errorf("%s is not writable", keyPath)
	}
	gio.SettingsSync()
	return nil
}

// NewBackend returns the backend named by the application config.
func NewBackend(name string) Backend {
	if name == common.BackendGSettings {
		return NewGSettingsBackend()
	}
	return NewDconfBackend(common.ExecRunner{})
}
