package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yllada/xfce-gala-settings/common"
)

// Key identifies one of the boolean preferences.
type Key int

const (
	DynamicWorkspaces Key = iota
	EdgeTiling
	Animations
)

// Keys lists every preference in write order.
var Keys = []Key{DynamicWorkspaces, EdgeTiling, Animations}

// Path returns the dconf key path of k.
func (k Key) Path() string {
	switch k {
	case DynamicWorkspaces:
		return "/org/pantheon/desktop/gala/behavior/dynamic-workspaces"
	case EdgeTiling:
		return "/org/gnome/mutter/edge-tiling"
	case Animations:
		return "/org/pantheon/desktop/gala/animations/enable-animations"
	default:
		return ""
	}
}

// String returns the short name used on the command line.
func (k Key) String() string {
	switch k {
	case DynamicWorkspaces:
		return "dynamic-workspaces"
	case EdgeTiling:
		return "edge-tiling"
	case Animations:
		return "animations"
	default:
		return "unknown"
	}
}

// Label returns the human readable title shown in the panels.
func (k Key) Label() string {
	switch k {
	case DynamicWorkspaces:
		return "Dynamic workspaces"
	case EdgeTiling:
		return "Edge tiling"
	case Animations:
		return "Animations"
	default:
		return "Unknown"
	}
}

// ParseKey resolves a short name or full key path.
func ParseKey(s string) (Key, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range Keys {
		if s == k.String() || s == k.Path() {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown setting %q", s)
}

// Settings is a snapshot of the three preferences.
type Settings struct {
	DynamicWorkspaces bool
	EdgeTiling        bool
	Animations        bool
}

// Get returns the value of k in s.
func (s Settings) Get(k Key) bool {
	switch k {
	case DynamicWorkspaces:
		return s.DynamicWorkspaces
	case EdgeTiling:
		return s.EdgeTiling
	case Animations:
		return s.Animations
	default:
		return false
	}
}

// With returns a copy of s with k set to v.
func (s Settings) With(k Key, v bool) Settings {
	switch k {
	case DynamicWorkspaces:
		s.DynamicWorkspaces = v
	case EdgeTiling:
		s.EdgeTiling = v
	case Animations:
		s.Animations = v
	}
	return s
}

// Backend is a boolean key-value preference service.
type Backend interface {
	ReadBool(path string) (bool, error)
	WriteBool(path string, value bool) error
}

// Store loads and saves Settings through a Backend.
type Store struct {
	backend Backend
}

// NewStore creates a store over backend.
func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// Load reads every preference. Unreadable keys are false.
func (s *Store) Load() Settings {
	var out Settings
	for _, k := range Keys {
		v, err := s.backend.ReadBool(k.Path())
		if err != nil {
			common.LogDebug("Reading %s: %v, assuming false", k.Path(), err)
			continue
		}
		out = out.With(k, v)
	}
	return out
}

// Save writes all three keys, dynamic workspaces first. Every key is
// attempted; the failures are joined under common.ErrPreferenceWrite.
func (s *Store) Save(settings Settings) error {
	var errs []error
	for _, k := range Keys {
		if err := s.backend.WriteBool(k.Path(), settings.Get(k)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", k.Path(), err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", common.ErrPreferenceWrite, errors.Join(errs...))
	}
	return nil
}

// Toggle flips k in current and saves the whole snapshot.
// The returned snapshot carries the flip even when saving failed.
func (s *Store) Toggle(current Settings, k Key) (Settings, error) {
	next := current.With(k, !current.Get(k))
	return next, s.Save(next)
}
