package wm

import (
	"fmt"
	"os"
	"strings"

	"github.com/yllada/xfce-gala-settings/common"
)

// Choice is the window manager named by the session config.
type Choice int

const (
	// Unknown means neither token was found in the session config.
	Unknown Choice = iota
	// Xfwm4 is the stock XFCE window manager.
	Xfwm4
	// Gala is the Pantheon window manager.
	Gala
)

// String returns the executable name of the window manager.
func (c Choice) String() string {
	switch c {
	case Xfwm4:
		return "xfwm4"
	case Gala:
		return "gala"
	default:
		return "unknown"
	}
}

// Token returns the quoted form the session config stores.
func (c Choice) Token() string {
	return `"` + c.String() + `"`
}

// Other returns the opposite window manager. Unknown stays Unknown.
func (c Choice) Other() Choice {
	switch c {
	case Xfwm4:
		return Gala
	case Gala:
		return Xfwm4
	default:
		return Unknown
	}
}

// Known reports whether c names a window manager.
func (c Choice) Known() bool {
	return c == Xfwm4 || c == Gala
}

// ParseChoice maps an executable name back to a Choice.
func ParseChoice(name string) Choice {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "xfwm4":
		return Xfwm4
	case "gala":
		return Gala
	default:
		return Unknown
	}
}

// Classify inspects session config text. The xfwm4 token wins when a
// malformed file carries both.
func Classify(content string) Choice {
	switch {
	case strings.Contains(content, Xfwm4.Token()):
		return Xfwm4
	case strings.Contains(content, Gala.Token()):
		return Gala
	default:
		return Unknown
	}
}

// Launcher starts a window manager in replace mode.
type Launcher interface {
	Replace(choice Choice) error
}

// Switch reads and flips the window manager in the session config.
type Switch struct {
	locator  *Locator
	launcher Launcher
}

// NewSwitch creates a switch over the file resolved by locator.
func NewSwitch(locator *Locator, launcher Launcher) *Switch {
	return &Switch{
		locator:  locator,
		launcher: launcher,
	}
}

// Path returns the session config path the switch operates on.
func (s *Switch) Path() (string, error) {
	return s.locator.ResolvePath()
}

// Current returns the configured window manager.
func (s *Switch) Current() (Choice, error) {
	path, err := s.locator.ResolvePath()
	if err != nil {
		return Unknown, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Unknown, fmt.Errorf("%w: %w", common.ErrReadFailed, err)
	}
	return Classify(string(data)), nil
}

// Toggle swaps every occurrence of the configured token for the other one,
// rewrites the file and starts the new window manager with --replace.
//
// The file is written even when neither token is present, in which case
// its bytes are unchanged and no process is started. A failed start is
// returned wrapped in common.ErrProcessSpawnFailed together with the new
// choice, which is already on disk.
func (s *Switch) Toggle() (Choice, error) {
	path, err := s.locator.ResolvePath()
	if err != nil {
		return Unknown, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return Unknown, fmt.Errorf("%w: %w", common.ErrReadFailed, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Unknown, fmt.Errorf("%w: %w", common.ErrReadFailed, err)
	}

	content := string(data)
	current := Classify(content)
	next := current.Other()
	if next != Unknown {
		content = strings.ReplaceAll(content, current.Token(), next.Token())
	}

	if err := os.WriteFile(path, []byte(content), info.Mode().Perm()); err != nil {
		return Unknown, fmt.Errorf("%w: %w", common.ErrWriteFailed, err)
	}

	if next == Unknown {
		common.LogWarn("No window manager token in %s, left unchanged", path)
		return Unknown, nil
	}

	common.LogInfo("Session config now selects %s", next)
	return next, s.Apply(next)
}

// Apply starts choice with --replace. Unknown is a no-op.
func (s *Switch) Apply(choice Choice) error {
	if !choice.Known() || s.launcher == nil {
		return nil
	}
	if err := s.launcher.Replace(choice); err != nil {
		return fmt.Errorf("%w: %s: %w", common.ErrProcessSpawnFailed, choice, err)
	}
	return nil
}
