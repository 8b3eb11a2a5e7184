package wm

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yllada/xfce-gala-settings/common"
)

// Environment is the process state the session config location depends on.
// Build it once at startup and pass it to the locator and the switch.
type Environment struct {
	HomeDir      string
	DataDir      string
	TemplatePath string
}

// NewEnvironment builds an Environment from getenv.
// DataDir is $XDG_DATA_HOME when set, $HOME/.config otherwise.
func NewEnvironment(getenv func(string) string, templatePath string) (Environment, error) {
	home := getenv(common.EnvHome)
	if home == "" {
		return Environment{}, fmt.Errorf("%w: %s", common.ErrMissingEnvironment, common.EnvHome)
	}

	dataDir := getenv(common.EnvXDGDataHome)
	if dataDir == "" {
		dataDir = filepath.Join(home, ".config")
	}

	if templatePath == "" {
		templatePath = common.DefaultTemplatePath
	}

	return Environment{
		HomeDir:      home,
		DataDir:      dataDir,
		TemplatePath: templatePath,
	}, nil
}

// EnvironmentFromOS builds an Environment from the process environment.
func EnvironmentFromOS(templatePath string) (Environment, error) {
	return NewEnvironment(os.Getenv, templatePath)
}

// Locator resolves and initializes the per-user session config.
type Locator struct {
	env Environment
}

// NewLocator creates a locator for env.
func NewLocator(env Environment) *Locator {
	return &Locator{env: env}
}

// ResolvePath returns the absolute path of the per-user session config.
func (l *Locator) ResolvePath() (string, error) {
	if l.env.HomeDir == "" {
		return "", fmt.Errorf("%w: %s", common.ErrMissingEnvironment, common.EnvHome)
	}
	return filepath.Join(l.env.DataDir, common.SessionConfigRelPath), nil
}

// EnsureExists copies the system template into place unless the per-user
// file already exists, in which case the template is not touched.
// It reports whether a copy was made.
func (l *Locator) EnsureExists() (bool, error) {
	path, err := l.ResolvePath()
	if err != nil {
		return false, err
	}

	if common.FileExists(path) {
		return false, nil
	}

	if !common.FileExists(l.env.TemplatePath) {
		return false, fmt.Errorf("%w: %s", common.ErrTemplateMissing, l.env.TemplatePath)
	}

	if err := common.CopyFile(l.env.TemplatePath, path); err != nil {
		return false, fmt.Errorf("%w: %s -> %s: %w", common.ErrCopyFailed, l.env.TemplatePath, path, err)
	}

	common.LogInfo("Seeded session config %s from %s", path, l.env.TemplatePath)
	return true, nil
}
