package ui

import (
	"context"
	"os"
	"path/filepath"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/yllada/xfce-gala-settings/common"
	"github.com/yllada/xfce-gala-settings/config"
	"github.com/yllada/xfce-gala-settings/settings"
	"github.com/yllada/xfce-gala-settings/wm"
)

// Panel is the session the window edits.
type Panel interface {
	ConfigPath() string
	CurrentWindowManager() (wm.Choice, error)
	ToggleWindowManager() (wm.Choice, error)
	LoadSettings() settings.Settings
	ToggleSetting(k settings.Key) (settings.Settings, error)
}

// Application represents the main application
type Application struct {
	app     *gtk.Application
	window  *MainWindow
	panel   Panel
	config  *config.Config
	version string
}

// NewApplication creates a new application
func NewApplication(panel Panel, cfg *config.Config, version string) *Application {
	app := gtk.NewApplication(common.AppID, gio.ApplicationFlagsNone)

	application := &Application{
		app:     app,
		panel:   panel,
		config:  cfg,
		version: version,
	}

	app.ConnectActivate(application.onActivate)

	return application
}

// Run runs the application and blocks until the window is closed or ctx
// is cancelled.
func (a *Application) Run(ctx context.Context, args []string) int {
	stop := context.AfterFunc(ctx, func() {
		glib.IdleAdd(a.Quit)
	})
	defer stop()

	return a.app.Run(args)
}

// onActivate is called when the application is activated
func (a *Application) onActivate() {
	// A second activation only raises the existing window.
	if a.window != nil {
		a.window.window.Present()
		return
	}

	a.setupAppIcon()
	LoadStyles()

	a.window = NewMainWindow(a)
	a.window.Show()
}

// setupAppIcon sets up the application icon
func (a *Application) setupAppIcon() {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return
	}

	iconTheme := gtk.IconThemeGetForDisplay(display)
	if iconTheme == nil {
		return
	}

	// From executable directory
	if execPath, err := os.Executable(); err == nil {
		iconTheme.AddSearchPath(filepath.Join(filepath.Dir(execPath), "assets", "icons"))
	}

	gtk.WindowSetDefaultIconName("preferences-system-windows")
}

// Quit closes the application
func (a *Application) Quit() {
	a.app.Quit()
}
