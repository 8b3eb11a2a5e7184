package ui

import (
	"os"

	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/yllada/xfce-gala-settings/common"
)

// ShowStartupError shows a blocking error window for a session that could
// not be opened and returns once the user closes it. It runs its own GTK
// application because the panel never started.
func ShowStartupError(title, message string) {
	app := gtk.NewApplication(common.AppID, gio.ApplicationNonUnique)
	app.ConnectActivate(func() {
		LoadStyles()
		window := newErrorWindow(title, message)
		window.SetApplication(app)
		window.Show()
	})

	if code := app.Run(os.Args[:1]); code != 0 {
		common.LogDebug("Startup error window exited with code %d", code)
	}
}
