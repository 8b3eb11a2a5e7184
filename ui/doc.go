// Package ui provides the GTK4 panel window for XFCE Gala Settings.
//
// The window has two parts: a check box selecting Gala or xfwm4 as the
// session window manager, and a "Gala options" card with one switch per
// preference. When the session config names neither window manager a
// red banner points at the file and every control is disabled.
//
// # Thread Safety
//
// GTK operations must execute on the main thread. Toggles run the
// panel operation in a goroutine and apply the result with
// glib.IdleAdd():
//
//	go func() {
//	    choice, err := panel.ToggleWindowManager()
//	    glib.IdleAdd(func() {
//	        mw.setChoice(choice)
//	    })
//	}()
//
// # File Organization
//
//   - app.go: Application lifecycle and main window creation
//   - main_window.go: Panel layout, toggles and error dialogs
//   - preferences.go: Dialog editing the application's config file
//   - styles.go: CSS styling and shared row builders
package ui
