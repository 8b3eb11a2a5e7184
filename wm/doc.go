// Package wm keeps the XFCE session config in sync with the window manager
// the user picked.
//
// The session config (xfce4-session.xml) names the window manager in a quoted
// attribute value. This package never parses the XML: it looks for the quoted
// "xfwm4" or "gala" token and swaps every occurrence of one for the other.
// The two tokens never overlap, so a plain substring replacement is enough.
//
// # Components
//
//   - Environment: home, data and template directories captured once at startup
//   - Locator: resolves the per-user session config and seeds it from the template
//   - Switch: classifies and toggles the configured window manager
//   - Launcher: starts "<manager> --replace" without waiting for it
//
// # Errors
//
// Startup failures wrap common.ErrMissingEnvironment, common.ErrTemplateMissing
// or common.ErrCopyFailed. A failed read never leads to a write. A failed
// replace command wraps common.ErrProcessSpawnFailed and is returned alongside
// the choice that was already persisted.
package wm
