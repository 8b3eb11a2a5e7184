// Package settings reads and writes the three window-manager preferences
// the panel exposes: dynamic workspaces, edge tiling and animations.
//
// Each preference is a boolean at a fixed dconf key path. A Store reads
// them through a Backend: the dconf command line tool by default, or
// GSettings through GIO when the schemas are installed.
//
// Reads never fail: an unset, unreadable or non-boolean key is reported as
// false. Writes always cover all three keys in a fixed order and keep going
// after a failed key, so one broken schema does not block the others.
package settings
