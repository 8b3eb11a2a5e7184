// Package main provides the entry point for XFCE Gala Settings.
// XFCE Gala Settings is a small settings panel that switches an XFCE
// session between the xfwm4 and Gala window managers and edits three of
// Gala's behaviour preferences.
//
// Features:
//   - GTK4 panel window (default)
//   - Terminal UI for keyboard-only sessions (--tui)
//   - Command-line interface for scripting
//   - Change history kept in a local journal
//
// Usage:
//
//	xfce-gala-settings [command] [flags]
//
// Environment:
//
//	HOME must be set. XDG_DATA_HOME, when set, moves the per-user session
//	config; it defaults to $HOME/.config.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"

	"github.com/yllada/xfce-gala-settings/common"
)

// Build-time variables injected via ldflags (-X main.appVersion=x.y.z)
// Default values are used for local development builds
var (
	appVersion = "dev"
	buildTime  = "unknown"
	commitSHA  = "unknown"
)

func main() {
	// Handle shutdown signals (SIGINT, SIGTERM)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCommand()

	err := fang.Execute(
		ctx,
		root,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s", appVersion, commitSHA, buildTime)),
	)
	// os.Exit skips deferred calls.
	if closeErr := common.CloseLogger(); closeErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: closing log file: %v\n", closeErr)
	}
	if err != nil {
		// Startup failures get their own status so session scripts can
		// tell them from a failed change.
		if common.IsFatal(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
