// Package cli provides command-line interface functionality for
// XFCE Gala Settings. It lets users inspect and change the window manager
// and its preferences from a terminal or a script, without opening the
// panel window.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/yllada/xfce-gala-settings/common"
	"github.com/yllada/xfce-gala-settings/history"
	"github.com/yllada/xfce-gala-settings/panel"
	"github.com/yllada/xfce-gala-settings/settings"
	"github.com/yllada/xfce-gala-settings/wm"
)

// HistoryReader lists journal entries.
type HistoryReader interface {
	Recent(ctx context.Context, limit int) ([]history.Change, error)
}

// CLI represents the command-line interface.
type CLI struct {
	manager *panel.Manager
	journal HistoryReader
	out     io.Writer
	// running reports the live window manager; replaced in tests.
	running func(ctx context.Context) (wm.Choice, error)
}

// New creates a new CLI instance writing to out. journal may be nil.
func New(manager *panel.Manager, journal HistoryReader, out io.Writer) *CLI {
	return &CLI{
		manager: manager,
		journal: journal,
		out:     out,
		running: wm.Running,
	}
}

// Status prints the configured and running window manager and the three
// preferences.
func (c *CLI) Status(ctx context.Context) error {
	configured, err := c.manager.CurrentWindowManager()
	if err != nil {
		return err
	}

	scanCtx, cancel := context.WithTimeout(ctx, common.ProcessScanTimeout)
	defer cancel()
	running, err := c.running(scanCtx)
	runningText := running.String()
	if err != nil {
		common.LogDebug("Process scan failed: %v", err)
		runningText = "-"
	}

	current := c.manager.LoadSettings()

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Session config:\t%s\n", c.manager.ConfigPath())
	fmt.Fprintf(w, "Window manager:\t%s\n", configured)
	fmt.Fprintf(w, "Running:\t%s\n", runningText)
	for _, k := range settings.Keys {
		fmt.Fprintf(w, "%s:\t%s\n", k.Label(), onOff(current.Get(k)))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if configured == wm.Unknown {
		fmt.Fprintf(c.out, "\nCannot determine the window manager, check %s\n", c.manager.ConfigPath())
	}
	return nil
}

// CurrentWindowManager prints the configured window manager name.
func (c *CLI) CurrentWindowManager() error {
	choice, err := c.manager.CurrentWindowManager()
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, choice)
	return nil
}

// ToggleWindowManager switches to the other window manager.
// A replace command that fails to start is printed as a warning.
func (c *CLI) ToggleWindowManager() error {
	choice, err := c.manager.ToggleWindowManager()
	switch {
	case errors.Is(err, common.ErrProcessSpawnFailed):
		fmt.Fprintf(c.out, "✓ Session config now uses %s\n", choice)
		fmt.Fprintf(c.out, "  Warning: %v\n", err)
		return nil
	case err != nil:
		return err
	case choice == wm.Unknown:
		return fmt.Errorf("cannot determine the window manager, check %s", c.manager.ConfigPath())
	}

	fmt.Fprintf(c.out, "✓ Switched to %s\n", choice)
	return nil
}

// ListSettings prints every preference with its key path.
func (c *CLI) ListSettings() error {
	current := c.manager.LoadSettings()

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVALUE\tKEY")
	fmt.Fprintln(w, "----\t-----\t---")
	for _, k := range settings.Keys {
		fmt.Fprintf(w, "%s\t%s\t%s\n", k, onOff(current.Get(k)), k.Path())
	}
	return w.Flush()
}

// ToggleSetting flips the preference called name.
func (c *CLI) ToggleSetting(name string) error {
	k, err := settings.ParseKey(name)
	if err != nil {
		return err
	}

	c.manager.LoadSettings()
	current, err := c.manager.ToggleSetting(k)
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", k, err)
	}

	fmt.Fprintf(c.out, "✓ %s %s\n", k.Label(), onOff(current.Get(k)))
	return nil
}

// History prints the most recent changes.
func (c *CLI) History(ctx context.Context, limit int) error {
	if c.journal == nil {
		fmt.Fprintln(c.out, "History is disabled (record_history: false).")
		return nil
	}

	changes, err := c.journal.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(changes) == 0 {
		fmt.Fprintln(c.out, "No changes recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tSETTING\tCHANGE\tSESSION\tNOTE")
	fmt.Fprintln(w, "----\t-------\t------\t-------\t----")
	for _, ch := range changes {
		// Truncate session ID for display
		session := ch.SessionID
		if len(session) > 8 {
			session = session[:8]
		}
		fmt.Fprintf(w, "%s\t%s\t%s → %s\t%s\t%s\n",
			ch.ChangedAt.Format("2006-01-02 15:04:05"), ch.Subject, ch.OldValue, ch.NewValue, session, ch.Note)
	}
	return w.Flush()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
