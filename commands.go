package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"
	"github.com/allan-simon/go-singleinstance"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yllada/xfce-gala-settings/cli"
	"github.com/yllada/xfce-gala-settings/common"
	"github.com/yllada/xfce-gala-settings/config"
	"github.com/yllada/xfce-gala-settings/tui"
	"github.com/yllada/xfce-gala-settings/ui"
)

// Global flags
var (
	verbose bool
	useTUI  bool
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "xfce-gala-settings",
		Short: "Switch XFCE between xfwm4 and Gala",
		Long: `XFCE Gala Settings

Selects the window manager an XFCE session starts (xfwm4 or Gala) and
edits Gala's dynamic workspaces, edge tiling and animation preferences.
Without a command the GTK panel opens.`,
		Example: `  # Open the panel
  xfce-gala-settings

  # Open the panel in the terminal
  xfce-gala-settings --tui

  # Switch window manager from a script
  xfce-gala-settings wm toggle

  # Turn edge tiling on or off
  xfce-gala-settings settings toggle edge-tiling`,
		Version:      appVersion,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initLogging(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if useTUI {
				return runTUI(cmd)
			}
			return runGUI(cmd)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	root.Flags().BoolVar(&useTUI, "tui", false, "Run the panel in the terminal instead of a window")

	root.AddCommand(
		newStatusCommand(),
		newWMCommand(),
		newSettingsCommand(),
		newHistoryCommand(),
		newConfigCommand(),
	)
	return root
}

// initLogging sets up the logger. Interactive panels log at INFO; plain
// commands stay quiet on stderr unless --verbose is given.
func initLogging(cmd *cobra.Command) error {
	level := common.LevelWarn
	if cmd.Parent() == nil {
		level = common.LevelInfo
	}
	if verbose {
		level = common.LevelDebug
	}

	if err := common.InitLogger(common.LogConfig{
		Level:      level,
		EnableFile: true,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize file logging: %v\n", err)
	}
	return nil
}

func runGUI(cmd *cobra.Command) error {
	lock, err := acquireLock()
	if err != nil {
		return err
	}
	defer releaseLock(lock)

	s, err := openSession()
	if err != nil {
		// Desktop launches have no terminal to print to.
		if title, message, ok := startupErrorMessage(err); ok {
			ui.ShowStartupError(title, message)
		}
		return err
	}
	defer s.Close()

	common.LogInfo("Starting %s v%s", common.AppName, appVersion)
	app := ui.NewApplication(s.manager, s.config, appVersion)
	// GTK only sees the program name; cobra owns the flags.
	exitCode := app.Run(cmd.Context(), os.Args[:1])
	if exitCode != 0 {
		common.LogWarn("Application exited with code %d", exitCode)
	}

	if err := s.finish(); err != nil {
		common.LogWarn("%v", err)
	}
	if exitCode != 0 {
		return fmt.Errorf("application exited with code %d", exitCode)
	}
	return nil
}

// startupErrorMessage returns the title and text of the window shown when
// the session cannot be opened. ok is false for errors that do not stop
// the panel from starting.
func startupErrorMessage(err error) (title, message string, ok bool) {
	if !common.IsFatal(err) {
		return "", "", false
	}

	var fix string
	switch {
	case errors.Is(err, common.ErrMissingEnvironment):
		fix = fmt.Sprintf("Set %s and log in again.", common.EnvHome)
	case errors.Is(err, common.ErrTemplateMissing):
		fix = fmt.Sprintf("Install the XFCE session package, or point template_path in %s at an existing session file.", config.Path())
	case errors.Is(err, common.ErrCopyFailed):
		fix = "Check that your XFCE configuration directory exists and is writable."
	}
	return "Cannot open the session config", err.Error() + "\n\n" + fix, true
}

func runTUI(_ *cobra.Command) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("--tui needs an interactive terminal")
	}

	lock, err := acquireLock()
	if err != nil {
		return err
	}
	defer releaseLock(lock)

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := tui.Run(s.manager); err != nil {
		return err
	}
	return s.finish()
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the configured and running window manager and Gala options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withCLI(cmd, false, func(c *cli.CLI) error {
				return c.Status(cmd.Context())
			})
		},
	}
}

func newWMCommand() *cobra.Command {
	wmCmd := &cobra.Command{
		Use:   "wm",
		Short: "Inspect or switch the session window manager",
	}

	currentCmd := &cobra.Command{
		Use:   "current",
		Short: "Print the configured window manager",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withCLI(cmd, false, func(c *cli.CLI) error {
				return c.CurrentWindowManager()
			})
		},
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle",
		Short: "Switch to the other window manager and start it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withCLI(cmd, true, func(c *cli.CLI) error {
				return c.ToggleWindowManager()
			})
		},
	}

	wmCmd.AddCommand(currentCmd, toggleCmd)
	return wmCmd
}

func newSettingsCommand() *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect or change Gala options",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List Gala options and their values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withCLI(cmd, false, func(c *cli.CLI) error {
				return c.ListSettings()
			})
		},
	}

	toggleCmd := &cobra.Command{
		Use:       "toggle <name>",
		Short:     "Flip one Gala option",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"dynamic-workspaces", "edge-tiling", "animations"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCLI(cmd, true, func(c *cli.CLI) error {
				return c.ToggleSetting(args[0])
			})
		},
	}

	settingsCmd.AddCommand(listCmd, toggleCmd)
	return settingsCmd
}

func newHistoryCommand() *cobra.Command {
	limit := common.HistoryLimit

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withCLI(cmd, false, func(c *cli.CLI) error {
				return c.History(cmd.Context(), limit)
			})
		},
	}
	historyCmd.Flags().IntVarP(&limit, "limit", "n", limit, "Number of changes to show")
	return historyCmd
}

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Application configuration",
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), config.Path())
			return nil
		},
	}

	configCmd.AddCommand(pathCmd)
	return configCmd
}

// withCLI opens a session and runs fn against it. Commands that change
// something take the instance lock first.
func withCLI(cmd *cobra.Command, mutating bool, fn func(*cli.CLI) error) error {
	if mutating {
		lock, err := acquireLock()
		if err != nil {
			return err
		}
		defer releaseLock(lock)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	return fn(cli.New(s.manager, s.historyReader(), cmd.OutOrStdout()))
}

func lockPath() string {
	return filepath.Join(xdg.RuntimeDir, common.LockFileName)
}

func acquireLock() (*os.File, error) {
	lock, err := singleinstance.CreateLockFile(lockPath())
	if err != nil {
		pid := "another process"
		if data, readErr := os.ReadFile(lockPath()); readErr == nil && len(data) > 0 {
			if n, convErr := strconv.Atoi(string(data)); convErr == nil {
				pid = "PID " + strconv.Itoa(n)
			}
		}
		return nil, fmt.Errorf("%w (%s)", common.ErrAlreadyRunning, pid)
	}
	return lock, nil
}

func releaseLock(lock *os.File) {
	path := lock.Name()
	if err := lock.Close(); err != nil {
		common.LogDebug("Closing lock file: %v", err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		common.LogDebug("Removing lock file: %v", err)
	}
}
