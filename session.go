package main

import (
	"errors"

	"github.com/yllada/xfce-gala-settings/cli"
	"github.com/yllada/xfce-gala-settings/common"
	"github.com/yllada/xfce-gala-settings/config"
	"github.com/yllada/xfce-gala-settings/history"
	"github.com/yllada/xfce-gala-settings/notify"
	"github.com/yllada/xfce-gala-settings/panel"
	"github.com/yllada/xfce-gala-settings/settings"
	"github.com/yllada/xfce-gala-settings/wm"
)

// session is everything a command needs, wired from the config file and
// the process environment.
type session struct {
	config  *config.Config
	journal *history.Journal
	manager *panel.Manager
}

// openSession resolves the session config, seeding it from the template
// when missing, and builds the panel manager.
func openSession() (*session, error) {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		common.LogWarn("Using default configuration: %v", err)
	}

	env, err := wm.EnvironmentFromOS(cfg.TemplatePath)
	if err != nil {
		return nil, err
	}

	locator := wm.NewLocator(env)
	if _, err := locator.EnsureExists(); err != nil {
		common.LogError("Session config unavailable: %v", err)
		return nil, err
	}

	s := &session{config: cfg}
	opts := panel.Options{
		Switch:    wm.NewSwitch(locator, wm.NewProcessLauncher()),
		Store:     settings.NewStore(settings.NewBackend(cfg.Backend)),
		Notifier:  notify.FromConfig(cfg.ShowNotifications),
		Reconcile: cfg.ReconcileOnExit,
	}

	if cfg.RecordHistory {
		journal, err := history.Open(history.DefaultPath())
		if err != nil {
			common.LogWarn("History disabled: %v", err)
		} else {
			s.journal = journal
			opts.Recorder = journal
		}
	}

	s.manager, err = panel.NewManager(opts)
	if err != nil {
		s.Close()
		return nil, common.WrapError(err, "failed to start panel session")
	}
	return s, nil
}

// historyReader returns the journal as a reader, or nil when disabled.
func (s *session) historyReader() cli.HistoryReader {
	if s.journal == nil {
		return nil
	}
	return s.journal
}

// finish runs the end-of-session window manager check. A failed restart
// is reported but does not fail the command.
func (s *session) finish() error {
	err := s.manager.Finish()
	if errors.Is(err, common.ErrProcessSpawnFailed) {
		return nil
	}
	return err
}

// Close releases the journal.
func (s *session) Close() {
	if s.journal == nil {
		return
	}
	if err := s.journal.Close(); err != nil {
		common.LogDebug("Closing history: %v", err)
	}
}
