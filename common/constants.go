// Package common provides shared constants, types, and utilities
// used across the XFCE Gala Settings application.
package common

import "time"

// Application metadata.
const (
	// AppID is the unique identifier for the application.
	AppID = "org.xfce.gala-settings"
	// AppName is the display name of the application.
	AppName = "XFCE Gala Settings"
	// ConfigDirName is the name of the application's own XDG directories.
	ConfigDirName = "xfce-gala-settings"
)

// File names used by the application.
const (
	ConfigFileName  = "config.yaml"
	HistoryFileName = "history.db"
	LogFileName     = "xfce-gala-settings.log"
	LockFileName    = "xfce-gala-settings.lock"
)

// Session config locations.
const (
	// SessionConfigRelPath is the session config file below the data directory.
	SessionConfigRelPath = "xfce4/xfconf/xfce-perchannel-xml/xfce4-session.xml"
	// DefaultTemplatePath is the system-wide session config used to seed
	// the per-user copy.
	DefaultTemplatePath = "/etc/xdg/" + SessionConfigRelPath
)

// Environment variables read at startup.
const (
	EnvHome        = "HOME"
	EnvXDGDataHome = "XDG_DATA_HOME"
)

// ReplaceFlag asks a window manager to take over from the running one.
const ReplaceFlag = "--replace"

// Preference backends.
const (
	BackendDconf     = "dconf"
	BackendGSettings = "gsettings"
)

// Timeouts.
const (
	// CommandTimeout bounds a single dconf invocation.
	CommandTimeout = 5 * time.Second
	// ProcessScanTimeout bounds the running compositor lookup.
	ProcessScanTimeout = 3 * time.Second
)

// UI constants.
const (
	DefaultWindowWidth  = 380
	DefaultWindowHeight = 320
	DialogMargin        = 24
	// HistoryLimit is the default number of journal rows printed.
	HistoryLimit = 20
)
