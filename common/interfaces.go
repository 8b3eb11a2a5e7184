// Package common provides shared constants, types, and utilities
// used across the XFCE Gala Settings application.
package common

import "context"

// CommandRunner runs an external command and returns its standard output.
// The dconf backend and tests share this seam.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// Notifier defines the interface for sending notifications.
type Notifier interface {
	// Notify sends a notification with the given title and message.
	Notify(title, message string) error
	// NotifyWithIcon sends a notification with a custom icon.
	NotifyWithIcon(title, message, icon string) error
}
