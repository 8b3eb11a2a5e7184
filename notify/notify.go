// Package notify sends desktop notifications over the session bus using
// the org.freedesktop.Notifications interface.
package notify

import (
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/yllada/xfce-gala-settings/common"
)

const (
	busName    = "org.freedesktop.Notifications"
	objectPath = "/org/freedesktop/Notifications"
	method     = busName + ".Notify"

	// expireDefault lets the notification server pick the timeout.
	expireDefault = int32(-1)
)

// Icons used for the panel's notifications.
const (
	IconInfo  = "preferences-system-windows"
	IconError = "dialog-error"
)

// Caller is the subset of *dbus.Object the notifier needs.
type Caller interface {
	Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// DBusNotifier implements common.Notifier.
type DBusNotifier struct {
	appName string
	obj     Caller
}

// New connects to the session bus.
func New(appName string) (*DBusNotifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("connecting to session bus: %w", err)
	}
	return NewWithCaller(appName, conn.Object(busName, dbus.ObjectPath(objectPath))), nil
}

// NewWithCaller creates a notifier sending through obj.
func NewWithCaller(appName string, obj Caller) *DBusNotifier {
	return &DBusNotifier{appName: appName, obj: obj}
}

// Notify sends a notification with the default icon.
func (n *DBusNotifier) Notify(title, message string) error {
	return n.NotifyWithIcon(title, message, IconInfo)
}

// NotifyWithIcon sends a notification with icon.
func (n *DBusNotifier) NotifyWithIcon(title, message, icon string) error {
	call := n.obj.Call(method, 0,
		n.appName,
		uint32(0),
		icon,
		title,
		message,
		[]string{},
		map[string]dbus.Variant{},
		expireDefault,
	)
	if call.Err != nil {
		return fmt.Errorf("sending notification: %w", call.Err)
	}
	return nil
}

// Discard is a notifier that only logs, used when notifications are off
// or the session bus is unreachable.
type Discard struct{}

// Notify logs the notification at debug level.
func (Discard) Notify(title, message string) error {
	common.LogDebug("Notification suppressed: %s: %s", title, message)
	return nil
}

// NotifyWithIcon logs the notification at debug level.
func (d Discard) NotifyWithIcon(title, message, _ string) error {
	return d.Notify(title, message)
}

// FromConfig returns a bus notifier when enabled and reachable, Discard
// otherwise.
func FromConfig(enabled bool) common.Notifier {
	if !enabled {
		return Discard{}
	}
	n, err := New(common.AppName)
	if err != nil {
		common.LogWarn("Desktop notifications unavailable: %v", err)
		return Discard{}
	}
	return n
}
