//go:build linux

package notify

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	busName   = "org.freedesktop.Notifications"
	busPath   = "/org/freedesktop/Notifications"
	appName   = "Cadence"
	trackIcon = "audio-x-generic"

	urgencyLow byte = 0
)

type busNotifier struct {
	obj dbus.BusObject
}

// New connects to the session bus notification server.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return Disabled{}, fmt.Errorf("session bus: %w", err)
	}
	return &busNotifier{obj: conn.Object(busName, busPath)}, nil
}

// Notify calls org.freedesktop.Notifications.Notify(app_name, replaces_id,
// app_icon, summary, body, actions, hints, expire_timeout).
func (b *busNotifier) Notify(n Notification) (uint32, error) {
	call := b.obj.Call(busName+".Notify", 0,
		appName,
		n.ReplacesID,
		appIcon(n),
		n.Summary,
		n.Body,
		[]string{},
		hints(n),
		TrackTimeout,
	)
	if call.Err != nil {
		return 0, call.Err
	}
	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (b *busNotifier) Close(id uint32) error {
	return b.obj.Call(busName+".CloseNotification", 0, id).Err
}

func appIcon(n Notification) string {
	if n.ImagePath != "" {
		return n.ImagePath
	}
	return trackIcon
}

// hints marks the popup as a low-urgency transient one; servers that
// support it show the cover through image-path.
func hints(n Notification) map[string]dbus.Variant {
	h := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(urgencyLow),
		"desktop-entry": dbus.MakeVariant("cadence"),
		"transient":     dbus.MakeVariant(true),
		"category":      dbus.MakeVariant("x-cadence.track"),
	}
	if n.ImagePath != "" {
		h["image-path"] = dbus.MakeVariant("file://" + n.ImagePath)
	}
	return h
}
