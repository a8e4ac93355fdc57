//go:build !linux

package notify

// New returns Disabled; popups are only implemented on the freedesktop bus.
func New() (Notifier, error) {
	return Disabled{}, nil
}
