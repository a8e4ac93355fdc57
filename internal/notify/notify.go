// Package notify shows a desktop popup whenever the playing track changes.
package notify

import (
	"github.com/llehouerou/cadence/internal/catalog"
)

// TrackTimeout is how long a track popup stays up, in ms.
const TrackTimeout int32 = 5000

// Notification is a track-change popup.
type Notification struct {
	TrackID    string
	Summary    string // track title
	Body       string // artist, with the duration once it is known
	ImagePath  string // local cover file; "" falls back to a generic icon
	ReplacesID uint32 // popup to update in place, 0 for a new one
}

// ForTrack builds the popup for t, replacing the popup with id replaces.
func ForTrack(t catalog.Track, imagePath string, replaces uint32) Notification {
	body := t.Artist
	if t.DurationLabel != "" && t.DurationLabel != catalog.PlaceholderDuration {
		body += " · " + t.DurationLabel
	}
	return Notification{
		TrackID:    t.ID,
		Summary:    t.Title,
		Body:       body,
		ImagePath:  imagePath,
		ReplacesID: replaces,
	}
}

// Notifier posts and withdraws popups.
type Notifier interface {
	// Notify shows n and returns the id the server assigned.
	Notify(n Notification) (uint32, error)
	Close(id uint32) error
}

// Disabled drops every popup.
type Disabled struct{}

func (Disabled) Notify(Notification) (uint32, error) { return 0, nil }
func (Disabled) Close(uint32) error                  { return nil }
