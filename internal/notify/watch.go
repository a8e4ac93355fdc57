package notify

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/llehouerou/cadence/internal/asset"
	"github.com/llehouerou/cadence/internal/playback"
)

// LocalPather maps non-URL asset references to files.
type LocalPather interface {
	LocalPath(ref string) string
}

// WatchTracks posts a notification for every track selection, replacing
// the previous one. It returns when the subscription ends.
func WatchTracks(sub *playback.Subscription, n Notifier, art LocalPather, logger zerolog.Logger) {
	var lastID uint32
	for {
		select {
		case e := <-sub.TrackChanged:
			id, err := n.Notify(ForTrack(e.Current, iconPath(art, e.Current.CoverURL), lastID))
			if err != nil {
				logger.Debug().Err(err).Str("track", e.Current.ID).Msg("track notification failed")
				continue
			}
			lastID = id
		case <-sub.Done:
			if lastID != 0 {
				_ = n.Close(lastID)
			}
			return
		}
	}
}

// iconPath returns a local file for the cover, or "" for remote or missing
// covers; notification servers only take paths or icon names.
func iconPath(art LocalPather, ref string) string {
	if ref == "" || asset.IsRemote(ref) || art == nil {
		return ""
	}
	path, err := filepath.Abs(art.LocalPath(ref))
	if err != nil {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
