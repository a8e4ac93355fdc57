package playback

import (
	"github.com/llehouerou/cadence/internal/catalog"
	"github.com/llehouerou/cadence/internal/errmsg"
	"github.com/llehouerou/cadence/internal/lyrics"
)

// fetchLyrics loads the lyrics for a selection. The result is dropped when
// another selection happened meanwhile; a failure yields no lyrics.
func (c *Controller) fetchLyrics(seq uint64, track catalog.Track) {
	lines, err := c.fetcher.Fetch(c.ctx, track.LyricURL)
	if err != nil {
		c.log.Debug().Msg(errmsg.FormatWith(errmsg.OpLyricFetch, track.ID, err))
		lines = nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || seq != c.selection || c.currentIDLocked() != track.ID {
		return
	}
	c.lines = lines
	c.lyricsBusy = false
	c.lyricIndex = lyrics.Index(c.lines, c.position)
	c.publishLyricLocked()
	c.publishStateLocked()
}
