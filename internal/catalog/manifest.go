package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// manifest is the document produced by the asset sync job. Only tracks are
// consumed here.
type manifest struct {
	Version     int               `json:"version"`
	GeneratedAt string            `json:"generatedAt"`
	Tracks      []manifestTrack   `json:"tracks"`
	Backgrounds []json.RawMessage `json:"backgrounds"`
}

type manifestTrack struct {
	ID       flexString `json:"id"`
	Title    string     `json:"title"`
	Artist   string     `json:"artist"`
	Audio    string     `json:"audio"`
	Lyric    string     `json:"lyric"`
	Cover    string     `json:"cover"`
	Sort     flexNumber `json:"sort"`
	Duration string     `json:"duration"`
}

func (l *Loader) fetchManifest(ctx context.Context) ([]rawTrack, error) {
	if l.manifestPath == "" {
		return nil, errors.New("manifest path not configured")
	}

	rc, err := l.opener.Open(ctx, l.manifestPath)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var m manifest
	if err := json.NewDecoder(rc).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if len(m.Tracks) == 0 {
		return nil, ErrNoTracks
	}

	raws := make([]rawTrack, len(m.Tracks))
	for i, mt := range m.Tracks {
		id := string(mt.ID)
		if strings.TrimSpace(id) == "" {
			id = "track-" + strconv.Itoa(i)
		}
		raws[i] = rawTrack{
			ID:       id,
			Title:    mt.Title,
			Artist:   mt.Artist,
			Audio:    mt.Audio,
			Lyric:    mt.Lyric,
			Cover:    mt.Cover,
			Sort:     mt.Sort.ptr(),
			Duration: mt.Duration,
		}
	}
	return raws, nil
}
