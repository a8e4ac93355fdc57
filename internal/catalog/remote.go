package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const playlistPath = "/api/v1/music/playlist/default"

type playlistResponse struct {
	Data []json.RawMessage `json:"data"`
}

// remoteRecord accepts both the camelCase and snake_case spellings the API
// has used for the same fields.
type remoteRecord struct {
	TrackID      flexString `json:"trackId"`
	TrackIDSnake flexString `json:"track_id"`
	Title        flexString `json:"title"`
	Artist       flexString `json:"artist"`
	Cover        flexString `json:"cover"`
	CoverURL     flexString `json:"coverUrl"`
	CoverSnake   flexString `json:"cover_url"`
	Audio        flexString `json:"audio"`
	AudioURL     flexString `json:"audioUrl"`
	AudioSnake   flexString `json:"audio_url"`
	Lyric        flexString `json:"lyric"`
	LyricURL     flexString `json:"lyricUrl"`
	LyricSnake   flexString `json:"lyric_url"`
	Sort         flexNumber `json:"sort"`
}

// raw converts the record at position i. Records without an id are
// numbered from 1.
func (rec remoteRecord) raw(i int) rawTrack {
	id := firstNonEmpty(string(rec.TrackID), string(rec.TrackIDSnake))
	if strings.TrimSpace(id) == "" {
		id = "remote-" + strconv.Itoa(i+1)
	}
	return rawTrack{
		ID:     id,
		Title:  string(rec.Title),
		Artist: string(rec.Artist),
		Audio:  firstNonEmpty(string(rec.Audio), string(rec.AudioURL), string(rec.AudioSnake)),
		Lyric:  firstNonEmpty(string(rec.Lyric), string(rec.LyricURL), string(rec.LyricSnake)),
		Cover:  firstNonEmpty(string(rec.Cover), string(rec.CoverURL), string(rec.CoverSnake)),
		Sort:   rec.Sort.ptr(),
	}
}

// flexString decodes a JSON string or number; anything else is empty.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] == 'n' {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		*f = ""
		return nil //nolint:nilerr // non-scalar values are treated as missing
	}
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		*f = flexString(strconv.FormatInt(i, 10))
		return nil
	}
	*f = flexString(n.String())
	return nil
}

// flexNumber decodes a JSON number. Strings, booleans and other values
// leave it unset so the track falls back to its position.
type flexNumber struct {
	value float64
	set   bool
}

func (f *flexNumber) UnmarshalJSON(data []byte) error {
	*f = flexNumber{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || (data[0] != '-' && (data[0] < '0' || data[0] > '9')) {
		return nil
	}
	if err := json.Unmarshal(data, &f.value); err != nil {
		*f = flexNumber{}
		return nil //nolint:nilerr // out-of-range numbers are treated as missing
	}
	f.set = true
	return nil
}

func (f flexNumber) ptr() *float64 {
	if !f.set {
		return nil
	}
	v := f.value
	return &v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// fetchRemote reads the default playlist from the API.
func (l *Loader) fetchRemote(ctx context.Context) ([]rawTrack, error) {
	if l.apiBase == "" {
		return nil, errors.New("api base not configured")
	}

	rc, err := l.opener.Open(ctx, l.apiBase+playlistPath)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var resp playlistResponse
	if err := json.NewDecoder(rc).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode playlist: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, ErrNoTracks
	}

	raws := make([]rawTrack, len(resp.Data))
	for i, msg := range resp.Data {
		var rec remoteRecord
		if err := json.Unmarshal(msg, &rec); err != nil {
			// A record that is not an object keeps its slot with no fields.
			rec = remoteRecord{}
		}
		raws[i] = rec.raw(i)
	}
	return raws, nil
}
