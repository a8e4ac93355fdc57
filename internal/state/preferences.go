package state

import (
	"encoding/json"
	"math"
)

// Preferences is the durable subset of playback state. A nil field means
// "absent": Load leaves it nil when missing or malformed, Save leaves the
// stored value untouched.
type Preferences struct {
	PlayMode         *string  `json:"playMode,omitempty"`
	CurrentTrackID   *string  `json:"currentTrackId,omitempty"`
	Volume           *float64 `json:"volume,omitempty"`
	IsPlayerExpanded *bool    `json:"isPlayerExpanded,omitempty"`
	IsPinned         *bool    `json:"isPinned,omitempty"`
	ListOpen         *bool    `json:"listOpen,omitempty"`
	VisualizerMode   *string  `json:"visualizerMode,omitempty"`
}

// Ptr returns a pointer to v, for building partial Preferences.
func Ptr[T any](v T) *T {
	return &v
}

// IsEmpty reports whether no field is set.
func (p Preferences) IsEmpty() bool {
	return p == Preferences{}
}

// merge overlays the set fields of other onto p.
func (p Preferences) merge(other Preferences) Preferences {
	if other.PlayMode != nil {
		p.PlayMode = other.PlayMode
	}
	if other.CurrentTrackID != nil {
		p.CurrentTrackID = other.CurrentTrackID
	}
	if other.Volume != nil {
		p.Volume = other.Volume
	}
	if other.IsPlayerExpanded != nil {
		p.IsPlayerExpanded = other.IsPlayerExpanded
	}
	if other.IsPinned != nil {
		p.IsPinned = other.IsPinned
	}
	if other.ListOpen != nil {
		p.ListOpen = other.ListOpen
	}
	if other.VisualizerMode != nil {
		p.VisualizerMode = other.VisualizerMode
	}
	return p
}

// fields returns the set fields keyed by their JSON name.
func (p Preferences) fields() (map[string]json.RawMessage, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	out := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// decodeBlob parses a stored blob into its raw top-level fields.
// Anything that is not a JSON object yields an empty map.
func decodeBlob(blob string) map[string]json.RawMessage {
	out := map[string]json.RawMessage{}
	if blob == "" {
		return out
	}
	if err := json.Unmarshal([]byte(blob), &out); err != nil || out == nil {
		return map[string]json.RawMessage{}
	}
	return out
}

// preferencesFrom decodes each known field independently so that one
// wrong-typed value does not discard the others.
func preferencesFrom(raw map[string]json.RawMessage) Preferences {
	var p Preferences
	p.PlayMode = decodeField[string](raw, "playMode")
	p.CurrentTrackID = decodeField[string](raw, "currentTrackId")
	p.Volume = decodeField[float64](raw, "volume")
	if p.Volume != nil && (math.IsNaN(*p.Volume) || math.IsInf(*p.Volume, 0)) {
		p.Volume = nil
	}
	p.IsPlayerExpanded = decodeField[bool](raw, "isPlayerExpanded")
	p.IsPinned = decodeField[bool](raw, "isPinned")
	p.ListOpen = decodeField[bool](raw, "listOpen")
	p.VisualizerMode = decodeField[string](raw, "visualizerMode")
	return p
}

func decodeField[T any](raw map[string]json.RawMessage, key string) *T {
	msg, ok := raw[key]
	if !ok || string(msg) == "null" {
		return nil
	}
	var v T
	if err := json.Unmarshal(msg, &v); err != nil {
		return nil
	}
	return &v
}
