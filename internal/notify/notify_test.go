package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/cadence/internal/catalog"
)

func TestForTrack(t *testing.T) {
	tests := []struct {
		name  string
		track catalog.Track
		want  string
	}{
		{"duration known", catalog.Track{ID: "a", Title: "Alpha", Artist: "X", DurationLabel: "03:05"}, "X · 03:05"},
		{"placeholder", catalog.Track{ID: "a", Title: "Alpha", Artist: "X", DurationLabel: catalog.PlaceholderDuration}, "X"},
		{"no label", catalog.Track{ID: "a", Title: "Alpha", Artist: "X"}, "X"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := ForTrack(tt.track, "/covers/a.jpg", 4)
			assert.Equal(t, tt.want, n.Body)
			assert.Equal(t, "Alpha", n.Summary)
			assert.Equal(t, "a", n.TrackID)
			assert.Equal(t, "/covers/a.jpg", n.ImagePath)
			assert.Equal(t, uint32(4), n.ReplacesID)
		})
	}
}

func TestDisabled(t *testing.T) {
	var n Notifier = Disabled{}
	id, err := n.Notify(Notification{Summary: "x"})
	assert.NoError(t, err)
	assert.Zero(t, id)
	assert.NoError(t, n.Close(id))
}
