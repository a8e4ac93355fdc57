// Package app is the terminal front-end: a bubbletea model that renders the
// playback controller's state and forwards key presses to it.
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/cadence/internal/catalog"
	"github.com/llehouerou/cadence/internal/keymap"
	"github.com/llehouerou/cadence/internal/lyrics"
	"github.com/llehouerou/cadence/internal/playback"
)

// Model is the root application model.
type Model struct {
	Service  playback.Service
	Keys     *keymap.Resolver
	Snapshot playback.Snapshot
	Tracks   []catalog.Track
	Lyric    lyrics.Context
	Cursor   int
	Notice   string
	ShowHelp bool
	Width    int
	Height   int

	sub *playback.Subscription
}

// New creates a model over an initialized service.
func New(svc playback.Service) Model {
	snap := svc.Snapshot()
	return Model{
		Service:  svc,
		Keys:     keymap.Default(),
		Snapshot: snap,
		Tracks:   svc.Tracks(),
		Lyric:    snap.Lyric,
		Cursor:   max(snap.CurrentIndex, 0),
		sub:      svc.Subscribe(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.WatchServiceEvents()
}
