package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/cadence/internal/keymap"
	"github.com/llehouerou/cadence/internal/playback"
)

const (
	seekStep   = 0.05
	volumeStep = 0.05
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ServiceStateChangedMsg:
		m.Snapshot = msg.Snapshot
		return m, m.WatchServiceEvents()

	case ServiceTrackChangedMsg:
		m.Cursor = msg.CurrentIndex
		m.Notice = ""
		return m, m.WatchServiceEvents()

	case ServiceLyricChangedMsg:
		m.Lyric = msg.Context
		return m, m.WatchServiceEvents()

	case ServiceCatalogChangedMsg:
		m.Tracks = msg.Tracks
		m.Cursor = clampCursor(m.Cursor, len(m.Tracks))
		return m, m.WatchServiceEvents()

	case ServiceNoticeMsg:
		m.Notice = msg.Message
		return m, m.WatchServiceEvents()

	case ServiceClosedMsg:
		return m, tea.Quit

	case ReloadDoneMsg:
		m.Snapshot = m.Service.Snapshot()
		m.Tracks = m.Service.Tracks()
		m.Cursor = clampCursor(m.Cursor, len(m.Tracks))
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	svc := m.Service
	snap := m.Snapshot

	switch m.Keys.Resolve(msg.String()) {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionHelp:
		m.ShowHelp = !m.ShowHelp
	case keymap.ActionReload:
		return m, m.ReloadCmd()

	case keymap.ActionPlayPause:
		svc.TogglePlay()
	case keymap.ActionNextTrack:
		svc.PlayNext(false)
	case keymap.ActionPrevTrack:
		svc.PlayPrev()
	case keymap.ActionSeekForward:
		svc.SeekToPercent(snap.Progress() + seekStep)
	case keymap.ActionSeekBack:
		svc.SeekToPercent(snap.Progress() - seekStep)
	case keymap.ActionVolumeUp:
		svc.AdjustVolume(volumeStep)
	case keymap.ActionVolumeDown:
		svc.AdjustVolume(-volumeStep)
	case keymap.ActionCyclePlayMode:
		svc.CyclePlayMode()

	case keymap.ActionToggleList:
		svc.SetListOpen(!snap.ListOpen)
	case keymap.ActionToggleExpanded:
		svc.SetPlayerExpanded(!snap.Expanded)
	case keymap.ActionTogglePinned:
		svc.SetPinned(!snap.Pinned)
	case keymap.ActionCycleVisualizer:
		svc.SetVisualizerMode(nextVisualizer(snap.Visualizer))

	case keymap.ActionMoveUp:
		m.Cursor = clampCursor(m.Cursor-1, len(m.Tracks))
	case keymap.ActionMoveDown:
		m.Cursor = clampCursor(m.Cursor+1, len(m.Tracks))
	case keymap.ActionSelect:
		svc.SelectTrack(m.Cursor, true)
	case keymap.ActionMoveItemUp:
		if m.Cursor > 0 {
			svc.ReorderTracks(m.Cursor, m.Cursor-1)
			m.Cursor--
		}
	case keymap.ActionMoveItemDown:
		if m.Cursor < len(m.Tracks)-1 {
			svc.ReorderTracks(m.Cursor, m.Cursor+1)
			m.Cursor++
		}
	}

	// The controller has already applied the change; read it back so the
	// next frame does not wait for the event round trip.
	m.Snapshot = svc.Snapshot()
	m.Tracks = svc.Tracks()
	return m, nil
}

func nextVisualizer(v playback.VisualizerMode) playback.VisualizerMode {
	switch v {
	case playback.VisualizerRing:
		return playback.VisualizerBars
	case playback.VisualizerBars:
		return playback.VisualizerNone
	default:
		return playback.VisualizerRing
	}
}

func clampCursor(c, n int) int {
	if n == 0 {
		return 0
	}
	return min(max(c, 0), n-1)
}
