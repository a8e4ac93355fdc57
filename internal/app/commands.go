package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// WatchServiceEvents returns a command that waits for the next playback
// event and converts it to a tea.Msg. Every handler of those messages
// re-arms it.
func (m Model) WatchServiceEvents() tea.Cmd {
	if m.sub == nil {
		return nil
	}
	sub := m.sub
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return ServiceStateChangedMsg{Snapshot: e.Snapshot}
		case e := <-sub.TrackChanged:
			return ServiceTrackChangedMsg{
				PreviousIndex: e.PreviousIndex,
				CurrentIndex:  e.Index,
			}
		case e := <-sub.LyricChanged:
			return ServiceLyricChangedMsg{Context: e.Context}
		case e := <-sub.CatalogChanged:
			return ServiceCatalogChangedMsg{Tracks: e.Tracks}
		case e := <-sub.Notice:
			return ServiceNoticeMsg{Message: e.Message()}
		case <-sub.Done:
			return ServiceClosedMsg{}
		}
	}
}

// ReloadCmd reloads the catalog off the update loop.
func (m Model) ReloadCmd() tea.Cmd {
	svc := m.Service
	return func() tea.Msg {
		svc.ReloadCatalog(context.Background())
		return ReloadDoneMsg{}
	}
}
