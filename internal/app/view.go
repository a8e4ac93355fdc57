package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/llehouerou/cadence/internal/icons"
	"github.com/llehouerou/cadence/internal/keymap"
	"github.com/llehouerou/cadence/internal/playback"
)

var (
	playerBarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	titleStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	lyricStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
	playingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

const progressWidth = 30

var progressBar = func() progress.Model {
	p := progress.New(
		progress.WithSolidFill("212"),
		progress.WithoutPercentage(),
	)
	p.Width = progressWidth
	return p
}()

// View implements tea.Model.
func (m Model) View() string {
	if m.ShowHelp {
		return m.helpView()
	}

	var sections []string
	sections = append(sections, m.playerView())
	if m.Snapshot.Expanded {
		sections = append(sections, m.lyricView())
	}
	if m.Snapshot.ListOpen {
		sections = append(sections, m.listView())
	}
	if m.Notice != "" {
		sections = append(sections, noticeStyle.Render(m.Notice))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) playerView() string {
	snap := m.Snapshot
	innerWidth := max(m.Width-2, 0)

	if !snap.HasTrack() || snap.CurrentIndex >= len(m.Tracks) {
		return playerBarStyle.Width(innerWidth).Render(dimStyle.Render(" No track"))
	}
	track := m.Tracks[snap.CurrentIndex]

	title := titleStyle.Render(track.Title) + dimStyle.Render("  "+track.Artist)
	if snap.Pinned {
		title = icons.Current().Pin + " " + title
	}

	status := fmt.Sprintf(" %s  %s / %s  %s  %s %d%%  %s",
		icons.Transport(snap.Playing),
		formatClock(snap.Position),
		formatClock(snap.Duration),
		progressBar.ViewAs(snap.Progress()),
		icons.Current().Volume,
		int(snap.Volume*100+0.5),
		icons.Mode(snap.Mode.String()),
	)

	lines := []string{" " + title, status}
	if !snap.Expanded && snap.Lyric.Current != "" {
		lines = append(lines, " "+icons.Current().Lyrics+" "+lyricStyle.Render(snap.Lyric.Current))
	}
	if snap.Visualizer != playback.VisualizerNone {
		lines = append(lines, " "+visualizerLine(snap, innerWidth-2))
	}
	return playerBarStyle.Width(innerWidth).Render(strings.Join(lines, "\n"))
}

func (m Model) lyricView() string {
	ctx := m.Lyric
	if m.Snapshot.LyricsLoading {
		return dimStyle.Render("  loading lyrics...")
	}
	if ctx.Current == "" && ctx.Prev == "" && ctx.Next == "" {
		return dimStyle.Render("  no lyrics")
	}
	return strings.Join([]string{
		dimStyle.Render("  " + ctx.Prev),
		lyricStyle.Render("  " + ctx.Current),
		dimStyle.Render("  " + ctx.Next),
	}, "\n")
}

func (m Model) listView() string {
	if len(m.Tracks) == 0 {
		return dimStyle.Render("  playlist is empty")
	}

	// Leave room for the player bar and a notice line.
	rows := max(m.Height-8, 5)
	start := 0
	if m.Cursor >= rows {
		start = m.Cursor - rows + 1
	}
	end := min(start+rows, len(m.Tracks))

	var b strings.Builder
	for i := start; i < end; i++ {
		t := m.Tracks[i]
		line := fmt.Sprintf(" %3g  %s %s %s", t.Sort, column(t.Title, 32), column(t.Artist, 20), t.DurationLabel)
		switch {
		case i == m.Cursor:
			line = cursorStyle.Render(line)
		case i == m.Snapshot.CurrentIndex:
			line = playingStyle.Render(line)
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m Model) helpView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Keys") + "\n")
	for _, ctx := range []string{"global", "playback", "player", "list"} {
		b.WriteString("\n" + dimStyle.Render(ctx) + "\n")
		for _, kb := range keymap.ByContext(ctx) {
			keys := make([]string, len(kb.Keys))
			for i, k := range kb.Keys {
				if k == " " {
					k = "space"
				}
				keys[i] = k
			}
			fmt.Fprintf(&b, "  %-18s %s\n", strings.Join(keys, ", "), kb.Description)
		}
	}
	return b.String()
}

// visualizerLine draws a cheap position-driven pattern; there is no
// spectrum data behind it.
func visualizerLine(snap playback.Snapshot, width int) string {
	if width <= 0 {
		return ""
	}
	levels := []rune("▁▂▃▄▅▆▇█")
	phase := int(snap.Position / (100 * time.Millisecond))
	var b strings.Builder
	for i := range width {
		v := 0
		if snap.Playing {
			v = (i*7 + phase*3) % len(levels)
		}
		switch snap.Visualizer {
		case playback.VisualizerRing:
			b.WriteRune([]rune("·○◎●")[v%4])
		default:
			b.WriteRune(levels[v])
		}
	}
	return dimStyle.Render(b.String())
}

func formatClock(d time.Duration) string {
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

// column fits s to exactly width terminal cells.
func column(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}
