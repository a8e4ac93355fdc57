package player

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/cadence/internal/asset"
)

// wavBytes builds a silent 16-bit mono PCM WAV file.
func wavBytes(rate, samples int) []byte {
	var b bytes.Buffer
	dataLen := samples * 2
	le := binary.LittleEndian

	b.WriteString("RIFF")
	_ = binary.Write(&b, le, uint32(36+dataLen)) //nolint:gosec // test sizes are small
	b.WriteString("WAVE")
	b.WriteString("fmt ")
	_ = binary.Write(&b, le, uint32(16))
	_ = binary.Write(&b, le, uint16(1)) // PCM
	_ = binary.Write(&b, le, uint16(1)) // mono
	_ = binary.Write(&b, le, uint32(rate)) //nolint:gosec // test sizes are small
	_ = binary.Write(&b, le, uint32(rate*2)) //nolint:gosec // test sizes are small
	_ = binary.Write(&b, le, uint16(2))
	_ = binary.Write(&b, le, uint16(16))
	b.WriteString("data")
	_ = binary.Write(&b, le, uint32(dataLen)) //nolint:gosec // test sizes are small
	b.Write(make([]byte, dataLen))
	return b.Bytes()
}

// gateOpener blocks until released, then fails.
type gateOpener struct {
	gate chan struct{}
	err  error
}

func (g *gateOpener) Open(ctx context.Context, _ string) (io.ReadCloser, error) {
	select {
	case <-g.gate:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return nil, g.err
}

// failOpener fails the test if anything is opened.
type failOpener struct{ t *testing.T }

func (f failOpener) Open(context.Context, string) (io.ReadCloser, error) {
	f.t.Error("unexpected Open")
	return nil, errors.New("unexpected")
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"/music/a.mp3", ".mp3"},
		{"https://cdn.example.com/a.FLAC?token=1", ".flac"},
		{"https://cdn.example.com/a.ogg#t=3", ".ogg"},
		{"/music/a", ""},
		{"music/a.m4a", ".m4a"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatOf(tt.ref), "ref %q", tt.ref)
	}
}

func TestCheckFormat(t *testing.T) {
	for _, ref := range []string{"a.mp3", "a.flac", "a.wav", "a.ogg", "a.oga"} {
		assert.NoError(t, checkFormat(ref), ref)
	}
	for _, ref := range []string{"a.m4a", "a.opus", "a"} {
		assert.ErrorIs(t, checkFormat(ref), ErrUnsupportedFormat, ref)
	}
}

func TestSkipID3v2(t *testing.T) {
	tagged := append([]byte{'I', 'D', '3', 4, 0, 0, 0, 0, 0, 5}, []byte("xxxxxfLaC")...)

	tests := []struct {
		name string
		data []byte
		want int64
	}{
		{"tagged", tagged, 15},
		{"untagged", []byte("fLaC0123456789"), 0},
		{"short", []byte("fLa"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := bytes.NewReader(tt.data)
			require.NoError(t, skipID3v2(r))
			pos, _ := r.Seek(0, io.SeekCurrent)
			assert.Equal(t, tt.want, pos)
		})
	}
}

func TestLevelToVolume(t *testing.T) {
	tests := []struct {
		level float64
		want  float64
	}{
		{1, 0},
		{1.5, 0},
		{0.5, -1},
		{0.25, -2},
		{0, -10},
		{-1, -10},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, levelToVolume(tt.level), 1e-9, "level %v", tt.level)
	}
}

func TestProber_LocalWAV(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tone.wav"), wavBytes(8000, 16000), 0o644))

	p := NewProber(asset.NewOpener(dir, time.Second))
	d, err := p.Probe(context.Background(), "/tone.wav")

	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, d)
}

func TestProber_RemoteWAV(t *testing.T) {
	data := wavBytes(8000, 4000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	p := NewProber(asset.NewOpener("", time.Second))
	d, err := p.Probe(context.Background(), srv.URL+"/tone.wav?v=1")

	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, d)
}

func TestProber_UnsupportedSkipsOpen(t *testing.T) {
	p := NewProber(failOpener{t})

	_, err := p.Probe(context.Background(), "clip.m4a")

	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestProber_Corrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.wav"), []byte("not a wav"), 0o644))

	p := NewProber(asset.NewOpener(dir, time.Second))
	_, err := p.Probe(context.Background(), "bad.wav")

	assert.Error(t, err)
}

func TestPlayer_PlayWithoutLoad(t *testing.T) {
	p := New(failOpener{t}, zerolog.Nop())
	defer p.Close()

	assert.ErrorIs(t, p.Play(), ErrNotLoaded)
	assert.True(t, p.Paused())
	assert.Equal(t, Idle, p.State())
}

func TestPlayer_EmptyURLIsIdle(t *testing.T) {
	p := New(failOpener{t}, zerolog.Nop())
	defer p.Close()

	p.Load("")

	assert.Equal(t, Idle, p.State())
	assert.ErrorIs(t, p.Play(), ErrNotLoaded)
}

func TestPlayer_RejectedPlayEmitsPause(t *testing.T) {
	loadErr := errors.New("connection reset")
	opener := &gateOpener{gate: make(chan struct{}), err: loadErr}
	p := New(opener, zerolog.Nop())
	defer p.Close()

	gen := p.Load("https://cdn.example.com/a.mp3")
	require.Equal(t, Loading, p.State())
	require.NoError(t, p.Play(), "play while loading is deferred")

	close(opener.gate)

	select {
	case ev := <-p.Events():
		assert.Equal(t, EventPause{Gen: gen}, ev)
	case <-time.After(2 * time.Second):
		t.Fatal("expected EventPause")
	}
	assert.Equal(t, Failed, p.State())
	assert.ErrorIs(t, p.Play(), loadErr)
}

func TestPlayer_PauseWhileLoadingCancelsPlay(t *testing.T) {
	opener := &gateOpener{gate: make(chan struct{}), err: errors.New("boom")}
	p := New(opener, zerolog.Nop())
	defer p.Close()

	p.Load("a.mp3")
	require.NoError(t, p.Play())
	p.Pause()
	close(opener.gate)

	assert.Eventually(t, func() bool { return p.State() == Failed }, 2*time.Second, 10*time.Millisecond)
	select {
	case ev := <-p.Events():
		t.Errorf("unexpected event %#v", ev)
	default:
	}
}

func TestPlayer_StaleLoadIsIgnored(t *testing.T) {
	first := &gateOpener{gate: make(chan struct{}), err: errors.New("first")}
	p := New(first, zerolog.Nop())
	defer p.Close()

	p.Load("a.mp3")
	p.Load("")
	close(first.gate)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, Idle, p.State(), "a superseded load must not change state")
}

func TestPlayer_LoadDiscardsQueuedEvents(t *testing.T) {
	p := New(failOpener{t}, zerolog.Nop())
	defer p.Close()

	first := p.Load("")
	p.mu.Lock()
	p.emit(EventEnded{})
	p.mu.Unlock()

	second := p.Load("")
	assert.Greater(t, second, first)
	select {
	case ev := <-p.Events():
		t.Errorf("unexpected event %#v", ev)
	default:
	}
}

func TestStamp(t *testing.T) {
	tests := []struct {
		in   Event
		want Event
	}{
		{EventMetadata{Duration: time.Second}, EventMetadata{Gen: 7, Duration: time.Second}},
		{EventTimeUpdate{Position: time.Second}, EventTimeUpdate{Gen: 7, Position: time.Second}},
		{EventPlay{}, EventPlay{Gen: 7}},
		{EventPause{Gen: 3}, EventPause{Gen: 7}},
		{EventEnded{}, EventEnded{Gen: 7}},
	}
	for _, tt := range tests {
		got := Stamp(tt.in, 7)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, uint64(7), got.Generation())
	}
}

func TestPlayer_NoSourceControlsAreNoops(t *testing.T) {
	p := New(failOpener{t}, zerolog.Nop())
	defer p.Close()

	p.SeekToFraction(0.5)
	p.Pause()
	p.SetVolume(3)
	p.tick()

	assert.Equal(t, time.Duration(0), p.Position())
	assert.Equal(t, time.Duration(0), p.Duration())
	assert.Equal(t, 1.0, p.Volume())
	select {
	case ev := <-p.Events():
		t.Errorf("unexpected event %#v", ev)
	default:
	}
}

func TestPlayer_CloseIsIdempotent(t *testing.T) {
	p := New(failOpener{t}, zerolog.Nop())

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	p.Load("a.mp3")
	assert.Equal(t, Idle, p.State(), "load after close does nothing")
}

func TestMock_RecordsCalls(t *testing.T) {
	m := NewMock()

	assert.ErrorIs(t, m.Play(), ErrNotLoaded)

	m.Load("a.mp3")
	m.SetDuration(time.Minute)
	require.NoError(t, m.Play())
	assert.False(t, m.Paused())

	m.SetPlayError(errors.New("blocked"))
	m.Load("b.mp3")
	assert.Error(t, m.Play())
	assert.True(t, m.Paused())
	assert.Equal(t, time.Duration(0), m.Duration(), "load resets duration")

	m.SeekToFraction(0.25)
	m.SetVolume(0.4)
	m.Emit(EventEnded{})

	assert.Equal(t, []string{"a.mp3", "b.mp3"}, m.Loads())
	assert.Equal(t, []float64{0.25}, m.Seeks())
	assert.Equal(t, []float64{0.4}, m.Volumes())
	assert.Equal(t, EventEnded{Gen: 2}, <-m.Events())
}
