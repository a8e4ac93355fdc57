package player

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
)

// Opener resolves a reference to a readable stream.
type Opener interface {
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

// memFile is an in-memory ReadSeekCloser for buffered HTTP bodies.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

// openSeekable opens ref for decoding. Decoders need to seek, so streams
// that cannot (HTTP bodies) are read fully into memory.
func openSeekable(ctx context.Context, opener Opener, ref string) (io.ReadSeekCloser, error) {
	rc, err := opener.Open(ctx, ref)
	if err != nil {
		return nil, err
	}
	if rs, ok := rc.(io.ReadSeekCloser); ok {
		return rs, nil
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	return memFile{bytes.NewReader(data)}, nil
}

// source is a decoded resource wired into the speaker chain:
// stream -> resample -> ctrl -> volume.
type source struct {
	stream beep.StreamSeekCloser
	format beep.Format
	file   io.Closer
	ctrl   *beep.Ctrl
	volume *effects.Volume
}

func newSource(stream beep.StreamSeekCloser, format beep.Format, file io.Closer, level float64) *source {
	var s beep.Streamer = stream
	if format.SampleRate != outputRate {
		s = beep.Resample(resampleQuality, format.SampleRate, outputRate, stream)
	}
	ctrl := &beep.Ctrl{Streamer: s, Paused: true}
	return &source{
		stream: stream,
		format: format,
		file:   file,
		ctrl:   ctrl,
		volume: &effects.Volume{
			Streamer: ctrl,
			Base:     2,
			Volume:   levelToVolume(level),
			Silent:   level <= 0,
		},
	}
}

func (s *source) duration() time.Duration {
	return s.format.SampleRate.D(s.stream.Len())
}

// position must be called with the speaker locked.
func (s *source) position() time.Duration {
	return s.format.SampleRate.D(s.stream.Position())
}

func (s *source) close() {
	_ = s.stream.Close()
	if s.file != nil {
		_ = s.file.Close()
	}
}
