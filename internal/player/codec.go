package player

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
	"github.com/llehouerou/go-mp3"
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extWAV  = ".wav"
	extOGG  = ".ogg"
	extOGA  = ".oga"
)

// ErrUnsupportedFormat is returned for references whose extension has no decoder.
var ErrUnsupportedFormat = errors.New("unsupported format")

// formatOf returns the lower-cased extension of ref, ignoring any URL query
// or fragment.
func formatOf(ref string) string {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	return strings.ToLower(path.Ext(ref))
}

// checkFormat reports whether ref has an extension decode understands.
func checkFormat(ref string) error {
	switch ext := formatOf(ref); ext {
	case extMP3, extFLAC, extWAV, extOGG, extOGA:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// decode picks a decoder from the extension of ref.
func decode(ref string, rs io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error) {
	switch formatOf(ref) {
	case extMP3:
		return decodeMP3(rs)
	case extFLAC:
		// Some taggers prepend ID3v2 to FLAC files
		if err := skipID3v2(rs); err != nil {
			return nil, beep.Format{}, err
		}
		return flac.Decode(rs)
	case extWAV:
		return wav.Decode(rs)
	case extOGG, extOGA:
		return vorbis.Decode(rs)
	default:
		return nil, beep.Format{}, checkFormat(ref)
	}
}

// skipID3v2 positions r after an ID3v2 tag, or at the start if there is none.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return err
	}
	if n < 10 || string(header[0:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// Syncsafe size: 7 bits per byte
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(10+size, io.SeekStart)
	return err
}

// mp3Stream adapts go-mp3, which has exact sample counts and seeking, to
// beep.StreamSeekCloser.
type mp3Stream struct {
	dec    *mp3.Decoder
	closer io.Closer
	buf    []byte
	err    error
}

func decodeMP3(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
	dec, err := mp3.NewDecoder(rc)
	if err != nil {
		return nil, beep.Format{}, err
	}
	rate := dec.SampleRate()
	if rate == 0 {
		return nil, beep.Format{}, errors.New("mp3: invalid sample rate")
	}

	// go-mp3 always yields interleaved stereo int16
	format := beep.Format{
		SampleRate:  beep.SampleRate(rate),
		NumChannels: 2,
		Precision:   2,
	}
	return &mp3Stream{dec: dec, closer: rc, buf: make([]byte, 8192)}, format, nil
}

func (s *mp3Stream) Stream(samples [][2]float64) (int, bool) {
	if s.err != nil {
		return 0, false
	}

	want := len(samples) * 4
	if len(s.buf) < want {
		s.buf = make([]byte, want)
	}
	read, err := io.ReadFull(s.dec, s.buf[:want])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		s.err = err
		return 0, false
	}

	n := read / 4
	if n == 0 {
		return 0, false
	}
	for i := range n {
		off := i * 4
		left := int16(binary.LittleEndian.Uint16(s.buf[off:]))    //nolint:gosec // audio samples
		right := int16(binary.LittleEndian.Uint16(s.buf[off+2:])) //nolint:gosec // audio samples
		samples[i][0] = float64(left) / 32768.0
		samples[i][1] = float64(right) / 32768.0
	}
	return n, true
}

func (s *mp3Stream) Err() error { return s.err }

func (s *mp3Stream) Len() int {
	return int(max(s.dec.SampleCount(), 0))
}

func (s *mp3Stream) Position() int {
	return int(s.dec.SamplePosition())
}

func (s *mp3Stream) Seek(p int) error {
	p = min(max(p, 0), s.Len())
	if err := s.dec.SeekToSample(int64(p)); err != nil {
		return err
	}
	s.err = nil
	return nil
}

func (s *mp3Stream) Close() error {
	return s.closer.Close()
}
