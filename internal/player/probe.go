package player

import (
	"context"
	"errors"
	"time"
)

var errUnknownLength = errors.New("stream length unknown")

// Prober reads durations by decoding stream headers, without touching the
// speaker.
type Prober struct {
	opener Opener
}

func NewProber(opener Opener) *Prober {
	return &Prober{opener: opener}
}

// Probe returns the playing time of the audio at ref.
func (p *Prober) Probe(ctx context.Context, ref string) (time.Duration, error) {
	if err := checkFormat(ref); err != nil {
		return 0, err
	}

	file, err := openSeekable(ctx, p.opener, ref)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	stream, format, err := decode(ref, file)
	if err != nil {
		return 0, err
	}
	defer stream.Close()

	n := stream.Len()
	if n <= 0 {
		return 0, errUnknownLength
	}
	return format.SampleRate.D(n), nil
}
