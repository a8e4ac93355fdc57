package catalog

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Prober reads the playing time of an audio reference.
type Prober interface {
	Probe(ctx context.Context, ref string) (time.Duration, error)
}

// ProbeResult reports a successfully probed track.
type ProbeResult struct {
	Index int
	ID    string
	Label string
}

// Hydrate probes every track that has audio and a placeholder duration. Each
// probe runs in its own goroutine, paced by limiter when non-nil, and reports
// successes through onResult. Failures are passed to onError and leave the
// placeholder. The returned channel closes once every probe has finished.
//
// Callers must check that the slot at Index still holds ID before writing.
func Hydrate(
	ctx context.Context,
	tracks []Track,
	prober Prober,
	limiter *rate.Limiter,
	onResult func(ProbeResult),
	onError func(id string, err error),
) <-chan struct{} {
	done := make(chan struct{})
	var wg sync.WaitGroup

	for i, t := range tracks {
		if t.AudioURL == "" || t.DurationLabel != PlaceholderDuration {
			continue
		}
		wg.Add(1)
		go func(index int, id, ref string) {
			defer wg.Done()
			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					return
				}
			}
			d, err := prober.Probe(ctx, ref)
			if err != nil || d <= 0 {
				if onError != nil && err != nil {
					onError(id, err)
				}
				return
			}
			onResult(ProbeResult{Index: index, ID: id, Label: FormatDuration(d)})
		}(i, t.ID, t.AudioURL)
	}

	go func() {
		wg.Wait()
		close(done)
	}()
	return done
}
