// Command catalogcheck resolves the configured playlist the same way the
// player does, probes every track's duration and prints the result. It is
// meant for checking a deployment's manifest and asset paths without audio
// output.
package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/llehouerou/cadence/internal/asset"
	"github.com/llehouerou/cadence/internal/catalog"
	"github.com/llehouerou/cadence/internal/config"
	"github.com/llehouerou/cadence/internal/player"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	log = log.Level(cfg.Level())

	opener := asset.NewOpener(cfg.AssetRoot, cfg.HTTPTimeout())
	loader := catalog.NewLoader(catalog.Options{
		APIBase:      cfg.APIBase,
		AssetBase:    cfg.AssetBase,
		ManifestPath: cfg.ManifestPath,
		DefaultCover: cfg.DefaultCover,
		Opener:       opener,
		Logger:       log,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.MediaTimeout())
	defer cancel()

	tracks := loader.Load(ctx)
	if len(tracks) == 0 {
		log.Error().Msg("no tracks resolved")
		os.Exit(1)
	}

	var mu sync.Mutex
	failed := 0
	done := catalog.Hydrate(ctx, tracks, player.NewProber(opener.WithTimeout(cfg.MediaTimeout())),
		rate.NewLimiter(rate.Limit(cfg.ProbeRate), cfg.ProbeBurst),
		func(r catalog.ProbeResult) {
			mu.Lock()
			tracks[r.Index].DurationLabel = r.Label
			mu.Unlock()
		},
		func(id string, err error) {
			mu.Lock()
			failed++
			mu.Unlock()
			log.Warn().Err(err).Str("track", id).Msg("probe failed")
		},
	)
	<-done

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tID\tTITLE\tARTIST\tDURATION\tLYRICS")
	for _, t := range tracks {
		lyric := "-"
		if t.HasLyrics() {
			lyric = "yes"
		}
		fmt.Fprintf(w, "%g\t%s\t%s\t%s\t%s\t%s\n", t.Sort, t.ID, t.Title, t.Artist, t.DurationLabel, lyric)
	}
	w.Flush()

	log.Info().Int("tracks", len(tracks)).Int("probe_failures", failed).Msg("done")
	if failed > 0 {
		os.Exit(2)
	}
}
