package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/llehouerou/cadence/internal/app"
	"github.com/llehouerou/cadence/internal/asset"
	"github.com/llehouerou/cadence/internal/catalog"
	"github.com/llehouerou/cadence/internal/config"
	"github.com/llehouerou/cadence/internal/errmsg"
	"github.com/llehouerou/cadence/internal/icons"
	"github.com/llehouerou/cadence/internal/lyrics"
	"github.com/llehouerou/cadence/internal/mpris"
	"github.com/llehouerou/cadence/internal/notify"
	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/player"
	"github.com/llehouerou/cadence/internal/state"
	"github.com/llehouerou/cadence/internal/stderr"
)

func main() {
	if err := run(); err != nil {
		stderr.WriteOriginal(errmsg.Format(errmsg.OpInitialize, err) + "\n")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	icons.Init(cfg.Icons)

	logger, closeLog, err := openLog(cfg.Level())
	if err != nil {
		return err
	}
	defer closeLog()

	// Capture ALSA chatter before the speaker opens the device.
	if err := stderr.Start(logger); err != nil {
		logger.Warn().Err(err).Msg("stderr capture unavailable")
	}
	defer stderr.Stop()

	store, err := state.Open(cfg.DBPath, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	opener := asset.NewOpener(cfg.AssetRoot, cfg.HTTPTimeout())
	media := opener.WithTimeout(cfg.MediaTimeout())
	device := player.New(media, logger)

	ctrl := playback.New(playback.Options{
		Device: device,
		Store:  store,
		Catalog: catalog.NewLoader(catalog.Options{
			APIBase:      cfg.APIBase,
			AssetBase:    cfg.AssetBase,
			ManifestPath: cfg.ManifestPath,
			DefaultCover: cfg.DefaultCover,
			Opener:       opener,
			Logger:       logger,
		}),
		Lyrics:       lyrics.NewSource(opener),
		Prober:       player.NewProber(media),
		ProbeLimiter: rate.NewLimiter(rate.Limit(cfg.ProbeRate), cfg.ProbeBurst),
		Logger:       logger,
	})
	defer ctrl.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.HTTPTimeout())
	ctrl.Initialize(ctx)
	cancel()

	if adapter, err := mpris.New(ctrl, opener); err != nil {
		logger.Warn().Err(err).Msg("mpris unavailable")
	} else {
		defer adapter.Close()
	}

	if cfg.NotificationsEnabled() {
		if notifier, err := notify.New(); err != nil {
			logger.Warn().Err(err).Msg("notifications unavailable")
		} else {
			go notify.WatchTracks(ctrl.Subscribe(), notifier, opener, logger)
		}
	}

	p := tea.NewProgram(app.New(ctrl), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// openLog writes JSON logs to the XDG state directory; the terminal belongs
// to the UI.
func openLog(level zerolog.Level) (zerolog.Logger, func(), error) {
	path, err := xdg.StateFile(filepath.Join("cadence", "cadence.log"))
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}
	logger := zerolog.New(f).Level(level).With().Timestamp().Logger()
	return logger, func() { _ = f.Close() }, nil
}
