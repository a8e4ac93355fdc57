package catalog

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/llehouerou/cadence/internal/asset"
	"github.com/llehouerou/cadence/internal/errmsg"
)

// Source is anything that yields a catalog. Loader is the production one.
type Source interface {
	Load(ctx context.Context) []Track
}

// Options configures a Loader.
type Options struct {
	APIBase      string // remote API root, without trailing slash
	AssetBase    string // prefix for relative references
	ManifestPath string // fallback manifest, local path or URL
	DefaultCover string // reference used when a track has no cover
	Opener       *asset.Opener
	Logger       zerolog.Logger
}

// Loader resolves the catalog through remote API, then manifest, then empty.
type Loader struct {
	apiBase      string
	manifestPath string
	resolver     resolver
	opener       *asset.Opener
	log          zerolog.Logger
}

// Verify Loader implements Source at compile time.
var _ Source = (*Loader)(nil)

func NewLoader(opts Options) *Loader {
	opener := opts.Opener
	if opener == nil {
		opener = asset.NewOpener("", 0)
	}
	return &Loader{
		apiBase:      opts.APIBase,
		manifestPath: opts.ManifestPath,
		resolver:     newResolver(opts.AssetBase, opts.DefaultCover),
		opener:       opener,
		log:          opts.Logger.With().Str("component", "catalog").Logger(),
	}
}

// Load never fails: when both sources fail it returns an empty catalog.
func (l *Loader) Load(ctx context.Context) []Track {
	raws, err := l.fetchRemote(ctx)
	if err == nil {
		tracks := l.resolver.normalize(raws)
		l.log.Info().Str("source", "remote").Int("tracks", len(tracks)).Msg("catalog loaded")
		return tracks
	}
	l.log.Warn().Err(err).Str("op", string(errmsg.OpCatalogRemote)).Msg("falling back to manifest")

	raws, err = l.fetchManifest(ctx)
	if err == nil {
		tracks := l.resolver.normalize(raws)
		l.log.Info().Str("source", "manifest").Int("tracks", len(tracks)).Msg("catalog loaded")
		return tracks
	}
	l.log.Warn().Err(err).Str("op", string(errmsg.OpCatalogManifest)).Msg("catalog empty")

	return []Track{}
}
