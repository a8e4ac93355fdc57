package lyrics

import (
	"context"
	"fmt"

	"github.com/llehouerou/cadence/internal/asset"
)

// Fetcher loads and parses the lyric file behind a reference.
type Fetcher interface {
	Fetch(ctx context.Context, ref string) ([]Line, error)
}

// Source fetches lyric files from the local asset root or over HTTP.
type Source struct {
	opener *asset.Opener
}

// Verify Source implements Fetcher at compile time.
var _ Fetcher = (*Source)(nil)

// NewSource creates a new lyrics source.
func NewSource(opener *asset.Opener) *Source {
	return &Source{opener: opener}
}

// Fetch retrieves and parses the lyric file at ref.
func (s *Source) Fetch(ctx context.Context, ref string) ([]Line, error) {
	rc, err := s.opener.Open(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("fetch lyrics %s: %w", ref, err)
	}
	defer rc.Close()

	lines, err := ParseReader(rc)
	if err != nil {
		return nil, fmt.Errorf("read lyrics %s: %w", ref, err)
	}
	return lines, nil
}
