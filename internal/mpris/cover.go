package mpris

import (
	"os"
	"path/filepath"

	"github.com/llehouerou/cadence/internal/asset"
)

// LocalPather maps non-URL asset references to files.
type LocalPather interface {
	LocalPath(ref string) string
}

// ArtURL turns a cover reference into an mpris:artUrl value. Remote covers
// pass through; local ones become file URLs when the file exists.
func ArtURL(p LocalPather, ref string) string {
	if ref == "" {
		return ""
	}
	if asset.IsRemote(ref) {
		return ref
	}
	path := ref
	if p != nil {
		path = p.LocalPath(ref)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return ""
	}
	if _, err := os.Stat(abs); err != nil {
		return ""
	}
	return "file://" + abs
}
