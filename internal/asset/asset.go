// Package asset opens audio, lyric and manifest references that may live on
// the local filesystem or behind an HTTP server.
package asset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrStatus is wrapped when a remote asset answers with a non-2xx status.
var ErrStatus = errors.New("unexpected status")

const userAgent = "cadence/1.0"

// Opener resolves references to readable streams.
type Opener struct {
	client *http.Client
	root   string
}

// NewOpener creates an opener. Local references are resolved against root
// when it is non-empty.
func NewOpener(root string, timeout time.Duration) *Opener {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Opener{
		client: &http.Client{Timeout: timeout},
		root:   root,
	}
}

// WithClient returns a copy of the opener that uses client for remote
// references.
func (o *Opener) WithClient(client *http.Client) *Opener {
	cp := *o
	cp.client = client
	return &cp
}

// WithTimeout returns a copy of the opener whose remote requests may take up
// to d in total, body included.
func (o *Opener) WithTimeout(d time.Duration) *Opener {
	cp := *o
	cp.client = &http.Client{Timeout: d, Transport: o.client.Transport}
	return &cp
}

// IsRemote reports whether ref is an http(s) URL.
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Open returns a stream for ref. The caller closes it.
func (o *Opener) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	if ref == "" {
		return nil, errors.New("empty reference")
	}
	if IsRemote(ref) {
		return o.openRemote(ctx, ref)
	}
	return os.Open(o.LocalPath(ref))
}

// LocalPath maps a non-remote reference onto the filesystem.
func (o *Opener) LocalPath(ref string) string {
	if o.root == "" {
		return ref
	}
	return filepath.Join(o.root, filepath.FromSlash(strings.TrimLeft(ref, "/")))
}

// ReadAll fetches ref fully into memory.
func (o *Opener) ReadAll(ctx context.Context, ref string) ([]byte, error) {
	rc, err := o.Open(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (o *Opener) openRemote(ctx context.Context, ref string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Cache-Control", "no-store")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}
	return resp.Body, nil
}
