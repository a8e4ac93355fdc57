//go:build !windows

// Package stderr diverts file descriptor 2 into the application log. The
// ALSA backend under the speaker writes there directly, which would
// otherwise scribble over the terminal UI.
package stderr

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"
	"syscall"

	"github.com/rs/zerolog"
)

var (
	mu       sync.Mutex
	original = -1
	pipeR    *os.File
	pipeW    *os.File
	drained  chan struct{}
)

// Start redirects fd 2 and logs every non-blank line at warn level. Call it
// before the speaker is initialized. On failure stderr is left untouched.
func Start(logger zerolog.Logger) error {
	mu.Lock()
	defer mu.Unlock()
	if original >= 0 {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}
	saved, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}
	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(saved)
		r.Close()
		w.Close()
		return err
	}

	original, pipeR, pipeW = saved, r, w
	drained = make(chan struct{})
	go forward(r, logger.With().Str("component", "stderr").Logger(), drained)
	return nil
}

func forward(r io.Reader, log zerolog.Logger, done chan<- struct{}) {
	defer close(done)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			log.Warn().Msg(line)
		}
	}
}

// WriteOriginal writes to the terminal's stderr even while redirected.
func WriteOriginal(msg string) {
	mu.Lock()
	fd := original
	mu.Unlock()
	if fd < 0 {
		_, _ = os.Stderr.WriteString(msg)
		return
	}
	_, _ = syscall.Write(fd, []byte(msg))
}

// Stop restores fd 2 and waits for buffered lines to be logged.
func Stop() {
	mu.Lock()
	defer mu.Unlock()
	if original < 0 {
		return
	}
	_ = syscall.Dup2(original, int(os.Stderr.Fd()))
	_ = syscall.Close(original)
	original = -1

	pipeW.Close()
	<-drained
	pipeR.Close()
}
