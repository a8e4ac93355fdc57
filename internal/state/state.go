// Package state persists user preferences in a small SQLite key-value store.
package state

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/llehouerou/cadence/internal/db"
	"github.com/llehouerou/cadence/internal/errmsg"
)

const (
	appName      = "cadence"
	dbFileName   = "cadence.db"
	saveDebounce = 500 * time.Millisecond

	// PreferencesKey is the storage key of the preferences blob.
	PreferencesKey = "cadence.musicPlayer.v1"
)

type Store struct {
	db  *sql.DB
	log zerolog.Logger

	// writeMu orders flushes so an older partial never commits last.
	writeMu sync.Mutex

	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *Preferences
	closed    bool
}

// Open opens (creating if needed) the store at path. An empty path selects
// DefaultPath.
func Open(path string, logger zerolog.Logger) (*Store, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := initSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return &Store{db: conn, log: logger.With().Str("component", "state").Logger()}, nil
}

// DefaultPath returns the XDG data path of the database file.
func DefaultPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

// Load returns the stored preferences with any unflushed saves applied.
// It never fails: unreadable storage or a malformed blob yields an empty
// Preferences, and each field is decoded on its own.
func (s *Store) Load() Preferences {
	blob, err := getBlob(s.db, PreferencesKey)
	if err != nil {
		s.log.Warn().Err(err).Msg(errmsg.Format(errmsg.OpPrefsLoad, err))
		blob = ""
	}
	prefs := preferencesFrom(decodeBlob(blob))

	s.saveMu.Lock()
	if s.pending != nil {
		prefs = prefs.merge(*s.pending)
	}
	s.saveMu.Unlock()

	return prefs
}

// Save schedules a merge of the set fields of partial into the stored blob.
// Writes are debounced; successive partials accumulate until the flush.
func (s *Store) Save(partial Preferences) {
	if partial.IsEmpty() {
		return
	}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	if s.closed {
		return
	}

	merged := partial
	if s.pending != nil {
		merged = s.pending.merge(partial)
	}
	s.pending = &merged

	if s.saveTimer != nil {
		s.saveTimer.Stop()
	}
	s.saveTimer = time.AfterFunc(saveDebounce, s.Flush)
}

// Flush writes any pending partial immediately.
func (s *Store) Flush() {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.saveMu.Lock()
	if s.saveTimer != nil {
		s.saveTimer.Stop()
		s.saveTimer = nil
	}
	pending := s.pending
	s.pending = nil
	s.saveMu.Unlock()

	if pending == nil {
		return
	}
	if err := s.write(*pending); err != nil {
		s.log.Warn().Err(err).Msg(errmsg.Format(errmsg.OpPrefsSave, err))
	}
}

// write merges partial into the stored blob, keeping keys it does not know.
func (s *Store) write(partial Preferences) error {
	fields, err := partial.fields()
	if err != nil {
		return err
	}
	return db.WithTx(s.db, func(tx *sql.Tx) error {
		blob, err := getBlob(tx, PreferencesKey)
		if err != nil {
			return err
		}
		stored := decodeBlob(blob)
		for k, v := range fields {
			stored[k] = v
		}
		data, err := json.Marshal(stored)
		if err != nil {
			return err
		}
		return putBlob(tx, PreferencesKey, string(data), time.Now().Unix())
	})
}

// Close flushes pending saves and closes the database. Saves after Close
// are dropped.
func (s *Store) Close() error {
	s.saveMu.Lock()
	if s.closed {
		s.saveMu.Unlock()
		return nil
	}
	s.closed = true
	s.saveMu.Unlock()

	s.Flush()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.db.Close()
}
