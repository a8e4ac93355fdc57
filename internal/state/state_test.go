package state

import (
	"database/sql"
	"encoding/json"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// openTestStore opens a store backed by a fresh file in a temp dir.
func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func writeRawBlob(t *testing.T, s *Store, blob string) {
	t.Helper()
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO kv (key, value, updated_at) VALUES (?, ?, ?)`,
		PreferencesKey, blob, time.Now().Unix(),
	)
	if err != nil {
		t.Fatalf("insert blob: %v", err)
	}
}

func readRawBlob(t *testing.T, s *Store) map[string]any {
	t.Helper()
	blob, err := getBlob(s.db, PreferencesKey)
	if err != nil {
		t.Fatalf("getBlob: %v", err)
	}
	out := map[string]any{}
	if blob == "" {
		return out
	}
	if err := json.Unmarshal([]byte(blob), &out); err != nil {
		t.Fatalf("stored blob is not JSON: %v", err)
	}
	return out
}

func TestLoad_Empty(t *testing.T) {
	s, _ := openTestStore(t)

	prefs := s.Load()
	if !prefs.IsEmpty() {
		t.Errorf("expected empty preferences, got %+v", prefs)
	}
}

func TestLoad_MalformedBlob(t *testing.T) {
	s, _ := openTestStore(t)

	for _, blob := range []string{"{not json", "[1,2,3]", `"string"`, "null"} {
		writeRawBlob(t, s, blob)
		if prefs := s.Load(); !prefs.IsEmpty() {
			t.Errorf("blob %q: expected empty preferences, got %+v", blob, prefs)
		}
	}
}

func TestLoad_PerFieldDecoding(t *testing.T) {
	s, _ := openTestStore(t)
	writeRawBlob(t, s, `{"playMode":42,"volume":0.4,"isPinned":"yes","currentTrackId":"t-3","listOpen":true}`)

	prefs := s.Load()

	if prefs.PlayMode != nil {
		t.Errorf("wrong-typed playMode should be absent, got %q", *prefs.PlayMode)
	}
	if prefs.IsPinned != nil {
		t.Errorf("wrong-typed isPinned should be absent, got %v", *prefs.IsPinned)
	}
	if prefs.Volume == nil || *prefs.Volume != 0.4 {
		t.Errorf("Volume = %v, want 0.4", prefs.Volume)
	}
	if prefs.CurrentTrackID == nil || *prefs.CurrentTrackID != "t-3" {
		t.Errorf("CurrentTrackID = %v, want t-3", prefs.CurrentTrackID)
	}
	if prefs.ListOpen == nil || !*prefs.ListOpen {
		t.Errorf("ListOpen = %v, want true", prefs.ListOpen)
	}
}

func TestSave_MergesAndKeepsUnknownKeys(t *testing.T) {
	s, _ := openTestStore(t)
	writeRawBlob(t, s, `{"playMode":"loop","volume":0.3,"legacyFlag":true}`)

	s.Save(Preferences{Volume: Ptr(0.9)})
	s.Flush()

	raw := readRawBlob(t, s)
	if raw["playMode"] != "loop" {
		t.Errorf("playMode = %v, want loop", raw["playMode"])
	}
	if raw["volume"] != 0.9 {
		t.Errorf("volume = %v, want 0.9", raw["volume"])
	}
	if raw["legacyFlag"] != true {
		t.Errorf("unknown key lost: %v", raw)
	}
}

func TestSave_AccumulatesPartials(t *testing.T) {
	s, _ := openTestStore(t)

	s.Save(Preferences{PlayMode: Ptr("random")})
	s.Save(Preferences{CurrentTrackID: Ptr("a")})
	s.Save(Preferences{CurrentTrackID: Ptr("b"), IsPinned: Ptr(true)})
	s.Flush()

	prefs := s.Load()
	if prefs.PlayMode == nil || *prefs.PlayMode != "random" {
		t.Errorf("PlayMode = %v, want random", prefs.PlayMode)
	}
	if prefs.CurrentTrackID == nil || *prefs.CurrentTrackID != "b" {
		t.Errorf("CurrentTrackID = %v, want b", prefs.CurrentTrackID)
	}
	if prefs.IsPinned == nil || !*prefs.IsPinned {
		t.Errorf("IsPinned = %v, want true", prefs.IsPinned)
	}
}

func TestSave_IsDebounced(t *testing.T) {
	s, _ := openTestStore(t)

	s.Save(Preferences{Volume: Ptr(0.5)})

	if raw := readRawBlob(t, s); len(raw) != 0 {
		t.Errorf("expected nothing written before debounce, got %v", raw)
	}
	// Pending saves are still visible through Load.
	if prefs := s.Load(); prefs.Volume == nil || *prefs.Volume != 0.5 {
		t.Errorf("Load before flush: Volume = %v, want 0.5", prefs.Volume)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if raw := readRawBlob(t, s); raw["volume"] == 0.5 {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Error("debounced save was never written")
}

func TestSave_EmptyPartialIsIgnored(t *testing.T) {
	s, _ := openTestStore(t)

	s.Save(Preferences{})
	s.Flush()

	if raw := readRawBlob(t, s); len(raw) != 0 {
		t.Errorf("expected no blob, got %v", raw)
	}
}

func TestClose_FlushesPending(t *testing.T) {
	path := filepath.Join(t.TempDir(), "close.db")
	s, err := Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	s.Save(Preferences{VisualizerMode: Ptr("bars")})
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}

	reopened, err := Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	prefs := reopened.Load()
	if prefs.VisualizerMode == nil || *prefs.VisualizerMode != "bars" {
		t.Errorf("VisualizerMode = %v, want bars", prefs.VisualizerMode)
	}
}

func TestFlush_ConcurrentKeepsLatest(t *testing.T) {
	s, _ := openTestStore(t)

	var wg sync.WaitGroup
	for i := 1; i <= 40; i++ {
		s.Save(Preferences{Volume: Ptr(float64(i) / 100)})
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Flush()
		}()
	}
	wg.Wait()
	s.Flush()

	if got := readRawBlob(t, s)["volume"]; got != 0.4 {
		t.Errorf("stored volume = %v, want 0.4", got)
	}
}

func TestSave_AfterCloseIsDropped(t *testing.T) {
	s, _ := openTestStore(t)
	s.Save(Preferences{Volume: Ptr(0.3)})
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s.Save(Preferences{Volume: Ptr(0.9)})

	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if s.saveTimer != nil || s.pending != nil {
		t.Error("save after close armed a flush")
	}
}

func TestInitSchema_Idempotent(t *testing.T) {
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer conn.Close()

	for i := range 2 {
		if err := initSchema(conn); err != nil {
			t.Fatalf("initSchema #%d: %v", i+1, err)
		}
	}

	var version int
	if err := conn.QueryRow(`SELECT version FROM schema_version`).Scan(&version); err != nil {
		t.Fatalf("read version: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("version = %d, want %d", version, currentSchemaVersion)
	}
}

func TestMock_RecordsSaves(t *testing.T) {
	m := NewMock(Preferences{PlayMode: Ptr("loop")})

	m.Save(Preferences{Volume: Ptr(0.2)})
	m.Save(Preferences{})

	if got := len(m.Saves()); got != 1 {
		t.Fatalf("Saves = %d, want 1", got)
	}
	prefs := m.Load()
	if *prefs.PlayMode != "loop" || *prefs.Volume != 0.2 {
		t.Errorf("Load = %+v", prefs)
	}
}
