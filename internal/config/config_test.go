//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/music",
			expected: filepath.Join(home, "music"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/srv/assets",
			expected: "/srv/assets",
		},
		{
			name:     "relative path unchanged",
			input:    "public/music-manifest.json",
			expected: "public/music-manifest.json",
		},
		{
			name:     "url unchanged",
			input:    "https://cdn.example.com/",
			expected: "https://cdn.example.com/",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: home,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) == 0 {
		t.Fatal("getConfigPaths() returned empty slice")
	}

	// Last path should be local config.toml
	lastPath := paths[len(paths)-1]
	if lastPath != "config.toml" {
		t.Errorf("last config path = %q, want %q", lastPath, "config.toml")
	}

	if home, err := os.UserHomeDir(); err == nil {
		expectedFirst := filepath.Join(home, ".config", "cadence", "config.toml")
		if paths[0] != expectedFirst {
			t.Errorf("first config path = %q, want %q", paths[0], expectedFirst)
		}
	}
}

func TestApplyDefaults_Empty(t *testing.T) {
	cfg := Config{}
	cfg.applyDefaults()

	if cfg.APIBase != defaultAPIBase {
		t.Errorf("APIBase = %q, want %q", cfg.APIBase, defaultAPIBase)
	}
	if cfg.AssetBase != "/" {
		t.Errorf("AssetBase = %q, want %q", cfg.AssetBase, "/")
	}
	if cfg.ManifestPath != defaultManifest {
		t.Errorf("ManifestPath = %q, want %q", cfg.ManifestPath, defaultManifest)
	}
	if cfg.DefaultCover != "images/katanegai.jpg" {
		t.Errorf("DefaultCover = %q", cfg.DefaultCover)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.HTTPTimeout() != 10*time.Second {
		t.Errorf("HTTPTimeout = %v, want 10s", cfg.HTTPTimeout())
	}
	if cfg.MediaTimeout() != 5*time.Minute {
		t.Errorf("MediaTimeout = %v, want 5m", cfg.MediaTimeout())
	}
	if cfg.ProbeRate != 4 || cfg.ProbeBurst != 2 {
		t.Errorf("probe pacing = %v/%d, want 4/2", cfg.ProbeRate, cfg.ProbeBurst)
	}
}

func TestApplyDefaults_Normalizes(t *testing.T) {
	tests := []struct {
		name      string
		in        Config
		wantAPI   string
		wantAsset string
	}{
		{
			name:      "trailing slash removed from api base",
			in:        Config{APIBase: "https://api.example.com/", AssetBase: "https://cdn.example.com/"},
			wantAPI:   "https://api.example.com",
			wantAsset: "https://cdn.example.com/",
		},
		{
			name:      "asset base gains trailing slash",
			in:        Config{APIBase: "https://api.example.com", AssetBase: "https://cdn.example.com/site"},
			wantAPI:   "https://api.example.com",
			wantAsset: "https://cdn.example.com/site/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.in
			cfg.applyDefaults()
			if cfg.APIBase != tt.wantAPI {
				t.Errorf("APIBase = %q, want %q", cfg.APIBase, tt.wantAPI)
			}
			if cfg.AssetBase != tt.wantAsset {
				t.Errorf("AssetBase = %q, want %q", cfg.AssetBase, tt.wantAsset)
			}
		})
	}
}

func TestApplyDefaults_InvalidValues(t *testing.T) {
	cfg := Config{
		LogLevel:           "chatty",
		Icons:              "emoji",
		HTTPTimeoutSeconds:  -3,
		MediaTimeoutSeconds: -1,
		ProbeRate:           -1,
		ProbeBurst:          0,
	}
	cfg.applyDefaults()

	if cfg.Level() != zerolog.InfoLevel {
		t.Errorf("Level = %v, want info", cfg.Level())
	}
	if cfg.Icons != "unicode" {
		t.Errorf("Icons = %q, want unicode", cfg.Icons)
	}
	if cfg.HTTPTimeoutSeconds != 10 {
		t.Errorf("HTTPTimeoutSeconds = %d, want 10", cfg.HTTPTimeoutSeconds)
	}
	if cfg.MediaTimeoutSeconds != 300 {
		t.Errorf("MediaTimeoutSeconds = %d, want 300", cfg.MediaTimeoutSeconds)
	}
	if cfg.ProbeRate != 4 || cfg.ProbeBurst != 2 {
		t.Errorf("probe pacing = %v/%d, want 4/2", cfg.ProbeRate, cfg.ProbeBurst)
	}
}

func TestApplyDefaults_KeepsValidLevel(t *testing.T) {
	cfg := Config{LogLevel: "debug"}
	cfg.applyDefaults()

	if cfg.Level() != zerolog.DebugLevel {
		t.Errorf("Level = %v, want debug", cfg.Level())
	}
}

func TestLoad_FromWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)

	content := `
api_base = "https://api.example.com/"
asset_base = "https://cdn.example.com"
probe_rate = 1.5
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIBase != "https://api.example.com" {
		t.Errorf("APIBase = %q", cfg.APIBase)
	}
	if cfg.AssetBase != "https://cdn.example.com/" {
		t.Errorf("AssetBase = %q", cfg.AssetBase)
	}
	if cfg.ProbeRate != 1.5 {
		t.Errorf("ProbeRate = %v, want 1.5", cfg.ProbeRate)
	}
	if cfg.ProbeBurst != 2 {
		t.Errorf("ProbeBurst = %d, want default 2", cfg.ProbeBurst)
	}
}

func TestNotificationsEnabled(t *testing.T) {
	off, on := false, true
	tests := []struct {
		name string
		in   *bool
		want bool
	}{
		{"unset defaults to on", nil, true},
		{"explicit off", &off, false},
		{"explicit on", &on, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Notifications: tt.in}
			if got := cfg.NotificationsEnabled(); got != tt.want {
				t.Errorf("NotificationsEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}
