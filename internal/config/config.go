package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

const (
	defaultAPIBase      = "http://localhost:8080"
	defaultManifest     = "music-manifest.json"
	defaultCoverRef     = "images/katanegai.jpg"
	defaultLogLevel     = "info"
	defaultIcons        = "unicode"
	defaultHTTPTimeout  = 10
	defaultMediaTimeout = 300
	defaultProbeRate    = 4.0
	defaultProbeBurst   = 2
)

type Config struct {
	APIBase      string `koanf:"api_base"`      // remote playlist API, e.g. "https://example.com"
	AssetBase    string `koanf:"asset_base"`    // prefix for relative asset refs; a URL or a path
	AssetRoot    string `koanf:"asset_root"`    // local directory that non-URL refs resolve against
	ManifestPath string `koanf:"manifest_path"` // local manifest file or URL
	DefaultCover string `koanf:"default_cover"` // asset ref used when a track has no cover
	DBPath       string `koanf:"db_path"`       // empty means the XDG data dir
	LogLevel     string `koanf:"log_level"`     // zerolog level name
	Icons        string `koanf:"icons"`         // "nerd", "unicode" or "none"

	Notifications *bool `koanf:"notifications"` // desktop notification on track change (default: true)

	HTTPTimeoutSeconds  int     `koanf:"http_timeout_seconds"`
	MediaTimeoutSeconds int     `koanf:"media_timeout_seconds"` // whole-file audio downloads for playback and probes
	ProbeRate           float64 `koanf:"probe_rate"`  // duration probes per second
	ProbeBurst          int     `koanf:"probe_burst"` // probes allowed back to back
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	configPaths := getConfigPaths()

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.APIBase == "" {
		c.APIBase = defaultAPIBase
	}
	c.APIBase = strings.TrimSuffix(c.APIBase, "/")

	if c.AssetBase == "" {
		c.AssetBase = "/"
	}
	c.AssetBase = expandPath(c.AssetBase)
	if !strings.HasSuffix(c.AssetBase, "/") {
		c.AssetBase += "/"
	}

	if c.ManifestPath == "" {
		c.ManifestPath = defaultManifest
	}
	c.ManifestPath = expandPath(c.ManifestPath)
	c.AssetRoot = expandPath(c.AssetRoot)

	if c.DefaultCover == "" {
		c.DefaultCover = defaultCoverRef
	}
	if c.DBPath != "" {
		c.DBPath = expandPath(c.DBPath)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil || c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	switch c.Icons {
	case "nerd", "unicode", "none":
	default:
		c.Icons = defaultIcons
	}
	if c.HTTPTimeoutSeconds <= 0 {
		c.HTTPTimeoutSeconds = defaultHTTPTimeout
	}
	if c.MediaTimeoutSeconds <= 0 {
		c.MediaTimeoutSeconds = defaultMediaTimeout
	}
	if c.ProbeRate <= 0 {
		c.ProbeRate = defaultProbeRate
	}
	if c.ProbeBurst <= 0 {
		c.ProbeBurst = defaultProbeBurst
	}
}

// HTTPTimeout returns the configured request timeout.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// MediaTimeout bounds a full audio download. Remote audio is buffered
// whole before decoding, so it needs far longer than an API request.
func (c *Config) MediaTimeout() time.Duration {
	return time.Duration(c.MediaTimeoutSeconds) * time.Second
}

// Level returns the parsed log level.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/cadence/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "cadence", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// NotificationsEnabled reports whether track-change notifications are on.
func (c *Config) NotificationsEnabled() bool {
	return c.Notifications == nil || *c.Notifications
}
