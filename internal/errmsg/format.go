// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Catalog operations
	OpCatalogRemote   Op = "load remote playlist"
	OpCatalogManifest Op = "load playlist manifest"
	OpDurationProbe   Op = "read track duration"

	// Lyric operations
	OpLyricFetch Op = "load lyrics"

	// Preference operations
	OpPrefsLoad Op = "load preferences"
	OpPrefsSave Op = "save preferences"

	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpPlaybackLoad  Op = "load track"
	OpPlaybackSeek  Op = "seek"

	// Initialization
	OpInitialize Op = "initialize player"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
