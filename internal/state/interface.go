package state

// Interface defines the preferences store contract for dependency injection and testing.
type Interface interface {
	Load() Preferences
	Save(partial Preferences)
	Flush()
	Close() error
}

// Verify Store implements Interface at compile time.
var _ Interface = (*Store)(nil)
