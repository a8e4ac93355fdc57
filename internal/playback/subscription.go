package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber. Sends never block;
// a subscriber that falls behind loses events, and can resync through
// Controller.Snapshot.
type Subscription struct {
	StateChanged   <-chan StateChange
	TrackChanged   <-chan TrackChange
	LyricChanged   <-chan LyricChange
	CatalogChanged <-chan CatalogChange
	Notice         <-chan Notice
	Done           <-chan struct{}

	// Internal write channels
	stateCh   chan StateChange
	trackCh   chan TrackChange
	lyricCh   chan LyricChange
	catalogCh chan CatalogChange
	noticeCh  chan Notice
	doneCh    chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:   make(chan StateChange, eventBufferSize),
		trackCh:   make(chan TrackChange, eventBufferSize),
		lyricCh:   make(chan LyricChange, eventBufferSize),
		catalogCh: make(chan CatalogChange, eventBufferSize),
		noticeCh:  make(chan Notice, eventBufferSize),
		doneCh:    make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.TrackChanged = s.trackCh
	s.LyricChanged = s.lyricCh
	s.CatalogChanged = s.catalogCh
	s.Notice = s.noticeCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

func send[T any](ch chan T, e T) {
	select {
	case ch <- e:
	default:
		// Drop if buffer full
	}
}

func (s *Subscription) sendState(e StateChange)     { send(s.stateCh, e) }
func (s *Subscription) sendTrack(e TrackChange)     { send(s.trackCh, e) }
func (s *Subscription) sendLyric(e LyricChange)     { send(s.lyricCh, e) }
func (s *Subscription) sendCatalog(e CatalogChange) { send(s.catalogCh, e) }
func (s *Subscription) sendNotice(e Notice)         { send(s.noticeCh, e) }
