// Package source defines the domain models, the backend fetch contract and the
// per-backend coordinator that drives buffering and playback.
package source

import (
	"context"
	"sync"

	"github.com/kyoku-cli/kyoku/log"
	"github.com/kyoku-cli/kyoku/player"
)

// gate is a one-shot readiness signal. Firing it more than once is a no-op.
type gate struct {
	once sync.Once
	ch   chan struct{}
}

func newGate() *gate {
	return &gate{ch: make(chan struct{})}
}

func (g *gate) fire() {
	g.once.Do(func() {
		close(g.ch)
	})
}

func (g *gate) done() <-chan struct{} {
	return g.ch
}

// download tracks the buffering state of a single identifier.
// All fields except ready are guarded by the coordinator mutex.
type download struct {
	ready     *gate
	media     Media
	buffering bool
	complete  bool
	failed    bool
	cancel    context.CancelFunc
}

// Coordinator drives buffering and playback for one backend. It guarantees a
// single in-flight fetch per identifier, a one-shot readiness signal per
// download and a skip protocol that interrupts any stage of the pipeline.
//
// Fetch errors never escape: they become sticky download state that Play
// consumes. A failed record is evicted only when Play observes it, so a
// subsequent request for the same identifier can retry.
type Coordinator struct {
	src    Source
	launch player.LaunchFunc

	mu       sync.Mutex
	files    map[string]*download
	proc     player.Handle
	skipNext bool
}

// NewCoordinator creates a coordinator for the given backend.
func NewCoordinator(src Source) *Coordinator {
	return &Coordinator{
		src:    src,
		launch: player.Launch,
		files:  make(map[string]*download),
	}
}

// Source returns the backend this coordinator drives.
func (c *Coordinator) Source() Source {
	return c.src
}

// file returns the download record for the identifier, creating it on first
// use. The caller must hold c.mu.
func (c *Coordinator) file(ident string) *download {
	dl, ok := c.files[ident]
	if !ok {
		dl = &download{ready: newGate()}
		c.files[ident] = dl
	}
	return dl
}

// Buffer fetches the media for the entry. If a fetch for the same identifier
// is already in flight the call returns immediately and the in-flight fetch
// proceeds alone; otherwise the call blocks until the download reaches a
// terminal state or is cancelled by a skip.
func (c *Coordinator) Buffer(entry *Entry) {
	c.mu.Lock()
	dl := c.file(entry.Ident)
	if dl.buffering || dl.complete || dl.failed {
		c.mu.Unlock()
		return
	}
	dl.buffering = true
	ctx, cancel := context.WithCancel(context.Background())
	dl.cancel = cancel
	c.mu.Unlock()

	log.Debugf("buffering %q from %s", entry.Ident, c.src.Name())

	type outcome struct {
		media Media
		err   error
	}

	fetched := make(chan outcome, 1)
	go func() {
		media, err := c.src.Fetch(ctx, entry)
		fetched <- outcome{media: media, err: err}
	}()

	select {
	case out := <-fetched:
		c.mu.Lock()
		dl.buffering = false
		if out.err != nil {
			log.Errorf("buffering %q failed: %v", entry.Ident, out.err)
			dl.failed = true
		} else {
			dl.media = out.media
			dl.complete = true
		}
		c.mu.Unlock()
	case <-ctx.Done():
		// Skipped mid-fetch. The fetch goroutine unwinds on its own once
		// the backend notices the cancelled context.
	}

	dl.ready.fire()
}

// EnsurePlayable buffers the entry and blocks until its download has reached
// a terminal state. It returns immediately when the download already has.
func (c *Coordinator) EnsurePlayable(entry *Entry) {
	c.mu.Lock()
	dl := c.file(entry.Ident)
	c.mu.Unlock()

	c.Buffer(entry)
	<-dl.ready.done()
}

// Play waits for the entry to be playable and then runs the player on it,
// blocking until playback ends. A failed download evicts the record and
// returns without playing. A pending or mid-playback skip marks the entry
// instead of (or in addition to) playing it.
func (c *Coordinator) Play(entry *Entry) {
	if media, options, ok := c.streamable(entry); ok {
		go c.Buffer(entry)
		c.playMedia(entry, media, options)
		return
	}

	c.EnsurePlayable(entry)

	c.mu.Lock()
	dl := c.file(entry.Ident)
	if dl.failed {
		delete(c.files, entry.Ident)
		c.mu.Unlock()
		log.Errorf("not playing %q, buffering failed", entry.Ident)
		return
	}
	media := dl.media
	c.mu.Unlock()

	c.playMedia(entry, media, c.src.PlayerArgs(entry))
}

// streamable reports whether the entry should be played off a remote locator
// instead of waiting for the download to finish.
func (c *Coordinator) streamable(entry *Entry) (Media, []string, bool) {
	streamer, ok := c.src.(Streamer)
	if !ok {
		return Media{}, nil, false
	}

	c.mu.Lock()
	complete := c.file(entry.Ident).complete
	c.mu.Unlock()
	if complete {
		return Media{}, nil, false
	}

	return streamer.StreamMedia(entry)
}

// playMedia launches the player and waits for it to exit. The launch happens
// under the coordinator lock so a concurrent skip either lands before the
// launch (suppressing it) or finds a live handle to kill.
func (c *Coordinator) playMedia(entry *Entry, media Media, options []string) {
	c.mu.Lock()
	if c.skipNext {
		c.skipNext = false
		entry.Skip = true
		c.mu.Unlock()
		return
	}

	proc, err := c.launch(media.Video, media.Audio, options...)
	if err != nil {
		c.mu.Unlock()
		// Treated as an instantly finished playback.
		log.Errorf("playing %q failed: %v", entry.Ident, err)
		return
	}
	c.proc = proc
	c.mu.Unlock()

	if err := proc.Wait(); err != nil {
		log.Warnf("player for %q exited: %v", entry.Ident, err)
	}

	c.mu.Lock()
	c.proc = nil
	if c.skipNext {
		c.skipNext = false
		entry.Skip = true
	}
	c.mu.Unlock()
}

// SkipCurrent aborts whatever stage the entry is in. It arms the skip marker
// for the next (or current) playback, cancels an in-flight fetch, releases
// any waiter blocked on readiness and kills a running player. Skipping an
// idle coordinator only arms the marker.
func (c *Coordinator) SkipCurrent(entry *Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	log.Debugf("skipping %q", entry.Ident)

	c.skipNext = true

	dl := c.file(entry.Ident)
	dl.buffering = false
	if dl.cancel != nil {
		dl.cancel()
	}
	dl.ready.fire()

	if c.proc != nil {
		if err := c.proc.Kill(); err != nil {
			log.Warnf("killing player failed: %v", err)
		}
	}
}

// CompleteMetadata runs the backend's second metadata lookup for entries that
// were resolved with incomplete data.
func (c *Coordinator) CompleteMetadata(entry *Entry) error {
	if !entry.IncompleteData {
		return nil
	}

	meta, err := c.src.MissingMetadata(entry)
	if err != nil {
		return err
	}
	entry.ApplyMetadata(meta)
	return nil
}
