package source

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kyoku-cli/kyoku/player"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

type testSource struct {
	fetches  int32
	fetchErr error
	// blockFetch keeps Fetch pending until closed, so tests can observe
	// in-flight downloads.
	blockFetch chan struct{}
	media      Media
	meta       Metadata
	stream     *Media
}

func (s *testSource) Name() string { return "test" }

func (s *testSource) Search(string) ([]*Result, error) { return nil, nil }

func (s *testSource) Resolve(performer, ident string) (*Entry, error) {
	return &Entry{Ident: ident, SourceName: s.Name(), Performer: performer}, nil
}

func (s *testSource) Fetch(ctx context.Context, entry *Entry) (Media, error) {
	atomic.AddInt32(&s.fetches, 1)

	if s.blockFetch != nil {
		select {
		case <-s.blockFetch:
		case <-ctx.Done():
			return Media{}, ctx.Err()
		}
	}

	if s.fetchErr != nil {
		return Media{}, s.fetchErr
	}
	return s.media, nil
}

func (s *testSource) MissingMetadata(*Entry) (Metadata, error) { return s.meta, nil }

func (s *testSource) PlayerArgs(*Entry) []string { return nil }

type streamingSource struct {
	testSource
}

func (s *streamingSource) StreamMedia(entry *Entry) (Media, []string, bool) {
	if s.stream == nil {
		return Media{}, nil, false
	}
	return *s.stream, []string{"--stream"}, true
}

type testHandle struct {
	once   sync.Once
	exited chan struct{}
	killed int32
}

func newTestHandle() *testHandle {
	return &testHandle{exited: make(chan struct{})}
}

func (h *testHandle) Wait() error {
	<-h.exited
	return nil
}

func (h *testHandle) Kill() error {
	atomic.StoreInt32(&h.killed, 1)
	h.finish()
	return nil
}

func (h *testHandle) finish() {
	h.once.Do(func() {
		close(h.exited)
	})
}

type testLauncher struct {
	mu      sync.Mutex
	handles []*testHandle
	videos  []string
	audios  []mo.Option[string]
	options [][]string
	err     error
}

func (l *testLauncher) launch(video string, audio mo.Option[string], options ...string) (*testHandle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.err != nil {
		return nil, l.err
	}

	handle := newTestHandle()
	l.handles = append(l.handles, handle)
	l.videos = append(l.videos, video)
	l.audios = append(l.audios, audio)
	l.options = append(l.options, options)
	return handle, nil
}

func (l *testLauncher) launched() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.handles)
}

func (l *testLauncher) last() *testHandle {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.handles) == 0 {
		return nil
	}
	return l.handles[len(l.handles)-1]
}

func newTestCoordinator(src Source, launcher *testLauncher) *Coordinator {
	c := NewCoordinator(src)
	c.launch = func(video string, audio mo.Option[string], options ...string) (player.Handle, error) {
		return launcher.launch(video, audio, options...)
	}
	return c
}

func eventually(condition func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return condition()
}

func TestBuffer(t *testing.T) {
	Convey("Given a coordinator over a slow backend", t, func() {
		src := &testSource{
			blockFetch: make(chan struct{}),
			media:      Media{Video: "/tmp/video.mp4"},
		}
		c := newTestCoordinator(src, &testLauncher{})
		entry := &Entry{Ident: "song"}

		Convey("Concurrent buffering triggers a single fetch", func() {
			first := make(chan struct{})
			go func() {
				c.Buffer(entry)
				close(first)
			}()

			So(eventually(func() bool {
				return atomic.LoadInt32(&src.fetches) == 1
			}), ShouldBeTrue)

			// Joins the in-flight fetch without blocking.
			c.Buffer(entry)

			close(src.blockFetch)
			<-first

			So(atomic.LoadInt32(&src.fetches), ShouldEqual, 1)

			Convey("And buffering again after completion is a no-op", func() {
				c.Buffer(entry)
				So(atomic.LoadInt32(&src.fetches), ShouldEqual, 1)
			})
		})
	})
}

func TestEnsurePlayable(t *testing.T) {
	Convey("Given a coordinator", t, func() {
		Convey("It unblocks once the download completes", func() {
			src := &testSource{media: Media{Video: "/tmp/video.mp4"}}
			c := newTestCoordinator(src, &testLauncher{})
			entry := &Entry{Ident: "song"}

			c.EnsurePlayable(entry)
			So(atomic.LoadInt32(&src.fetches), ShouldEqual, 1)

			c.EnsurePlayable(entry)
			So(atomic.LoadInt32(&src.fetches), ShouldEqual, 1)
		})

		Convey("It unblocks when buffering fails", func() {
			src := &testSource{fetchErr: errors.New("network down")}
			c := newTestCoordinator(src, &testLauncher{})
			entry := &Entry{Ident: "song"}

			done := make(chan struct{})
			go func() {
				c.EnsurePlayable(entry)
				close(done)
			}()

			select {
			case <-done:
			case <-time.After(2 * time.Second):
				t.Fatal("EnsurePlayable never returned")
			}
		})
	})
}

func TestPlay(t *testing.T) {
	Convey("Given a buffered entry", t, func() {
		src := &testSource{media: Media{Video: "/tmp/video.mp4", Audio: mo.Some("/tmp/audio.mp3")}}
		launcher := &testLauncher{}
		c := newTestCoordinator(src, launcher)
		entry := &Entry{Ident: "song"}

		Convey("Play launches the player and waits for it to exit", func() {
			done := make(chan struct{})
			go func() {
				c.Play(entry)
				close(done)
			}()

			So(eventually(func() bool { return launcher.launched() == 1 }), ShouldBeTrue)

			launcher.last().finish()
			<-done

			So(launcher.videos[0], ShouldEqual, "/tmp/video.mp4")
			So(launcher.audios[0].MustGet(), ShouldEqual, "/tmp/audio.mp3")
			So(entry.Skip, ShouldBeFalse)
		})
	})

	Convey("Given a failing backend", t, func() {
		src := &testSource{fetchErr: errors.New("no media")}
		launcher := &testLauncher{}
		c := newTestCoordinator(src, launcher)
		entry := &Entry{Ident: "song"}

		Convey("Play returns without launching and evicts the record", func() {
			c.Play(entry)
			So(launcher.launched(), ShouldEqual, 0)

			Convey("So a later attempt fetches again", func() {
				c.Buffer(entry)
				So(atomic.LoadInt32(&src.fetches), ShouldEqual, 2)
			})
		})
	})

	Convey("Given a player that fails to start", t, func() {
		src := &testSource{media: Media{Video: "/tmp/video.mp4"}}
		launcher := &testLauncher{err: errors.New("executable not found")}
		c := newTestCoordinator(src, launcher)
		entry := &Entry{Ident: "song"}

		Convey("Play treats it as an instantly finished playback", func() {
			c.Play(entry)
			So(entry.Skip, ShouldBeFalse)
		})
	})
}

func TestSkipCurrent(t *testing.T) {
	Convey("Given an in-flight download", t, func() {
		src := &testSource{
			blockFetch: make(chan struct{}),
			media:      Media{Video: "/tmp/video.mp4"},
		}
		launcher := &testLauncher{}
		c := newTestCoordinator(src, launcher)
		entry := &Entry{Ident: "song"}

		played := make(chan struct{})
		go func() {
			c.Play(entry)
			close(played)
		}()

		So(eventually(func() bool {
			return atomic.LoadInt32(&src.fetches) == 1
		}), ShouldBeTrue)

		Convey("Skipping cancels the fetch and suppresses playback", func() {
			c.SkipCurrent(entry)

			select {
			case <-played:
			case <-time.After(2 * time.Second):
				t.Fatal("Play never returned after skip")
			}

			So(launcher.launched(), ShouldEqual, 0)
			So(entry.Skip, ShouldBeTrue)
		})
	})

	Convey("Given a running playback", t, func() {
		src := &testSource{media: Media{Video: "/tmp/video.mp4"}}
		launcher := &testLauncher{}
		c := newTestCoordinator(src, launcher)
		entry := &Entry{Ident: "song"}

		played := make(chan struct{})
		go func() {
			c.Play(entry)
			close(played)
		}()

		So(eventually(func() bool { return launcher.launched() == 1 }), ShouldBeTrue)

		Convey("Skipping kills the player and marks the entry", func() {
			c.SkipCurrent(entry)

			select {
			case <-played:
			case <-time.After(2 * time.Second):
				t.Fatal("Play never returned after skip")
			}

			So(atomic.LoadInt32(&launcher.last().killed), ShouldEqual, 1)
			So(entry.Skip, ShouldBeTrue)
		})
	})

	Convey("Given an idle coordinator", t, func() {
		src := &testSource{media: Media{Video: "/tmp/video.mp4"}}
		launcher := &testLauncher{}
		c := newTestCoordinator(src, launcher)
		entry := &Entry{Ident: "song"}

		Convey("Skipping arms the marker for the next playback", func() {
			c.SkipCurrent(entry)
			c.Play(entry)

			So(launcher.launched(), ShouldEqual, 0)
			So(entry.Skip, ShouldBeTrue)

			Convey("And the marker is consumed", func() {
				next := &Entry{Ident: "song"}
				done := make(chan struct{})
				go func() {
					c.Play(next)
					close(done)
				}()

				So(eventually(func() bool { return launcher.launched() == 1 }), ShouldBeTrue)
				launcher.last().finish()
				<-done
				So(next.Skip, ShouldBeFalse)
			})
		})
	})
}

func TestReadinessFiresOnce(t *testing.T) {
	Convey("Given waiters racing a skip against a completing fetch", t, func() {
		src := &testSource{
			blockFetch: make(chan struct{}),
			media:      Media{Video: "/tmp/video.mp4"},
		}
		c := newTestCoordinator(src, &testLauncher{})
		entry := &Entry{Ident: "song"}

		go c.Buffer(entry)
		So(eventually(func() bool {
			return atomic.LoadInt32(&src.fetches) >= 1
		}), ShouldBeTrue)

		const waiters = 8
		var released int32
		var wg sync.WaitGroup
		wg.Add(waiters)
		for i := 0; i < waiters; i++ {
			go func() {
				defer wg.Done()
				c.EnsurePlayable(entry)
				atomic.AddInt32(&released, 1)
			}()
		}

		Convey("Both ends firing at once still release everyone exactly once", func() {
			// The skip cancels the fetch while the unblocked fetch reaches its
			// terminal state; each path fires the readiness signal.
			go c.SkipCurrent(entry)
			close(src.blockFetch)

			waited := make(chan struct{})
			go func() {
				wg.Wait()
				close(waited)
			}()

			select {
			case <-waited:
			case <-time.After(2 * time.Second):
				t.Fatal("waiters never released")
			}

			So(atomic.LoadInt32(&released), ShouldEqual, waiters)

			Convey("And a late waiter returns right away", func() {
				done := make(chan struct{})
				go func() {
					c.EnsurePlayable(entry)
					close(done)
				}()

				select {
				case <-done:
				case <-time.After(2 * time.Second):
					t.Fatal("EnsurePlayable blocked after readiness")
				}
			})
		})
	})
}

func TestStreaming(t *testing.T) {
	Convey("Given a backend that supports streaming", t, func() {
		stream := Media{Video: "https://example.com/watch?v=xyz"}
		src := &streamingSource{}
		src.blockFetch = make(chan struct{})
		src.media = Media{Video: "/tmp/video.mp4"}
		src.stream = &stream
		launcher := &testLauncher{}
		c := newTestCoordinator(src, launcher)
		entry := &Entry{Ident: "song"}

		Convey("Play starts on the remote locator while buffering continues", func() {
			done := make(chan struct{})
			go func() {
				c.Play(entry)
				close(done)
			}()

			So(eventually(func() bool { return launcher.launched() == 1 }), ShouldBeTrue)
			So(launcher.videos[0], ShouldEqual, stream.Video)
			So(launcher.options[0], ShouldResemble, []string{"--stream"})

			So(eventually(func() bool {
				return atomic.LoadInt32(&src.fetches) == 1
			}), ShouldBeTrue)

			close(src.blockFetch)
			launcher.last().finish()
			<-done
		})

		Convey("A completed download is played locally", func() {
			close(src.blockFetch)
			src.blockFetch = nil
			c.EnsurePlayable(entry)

			done := make(chan struct{})
			go func() {
				c.Play(entry)
				close(done)
			}()

			So(eventually(func() bool { return launcher.launched() == 1 }), ShouldBeTrue)
			So(launcher.videos[0], ShouldEqual, "/tmp/video.mp4")

			launcher.last().finish()
			<-done
		})
	})
}

func TestCompleteMetadata(t *testing.T) {
	Convey("Given an entry with incomplete data", t, func() {
		src := &testSource{meta: Metadata{Duration: 215, Artist: "Queen"}}
		c := newTestCoordinator(src, &testLauncher{})
		entry := &Entry{Ident: "song", Duration: 180, IncompleteData: true}

		Convey("CompleteMetadata merges the second lookup", func() {
			err := c.CompleteMetadata(entry)

			So(err, ShouldBeNil)
			So(entry.Duration, ShouldEqual, 215)
			So(entry.Artist, ShouldEqual, "Queen")
			So(entry.IncompleteData, ShouldBeFalse)
		})

		Convey("Entries with complete data are left alone", func() {
			entry.IncompleteData = false
			entry.Duration = 180

			err := c.CompleteMetadata(entry)

			So(err, ShouldBeNil)
			So(entry.Duration, ShouldEqual, 180)
		})
	})
}
