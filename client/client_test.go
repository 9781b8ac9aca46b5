package client

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kyoku-cli/kyoku/filesystem"
	"github.com/kyoku-cli/kyoku/key"
	"github.com/kyoku-cli/kyoku/source"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
	"golang.org/x/net/websocket"
)

func init() {
	filesystem.SetMemMapFs()
	keyring.MockInit()
}

type testSource struct{}

func (testSource) Name() string { return "test" }

func (testSource) Search(string) ([]*source.Result, error) { return nil, nil }

func (testSource) Resolve(performer, ident string) (*source.Entry, error) {
	return &source.Entry{Ident: ident, SourceName: "test", Performer: performer}, nil
}

func (testSource) Fetch(ctx context.Context, entry *source.Entry) (source.Media, error) {
	return source.Media{Video: "/tmp/" + entry.Ident}, nil
}

func (testSource) MissingMetadata(*source.Entry) (source.Metadata, error) {
	return source.Metadata{Title: "looked up"}, nil
}

func (testSource) PlayerArgs(*source.Entry) []string { return nil }

func (testSource) ServerConfig() (map[string]any, error) {
	return map[string]any{"hello": "world"}, nil
}

// chunkedSource publishes its catalog in several config messages.
type chunkedSource struct {
	testSource
}

func (chunkedSource) Name() string { return "chunked" }

func (chunkedSource) ServerConfigChunks() ([]map[string]any, error) {
	return []map[string]any{
		{"index": []string{"a.mp4"}},
		{"index": []string{"b.mp4"}},
		{"index": []string{"c.mp4"}},
	}, nil
}

func TestNewEnvelope(t *testing.T) {
	Convey("Given a payload", t, func() {
		env, err := NewEnvelope(EventSources, sourcesPayload{Sources: []string{"test"}})

		So(err, ShouldBeNil)
		So(env.Event, ShouldEqual, EventSources)
		So(string(env.Data), ShouldContainSubstring, `"test"`)
	})

	Convey("Given no payload", t, func() {
		env, err := NewEnvelope(EventGetFirst, nil)

		So(err, ShouldBeNil)
		So(env.Data, ShouldBeNil)
	})
}

func TestServerLocation(t *testing.T) {
	Convey("Given a plain http address", t, func() {
		viper.Set(key.ServerAddress, "http://127.0.0.1:8080")

		wsURL, origin, err := serverLocation()

		So(err, ShouldBeNil)
		So(wsURL, ShouldEqual, "ws://127.0.0.1:8080/client")
		So(origin, ShouldEqual, "http://127.0.0.1:8080")
	})

	Convey("Given an https address", t, func() {
		viper.Set(key.ServerAddress, "https://sing.example.com")

		wsURL, _, err := serverLocation()

		So(err, ShouldBeNil)
		So(wsURL, ShouldEqual, "wss://sing.example.com/client")
	})
}

func TestRegistration(t *testing.T) {
	Convey("Given a queue server", t, func() {
		type received struct {
			env Envelope
			err error
		}

		fromClient := make(chan received, 16)

		server := httptest.NewServer(websocket.Handler(func(ws *websocket.Conn) {
			var env Envelope
			err := websocket.JSON.Receive(ws, &env)
			fromClient <- received{env, err}
			if err != nil {
				return
			}

			// Accept the registration.
			out, _ := NewEnvelope(EventClientRegistered, registeredPayload{
				Success: true,
				Room:    "WXYZ",
			})
			_ = websocket.JSON.Send(ws, out)

			for {
				var relayed Envelope
				if err := websocket.JSON.Receive(ws, &relayed); err != nil {
					return
				}
				fromClient <- received{relayed, nil}
			}
		}))
		defer server.Close()

		viper.Set(key.ServerAddress, server.URL)
		viper.Set(key.ServerRoom, "")

		coordinators := map[string]*source.Coordinator{
			"test": source.NewCoordinator(testSource{}),
		}

		c, err := New(coordinators)
		So(err, ShouldBeNil)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		done := make(chan error, 1)
		go func() {
			done <- c.Run(ctx)
		}()

		next := func() Envelope {
			select {
			case r := <-fromClient:
				So(r.err, ShouldBeNil)
				return r.env
			case <-time.After(2 * time.Second):
				t.Fatal("no frame from client")
				return Envelope{}
			}
		}

		Convey("The client registers and announces its backends", func() {
			So(next().Event, ShouldEqual, EventRegisterClient)
			So(next().Event, ShouldEqual, EventSources)
			So(next().Event, ShouldEqual, EventGetFirst)
			So(c.Room(), ShouldEqual, "WXYZ")

			cancel()
			<-done
		})
	})
}

func TestRequestConfig(t *testing.T) {
	Convey("Given a server asking for backend configs", t, func() {
		fromClient := make(chan Envelope, 16)

		server := httptest.NewServer(websocket.Handler(func(ws *websocket.Conn) {
			var env Envelope
			if err := websocket.JSON.Receive(ws, &env); err != nil {
				return
			}

			out, _ := NewEnvelope(EventClientRegistered, registeredPayload{
				Success: true,
				Room:    "WXYZ",
			})
			_ = websocket.JSON.Send(ws, out)

			for _, name := range []string{"test", "chunked"} {
				out, _ = NewEnvelope(EventRequestConfig, requestConfigPayload{Source: name})
				_ = websocket.JSON.Send(ws, out)
			}

			for {
				// A fresh envelope per frame so the raw Data bytes of one
				// relayed message are not clobbered by the next receive.
				var relayed Envelope
				if err := websocket.JSON.Receive(ws, &relayed); err != nil {
					return
				}
				fromClient <- relayed
			}
		}))
		defer server.Close()

		viper.Set(key.ServerAddress, server.URL)
		viper.Set(key.ServerRoom, "")

		c, err := New(map[string]*source.Coordinator{
			"test":    source.NewCoordinator(testSource{}),
			"chunked": source.NewCoordinator(chunkedSource{}),
		})
		So(err, ShouldBeNil)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go func() {
			_ = c.Run(ctx)
		}()

		nextOf := func(event string) Envelope {
			for {
				select {
				case env := <-fromClient:
					if env.Event == event {
						return env
					}
				case <-time.After(2 * time.Second):
					t.Fatalf("no %q frame from client", event)
					return Envelope{}
				}
			}
		}

		Convey("A map-shaped config goes out as a single message", func() {
			env := nextOf(EventConfig)

			var payload configPayload
			So(json.Unmarshal(env.Data, &payload), ShouldBeNil)
			So(payload.Source, ShouldEqual, "test")
			So(payload.Config["hello"], ShouldEqual, "world")
		})

		Convey("A list-shaped config goes out as numbered chunks", func() {
			var chunks []configChunkPayload
			for len(chunks) < 3 {
				env := nextOf(EventConfigChunk)

				var payload configChunkPayload
				So(json.Unmarshal(env.Data, &payload), ShouldBeNil)
				chunks = append(chunks, payload)
			}

			for i, chunk := range chunks {
				So(chunk.Source, ShouldEqual, "chunked")
				So(chunk.Number, ShouldEqual, i+1)
				So(chunk.Total, ShouldEqual, 3)
			}
			So(chunks[0].Config["index"], ShouldResemble, []any{"a.mp4"})
		})
	})
}
