// Package client connects to a shared queue server and plays whatever the
// room decides, acting as the playback half of a networked karaoke session.
package client

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"sync"

	"github.com/kyoku-cli/kyoku/auth"
	"github.com/kyoku-cli/kyoku/history"
	"github.com/kyoku-cli/kyoku/key"
	"github.com/kyoku-cli/kyoku/log"
	"github.com/kyoku-cli/kyoku/source"
	"github.com/spf13/viper"
	"golang.org/x/net/websocket"
)

// Client drives coordinators on behalf of a remote queue server. The server
// owns the queue; this client buffers, plays and reports back.
type Client struct {
	coordinators map[string]*source.Coordinator
	room         string
	secret       string

	mu      sync.Mutex
	wmu     sync.Mutex
	conn    *websocket.Conn
	current *source.Coordinator
	playing *source.Entry
	queue   []*source.Entry
}

// New creates a client over the given coordinators, keyed by backend name.
// The room secret comes from the system keyring, generated on first use.
func New(coordinators map[string]*source.Coordinator) (*Client, error) {
	secret, err := roomSecret()
	if err != nil {
		return nil, err
	}

	return &Client{
		coordinators: coordinators,
		room:         viper.GetString(key.ServerRoom),
		secret:       secret,
	}, nil
}

// Run connects to the configured server, registers and processes events
// until the connection drops or the context is cancelled.
func (c *Client) Run(ctx context.Context) error {
	wsURL, origin, err := serverLocation()
	if err != nil {
		return err
	}

	conn, err := websocket.Dial(wsURL, "", origin)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", wsURL, err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	log.Infof("connected to %s", wsURL)

	if err = c.register(); err != nil {
		return err
	}

	for {
		var env Envelope
		if err = websocket.JSON.Receive(conn, &env); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("receive: %w", err)
		}

		c.dispatch(env)
	}
}

// Room returns the room code assigned by the server.
func (c *Client) Room() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.room
}

func (c *Client) register() error {
	c.mu.Lock()
	payload := registerPayload{
		Room:   c.room,
		Secret: c.secret,
		Queue:  c.queue,
	}
	c.mu.Unlock()

	return c.emit(EventRegisterClient, payload)
}

func (c *Client) dispatch(env Envelope) {
	var err error

	switch env.Event {
	case EventPlay:
		// Playback blocks until the song ends; it runs on its own goroutine
		// so skip and state events still get through.
		go func() {
			if err := c.handlePlay(env.Data); err != nil {
				log.Errorf("handling %q: %v", EventPlay, err)
			}
		}()
	case EventSkip:
		c.handleSkip()
	case EventState:
		err = c.handleState(env.Data)
	case EventBuffer:
		err = c.handleBuffer(env.Data)
	case EventClientRegistered:
		err = c.handleRegistered(env.Data)
	case EventRequestConfig:
		err = c.handleRequestConfig(env.Data)
	default:
		log.Debugf("ignoring unknown event %q", env.Event)
	}

	if err != nil {
		log.Errorf("handling %q: %v", env.Event, err)
	}
}

// handlePlay buffers and plays the entry, then asks for the next one. Play
// failures are not fatal: the queue must keep moving.
func (c *Client) handlePlay(data json.RawMessage) error {
	var entry source.Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return err
	}

	coord, ok := c.coordinators[entry.SourceName]
	if !ok {
		return fmt.Errorf("no backend named %q", entry.SourceName)
	}

	log.Infof("playing %s", &entry)

	if err := coord.CompleteMetadata(&entry); err == nil && entry.UUID != "" {
		_ = c.emit(EventMetaInfo, metaInfoPayload{
			UUID: entry.UUID,
			Meta: source.Metadata{
				Title:    entry.Title,
				Artist:   entry.Artist,
				Album:    entry.Album,
				Duration: entry.Duration,
			},
		})
	}

	c.mu.Lock()
	c.current = coord
	c.playing = &entry
	c.mu.Unlock()

	coord.Play(&entry)

	if !entry.Skip && viper.GetBool(key.HistorySaveOnPlay) {
		if err := history.Save(&entry); err != nil {
			log.Warnf("saving history: %v", err)
		}
	}

	c.mu.Lock()
	c.current = nil
	c.playing = nil
	c.mu.Unlock()

	return c.emit(EventPopThenGetNext, nil)
}

func (c *Client) handleSkip() {
	c.mu.Lock()
	coord, entry := c.current, c.playing
	c.mu.Unlock()

	if coord == nil || entry == nil {
		log.Debug("skip requested while idle")
		return
	}

	log.Infof("skipping %s", entry)
	coord.SkipCurrent(entry)
}

// handleState mirrors the server's queue so a reconnect can restore it.
func (c *Client) handleState(data json.RawMessage) error {
	var queue []*source.Entry
	if err := json.Unmarshal(data, &queue); err != nil {
		return err
	}

	c.mu.Lock()
	c.queue = queue
	c.mu.Unlock()
	return nil
}

// handleBuffer starts downloading an upcoming entry ahead of time and
// reports its late metadata.
func (c *Client) handleBuffer(data json.RawMessage) error {
	var entry source.Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return err
	}

	coord, ok := c.coordinators[entry.SourceName]
	if !ok {
		return fmt.Errorf("no backend named %q", entry.SourceName)
	}

	go coord.Buffer(&entry)

	meta, err := coord.Source().MissingMetadata(&entry)
	if err != nil {
		return err
	}

	return c.emit(EventMetaInfo, metaInfoPayload{UUID: entry.UUID, Meta: meta})
}

func (c *Client) handleRegistered(data json.RawMessage) error {
	var payload registeredPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}

	if !payload.Success {
		return fmt.Errorf("registration rejected")
	}

	c.mu.Lock()
	c.room = payload.Room
	idle := c.current == nil
	c.mu.Unlock()

	fmt.Printf("Join using code: %s\n", payload.Room)

	names := make([]string, 0, len(c.coordinators))
	for name := range c.coordinators {
		names = append(names, name)
	}
	if err := c.emit(EventSources, sourcesPayload{Sources: names}); err != nil {
		return err
	}

	if idle {
		return c.emit(EventGetFirst, nil)
	}
	return nil
}

func (c *Client) handleRequestConfig(data json.RawMessage) error {
	var payload requestConfigPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}

	coord, ok := c.coordinators[payload.Source]
	if !ok {
		return fmt.Errorf("no backend named %q", payload.Source)
	}

	// A list-shaped config goes out as one message per chunk so a large
	// catalog never exceeds the frame size.
	if chunked, ok := coord.Source().(source.ChunkedConfigurer); ok {
		chunks, err := chunked.ServerConfigChunks()
		if err != nil {
			return err
		}

		for i, chunk := range chunks {
			err = c.emit(EventConfigChunk, configChunkPayload{
				Source: payload.Source,
				Config: chunk,
				Number: i + 1,
				Total:  len(chunks),
			})
			if err != nil {
				return err
			}
		}
		return nil
	}

	config := map[string]any{}
	if configurer, ok := coord.Source().(source.Configurer); ok {
		var err error
		if config, err = configurer.ServerConfig(); err != nil {
			return err
		}
	}

	return c.emit(EventConfig, configPayload{Source: payload.Source, Config: config})
}

func (c *Client) emit(event string, data any) error {
	env, err := NewEnvelope(event, data)
	if err != nil {
		return err
	}

	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return fmt.Errorf("not connected")
	}

	c.wmu.Lock()
	defer c.wmu.Unlock()
	return websocket.JSON.Send(conn, env)
}

// serverLocation maps the configured http(s) address onto its websocket
// endpoint and origin.
func serverLocation() (wsURL, origin string, err error) {
	addr := viper.GetString(key.ServerAddress)

	parsed, err := url.Parse(addr)
	if err != nil {
		return "", "", fmt.Errorf("server address: %w", err)
	}

	scheme := "ws"
	if parsed.Scheme == "https" {
		scheme = "wss"
	}

	endpoint := url.URL{Scheme: scheme, Host: parsed.Host, Path: "/client"}
	return endpoint.String(), addr, nil
}

// roomSecret loads the keyring secret, creating one on first run. The secret
// lets the server recognize this client across reconnects.
func roomSecret() (string, error) {
	if secret, err := auth.GetRoomSecret(); err == nil && secret != "" {
		return secret, nil
	}

	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	secret := hex.EncodeToString(raw)

	if err := auth.SetRoomSecret(secret); err != nil {
		// A keyring may be unavailable on headless systems; a per-session
		// secret still works, reconnects just lose the queue.
		log.Warnf("storing room secret: %v", err)
	}

	return secret, nil
}
