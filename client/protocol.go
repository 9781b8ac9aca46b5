// Package client connects to a shared queue server and plays whatever the
// room decides, acting as the playback half of a networked karaoke session.
package client

import (
	"encoding/json"

	"github.com/kyoku-cli/kyoku/source"
)

// Events received from the server.
const (
	EventPlay             = "play"
	EventSkip             = "skip"
	EventState            = "state"
	EventBuffer           = "buffer"
	EventClientRegistered = "client-registered"
	EventRequestConfig    = "request-config"
)

// Events emitted to the server.
const (
	EventRegisterClient = "register-client"
	EventSources        = "sources"
	EventGetFirst       = "get-first"
	EventMetaInfo       = "meta-info"
	EventPopThenGetNext = "pop-then-get-next"
	EventConfig         = "config"
	EventConfigChunk    = "config-chunk"
)

// Envelope is the wire frame. The payload schema depends on the event.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// NewEnvelope wraps a payload for sending.
func NewEnvelope(event string, data any) (Envelope, error) {
	if data == nil {
		return Envelope{Event: event}, nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Event: event, Data: raw}, nil
}

// registerPayload announces this client and restores its queue after a
// reconnect.
type registerPayload struct {
	Room   string          `json:"room,omitempty"`
	Secret string          `json:"secret"`
	Queue  []*source.Entry `json:"queue"`
}

// registeredPayload is the server's answer to a registration.
type registeredPayload struct {
	Success bool   `json:"success"`
	Room    string `json:"room"`
}

// sourcesPayload lists the backends this client can play from.
type sourcesPayload struct {
	Sources []string `json:"sources"`
}

// metaInfoPayload carries late metadata for a queued entry.
type metaInfoPayload struct {
	UUID string          `json:"uuid"`
	Meta source.Metadata `json:"meta"`
}

// requestConfigPayload asks for a backend's server-side configuration.
type requestConfigPayload struct {
	Source string `json:"source"`
}

// configPayload answers a config request in a single message.
type configPayload struct {
	Source string         `json:"source"`
	Config map[string]any `json:"config"`
}

// configChunkPayload carries one piece of a config too large for a single
// frame. Number is 1-based; the server has the whole config once it has
// received Total chunks.
type configChunkPayload struct {
	Source string         `json:"source"`
	Config map[string]any `json:"config"`
	Number int            `json:"number"`
	Total  int            `json:"total"`
}
