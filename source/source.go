// Package source defines the domain models, the backend fetch contract and the
// per-backend coordinator that drives buffering and playback.
package source

import (
	"context"

	"github.com/samber/mo"
)

// Media holds the local (or streamable) locations of a buffered song.
type Media struct {
	// Video is the location of the video part of the song.
	Video string `json:"video"`
	// Audio is the location of the audio part, absent when the video
	// container already includes the audio track.
	Audio mo.Option[string] `json:"audio"`
}

// Source defines the required capabilities of a media backend.
// The coordinator consumes this contract; it never implements it.
type Source interface {
	// Name returns the unique identifier for the backend.
	Name() string

	// Search executes a query against the backend to discover matching songs.
	Search(query string) ([]*Result, error)

	// Resolve builds a playable entry from a raw identifier, filling in
	// whatever metadata is cheaply available immediately.
	Resolve(performer, ident string) (*Entry, error)

	// Fetch downloads or prepares all files needed to play the entry and
	// returns their locations. It may take arbitrarily long and must unwind
	// cleanly when the context is cancelled.
	Fetch(ctx context.Context, entry *Entry) (Media, error)

	// MissingMetadata fills in fields that were unavailable at resolve time.
	// It returns a zero Metadata when nothing is missing.
	MissingMetadata(entry *Entry) (Metadata, error)

	// PlayerArgs returns backend-specific extra arguments for the player.
	PlayerArgs(entry *Entry) []string
}

// Configurer is implemented by backends that publish configuration to the
// queue server, e.g. the catalog of locally available files, so the server
// can offer them to searching guests.
type Configurer interface {
	ServerConfig() (map[string]any, error)
}

// ChunkedConfigurer is implemented by backends whose server configuration is
// too large for a single frame, such as a whole file catalog. Each chunk is
// published as its own message and the server reassembles them in order.
type ChunkedConfigurer interface {
	ServerConfigChunks() ([]map[string]any, error)
}

// Streamer is implemented by backends that can hand a remote locator to the
// player before buffering has finished. When it reports true, Play starts
// the player directly on the returned media while the full fetch continues
// in the background for future replays.
type Streamer interface {
	StreamMedia(entry *Entry) (media Media, options []string, ok bool)
}
