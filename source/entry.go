// Package source defines the domain models, the backend fetch contract and the
// per-backend coordinator that drives buffering and playback.
package source

import "fmt"

// Entry represents a queued request to play a specific song from a specific backend.
// It is read-only once constructed; only the coordinator sets the Skip marker.
type Entry struct {
	// UUID is assigned by the queue server, empty in purely local sessions.
	UUID string `json:"uuid,omitempty"`
	// Ident is the backend-specific identifier (a URL, a file path, a storage key).
	Ident string `json:"ident"`
	// SourceName is the name of the backend this entry belongs to.
	SourceName string `json:"source"`
	// Performer is the person singing.
	Performer string `json:"performer"`

	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album"`
	// Duration of the song in seconds.
	Duration int `json:"duration"`

	// IncompleteData marks entries whose metadata still needs a second lookup.
	IncompleteData bool `json:"incomplete_data"`
	// Skip is set by the coordinator when the entry was skipped rather than
	// played to completion.
	Skip bool `json:"skip"`
}

// String returns a human readable identification of the entry.
func (e *Entry) String() string {
	if e.Artist != "" {
		return fmt.Sprintf("%s - %s", e.Artist, e.Title)
	}
	if e.Title != "" {
		return e.Title
	}
	return e.Ident
}

// Metadata carries late-arriving entry fields produced by Source.MissingMetadata.
type Metadata struct {
	Duration int    `json:"duration,omitempty"`
	Title    string `json:"title,omitempty"`
	Artist   string `json:"artist,omitempty"`
	Album    string `json:"album,omitempty"`
}

// IsZero reports whether the metadata contains no information.
func (m Metadata) IsZero() bool {
	return m == Metadata{}
}

// ApplyMetadata merges the non-empty metadata fields into the entry and
// clears the incomplete-data marker.
func (e *Entry) ApplyMetadata(m Metadata) {
	if m.Duration != 0 {
		e.Duration = m.Duration
	}
	if m.Title != "" {
		e.Title = m.Title
	}
	if m.Artist != "" {
		e.Artist = m.Artist
	}
	if m.Album != "" {
		e.Album = m.Album
	}
	e.IncompleteData = false
}
