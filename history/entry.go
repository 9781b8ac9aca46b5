package history

import (
	"fmt"
	"time"

	"github.com/kyoku-cli/kyoku/source"
)

// SavedEntry represents a performed song preserved in the local history.
type SavedEntry struct {
	SourceName string `json:"source"`
	Ident      string `json:"ident"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Album      string `json:"album"`
	Performer  string `json:"performer"`

	TimesPlayed  int       `json:"times_played"`
	LastPlayedAt time.Time `json:"last_played_at"`
}

func (s *SavedEntry) encode() string {
	return fmt.Sprintf("%s (%s)", s.Ident, s.SourceName)
}

func (s *SavedEntry) String() string {
	if s.Artist != "" && s.Artist != "Unknown" {
		return fmt.Sprintf("%s - %s", s.Artist, s.Title)
	}
	return s.Title
}

func newSavedEntry(entry *source.Entry) *SavedEntry {
	return &SavedEntry{
		SourceName: entry.SourceName,
		Ident:      entry.Ident,
		Title:      entry.Title,
		Artist:     entry.Artist,
		Album:      entry.Album,
		Performer:  entry.Performer,
	}
}

// Entry converts the record back into a playable entry.
func (s *SavedEntry) Entry() *source.Entry {
	return &source.Entry{
		Ident:      s.Ident,
		SourceName: s.SourceName,
		Performer:  s.Performer,
		Title:      s.Title,
		Artist:     s.Artist,
		Album:      s.Album,
	}
}
