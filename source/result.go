// Package source defines the domain models, the backend fetch contract and the
// per-backend coordinator that drives buffering and playback.
package source

import (
	"fmt"
	"strings"

	"github.com/kyoku-cli/kyoku/util"
)

// Result models a search hit produced by a backend. It is purely descriptive
// and never mutated after construction.
type Result struct {
	// Ident is the backend-specific identifier of the song.
	Ident string `json:"ident"`
	// SourceName is the name of the backend that produced the hit.
	SourceName string `json:"source"`

	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album"`
}

// String returns a human readable identification of the result.
func (r *Result) String() string {
	if r.Artist != "" && r.Artist != "Unknown" {
		return fmt.Sprintf("%s - %s", r.Artist, r.Title)
	}
	return r.Title
}

// ResultFromFilename infers a result from a filename of the form
//
//	{artist} - {title} - {album}.ext
//
// If parsing fails, the whole filename is used as the title and the artist
// and album are marked "Unknown". This is a best-effort fallback, never an
// error.
func ResultFromFilename(filename, sourceName string) *Result {
	stem := util.FileStem(filename)
	parts := strings.Split(stem, " - ")

	if len(parts) < 3 {
		return &Result{
			Ident:      filename,
			SourceName: sourceName,
			Title:      stem,
			Artist:     "Unknown",
			Album:      "Unknown",
		}
	}

	return &Result{
		Ident:      filename,
		SourceName: sourceName,
		Artist:     strings.TrimSpace(parts[0]),
		Title:      strings.TrimSpace(parts[1]),
		Album:      strings.TrimSpace(strings.Join(parts[2:], " - ")),
	}
}
