// Package history tracks and persists the songs performed in past sessions.
package history

import (
	"time"

	"github.com/kyoku-cli/kyoku/filesystem"
	"github.com/kyoku-cli/kyoku/source"
	"github.com/kyoku-cli/kyoku/where"
	"github.com/metafates/gache"
)

// cacher is the disk-backed registry of performed songs.
var cacher = gache.New[map[string]*SavedEntry](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns all recorded performances.
func Get() (map[string]*SavedEntry, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*SavedEntry), nil
	}
	return cached, nil
}

// Save records a performance of the entry, incrementing the play counter on
// repeat performances.
func Save(entry *source.Entry) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	record := newSavedEntry(entry)
	if existing, ok := saved[record.encode()]; ok {
		record.TimesPlayed = existing.TimesPlayed
	}
	record.TimesPlayed++
	record.LastPlayedAt = time.Now()

	saved[record.encode()] = record

	return cacher.Set(saved)
}

// Remove permanently deletes a performance record.
func Remove(entry *SavedEntry) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, entry.encode())
	return cacher.Set(saved)
}
