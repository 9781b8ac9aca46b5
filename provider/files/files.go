// Package files implements the backend for a local directory of karaoke
// files. Filenames are expected to follow "artist - title - album.ext".
package files

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kyoku-cli/kyoku/filesystem"
	"github.com/kyoku-cli/kyoku/key"
	"github.com/kyoku-cli/kyoku/source"
	"github.com/kyoku-cli/kyoku/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Name is the registry identifier of the backend.
const Name = "files"

// videoExtensions lists the playable container formats, CD+G graphics included.
var videoExtensions = map[string]bool{
	".cdg":  true,
	".mp4":  true,
	".mkv":  true,
	".webm": true,
	".avi":  true,
	".mov":  true,
	".mpg":  true,
}

// audioExtensions lists the formats probed for the audio sibling of a CD+G file.
var audioExtensions = []string{".mp3", ".ogg", ".wav"}

// Files serves songs from a directory on disk. Identifiers are paths
// relative to that directory.
type Files struct {
	dir string
}

// New creates the backend rooted at the configured directory.
func New() (source.Source, error) {
	dir := viper.GetString(key.FilesDir)
	if dir == "" {
		return nil, fmt.Errorf("no files directory configured, set %s", key.FilesDir)
	}
	return &Files{dir: filepath.Clean(dir)}, nil
}

func (f *Files) Name() string {
	return Name
}

// Search walks the directory once and keeps the files whose name contains
// every query word.
func (f *Files) Search(query string) ([]*source.Result, error) {
	index, err := f.index()
	if err != nil {
		return nil, err
	}

	matches := source.FilterByQuery(query, index)
	return lo.Map(matches, func(path string, _ int) *source.Result {
		return source.ResultFromFilename(path, Name)
	}), nil
}

// Resolve parses the entry metadata straight out of the filename. There is
// nothing left to look up later, so the entry is always complete.
func (f *Files) Resolve(performer, ident string) (*source.Entry, error) {
	result := source.ResultFromFilename(ident, Name)

	return &source.Entry{
		Ident:      ident,
		SourceName: Name,
		Performer:  performer,
		Title:      result.Title,
		Artist:     result.Artist,
		Album:      result.Album,
	}, nil
}

func (f *Files) MissingMetadata(*source.Entry) (source.Metadata, error) {
	return source.Metadata{}, nil
}

// Fetch checks the file exists and, for CD+G graphics, locates the matching
// audio file next to it. Local files need no downloading.
func (f *Files) Fetch(_ context.Context, entry *source.Entry) (source.Media, error) {
	path := filepath.Join(f.dir, entry.Ident)

	exists, err := afero.Exists(filesystem.API(), path)
	if err != nil {
		return source.Media{}, err
	}
	if !exists {
		return source.Media{}, fmt.Errorf("%s: no such file", path)
	}

	if !isCDG(path) {
		return source.Media{Video: path, Audio: mo.None[string]()}, nil
	}

	audio, err := f.audioSibling(path)
	if err != nil {
		return source.Media{}, err
	}
	return source.Media{Video: path, Audio: mo.Some(audio)}, nil
}

// PlayerArgs enables oversampled scaling for the low resolution CD+G format.
func (f *Files) PlayerArgs(entry *source.Entry) []string {
	if isCDG(entry.Ident) {
		return []string{"--scale=oversample"}
	}
	return nil
}

// configChunkSize bounds the number of index entries per config message so
// a large catalog never produces an oversized frame.
const configChunkSize = 1000

// ServerConfigChunks publishes the file catalog so a queue server can search
// it on behalf of room guests. The index is split into chunks, sent as one
// message each.
func (f *Files) ServerConfigChunks() ([]map[string]any, error) {
	index, err := f.index()
	if err != nil {
		return nil, err
	}
	return chunkIndex(index, configChunkSize), nil
}

// chunkIndex slices the index into config messages of at most size entries.
// An empty index still yields one chunk so the server learns the backend
// has nothing to offer.
func chunkIndex(index []string, size int) []map[string]any {
	if len(index) == 0 {
		return []map[string]any{{"index": []string{}}}
	}

	var chunks []map[string]any
	for start := 0; start < len(index); start += size {
		end := util.Min(start+size, len(index))
		chunks = append(chunks, map[string]any{"index": index[start:end]})
	}
	return chunks
}

// index collects the relative paths of all playable files under the root.
func (f *Files) index() ([]string, error) {
	var paths []string

	err := afero.Walk(filesystem.API(), f.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !videoExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		rel, err := filepath.Rel(f.dir, path)
		if err != nil {
			return err
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return paths, nil
}

// audioSibling finds the audio track that accompanies a CD+G file.
func (f *Files) audioSibling(path string) (string, error) {
	base := strings.TrimSuffix(path, filepath.Ext(path))

	for _, ext := range audioExtensions {
		candidate := base + ext
		if exists, _ := afero.Exists(filesystem.API(), candidate); exists {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%s: no audio file next to it", path)
}

func isCDG(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".cdg")
}
