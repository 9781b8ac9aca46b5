// Package cache provides a filesystem-backed store with a TTL for search
// results and other transient backend data.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kyoku-cli/kyoku/filesystem"
	"github.com/kyoku-cli/kyoku/where"
)

// TTL is how long entries stay valid. Search hits for karaoke catalogs move
// slowly, a week keeps repeat sessions fast without going stale.
const TTL = 7 * 24 * time.Hour

func dir() string {
	path := filepath.Join(where.Cache(), "results")
	_ = filesystem.API().MkdirAll(path, os.ModePerm)
	return path
}

// GenerateKey derives a deterministic identifier from a query and backend pair.
func GenerateKey(query, backend string) string {
	sanitized := strings.ToLower(strings.ReplaceAll(query, " ", "")) + backend
	hash := sha256.Sum256([]byte(sanitized))
	return hex.EncodeToString(hash[:])
}

// Read deserializes a cached object into target. It reports false when the
// entry is missing, expired or unreadable.
func Read(key string, target any) bool {
	path := filepath.Join(dir(), key)

	info, err := filesystem.API().Stat(path)
	if err != nil || time.Since(info.ModTime()) > TTL {
		return false
	}

	f, err := filesystem.API().Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	return json.NewDecoder(f).Decode(target) == nil
}

// Write persists data under key. The write goes through a temp file and a
// rename so readers never observe a half-written entry.
func Write(key string, data any) error {
	path := filepath.Join(dir(), key)
	tmp := path + ".tmp"

	f, err := filesystem.API().Create(tmp)
	if err != nil {
		return err
	}

	if err = json.NewEncoder(f).Encode(data); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}

	return filesystem.API().Rename(tmp, path)
}

// CollectGarbage prunes expired entries on a background goroutine.
func CollectGarbage() {
	go func() {
		entries, err := os.ReadDir(dir())
		if err != nil {
			return
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if info, err := entry.Info(); err == nil && time.Since(info.ModTime()) > TTL {
				_ = filesystem.API().Remove(filepath.Join(dir(), entry.Name()))
			}
		}
	}()
}
