// Package filesystem routes every file operation through a swappable afero
// backend so tests can run against an in-memory tree.
package filesystem

import (
	"io"
	"os"
)

// GacheFs satisfies gache's filesystem interface on top of the swappable
// backend, so gache-backed caches honor SetMemMapFs in tests.
type GacheFs struct{}

func (GacheFs) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	return API().OpenFile(name, flag, perm)
}

func (GacheFs) MkdirAll(path string, perm os.FileMode) error {
	return API().MkdirAll(path, perm)
}
