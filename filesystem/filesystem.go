// Package filesystem routes every file operation through a swappable afero
// backend so tests can run against an in-memory tree.
package filesystem

import "github.com/spf13/afero"

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the afero instance all packages use for file access.
func API() afero.Afero {
	return backend
}

// SetOsFs points the backend at the real operating system filesystem.
func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

// SetMemMapFs points the backend at a fresh in-memory filesystem.
// Tests call this from init().
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}
