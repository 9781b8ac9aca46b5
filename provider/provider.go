// Package provider manages built-in and custom media backends.
package provider

import (
	"path/filepath"

	"github.com/kyoku-cli/kyoku/filesystem"
	"github.com/kyoku-cli/kyoku/provider/custom"
	"github.com/kyoku-cli/kyoku/provider/files"
	"github.com/kyoku-cli/kyoku/provider/youtube"
	"github.com/kyoku-cli/kyoku/source"
	"github.com/kyoku-cli/kyoku/util"
	"github.com/kyoku-cli/kyoku/where"
)

// CustomProviderExtension is the file extension of Lua backend scripts.
const CustomProviderExtension = ".lua"

// Provider describes an available backend and knows how to instantiate it.
type Provider struct {
	ID           string
	Name         string
	IsCustom     bool // Lua-based backends.
	CreateSource func() (source.Source, error)
}

func (p *Provider) String() string {
	return p.Name
}

// Builtins returns the compiled-in backends.
func Builtins() []*Provider {
	return []*Provider{
		{
			ID:           youtube.Name,
			Name:         youtube.Name,
			CreateSource: youtube.New,
		},
		{
			ID:           files.Name,
			Name:         files.Name,
			CreateSource: files.New,
		},
	}
}

// Customs returns all available Lua backends.
func Customs() []*Provider {
	providers, _ := CustomProviders()
	return providers
}

// All returns built-in backends followed by custom ones.
func All() []*Provider {
	return append(Builtins(), Customs()...)
}

// Get finds a backend by name.
func Get(name string) (*Provider, bool) {
	for _, p := range All() {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// CustomProviders scans the sources directory for Lua backend scripts.
func CustomProviders() ([]*Provider, error) {
	entries, err := filesystem.API().ReadDir(where.Sources())
	if err != nil {
		return nil, err
	}

	var providers []*Provider
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) != CustomProviderExtension {
			continue
		}

		// Shared helper library, not a backend on its own.
		if entry.Name() == "common.lua" {
			continue
		}

		path := filepath.Join(where.Sources(), entry.Name())
		name := util.FileStem(entry.Name())

		providers = append(providers, &Provider{
			ID:       custom.IDfromName(name),
			Name:     name,
			IsCustom: true,
			CreateSource: func() (source.Source, error) {
				return custom.LoadSource(path)
			},
		})
	}

	return providers, nil
}
