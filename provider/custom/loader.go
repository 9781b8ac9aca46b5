// Package custom bridges the Go core and user-written Lua backend scripts.
package custom

import (
	"fmt"

	"github.com/kyoku-cli/kyoku/constant"
	"github.com/kyoku-cli/kyoku/internal/scraper"
	"github.com/kyoku-cli/kyoku/source"
	"github.com/kyoku-cli/kyoku/util"
	libs "github.com/metafates/mangal-lua-libs"
	lua "github.com/yuin/gopher-lua"
)

// IDfromName generates the registry identifier for a script basename.
func IDfromName(name string) string {
	return name + " custom"
}

// LoadSource executes a Lua backend script and validates that it defines the
// required entry points.
func LoadSource(path string) (source.Source, error) {
	state := lua.NewState()
	libs.Preload(state)
	registerTLSClient(state)

	if err := scraper.PreCompileAndLoad(state, path); err != nil {
		return nil, err
	}

	name := util.FileStem(path)

	required := []string{
		constant.SearchSongsFn,
		constant.ResolveEntryFn,
		constant.FetchEntryFn,
	}
	for _, fn := range required {
		if state.GetGlobal(fn).Type() != lua.LTFunction {
			return nil, fmt.Errorf("function %s is required but not defined in %s", fn, name)
		}
	}

	return newLuaSource(name, state)
}
