// Package custom bridges the Go core and user-written Lua backend scripts.
package custom

import (
	"context"

	"github.com/kyoku-cli/kyoku/constant"
	"github.com/kyoku-cli/kyoku/source"
	lua "github.com/yuin/gopher-lua"
)

// Fetch asks the script to produce playable files for the entry. The Lua
// state cannot be interrupted mid-call, so cancellation is only observed
// between the context check and the call itself.
func (s *luaSource) Fetch(ctx context.Context, entry *source.Entry) (source.Media, error) {
	if err := ctx.Err(); err != nil {
		return source.Media{}, err
	}

	val, err := s.call(constant.FetchEntryFn, lua.LTTable, entryToTable(s.state, entry))
	if err != nil {
		return source.Media{}, err
	}

	if err := ctx.Err(); err != nil {
		return source.Media{}, err
	}

	return mediaFromTable(val.(*lua.LTable))
}
