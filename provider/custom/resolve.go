// Package custom bridges the Go core and user-written Lua backend scripts.
package custom

import (
	"github.com/kyoku-cli/kyoku/constant"
	"github.com/kyoku-cli/kyoku/source"
	lua "github.com/yuin/gopher-lua"
)

func (s *luaSource) Resolve(performer, ident string) (*source.Entry, error) {
	val, err := s.call(constant.ResolveEntryFn, lua.LTTable, lua.LString(ident))
	if err != nil {
		return nil, err
	}

	return entryFromTable(val.(*lua.LTable), s.Name(), performer, ident)
}

// MissingMetadata re-resolves the entry. Scripts that mark entries
// incomplete are expected to return full data on the second call.
func (s *luaSource) MissingMetadata(entry *source.Entry) (source.Metadata, error) {
	val, err := s.call(constant.ResolveEntryFn, lua.LTTable, lua.LString(entry.Ident))
	if err != nil {
		return source.Metadata{}, err
	}

	return metadataFromTable(val.(*lua.LTable)), nil
}

func (s *luaSource) PlayerArgs(*source.Entry) []string {
	return nil
}
