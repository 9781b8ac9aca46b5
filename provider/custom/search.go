// Package custom bridges the Go core and user-written Lua backend scripts.
package custom

import (
	"github.com/kyoku-cli/kyoku/constant"
	"github.com/kyoku-cli/kyoku/internal/cache"
	"github.com/kyoku-cli/kyoku/source"
	lua "github.com/yuin/gopher-lua"
)

func (s *luaSource) Search(query string) ([]*source.Result, error) {
	cacheKey := cache.GenerateKey(query, s.Name())
	var cached []*source.Result
	if cache.Read(cacheKey, &cached) {
		return cached, nil
	}

	val, err := s.call(constant.SearchSongsFn, lua.LTTable, lua.LString(query))
	if err != nil {
		return nil, err
	}

	var (
		results []*source.Result
		errs    []error
	)

	val.(*lua.LTable).ForEach(func(k, v lua.LValue) {
		if k.Type() != lua.LTNumber || v.Type() != lua.LTTable {
			return
		}

		result, err := resultFromTable(v.(*lua.LTable), s.Name())
		if err != nil {
			errs = append(errs, err)
			return
		}
		results = append(results, result)
	})

	if len(results) == 0 && len(errs) > 0 {
		return nil, errs[0]
	}

	if len(results) > 0 {
		_ = cache.Write(cacheKey, results)
	}

	return results, nil
}
