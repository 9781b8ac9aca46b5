// Package custom bridges the Go core and user-written Lua backend scripts.
package custom

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

type luaSource struct {
	name string

	// A lua.LState is single-threaded; the coordinator fetches on its own
	// goroutine, so every call into the state takes this lock.
	mu    sync.Mutex
	state *lua.LState
}

// Name returns the backend name, the script basename without extension.
func (s *luaSource) Name() string {
	return s.name
}

// ID returns the registry identifier of the backend.
func (s *luaSource) ID() string {
	return IDfromName(s.name)
}

func newLuaSource(name string, state *lua.LState) (*luaSource, error) {
	return &luaSource{name: name, state: state}, nil
}

// call executes a global Lua function and checks the type of its return value.
func (s *luaSource) call(fn string, retType lua.LValueType, args ...lua.LValue) (lua.LValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	luaFn := s.state.GetGlobal(fn)
	if luaFn.Type() != lua.LTFunction {
		return nil, fmt.Errorf("function %s is not defined", fn)
	}

	err := s.state.CallByParam(lua.P{
		Fn:      luaFn,
		NRet:    1,
		Protect: true,
	}, args...)
	if err != nil {
		return nil, err
	}

	retval := s.state.Get(-1)
	s.state.Pop(1)

	if retval.Type() != retType {
		return nil, fmt.Errorf("%s returned %s, expected %s", fn, retval.Type(), retType)
	}

	return retval, nil
}
