// Package scraper executes Lua backend scripts with a shared bytecode cache.
package scraper

import (
	"sync"

	"github.com/kyoku-cli/kyoku/filesystem"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

var bytecodeCache sync.Map

// PreCompileAndLoad runs the script at path inside the given state. Compiled
// prototypes are cached per path so reloading a backend skips parsing.
func PreCompileAndLoad(L *lua.LState, scriptPath string) error {
	if cached, ok := bytecodeCache.Load(scriptPath); ok {
		L.Push(L.NewFunctionFromProto(cached.(*lua.FunctionProto)))
		return L.PCall(0, lua.MultRet, nil)
	}

	file, err := filesystem.API().Open(scriptPath)
	if err != nil {
		return err
	}
	defer file.Close()

	chunk, err := parse.Parse(file, scriptPath)
	if err != nil {
		return err
	}

	proto, err := lua.Compile(chunk, scriptPath)
	if err != nil {
		return err
	}

	bytecodeCache.Store(scriptPath, proto)

	L.Push(L.NewFunctionFromProto(proto))
	return L.PCall(0, lua.MultRet, nil)
}
