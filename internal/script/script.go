// Package script executes Lua provider scripts with a process-wide bytecode cache.
package script

import (
	"os"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

var bytecodeCache sync.Map

// CompileAndRun executes a Lua script within the provided LState. Compiled
// prototypes are cached by path, so reconnecting a provider never re-parses
// its script.
func CompileAndRun(L *lua.LState, scriptPath string) error {
	if cached, exists := bytecodeCache.Load(scriptPath); exists {
		fn := L.NewFunctionFromProto(cached.(*lua.FunctionProto))
		L.Push(fn)
		return L.PCall(0, lua.MultRet, nil)
	}

	file, err := os.Open(scriptPath)
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

	fn := L.NewFunctionFromProto(proto)
	L.Push(fn)
	return L.PCall(0, lua.MultRet, nil)
}
