// Package custom bridges the Go core to Lua-scripted session providers. A
// script exposes desktop sessions from any backend reachable from Lua: it must
// define Sessions() and Control(source, control), and may define Poll() to
// stream incremental events.
package custom

import (
	"fmt"

	libs "github.com/metafates/mangal-lua-libs"
	"github.com/nowbar-cli/nowbar/constant"
	"github.com/nowbar-cli/nowbar/internal/script"
	"github.com/nowbar-cli/nowbar/session"
	"github.com/nowbar-cli/nowbar/util"
	lua "github.com/yuin/gopher-lua"
)

// IDFromName generates a canonical provider identifier for a Lua script basename.
func IDFromName(name string) string {
	return name + " custom"
}

// LoadProvider initializes a session.Provider by executing and validating a
// Lua provider script.
func LoadProvider(path string) (session.Provider, error) {
	state := lua.NewState()
	libs.Preload(state)

	err := script.CompileAndRun(state, path)
	if err != nil {
		state.Close()
		return nil, err
	}

	name := util.FileStem(path)

	required := []string{
		constant.LuaSessionsFn,
		constant.LuaControlFn,
	}

	for _, fn := range required {
		if state.GetGlobal(fn).Type() != lua.LTFunction {
			state.Close()
			return nil, fmt.Errorf("function %s is required but not defined in %s", fn, name)
		}
	}

	return newLuaProvider(name, state), nil
}
