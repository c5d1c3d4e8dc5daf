package constant

// Global functions a Lua provider script defines. Sessions and Control are
// required; Poll is optional and enables event streaming.
const (
	LuaSessionsFn = "Sessions"
	LuaControlFn  = "Control"
	LuaPollFn     = "Poll"
)
