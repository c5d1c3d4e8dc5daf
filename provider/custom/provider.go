package custom

import (
	"fmt"
	"sync"
	"time"

	"github.com/nowbar-cli/nowbar/constant"
	"github.com/nowbar-cli/nowbar/log"
	"github.com/nowbar-cli/nowbar/session"
	lua "github.com/yuin/gopher-lua"
)

// pollInterval is the cadence at which Poll() is invoked on scripts that define it.
const pollInterval = time.Second

type luaProvider struct {
	name  string
	state *lua.LState

	// mu serializes every access to the LState: gopher-lua states are not
	// safe for concurrent use.
	mu sync.Mutex

	events chan session.Event
	stop   chan struct{}
	once   sync.Once
}

func newLuaProvider(name string, state *lua.LState) *luaProvider {
	p := &luaProvider{
		name:   name,
		state:  state,
		events: make(chan session.Event, 16),
		stop:   make(chan struct{}),
	}

	go p.poll()
	return p
}

// Name returns the provider name.
func (p *luaProvider) Name() string {
	return p.name
}

// CurrentSessions enumerates the script's full session state.
func (p *luaProvider) CurrentSessions() ([]session.Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	val, err := p.call(constant.LuaSessionsFn, lua.LTTable)
	if err != nil {
		return nil, err
	}

	table := val.(*lua.LTable)
	var snapshots []session.Snapshot

	var errs []error
	table.ForEach(func(k, v lua.LValue) {
		if v.Type() != lua.LTTable {
			return // Skip invalid entries
		}

		snapshot, err := snapshotFromTable(v.(*lua.LTable))
		if err != nil {
			errs = append(errs, err)
			return
		}

		snapshots = append(snapshots, snapshot)
	})

	if len(snapshots) == 0 && len(errs) > 0 {
		return nil, errs[0]
	}

	return snapshots, nil
}

// Control dispatches a transport command to the script.
func (p *luaProvider) Control(source string, control session.ControlKind) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	val, err := p.call(constant.LuaControlFn, lua.LTBool,
		lua.LString(source), lua.LString(control))
	if err != nil {
		return err
	}

	if val != lua.LTrue {
		return fmt.Errorf("%s rejected control %s for %s", p.name, control, source)
	}
	return nil
}

// Events returns the provider's notification stream.
func (p *luaProvider) Events() <-chan session.Event {
	return p.events
}

// Close shuts down polling and releases the Lua state.
func (p *luaProvider) Close() error {
	p.once.Do(func() {
		close(p.stop)
	})
	return nil
}

// poll drives the optional Poll() script function and translates its results
// into events. Scripts without Poll() still work; they just never stream.
func (p *luaProvider) poll() {
	defer close(p.events)
	defer func() {
		p.mu.Lock()
		p.state.Close()
		p.mu.Unlock()
	}()

	p.mu.Lock()
	hasPoll := p.state.GetGlobal(constant.LuaPollFn).Type() == lua.LTFunction
	p.mu.Unlock()

	if !hasPoll {
		<-p.stop
		return
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			for _, ev := range p.drain() {
				select {
				case p.events <- ev:
				case <-p.stop:
					return
				}
			}
		}
	}
}

// drain calls Poll() once and translates every returned entry.
func (p *luaProvider) drain() []session.Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	val, err := p.call(constant.LuaPollFn, lua.LTTable)
	if err != nil {
		log.Warnf("provider %s: poll failed: %v", p.name, err)
		return nil
	}

	var events []session.Event
	val.(*lua.LTable).ForEach(func(_, v lua.LValue) {
		if v.Type() != lua.LTTable {
			return
		}

		ev, err := eventFromTable(v.(*lua.LTable))
		if err != nil {
			log.Warnf("provider %s: dropped event: %v", p.name, err)
			return
		}
		events = append(events, ev)
	})

	return events
}

// call executes a global Lua function safely. Callers hold p.mu.
func (p *luaProvider) call(fn string, retType lua.LValueType, args ...lua.LValue) (lua.LValue, error) {
	luaFn := p.state.GetGlobal(fn)
	if luaFn.Type() != lua.LTFunction {
		return nil, fmt.Errorf("function %s is not defined", fn)
	}

	err := p.state.CallByParam(lua.P{
		Fn:      luaFn,
		NRet:    1,
		Protect: true,
	}, args...)

	if err != nil {
		return nil, err
	}

	retval := p.state.Get(-1)
	p.state.Pop(1) // Clean stack

	if retval.Type() != retType {
		return nil, fmt.Errorf("%s returned %s, expected %s", fn, retval.Type(), retType)
	}

	return retval, nil
}
