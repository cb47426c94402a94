// Package scripting embeds a Lua VM so gameplay behavior can live in
// scripts instead of compiled systems. The script system dispatches matched
// entities to Lua handlers each frame through the bindings installed here.
package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// EntityAPI is the narrow surface scripts get over the simulation. The
// script system implements it against the world; the engine only translates
// between Lua values and these calls.
type EntityAPI interface {
	Position(entity uint32) (x, y, z float64, ok bool)
	SetPosition(entity uint32, x, y, z float64) bool
	Destroy(entity uint32)
}

// Engine wraps a single gopher-lua VM. Single-goroutine access only: the
// frame is single-threaded and handlers run inside it.
type Engine struct {
	vm       *lua.LState
	log      *zap.Logger
	handlers []string // handler id -> Lua global function name
}

// NewEngine creates an empty Lua engine. Scripts are added with LoadDir or
// LoadString.
func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	return &Engine{vm: vm, log: log}
}

// LoadDir loads every .lua file in a directory. A missing directory is
// skipped, not an error, so optional script sets cost nothing.
func (e *Engine) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// LoadString executes Lua source directly. Used by tests and tools.
func (e *Engine) LoadString(src string) error {
	return e.vm.DoString(src)
}

func (e *Engine) Close() {
	e.vm.Close()
}

// Bind installs the entity API as Lua globals: get_position, set_position,
// destroy_entity. Call once before the first frame.
func (e *Engine) Bind(api EntityAPI) {
	e.vm.SetGlobal("get_position", e.vm.NewFunction(func(L *lua.LState) int {
		id := uint32(L.CheckNumber(1))
		x, y, z, ok := api.Position(id)
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LNumber(x))
		L.Push(lua.LNumber(y))
		L.Push(lua.LNumber(z))
		return 3
	}))
	e.vm.SetGlobal("set_position", e.vm.NewFunction(func(L *lua.LState) int {
		id := uint32(L.CheckNumber(1))
		ok := api.SetPosition(id,
			float64(L.CheckNumber(2)),
			float64(L.CheckNumber(3)),
			float64(L.CheckNumber(4)))
		L.Push(lua.LBool(ok))
		return 1
	}))
	e.vm.SetGlobal("destroy_entity", e.vm.NewFunction(func(L *lua.LState) int {
		api.Destroy(uint32(L.CheckNumber(1)))
		return 0
	}))
}

// RegisterHandler maps a Lua global function name to a numeric handler id
// for use in Script components. The function need not exist yet; resolution
// happens per call.
func (e *Engine) RegisterHandler(fn string) uint32 {
	for i, name := range e.handlers {
		if name == fn {
			return uint32(i)
		}
	}
	e.handlers = append(e.handlers, fn)
	return uint32(len(e.handlers) - 1)
}

// CallHandler invokes a registered handler with (entity, dt seconds).
func (e *Engine) CallHandler(id uint32, entity uint32, dt float64) error {
	if int(id) >= len(e.handlers) {
		return fmt.Errorf("scripting: unknown handler id %d", id)
	}
	name := e.handlers[id]
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		return fmt.Errorf("scripting: lua function %s not found", name)
	}
	return e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, lua.LNumber(entity), lua.LNumber(dt))
}
