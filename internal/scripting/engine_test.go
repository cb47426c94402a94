package scripting

import (
	"os"
	"path/filepath"
	"testing"
)

type fakeAPI struct {
	x, y, z   float64
	destroyed []uint32
}

func (f *fakeAPI) Position(uint32) (float64, float64, float64, bool) {
	return f.x, f.y, f.z, true
}

func (f *fakeAPI) SetPosition(_ uint32, x, y, z float64) bool {
	f.x, f.y, f.z = x, y, z
	return true
}

func (f *fakeAPI) Destroy(entity uint32) {
	f.destroyed = append(f.destroyed, entity)
}

func TestRegisterHandlerDeduplicates(t *testing.T) {
	e := NewEngine(nil)
	defer e.Close()

	a := e.RegisterHandler("on_tick")
	b := e.RegisterHandler("on_spawn")
	if a == b {
		t.Fatal("distinct handlers share an id")
	}
	if again := e.RegisterHandler("on_tick"); again != a {
		t.Fatalf("re-registration returned %d, want %d", again, a)
	}
}

func TestCallHandler(t *testing.T) {
	e := NewEngine(nil)
	defer e.Close()

	if err := e.LoadString(`
		calls = 0
		last_entity = -1
		function on_tick(entity, dt)
			calls = calls + 1
			last_entity = entity
		end
	`); err != nil {
		t.Fatalf("load: %v", err)
	}

	id := e.RegisterHandler("on_tick")
	if err := e.CallHandler(id, 42, 0.016); err != nil {
		t.Fatalf("call: %v", err)
	}
	if err := e.CallHandler(id, 42, 0.016); err != nil {
		t.Fatalf("second call: %v", err)
	}

	if got := e.vm.GetGlobal("calls").String(); got != "2" {
		t.Fatalf("handler ran %s times, want 2", got)
	}
	if got := e.vm.GetGlobal("last_entity").String(); got != "42" {
		t.Fatalf("handler saw entity %s, want 42", got)
	}
}

func TestCallHandlerErrors(t *testing.T) {
	e := NewEngine(nil)
	defer e.Close()

	if err := e.CallHandler(99, 1, 0.016); err == nil {
		t.Fatal("unknown handler id should error")
	}

	id := e.RegisterHandler("never_defined")
	if err := e.CallHandler(id, 1, 0.016); err == nil {
		t.Fatal("missing Lua function should error")
	}

	if err := e.LoadString(`function broken(entity, dt) error("boom") end`); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := e.CallHandler(e.RegisterHandler("broken"), 1, 0.016); err == nil {
		t.Fatal("Lua runtime error should surface")
	}
}

func TestBindInstallsEntityAPI(t *testing.T) {
	e := NewEngine(nil)
	defer e.Close()

	api := &fakeAPI{x: 1, y: 2, z: 3}
	e.Bind(api)

	if err := e.LoadString(`
		local x, y, z = get_position(7)
		set_position(7, x + 10, y, z)
		destroy_entity(7)
	`); err != nil {
		t.Fatalf("script: %v", err)
	}

	if api.x != 11 {
		t.Fatalf("set_position wrote x=%v, want 11", api.x)
	}
	if len(api.destroyed) != 1 || api.destroyed[0] != 7 {
		t.Fatalf("destroy calls %v, want [7]", api.destroyed)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	script := "function from_file(entity, dt) loaded = true end"
	if err := os.WriteFile(filepath.Join(dir, "demo.lua"), []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := NewEngine(nil)
	defer e.Close()

	if err := e.LoadDir(dir); err != nil {
		t.Fatalf("load dir: %v", err)
	}
	if e.vm.GetGlobal("from_file").Type().String() != "function" {
		t.Fatal("function from .lua file not loaded")
	}

	// Missing directories are skipped.
	if err := e.LoadDir(filepath.Join(dir, "nope")); err != nil {
		t.Fatalf("missing dir should be skipped: %v", err)
	}
}
