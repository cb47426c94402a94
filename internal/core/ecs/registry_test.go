package ecs

import (
	"reflect"
	"testing"
)

func TestRegisterComponentAssignsSequentialIDs(t *testing.T) {
	w := newTestWorld()

	posID := RegisterComponent[position](w)
	velID := RegisterComponent[velocity](w)
	hpID := RegisterComponent[health](w)

	if posID != 0 || velID != 1 || hpID != 2 {
		t.Fatalf("ids %d %d %d, want 0 1 2", posID, velID, hpID)
	}
	if again := RegisterComponent[velocity](w); again != velID {
		t.Fatalf("re-registration returned %d, want %d", again, velID)
	}
	if w.registry.count() != 3 {
		t.Fatalf("registry holds %d types, want 3", w.registry.count())
	}
}

func TestTypeIDOfUnregistered(t *testing.T) {
	w := newTestWorld()
	if _, ok := TypeIDOf[position](w); ok {
		t.Fatal("unregistered type should not resolve")
	}
}

func TestTypeName(t *testing.T) {
	w := newTestWorld()
	id := RegisterComponent[position](w)
	want := reflect.TypeOf(position{}).String()
	if got := w.TypeName(id); got != want {
		t.Fatalf("type name %q, want %q", got, want)
	}
	if got := w.TypeName(id + 1); got != "" {
		t.Fatalf("unknown id resolved to %q", got)
	}
}

func TestWorldsHaveIndependentRegistries(t *testing.T) {
	w1 := newTestWorld()
	w2 := newTestWorld()

	RegisterComponent[velocity](w1)
	id1 := RegisterComponent[position](w1)
	id2 := RegisterComponent[position](w2)

	if id1 == id2 {
		t.Fatalf("both worlds assigned id %d; registration order should differ", id1)
	}
}

func TestRegisterComponentCapPanics(t *testing.T) {
	w := newTestWorld()

	// Fill every slot with distinct array types, then one more must panic.
	for i := 0; i < MaxComponentTypes; i++ {
		typ := reflect.ArrayOf(i+1, reflect.TypeOf(byte(0)))
		if int(w.registry.next) >= MaxComponentTypes {
			t.Fatalf("registry overfilled at %d", i)
		}
		w.registry.ids[typ] = w.registry.next
		w.registry.infos[w.registry.next] = componentInfo{name: typ.String(), size: i + 1, align: 1}
		w.registry.next++
	}

	defer func() {
		if recover() == nil {
			t.Fatal("registration past the cap should panic")
		}
	}()
	RegisterComponent[position](w)
}
