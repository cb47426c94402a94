package ecs

import (
	"fmt"
	"reflect"
	"unsafe"
)

// TypeID is the numeric identifier of a component type. Ids are assigned
// sequentially per World at first use and never change for the lifetime of
// that World.
type TypeID uint32

// MaxComponentTypes caps how many distinct component types a World can
// register. The cap is what keeps entity masks and index tables fixed-width.
const MaxComponentTypes = 64

type componentInfo struct {
	name  string
	size  int
	align int
}

// registry hands out sequential component type ids. It is owned by a World
// and explicitly constructed — never a package-level singleton — so multiple
// independent worlds can coexist with different id assignments.
type registry struct {
	ids   map[reflect.Type]TypeID
	infos [MaxComponentTypes]componentInfo
	next  TypeID
}

func newRegistry() *registry {
	return &registry{
		ids: make(map[reflect.Type]TypeID, MaxComponentTypes),
	}
}

// RegisterComponent assigns T its id within w, fixing the component's size
// and alignment on first use. Re-registering returns the existing id.
// Exceeding MaxComponentTypes is a programming error and panics.
func RegisterComponent[T any](w *World) TypeID {
	var zero T
	t := reflect.TypeOf(zero)
	r := w.registry
	if id, ok := r.ids[t]; ok {
		return id
	}
	if int(r.next) >= MaxComponentTypes {
		panic(fmt.Sprintf("ecs: cannot register component %s: %d component types already registered",
			t, MaxComponentTypes))
	}
	id := r.next
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		// Zero-size tag components still occupy a one-byte slot so pool
		// indices stay distinct.
		size = 1
	}
	r.ids[t] = id
	r.infos[id] = componentInfo{name: t.String(), size: size, align: int(unsafe.Alignof(zero))}
	r.next++
	return id
}

// TypeIDOf reports the id of T in w, if T was ever registered there.
func TypeIDOf[T any](w *World) (TypeID, bool) {
	var zero T
	id, ok := w.registry.ids[reflect.TypeOf(zero)]
	return id, ok
}

// TypeName returns the registered name for a component type id.
func (w *World) TypeName(id TypeID) string {
	if id >= w.registry.next {
		return ""
	}
	return w.registry.infos[id].name
}

func (r *registry) count() int { return int(r.next) }
