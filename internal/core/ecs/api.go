package ecs

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/embercore/ember/internal/core/event"
)

// AddComponent attaches a value of T to the entity, registering the type on
// first use. The returned pointer is valid until the next mutation of T's
// pool. Adding a component the entity already has is a programming error and
// panics; arena exhaustion is returned as an error.
func AddComponent[T any](w *World, e *Entity, value T) (*T, error) {
	id := RegisterComponent[T](w)
	if e.has(id) {
		panic(fmt.Sprintf("ecs: entity %d already has component %s", e.id, w.registry.infos[id].name))
	}
	p, err := w.pool(id)
	if err != nil {
		return nil, err
	}
	index, err := p.append(componentBytes(&value, w.registry.infos[id].size), e.id)
	if err != nil {
		w.log.Error("component add failed",
			zap.String("component", w.registry.infos[id].name), zap.Error(err))
		return nil, err
	}
	e.indices[id] = uint32(index)
	e.mask.Mark(uint32(id))
	w.refreshMembership(e)
	event.Publish(w.bus, ComponentAdded{Entity: e.id, Type: id, TypeName: w.registry.infos[id].name})
	return (*T)(p.slot(index)), nil
}

// RemoveComponent detaches T from the entity, compacting the pool and
// patching the relocated owner's index in the same step. Removing a
// component the entity lacks is a programming error and panics.
func RemoveComponent[T any](w *World, e *Entity) {
	id, ok := TypeIDOf[T](w)
	if !ok || !e.has(id) {
		var zero T
		panic(fmt.Sprintf("ecs: entity %d does not have component %T", e.id, zero))
	}
	w.removeComponent(e, id)
	w.refreshMembership(e)
}

// GetComponent resolves the entity's component of type T. Absence is an
// explicit false, not an error.
func GetComponent[T any](w *World, e *Entity) (*T, bool) {
	id, ok := TypeIDOf[T](w)
	if !ok || !e.has(id) {
		return nil, false
	}
	return (*T)(w.pools[id].slot(int(e.indices[id]))), true
}

// MustComponent is GetComponent for call sites where absence means a logic
// bug: it panics instead of reporting false.
func MustComponent[T any](w *World, e *Entity) *T {
	c, ok := GetComponent[T](w, e)
	if !ok {
		var zero T
		panic(fmt.Sprintf("ecs: entity %d does not have component %T", e.id, zero))
	}
	return c
}

// HasComponent reports whether the entity currently has a component of type T.
func HasComponent[T any](w *World, e *Entity) bool {
	id, ok := TypeIDOf[T](w)
	return ok && e.has(id)
}

// componentBytes views a component value as its raw bytes for pool storage.
// stored may exceed the real size only for zero-size tag types, whose slot
// simply stays zeroed.
func componentBytes[T any](v *T, stored int) []byte {
	n := int(unsafe.Sizeof(*v))
	if n == 0 {
		return make([]byte, stored)
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), n)
}
