package ecs

import (
	"github.com/TheBitDrifter/mask"
)

// EntityID is a dense handle, unique while the entity is alive. Ids return
// to a free list during the deferred sweep and may then be reissued.
type EntityID uint32

// Entity groups components under one identity. It owns no component memory:
// the mask records which types are present and the index table maps each
// type id to the component's current slot in that type's pool. Slots move
// under swap-compaction and pool growth, which is exactly why entities store
// indices rather than pointers.
type Entity struct {
	id      EntityID
	alive   bool
	mask    mask.Mask
	indices [MaxComponentTypes]uint32
	world   *World
}

func (e *Entity) ID() EntityID { return e.id }

// Alive reports liveness. An entity queued for destruction stays alive, and
// visible to every system, until the end-of-frame sweep runs.
func (e *Entity) Alive() bool { return e.alive }

// Mask is the entity's component bitmask. Bit b is set iff the entity holds
// a valid index into pool b.
func (e *Entity) Mask() mask.Mask { return e.mask }

// Destroy queues the entity for the deferred sweep. Shorthand for
// World.DestroyEntity.
func (e *Entity) Destroy() { e.world.DestroyEntity(e.id) }

func (e *Entity) has(id TypeID) bool { return hasBit(e.mask, id) }
