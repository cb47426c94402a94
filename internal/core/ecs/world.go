// Package ecs is the simulation core: entity identity, pooled component
// storage, mask-driven system membership, and the per-frame update pass with
// its deferred destruction sweep.
package ecs

import (
	"errors"
	"fmt"
	"time"

	"github.com/TheBitDrifter/mask"
	"go.uber.org/zap"

	"github.com/embercore/ember/internal/core/arena"
	"github.com/embercore/ember/internal/core/event"
	coresys "github.com/embercore/ember/internal/core/system"
)

// MaxSystems caps how many systems a World accepts.
const MaxSystems = 32

// DefaultPoolCapacity is the initial slot count of a component pool created
// on a type's first use.
const DefaultPoolCapacity = 100

var (
	ErrMaskOverlap    = errors.New("ecs: system required and excluded masks overlap")
	ErrTooManySystems = errors.New("ecs: too many systems registered")
)

// Config is the World's constructor-time tuning surface.
type Config struct {
	// InitialPoolCapacity is the starting slot count of every component
	// pool. Zero means DefaultPoolCapacity.
	InitialPoolCapacity int
}

func (c Config) poolCapacity() int {
	if c.InitialPoolCapacity > 0 {
		return c.InitialPoolCapacity
	}
	return DefaultPoolCapacity
}

// System is a frame behavior with a component interest declaration. The
// Matcher must be configured during construction; the World maintains its
// membership list afterwards.
type System interface {
	coresys.System
	Matcher() *Matcher
}

// World is the composition root: it owns entity identity, the component
// registry and pools, and the registered systems. One goroutine drives
// Update; nothing in the frame blocks or suspends.
type World struct {
	log      *zap.Logger
	arena    *arena.Arena
	bus      *event.Bus
	cfg      Config
	registry *registry

	pools    [MaxComponentTypes]*componentPool
	entities []*Entity
	freeIDs  []EntityID
	pending  []EntityID

	systems []System
	runner  *coresys.Runner
}

// NewWorld builds a world on the given arena and event bus. Nil arguments
// get private defaults, which keeps small tests and tools short.
func NewWorld(a *arena.Arena, bus *event.Bus, cfg Config, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	if a == nil {
		a = arena.New(arena.DefaultSizes(), log)
	}
	if bus == nil {
		bus = event.NewBus()
	}
	return &World{
		log:      log,
		arena:    a,
		bus:      bus,
		cfg:      cfg,
		registry: newRegistry(),
		entities: make([]*Entity, 0, 256),
		freeIDs:  make([]EntityID, 0, 64),
		pending:  make([]EntityID, 0, 64),
		systems:  make([]System, 0, 16),
		runner:   coresys.NewRunner(),
	}
}

func (w *World) Bus() *event.Bus     { return w.bus }
func (w *World) Arena() *arena.Arena { return w.arena }

// CreateEntity issues a live entity, recycling an id from the free list when
// one is available. Ids only reach the free list through the sweep, so a
// recycled id can never collide with a reference held earlier in the same
// frame.
func (w *World) CreateEntity() *Entity {
	var id EntityID
	if n := len(w.freeIDs); n > 0 {
		id = w.freeIDs[n-1]
		w.freeIDs = w.freeIDs[:n-1]
	} else {
		id = EntityID(len(w.entities))
		w.entities = append(w.entities, nil)
	}
	e := &Entity{id: id, alive: true, world: w}
	w.entities[id] = e
	event.Publish(w.bus, EntityCreated{Entity: id})
	return e
}

// DestroyEntity queues an entity for the end-of-frame sweep. The entity
// stays alive — and visible to systems running later this frame — until
// ProcessPendingChanges applies the destruction. Unknown or already dead ids
// are ignored.
func (w *World) DestroyEntity(id EntityID) {
	if e := w.entityAt(id); e != nil && e.alive {
		w.pending = append(w.pending, id)
	}
}

// Entity resolves an id to a live entity. Dead or unknown ids report false.
func (w *World) Entity(id EntityID) (*Entity, bool) {
	e := w.entityAt(id)
	if e == nil || !e.alive {
		return nil, false
	}
	return e, true
}

func (w *World) entityAt(id EntityID) *Entity {
	if int(id) >= len(w.entities) {
		return nil
	}
	return w.entities[id]
}

// AddSystem registers a system. The frame order is phase-major with
// registration order as the tiebreak, so the caller's configuration fully
// determines execution order. Required and excluded masks must be disjoint.
func (w *World) AddSystem(s System) error {
	m := s.Matcher()
	if !m.disjoint() {
		return fmt.Errorf("%w (required %v, excluded %v)", ErrMaskOverlap, m.required, m.excluded)
	}
	if len(w.systems) >= MaxSystems {
		w.log.Error("system registration rejected", zap.Int("max", MaxSystems))
		return ErrTooManySystems
	}
	w.systems = append(w.systems, s)
	w.runner.Register(s)
	for _, e := range w.entities {
		if e != nil {
			m.refresh(e)
		}
	}
	return nil
}

// Update runs one frame: every system in configured order, then the
// deferred destruction sweep. Systems may add and remove components freely —
// masks and membership lists update synchronously — but must only enqueue
// entity destruction, never apply it mid-pass.
func (w *World) Update(dt time.Duration) {
	w.runner.Tick(dt)
	w.ProcessPendingChanges()
}

// ProcessPendingChanges applies every queued destruction at the one point in
// the frame where no system is mid-iteration: the entity leaves all
// membership lists, releases each held component (patching relocated
// owners), announces its destruction, and returns its id to the free list.
// Draining is by index because event handlers run synchronously mid-sweep
// and may cascade further destructions; those land on the same queue and
// are applied before the sweep finishes.
func (w *World) ProcessPendingChanges() {
	for i := 0; i < len(w.pending); i++ {
		id := w.pending[i]
		e := w.entityAt(id)
		if e == nil || !e.alive {
			continue // duplicate enqueue, already swept
		}
		e.alive = false
		for _, s := range w.systems {
			s.Matcher().remove(e)
		}
		for t := TypeID(0); t < w.registry.next; t++ {
			if e.has(t) {
				w.removeComponent(e, t)
			}
		}
		event.Publish(w.bus, EntityDestroyed{Entity: id})
		w.entities[id] = nil
		w.freeIDs = append(w.freeIDs, id)
	}
	w.pending = w.pending[:0]
}

// EntitiesWithComponents returns every live entity whose mask contains all
// bits of query. External consumers (a renderer, typically) use this to find
// their entities each frame without ECS internals.
func (w *World) EntitiesWithComponents(query mask.Mask) []*Entity {
	var out []*Entity
	for _, e := range w.entities {
		if e != nil && e.alive && e.mask.ContainsAll(query) {
			out = append(out, e)
		}
	}
	return out
}

// PoolSize reports how many components of a type are currently stored.
func (w *World) PoolSize(id TypeID) int {
	if id >= w.registry.next || w.pools[id] == nil {
		return 0
	}
	return w.pools[id].Size()
}

// PoolCapacity reports a pool's current slot capacity, zero if the pool was
// never created.
func (w *World) PoolCapacity(id TypeID) int {
	if id >= w.registry.next || w.pools[id] == nil {
		return 0
	}
	return w.pools[id].Capacity()
}

// pool returns the component pool for a registered type, creating it on
// first use. Arena exhaustion surfaces as an error; the world never retries.
func (w *World) pool(id TypeID) (*componentPool, error) {
	if p := w.pools[id]; p != nil {
		return p, nil
	}
	info := w.registry.infos[id]
	p, err := newComponentPool(w.arena, info, w.cfg.poolCapacity())
	if err != nil {
		w.log.Error("component pool allocation failed",
			zap.String("component", info.name), zap.Error(err))
		return nil, err
	}
	w.pools[id] = p
	return p, nil
}

func (w *World) refreshMembership(e *Entity) {
	for _, s := range w.systems {
		s.Matcher().refresh(e)
	}
}

// removeComponent releases one component: destructor-free removal from the
// pool and, when swap-compaction relocated another entity's component, an
// immediate patch of that owner's index table. The patch happens inside this
// call so no caller ever observes a stale index.
func (w *World) removeComponent(e *Entity, id TypeID) {
	p := w.pools[id]
	index := int(e.indices[id])
	event.Publish(w.bus, ComponentRemoved{Entity: e.id, Type: id, TypeName: w.registry.infos[id].name})
	movedOwner, moved := p.swapRemove(index)
	if moved {
		w.entities[movedOwner].indices[id] = uint32(index)
	}
	e.mask.Unmark(uint32(id))
}
