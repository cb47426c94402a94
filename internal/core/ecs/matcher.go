package ecs

import "github.com/TheBitDrifter/mask"

// Matcher declares a system's component interest and carries its membership
// list. Require and Exclude are meant to be called once, in the system's
// constructor; the World keeps the membership list consistent from then on,
// re-evaluating an entity only when one of its components actually changes.
type Matcher struct {
	required mask.Mask
	excluded mask.Mask
	entities []*Entity
}

// Require marks a component type the entity must have.
func (m *Matcher) Require(id TypeID) *Matcher {
	m.required.Mark(uint32(id))
	return m
}

// Exclude marks a component type the entity must not have.
func (m *Matcher) Exclude(id TypeID) *Matcher {
	m.excluded.Mark(uint32(id))
	return m
}

func (m *Matcher) Required() mask.Mask { return m.required }
func (m *Matcher) Excluded() mask.Mask { return m.excluded }

// Entities is the current membership list. The slice is owned by the
// Matcher; callers iterate it but must not modify or retain it. A system
// that removes one of its own required components mid-iteration shifts the
// list under the range; snapshot the slice first when doing that. Queued
// destruction (World.DestroyEntity) is always safe: membership only changes
// at the sweep.
func (m *Matcher) Entities() []*Entity { return m.entities }

// ContainsAny, not ContainsNone: ContainsNone reports false for an empty
// argument, which would reject every matcher with no exclusions.
func (m *Matcher) disjoint() bool {
	return !m.required.ContainsAny(m.excluded)
}

func (m *Matcher) matches(e *Entity) bool {
	return e.alive &&
		e.mask.ContainsAll(m.required) &&
		!e.mask.ContainsAny(m.excluded)
}

// refresh adds or erases the entity when its match state flipped. Erasure
// preserves list order so iteration stays deterministic.
func (m *Matcher) refresh(e *Entity) {
	idx := m.indexOf(e)
	switch {
	case m.matches(e) && idx < 0:
		m.entities = append(m.entities, e)
	case !m.matches(e) && idx >= 0:
		m.entities = append(m.entities[:idx], m.entities[idx+1:]...)
	}
}

func (m *Matcher) remove(e *Entity) {
	if idx := m.indexOf(e); idx >= 0 {
		m.entities = append(m.entities[:idx], m.entities[idx+1:]...)
	}
}

func (m *Matcher) indexOf(e *Entity) int {
	for i, cur := range m.entities {
		if cur == e {
			return i
		}
	}
	return -1
}
