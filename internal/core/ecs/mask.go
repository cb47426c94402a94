package ecs

import "github.com/TheBitDrifter/mask"

// MaskOf builds a component mask from type ids, for queries such as
// World.EntitiesWithComponents.
func MaskOf(ids ...TypeID) mask.Mask {
	var m mask.Mask
	for _, id := range ids {
		m.Mark(uint32(id))
	}
	return m
}

func hasBit(m mask.Mask, id TypeID) bool {
	var q mask.Mask
	q.Mark(uint32(id))
	return m.ContainsAll(q)
}
