package ecs

// Lifecycle notifications the World publishes on its event bus. Delivery is
// the bus's contract (synchronous fan-out); these are just the payloads.

type EntityCreated struct {
	Entity EntityID
}

type EntityDestroyed struct {
	Entity EntityID
}

type ComponentAdded struct {
	Entity   EntityID
	Type     TypeID
	TypeName string
}

type ComponentRemoved struct {
	Entity   EntityID
	Type     TypeID
	TypeName string
}
