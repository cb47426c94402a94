package component

// Lifetime marks an entity for destruction once Remaining seconds elapse.
// The lifetime system only ever enqueues the destruction; the world's sweep
// applies it.
type Lifetime struct {
	Remaining float32
}
