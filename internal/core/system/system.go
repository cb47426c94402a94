package system

import "time"

// Phase defines execution ordering within a single frame. The frame runs
// phases in ascending order; within one phase, systems run in the order they
// were registered.
type Phase int

const (
	PhaseInput      Phase = iota // 0: sample external input
	PhasePreUpdate               // 1: react to last frame's events
	PhaseUpdate                  // 2: simulation logic
	PhasePostUpdate              // 3: expiry, spawning, bookkeeping
	PhaseOutput                  // 4: publish state to consumers (renderer etc.)
	PhaseCleanup                 // 5: last user hook before the deferred sweep
)

// System is the per-frame behavior contract. Update must not block or
// suspend: the frame is single-threaded and runs to completion.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
