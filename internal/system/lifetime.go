package system

import (
	"time"

	"github.com/embercore/ember/internal/component"
	"github.com/embercore/ember/internal/core/ecs"
	coresys "github.com/embercore/ember/internal/core/system"
)

// LifetimeSystem counts down Lifetime components and queues expired entities
// for the end-of-frame sweep. It never destroys anything itself: the queue
// keeps the membership lists stable while systems iterate.
// Phase 3 (PostUpdate).
type LifetimeSystem struct {
	world   *ecs.World
	matcher ecs.Matcher
}

func NewLifetimeSystem(world *ecs.World) *LifetimeSystem {
	s := &LifetimeSystem{world: world}
	s.matcher.Require(ecs.RegisterComponent[component.Lifetime](world))
	return s
}

func (s *LifetimeSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }
func (s *LifetimeSystem) Matcher() *ecs.Matcher { return &s.matcher }

func (s *LifetimeSystem) Update(dt time.Duration) {
	step := float32(dt.Seconds())
	for _, e := range s.matcher.Entities() {
		lt := ecs.MustComponent[component.Lifetime](s.world, e)
		lt.Remaining -= step
		if lt.Remaining <= 0 {
			s.world.DestroyEntity(e.ID())
		}
	}
}
