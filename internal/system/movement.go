// Package system holds the engine's built-in systems. Each one follows the
// same shape: constructor takes the world (plus collaborators), declares its
// component interest on the matcher, and Update walks the membership list
// the world maintains for it.
package system

import (
	"time"

	"github.com/embercore/ember/internal/component"
	"github.com/embercore/ember/internal/core/ecs"
	coresys "github.com/embercore/ember/internal/core/system"
)

// MovementSystem integrates Position by Velocity each frame.
// Phase 2 (Update).
type MovementSystem struct {
	world   *ecs.World
	matcher ecs.Matcher
}

func NewMovementSystem(world *ecs.World) *MovementSystem {
	s := &MovementSystem{world: world}
	s.matcher.Require(ecs.RegisterComponent[component.Position](world))
	s.matcher.Require(ecs.RegisterComponent[component.Velocity](world))
	return s
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }
func (s *MovementSystem) Matcher() *ecs.Matcher { return &s.matcher }

func (s *MovementSystem) Update(dt time.Duration) {
	step := float32(dt.Seconds())
	for _, e := range s.matcher.Entities() {
		pos := ecs.MustComponent[component.Position](s.world, e)
		vel := ecs.MustComponent[component.Velocity](s.world, e)
		pos.X += vel.X * step
		pos.Y += vel.Y * step
		pos.Z += vel.Z * step
	}
}
