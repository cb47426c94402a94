package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/embercore/ember/internal/component"
	"github.com/embercore/ember/internal/core/ecs"
	coresys "github.com/embercore/ember/internal/core/system"
	"github.com/embercore/ember/internal/scripting"
)

// ScriptSystem dispatches entities with a Script component to their Lua
// handler each frame. It also implements scripting.EntityAPI, which is the
// only way scripts reach back into the world.
// Phase 2 (Update).
type ScriptSystem struct {
	world   *ecs.World
	engine  *scripting.Engine
	log     *zap.Logger
	matcher ecs.Matcher
}

func NewScriptSystem(world *ecs.World, engine *scripting.Engine, log *zap.Logger) *ScriptSystem {
	if log == nil {
		log = zap.NewNop()
	}
	s := &ScriptSystem{world: world, engine: engine, log: log}
	s.matcher.Require(ecs.RegisterComponent[component.Script](world))
	engine.Bind(s)
	return s
}

func (s *ScriptSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }
func (s *ScriptSystem) Matcher() *ecs.Matcher { return &s.matcher }

func (s *ScriptSystem) Update(dt time.Duration) {
	seconds := dt.Seconds()
	for _, e := range s.matcher.Entities() {
		sc := ecs.MustComponent[component.Script](s.world, e)
		if err := s.engine.CallHandler(sc.Handler, uint32(e.ID()), seconds); err != nil {
			s.log.Error("script handler failed",
				zap.Uint32("entity", uint32(e.ID())),
				zap.Uint32("handler", sc.Handler),
				zap.Error(err))
		}
	}
}

// Position implements scripting.EntityAPI.
func (s *ScriptSystem) Position(entity uint32) (x, y, z float64, ok bool) {
	e, ok := s.world.Entity(ecs.EntityID(entity))
	if !ok {
		return 0, 0, 0, false
	}
	pos, ok := ecs.GetComponent[component.Position](s.world, e)
	if !ok {
		return 0, 0, 0, false
	}
	return float64(pos.X), float64(pos.Y), float64(pos.Z), true
}

// SetPosition implements scripting.EntityAPI.
func (s *ScriptSystem) SetPosition(entity uint32, x, y, z float64) bool {
	e, ok := s.world.Entity(ecs.EntityID(entity))
	if !ok {
		return false
	}
	pos, ok := ecs.GetComponent[component.Position](s.world, e)
	if !ok {
		return false
	}
	pos.X, pos.Y, pos.Z = float32(x), float32(y), float32(z)
	return true
}

// Destroy implements scripting.EntityAPI. Destruction is queued, never
// immediate, like everywhere else in the frame.
func (s *ScriptSystem) Destroy(entity uint32) {
	s.world.DestroyEntity(ecs.EntityID(entity))
}
