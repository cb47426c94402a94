// Package data loads declarative scene files: YAML descriptions of entities
// and their starting components, spawned into a world at startup.
package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/embercore/ember/internal/component"
	"github.com/embercore/ember/internal/core/ecs"
	"github.com/embercore/ember/internal/scripting"
)

// Vec3Spec is an x/y/z triple used by several component blocks.
type Vec3Spec struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

// RenderableSpec mirrors component.Renderable.
type RenderableSpec struct {
	MeshID     uint32 `yaml:"mesh_id"`
	MaterialID uint32 `yaml:"material_id"`
	Layer      int32  `yaml:"layer"`
}

// EntitySpec describes one entity template. Every component block is
// optional; Count > 1 spawns that many copies.
type EntitySpec struct {
	Name       string          `yaml:"name"`
	Count      int             `yaml:"count"`
	Position   *Vec3Spec       `yaml:"position"`
	Velocity   *Vec3Spec       `yaml:"velocity"`
	Lifetime   *float32        `yaml:"lifetime"`
	Renderable *RenderableSpec `yaml:"renderable"`
	Script     string          `yaml:"script"` // Lua handler function name
}

type sceneFile struct {
	Entities []EntitySpec `yaml:"entities"`
}

// Scene is a parsed scene description.
type Scene struct {
	Entities []EntitySpec
}

// LoadScene parses a YAML scene file.
func LoadScene(path string) (*Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}
	var f sceneFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", path, err)
	}
	return &Scene{Entities: f.Entities}, nil
}

// Spawn instantiates the scene into the world and returns how many entities
// were created. The scripting engine may be nil when no spec uses a script
// block.
func (s *Scene) Spawn(w *ecs.World, engine *scripting.Engine) (int, error) {
	spawned := 0
	for _, spec := range s.Entities {
		count := spec.Count
		if count < 1 {
			count = 1
		}
		for i := 0; i < count; i++ {
			if err := spawnOne(w, engine, spec); err != nil {
				return spawned, fmt.Errorf("spawn %q: %w", spec.Name, err)
			}
			spawned++
		}
	}
	return spawned, nil
}

func spawnOne(w *ecs.World, engine *scripting.Engine, spec EntitySpec) error {
	e := w.CreateEntity()
	if spec.Position != nil {
		p := spec.Position
		if _, err := ecs.AddComponent(w, e, component.Position{X: p.X, Y: p.Y, Z: p.Z}); err != nil {
			return err
		}
	}
	if spec.Velocity != nil {
		v := spec.Velocity
		if _, err := ecs.AddComponent(w, e, component.Velocity{X: v.X, Y: v.Y, Z: v.Z}); err != nil {
			return err
		}
	}
	if spec.Lifetime != nil {
		if _, err := ecs.AddComponent(w, e, component.Lifetime{Remaining: *spec.Lifetime}); err != nil {
			return err
		}
	}
	if spec.Renderable != nil {
		r := spec.Renderable
		if _, err := ecs.AddComponent(w, e, component.Renderable{
			MeshID:     r.MeshID,
			MaterialID: r.MaterialID,
			Layer:      r.Layer,
		}); err != nil {
			return err
		}
	}
	if spec.Script != "" {
		if engine == nil {
			return fmt.Errorf("script %q requires a scripting engine", spec.Script)
		}
		handler := engine.RegisterHandler(spec.Script)
		if _, err := ecs.AddComponent(w, e, component.Script{Handler: handler}); err != nil {
			return err
		}
	}
	return nil
}
