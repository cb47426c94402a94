package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/embercore/ember/internal/component"
	"github.com/embercore/ember/internal/core/ecs"
	"github.com/embercore/ember/internal/scripting"
)

const sampleScene = `
entities:
  - name: player
    position: {x: 0, y: 1, z: 0}
    velocity: {x: 2, y: 0, z: 0}
    renderable:
      mesh_id: 4
      material_id: 2
      layer: 1
  - name: spark
    count: 3
    position: {x: 5, y: 5, z: 5}
    lifetime: 2.5
`

func writeScene(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScene(t *testing.T) {
	scene, err := LoadScene(writeScene(t, sampleScene))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(scene.Entities) != 2 {
		t.Fatalf("parsed %d specs, want 2", len(scene.Entities))
	}

	player := scene.Entities[0]
	if player.Name != "player" || player.Position == nil || player.Velocity == nil {
		t.Fatalf("player spec incomplete: %+v", player)
	}
	if player.Renderable == nil || player.Renderable.MeshID != 4 {
		t.Fatalf("player renderable: %+v", player.Renderable)
	}

	spark := scene.Entities[1]
	if spark.Count != 3 || spark.Lifetime == nil || *spark.Lifetime != 2.5 {
		t.Fatalf("spark spec incomplete: %+v", spark)
	}
}

func TestSpawn(t *testing.T) {
	scene, err := LoadScene(writeScene(t, sampleScene))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	w := ecs.NewWorld(nil, nil, ecs.Config{}, nil)
	n, err := scene.Spawn(w, nil)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if n != 4 {
		t.Fatalf("spawned %d entities, want 4 (player + 3 sparks)", n)
	}

	posID := ecs.RegisterComponent[component.Position](w)
	velID := ecs.RegisterComponent[component.Velocity](w)
	ltID := ecs.RegisterComponent[component.Lifetime](w)

	if got := len(w.EntitiesWithComponents(ecs.MaskOf(posID))); got != 4 {
		t.Fatalf("%d entities with position, want 4", got)
	}
	movers := w.EntitiesWithComponents(ecs.MaskOf(posID, velID))
	if len(movers) != 1 {
		t.Fatalf("%d entities with velocity, want 1", len(movers))
	}
	if pos := ecs.MustComponent[component.Position](w, movers[0]); pos.Y != 1 {
		t.Fatalf("player position y=%v, want 1", pos.Y)
	}
	sparks := w.EntitiesWithComponents(ecs.MaskOf(ltID))
	if len(sparks) != 3 {
		t.Fatalf("%d entities with lifetime, want 3", len(sparks))
	}
	for _, e := range sparks {
		if lt := ecs.MustComponent[component.Lifetime](w, e); lt.Remaining != 2.5 {
			t.Fatalf("spark lifetime %v, want 2.5", lt.Remaining)
		}
	}
}

func TestSpawnScriptRequiresEngine(t *testing.T) {
	scene := &Scene{Entities: []EntitySpec{{Name: "bot", Script: "on_tick"}}}
	w := ecs.NewWorld(nil, nil, ecs.Config{}, nil)

	if _, err := scene.Spawn(w, nil); err == nil {
		t.Fatal("script spec without an engine should error")
	}
}

func TestSpawnWithScript(t *testing.T) {
	scene := &Scene{Entities: []EntitySpec{{Name: "bot", Script: "on_tick"}}}
	w := ecs.NewWorld(nil, nil, ecs.Config{}, nil)
	engine := scripting.NewEngine(nil)
	defer engine.Close()

	n, err := scene.Spawn(w, engine)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if n != 1 {
		t.Fatalf("spawned %d, want 1", n)
	}

	scrID := ecs.RegisterComponent[component.Script](w)
	bots := w.EntitiesWithComponents(ecs.MaskOf(scrID))
	if len(bots) != 1 {
		t.Fatalf("%d entities with script, want 1", len(bots))
	}
	sc := ecs.MustComponent[component.Script](w, bots[0])
	if sc.Handler != engine.RegisterHandler("on_tick") {
		t.Fatal("script component does not reference the registered handler")
	}
}

func TestLoadSceneErrors(t *testing.T) {
	if _, err := LoadScene(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("missing file should error")
	}
	if _, err := LoadScene(writeScene(t, "entities: {not: a list}")); err == nil {
		t.Fatal("malformed yaml should error")
	}
}
