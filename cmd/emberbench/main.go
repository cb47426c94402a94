// emberbench drives the simulation core under a profiler. It spawns a batch
// of moving entities (a slice of them short-lived to keep the destroy sweep
// busy) and runs a fixed number of frames.
//
// Profiling:
//
//	go build ./cmd/emberbench
//	./emberbench -entities 100000 -frames 1000 -profile cpu
//	go tool pprof -http=":8000" ./emberbench cpu.pprof
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pkg/profile"

	"github.com/embercore/ember/internal/component"
	"github.com/embercore/ember/internal/core/ecs"
	"github.com/embercore/ember/internal/system"
)

func main() {
	entities := flag.Int("entities", 100000, "entities to spawn")
	frames := flag.Int("frames", 1000, "frames to simulate")
	mode := flag.String("profile", "cpu", "profile mode: cpu, mem, none")
	flag.Parse()

	switch *mode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "none":
	default:
		fmt.Fprintf(os.Stderr, "unknown profile mode %q\n", *mode)
		os.Exit(2)
	}

	elapsed := run(*entities, *frames)
	perFrame := elapsed / time.Duration(*frames)
	fmt.Printf("%d entities × %d frames in %s (%s/frame)\n", *entities, *frames, elapsed, perFrame)
}

func run(entities, frames int) time.Duration {
	world := ecs.NewWorld(nil, nil, ecs.Config{InitialPoolCapacity: entities}, nil)
	if err := world.AddSystem(system.NewMovementSystem(world)); err != nil {
		panic(err)
	}
	if err := world.AddSystem(system.NewLifetimeSystem(world)); err != nil {
		panic(err)
	}

	for i := 0; i < entities; i++ {
		e := world.CreateEntity()
		mustAdd(world, e, component.Position{X: float32(i)})
		mustAdd(world, e, component.Velocity{X: 1, Y: 2, Z: 3})
		// Every tenth entity expires partway through, exercising the sweep.
		if i%10 == 0 {
			mustAdd(world, e, component.Lifetime{Remaining: float32(frames) / 120})
		}
	}

	const dt = 16 * time.Millisecond
	start := time.Now()
	for i := 0; i < frames; i++ {
		world.Update(dt)
	}
	return time.Since(start)
}

func mustAdd[T any](w *ecs.World, e *ecs.Entity, v T) {
	if _, err := ecs.AddComponent(w, e, v); err != nil {
		panic(err)
	}
}
