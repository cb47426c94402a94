package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/embercore/ember/internal/component"
	"github.com/embercore/ember/internal/config"
	"github.com/embercore/ember/internal/core/arena"
	"github.com/embercore/ember/internal/core/ecs"
	"github.com/embercore/ember/internal/core/event"
	"github.com/embercore/ember/internal/data"
	"github.com/embercore/ember/internal/scripting"
	"github.com/embercore/ember/internal/system"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner() {
	fmt.Println()
	fmt.Println("  ┌───────────────────────────────────────────┐")
	fmt.Println("  │             ember  v0.1.0                 │")
	fmt.Println("  │      ECS simulation core · demo loop      │")
	fmt.Println("  └───────────────────────────────────────────┘")
	fmt.Println()
}

func printSection(title string) {
	fmt.Printf("  ── %s ──\n", title)
}

func printOK(msg string) {
	fmt.Printf("  ✓ %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  ▶ %s\n", msg)
}

// ── Main engine loop ───────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/ember.toml"
	fromEnv := false
	if p := os.Getenv("EMBER_CONFIG"); p != "" {
		cfgPath = p
		fromEnv = true
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		if !fromEnv && errors.Is(err, os.ErrNotExist) {
			cfg = config.Default()
		} else {
			return fmt.Errorf("load config: %w", err)
		}
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner()

	// 3. Arena and event bus
	printSection("memory")
	mem := arena.New(arena.Sizes{
		General:  cfg.Arena.GeneralSize,
		Graphics: cfg.Arena.GraphicsSize,
		Audio:    cfg.Arena.AudioSize,
		Physics:  cfg.Arena.PhysicsSize,
		Script:   cfg.Arena.ScriptSize,
		Temp:     cfg.Arena.TempSize,
	}, log)
	defer func() {
		mem.LogStatistics()
		mem.Release()
	}()
	printOK("arena pools committed")

	bus := event.NewBus()
	event.Subscribe(bus, func(ev ecs.EntityCreated) {
		log.Debug("entity created", zap.Uint32("id", uint32(ev.Entity)))
	})
	event.Subscribe(bus, func(ev ecs.EntityDestroyed) {
		log.Debug("entity destroyed", zap.Uint32("id", uint32(ev.Entity)))
	})

	// 4. World and systems
	world := ecs.NewWorld(mem, bus, ecs.Config{
		InitialPoolCapacity: cfg.ECS.InitialPoolCapacity,
	}, log)

	var lua *scripting.Engine
	if cfg.Engine.ScriptsDir != "" {
		lua = scripting.NewEngine(log)
		defer lua.Close()
		if err := lua.LoadDir(cfg.Engine.ScriptsDir); err != nil {
			return fmt.Errorf("load scripts: %w", err)
		}
		printOK("lua scripts loaded")
	}

	if err := world.AddSystem(system.NewMovementSystem(world)); err != nil {
		return fmt.Errorf("register movement system: %w", err)
	}
	if err := world.AddSystem(system.NewLifetimeSystem(world)); err != nil {
		return fmt.Errorf("register lifetime system: %w", err)
	}
	if lua != nil {
		if err := world.AddSystem(system.NewScriptSystem(world, lua, log)); err != nil {
			return fmt.Errorf("register script system: %w", err)
		}
	}

	// 5. Scene
	if cfg.Engine.ScenePath != "" {
		printSection("scene")
		scene, err := data.LoadScene(cfg.Engine.ScenePath)
		if err != nil {
			return fmt.Errorf("load scene: %w", err)
		}
		n, err := scene.Spawn(world, lua)
		if err != nil {
			return fmt.Errorf("spawn scene: %w", err)
		}
		printOK(fmt.Sprintf("spawned %d entities", n))
	}

	// 6. Frame loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	tickRate := cfg.Engine.TickRate.Std()
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	printSection("ready")
	printReady(fmt.Sprintf("frame loop started (tick: %s)", tickRate))
	fmt.Println()

	statsCounter := 0
	const statsInterval = 600 // frames between usage log lines

	renderMask := ecs.MaskOf(
		ecs.RegisterComponent[component.Position](world),
		ecs.RegisterComponent[component.Renderable](world),
	)

	for {
		select {
		case <-ticker.C:
			world.Update(tickRate)

			// Stand-in for a renderer: query the drawable set each frame.
			drawable := world.EntitiesWithComponents(renderMask)

			statsCounter++
			if statsCounter >= statsInterval {
				statsCounter = 0
				general := mem.Stats(arena.General)
				log.Info("frame stats",
					zap.Int("drawable", len(drawable)),
					zap.Int("arena_used", general.Used),
					zap.Int("arena_peak", general.Peak))
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
