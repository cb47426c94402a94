package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Engine  EngineConfig  `toml:"engine" yaml:"engine"`
	Arena   ArenaConfig   `toml:"arena" yaml:"arena"`
	ECS     ECSConfig     `toml:"ecs" yaml:"ecs"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

type EngineConfig struct {
	TickRate   Duration `toml:"tick_rate" yaml:"tick_rate"`
	ScenePath  string   `toml:"scene_path" yaml:"scene_path"`
	ScriptsDir string   `toml:"scripts_dir" yaml:"scripts_dir"`
}

// ArenaConfig sizes the allocator's category pools, in bytes. Zero keeps the
// arena package default for that category.
type ArenaConfig struct {
	GeneralSize  int `toml:"general_size" yaml:"general_size"`
	GraphicsSize int `toml:"graphics_size" yaml:"graphics_size"`
	AudioSize    int `toml:"audio_size" yaml:"audio_size"`
	PhysicsSize  int `toml:"physics_size" yaml:"physics_size"`
	ScriptSize   int `toml:"script_size" yaml:"script_size"`
	TempSize     int `toml:"temp_size" yaml:"temp_size"`
}

type ECSConfig struct {
	// InitialPoolCapacity is the starting slot count of each component pool.
	InitialPoolCapacity int `toml:"initial_pool_capacity" yaml:"initial_pool_capacity"`
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
}

// Load reads a TOML or YAML config (chosen by extension), overlaying the
// documented defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	return cfg, nil
}

func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			TickRate: Duration(16 * time.Millisecond),
		},
		Arena: ArenaConfig{
			GeneralSize: 64 << 20,
			TempSize:    32 << 20,
		},
		ECS: ECSConfig{
			InitialPoolCapacity: 100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Duration parses "16ms"-style strings from both TOML (TextUnmarshaler) and
// YAML (yaml.v3 does not consult TextUnmarshaler, so it needs its own hook).
type Duration time.Duration

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }
