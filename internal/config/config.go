// Package config holds the engine-wide tunables spec.md leaves as "engine
// constant" rather than hardcoding (max nullification chain depth, max
// event-bus recursion, max loop-skill iterations). Shape and Load/defaults
// split are grounded on rdtc8822-debug-L1JGO-Whale/internal/config, adapted
// from that repo's toml.Unmarshal-over-defaults pattern to yaml.v3 per the
// rest of the retrieval pack's config-file convention.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sanguosha/resolve/internal/bus"
)

// Config is the full set of engine tunables.
type Config struct {
	Resolution ResolutionConfig `yaml:"resolution"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ResolutionConfig bounds the resolution engine's recursive protocols.
type ResolutionConfig struct {
	// MaxNullificationDepth caps the nullification counter-counter chain
	// length (spec.md §4.E). The spec itself places no numeric limit, but an
	// engine has to guard against a misbehaving skill generating an
	// unbounded chain.
	MaxNullificationDepth int `yaml:"max_nullification_depth"`

	// MaxBusDepth caps re-entrant event publication (mirrors
	// bus.DefaultMaxDepth; configurable here so a deployment can raise it
	// for a skill set with deep trigger chains without a code change).
	MaxBusDepth int `yaml:"max_bus_depth"`

	// MaxLoopIterations caps a loop-resolver's self re-push count (spec.md
	// §4.K, Luoshen), guarding against a loop-continuation predicate that
	// never returns false.
	MaxLoopIterations int `yaml:"max_loop_iterations"`
}

// LoggingConfig controls the LogSink's verbosity, consumed by whichever
// concrete Sink a caller wires (internal/logsink).
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a YAML config file, applying defaults for any field the file
// omits.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Defaults returns the engine's built-in tunables.
func Defaults() *Config {
	return &Config{
		Resolution: ResolutionConfig{
			MaxNullificationDepth: 16,
			MaxBusDepth:           bus.DefaultMaxDepth,
			MaxLoopIterations:     64,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
