package profiler

import (
	"fmt"

	"github.com/ethpandaops/stylus-profiler/pkg/flamegraph"
	"github.com/ethpandaops/stylus-profiler/pkg/nitro"
)

// Config is the main configuration for the profiler.
type Config struct {
	// LoggingLevel is the logging level to use.
	LoggingLevel string `yaml:"logging" default:"info"`
	// Node is the Arbitrum Nitro node configuration.
	Node nitro.Config `yaml:"node"`
	// TopPaths is the number of top hot paths to include in the
	// profile.
	TopPaths int `yaml:"topPaths" default:"20"`
	// MergeThreshold folds stacks below this weight into a single
	// "other" stack before ranking. Zero disables merging.
	MergeThreshold uint64 `yaml:"mergeThreshold"`
	// Flamegraph holds the rendering options handed to the layout
	// renderer.
	Flamegraph flamegraph.Config `yaml:"flamegraph"`
	// RendererBinary is the external flame-layout binary.
	RendererBinary string `yaml:"rendererBinary" default:"inferno-flamegraph"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Node.Validate(); err != nil {
		return fmt.Errorf("invalid node configuration: %w", err)
	}

	if c.TopPaths < 0 {
		return fmt.Errorf("topPaths must not be negative, got %d", c.TopPaths)
	}

	return c.Flamegraph.Validate()
}
