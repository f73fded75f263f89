package nitro

import (
	"errors"
	"time"
)

// Config holds the connection settings for an Arbitrum Nitro node.
type Config struct {
	// Endpoint is the node's JSON-RPC URL.
	Endpoint string `yaml:"endpoint" default:"http://localhost:8547"`
	// Headers are extra HTTP headers sent with every request.
	Headers map[string]string `yaml:"headers"`
	// Timeout bounds a single trace fetch when the caller's context
	// carries no deadline.
	Timeout time.Duration `yaml:"timeout" default:"60s"`
	// Tracer is the debug_traceTransaction tracer to request. The
	// default structLog tracer is used as a fallback when the node
	// does not support it.
	Tracer string `yaml:"tracer" default:"stylusTracer"`
	// RetryMaxElapsed caps the total time spent retrying transient
	// transport failures.
	RetryMaxElapsed time.Duration `yaml:"retryMaxElapsed" default:"30s"`
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return errors.New("endpoint is required")
	}

	return nil
}
