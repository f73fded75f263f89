// Package profiler wires the capture pipeline together: fetch a raw
// trace from the node, normalize it, aggregate gas per call path, rank
// the hot paths and assemble the output profile. The pipeline itself
// is strictly sequential; only the final output writing fans out.
package profiler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ethpandaops/stylus-profiler/pkg/aggregate"
	"github.com/ethpandaops/stylus-profiler/pkg/nitro"
	"github.com/ethpandaops/stylus-profiler/pkg/profile"
	"github.com/ethpandaops/stylus-profiler/pkg/trace"
)

// Profiler captures and profiles one transaction per invocation.
type Profiler struct {
	log    logrus.FieldLogger
	config *Config
}

// Result carries everything a caller needs after a capture: the
// persisted profile plus the full collapsed-stack set for rendering.
type Result struct {
	Profile *profile.Profile
	Stacks  []aggregate.CollapsedStack
	Parsed  *trace.ParsedTrace
}

// New creates a Profiler.
func New(log logrus.FieldLogger, config *Config) (*Profiler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &Profiler{
		log:    log.WithField("component", "profiler"),
		config: config,
	}, nil
}

// Capture fetches the trace for a transaction and runs the full
// pipeline on it.
func (p *Profiler) Capture(ctx context.Context, txHash string) (*Result, error) {
	client, err := nitro.NewClient(p.log, &p.config.Node)
	if err != nil {
		return nil, err
	}

	raw, err := client.DebugTraceTransaction(ctx, txHash)
	if err != nil {
		return nil, err
	}

	return p.CaptureFromRaw(nitro.NormalizeTxHash(txHash), raw)
}

// CaptureFromRaw runs the pipeline on an already-fetched raw trace.
// Useful for profiling traces captured elsewhere.
func (p *Profiler) CaptureFromRaw(txHash string, raw json.RawMessage) (*Result, error) {
	parsed, err := trace.NewNormalizer(p.log).Normalize(txHash, raw)
	if err != nil {
		return nil, err
	}

	stacks := aggregate.BuildCollapsedStacks(parsed)

	if p.config.MergeThreshold > 0 {
		stacks = aggregate.MergeSmallStacks(stacks, p.config.MergeThreshold)
	}

	hotPaths := aggregate.RankHotPaths(stacks, parsed.TotalGasUsed, p.config.TopPaths)

	p.log.WithFields(logrus.Fields{
		"tx_hash":   txHash,
		"total_gas": parsed.TotalGasUsed,
		"stacks":    len(stacks),
		"hot_paths": len(hotPaths),
	}).Info("Captured transaction profile")

	return &Result{
		Profile: profile.Assemble(parsed, hotPaths),
		Stacks:  stacks,
		Parsed:  parsed,
	}, nil
}
