// Package aggregate reconstructs the call hierarchy implied by a flat
// depth-annotated step sequence and aggregates gas per unique call
// path. Paths use the collapsed-stack convention consumed by
// flame-layout tools: semicolon-joined frame names paired with a
// summed weight.
package aggregate

import (
	"fmt"
	"strings"

	"github.com/ethpandaops/stylus-profiler/pkg/hostio"
	"github.com/ethpandaops/stylus-profiler/pkg/trace"
)

const (
	// placeholderFrame names the synthetic frame pushed when depth
	// increases. The trace format does not reliably emit a name on
	// call entry, so unresolved intermediate frames keep this label.
	// This is a known precision loss, not something to infer around.
	placeholderFrame = "call"

	// hostioRoot is the synthetic root frame for apportioned
	// host-interaction paths.
	hostioRoot = "hostio"

	// maxCallDepth bounds the reconstructed stack. The EVM caps call
	// depth at 1024; anything beyond that in a step is corrupt data,
	// and saturating keeps the placeholder push loop bounded.
	maxCallDepth = 1024
)

// CollapsedStack is one unique call path with its accumulated weight.
type CollapsedStack struct {
	Stack  string // semicolon-joined frame names, outermost first
	Weight uint64 // gas consumed by this exact path
}

// Line formats the stack in the canonical collapsed format handed to
// flame-layout tools: "frame1;frame2;...;frameN weight".
func (c CollapsedStack) Line() string {
	return fmt.Sprintf("%s %d", c.Stack, c.Weight)
}

// BuildCollapsedStacks converts a parsed trace into a deduplicated,
// weight-summed set of call paths. It never fails: a trace with no
// steps yields only the host-interaction paths, if any.
//
// The returned slice carries no defined order; ranking establishes one.
func BuildCollapsedStacks(parsed *trace.ParsedTrace) []CollapsedStack {
	weights := make(map[string]uint64)

	// The call stack is a single-owner sequential state machine:
	// truncate on depth decrease, push placeholders on increase.
	var callStack []string

	for i := range parsed.Steps {
		step := &parsed.Steps[i]
		operation := step.OperationName()

		// Saturate before converting: a uint64 depth above the cap
		// would otherwise overflow int and corrupt the slice bounds.
		depth := maxCallDepth
		if step.Depth < maxCallDepth {
			depth = int(step.Depth)
		}

		if depth < len(callStack) {
			callStack = callStack[:depth]
		}

		for len(callStack) < depth {
			callStack = append(callStack, placeholderFrame)
		}

		var stack string
		if len(callStack) == 0 {
			stack = operation
		} else {
			stack = strings.Join(callStack, ";") + ";" + operation
		}

		// Zero-cost steps contribute no weight and must not create
		// spurious zero-weight paths.
		if step.GasCost > 0 {
			weights[stack] += step.GasCost
		}
	}

	addHostioStacks(weights, parsed.Hostio)

	stacks := make([]CollapsedStack, 0, len(weights))
	for stack, weight := range weights {
		stacks = append(stacks, CollapsedStack{Stack: stack, Weight: weight})
	}

	return stacks
}

// addHostioStacks synthesizes one "hostio;<kind>" path per active
// interaction kind. Individual event costs are not recorded upstream,
// so each kind receives a proportional share of the total hostio gas:
// floor(totalGas * kindCount / totalCalls).
func addHostioStacks(weights map[string]uint64, summary hostio.Summary) {
	totalCalls := summary.TotalCalls()
	if totalCalls == 0 {
		totalCalls = 1
	}

	for _, kind := range hostio.Kinds {
		count := summary.CountFor(kind)
		if count == 0 {
			continue
		}

		weights[hostioRoot+";"+string(kind)] += summary.TotalGas() * count / totalCalls
	}
}

// MergeSmallStacks folds stacks below the weight threshold into a
// single synthetic "other" stack, appended only when the folded sum is
// positive. Weight-conserving for any threshold.
func MergeSmallStacks(stacks []CollapsedStack, threshold uint64) []CollapsedStack {
	merged := make([]CollapsedStack, 0, len(stacks))

	var otherWeight uint64

	for _, stack := range stacks {
		if stack.Weight >= threshold {
			merged = append(merged, stack)
		} else {
			otherWeight += stack.Weight
		}
	}

	if otherWeight > 0 {
		merged = append(merged, CollapsedStack{Stack: "other", Weight: otherWeight})
	}

	return merged
}
