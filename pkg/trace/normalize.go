// Package trace normalizes raw debug_traceTransaction output into a
// canonical step sequence and total-gas figure. It tolerates the trace
// shapes emitted by different tracer configurations: a keyed object
// with the step list under one of several aliased field names, or a
// bare array of steps.
package trace

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ethpandaops/stylus-profiler/pkg/hostio"
)

// Field name aliases seen across tracer implementations. First match wins.
var (
	gasFields  = []string{"gasUsed", "gas_used", "totalGas", "total_gas"}
	stepFields = []string{"structLogs", "struct_logs", "steps", "trace"}
)

// ParsedTrace is the normalized unit of work handed to the aggregator.
// The step sequence is execution order and must never be reordered:
// depth reconstruction depends on it.
type ParsedTrace struct {
	TransactionHash string
	TotalGasUsed    uint64
	Steps           []ExecutionStep
	Hostio          hostio.Summary
	DroppedSteps    int // malformed entries skipped during parsing
}

// Normalizer converts raw trace JSON into a ParsedTrace.
type Normalizer struct {
	log logrus.FieldLogger
}

// NewNormalizer creates a Normalizer.
func NewNormalizer(log logrus.FieldLogger) *Normalizer {
	return &Normalizer{
		log: log.WithField("component", "normalizer"),
	}
}

// Normalize parses the raw trace value for a transaction. Individually
// malformed steps are dropped and counted; the call fails with
// ErrInvalidFormat only when the input shape is unrecognizable or when
// a non-empty step list yields zero parseable entries.
func (n *Normalizer) Normalize(txHash string, raw json.RawMessage) (*ParsedTrace, error) {
	n.log.WithField("tx_hash", txHash).Debug("Parsing trace")

	obj, err := resolveShape(raw)
	if err != nil {
		return nil, err
	}

	if err := validateFields(obj); err != nil {
		return nil, err
	}

	totalGas, found := extractTotalGas(obj)
	if !found {
		n.log.Warn("Gas field not found in trace, will backfill from steps")
	}

	steps, dropped, err := extractSteps(obj)
	if err != nil {
		return nil, err
	}

	if dropped > 0 {
		n.log.WithField("dropped", dropped).Warn("Skipped malformed execution steps")
	}

	if !found {
		// No recoverable gas field anywhere in the trace. Summing the
		// per-step costs undercounts intrinsic gas but beats reporting 0.
		for i := range steps {
			totalGas += steps[i].GasCost
		}

		n.log.WithField("total_gas", totalGas).Debug("Backfilled total gas from step costs")
	}

	summary := hostio.Extract(raw)

	n.log.WithFields(logrus.Fields{
		"steps":        len(steps),
		"hostio_calls": summary.TotalCalls(),
		"hostio_gas":   summary.TotalGas(),
	}).Debug("Parsed trace")

	return &ParsedTrace{
		TransactionHash: txHash,
		TotalGasUsed:    totalGas,
		Steps:           steps,
		Hostio:          summary,
		DroppedSteps:    dropped,
	}, nil
}

// ValidateFormat is a fast structural pre-check that does not parse
// individual steps. It accepts any value Normalize would accept.
func ValidateFormat(raw json.RawMessage) error {
	obj, err := resolveShape(raw)
	if err != nil {
		return err
	}

	return validateFields(obj)
}

// resolveShape maps the three known raw shapes onto a keyed object.
// Bare step arrays are wrapped with the gas field left unset.
func resolveShape(raw json.RawMessage) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj, nil
	}

	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err == nil {
		return map[string]json.RawMessage{"structLogs": raw}, nil
	}

	return nil, fmt.Errorf("%w: trace must be a JSON object or array", ErrInvalidFormat)
}

// validateFields rejects objects carrying neither a gas field nor a
// step-list field under any known alias.
func validateFields(obj map[string]json.RawMessage) error {
	for _, field := range gasFields {
		if _, ok := obj[field]; ok {
			return nil
		}
	}

	for _, field := range stepFields {
		if _, ok := obj[field]; ok {
			return nil
		}
	}

	return fmt.Errorf("%w: trace does not contain expected fields (gas or steps)", ErrInvalidFormat)
}

// extractTotalGas tries the aliased gas field names in order, accepting
// native integers and decimal or 0x-prefixed hex strings. Returns
// found=false when no alias yields a value.
func extractTotalGas(obj map[string]json.RawMessage) (gas uint64, found bool) {
	for _, field := range gasFields {
		value, ok := obj[field]
		if !ok {
			continue
		}

		var n uint64
		if err := json.Unmarshal(value, &n); err == nil {
			return n, true
		}

		var s string
		if err := json.Unmarshal(value, &s); err == nil {
			if parsed, err := ParseGasValue(s); err == nil {
				return parsed, true
			}
		}
	}

	return 0, false
}

// extractSteps finds the first step-list alias holding an array and
// parses it element by element. Malformed elements are dropped; an
// all-malformed non-empty array is fatal.
func extractSteps(obj map[string]json.RawMessage) ([]ExecutionStep, int, error) {
	for _, field := range stepFields {
		value, ok := obj[field]
		if !ok {
			continue
		}

		var elements []json.RawMessage
		if err := json.Unmarshal(value, &elements); err != nil {
			continue
		}

		return parseStepsArray(elements)
	}

	// Valid for very simple transactions (plain transfers trace to an
	// empty struct log list on some clients).
	return nil, 0, nil
}

func parseStepsArray(elements []json.RawMessage) ([]ExecutionStep, int, error) {
	steps := make([]ExecutionStep, 0, len(elements))
	dropped := 0

	for _, element := range elements {
		var step ExecutionStep
		if err := json.Unmarshal(element, &step); err != nil {
			dropped++

			continue
		}

		steps = append(steps, step)
	}

	if len(steps) == 0 && len(elements) > 0 {
		return nil, dropped, fmt.Errorf("%w: all %d execution steps failed to parse", ErrInvalidFormat, len(elements))
	}

	return steps, dropped, nil
}

// ParseGasValue parses a gas figure from a decimal string or a
// 0x-prefixed hexadecimal string.
func ParseGasValue(value string) (uint64, error) {
	if hexStr, ok := strings.CutPrefix(value, "0x"); ok {
		gas, err := strconv.ParseUint(hexStr, 16, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid hex gas value %q", ErrInvalidFormat, value)
		}

		return gas, nil
	}

	gas, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid decimal gas value %q", ErrInvalidFormat, value)
	}

	return gas, nil
}
