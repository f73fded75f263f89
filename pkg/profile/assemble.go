package profile

import (
	"time"

	"github.com/ethpandaops/stylus-profiler/pkg/aggregate"
	"github.com/ethpandaops/stylus-profiler/pkg/trace"
)

// Assemble packages a parsed trace and its ranked hot paths into the
// versioned output schema.
func Assemble(parsed *trace.ParsedTrace, hotPaths []aggregate.HotPath) *Profile {
	return &Profile{
		Version:         SchemaVersion,
		TransactionHash: parsed.TransactionHash,
		TotalGas:        parsed.TotalGasUsed,
		HostioSummary: HostioSummary{
			TotalCalls:     parsed.Hostio.TotalCalls(),
			ByType:         parsed.Hostio.ByKind(),
			TotalHostioGas: parsed.Hostio.TotalGas(),
		},
		HotPaths:    hotPaths,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
}
