// Package profile defines the versioned on-disk profile artifact and
// its serialization.
package profile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethpandaops/stylus-profiler/pkg/aggregate"
)

// SchemaVersion is the current profile schema version. Readers accept
// any version with a matching major component; unknown fields are
// ignored for forward compatibility.
const SchemaVersion = "1.0.0"

// ErrUnsupportedVersion indicates a profile was written with an
// incompatible schema version.
var ErrUnsupportedVersion = errors.New("unsupported profile schema version")

// Profile is the persisted artifact. Created once per run, never
// mutated after construction.
type Profile struct {
	Version         string              `json:"version"`
	TransactionHash string              `json:"transaction_hash"`
	TotalGas        uint64              `json:"total_gas"`
	HostioSummary   HostioSummary       `json:"hostio_summary"`
	HotPaths        []aggregate.HotPath `json:"hot_paths"`
	GeneratedAt     string              `json:"generated_at"`
}

// HostioSummary is the host-interaction section of the profile.
type HostioSummary struct {
	TotalCalls     uint64            `json:"total_calls"`
	ByType         map[string]uint64 `json:"by_type"`
	TotalHostioGas uint64            `json:"total_hostio_gas"`
}

// CheckVersion verifies that a profile's schema version is readable by
// this build. Only the major component must match; version mismatch is
// reported, never silently coerced.
func CheckVersion(version string) error {
	if majorComponent(version) != majorComponent(SchemaVersion) {
		return fmt.Errorf("%w: got %q, want %q", ErrUnsupportedVersion, version, SchemaVersion)
	}

	return nil
}

func majorComponent(version string) string {
	major, _, _ := strings.Cut(version, ".")

	return major
}
