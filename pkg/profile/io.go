package profile

import (
	"encoding/json"
	"fmt"
	"os"
)

// WriteFile serializes a profile to disk as indented JSON.
func WriteFile(path string, p *Profile) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}

	return nil
}

// ReadFile reads a profile back from disk, ignoring unknown fields
// written by future schema versions and rejecting incompatible ones.
func ReadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	p := &Profile{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}

	if err := CheckVersion(p.Version); err != nil {
		return nil, err
	}

	return p, nil
}
