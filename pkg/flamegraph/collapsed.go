package flamegraph

import (
	"fmt"
	"io"
	"strings"

	"github.com/ethpandaops/stylus-profiler/pkg/aggregate"
)

// WriteCollapsed writes stacks in the canonical collapsed format, one
// "stack weight" line per unique path. Frame names containing literal
// semicolons are not escaped; the format inherits that limitation from
// the flame-layout convention.
func WriteCollapsed(w io.Writer, stacks []aggregate.CollapsedStack) error {
	for _, stack := range stacks {
		if _, err := io.WriteString(w, stack.Line()+"\n"); err != nil {
			return fmt.Errorf("failed to write collapsed stack: %w", err)
		}
	}

	return nil
}

// TextSummary renders a human-readable top-consumers table, at most
// maxLines entries deep.
func TextSummary(stacks []aggregate.CollapsedStack, maxLines int) string {
	lines := make([]string, 0, maxLines+3)

	lines = append(lines, "Top Gas Consumers:", strings.Repeat("-", 80))

	for i, stack := range stacks {
		if i >= maxLines {
			break
		}

		lines = append(lines, fmt.Sprintf("%3d. %10d gas | %s", i+1, stack.Weight, stack.Stack))
	}

	if len(stacks) > maxLines {
		lines = append(lines, fmt.Sprintf("... and %d more stacks", len(stacks)-maxLines))
	}

	return strings.Join(lines, "\n")
}
