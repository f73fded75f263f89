package aggregate

import "sort"

// HotPath is a ranked call path with its percentage share of total
// gas. Derived from CollapsedStack, recomputed every run.
type HotPath struct {
	Stack      string      `json:"stack"`
	Gas        uint64      `json:"gas"`
	Percentage float64     `json:"percentage"`
	SourceHint *SourceHint `json:"source_hint,omitempty"`
}

// SourceHint locates a path in contract source. Only populated when
// the trace carried debug symbols.
type SourceHint struct {
	File string `json:"file"`
	Line uint32 `json:"line"`
}

// RankHotPaths selects the top-N stacks by weight. Ordering is weight
// descending with ties broken by stack string ascending, so re-running
// on the same input always yields identical output regardless of the
// input's order. Percentage is 0 when totalGas is 0; the division is
// never performed, so no NaN or Inf can reach the persisted profile.
func RankHotPaths(stacks []CollapsedStack, totalGas uint64, topN int) []HotPath {
	sorted := make([]CollapsedStack, len(stacks))
	copy(sorted, stacks)

	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Weight != sorted[j].Weight {
			return sorted[i].Weight > sorted[j].Weight
		}

		return sorted[i].Stack < sorted[j].Stack
	})

	if topN >= 0 && len(sorted) > topN {
		sorted = sorted[:topN]
	}

	hot := make([]HotPath, 0, len(sorted))

	for _, stack := range sorted {
		var percentage float64
		if totalGas > 0 {
			percentage = float64(stack.Weight) / float64(totalGas) * 100
		}

		hot = append(hot, HotPath{
			Stack:      stack.Stack,
			Gas:        stack.Weight,
			Percentage: percentage,
		})
	}

	return hot
}
