package hostio

// Summary aggregates host-interaction activity for one trace.
// The zero value is an empty summary and is safe to read.
type Summary struct {
	counts     map[Kind]uint64
	totalCalls uint64
	totalGas   uint64
}

// record adds one event of the given kind. Gas may be zero when the
// event carried no ink accounting.
func (s *Summary) record(kind Kind, gas uint64) {
	if s.counts == nil {
		s.counts = make(map[Kind]uint64, len(Kinds))
	}

	s.counts[kind]++
	s.totalCalls++
	s.totalGas += gas
}

// CountFor returns the number of events recorded for a kind.
func (s Summary) CountFor(kind Kind) uint64 {
	return s.counts[kind]
}

// TotalCalls returns the total event count. It always equals the sum
// of the per-kind counts.
func (s Summary) TotalCalls() uint64 {
	return s.totalCalls
}

// TotalGas returns the total gas attributed to host interactions.
func (s Summary) TotalGas() uint64 {
	return s.totalGas
}

// ByKind materializes the per-kind counts keyed by kind name, for
// inclusion in the output profile. Kinds with zero events are omitted.
func (s Summary) ByKind() map[string]uint64 {
	out := make(map[string]uint64, len(s.counts))

	for kind, count := range s.counts {
		out[string(kind)] = count
	}

	return out
}
