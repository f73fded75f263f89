package trace

import "encoding/json"

// ExecutionStep is a single instruction-level record from the tracer
// output. All fields are optional in the wire format and default to
// zero when absent.
type ExecutionStep struct {
	PC       uint64
	Gas      uint64
	GasCost  uint64
	Op       string // operation mnemonic, empty when the tracer omitted it
	Depth    uint64
	Function string // resolved function name, only present with debug symbols
}

// UnmarshalJSON decodes a step object, accepting both the camelCase and
// snake_case spellings of the gas cost field. Any type mismatch on a
// recognized field fails the whole step, which the normalizer treats as
// a malformed entry.
func (s *ExecutionStep) UnmarshalJSON(data []byte) error {
	var raw struct {
		PC         uint64  `json:"pc"`
		Gas        uint64  `json:"gas"`
		GasCost    *uint64 `json:"gasCost"`
		GasCostAlt *uint64 `json:"gas_cost"`
		Op         *string `json:"op"`
		Depth      uint64  `json:"depth"`
		Function   *string `json:"function"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.PC = raw.PC
	s.Gas = raw.Gas
	s.Depth = raw.Depth

	switch {
	case raw.GasCost != nil:
		s.GasCost = *raw.GasCost
	case raw.GasCostAlt != nil:
		s.GasCost = *raw.GasCostAlt
	default:
		s.GasCost = 0
	}

	if raw.Op != nil {
		s.Op = *raw.Op
	}

	if raw.Function != nil {
		s.Function = *raw.Function
	}

	return nil
}

// OperationName resolves the display name for this step: the function
// name when debug symbols are present, else the opcode mnemonic, else
// "unknown".
func (s *ExecutionStep) OperationName() string {
	if s.Function != "" {
		return s.Function
	}

	if s.Op != "" {
		return s.Op
	}

	return "unknown"
}
