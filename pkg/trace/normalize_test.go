package trace

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNormalizer() *Normalizer {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	return NewNormalizer(log)
}

func TestParseGasValue(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    uint64
		wantErr bool
	}{
		{name: "decimal", input: "1000", want: 1000},
		{name: "hex", input: "0x3e8", want: 1000},
		{name: "hex matches decimal", input: "0xc350", want: 50000},
		{name: "invalid", input: "invalid", wantErr: true},
		{name: "bare 0x", input: "0x", wantErr: true},
		{name: "negative", input: "-5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseGasValue(tt.input)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidFormat)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Minimal(t *testing.T) {
	raw := json.RawMessage(`{"gasUsed": 100000, "structLogs": []}`)

	parsed, err := newTestNormalizer().Normalize("0xabc123", raw)
	require.NoError(t, err)

	assert.Equal(t, "0xabc123", parsed.TransactionHash)
	assert.Equal(t, uint64(100000), parsed.TotalGasUsed)
	assert.Empty(t, parsed.Steps)
	assert.Zero(t, parsed.DroppedSteps)
}

func TestNormalize_TotalGasAliases(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want uint64
	}{
		{name: "gasUsed integer", raw: `{"gasUsed": 50000}`, want: 50000},
		{name: "gasUsed hex string", raw: `{"gasUsed": "0xc350"}`, want: 50000},
		{name: "gasUsed decimal string", raw: `{"gasUsed": "50000"}`, want: 50000},
		{name: "gas_used", raw: `{"gas_used": 42}`, want: 42},
		{name: "totalGas", raw: `{"totalGas": 42}`, want: 42},
		{name: "total_gas", raw: `{"total_gas": 42}`, want: 42},
		{name: "first alias wins", raw: `{"gasUsed": 1, "totalGas": 2}`, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := newTestNormalizer().Normalize("0xtest", json.RawMessage(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, parsed.TotalGasUsed)
		})
	}
}

func TestNormalize_GasCostFieldAliases(t *testing.T) {
	camel := json.RawMessage(`{"gasUsed": 100, "structLogs": [{"pc": 0, "op": "PUSH1", "gas": 1000, "gasCost": 7, "depth": 1}]}`)
	snake := json.RawMessage(`{"gasUsed": 100, "structLogs": [{"pc": 0, "op": "PUSH1", "gas": 1000, "gas_cost": 7, "depth": 1}]}`)

	n := newTestNormalizer()

	parsedCamel, err := n.Normalize("0xtest", camel)
	require.NoError(t, err)

	parsedSnake, err := n.Normalize("0xtest", snake)
	require.NoError(t, err)

	require.Len(t, parsedCamel.Steps, 1)
	require.Len(t, parsedSnake.Steps, 1)
	assert.Equal(t, parsedCamel.Steps[0], parsedSnake.Steps[0])
	assert.Equal(t, uint64(7), parsedCamel.Steps[0].GasCost)
}

func TestNormalize_StepListAliases(t *testing.T) {
	for _, field := range []string{"structLogs", "struct_logs", "steps", "trace"} {
		t.Run(field, func(t *testing.T) {
			raw := json.RawMessage(`{"` + field + `": [{"pc": 1, "op": "ADD", "gasCost": 3, "depth": 1}]}`)

			parsed, err := newTestNormalizer().Normalize("0xtest", raw)
			require.NoError(t, err)
			require.Len(t, parsed.Steps, 1)
			assert.Equal(t, "ADD", parsed.Steps[0].Op)
		})
	}
}

func TestNormalize_BareArray(t *testing.T) {
	raw := json.RawMessage(`[{"pc": 0, "op": "PUSH1", "gasCost": 3, "depth": 1}, {"pc": 2, "op": "STOP", "gasCost": 5, "depth": 1}]`)

	parsed, err := newTestNormalizer().Normalize("0xtest", raw)
	require.NoError(t, err)

	require.Len(t, parsed.Steps, 2)
	// No gas field anywhere, so total gas is backfilled from step costs.
	assert.Equal(t, uint64(8), parsed.TotalGasUsed)
}

func TestNormalize_InvalidShape(t *testing.T) {
	for _, raw := range []string{`"a string"`, `42`, `true`, `null`} {
		t.Run(raw, func(t *testing.T) {
			_, err := newTestNormalizer().Normalize("0xtest", json.RawMessage(raw))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidFormat)
		})
	}
}

func TestNormalize_MissingExpectedFields(t *testing.T) {
	_, err := newTestNormalizer().Normalize("0xtest", json.RawMessage(`{"random_field": "value"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestNormalize_MalformedSteps(t *testing.T) {
	t.Run("some malformed steps are dropped", func(t *testing.T) {
		raw := json.RawMessage(`{"gasUsed": 100, "structLogs": [
			{"pc": 0, "op": "PUSH1", "gasCost": 3, "depth": 1},
			"not an object",
			{"pc": "bad type"},
			{"pc": 2, "op": "STOP", "gasCost": 0, "depth": 1}
		]}`)

		parsed, err := newTestNormalizer().Normalize("0xtest", raw)
		require.NoError(t, err)
		assert.Len(t, parsed.Steps, 2)
		assert.Equal(t, 2, parsed.DroppedSteps)
	})

	t.Run("all malformed steps are fatal", func(t *testing.T) {
		raw := json.RawMessage(`{"gasUsed": 100, "structLogs": ["bad", 42, null]}`)

		_, err := newTestNormalizer().Normalize("0xtest", raw)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("empty step list is fine", func(t *testing.T) {
		raw := json.RawMessage(`{"gasUsed": 100, "structLogs": []}`)

		parsed, err := newTestNormalizer().Normalize("0xtest", raw)
		require.NoError(t, err)
		assert.Empty(t, parsed.Steps)
	})
}

func TestNormalize_BackfillsTotalGasFromSteps(t *testing.T) {
	raw := json.RawMessage(`{"steps": [
		{"op": "PUSH1", "gasCost": 3, "depth": 1},
		{"op": "SSTORE", "gasCost": 20000, "depth": 1}
	]}`)

	parsed, err := newTestNormalizer().Normalize("0xtest", raw)
	require.NoError(t, err)
	assert.Equal(t, uint64(20003), parsed.TotalGasUsed)
}

func TestValidateFormat(t *testing.T) {
	assert.NoError(t, ValidateFormat(json.RawMessage(`{"gasUsed": 1000}`)))
	assert.NoError(t, ValidateFormat(json.RawMessage(`{"structLogs": []}`)))
	assert.NoError(t, ValidateFormat(json.RawMessage(`[]`)))

	err := ValidateFormat(json.RawMessage(`{"random_field": "value"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	assert.ErrorIs(t, ValidateFormat(json.RawMessage(`"nope"`)), ErrInvalidFormat)
}

func TestIsInvalidFormatError(t *testing.T) {
	assert.False(t, IsInvalidFormatError(nil))
	assert.True(t, IsInvalidFormatError(ErrInvalidFormat))
	assert.True(t, IsInvalidFormatError(fmt.Errorf("normalize: %w", ErrInvalidFormat)))
	assert.True(t, IsInvalidFormatError(errors.New("rpc: Invalid trace format")))
	assert.False(t, IsInvalidFormatError(errors.New("connection refused")))
}

func TestExecutionStep_OperationName(t *testing.T) {
	assert.Equal(t, "my_func", (&ExecutionStep{Function: "my_func", Op: "CALL"}).OperationName())
	assert.Equal(t, "CALL", (&ExecutionStep{Op: "CALL"}).OperationName())
	assert.Equal(t, "unknown", (&ExecutionStep{}).OperationName())
}

func TestExecutionStep_Defaults(t *testing.T) {
	var step ExecutionStep

	require.NoError(t, json.Unmarshal([]byte(`{}`), &step))

	assert.Zero(t, step.PC)
	assert.Zero(t, step.Gas)
	assert.Zero(t, step.GasCost)
	assert.Zero(t, step.Depth)
	assert.Empty(t, step.Op)
	assert.Empty(t, step.Function)
}
