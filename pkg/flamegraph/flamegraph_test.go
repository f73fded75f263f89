package flamegraph

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/creasty/defaults"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethpandaops/stylus-profiler/pkg/aggregate"
)

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	return log
}

func TestWriteCollapsed(t *testing.T) {
	stacks := []aggregate.CollapsedStack{
		{Stack: "main;execute", Weight: 5000},
		{Stack: "main;storage", Weight: 3000},
	}

	var buf bytes.Buffer

	require.NoError(t, WriteCollapsed(&buf, stacks))
	assert.Equal(t, "main;execute 5000\nmain;storage 3000\n", buf.String())
}

func TestTextSummary(t *testing.T) {
	stacks := []aggregate.CollapsedStack{
		{Stack: "main;execute", Weight: 5000},
		{Stack: "main;storage", Weight: 3000},
		{Stack: "main;compute", Weight: 2000},
	}

	summary := TextSummary(stacks, 2)

	assert.Contains(t, summary, "Top Gas Consumers:")
	assert.Contains(t, summary, "5000 gas | main;execute")
	assert.Contains(t, summary, "3000 gas | main;storage")
	assert.NotContains(t, summary, "main;compute")
	assert.Contains(t, summary, "... and 1 more stacks")
}

func TestTextSummary_NoTrailerWhenEverythingShown(t *testing.T) {
	stacks := []aggregate.CollapsedStack{{Stack: "main", Weight: 1}}

	assert.NotContains(t, TextSummary(stacks, 5), "more stacks")
}

func TestNormalizePalette(t *testing.T) {
	log := testLogger()

	assert.Equal(t, "hot", NormalizePalette(log, "hot"))
	assert.Equal(t, "mem", NormalizePalette(log, "MEM"))
	assert.Equal(t, "aqua", NormalizePalette(log, "consistent"))
	assert.Equal(t, "hot", NormalizePalette(log, "sparkles"))
}

func TestRenderer_EmptyStacks(t *testing.T) {
	renderer := NewRenderer(testLogger(), "inferno-flamegraph", Config{})

	_, err := renderer.Render(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyStacks)
}

func TestRenderer_Args(t *testing.T) {
	config := Config{}
	require.NoError(t, defaults.Set(&config))

	config.Reverse = true

	renderer := NewRenderer(testLogger(), "inferno-flamegraph", config)

	args := strings.Join(renderer.args(), " ")

	assert.Contains(t, args, "--title Stylus Transaction Profile")
	assert.Contains(t, args, "--countname gas")
	assert.Contains(t, args, "--colors hot")
	assert.Contains(t, args, "--minwidth 0.1")
	assert.Contains(t, args, "--width 1200")
	assert.Contains(t, args, "--reverse")
}

func TestConfigDefaults(t *testing.T) {
	config := Config{}
	require.NoError(t, defaults.Set(&config))

	assert.Equal(t, "Stylus Transaction Profile", config.Title)
	assert.Equal(t, "gas", config.CountName)
	assert.Equal(t, "hot", config.Palette)
	assert.InDelta(t, 0.1, config.MinWidth, 1e-9)
	assert.Equal(t, 1200, config.ImageWidth)
	assert.False(t, config.Reverse)
}
