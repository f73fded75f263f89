package flamegraph

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/ethpandaops/stylus-profiler/pkg/aggregate"
)

// ErrEmptyStacks indicates there was nothing to render. Rendering an
// empty trace is an explicit error rather than a degenerate image.
var ErrEmptyStacks = errors.New("no stacks to render")

// Renderer hands collapsed stacks to an external flame-layout binary
// (inferno-flamegraph compatible) and returns the generated SVG.
type Renderer struct {
	log    logrus.FieldLogger
	binary string
	config Config
}

// NewRenderer creates a Renderer around the given layout binary.
func NewRenderer(log logrus.FieldLogger, binary string, config Config) *Renderer {
	return &Renderer{
		log:    log.WithField("component", "flamegraph"),
		binary: binary,
		config: config,
	}
}

// Render generates the SVG for the given stacks. Renderer failures are
// surfaced with the binary's stderr attached, never retried.
func (r *Renderer) Render(ctx context.Context, stacks []aggregate.CollapsedStack) ([]byte, error) {
	if len(stacks) == 0 {
		return nil, ErrEmptyStacks
	}

	var input bytes.Buffer
	if err := WriteCollapsed(&input, stacks); err != nil {
		return nil, err
	}

	r.log.WithField("stacks", len(stacks)).Info("Generating flamegraph")

	cmd := exec.CommandContext(ctx, r.binary, r.args()...)
	cmd.Stdin = &input

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("flamegraph renderer %s failed: %w: %s", r.binary, err, stderr.String())
	}

	r.log.WithField("bytes", stdout.Len()).Debug("Flamegraph generated")

	return stdout.Bytes(), nil
}

// args translates the rendering options into the renderer's flags.
func (r *Renderer) args() []string {
	args := []string{
		"--title", r.config.Title,
		"--countname", r.config.CountName,
		"--colors", NormalizePalette(r.log, r.config.Palette),
		"--minwidth", strconv.FormatFloat(r.config.MinWidth, 'f', -1, 64),
		"--width", strconv.Itoa(r.config.ImageWidth),
	}

	if r.config.Reverse {
		args = append(args, "--reverse")
	}

	return args
}
