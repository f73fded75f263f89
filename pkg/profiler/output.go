package profiler

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/ethpandaops/stylus-profiler/pkg/flamegraph"
	"github.com/ethpandaops/stylus-profiler/pkg/profile"
)

// WriteOutputs persists the capture result: the JSON profile, and the
// rendered flamegraph when svgPath is set. The two artifacts are
// independent so they are written concurrently.
func (p *Profiler) WriteOutputs(ctx context.Context, result *Result, jsonPath, svgPath string) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := profile.WriteFile(jsonPath, result.Profile); err != nil {
			return err
		}

		p.log.WithField("path", jsonPath).Info("Wrote profile")

		return nil
	})

	if svgPath != "" {
		g.Go(func() error {
			renderer := flamegraph.NewRenderer(p.log, p.config.RendererBinary, p.config.Flamegraph)

			svg, err := renderer.Render(ctx, result.Stacks)
			if err != nil {
				return err
			}

			if err := os.WriteFile(svgPath, svg, 0o644); err != nil {
				return fmt.Errorf("failed to write flamegraph: %w", err)
			}

			p.log.WithField("path", svgPath).Info("Wrote flamegraph")

			return nil
		})
	}

	return g.Wait()
}
