package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ethpandaops/stylus-profiler/pkg/aggregate"
	"github.com/ethpandaops/stylus-profiler/pkg/flamegraph"
	"github.com/ethpandaops/stylus-profiler/pkg/profiler"
	"github.com/ethpandaops/stylus-profiler/pkg/trace"
)

var captureFlags struct {
	rpc            string
	tx             string
	output         string
	flamegraphPath string
	topPaths       int
	title          string
	palette        string
	width          int
	mergeThreshold uint64
	summary        bool
	summaryLines   int
}

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Captures and profiles a transaction.",
	Long:  `Fetches the execution trace for a transaction, aggregates gas per call path and writes the JSON profile plus an optional flamegraph.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfigFromFile(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		applyCaptureFlags(cmd, config)
		initCommon(config)

		return runCapture(cmd, config)
	},
}

func init() {
	captureCmd.Flags().StringVarP(&captureFlags.rpc, "rpc", "r", "", "RPC endpoint URL (overrides config)")
	captureCmd.Flags().StringVarP(&captureFlags.tx, "tx", "t", "", "transaction hash to profile")
	captureCmd.Flags().StringVarP(&captureFlags.output, "output", "o", "profile.json", "output path for the JSON profile")
	captureCmd.Flags().StringVarP(&captureFlags.flamegraphPath, "flamegraph", "f", "", "output path for the SVG flamegraph")
	captureCmd.Flags().IntVar(&captureFlags.topPaths, "top-paths", 20, "number of top hot paths to include")
	captureCmd.Flags().StringVar(&captureFlags.title, "title", "", "flamegraph title")
	captureCmd.Flags().StringVar(&captureFlags.palette, "palette", "", "flamegraph color palette (hot, mem, io, java, consistent)")
	captureCmd.Flags().IntVar(&captureFlags.width, "width", 0, "flamegraph width in pixels")
	captureCmd.Flags().Uint64Var(&captureFlags.mergeThreshold, "merge-threshold", 0, "fold stacks below this weight into an \"other\" stack")
	captureCmd.Flags().BoolVar(&captureFlags.summary, "summary", false, "print a text summary to stdout")
	captureCmd.Flags().IntVar(&captureFlags.summaryLines, "summary-lines", 10, "number of rows in the text summary")

	if err := captureCmd.MarkFlagRequired("tx"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(captureCmd)
}

// applyCaptureFlags overlays explicitly-set flags onto the loaded
// config, so flags win over file values which win over defaults.
func applyCaptureFlags(cmd *cobra.Command, config *profiler.Config) {
	if captureFlags.rpc != "" {
		config.Node.Endpoint = captureFlags.rpc
	}

	if cmd.Flags().Changed("top-paths") {
		config.TopPaths = captureFlags.topPaths
	}

	if cmd.Flags().Changed("merge-threshold") {
		config.MergeThreshold = captureFlags.mergeThreshold
	}

	if captureFlags.title != "" {
		config.Flamegraph.Title = captureFlags.title
	}

	if captureFlags.palette != "" {
		config.Flamegraph.Palette = captureFlags.palette
	}

	if captureFlags.width > 0 {
		config.Flamegraph.ImageWidth = captureFlags.width
	}
}

func runCapture(cmd *cobra.Command, config *profiler.Config) error {
	p, err := profiler.New(log, config)
	if err != nil {
		return err
	}

	result, err := p.Capture(cmd.Context(), captureFlags.tx)
	if err != nil {
		if trace.IsInvalidFormatError(err) {
			return fmt.Errorf("node returned an unusable trace for %s: %w", captureFlags.tx, err)
		}

		return fmt.Errorf("capture failed: %w", err)
	}

	if err := p.WriteOutputs(cmd.Context(), result, captureFlags.output, captureFlags.flamegraphPath); err != nil {
		return err
	}

	if captureFlags.summary {
		ranked := aggregate.RankHotPaths(result.Stacks, result.Parsed.TotalGasUsed, len(result.Stacks))

		stacks := make([]aggregate.CollapsedStack, 0, len(ranked))
		for _, path := range ranked {
			stacks = append(stacks, aggregate.CollapsedStack{Stack: path.Stack, Weight: path.Gas})
		}

		fmt.Println(flamegraph.TextSummary(stacks, captureFlags.summaryLines))
	}

	return nil
}
