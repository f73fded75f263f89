package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ethpandaops/stylus-profiler/pkg/profile"
)

var schemaShow bool

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Displays profile schema information.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Stylus Profiler Profile Schema")
		fmt.Printf("Current Version: %s\n\n", profile.SchemaVersion)

		if !schemaShow {
			fmt.Println("Use --show for detailed schema information")

			return
		}

		fmt.Println("Schema Structure:")
		fmt.Println("  version: string          - Schema version (e.g., '1.0.0')")
		fmt.Println("  transaction_hash: string - Transaction hash")
		fmt.Println("  total_gas: number        - Total gas used")
		fmt.Println("  hostio_summary: object   - HostIO event statistics")
		fmt.Println("    total_calls: number    - Total HostIO calls")
		fmt.Println("    by_type: object        - Breakdown by HostIO type")
		fmt.Println("    total_hostio_gas: number - Gas consumed by HostIO")
		fmt.Println("  hot_paths: array         - Top gas-consuming execution paths")
		fmt.Println("    stack: string          - Stack trace")
		fmt.Println("    gas: number            - Gas consumed")
		fmt.Println("    percentage: number     - Percentage of total gas")
		fmt.Println("    source_hint: object?   - Source location (if available)")
		fmt.Println("  generated_at: string     - ISO 8601 timestamp")
	},
}

func init() {
	schemaCmd.Flags().BoolVar(&schemaShow, "show", false, "show full schema details")

	rootCmd.AddCommand(schemaCmd)
}
