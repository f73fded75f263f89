package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ethpandaops/stylus-profiler/pkg/profile"
)

var validateFile string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validates a profile JSON file.",
	Long:  `Reads a previously written profile, checks its schema version and prints a summary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Validating profile: %s\n", validateFile)

		p, err := profile.ReadFile(validateFile)
		if err != nil {
			return err
		}

		fmt.Println("Valid profile JSON")
		fmt.Printf("  Version: %s\n", p.Version)
		fmt.Printf("  Transaction: %s\n", p.TransactionHash)
		fmt.Printf("  Total Gas: %d\n", p.TotalGas)
		fmt.Printf("  HostIO Calls: %d\n", p.HostioSummary.TotalCalls)
		fmt.Printf("  Hot Paths: %d\n", len(p.HotPaths))

		return nil
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateFile, "file", "f", "", "path to the profile JSON file")

	if err := validateCmd.MarkFlagRequired("file"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(validateCmd)
}
