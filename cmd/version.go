package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ethpandaops/stylus-profiler/internal/version"
	"github.com/ethpandaops/stylus-profiler/pkg/profile"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the version of stylus-profiler.",
	Long:  `Prints the version of stylus-profiler.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Version: %s\nCommit: %s\nProfile Schema: v%s\nOS/Arch: %s/%s\n",
			version.Release, version.GitCommit, profile.SchemaVersion, runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
