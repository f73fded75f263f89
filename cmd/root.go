package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/creasty/defaults"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ethpandaops/stylus-profiler/pkg/profiler"
)

var (
	log        = logrus.New()
	configFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stylus-profiler",
	Short: "Gas profiler for Arbitrum Stylus transactions.",
	Long:  `Captures transaction traces from an Arbitrum Nitro node and turns them into gas profiles and flamegraphs.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

func initCommon(config *profiler.Config) {
	level, err := logrus.ParseLevel(config.LoggingLevel)
	if err != nil {
		log.WithError(err).Warn("Invalid logging level, using info")

		level = logrus.InfoLevel
	}

	if verbose {
		level = logrus.DebugLevel
	}

	log.SetLevel(level)
}

// loadConfigFromFile loads the profiler config. The file is optional
// unless named explicitly: a missing default config.yaml yields the
// built-in defaults, so the tool stays usable flag-only.
func loadConfigFromFile(file string) (*profiler.Config, error) {
	explicit := file != ""
	if file == "" {
		file = "config.yaml"
	}

	config := &profiler.Config{}

	if err := defaults.Set(config); err != nil {
		return nil, err
	}

	yamlFile, err := os.ReadFile(file)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}

		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	type plain profiler.Config

	if err := yaml.Unmarshal(yamlFile, (*plain)(config)); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}
