package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/offdeck/offdeck/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "offdeck",
	Short: "Convert multi-document HTML slide decks into a single offline file",
	Long: `Offdeck takes a file of concatenated HTML slide documents, fetches and
embeds every external stylesheet, script and web font, isolates each
slide's chart scripts so they survive repeated show/hide cycles, and
emits one self-contained HTML presentation that runs without network
access.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".offdeck.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func vlogf(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
