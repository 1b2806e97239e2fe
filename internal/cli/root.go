package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"vidseg/config"
)

var (
	cfgFile string
	cfg     *config.Config
	dataDir string
)

var rootCmd = &cobra.Command{
	Use:   "vidseg",
	Short: "vidseg - store and search transcript topic segments",
	Long: `vidseg ingests topic-segmented transcripts of recorded videos,
embeds each segment into a vector store, and answers two query types:
semantic similarity search and playback-instant lookup.

Example usage:
  vidseg ingest -r vid1 segments.json    # Store segments for recording vid1
  vidseg search -r vid1 -q "refraction"  # Find relevant segments
  vidseg at -r vid1 -t 5.17              # Which segment covers 5m17s?`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if dataDir == "" {
			dataDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(dataDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./vidseg.yaml)")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "dir", "d", "", "data directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetDataDir() string {
	return dataDir
}
