// Package cli implements the staticcached command-line interface.
package cli

import (
	"bytes"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meigma/filecache/cmd/staticcached/config"
)

// Build information set via ldflags.
var (
	version = "dev"
	commit  = "none"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "staticcached",
	Short: "Serve a directory through an in-memory, access-frequency file cache",
	Long: `staticcached serves files from a directory over HTTP, fronting an
in-memory cache that admits and evicts entries by access frequency rather
than recency.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "JSONC config file path")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")

	//nolint:errcheck // flags are defined above, Lookup cannot return nil here
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	viper.SetDefault("root", ".")
	viper.SetDefault("addr", ":8080")
	viper.SetDefault("cache_bytes", 64<<20)

	rootCmd.Version = version
}

func initConfig() {
	if cfgFile == "" {
		return
	}
	// Standardize JSONC to plain JSON before handing it to Viper, which
	// has no JSONC support of its own.
	data, err := config.LoadFile(cfgFile)
	if err != nil || data == nil {
		return // missing/invalid config falls back to flags and defaults
	}
	viper.SetConfigType("json")
	_ = viper.ReadConfig(bytes.NewReader(data))
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
