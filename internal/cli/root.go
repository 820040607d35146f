// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/hightemp/countries/internal/config"
	"github.com/hightemp/countries/internal/log"
	"github.com/hightemp/countries/internal/output"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags
var (
	configPath string
	cacheDir   string
	dataDir    string
)

// cfg is the configuration file merged with the global flags.
var cfg = config.DefaultConfig()

// appFs holds the cache and data directories.
var appFs = afero.NewOsFs()

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "countries",
	Short: "Localized country name lists from ICU and CLDR data",
	Long: `countries generates and queries per-locale lists of country names.

Generate the data files in the cache directory:
  countries countries:update

Print the French country list, sorted with French collation rules:
  countries list fr

Data files live in <data-dir>/<source>/<locale>/country.<format>, where
source is "icu" or "cldr".`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitWithCode(ExitFailure, output.FormatError(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "configuration file (default: $XDG_CONFIG_HOME or $HOME /"+config.ConfigFileName+")")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "cache directory path (default "+config.DefaultCacheDir()+")")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "country data directory (default <cache-dir>/"+config.VendorDir+")")

	// Add subcommands
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the configuration file; flags given on the command line
// take precedence over it.
func loadConfig(cmd *cobra.Command, args []string) error {
	log.InitLogger()

	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("cache-dir") {
		loaded.CacheDir = cacheDir
	}
	if cmd.Flags().Changed("data-dir") {
		loaded.DataDir = dataDir
	}
	cfg = loaded
	return nil
}

// ExitCode constants
const (
	ExitSuccess = 0
	ExitFailure = 1
)

func exitWithCode(code int, msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(code)
}
