package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/hightemp/countries/internal/builder"
	"github.com/hightemp/countries/internal/countries"
	"github.com/hightemp/countries/internal/store"
	"github.com/hightemp/countries/internal/update"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:     "countries:update",
	Aliases: []string{"update"},
	Short:   "Update or create the list of countries in the application cache",
	Long: `The countries:update command updates or creates the list of countries
in the application cache using the ICU and CLDR data of golang.org/x/text.

Files are written to <cache-dir>/noiselabs/countries. Locales, country
codes and file format are taken from the configuration file:

  locales: [en, fr, pt_BR]
  countries_file: /etc/countries.txt
  format: yaml`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	opts, err := builderOptions()
	if err != nil {
		return err
	}

	command := update.NewCommand(func(outDir string) update.Generator {
		return builder.New(outDir, opts...)
	}, update.WithFs(appFs))

	fmt.Fprintf(cmd.OutOrStdout(), "Generating countries data in %s\n", cfg.CacheDir)
	target, err := command.Run(cmd.Context(), cfg.CacheDir)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), target)
	return nil
}

func builderOptions() ([]builder.Option, error) {
	format, err := store.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	opts := []builder.Option{builder.WithFs(appFs), builder.WithFormat(format)}

	if len(cfg.Locales) > 0 {
		opts = append(opts, builder.WithLocales(cfg.Locales...))
	}

	if cfg.CountriesFile != "" {
		content, err := os.ReadFile(cfg.CountriesFile)
		if err != nil {
			return nil, fmt.Errorf("read countries file: %w", err)
		}
		codes, rejected, err := countries.LoadFromFile(string(content))
		if err != nil {
			return nil, fmt.Errorf("parse countries file: %w", err)
		}
		if len(rejected) > 0 {
			log.Warnf("ignoring unknown country codes: %s", strings.Join(rejected, ", "))
		}
		if len(codes) == 0 {
			return nil, fmt.Errorf("countries file %s lists no known country codes", cfg.CountriesFile)
		}
		opts = append(opts, builder.WithCountries(codes...))
	}

	return opts, nil
}
