package cli

import (
	"fmt"
	"strings"

	"github.com/hightemp/countries/internal/config"
	"github.com/hightemp/countries/internal/countries"
	"github.com/hightemp/countries/internal/lookup"
	"github.com/hightemp/countries/internal/output"
	"github.com/hightemp/countries/internal/store"
	"github.com/spf13/cobra"
)

var (
	sourceFlag  string
	jsonOutput  bool
	listLocales bool
)

var listCmd = &cobra.Command{
	Use:   "list [locale]",
	Short: "Print the countries of a locale sorted by name",
	Long: `Prints the country list of a locale, sorted with the collation rules
of that locale.

Examples:
  countries list fr                # French names from CLDR
  countries list pt_BR --source icu
  countries list --locales         # locales available for the source`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe the country data directory",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func init() {
	listCmd.Flags().StringVar(&sourceFlag, "source", string(store.DefaultSource), "data source: icu or cldr")
	listCmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	listCmd.Flags().BoolVar(&listLocales, "locales", false, "list available locales instead of countries")
}

func newManager() (*lookup.Manager, error) {
	format, err := store.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	return lookup.NewManager(cfg.ResolvedDataDir(), lookup.WithFs(appFs), lookup.WithFormat(format))
}

func runList(cmd *cobra.Command, args []string) error {
	mgr, err := newManager()
	if err != nil {
		return fmt.Errorf("%w\nRun 'countries countries:update' to generate the data", err)
	}

	if listLocales {
		locales, err := mgr.Locales(sourceFlag)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), output.FormatLocales(locales))
		return nil
	}

	locale := config.DefaultLocale
	if len(args) == 1 {
		locale = args[0]
	}

	list, err := mgr.List(locale, sourceFlag)
	if err != nil {
		return err
	}

	result := &output.ListResult{
		Locale:    locale,
		Source:    strings.ToLower(sourceFlag),
		Countries: list,
	}
	if jsonOutput {
		jsonStr, err := result.FormatJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), jsonStr)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.FormatText())
	return nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	mgr, err := newManager()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Data directory: %s\n", mgr.DataDir())
	for _, source := range store.Sources {
		locales, err := mgr.Locales(source.String())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %s: %d locales\n", source, len(locales))
	}

	meta, err := mgr.Metadata()
	if err != nil {
		fmt.Fprintln(out, "No generation metadata found.")
		return nil
	}
	fmt.Fprintf(out, "Generated: %s\n", meta.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(out, "  Generator: %s\n", meta.Generator)
	fmt.Fprintf(out, "  Format: %s\n", meta.Format)
	fmt.Fprintf(out, "  Countries: %d of %d\n", meta.CountriesCount, countries.Count())
	fmt.Fprintf(out, "  Files: %d\n", meta.FilesWritten)
	return nil
}
