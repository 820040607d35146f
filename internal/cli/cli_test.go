package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hightemp/countries/internal/update"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with fresh flag values.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	configPath, cacheDir, dataDir = "", "", ""
	sourceFlag, jsonOutput, listLocales = "cldr", false, false
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	}
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) { f.Changed = false })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// withFs swaps the filesystem the commands use for the duration of a test.
func withFs(t *testing.T, fs afero.Fs) {
	t.Helper()
	prev := appFs
	appFs = fs
	t.Cleanup(func() { appFs = prev })
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "countries.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestUpdateThenList(t *testing.T) {
	cache := filepath.Join(t.TempDir(), "cache")
	cfgFile := writeConfig(t, "locales: [fr]\n")

	out, err := run(t, "countries:update", "--config", cfgFile, "--cache-dir", cache)
	require.NoError(t, err)
	target := filepath.Join(cache, "noiselabs", "countries")
	assert.Contains(t, out, target)

	out, err = run(t, "list", "fr", "--config", cfgFile, "--cache-dir", cache)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 249)

	var sawUS bool
	for _, line := range lines {
		if line == "US\tÉtats-Unis" {
			sawUS = true
		}
	}
	assert.True(t, sawUS)

	out, err = run(t, "list", "--locales", "--source", "ICU", "--data-dir", target)
	require.NoError(t, err)
	assert.Equal(t, "fr\n", out)

	out, err = run(t, "info", "--data-dir", target)
	require.NoError(t, err)
	assert.Contains(t, out, "cldr: 1 locales")
	assert.Contains(t, out, "Countries: 249 of 249")
}

func TestListJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "cldr", "fr"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cldr", "fr", "country.json"),
		[]byte(`{"US": "États-Unis", "FR": "France", "DE": "Allemagne"}`), 0o644))

	out, err := run(t, "list", "fr", "--json", "--data-dir", dir)
	require.NoError(t, err)

	var parsed struct {
		Source    string `json:"source"`
		Countries []struct {
			Name string `json:"name"`
		} `json:"countries"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, "cldr", parsed.Source)
	require.Len(t, parsed.Countries, 3)
	assert.Equal(t, "Allemagne", parsed.Countries[0].Name)
	assert.Equal(t, "États-Unis", parsed.Countries[1].Name)
}

func TestListUnknownSource(t *testing.T) {
	_, err := run(t, "list", "fr", "--source", "iso", "--data-dir", t.TempDir())
	assert.ErrorContains(t, err, `unknown data source "iso"`)
}

func TestListMissingDataDir(t *testing.T) {
	_, err := run(t, "list", "--data-dir", filepath.Join(t.TempDir(), "missing"))
	assert.ErrorContains(t, err, "countries:update")
}

func TestUpdateUnwritableCacheDir(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, base.MkdirAll("/cache", 0o755))
	withFs(t, afero.NewReadOnlyFs(base))

	_, err := run(t, "update", "--cache-dir", "/cache")
	assert.ErrorIs(t, err, update.ErrDirectoryNotWritable)

	ok, err := afero.Exists(base, "/cache/noiselabs")
	require.NoError(t, err)
	assert.False(t, ok, "nothing is generated into an unwritable directory")
}

func TestUpdateCreatesCacheDirOnFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	withFs(t, fs)
	cfgFile := writeConfig(t, "locales: [de]\n")

	out, err := run(t, "countries:update", "--config", cfgFile, "--cache-dir", "/srv/cache")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join("/srv/cache", "noiselabs", "countries"))

	out, err = run(t, "list", "de", "--config", cfgFile, "--cache-dir", "/srv/cache")
	require.NoError(t, err)
	assert.Contains(t, out, "DE\tDeutschland")
}

func TestVersion(t *testing.T) {
	Version = "1.2.3"
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "countries 1.2.3")
}
