package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSource(t *testing.T) {
	tests := []struct {
		input    string
		expected Source
		hasError bool
	}{
		{"cldr", SourceCLDR, false},
		{"CLDR", SourceCLDR, false},
		{"icu", SourceICU, false},
		{"Icu", SourceICU, false},
		{"", "", true},
		{"iso", "", true},
	}

	for _, tc := range tests {
		src, err := ParseSource(tc.input)
		if tc.hasError {
			assert.ErrorIs(t, err, ErrUnknownSource, "ParseSource(%q)", tc.input)
			continue
		}
		require.NoError(t, err, "ParseSource(%q)", tc.input)
		assert.Equal(t, tc.expected, src)
	}
}

func TestUnknownSourceErrorMessage(t *testing.T) {
	_, err := ParseSource("ISO")

	var unknown *UnknownSourceError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "iso", unknown.Source)
	assert.Equal(t, `unknown data source "iso", the available ones are: "icu", "cldr"`, err.Error())
}

func TestParseFormat(t *testing.T) {
	for input, want := range map[string]Format{"": FormatJSON, "JSON": FormatJSON, "yaml": FormatYAML, "yml": FormatYAML} {
		got, err := ParseFormat(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("php")
	assert.Error(t, err)
}

func TestFormatRoundTrip(t *testing.T) {
	names := map[string]string{"FR": "France", "DE": "Allemagne"}
	for _, f := range []Format{FormatJSON, FormatYAML} {
		data, err := f.Encode(names)
		require.NoError(t, err)

		decoded, err := f.Decode(data)
		require.NoError(t, err)
		assert.Equal(t, names, decoded, "format %s", f)
	}
}

func TestFormatDecodeInvalid(t *testing.T) {
	_, err := FormatJSON.Decode([]byte(`["FR"]`))
	assert.Error(t, err)
}

func TestLocateExplicitDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/data/cldr", 0o755))

	dir, err := Locate(fs, "/data/")
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean("/data"), dir)
}

func TestLocateMissingDir(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := Locate(fs, "/missing")
	assert.ErrorIs(t, err, ErrDirectoryNotFound)
	assert.Contains(t, err.Error(), "/missing")
}

func TestLocateRejectsFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data", []byte("x"), 0o644))

	_, err := Locate(fs, "/data")
	assert.ErrorIs(t, err, ErrDirectoryNotFound)
}

func TestLocateDefaultDir(t *testing.T) {
	cacheDir := t.TempDir()
	t.Setenv("COUNTRIES_CACHE_DIR", cacheDir)

	_, err := Locate(afero.NewOsFs(), "")
	assert.ErrorIs(t, err, ErrDirectoryNotFound)

	require.NoError(t, os.MkdirAll(filepath.Join(cacheDir, "noiselabs", "countries"), 0o755))
	dir, err := Locate(afero.NewOsFs(), "")
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(filepath.Join(cacheDir, "noiselabs", "countries"))
	require.NoError(t, err)
	assert.Equal(t, want, dir)
}

func TestLocateResolvesSymlinks(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "real")
	link := filepath.Join(base, "link")
	require.NoError(t, os.Mkdir(target, 0o755))
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	dir, err := Locate(afero.NewOsFs(), filepath.Join(link, ".", "..", "link"))
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(target)
	require.NoError(t, err)
	assert.Equal(t, want, dir)
}

func TestLayoutPaths(t *testing.T) {
	l := NewLayout(afero.NewMemMapFs(), "/data", FormatYAML)

	assert.Equal(t, "/data", l.Root())
	assert.Equal(t, FormatYAML, l.Format())
	assert.Equal(t, filepath.Join("/data", "icu"), l.SourceDir(SourceICU))
	assert.Equal(t, filepath.Join("/data", "cldr", "fr"), l.LocaleDir(SourceCLDR, "fr"))
	assert.Equal(t, filepath.Join("/data", "cldr", "fr", "country.yaml"), l.DataFile(SourceCLDR, "fr"))
	assert.Equal(t, filepath.Join("/data", "metadata.json"), l.MetadataPath())
}

func TestLayoutLocales(t *testing.T) {
	fs := afero.NewMemMapFs()
	l := NewLayout(fs, "/data", FormatJSON)

	locales, err := l.Locales(SourceCLDR)
	require.NoError(t, err)
	assert.Empty(t, locales)

	for _, locale := range []string{"fr", "en", "pt_BR"} {
		require.NoError(t, fs.MkdirAll(l.LocaleDir(SourceCLDR, locale), 0o755))
		require.NoError(t, afero.WriteFile(fs, l.DataFile(SourceCLDR, locale), []byte("{}"), 0o644))
	}
	// A directory without a data file is not a locale.
	require.NoError(t, fs.MkdirAll(l.LocaleDir(SourceCLDR, "de"), 0o755))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(l.SourceDir(SourceCLDR), "README"), []byte("x"), 0o644))

	locales, err = l.Locales(SourceCLDR)
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "fr", "pt_BR"}, locales)

	assert.True(t, l.HasDataFile(SourceCLDR, "fr"))
	assert.False(t, l.HasDataFile(SourceICU, "fr"))
}

func TestMetadataSaveAndLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/data", 0o755))
	l := NewLayout(fs, "/data", FormatJSON)

	_, err := l.Metadata()
	assert.Error(t, err)

	meta := NewMetadata()
	meta.Sources = Sources
	meta.Locales = []string{"en", "fr"}
	meta.CountriesCount = 249
	meta.FilesWritten = 4
	require.NoError(t, meta.Save(fs, l.MetadataPath()))

	loaded, err := l.Metadata()
	require.NoError(t, err)
	assert.Equal(t, meta.Locales, loaded.Locales)
	assert.Equal(t, meta.Sources, loaded.Sources)
	assert.Equal(t, 249, loaded.CountriesCount)
	assert.Equal(t, 4, loaded.FilesWritten)
	assert.True(t, meta.CreatedAt.Equal(loaded.CreatedAt))
}
