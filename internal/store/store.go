// Package store locates the country data directory and knows its layout:
// <dataDir>/<source>/<locale>/country.<format>.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hightemp/countries/internal/config"
	"github.com/spf13/afero"
)

// ErrDirectoryNotFound is returned when the data directory does not exist.
var ErrDirectoryNotFound = errors.New("unable to locate the country data directory")

// Locate resolves the data directory. An empty dir selects the default
// builder output directory. The result is absolute, and symlinks are
// resolved when fs is the OS filesystem.
func Locate(fs afero.Fs, dir string) (string, error) {
	if dir == "" {
		dir = config.DefaultDataDir()
	}

	ok, err := afero.IsDir(fs, dir)
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("stat data directory %s: %w", dir, err)
	}
	if !ok {
		return "", fmt.Errorf("%w at %q", ErrDirectoryNotFound, dir)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve data directory %s: %w", dir, err)
	}
	if _, isOS := fs.(*afero.OsFs); isOS {
		abs, err = filepath.EvalSymlinks(abs)
		if err != nil {
			return "", fmt.Errorf("resolve data directory %s: %w", dir, err)
		}
	}
	return abs, nil
}

// Layout maps sources and locales to paths under a data directory.
type Layout struct {
	fs     afero.Fs
	root   string
	format Format
}

// NewLayout creates a layout rooted at dataDir.
func NewLayout(fs afero.Fs, dataDir string, format Format) *Layout {
	return &Layout{fs: fs, root: dataDir, format: format}
}

// Root returns the data directory.
func (l *Layout) Root() string {
	return l.root
}

// Format returns the data file format.
func (l *Layout) Format() Format {
	return l.format
}

// SourceDir returns the directory holding every locale of a source.
func (l *Layout) SourceDir(source Source) string {
	return config.SourceDir(l.root, source.String())
}

// LocaleDir returns the directory of one locale.
func (l *Layout) LocaleDir(source Source, locale string) string {
	return filepath.Join(l.SourceDir(source), locale)
}

// DataFile returns the data file path for a source and locale.
func (l *Layout) DataFile(source Source, locale string) string {
	return config.DataFilePath(l.root, source.String(), locale, string(l.format))
}

// HasDataFile reports whether the data file exists as a regular file.
func (l *Layout) HasDataFile(source Source, locale string) bool {
	info, err := l.fs.Stat(l.DataFile(source, locale))
	return err == nil && info.Mode().IsRegular()
}

// Locales returns the sorted locales of a source that have a data file.
func (l *Layout) Locales(source Source) ([]string, error) {
	entries, err := afero.ReadDir(l.fs, l.SourceDir(source))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var locales []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if l.HasDataFile(source, entry.Name()) {
			locales = append(locales, entry.Name())
		}
	}
	sort.Strings(locales)

	return locales, nil
}

// Metadata loads the metadata written by the last generation.
func (l *Layout) Metadata() (*Metadata, error) {
	meta, err := LoadMetadata(l.fs, config.MetadataPath(l.root))
	if err != nil {
		return nil, fmt.Errorf("load metadata: %w", err)
	}
	return meta, nil
}

// MetadataPath returns the metadata file path.
func (l *Layout) MetadataPath() string {
	return config.MetadataPath(l.root)
}
